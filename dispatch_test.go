// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import "testing"

// TestReadExportBodyDemotesOnDecodeFailure checks spec.md §4.8's recovery
// path: a specialized decoder that runs out of bytes mid-property must not
// abort the whole read, it demotes that one export to RawExport and records
// an anomaly, preserving the export's declared byte range verbatim.
func TestReadExportBodyDemotesOnDecodeFailure(t *testing.T) {
	pkg := newVersionedPackage(VerUE4PreloadDependenciesInCookedExports)

	dataTableClassName := pkg.AddNameReference("DataTable")
	pkg.Imports = []Import{{ObjectName: dataTableClassName}}

	objectName := pkg.AddNameReference("BadRow")
	export := Export{
		ClassIndex:   ImportIndex(0),
		SuperIndex:   NullIndex,
		OuterIndex:   NullIndex,
		ObjectName:   objectName,
		SerialOffset: 0,
	}

	// Four bytes: enough for one int32 of the opening property-name FName,
	// not enough for the second int32 (the FName's Number field), so
	// decodeDataTableExport's first ReadPropertyList call fails partway
	// through reading its very first property name.
	body := []byte{1, 0, 0, 0}

	pkg.readExportBody(body, &export, int64(len(body)))

	raw, ok := export.Body.(RawExport)
	if !ok {
		t.Fatalf("Body type = %T, want RawExport", export.Body)
	}
	if string(raw.Bytes) != string(body) {
		t.Errorf("RawExport.Bytes = %v, want %v", raw.Bytes, body)
	}
	if len(pkg.Anomalies) != 1 {
		t.Fatalf("len(Anomalies) = %d, want 1", len(pkg.Anomalies))
	}
}

// TestReadExportBodySucceedsOnWellFormedData is the control case: the same
// class dispatch with a well-formed (empty) property list must decode as a
// DataTableExport, not demote.
func TestReadExportBodySucceedsOnWellFormedData(t *testing.T) {
	pkg := newVersionedPackage(VerUE4PreloadDependenciesInCookedExports)

	dataTableClassName := pkg.AddNameReference("DataTable")
	pkg.Imports = []Import{{ObjectName: dataTableClassName}}

	objectName := pkg.AddNameReference("EmptyRows")
	export := Export{
		ClassIndex:   ImportIndex(0),
		SuperIndex:   NullIndex,
		OuterIndex:   NullIndex,
		ObjectName:   objectName,
		SerialOffset: 0,
	}

	w := NewByteSink()
	pkg.WritePropertyList(w, nil, 0) // just the "None" terminator
	writeFNameInline(w, pkg.AddNameReference("Row")) // RowStructName
	w.I32(0)                                         // zero rows
	data := w.Bytes()

	pkg.readExportBody(data, &export, int64(len(data)))

	if _, ok := export.Body.(RawExport); ok {
		t.Fatalf("Body demoted to RawExport, anomalies: %v", pkg.Anomalies)
	}
	dt, ok := export.Body.(DataTableExport)
	if !ok {
		t.Fatalf("Body type = %T, want DataTableExport", export.Body)
	}
	if len(dt.Rows) != 0 {
		t.Errorf("len(Rows) = %d, want 0", len(dt.Rows))
	}
	if len(pkg.Anomalies) != 0 {
		t.Errorf("Anomalies = %v, want none", pkg.Anomalies)
	}
}
