// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import "encoding/binary"

// WritePackage serializes pkg as a single combined byte stream (spec.md
// §8's round-trip law), reproducing the original bytes exactly when pkg
// was produced by ReadPackage and left unmodified. It refuses a package
// in separate-bulk mode, which has no single joint stream to hand back;
// use WritePackageSplit for those.
func WritePackage(pkg *Package) ([]byte, error) {
	if pkg.SeparateBulkMode {
		return nil, ErrBulkStreamRequired
	}
	return writePackageJoint(pkg)
}

// WritePackageSplit serializes pkg as a uasset/uexp pair: the joint
// layout writePackageJoint produces, cut at TotalHeaderSize into the
// header/table region (uasset) and the export-body region (uexp), the
// same boundary OpenSplit joins on read. It refuses a package that is
// not in separate-bulk mode, since TotalHeaderSize would not mark a real
// uasset/uexp cut point for it.
func WritePackageSplit(pkg *Package) (uasset, uexp []byte, err error) {
	if !pkg.SeparateBulkMode {
		return nil, nil, ErrBulkStreamUnexpected
	}
	joint, err := writePackageJoint(pkg)
	if err != nil {
		return nil, nil, err
	}
	cut := int64(pkg.TotalHeaderSize)
	if cut < 0 || cut > int64(len(joint)) {
		return nil, nil, newErr(KindInvalidFile, cut, "TotalHeaderSize", "out of range for a %d-byte write", len(joint))
	}
	return joint[:cut], joint[cut:], nil
}

// writePackageJoint lays out pkg's full on-disk image in one buffer.
// Table offsets and each export's serial_size/serial_offset are
// recomputed from the actual layout this pass lays down; they are not
// trusted from a prior Read.
//
// The pass runs in two phases the teacher's ByteSink/MeasuringSink split
// mirrors: phase one lays out every section once to learn its real size,
// phase two patches the header and export table in place now that every
// offset is known (spec.md §9's "two-pass write, back-patch the header").
func writePackageJoint(pkg *Package) ([]byte, error) {
	// Every property list write interns "None" as its terminator; when there
	// are export bodies to write, force it into the name table now so the
	// name table section (written before any export body) already carries
	// it, rather than growing the table after its own section has been
	// serialized. A package with no exports writes no property list and
	// keeps an empty name table.
	if len(pkg.Exports) > 0 {
		pkg.Names.Intern("None")
	}
	pkg.rebuildPreloadDependencies(pkg.ObjectVersion)
	pkg.NameCount = int32(pkg.Names.Len())
	pkg.ImportCount = int32(len(pkg.Imports))
	pkg.ExportCount = int32(len(pkg.Exports))
	pkg.SoftPackageReferencesCount = int32(len(pkg.SoftPackageReferences))
	pkg.PreloadDependencyCount = int32(len(pkg.PreloadDependencies))

	headerLen := headerLength(pkg)

	w := NewByteSink()
	w.grow(int(headerLen)) // reserved, patched below once every offset is known

	pkg.NameOffset = int32(w.Pos())
	writeNameTable(w, pkg)

	pkg.ImportOffset = int32(w.Pos())
	for _, imp := range pkg.Imports {
		writeImport(w, imp)
	}

	exportOffset := w.Pos()
	pkg.ExportOffset = int32(exportOffset)
	for _, e := range pkg.Exports {
		writeExportHeader(w, pkg.ObjectVersion, e)
	}
	var exportEntrySize int64
	if len(pkg.Exports) > 0 {
		exportEntrySize = (w.Pos() - exportOffset) / int64(len(pkg.Exports))
	}

	pkg.DependsOffset = int32(w.Pos())
	if len(pkg.DependsMap) == 0 && len(pkg.Exports) > 0 {
		pkg.DependsMap = make(DependsMap, len(pkg.Exports))
	}
	writeDependsMap(w, pkg.DependsMap)

	if pkg.ObjectVersion.AtLeast(VerUE4AddStringAssetReferencesMap) {
		pkg.SoftPackageReferencesOffset = int32(w.Pos())
		writeSoftPackageReferences(w, pkg.SoftPackageReferences)
	}

	if len(pkg.AssetRegistryData) > 0 {
		pkg.AssetRegistryDataOffset = int32(w.Pos())
		w.Raw(pkg.AssetRegistryData)
	} else {
		pkg.AssetRegistryDataOffset = 0
	}

	if pkg.ObjectVersion.AtLeast(VerUE4WorldLevelInfo) {
		if pkg.WorldTileInfo != nil {
			pkg.WorldTileInfoDataOffset = int32(w.Pos())
			writeWorldTileInfo(w, pkg.WorldTileInfo)
		} else {
			pkg.WorldTileInfoDataOffset = 0
		}
	}

	pkg.PreloadDependencyOffset = int32(w.Pos())
	writePreloadDependencies(w, pkg.PreloadDependencies)

	pkg.TotalHeaderSize = int32(w.Pos())

	for i := range pkg.Exports {
		e := &pkg.Exports[i]
		start := w.Pos()
		pkg.writeExportBody(w, e)
		e.SerialOffset = start
		e.SerialSize = w.Pos() - start
	}

	pkg.BulkDataStartOffset = w.Pos()
	trailer := make([]byte, 4)
	binary.BigEndian.PutUint32(trailer, PackageMagic)
	w.Raw(trailer)

	// Phase two: patch the export header table now that every
	// serial_offset/serial_size is known, then patch the main header.
	buf := w.Bytes()
	for i, e := range pkg.Exports {
		slot := NewByteSink()
		writeExportHeader(slot, pkg.ObjectVersion, e)
		copy(buf[exportOffset+int64(i)*exportEntrySize:], slot.Bytes())
	}

	hdr := measureHeader(pkg)
	copy(buf[:len(hdr)], hdr)

	return buf, nil
}

// headerLength reports the header's encoded byte length without
// allocating or copying it, for the phase-one layout pass that only
// needs to know how much space to reserve up front.
func headerLength(pkg *Package) int64 {
	w := NewMeasuringSink()
	writeHeader(w, pkg)
	return w.Pos()
}

// measureHeader serializes pkg's current header scalars in isolation,
// used to patch the final header bytes in place once every offset field
// has its real value (phase two).
func measureHeader(pkg *Package) []byte {
	w := NewByteSink()
	writeHeader(w, pkg)
	return w.Bytes()
}

func writeNameTable(w *Writer, pkg *Package) {
	for _, e := range pkg.Names.Entries() {
		w.FString(e.Content)
		if pkg.ObjectVersion.AtLeast(VerUE4NameHashesSerialized) && e.Content != "" {
			w.U32(e.Hash)
		}
	}
}
