// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import "testing"

func TestValidatePackageIndicesCleanPackage(t *testing.T) {
	pkg := NewPackage()
	pkg.Imports = []Import{{Outer: NullIndex}}
	pkg.Exports = []Export{{
		ClassIndex:    ImportIndex(0),
		SuperIndex:    NullIndex,
		TemplateIndex: NullIndex,
		OuterIndex:    NullIndex,
	}}
	pkg.DependsMap = DependsMap{{ExportIndex(0)}}
	pkg.PreloadDependencies = []PackageIndex{ImportIndex(0)}

	if errs := pkg.ValidatePackageIndices(); len(errs) != 0 {
		t.Errorf("ValidatePackageIndices() = %v, want none", errs)
	}
}

func TestValidatePackageIndicesCatchesOutOfRange(t *testing.T) {
	pkg := NewPackage()
	pkg.Imports = []Import{{Outer: NullIndex}}
	pkg.Exports = []Export{{
		ClassIndex: ImportIndex(5), // only one import exists
		SuperIndex: NullIndex,
		OuterIndex: NullIndex,
	}}
	pkg.DependsMap = DependsMap{{ExportIndex(3)}} // only one export exists

	errs := pkg.ValidatePackageIndices()
	if len(errs) != 2 {
		t.Fatalf("ValidatePackageIndices() = %v, want 2 errors", errs)
	}
}

func TestValidatePackageIndicesWalksExportBody(t *testing.T) {
	pkg := NewPackage()
	pkg.Exports = []Export{{
		ClassIndex: NullIndex,
		SuperIndex: NullIndex,
		OuterIndex: NullIndex,
		Body: PropertyExport{
			Inner: ExportIndex(9), // no export at that slot
		},
	}}

	errs := pkg.ValidatePackageIndices()
	if len(errs) != 1 {
		t.Fatalf("ValidatePackageIndices() = %v, want 1 error for the body's Inner index", errs)
	}
}
