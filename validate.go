// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import "fmt"

// ValidatePackageIndices walks every PackageIndex reachable from the import
// table, the export header table, the legacy depends map, the flat
// preload-dependency region and each export body's own PackageIndex fields,
// checking each against PackageIndex.Validate (spec.md §8). It returns one
// error per out-of-range index found; a nil/empty result means the package
// is a closed PackageIndex graph over its own import/export tables.
//
// ReadPackage/WritePackage do not call this themselves — per-index bounds
// checks happen inline as each index is resolved (GetImport/GetExport).
// ValidatePackageIndices is for callers who want to confirm an entire
// hand-built or mutated package is self-consistent before writing it out.
func (p *Package) ValidatePackageIndices() []error {
	var errs []error
	importCount := len(p.Imports)
	exportCount := len(p.Exports)
	check := func(where string, idx PackageIndex) {
		if err := idx.Validate(importCount, exportCount); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where, err))
		}
	}

	for i, imp := range p.Imports {
		check(fmt.Sprintf("Imports[%d].Outer", i), imp.Outer)
	}

	for i, e := range p.Exports {
		check(fmt.Sprintf("Exports[%d].ClassIndex", i), e.ClassIndex)
		check(fmt.Sprintf("Exports[%d].SuperIndex", i), e.SuperIndex)
		check(fmt.Sprintf("Exports[%d].TemplateIndex", i), e.TemplateIndex)
		check(fmt.Sprintf("Exports[%d].OuterIndex", i), e.OuterIndex)
		validateExportBody(fmt.Sprintf("Exports[%d].Body", i), e.Body, check)
	}

	for i, list := range p.DependsMap {
		for j, idx := range list {
			check(fmt.Sprintf("DependsMap[%d][%d]", i, j), idx)
		}
	}

	for i, idx := range p.PreloadDependencies {
		check(fmt.Sprintf("PreloadDependencies[%d]", i), idx)
	}

	return errs
}

func validateExportBody(where string, body ExportBody, check func(string, PackageIndex)) {
	switch b := body.(type) {
	case LevelExport:
		for i, idx := range b.ActorReferences {
			check(fmt.Sprintf("%s.ActorReferences[%d]", where, i), idx)
		}
	case PropertyExport:
		check(where+".Inner", b.Inner)
		check(where+".KeyProp", b.KeyProp)
		check(where+".ValueProp", b.ValueProp)
		check(where+".Struct", b.Struct)
	case ClassExport:
		check(where+".SuperStruct", b.SuperStruct)
		for i, idx := range b.LoadedProperties {
			check(fmt.Sprintf("%s.LoadedProperties[%d]", where, i), idx)
		}
	}
}
