// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// ReadPackage decodes a fully joint byte stream (a combined uasset+uexp
// buffer, or a single-file package) into a Package (spec.md §4.2's read
// contract). objVerHint/hintValid supply the engine version an
// unversioned package requires; pass hintValid=false for ordinary
// versioned packages.
func ReadPackage(data []byte, objVerHint ObjectVersion, hintValid bool) (*Package, error) {
	pkg := NewPackage()
	r := NewReader(data)
	if err := readHeader(r, pkg, objVerHint, hintValid); err != nil {
		return nil, err
	}

	if err := readNameTable(data, pkg); err != nil {
		return nil, err
	}
	if err := readImportTable(data, pkg); err != nil {
		return nil, err
	}
	if err := readExportTable(data, pkg); err != nil {
		return nil, err
	}
	if err := readDependsTable(data, pkg); err != nil {
		return nil, err
	}
	if err := readSoftRefsTable(data, pkg); err != nil {
		return nil, err
	}
	if err := readAssetRegistryBlob(data, pkg); err != nil {
		return nil, err
	}
	if err := readWorldTileBlock(data, pkg); err != nil {
		return nil, err
	}
	if err := readPreloadDependencyTable(data, pkg); err != nil {
		return nil, err
	}

	pkg.readAllExportBodies(data)

	return pkg, nil
}

func readNameTable(data []byte, pkg *Package) error {
	if pkg.NameCount == 0 {
		return nil
	}
	r := NewReader(data)
	r.Seek(int64(pkg.NameOffset))
	for i := int32(0); i < pkg.NameCount; i++ {
		s, err := r.FString()
		if err != nil {
			return err
		}
		idx := pkg.Names.Add(s)
		if pkg.ObjectVersion.AtLeast(VerUE4NameHashesSerialized) && s != "" {
			hash, err := r.U32()
			if err != nil {
				return err
			}
			pkg.Names.SetHash(idx, hash)
		}
	}
	return nil
}

func readImportTable(data []byte, pkg *Package) error {
	if pkg.ImportCount == 0 {
		return nil
	}
	r := NewReader(data)
	r.Seek(int64(pkg.ImportOffset))
	pkg.Imports = make([]Import, pkg.ImportCount)
	for i := range pkg.Imports {
		imp, err := readImport(r)
		if err != nil {
			return err
		}
		pkg.Imports[i] = imp
	}
	return nil
}

func readExportTable(data []byte, pkg *Package) error {
	if pkg.ExportCount == 0 {
		return nil
	}
	r := NewReader(data)
	r.Seek(int64(pkg.ExportOffset))
	pkg.Exports = make([]Export, pkg.ExportCount)
	for i := range pkg.Exports {
		e, err := readExportHeader(r, pkg.ObjectVersion)
		if err != nil {
			return err
		}
		pkg.Exports[i] = e
	}
	return nil
}

func readDependsTable(data []byte, pkg *Package) error {
	if pkg.DependsOffset == 0 || pkg.ExportCount == 0 {
		return nil
	}
	r := NewReader(data)
	r.Seek(int64(pkg.DependsOffset))
	deps, err := readDependsMap(r, pkg.ExportCount)
	if err != nil {
		return err
	}
	pkg.DependsMap = deps
	return nil
}

func readSoftRefsTable(data []byte, pkg *Package) error {
	if pkg.SoftPackageReferencesOffset == 0 {
		return nil
	}
	r := NewReader(data)
	r.Seek(int64(pkg.SoftPackageReferencesOffset))
	refs, err := readSoftPackageReferences(r)
	if err != nil {
		return err
	}
	pkg.SoftPackageReferences = refs
	return nil
}

// readAssetRegistryBlob preserves the asset-registry-data span verbatim
// (spec.md §9 Open Question: no parsing on read, a zero-length stub on
// write, original bytes kept for faithful round-trip).
func readAssetRegistryBlob(data []byte, pkg *Package) error {
	if pkg.AssetRegistryDataOffset == 0 {
		return nil
	}
	start := int64(pkg.AssetRegistryDataOffset)
	end := pkg.nextKnownOffsetAfter(start)
	if end < start || end > int64(len(data)) {
		return newErr(KindInvalidFile, start, "AssetRegistryData", "span end %d out of bounds (start %d)", end, start)
	}
	pkg.AssetRegistryData = append([]byte(nil), data[start:end]...)
	return nil
}

// nextKnownOffsetAfter finds the nearest header-declared offset strictly
// greater than start, falling back to BulkDataStartOffset.
func (pkg *Package) nextKnownOffsetAfter(start int64) int64 {
	best := pkg.BulkDataStartOffset
	consider := func(off int64) {
		if off > start && off < best {
			best = off
		}
	}
	if pkg.WorldTileInfoDataOffset != 0 {
		consider(int64(pkg.WorldTileInfoDataOffset))
	}
	if pkg.PreloadDependencyOffset != 0 {
		consider(int64(pkg.PreloadDependencyOffset))
	}
	if len(pkg.Exports) > 0 {
		consider(pkg.Exports[0].SerialOffset)
	}
	return best
}

func readWorldTileBlock(data []byte, pkg *Package) error {
	if pkg.WorldTileInfoDataOffset == 0 {
		return nil
	}
	r := NewReader(data)
	r.Seek(int64(pkg.WorldTileInfoDataOffset))
	worldLevelInfoVersion, _ := pkg.CustomVersions.Get(GuidWorldLevelInfoVersion)
	wt, err := readWorldTileInfo(r, pkg.ObjectVersion, worldLevelInfoVersion)
	if err != nil {
		return err
	}
	pkg.WorldTileInfo = wt
	return nil
}

func readPreloadDependencyTable(data []byte, pkg *Package) error {
	if pkg.PreloadDependencyOffset == 0 || pkg.PreloadDependencyCount == 0 {
		return nil
	}
	r := NewReader(data)
	r.Seek(int64(pkg.PreloadDependencyOffset))
	deps, err := readPreloadDependencies(r, pkg.PreloadDependencyCount)
	if err != nil {
		return err
	}
	pkg.PreloadDependencies = deps
	return nil
}

// readAllExportBodies decodes every export's body over its declared
// serial range, demoting to RawExport per-export on failure (spec.md
// §4.4/§4.8). Exports are assumed table-ordered by ascending SerialOffset,
// the invariant spec.md §8 requires of a well-formed file.
func (pkg *Package) readAllExportBodies(data []byte) {
	for i := range pkg.Exports {
		e := &pkg.Exports[i]
		rangeEnd := pkg.BulkDataStartOffset
		if i+1 < len(pkg.Exports) {
			rangeEnd = pkg.Exports[i+1].SerialOffset
		}
		pkg.readExportBody(data, e, rangeEnd)
	}
}
