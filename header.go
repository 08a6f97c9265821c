// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import "encoding/binary"

// PackageMagic is the 4-byte big-endian file signature every well-formed
// package begins and ends with (spec.md §6).
const PackageMagic uint32 = 0xC1832A9E

// Package flag bits, named for callers. The codec itself tests neither bit:
// PackageFlags passes through read and write opaquely.
const (
	PkgUnversionedProperties uint32 = 1 << 30
	PkgFilterEditorOnly      uint32 = 1 << 31
)

const legacyFileVersionUE3 int32 = -4
const fileVersionUnknown int32 = 0

// readHeader decodes the fixed-layout header scalars (spec.md §4.2 steps
// 1-12) and leaves the reader positioned just past them. objVerHint
// supplies the object version for unversioned packages (ErrUnversioned if
// absent and the file declares none).
func readHeader(r *Reader, pkg *Package, objVerHint ObjectVersion, hintValid bool) error {
	magicBytes, err := r.Bytes(4)
	if err != nil {
		return err
	}
	if binary.BigEndian.Uint32(magicBytes) != PackageMagic {
		return &CodecError{Kind: KindInvalidFile, Offset: 0, Field: "magic", Message: "magic not found", Cause: ErrInvalidMagic}
	}

	legacyFileVersion, err := r.I32()
	if err != nil {
		return err
	}
	if legacyFileVersion != legacyFileVersionUE3 {
		if _, err := r.Bytes(4); err != nil { // LegacyUE3Version padding
			return err
		}
	}

	fileVersion, err := r.I32()
	if err != nil {
		return err
	}
	if fileVersion == fileVersionUnknown {
		if !hintValid {
			return &CodecError{Kind: KindInvalidFile, Offset: r.Pos(), Field: "FileVersionUE4", Message: "package is unversioned and no engine version was supplied", Cause: ErrUnversioned}
		}
		pkg.Unversioned = true
		pkg.ObjectVersion = objVerHint
	} else {
		pkg.ObjectVersion = ObjectVersion(fileVersion)
	}
	pkg.FileVersionUE4 = pkg.ObjectVersion

	licVer, err := r.I32()
	if err != nil {
		return err
	}
	pkg.FileVersionLicenseeUE4 = licVer

	if legacyFileVersion <= -2 {
		count, err := r.I32()
		if err != nil {
			return err
		}
		versions := make([]CustomVersion, count)
		for i := range versions {
			g, err := r.Guid()
			if err != nil {
				return err
			}
			v, err := r.I32()
			if err != nil {
				return err
			}
			versions[i] = CustomVersion{Key: g, Version: v}
		}
		pkg.CustomVersions = NewCustomVersionContainer(versions)
	}

	if pkg.TotalHeaderSize, err = r.I32(); err != nil {
		return err
	}
	if pkg.FolderName, err = r.FString(); err != nil {
		return err
	}
	if pkg.PackageFlags, err = r.U32(); err != nil {
		return err
	}
	if pkg.NameCount, err = r.I32(); err != nil {
		return err
	}
	if pkg.NameOffset, err = r.I32(); err != nil {
		return err
	}

	if pkg.ObjectVersion.AtLeast(VerUE4SerializeTextInPackages) {
		if pkg.GatherableTextDataCount, err = r.I32(); err != nil {
			return err
		}
		if pkg.GatherableTextDataOffset, err = r.I32(); err != nil {
			return err
		}
	}

	if pkg.ExportCount, err = r.I32(); err != nil {
		return err
	}
	if pkg.ExportOffset, err = r.I32(); err != nil {
		return err
	}
	if pkg.ImportCount, err = r.I32(); err != nil {
		return err
	}
	if pkg.ImportOffset, err = r.I32(); err != nil {
		return err
	}
	if pkg.DependsOffset, err = r.I32(); err != nil {
		return err
	}

	if pkg.ObjectVersion.AtLeast(VerUE4AddStringAssetReferencesMap) {
		if pkg.SoftPackageReferencesCount, err = r.I32(); err != nil {
			return err
		}
		if pkg.SoftPackageReferencesOffset, err = r.I32(); err != nil {
			return err
		}
	}
	if pkg.ObjectVersion.AtLeast(VerUE4AddedSearchableNames) {
		if pkg.SearchableNamesOffset, err = r.I32(); err != nil {
			return err
		}
	}
	if pkg.ThumbnailTableOffset, err = r.I32(); err != nil {
		return err
	}
	if pkg.Guid, err = r.Guid(); err != nil {
		return err
	}

	genCount, err := r.I32()
	if err != nil {
		return err
	}
	pkg.Generations = make([]PackageGeneration, genCount)
	for i := range pkg.Generations {
		ec, err := r.I32()
		if err != nil {
			return err
		}
		nc, err := r.I32()
		if err != nil {
			return err
		}
		pkg.Generations[i] = PackageGeneration{ExportCount: ec, NameCount: nc}
	}

	if pkg.ObjectVersion.AtLeast(VerUE4EngineVersionObject) {
		if pkg.SavedByEngineVersion, err = readEngineVersion(r); err != nil {
			return err
		}
	} else {
		verInt, err := r.I32()
		if err != nil {
			return err
		}
		pkg.SavedByEngineVersion = EngineVersion{Major: 4, Minor: 0, Patch: 0, Changelist: uint32(verInt)}
	}
	if pkg.CompatibleWithEngineVersion, err = readEngineVersion(r); err != nil {
		return err
	}

	if pkg.CompressionFlags, err = r.U32(); err != nil {
		return err
	}
	compressionBlockCount, err := r.I32()
	if err != nil {
		return err
	}
	if compressionBlockCount != 0 {
		return &CodecError{Kind: KindUnsupported, Offset: r.Pos(), Field: "CompressionBlocks", Message: "legacy compression blocks are unsupported", Cause: ErrLegacyCompression}
	}

	if pkg.PackageSource, err = r.U32(); err != nil {
		return err
	}
	additionalToCook, err := r.I32()
	if err != nil {
		return err
	}
	if additionalToCook != 0 {
		return &CodecError{Kind: KindUnsupported, Offset: r.Pos(), Field: "AdditionalPackagesToCook", Message: "non-empty AdditionalPackagesToCook is unsupported", Cause: ErrAdditionalToCook}
	}
	if legacyFileVersion > -7 {
		textureAllocations, err := r.I32()
		if err != nil {
			return err
		}
		if textureAllocations != 0 {
			return &CodecError{Kind: KindUnsupported, Offset: r.Pos(), Field: "TextureAllocations", Message: "non-zero texture allocations are unsupported", Cause: ErrTextureAllocations}
		}
	}

	if pkg.AssetRegistryDataOffset, err = r.I32(); err != nil {
		return err
	}
	if pkg.BulkDataStartOffset, err = r.I64(); err != nil {
		return err
	}

	if pkg.ObjectVersion.AtLeast(VerUE4WorldLevelInfo) {
		if pkg.WorldTileInfoDataOffset, err = r.I32(); err != nil {
			return err
		}
	}

	if pkg.ObjectVersion.AtLeast(VerUE4ChangedChunkIDToBeAnArrayOfChunkIDs) {
		count, err := r.I32()
		if err != nil {
			return err
		}
		ids := make([]int32, count)
		for i := range ids {
			if ids[i], err = r.I32(); err != nil {
				return err
			}
		}
		pkg.ChunkIDs = ids
	} else if pkg.ObjectVersion.AtLeast(VerUE4AddedChunkIDToAssetDataAndUPackage) {
		// Open Question resolution (spec.md §9): the source assigns into
		// chunk_ids[0] without pushing first here; allocate the slot.
		id, err := r.I32()
		if err != nil {
			return err
		}
		pkg.ChunkIDs = []int32{id}
	}

	if pkg.ObjectVersion.AtLeast(VerUE4PreloadDependenciesInCookedExports) {
		if pkg.PreloadDependencyCount, err = r.I32(); err != nil {
			return err
		}
		if pkg.PreloadDependencyOffset, err = r.I32(); err != nil {
			return err
		}
	}

	return nil
}

func readEngineVersion(r *Reader) (EngineVersion, error) {
	var ev EngineVersion
	var err error
	if ev.Major, err = r.U16(); err != nil {
		return ev, err
	}
	if ev.Minor, err = r.U16(); err != nil {
		return ev, err
	}
	if ev.Patch, err = r.U16(); err != nil {
		return ev, err
	}
	if ev.Changelist, err = r.U32(); err != nil {
		return ev, err
	}
	if ev.Branch, err = r.FString(); err != nil {
		return ev, err
	}
	return ev, nil
}

func writeEngineVersion(w *Writer, ev EngineVersion) {
	w.U16(ev.Major)
	w.U16(ev.Minor)
	w.U16(ev.Patch)
	w.U32(ev.Changelist)
	w.FString(ev.Branch)
}

// writeHeader emits the header scalars in the same field order readHeader
// consumes them, given the already-resolved table offsets the two-pass
// writer (writer.go) computed.
func writeHeader(w *Writer, pkg *Package) {
	binMagic := make([]byte, 4)
	binary.BigEndian.PutUint32(binMagic, PackageMagic)
	w.Raw(binMagic)

	w.I32(legacyFileVersionUE3)
	// legacyFileVersionUE3 == -4 so no LegacyUE3Version padding follows.

	if pkg.Unversioned {
		w.I32(fileVersionUnknown)
	} else {
		w.I32(int32(pkg.FileVersionUE4))
	}
	w.I32(pkg.FileVersionLicenseeUE4)

	versions := pkg.CustomVersions.All()
	w.I32(int32(len(versions)))
	for _, cv := range versions {
		w.Guid(cv.Key)
		w.I32(cv.Version)
	}

	w.I32(pkg.TotalHeaderSize)
	w.FString(pkg.FolderName)
	w.U32(pkg.PackageFlags)
	w.I32(pkg.NameCount)
	w.I32(pkg.NameOffset)

	if pkg.ObjectVersion.AtLeast(VerUE4SerializeTextInPackages) {
		w.I32(pkg.GatherableTextDataCount)
		w.I32(pkg.GatherableTextDataOffset)
	}

	w.I32(pkg.ExportCount)
	w.I32(pkg.ExportOffset)
	w.I32(pkg.ImportCount)
	w.I32(pkg.ImportOffset)
	w.I32(pkg.DependsOffset)

	if pkg.ObjectVersion.AtLeast(VerUE4AddStringAssetReferencesMap) {
		w.I32(pkg.SoftPackageReferencesCount)
		w.I32(pkg.SoftPackageReferencesOffset)
	}
	if pkg.ObjectVersion.AtLeast(VerUE4AddedSearchableNames) {
		w.I32(pkg.SearchableNamesOffset)
	}
	w.I32(pkg.ThumbnailTableOffset)
	w.Guid(pkg.Guid)

	w.I32(int32(len(pkg.Generations)))
	for _, g := range pkg.Generations {
		w.I32(g.ExportCount)
		w.I32(g.NameCount)
	}

	if pkg.ObjectVersion.AtLeast(VerUE4EngineVersionObject) {
		writeEngineVersion(w, pkg.SavedByEngineVersion)
	} else {
		w.I32(int32(pkg.SavedByEngineVersion.Changelist))
	}
	writeEngineVersion(w, pkg.CompatibleWithEngineVersion)

	w.U32(pkg.CompressionFlags)
	w.I32(0) // compression block count, always 0 (legacy compression unsupported)

	w.U32(pkg.PackageSource)
	w.I32(0) // AdditionalPackagesToCook count, always 0
	w.I32(0) // TextureAllocations count, always 0 (legacyFileVersion == -4 > -7)

	w.I32(pkg.AssetRegistryDataOffset)
	w.I64(pkg.BulkDataStartOffset)

	if pkg.ObjectVersion.AtLeast(VerUE4WorldLevelInfo) {
		w.I32(pkg.WorldTileInfoDataOffset)
	}

	if pkg.ObjectVersion.AtLeast(VerUE4ChangedChunkIDToBeAnArrayOfChunkIDs) {
		w.I32(int32(len(pkg.ChunkIDs)))
		for _, id := range pkg.ChunkIDs {
			w.I32(id)
		}
	} else if pkg.ObjectVersion.AtLeast(VerUE4AddedChunkIDToAssetDataAndUPackage) {
		if len(pkg.ChunkIDs) > 0 {
			w.I32(pkg.ChunkIDs[0])
		} else {
			w.I32(0)
		}
	}

	if pkg.ObjectVersion.AtLeast(VerUE4PreloadDependenciesInCookedExports) {
		w.I32(pkg.PreloadDependencyCount)
		w.I32(pkg.PreloadDependencyOffset)
	}
}
