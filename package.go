// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import (
	"fmt"
	"io"

	"github.com/cookedpak/uasset/log"
)

// Package is a fully decoded cooked asset (uasset/uexp pair, or a single
// combined file): the header scalars, the name table, the import/export
// tables, the preload-dependency region and optional world-tile metadata
// (spec.md §2-§3).
type Package struct {
	// Header scalars (spec.md §4.2).
	Tag                  uint32
	FileVersionUE4       ObjectVersion
	FileVersionLicenseeUE4 int32
	CustomVersions       *CustomVersionContainer
	TotalHeaderSize      int32
	FolderName           string
	PackageFlags         uint32
	NameCount            int32
	NameOffset           int32
	SoftObjectPathsCount int32
	SoftObjectPathsOffset int32
	GatherableTextDataCount  int32
	GatherableTextDataOffset int32
	ExportCount          int32
	ExportOffset         int32
	ImportCount          int32
	ImportOffset         int32
	DependsOffset        int32
	SoftPackageReferencesCount  int32
	SoftPackageReferencesOffset int32
	SearchableNamesOffset int32
	ThumbnailTableOffset int32
	Guid                 Guid
	Generations          []PackageGeneration
	SavedByEngineVersion EngineVersion
	CompatibleWithEngineVersion EngineVersion
	CompressionFlags     uint32
	PackageSource        uint32
	AdditionalPackagesToCook []string
	AssetRegistryDataOffset int32
	BulkDataStartOffset  int64
	WorldTileInfoDataOffset int32
	ChunkIDs             []int32
	PreloadDependencyCount  int32
	PreloadDependencyOffset int32

	// Whether this package was read without a FileVersionUE4 (unversioned
	// properties, spec.md §4.6); set by the caller from a VersionTable
	// lookup before ReadProperty* can run.
	ObjectVersion ObjectVersion
	Unversioned   bool

	// SeparateBulkMode mirrors PKG_FILEHANDLE_OPEN/export-body placement
	// across a uasset/uexp pair; when true, Write requires a bulk stream
	// and Read expects the export-body range to live past TotalHeaderSize
	// in the joint address space.
	SeparateBulkMode bool

	Names   *NameTable
	Imports []Import
	Exports []Export

	// DependsMap is the legacy per-export dependency list at depends_offset
	// (spec.md §4.2), kept alongside the newer preload-dependency region.
	DependsMap DependsMap

	// Preload-dependency cross-reference region (spec.md §4.7): one
	// PackageIndex per slot, the five per-export span fields in Export
	// index into this flat array.
	PreloadDependencies []PackageIndex

	SoftPackageReferences []string
	WorldTileInfo         *WorldTileInfo

	// AssetRegistryData is preserved verbatim as an opaque span (Open
	// Question resolution, SPEC_FULL.md §13): this codec does not parse
	// the embedded tagged-property blob the asset registry writes here.
	AssetRegistryData []byte

	// ExportsRawTail is a slot for trailing bytes between the header and
	// the first export's declared SerialOffset (bulk data, thumbnails, ...).
	// ReadPackage does not fill it and WritePackage does not emit it.
	ExportsRawTail []byte

	// MapKeyOverride/MapValueOverride record, per MapProperty name, the
	// struct type names a class's PropertyExport reflection data declared
	// for that map's keys/values (spec.md §4.5's "the decoder consults a
	// caller-supplied or previously-observed hint" case). Populated by
	// decodeClassExport via recordMapPropertyOverrides (exportbody.go).
	MapKeyOverride   map[string]string
	MapValueOverride map[string]string

	// Anomalies accumulates recoverable decode inconsistencies (resync
	// after a property tag size mismatch, an export whose body failed to
	// decode demoted to RawExport, ...) without aborting the read.
	Anomalies []string

	Logger *log.Helper
}

// PackageGeneration is one entry of the header's generations list (export
// count/name count snapshot from a previous save, spec.md §3).
type PackageGeneration struct {
	ExportCount int32
	NameCount   int32
}

// EngineVersion is the four-component engine version stamp (spec.md §3).
type EngineVersion struct {
	Major      uint16
	Minor      uint16
	Patch      uint16
	Changelist uint32
	Branch     string
}

// NewPackage returns an empty package ready to be populated by Read, or
// built up manually for Write.
func NewPackage() *Package {
	return &Package{
		Names:            NewNameTable(),
		CustomVersions:   NewCustomVersionContainer(nil),
		MapKeyOverride:   make(map[string]string),
		MapValueOverride: make(map[string]string),
		Logger:           log.NewHelper(log.NewFilter(log.NewStdLogger(io.Discard), log.FilterLevel(log.LevelError))),
	}
}

// GetImport returns the import at idx, which must be negative per
// PackageIndex convention.
func (p *Package) GetImport(idx PackageIndex) (*Import, error) {
	if !idx.IsImport() {
		return nil, fmt.Errorf("uasset: %d is not an import index", idx)
	}
	slot := idx.ImportSlot()
	if slot < 0 || slot >= len(p.Imports) {
		return nil, newErr(KindInvalidPackageIndex, 0, "Import", "index %d out of range (have %d imports)", idx, len(p.Imports))
	}
	return &p.Imports[slot], nil
}

// GetExport returns the export at idx, which must be positive per
// PackageIndex convention.
func (p *Package) GetExport(idx PackageIndex) (*Export, error) {
	if !idx.IsExport() {
		return nil, fmt.Errorf("uasset: %d is not an export index", idx)
	}
	slot := idx.ExportSlot()
	if slot < 0 || slot >= len(p.Exports) {
		return nil, newErr(KindInvalidPackageIndex, 0, "Export", "index %d out of range (have %d exports)", idx, len(p.Exports))
	}
	return &p.Exports[slot], nil
}

// FindNameReference returns the FName for s if it already exists in the
// name table.
func (p *Package) FindNameReference(s string) (FName, bool) {
	idx, ok := p.Names.Find(s)
	if !ok {
		return FName{}, false
	}
	return FName{Index: idx, Number: 0}, true
}

// AddNameReference interns s, returning its FName (Number 0).
func (p *Package) AddNameReference(s string) FName {
	return p.Names.MakeFName(s, 0)
}

// AddFName interns s at the given instance Number.
func (p *Package) AddFName(s string, number int32) FName {
	return p.Names.MakeFName(s, number)
}

// GetExportClassType resolves the human-readable class name of export e,
// following its ClassIndex through the import or export table (a null
// ClassIndex means the export is itself a class, keyed by its own name).
func (p *Package) GetExportClassType(e *Export) string {
	switch {
	case e.ClassIndex.IsNull():
		s, _ := p.Names.Content(e.ObjectName)
		return s
	case e.ClassIndex.IsImport():
		imp, err := p.GetImport(e.ClassIndex)
		if err != nil {
			return ""
		}
		s, _ := p.Names.Content(imp.ObjectName)
		return s
	default:
		other, err := p.GetExport(e.ClassIndex)
		if err != nil {
			return ""
		}
		s, _ := p.Names.Content(other.ObjectName)
		return s
	}
}

// addAnomaly records a recoverable inconsistency and mirrors it to the
// package logger.
func (p *Package) addAnomaly(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.Anomalies = append(p.Anomalies, msg)
	if p.Logger != nil {
		p.Logger.Warnf(msg)
	}
}

