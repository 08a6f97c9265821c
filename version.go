// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// ObjectVersion is the engine's monotonic object-version enum (spec.md
// §4.1). Every version gate is a simple `>=` predicate against one of
// these constants, never interpolation.
type ObjectVersion int32

// A subset of the engine's VER_UE4_* constants, named exactly as the
// format's own changelist-ordered enum (values are the real UE4 object
// version numbers).
const (
	VerUE4OldestLoadablePackage               ObjectVersion = 0
	VerUE4SerializeTextInPackages              ObjectVersion = 208
	VerUE4AddStringAssetReferencesMap          ObjectVersion = 212
	VerUE4AddedChunkIDToAssetDataAndUPackage   ObjectVersion = 216
	VerUE4WorldLevelInfo                       ObjectVersion = 224
	VerUE4ChangedChunkIDToBeAnArrayOfChunkIDs  ObjectVersion = 259
	VerUE4WorldLevelInfoUpdated                ObjectVersion = 259
	VerUE4LoadForEditorGame                    ObjectVersion = 322
	VerUE4EngineVersionObject                  ObjectVersion = 336
	VerUE4CookedAssetsInEditorSupport           ObjectVersion = 334
	VerUE4PropertyGUIDInPropertyTag             ObjectVersion = 503
	VerUE4NameHashesSerialized                  ObjectVersion = 504
	VerUE4AddedSearchableNames                  ObjectVersion = 505
	VerUE4PreloadDependenciesInCookedExports    ObjectVersion = 508
	VerUE464BitExportMapSerialSizes             ObjectVersion = 511
	VerUE4TemplateIndexInCookedExports          ObjectVersion = 510
	VerUE4PackageSummaryHasCompatibleEngineVersion ObjectVersion = 516

	// ObjectVersionUnknown is the sentinel FileVersion stored by an
	// unversioned package; the caller must supply an engine version before
	// parsing one.
	ObjectVersionUnknown ObjectVersion = 0
)

// AtLeast is the canonical `>=` version-gate predicate.
func (v ObjectVersion) AtLeast(gate ObjectVersion) bool { return v >= gate }

// CustomVersion is a per-feature version counter keyed by GUID (spec.md
// §3).
type CustomVersion struct {
	Key          Guid
	Version      int32
	FriendlyName string // optional, empty if unknown
}

// CustomVersionContainer holds a package's custom versions and answers
// gate queries by GUID or friendly name.
type CustomVersionContainer struct {
	versions []CustomVersion
}

// NewCustomVersionContainer wraps a slice of custom versions.
func NewCustomVersionContainer(versions []CustomVersion) *CustomVersionContainer {
	return &CustomVersionContainer{versions: append([]CustomVersion(nil), versions...)}
}

// All returns the stored custom versions.
func (c *CustomVersionContainer) All() []CustomVersion { return c.versions }

// Get returns the version for guid, or (0, false) if absent.
func (c *CustomVersionContainer) Get(guid Guid) (int32, bool) {
	for _, v := range c.versions {
		if v.Key == guid {
			return v.Version, true
		}
	}
	return 0, false
}

// GetByName returns the version for a friendly name, or (0, false) if
// absent.
func (c *CustomVersionContainer) GetByName(name string) (int32, bool) {
	for _, v := range c.versions {
		if v.FriendlyName == name {
			return v.Version, true
		}
	}
	return 0, false
}

// AtLeast reports whether guid's recorded version is >= gate. Absent
// custom versions gate as false (the feature guarded by that GUID cannot
// be present without the version entry that introduces it).
func (c *CustomVersionContainer) AtLeast(guid Guid, gate int32) bool {
	v, ok := c.Get(guid)
	return ok && v >= gate
}

// Set inserts or updates a custom version.
func (c *CustomVersionContainer) Set(cv CustomVersion) {
	for i := range c.versions {
		if c.versions[i].Key == cv.Key {
			c.versions[i] = cv
			return
		}
	}
	c.versions = append(c.versions, cv)
}

// Well-known custom version GUIDs referenced by name elsewhere in the
// codec (world-tile gating). Declared only for the handful this codec
// actually gates on.
var (
	GuidFrameworkObjectVersion = Guid{0x57, 0x92, 0x7A, 0xCB, 0x0B, 0x13, 0x4C, 0x65, 0xA0, 0x9A, 0xA9, 0x81, 0x79, 0x47, 0xC0, 0x9C}
	GuidWorldLevelInfoVersion  = Guid{0x42, 0x51, 0x33, 0xC3, 0x21, 0xBF, 0x4D, 0x1D, 0x92, 0xCB, 0x3C, 0x4A, 0x20, 0xD2, 0x9A, 0x9D}
)
