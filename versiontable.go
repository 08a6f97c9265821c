// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

// VersionTable is the engine_version -> (object_version, default custom
// versions) collaborator (spec.md §6), consulted when a package carries
// no FileVersionUE4 (unversioned header mode requires the caller to have
// already resolved an engine version before Read is called).
type VersionTable interface {
	// GetObjectVersion resolves an engine version string (e.g. "4.27") to
	// its object version.
	GetObjectVersion(engineVersion string) (ObjectVersion, bool)
	// GetDefaultCustomVersions returns the custom version set an engine
	// release shipped by default.
	GetDefaultCustomVersions(engineVersion string) ([]CustomVersion, bool)
	// GuessEngineVersion reverses GetObjectVersion: an engine release with
	// the highest table entry <= objVer. When several releases share that
	// entry, which of them is returned is not defined.
	GuessEngineVersion(objVer ObjectVersion) (string, bool)
}

// tomlVersionEntry is one row of the embedded engine-version table.
type tomlVersionEntry struct {
	ObjectVersion   int32                  `toml:"object_version"`
	CustomVersions  []tomlCustomVersionRow `toml:"custom_versions"`
}

type tomlCustomVersionRow struct {
	Guid         string `toml:"guid"`
	Version      int32  `toml:"version"`
	FriendlyName string `toml:"friendly_name"`
}

type tomlVersionTableFile struct {
	Engine map[string]tomlVersionEntry `toml:"engine"`
}

//go:embed versions.toml
var embeddedVersionTable string

// defaultVersionTable is a TOML-backed VersionTable loaded once from the
// embedded table below.
type defaultVersionTable struct {
	entries map[string]tomlVersionEntry
}

// NewDefaultVersionTable parses the embedded engine-version table.
func NewDefaultVersionTable() (VersionTable, error) {
	var parsed tomlVersionTableFile
	if _, err := toml.Decode(embeddedVersionTable, &parsed); err != nil {
		return nil, fmt.Errorf("uasset: decoding embedded version table: %w", err)
	}
	return &defaultVersionTable{entries: parsed.Engine}, nil
}

func (t *defaultVersionTable) GetObjectVersion(engineVersion string) (ObjectVersion, bool) {
	e, ok := t.entries[engineVersion]
	if !ok {
		return 0, false
	}
	return ObjectVersion(e.ObjectVersion), true
}

func (t *defaultVersionTable) GetDefaultCustomVersions(engineVersion string) ([]CustomVersion, bool) {
	e, ok := t.entries[engineVersion]
	if !ok {
		return nil, false
	}
	out := make([]CustomVersion, 0, len(e.CustomVersions))
	for _, row := range e.CustomVersions {
		g, err := parseGuidString(row.Guid)
		if err != nil {
			continue
		}
		out = append(out, CustomVersion{Key: g, Version: row.Version, FriendlyName: row.FriendlyName})
	}
	return out, true
}

func (t *defaultVersionTable) GuessEngineVersion(objVer ObjectVersion) (string, bool) {
	best := ""
	bestVer := ObjectVersion(-1)
	for name, e := range t.entries {
		v := ObjectVersion(e.ObjectVersion)
		if v <= objVer && v > bestVer {
			bestVer = v
			best = name
		}
	}
	return best, best != ""
}

// parseGuidString parses a "XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX" or bare
// 32-hex-digit GUID string, storing the 16 bytes in the order the hex
// digits appear (no per-word byte swap).
func parseGuidString(s string) (Guid, error) {
	var hex string
	for _, r := range s {
		if r == '-' {
			continue
		}
		hex += string(r)
	}
	if len(hex) != 32 {
		return Guid{}, fmt.Errorf("uasset: malformed guid %q", s)
	}
	var g Guid
	for i := 0; i < 16; i++ {
		var b byte
		if _, err := fmt.Sscanf(hex[i*2:i*2+2], "%02X", &b); err != nil {
			return Guid{}, err
		}
		g[i] = b
	}
	return g, nil
}
