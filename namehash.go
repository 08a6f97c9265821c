// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import "strings"

// NameHash is the collaborator interface for the on-disk name-serialization
// hash (§6). The engine's actual algorithm is a fixed CRC variant treated
// here as an external, swappable dependency: callers that need byte-exact
// interop with real game data supply their own implementation; the default
// below is a simple, deterministic stand-in used only when writing a name
// entry that never carried a hash from the source file.
type NameHash interface {
	Hash(name string) uint32
}

// defaultNameHash is a small FNV-1a variant over the upper-cased name, good
// enough to round-trip packages this codec itself produced but NOT a
// reimplementation of the engine's CRC — see DESIGN.md.
type defaultNameHash struct{}

// DefaultNameHash is the package-wide default NameHash.
var DefaultNameHash NameHash = defaultNameHash{}

func (defaultNameHash) Hash(name string) uint32 {
	upper := strings.ToUpper(name)
	var h uint32 = 2166136261
	for i := 0; i < len(upper); i++ {
		h ^= uint32(upper[i])
		h *= 16777619
	}
	return h
}
