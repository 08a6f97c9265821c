// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import (
	"encoding/binary"
	"fmt"
)

// Guid is a raw 16-byte identifier, used both for CustomVersion keys and
// struct/property GUIDs. The 16 bytes are the on-disk layout: four
// little-endian uint32 words, in the order the engine's FGuid serializes
// them.
type Guid [16]byte

// String renders the GUID the way the engine's FGuid::ToString does:
// eight hex digits per 32-bit word, no dashes.
func (g Guid) String() string {
	return fmt.Sprintf("%08X%08X%08X%08X",
		binary.LittleEndian.Uint32(g[0:4]), binary.LittleEndian.Uint32(g[4:8]),
		binary.LittleEndian.Uint32(g[8:12]), binary.LittleEndian.Uint32(g[12:16]))
}

// IsZero reports whether the GUID is all-zero.
func (g Guid) IsZero() bool { return g == Guid{} }
