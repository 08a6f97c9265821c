// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// FName is an interned string identifier plus a numeric display suffix.
// Two FNames compare equal iff both components match; the string itself is
// never embedded, it is resolved through the owning Package's NameTable.
type FName struct {
	Index  int32 // index into NameTable.entries
	Number int32 // display suffix, arbitrary
}

// NameEntry is one slot of the interned name map: the string plus the
// on-disk hash recorded for it (when the package serializes name hashes).
type NameEntry struct {
	Content string
	Hash    uint32
	// HashOverridden records that this entry had an explicit (possibly
	// zero) hash on disk, so a zero hash is not mistaken for "not yet
	// computed" on rewrite.
	HashOverridden bool
}

// NameTable is the package's intern list plus the reverse lookup used to
// resolve FNames by content on write.
type NameTable struct {
	entries []NameEntry
	lookup  map[string]int32
}

// NewNameTable returns an empty name table.
func NewNameTable() *NameTable {
	return &NameTable{lookup: make(map[string]int32)}
}

// Len returns the number of interned strings.
func (nt *NameTable) Len() int { return len(nt.entries) }

// Entries exposes the interned list in on-disk order.
func (nt *NameTable) Entries() []NameEntry { return nt.entries }

// Get resolves an interned index to its entry. ok is false if out of range.
func (nt *NameTable) Get(index int32) (NameEntry, bool) {
	if index < 0 || int(index) >= len(nt.entries) {
		return NameEntry{}, false
	}
	return nt.entries[index], true
}

// Content resolves an FName to its string, per the FName invariant that the
// string must be present in the name map.
func (nt *NameTable) Content(n FName) (string, error) {
	e, ok := nt.Get(n.Index)
	if !ok {
		return "", newErr(KindInvalidFile, 0, "FName", "index %d out of range (%d names)", n.Index, len(nt.entries))
	}
	return e.Content, nil
}

// Find returns the interned index of content, if present.
func (nt *NameTable) Find(content string) (int32, bool) {
	i, ok := nt.lookup[content]
	return i, ok
}

// Add appends content as a new entry (without deduplication check) and
// returns its new index. Callers should prefer Intern for idempotent
// insertion.
func (nt *NameTable) Add(content string) int32 {
	idx := int32(len(nt.entries))
	nt.entries = append(nt.entries, NameEntry{Content: content})
	nt.lookup[content] = idx
	return idx
}

// Intern returns the existing index for content, or appends a new entry.
// The name map grows monotonically during a write pass; callers must
// intern in a stable, deterministic order (see Package.RebuildNameMap).
func (nt *NameTable) Intern(content string) int32 {
	if idx, ok := nt.lookup[content]; ok {
		return idx
	}
	return nt.Add(content)
}

// MakeFName interns content (if necessary) and returns an FName with the
// given display number.
func (nt *NameTable) MakeFName(content string, number int32) FName {
	return FName{Index: nt.Intern(content), Number: number}
}

// SetHash records the on-disk hash for an already-interned entry.
func (nt *NameTable) SetHash(index int32, hash uint32) {
	if index >= 0 && int(index) < len(nt.entries) {
		nt.entries[index].Hash = hash
		nt.entries[index].HashOverridden = true
	}
}

// rebuildLookup reconstructs the reverse map after entries has been
// replaced wholesale. Nothing in the package calls it at present;
// RebuildNameMap builds a fresh table through Intern instead.
func (nt *NameTable) rebuildLookup() {
	nt.lookup = make(map[string]int32, len(nt.entries))
	for i, e := range nt.entries {
		nt.lookup[e.Content] = int32(i)
	}
}
