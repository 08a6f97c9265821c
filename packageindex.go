// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// PackageIndex is a signed reference into either the import table
// (negative: -i-1 => imports[i]) or the export table (positive: i+1 =>
// exports[i]); zero is null.
type PackageIndex int32

// NullIndex is the null PackageIndex.
const NullIndex PackageIndex = 0

// ImportIndex builds a PackageIndex addressing imports[i].
func ImportIndex(i int) PackageIndex { return PackageIndex(-int32(i) - 1) }

// ExportIndex builds a PackageIndex addressing exports[i].
func ExportIndex(i int) PackageIndex { return PackageIndex(int32(i) + 1) }

// IsNull reports whether the index is the null reference.
func (p PackageIndex) IsNull() bool { return p == NullIndex }

// IsImport reports whether the index addresses the import table.
func (p PackageIndex) IsImport() bool { return p < 0 }

// IsExport reports whether the index addresses the export table.
func (p PackageIndex) IsExport() bool { return p > 0 }

// ImportSlot returns the 0-based import table slot. Only valid when
// IsImport is true.
func (p PackageIndex) ImportSlot() int { return int(-p - 1) }

// ExportSlot returns the 0-based export table slot. Only valid when
// IsExport is true.
func (p PackageIndex) ExportSlot() int { return int(p - 1) }

// Validate checks the index resolves within bounds for the given table
// sizes, per the PackageIndex domain invariant (spec.md §8).
func (p PackageIndex) Validate(importCount, exportCount int) error {
	switch {
	case p.IsNull():
		return nil
	case p.IsImport():
		if p.ImportSlot() >= importCount {
			return newErr(KindInvalidPackageIndex, 0, "", "import index %d out of range (%d imports)", p.ImportSlot(), importCount)
		}
	case p.IsExport():
		if p.ExportSlot() >= exportCount {
			return newErr(KindInvalidPackageIndex, 0, "", "export index %d out of range (%d exports)", p.ExportSlot(), exportCount)
		}
	}
	return nil
}
