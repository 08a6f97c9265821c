// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// PackageFile pairs a decoded Package with the memory-mapped backing
// store(s) it was read from (the teacher's File/New/NewBytes/Close
// pattern in file.go, retargeted: one mapping for a combined package, or
// two for a uasset/uexp split).
type PackageFile struct {
	*Package

	uasset  mmap.MMap
	uexp    mmap.MMap
	fUasset *os.File
	fUexp   *os.File
}

// Open memory-maps a single combined package file (header, tables and
// export bodies all in one stream) and decodes it.
func Open(name string, objVerHint ObjectVersion, hintValid bool) (*PackageFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	pkg, err := ReadPackage(data, objVerHint, hintValid)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}
	return &PackageFile{Package: pkg, uasset: data, fUasset: f}, nil
}

// OpenSplit memory-maps a uasset/uexp pair (the common cooked-build
// layout, spec.md §5's separate-bulk mode) and decodes the pair as one
// joint address space: export serial offsets continue past the uasset
// stream's length into the uexp stream.
func OpenSplit(uassetPath, uexpPath string, objVerHint ObjectVersion, hintValid bool) (*PackageFile, error) {
	fa, err := os.Open(uassetPath)
	if err != nil {
		return nil, err
	}
	da, err := mmap.Map(fa, mmap.RDONLY, 0)
	if err != nil {
		fa.Close()
		return nil, err
	}

	fe, err := os.Open(uexpPath)
	if err != nil {
		da.Unmap()
		fa.Close()
		return nil, err
	}
	de, err := mmap.Map(fe, mmap.RDONLY, 0)
	if err != nil {
		fe.Close()
		da.Unmap()
		fa.Close()
		return nil, err
	}

	joint := make([]byte, len(da)+len(de))
	copy(joint, da)
	copy(joint[len(da):], de)

	pkg, err := ReadPackage(joint, objVerHint, hintValid)
	if err != nil {
		de.Unmap()
		fe.Close()
		da.Unmap()
		fa.Close()
		return nil, err
	}
	pkg.SeparateBulkMode = true
	return &PackageFile{Package: pkg, uasset: da, uexp: de, fUasset: fa, fUexp: fe}, nil
}

// Close unmaps the backing file(s) and closes their handles.
func (pf *PackageFile) Close() error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if pf.uexp != nil {
		record(pf.uexp.Unmap())
	}
	if pf.fUexp != nil {
		record(pf.fUexp.Close())
	}
	if pf.uasset != nil {
		record(pf.uasset.Unmap())
	}
	if pf.fUasset != nil {
		record(pf.fUasset.Close())
	}
	return firstErr
}
