// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import "testing"

// TestUnversionedPropertyListRoundTrip checks that ReadPropertyList/
// WritePropertyList, at the top-level depth of an unversioned export, read
// and re-emit the presence header byte-identically instead of attempting a
// tagged-property decode.
func TestUnversionedPropertyListRoundTrip(t *testing.T) {
	pkg := NewPackage()
	pkg.Unversioned = true

	hdr := PackUnversionedHeader(map[uint32]bool{0: true, 1: true, 5: true}, map[uint32]bool{1: true})
	w := NewByteSink()
	writeUnversionedHeader(w, hdr)

	r := NewReader(w.Bytes())
	props, err := pkg.ReadPropertyList(r, nil, 0)
	if err != nil {
		t.Fatalf("ReadPropertyList: %v", err)
	}
	if len(props) != 1 {
		t.Fatalf("len(props) = %d, want 1 synthetic property", len(props))
	}
	up, ok := props[0].Value.(UnversionedPropertyData)
	if !ok {
		t.Fatalf("Value type = %T, want UnversionedPropertyData", props[0].Value)
	}

	out := NewByteSink()
	pkg.WritePropertyList(out, props, 0)

	if string(out.Bytes()) != string(w.Bytes()) {
		t.Errorf("re-emitted header = %v, want %v", out.Bytes(), w.Bytes())
	}

	present, zero := UnpackUnversionedHeader(up.Header)
	if !present[0] || !present[1] || !present[5] || present[2] {
		t.Errorf("present = %v, want {0,1,5}", present)
	}
	if !zero[1] {
		t.Errorf("zero = %v, want slot 1 zeroed", zero)
	}
}

// TestUnversionedPropertyListNestedDepthUnaffected checks that a nested
// property list (depth > 0), inside an unversioned package, still runs the
// ordinary tagged-property loop rather than the header-only branch —
// nested struct/array/map element lists are always tagged, regardless of
// the package's top-level unversioned flag.
func TestUnversionedPropertyListNestedDepthUnaffected(t *testing.T) {
	pkg := NewPackage()
	pkg.Unversioned = true

	w := NewByteSink()
	pkg.WritePropertyList(w, nil, 1) // just the "None" terminator, tagged form

	r := NewReader(w.Bytes())
	props, err := pkg.ReadPropertyList(r, nil, 1)
	if err != nil {
		t.Fatalf("ReadPropertyList: %v", err)
	}
	if len(props) != 0 {
		t.Errorf("len(props) = %d, want 0 (empty tagged list)", len(props))
	}
}
