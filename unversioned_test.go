// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import "testing"

// TestUnversionedHeaderRoundTrip exercises the fragment/zero-mask pack and
// unpack against the slot set {0,1,5} with slot 1 carrying the zero
// sentinel (spec.md §8's worked example; see DESIGN.md for why this
// implementation's fragment layout departs from the literal skip_num the
// spec's prose gives for this scenario).
func TestUnversionedHeaderRoundTrip(t *testing.T) {
	present := map[uint32]bool{0: true, 1: true, 5: true}
	zero := map[uint32]bool{1: true}

	hdr := PackUnversionedHeader(present, zero)

	gotPresent, gotZero := UnpackUnversionedHeader(hdr)
	if len(gotPresent) != len(present) {
		t.Fatalf("present slots = %v, want %v", gotPresent, present)
	}
	for slot := range present {
		if !gotPresent[slot] {
			t.Errorf("slot %d missing from unpacked present set", slot)
		}
	}
	for slot, want := range zero {
		if gotZero[slot] != want {
			t.Errorf("slot %d zero = %v, want %v", slot, gotZero[slot], want)
		}
	}
	for slot := range gotPresent {
		if slot != 0 && slot != 1 && slot != 5 {
			t.Errorf("unexpected present slot %d", slot)
		}
	}

	last := hdr.Fragments[len(hdr.Fragments)-1]
	if !last.IsLast {
		t.Errorf("last fragment IsLast = false")
	}
}

// TestUnversionedHeaderWireRoundTrip checks the on-disk encoding (not just
// the map-level pack/unpack) survives a write/read cycle.
func TestUnversionedHeaderWireRoundTrip(t *testing.T) {
	present := map[uint32]bool{0: true, 1: true, 5: true}
	zero := map[uint32]bool{1: true}
	hdr := PackUnversionedHeader(present, zero)

	w := NewByteSink()
	writeUnversionedHeader(w, hdr)

	r := NewReader(w.Bytes())
	got, err := readUnversionedHeader(r)
	if err != nil {
		t.Fatalf("readUnversionedHeader: %v", err)
	}

	if len(got.Fragments) != len(hdr.Fragments) {
		t.Fatalf("len(Fragments) = %d, want %d", len(got.Fragments), len(hdr.Fragments))
	}
	for i, f := range hdr.Fragments {
		g := got.Fragments[i]
		if g.SkipNum != f.SkipNum || g.ValueNum != f.ValueNum || g.IsLast != f.IsLast || g.HasZeros != f.HasZeros {
			t.Errorf("fragment %d = %+v, want %+v", i, g, f)
		}
	}
	if got.HasNonZeroValues != hdr.HasNonZeroValues {
		t.Errorf("HasNonZeroValues = %v, want %v", got.HasNonZeroValues, hdr.HasNonZeroValues)
	}
}

func TestPackUnversionedHeaderEmpty(t *testing.T) {
	hdr := PackUnversionedHeader(nil, nil)
	if len(hdr.Fragments) != 1 {
		t.Fatalf("len(Fragments) = %d, want 1", len(hdr.Fragments))
	}
	if !hdr.Fragments[0].IsLast {
		t.Errorf("single fragment IsLast = false")
	}
	present, zero := UnpackUnversionedHeader(hdr)
	if len(present) != 0 || len(zero) != 0 {
		t.Errorf("present/zero = %v/%v, want both empty", present, zero)
	}
}
