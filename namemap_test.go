// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import "testing"

// TestRebuildNameMapDropsStaleEntries checks that a name interned but never
// referenced by any import/export/property afterward does not survive a
// rebuild, while names still reachable keep their content (their index may
// change, since the new table is built in discovery order).
func TestRebuildNameMapDropsStaleEntries(t *testing.T) {
	pkg := NewPackage()
	pkg.Names.Intern("Stale")
	className := pkg.AddNameReference("Class")
	objectName := pkg.AddNameReference("Object")
	pkg.Imports = []Import{{
		ClassPackage: className,
		ClassName:  className,
		Outer:      NullIndex,
		ObjectName: objectName,
	}}

	pkg.RebuildNameMap()

	if pkg.Names.Len() != 2 {
		t.Fatalf("Names.Len() = %d, want 2 (Stale must not survive)", pkg.Names.Len())
	}
	for _, want := range []string{"Class", "Object"} {
		if _, ok := pkg.Names.Find(want); !ok {
			t.Errorf("Find(%q) ok = false, want a valid index", want)
		}
	}
	imp := pkg.Imports[0]
	if s, _ := pkg.Names.Content(imp.ClassName); s != "Class" {
		t.Errorf("Imports[0].ClassName = %q, want Class", s)
	}
	if s, _ := pkg.Names.Content(imp.ObjectName); s != "Object" {
		t.Errorf("Imports[0].ObjectName = %q, want Object", s)
	}
}

// TestRebuildNameMapWalksPropertyTree checks that a name referenced only
// from deep inside a property tree (a struct property's own type name) is
// preserved, confirming the walk recurses into Exports' bodies, not just
// their headers.
func TestRebuildNameMapWalksPropertyTree(t *testing.T) {
	pkg := NewPackage()
	objectName := pkg.AddNameReference("MyActor")
	vectorName := FName{Index: pkg.Names.Intern("Vector")}
	prop := Property{
		Name:  pkg.AddNameReference("Location"),
		Value: StructValue{StructName: vectorName, Fast: VectorValue{X: 1, Y: 2, Z: 3}},
	}
	pkg.Exports = []Export{{
		ClassIndex: NullIndex,
		SuperIndex: NullIndex,
		OuterIndex: NullIndex,
		ObjectName: objectName,
		Body:       NormalExport{Properties: []Property{prop}},
	}}

	pkg.RebuildNameMap()

	if _, ok := pkg.Names.Find("Vector"); !ok {
		t.Error(`Find("Vector") ok = false, want the struct name preserved from the property tree`)
	}
	body := pkg.Exports[0].Body.(NormalExport)
	sv, ok := body.Properties[0].Value.(StructValue)
	if !ok {
		t.Fatalf("Value type = %T, want StructValue", body.Properties[0].Value)
	}
	if s, _ := pkg.Names.Content(sv.StructName); s != "Vector" {
		t.Errorf("StructName = %q, want Vector", s)
	}
}
