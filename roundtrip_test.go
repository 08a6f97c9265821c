// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import "testing"

// newVersionedPackage returns an empty package stamped with ver, ready for
// the test to populate names/imports/exports before a WritePackage/
// ReadPackage round trip.
func newVersionedPackage(ver ObjectVersion) *Package {
	pkg := NewPackage()
	pkg.ObjectVersion = ver
	pkg.FileVersionUE4 = ver
	pkg.Unversioned = false
	return pkg
}

func mustWriteRead(t *testing.T, pkg *Package) *Package {
	t.Helper()
	data, err := WritePackage(pkg)
	if err != nil {
		t.Fatalf("WritePackage: %v", err)
	}
	got, err := ReadPackage(data, ObjectVersionUnknown, false)
	if err != nil {
		t.Fatalf("ReadPackage: %v", err)
	}
	return got
}

func TestRoundTripEmptyPackage(t *testing.T) {
	pkg := newVersionedPackage(VerUE4PreloadDependenciesInCookedExports)

	got := mustWriteRead(t, pkg)

	if got.ObjectVersion != pkg.ObjectVersion {
		t.Errorf("ObjectVersion = %d, want %d", got.ObjectVersion, pkg.ObjectVersion)
	}
	if got.NameCount != 0 {
		t.Errorf("NameCount = %d, want 0", got.NameCount)
	}
	if len(got.Imports) != 0 {
		t.Errorf("len(Imports) = %d, want 0", len(got.Imports))
	}
	if len(got.Exports) != 0 {
		t.Errorf("len(Exports) = %d, want 0", len(got.Exports))
	}
}

func TestRoundTripSingleImportNoExports(t *testing.T) {
	pkg := newVersionedPackage(VerUE4PreloadDependenciesInCookedExports)

	classPackage := pkg.AddNameReference("/Script/CoreUObject")
	className := pkg.AddNameReference("Class")
	objectName := pkg.AddNameReference("Object")
	pkg.Imports = []Import{{
		ClassPackage: classPackage,
		ClassName:    className,
		Outer:        NullIndex,
		ObjectName:   objectName,
	}}

	got := mustWriteRead(t, pkg)

	if len(got.Imports) != 1 {
		t.Fatalf("len(Imports) = %d, want 1", len(got.Imports))
	}
	imp := got.Imports[0]
	if s, _ := got.Names.Content(imp.ClassPackage); s != "/Script/CoreUObject" {
		t.Errorf("ClassPackage = %q, want /Script/CoreUObject", s)
	}
	if s, _ := got.Names.Content(imp.ClassName); s != "Class" {
		t.Errorf("ClassName = %q, want Class", s)
	}
	if s, _ := got.Names.Content(imp.ObjectName); s != "Object" {
		t.Errorf("ObjectName = %q, want Object", s)
	}
	if !imp.Outer.IsNull() {
		t.Errorf("Outer = %v, want null", imp.Outer)
	}
}

func TestRoundTripNormalExportIntProperty(t *testing.T) {
	pkg := newVersionedPackage(VerUE464BitExportMapSerialSizes)

	objectName := pkg.AddNameReference("MyObject")
	tag := &PropertyTag{Type: FName{Index: pkg.Names.Intern("IntProperty")}}
	prop := Property{
		Name:  pkg.AddNameReference("X"),
		Tag:   tag,
		Value: IntValue(42),
	}
	pkg.Exports = []Export{{
		ClassIndex: NullIndex,
		SuperIndex: NullIndex,
		OuterIndex: NullIndex,
		ObjectName: objectName,
		Body:       NormalExport{Properties: []Property{prop}},
	}}

	got := mustWriteRead(t, pkg)

	if len(got.Exports) != 1 {
		t.Fatalf("len(Exports) = %d, want 1", len(got.Exports))
	}
	exp := got.Exports[0]
	if s, _ := got.Names.Content(exp.ObjectName); s != "MyObject" {
		t.Errorf("ObjectName = %q, want MyObject", s)
	}
	body, ok := exp.Body.(NormalExport)
	if !ok {
		t.Fatalf("Body type = %T, want NormalExport", exp.Body)
	}
	if len(body.Properties) != 1 {
		t.Fatalf("len(Properties) = %d, want 1", len(body.Properties))
	}
	got1 := body.Properties[0]
	if s, _ := got.Names.Content(got1.Name); s != "X" {
		t.Errorf("Property.Name = %q, want X", s)
	}
	iv, ok := got1.Value.(IntValue)
	if !ok {
		t.Fatalf("Property.Value type = %T, want IntValue", got1.Value)
	}
	if iv != 42 {
		t.Errorf("Property.Value = %d, want 42", iv)
	}
}

func TestRoundTripArrayOfStructVectors(t *testing.T) {
	pkg := newVersionedPackage(VerUE464BitExportMapSerialSizes)

	objectName := pkg.AddNameReference("MyActor")
	vectorName := FName{Index: pkg.Names.Intern("Vector")}
	tag := &PropertyTag{
		Type:           FName{Index: pkg.Names.Intern("ArrayProperty")},
		ArrayInnerType: FName{Index: pkg.Names.Intern("StructProperty")},
	}
	arr := ArrayValue{
		InnerType: tag.ArrayInnerType,
		Elements: []Property{
			{Value: StructValue{StructName: vectorName, Fast: VectorValue{X: 1, Y: 2, Z: 3}}},
			{Value: StructValue{StructName: vectorName, Fast: VectorValue{X: 4, Y: 5, Z: 6}}},
		},
		// A deliberately arbitrary dummy tag size, distinct from the real
		// encoded element size, so the round trip can only pass by
		// preserving the read value rather than recomputing one.
		DummyTagSize: 999,
	}
	prop := Property{
		Name:  pkg.AddNameReference("Locations"),
		Tag:   tag,
		Value: arr,
	}
	pkg.Exports = []Export{{
		ClassIndex: NullIndex,
		SuperIndex: NullIndex,
		OuterIndex: NullIndex,
		ObjectName: objectName,
		Body:       NormalExport{Properties: []Property{prop}},
	}}

	got := mustWriteRead(t, pkg)

	body := got.Exports[0].Body.(NormalExport)
	if len(body.Properties) != 1 {
		t.Fatalf("len(Properties) = %d, want 1", len(body.Properties))
	}
	av, ok := body.Properties[0].Value.(ArrayValue)
	if !ok {
		t.Fatalf("Value type = %T, want ArrayValue", body.Properties[0].Value)
	}
	if len(av.Elements) != 2 {
		t.Fatalf("len(Elements) = %d, want 2", len(av.Elements))
	}
	if av.DummyTagSize != 999 {
		t.Errorf("DummyTagSize = %d, want 999 (dummy element tag must round-trip byte-identically)", av.DummyTagSize)
	}
	wantVectors := []VectorValue{{1, 2, 3}, {4, 5, 6}}
	for i, e := range av.Elements {
		sv, ok := e.Value.(StructValue)
		if !ok {
			t.Fatalf("element %d type = %T, want StructValue", i, e.Value)
		}
		vv, ok := sv.Fast.(VectorValue)
		if !ok {
			t.Fatalf("element %d Fast type = %T, want VectorValue", i, sv.Fast)
		}
		if vv != wantVectors[i] {
			t.Errorf("element %d = %+v, want %+v", i, vv, wantVectors[i])
		}
	}
}
