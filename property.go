// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// maxPropertyDepth bounds the recursive property tree walk (spec.md §5).
const maxPropertyDepth = 256

// PropertyTag is the self-describing header that precedes every property
// body in a versioned (tagged) stream (spec.md §4.5 / GLOSSARY).
type PropertyTag struct {
	Name       FName
	Type       FName
	Size       int32
	ArrayIndex int32

	// Type-specific preamble fields; only the ones relevant to Type are
	// populated.
	BoolValue       bool    // BoolProperty: the value itself lives in the tag
	ArrayInnerType  FName   // ArrayProperty
	SetInnerType    FName   // SetProperty
	MapKeyType      FName   // MapProperty
	MapValueType    FName   // MapProperty
	MapRemovedCount int32   // MapProperty
	StructName      FName   // StructProperty
	StructGUID      Guid    // StructProperty
	EnumName        FName   // EnumProperty / ByteProperty

	PropertyGUID *Guid

	// Resolved string caches, populated by resolveTagNames once the
	// package's name table is reachable; not part of the wire format.
	resolvedEnumName string
}

// Property is a tagged union over one decoded property (spec.md §3).
type Property struct {
	Name             FName
	Ancestry         []FName
	PropertyGUID     *Guid
	DuplicationIndex int32
	Tag              *PropertyTag // nil for elements synthesized without their own tag (array/set/map children)
	Value            PropertyValue
}

// PropertyValue is the payload carried by a Property; concrete types are
// declared in property_leaf.go, property_recursive.go and faststruct.go.
type PropertyValue interface{ propertyValue() }

// OpaqueValue preserves a leaf property's body verbatim when this codec
// does not decode that property type field-by-field (TextProperty,
// delegate kinds, FieldPathProperty, InterfaceProperty, ...). Round-trip
// is exact because the tag's Size already bounds the body.
type OpaqueValue struct{ Bytes []byte }

func (OpaqueValue) propertyValue() {}

// finishPropertyTag reads the remainder of a tag once the type name string
// is known (the caller resolves Type.Index to a string to dispatch on).
func finishPropertyTag(r *Reader, objVer ObjectVersion, tag *PropertyTag, typeName string) error {
	size, err := r.I32()
	if err != nil {
		return err
	}
	tag.Size = size
	idx, err := r.I32()
	if err != nil {
		return err
	}
	tag.ArrayIndex = idx

	switch typeName {
	case "BoolProperty":
		v, err := r.Bool8()
		if err != nil {
			return err
		}
		tag.BoolValue = v
	case "ByteProperty", "EnumProperty":
		en, err := readFNameInline(r)
		if err != nil {
			return err
		}
		tag.EnumName = en
	case "ArrayProperty":
		it, err := readFNameInline(r)
		if err != nil {
			return err
		}
		tag.ArrayInnerType = it
	case "SetProperty":
		it, err := readFNameInline(r)
		if err != nil {
			return err
		}
		tag.SetInnerType = it
	case "MapProperty":
		kt, err := readFNameInline(r)
		if err != nil {
			return err
		}
		vt, err := readFNameInline(r)
		if err != nil {
			return err
		}
		removed, err := r.I32()
		if err != nil {
			return err
		}
		tag.MapKeyType = kt
		tag.MapValueType = vt
		tag.MapRemovedCount = removed
	case "StructProperty":
		sn, err := readFNameInline(r)
		if err != nil {
			return err
		}
		g, err := r.Guid()
		if err != nil {
			return err
		}
		tag.StructName = sn
		tag.StructGUID = g
	}

	if objVer.AtLeast(VerUE4PropertyGUIDInPropertyTag) {
		has, err := r.Bool8()
		if err != nil {
			return err
		}
		if has {
			g, err := r.Guid()
			if err != nil {
				return err
			}
			tag.PropertyGUID = &g
		}
	}
	return nil
}

// readFNameInline reads the two-i32 FName wire shape directly (used inside
// property tags, which always carry the header form regardless of the
// package's include-header gate for the tag itself).
func readFNameInline(r *Reader) (FName, error) {
	idx, err := r.I32()
	if err != nil {
		return FName{}, err
	}
	num, err := r.I32()
	return FName{Index: idx, Number: num}, err
}

func writeFNameInline(w *Writer, n FName) {
	w.I32(n.Index)
	w.I32(n.Number)
}
