// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// Leaf property payloads (spec.md §3, "Leaf variants... carry a single
// value").
type (
	BoolValue    bool
	Int8Value    int8
	Int16Value   int16
	IntValue     int32
	Int64Value   int64
	ByteValue    uint8 // ByteProperty with no enum (EnumName == "None")
	EnumValue    FName // ByteProperty/EnumProperty with an enum type: the enum value's FName
	UInt16Value  uint16
	UInt32Value  uint32
	UInt64Value  uint64
	FloatValue   float32
	DoubleValue  float64
	StrValue     string
	NameValue    FName
	ObjectValue  PackageIndex
	SoftObjectValue struct {
		AssetPathName FName
		SubPathString string
	}
)

func (BoolValue) propertyValue()        {}
func (Int8Value) propertyValue()        {}
func (Int16Value) propertyValue()       {}
func (IntValue) propertyValue()         {}
func (Int64Value) propertyValue()       {}
func (ByteValue) propertyValue()        {}
func (EnumValue) propertyValue()        {}
func (UInt16Value) propertyValue()      {}
func (UInt32Value) propertyValue()      {}
func (UInt64Value) propertyValue()      {}
func (FloatValue) propertyValue()       {}
func (DoubleValue) propertyValue()      {}
func (StrValue) propertyValue()         {}
func (NameValue) propertyValue()        {}
func (ObjectValue) propertyValue()      {}
func (SoftObjectValue) propertyValue()  {}

// leafKinds are the property type names this codec decodes field-by-field
// (beyond the always-recursive Array/Set/Map/Struct and the
// always-inline-in-tag BoolProperty).
var leafKinds = map[string]bool{
	"Int8Property": true, "Int16Property": true, "IntProperty": true,
	"Int64Property": true, "ByteProperty": true, "EnumProperty": true,
	"UInt16Property": true, "UInt32Property": true, "UInt64Property": true,
	"FloatProperty": true, "DoubleProperty": true, "StrProperty": true,
	"NameProperty": true, "ObjectProperty": true, "SoftObjectProperty": true,
	"SoftClassProperty": true, "AssetObjectProperty": true, "ClassProperty": true,
}

func readLeafValue(r *Reader, tag *PropertyTag, typeName string) (PropertyValue, error) {
	switch typeName {
	case "Int8Property":
		v, err := r.U8()
		return Int8Value(int8(v)), err
	case "Int16Property":
		v, err := r.U16()
		return Int16Value(int16(v)), err
	case "IntProperty":
		v, err := r.I32()
		return IntValue(v), err
	case "Int64Property":
		v, err := r.I64()
		return Int64Value(v), err
	case "UInt16Property":
		v, err := r.U16()
		return UInt16Value(v), err
	case "UInt32Property":
		v, err := r.U32()
		return UInt32Value(v), err
	case "UInt64Property":
		v, err := r.U64()
		return UInt64Value(v), err
	case "FloatProperty":
		v, err := r.F32()
		return FloatValue(v), err
	case "DoubleProperty":
		v, err := r.F64()
		return DoubleValue(v), err
	case "StrProperty":
		v, err := r.FString()
		return StrValue(v), err
	case "NameProperty":
		v, err := readFNameInline(r)
		return NameValue(v), err
	case "ByteProperty", "EnumProperty":
		enumName, err := tagEnumName(tag)
		if err != nil {
			return nil, err
		}
		if enumName == "None" || enumName == "" {
			v, err := r.U8()
			return ByteValue(v), err
		}
		v, err := readFNameInline(r)
		return EnumValue(v), err
	case "ObjectProperty", "AssetObjectProperty", "ClassProperty":
		v, err := r.I32()
		return ObjectValue(v), err
	case "SoftObjectProperty", "SoftClassProperty":
		path, err := readFNameInline(r)
		if err != nil {
			return nil, err
		}
		sub, err := r.FString()
		return SoftObjectValue{path, sub}, err
	}
	return nil, newErr(KindUnsupported, r.Pos(), typeName, "unrecognized leaf property type")
}

func writeLeafValue(w *Writer, typeName string, v PropertyValue) {
	switch val := v.(type) {
	case Int8Value:
		w.U8(uint8(val))
	case Int16Value:
		w.U16(uint16(val))
	case IntValue:
		w.I32(int32(val))
	case Int64Value:
		w.I64(int64(val))
	case UInt16Value:
		w.U16(uint16(val))
	case UInt32Value:
		w.U32(uint32(val))
	case UInt64Value:
		w.U64(uint64(val))
	case FloatValue:
		w.F32(float32(val))
	case DoubleValue:
		w.F64(float64(val))
	case StrValue:
		w.FString(string(val))
	case NameValue:
		writeFNameInline(w, FName(val))
	case ByteValue:
		w.U8(uint8(val))
	case EnumValue:
		writeFNameInline(w, FName(val))
	case ObjectValue:
		w.I32(int32(val))
	case SoftObjectValue:
		writeFNameInline(w, val.AssetPathName)
		w.FString(val.SubPathString)
	}
}

// tagEnumName resolves the tag's EnumName FName to a bare string without
// needing the package's name table: property bodies decode before the
// Property wrapper has a chance to resolve ancestry names, so the enum
// gate is read directly off the tag's interned content by the caller
// (propertycodec.go) and passed through the tag's cached field instead.
// This placeholder is resolved by propertycodec.go before dispatch; see
// resolveTagNames.
func tagEnumName(tag *PropertyTag) (string, error) {
	return tag.resolvedEnumName, nil
}
