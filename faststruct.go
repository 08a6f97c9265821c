// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// FastStructValue is the inline-layout payload of a StructProperty whose
// struct type is one of the engine's hard-coded "fast-path" structs
// (spec.md §4.5), decoded without a child-property sequence.
type FastStructValue interface{ fastStructValue() }

// fastPathStructs is the set of struct type names the engine encodes
// inline rather than as a generic child-property sequence. Names follow
// spec.md §4.5's list.
var fastPathStructs = map[string]bool{
	"Vector": true, "Vector2D": true, "Vector4": true, "Color": true,
	"LinearColor": true, "Quat": true, "Rotator": true, "IntPoint": true,
	"IntVector": true, "IntVector4": true, "Box": true, "Box2D": true,
	"Plane": true, "Guid": true, "DateTime": true, "Timespan": true,
	"Transform": true, "RichCurveKey": true, "PerPlatformFloat": true,
	"PerPlatformInt": true, "PerPlatformBool": true, "FloatRange": true,
	"Int32Range": true, "FloatRangeBound": true, "Int32RangeBound": true,
	"SoftClassPath": true, "SoftObjectPath": true, "GameplayTagContainer": true,
	"SmartName": true, "NavAgentSelector": true, "ExpressionInput": true,
	"ColorMaterialInput": true, "ScalarMaterialInput": true,
	"ShadingModelMaterialInput": true, "VectorMaterialInput": true,
	"Vector2MaterialInput": true, "MaterialAttributesInput": true,
	"MovieSceneEvalTemplatePtr": true, "MovieSceneTrackImplementationPtr": true,
}

// IsFastPathStruct reports whether name is one of the inline-layout struct
// types.
func IsFastPathStruct(name string) bool { return fastPathStructs[name] }

// Concrete fast-path struct values this codec decodes field-by-field. Any
// fast-path name outside this set still round-trips via RawFastStruct,
// which preserves the struct body as an opaque byte blob (see DESIGN.md).

type VectorValue struct{ X, Y, Z float32 }
type Vector2DValue struct{ X, Y float32 }
type Vector4Value struct{ X, Y, Z, W float32 }
type ColorValue struct{ B, G, R, A uint8 }
type LinearColorValue struct{ R, G, B, A float32 }
type QuatValue struct{ X, Y, Z, W float32 }
type RotatorValue struct{ Pitch, Yaw, Roll float32 }
type IntPointValue struct{ X, Y int32 }
type PlaneValue struct{ X, Y, Z, W float32 }
type GuidValue struct{ Value Guid }
type DateTimeValue struct{ Ticks int64 }
type TimespanValue struct{ Ticks int64 }
type BoxValue struct {
	Min, Max VectorValue
	IsValid  bool
}
type TransformValue struct {
	Rotation    QuatValue
	Translation VectorValue
	Scale3D     VectorValue
}
type RangeBoundValue struct {
	Type  uint8 // 0=Exclusive, 1=Inclusive, 2=Open
	Value float32
}
type FloatRangeValue struct{ Lower, Upper RangeBoundValue }
type Int32RangeValue struct{ Lower, Upper RangeBoundValue }
type PerPlatformFloatValue struct {
	Cooked bool
	Value  float32
}

// RawFastStruct preserves a fast-path struct's body verbatim when this
// codec does not decode that particular struct name field-by-field.
type RawFastStruct struct{ Bytes []byte }

func (VectorValue) fastStructValue()           {}
func (Vector2DValue) fastStructValue()         {}
func (Vector4Value) fastStructValue()          {}
func (ColorValue) fastStructValue()            {}
func (LinearColorValue) fastStructValue()      {}
func (QuatValue) fastStructValue()             {}
func (RotatorValue) fastStructValue()          {}
func (IntPointValue) fastStructValue()         {}
func (PlaneValue) fastStructValue()            {}
func (GuidValue) fastStructValue()             {}
func (DateTimeValue) fastStructValue()         {}
func (TimespanValue) fastStructValue()         {}
func (BoxValue) fastStructValue()              {}
func (TransformValue) fastStructValue()        {}
func (FloatRangeValue) fastStructValue()       {}
func (Int32RangeValue) fastStructValue()       {}
func (PerPlatformFloatValue) fastStructValue() {}
func (RawFastStruct) fastStructValue()         {}

func readVector(r *Reader) (VectorValue, error) {
	x, err := r.F32()
	if err != nil {
		return VectorValue{}, err
	}
	y, err := r.F32()
	if err != nil {
		return VectorValue{}, err
	}
	z, err := r.F32()
	return VectorValue{x, y, z}, err
}

func writeVector(w *Writer, v VectorValue) { w.F32(v.X); w.F32(v.Y); w.F32(v.Z) }

func readRangeBound(r *Reader) (RangeBoundValue, error) {
	typ, err := r.U8()
	if err != nil {
		return RangeBoundValue{}, err
	}
	val, err := r.F32()
	return RangeBoundValue{typ, val}, err
}

func writeRangeBound(w *Writer, v RangeBoundValue) { w.U8(v.Type); w.F32(v.Value) }

// readFastStruct decodes the inline body of a fast-path struct. size is the
// tag's declared body size in bytes, consulted for structs this codec does
// not decompose field-by-field.
func readFastStruct(r *Reader, name string, size int32) (FastStructValue, error) {
	switch name {
	case "Vector", "IntVector":
		v, err := readVector(r)
		return v, err
	case "Vector2D":
		x, err := r.F32()
		if err != nil {
			return nil, err
		}
		y, err := r.F32()
		return Vector2DValue{x, y}, err
	case "Vector4":
		x, err := r.F32()
		if err != nil {
			return nil, err
		}
		y, err := r.F32()
		if err != nil {
			return nil, err
		}
		z, err := r.F32()
		if err != nil {
			return nil, err
		}
		w, err := r.F32()
		return Vector4Value{x, y, z, w}, err
	case "Color":
		b, err := r.U8()
		if err != nil {
			return nil, err
		}
		g, err := r.U8()
		if err != nil {
			return nil, err
		}
		rr, err := r.U8()
		if err != nil {
			return nil, err
		}
		a, err := r.U8()
		return ColorValue{b, g, rr, a}, err
	case "LinearColor":
		rr, err := r.F32()
		if err != nil {
			return nil, err
		}
		g, err := r.F32()
		if err != nil {
			return nil, err
		}
		b, err := r.F32()
		if err != nil {
			return nil, err
		}
		a, err := r.F32()
		return LinearColorValue{rr, g, b, a}, err
	case "Quat":
		x, err := r.F32()
		if err != nil {
			return nil, err
		}
		y, err := r.F32()
		if err != nil {
			return nil, err
		}
		z, err := r.F32()
		if err != nil {
			return nil, err
		}
		w, err := r.F32()
		return QuatValue{x, y, z, w}, err
	case "Rotator":
		p, err := r.F32()
		if err != nil {
			return nil, err
		}
		y, err := r.F32()
		if err != nil {
			return nil, err
		}
		rl, err := r.F32()
		return RotatorValue{p, y, rl}, err
	case "IntPoint":
		x, err := r.I32()
		if err != nil {
			return nil, err
		}
		y, err := r.I32()
		return IntPointValue{x, y}, err
	case "Plane":
		x, err := r.F32()
		if err != nil {
			return nil, err
		}
		y, err := r.F32()
		if err != nil {
			return nil, err
		}
		z, err := r.F32()
		if err != nil {
			return nil, err
		}
		w, err := r.F32()
		return PlaneValue{x, y, z, w}, err
	case "Guid":
		g, err := r.Guid()
		return GuidValue{g}, err
	case "DateTime":
		t, err := r.I64()
		return DateTimeValue{t}, err
	case "Timespan":
		t, err := r.I64()
		return TimespanValue{t}, err
	case "Box", "Box2D":
		min, err := readVector(r)
		if err != nil {
			return nil, err
		}
		max, err := readVector(r)
		if err != nil {
			return nil, err
		}
		valid, err := r.Bool8()
		return BoxValue{min, max, valid}, err
	case "Transform":
		rot, err := readQuat(r)
		if err != nil {
			return nil, err
		}
		trans, err := readVector(r)
		if err != nil {
			return nil, err
		}
		scale, err := readVector(r)
		return TransformValue{rot, trans, scale}, err
	case "FloatRange":
		lo, err := readRangeBound(r)
		if err != nil {
			return nil, err
		}
		hi, err := readRangeBound(r)
		return FloatRangeValue{lo, hi}, err
	case "Int32Range":
		lo, err := readRangeBound(r)
		if err != nil {
			return nil, err
		}
		hi, err := readRangeBound(r)
		return Int32RangeValue{lo, hi}, err
	case "PerPlatformFloat":
		cooked, err := r.Bool8()
		if err != nil {
			return nil, err
		}
		v, err := r.F32()
		return PerPlatformFloatValue{cooked, v}, err
	default:
		b, err := r.Bytes(int(size))
		if err != nil {
			return nil, err
		}
		cp := append([]byte(nil), b...)
		return RawFastStruct{cp}, nil
	}
}

func readQuat(r *Reader) (QuatValue, error) {
	x, err := r.F32()
	if err != nil {
		return QuatValue{}, err
	}
	y, err := r.F32()
	if err != nil {
		return QuatValue{}, err
	}
	z, err := r.F32()
	if err != nil {
		return QuatValue{}, err
	}
	w, err := r.F32()
	return QuatValue{x, y, z, w}, err
}

func writeFastStruct(w *Writer, v FastStructValue) {
	switch val := v.(type) {
	case VectorValue:
		writeVector(w, val)
	case Vector2DValue:
		w.F32(val.X)
		w.F32(val.Y)
	case Vector4Value:
		w.F32(val.X)
		w.F32(val.Y)
		w.F32(val.Z)
		w.F32(val.W)
	case ColorValue:
		w.U8(val.B)
		w.U8(val.G)
		w.U8(val.R)
		w.U8(val.A)
	case LinearColorValue:
		w.F32(val.R)
		w.F32(val.G)
		w.F32(val.B)
		w.F32(val.A)
	case QuatValue:
		w.F32(val.X)
		w.F32(val.Y)
		w.F32(val.Z)
		w.F32(val.W)
	case RotatorValue:
		w.F32(val.Pitch)
		w.F32(val.Yaw)
		w.F32(val.Roll)
	case IntPointValue:
		w.I32(val.X)
		w.I32(val.Y)
	case PlaneValue:
		w.F32(val.X)
		w.F32(val.Y)
		w.F32(val.Z)
		w.F32(val.W)
	case GuidValue:
		w.Guid(val.Value)
	case DateTimeValue:
		w.I64(val.Ticks)
	case TimespanValue:
		w.I64(val.Ticks)
	case BoxValue:
		writeVector(w, val.Min)
		writeVector(w, val.Max)
		w.Bool8(val.IsValid)
	case TransformValue:
		w.F32(val.Rotation.X)
		w.F32(val.Rotation.Y)
		w.F32(val.Rotation.Z)
		w.F32(val.Rotation.W)
		writeVector(w, val.Translation)
		writeVector(w, val.Scale3D)
	case FloatRangeValue:
		writeRangeBound(w, val.Lower)
		writeRangeBound(w, val.Upper)
	case Int32RangeValue:
		writeRangeBound(w, val.Lower)
		writeRangeBound(w, val.Upper)
	case PerPlatformFloatValue:
		w.Bool8(val.Cooked)
		w.F32(val.Value)
	case RawFastStruct:
		w.Raw(val.Bytes)
	}
}
