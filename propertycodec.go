// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import "fmt"

// resolveName resolves an FName to its string content, returning "" on a
// dangling index rather than failing outright — callers that need strict
// PackageIndex-range validation run Package.ValidatePackageIndices
// separately.
func resolveName(nt *NameTable, n FName) string {
	s, err := nt.Content(n)
	if err != nil {
		return ""
	}
	return s
}

func resolveTagNames(nt *NameTable, tag *PropertyTag) {
	tag.resolvedEnumName = resolveName(nt, tag.EnumName)
}

// ReadPropertyList decodes a tag-terminated sequence of properties — the
// body of a NormalExport or a generic StructProperty (spec.md §4.5).
func (pkg *Package) ReadPropertyList(r *Reader, ancestry []FName, depth int) ([]Property, error) {
	if depth > maxPropertyDepth {
		return nil, ErrRecursionLimit
	}
	if pkg.Unversioned && depth == 0 {
		return pkg.readUnversionedPropertyList(r)
	}
	var props []Property
	for {
		nameFN, err := readFNameInline(r)
		if err != nil {
			return nil, err
		}
		name := resolveName(pkg.Names, nameFN)
		if name == "None" {
			return props, nil
		}
		typeFN, err := readFNameInline(r)
		if err != nil {
			return nil, err
		}
		typeName := resolveName(pkg.Names, typeFN)
		tag := &PropertyTag{Name: nameFN, Type: typeFN}
		if err := finishPropertyTag(r, pkg.ObjectVersion, tag, typeName); err != nil {
			return nil, err
		}
		resolveTagNames(pkg.Names, tag)

		start := r.Pos()
		val, err := pkg.readPropertyValue(r, tag, typeName, ancestry, depth)
		if err != nil {
			return nil, &CodecError{Kind: KindProperty, Offset: start, Field: name, Message: err.Error(), Cause: err}
		}
		if consumed := r.Pos() - start; consumed != int64(tag.Size) && typeName != "BoolProperty" {
			pkg.Anomalies = append(pkg.Anomalies, fmt.Sprintf(
				"property %q (%s) consumed %d bytes, tag declared %d; resyncing", name, typeName, consumed, tag.Size))
			r.Seek(start + int64(tag.Size))
		}

		props = append(props, Property{
			Name:             nameFN,
			Ancestry:         ancestry,
			PropertyGUID:     tag.PropertyGUID,
			DuplicationIndex: tag.ArrayIndex,
			Tag:              tag,
			Value:            val,
		})
	}
}

func (pkg *Package) readPropertyValue(r *Reader, tag *PropertyTag, typeName string, ancestry []FName, depth int) (PropertyValue, error) {
	switch {
	case typeName == "BoolProperty":
		return BoolValue(tag.BoolValue), nil
	case typeName == "ArrayProperty":
		return pkg.readArray(r, tag, ancestry, depth)
	case typeName == "SetProperty":
		return pkg.readSet(r, tag, ancestry, depth)
	case typeName == "MapProperty":
		return pkg.readMap(r, tag, ancestry, depth)
	case typeName == "StructProperty":
		return pkg.readStruct(r, tag, int(tag.Size), append(ancestry, tag.Name), depth)
	case leafKinds[typeName]:
		return readLeafValue(r, tag, typeName)
	default:
		b, err := r.Bytes(int(tag.Size))
		if err != nil {
			return nil, err
		}
		return OpaqueValue{append([]byte(nil), b...)}, nil
	}
}

func (pkg *Package) readStruct(r *Reader, tag *PropertyTag, size int, ancestry []FName, depth int) (PropertyValue, error) {
	if depth+1 > maxPropertyDepth {
		return nil, ErrRecursionLimit
	}
	name := resolveName(pkg.Names, tag.StructName)
	if IsFastPathStruct(name) {
		fv, err := readFastStruct(r, name, int32(size))
		if err != nil {
			return nil, err
		}
		return StructValue{StructName: tag.StructName, StructGUID: tag.StructGUID, Fast: fv}, nil
	}
	children, err := pkg.ReadPropertyList(r, ancestry, depth+1)
	if err != nil {
		return nil, err
	}
	return StructValue{StructName: tag.StructName, StructGUID: tag.StructGUID, Children: children}, nil
}

// readInnerElement reads one element without its own tag, for array/set/map
// bodies. structName/enumName carry the context a dummy tag supplied.
func (pkg *Package) readInnerElement(r *Reader, innerTypeName, structName, enumName string, ancestry []FName, depth int) (PropertyValue, error) {
	switch {
	case innerTypeName == "StructProperty":
		fakeTag := &PropertyTag{StructName: FName{Index: -1}}
		structFN, _ := pkg.FindNameReference(structName)
		if IsFastPathStruct(structName) {
			// Size is unknown up front for inline-in-array structs; the
			// fast-path decoders consume exactly their fixed layout and
			// ignore the size hint in that case.
			fv, err := readFastStruct(r, structName, 0)
			if err != nil {
				return nil, err
			}
			return StructValue{StructName: structFN, Fast: fv}, nil
		}
		children, err := pkg.ReadPropertyList(r, append(ancestry, fakeTag.Name), depth+1)
		if err != nil {
			return nil, err
		}
		return StructValue{StructName: structFN, Children: children}, nil
	case innerTypeName == "BoolProperty":
		v, err := r.Bool8()
		return BoolValue(v), err
	case innerTypeName == "ByteProperty", innerTypeName == "EnumProperty":
		fakeTag := &PropertyTag{resolvedEnumName: enumName}
		return readLeafValue(r, fakeTag, innerTypeName)
	case leafKinds[innerTypeName]:
		return readLeafValue(r, &PropertyTag{}, innerTypeName)
	default:
		return nil, newErr(KindUnsupported, r.Pos(), innerTypeName, "unsupported array/set/map element type")
	}
}

func (pkg *Package) writeInnerElement(w *Writer, innerTypeName string, v PropertyValue, depth int) {
	switch val := v.(type) {
	case StructValue:
		if val.Fast != nil {
			writeFastStruct(w, val.Fast)
		} else {
			pkg.WritePropertyList(w, val.Children, depth+1)
		}
	case BoolValue:
		w.Bool8(bool(val))
	default:
		writeLeafValue(w, innerTypeName, v)
	}
}

func (pkg *Package) readArray(r *Reader, tag *PropertyTag, ancestry []FName, depth int) (PropertyValue, error) {
	count, err := r.I32()
	if err != nil {
		return nil, err
	}
	innerName := resolveName(pkg.Names, tag.ArrayInnerType)
	structName, enumName := "", ""
	var dummyTagSize int32
	if innerName == "StructProperty" || innerName == "ByteProperty" || innerName == "EnumProperty" {
		dummy, err := pkg.readDummyElementTag(r, innerName)
		if err != nil {
			return nil, err
		}
		structName = resolveName(pkg.Names, dummy.StructName)
		enumName = resolveName(pkg.Names, dummy.EnumName)
		dummyTagSize = dummy.Size
	}
	elems := make([]Property, 0, count)
	for i := int32(0); i < count; i++ {
		val, err := pkg.readInnerElement(r, innerName, structName, enumName, ancestry, depth+1)
		if err != nil {
			return nil, err
		}
		elems = append(elems, Property{Name: tag.Name, Ancestry: ancestry, Value: val})
	}
	return ArrayValue{InnerType: tag.ArrayInnerType, Elements: elems, DummyTagSize: dummyTagSize}, nil
}

func (pkg *Package) readSet(r *Reader, tag *PropertyTag, ancestry []FName, depth int) (PropertyValue, error) {
	innerName := resolveName(pkg.Names, tag.SetInnerType)
	structName, enumName := "", ""
	var dummyTagSize int32
	if innerName == "StructProperty" || innerName == "ByteProperty" || innerName == "EnumProperty" {
		dummy, err := pkg.readDummyElementTag(r, innerName)
		if err != nil {
			return nil, err
		}
		structName = resolveName(pkg.Names, dummy.StructName)
		enumName = resolveName(pkg.Names, dummy.EnumName)
		dummyTagSize = dummy.Size
	}
	removedCount, err := r.I32()
	if err != nil {
		return nil, err
	}
	removed := make([]Property, 0, removedCount)
	for i := int32(0); i < removedCount; i++ {
		val, err := pkg.readInnerElement(r, innerName, structName, enumName, ancestry, depth+1)
		if err != nil {
			return nil, err
		}
		removed = append(removed, Property{Name: tag.Name, Ancestry: ancestry, Value: val})
	}
	count, err := r.I32()
	if err != nil {
		return nil, err
	}
	elems := make([]Property, 0, count)
	for i := int32(0); i < count; i++ {
		val, err := pkg.readInnerElement(r, innerName, structName, enumName, ancestry, depth+1)
		if err != nil {
			return nil, err
		}
		elems = append(elems, Property{Name: tag.Name, Ancestry: ancestry, Value: val})
	}
	return SetValue{InnerType: tag.SetInnerType, RemovedElements: removed, Elements: elems, DummyTagSize: dummyTagSize}, nil
}

func (pkg *Package) readMap(r *Reader, tag *PropertyTag, ancestry []FName, depth int) (PropertyValue, error) {
	keyName := resolveName(pkg.Names, tag.MapKeyType)
	valName := resolveName(pkg.Names, tag.MapValueType)
	keyStruct, keyEnum := pkg.resolveMapElementHint(resolveName(pkg.Names, tag.Name), keyName, true)
	valStruct, valEnum := pkg.resolveMapElementHint(resolveName(pkg.Names, tag.Name), valName, false)

	removed := make([]Property, 0, tag.MapRemovedCount)
	for i := int32(0); i < tag.MapRemovedCount; i++ {
		v, err := pkg.readInnerElement(r, keyName, keyStruct, keyEnum, ancestry, depth+1)
		if err != nil {
			return nil, err
		}
		removed = append(removed, Property{Name: tag.Name, Ancestry: ancestry, Value: v})
	}
	count, err := r.I32()
	if err != nil {
		return nil, err
	}
	entries := make([]MapEntry, 0, count)
	for i := int32(0); i < count; i++ {
		kv, err := pkg.readInnerElement(r, keyName, keyStruct, keyEnum, ancestry, depth+1)
		if err != nil {
			return nil, err
		}
		vv, err := pkg.readInnerElement(r, valName, valStruct, valEnum, ancestry, depth+1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, MapEntry{
			Key:   Property{Name: tag.Name, Ancestry: ancestry, Value: kv},
			Value: Property{Name: tag.Name, Ancestry: ancestry, Value: vv},
		})
	}
	return MapValue{KeyType: tag.MapKeyType, ValueType: tag.MapValueType, RemovedKeys: removed, Entries: entries}, nil
}

// resolveMapElementHint consults the overrides populated during class-export
// dispatch (§4.4) when a map's key/value wire type is ambiguous (a struct
// with no further tag available).
func (pkg *Package) resolveMapElementHint(propName, typeName string, isKey bool) (structName, enumName string) {
	if typeName != "StructProperty" {
		return "", ""
	}
	if isKey {
		if s, ok := pkg.MapKeyOverride[propName]; ok {
			return s, ""
		}
	} else {
		if s, ok := pkg.MapValueOverride[propName]; ok {
			return s, ""
		}
	}
	return "", ""
}

// WritePropertyList writes a tag-terminated property sequence: the
// symmetric counterpart to ReadPropertyList. Each property's body is
// measured into a scratch sink first because the tag's Size field
// precedes the body on the wire.
func (pkg *Package) WritePropertyList(w *Writer, props []Property, depth int) {
	if pkg.Unversioned && depth == 0 {
		pkg.writeUnversionedPropertyList(w, props)
		return
	}
	for _, p := range props {
		pkg.writeProperty(w, p, depth)
	}
	noneIdx := pkg.Names.Intern("None")
	writeFNameInline(w, FName{Index: noneIdx})
}

func (pkg *Package) writeProperty(w *Writer, p Property, depth int) {
	tag := p.Tag
	typeName := resolveName(pkg.Names, tag.Type)

	body := NewByteSink()
	if typeName != "BoolProperty" {
		pkg.writePropertyValue(body, tag, typeName, p.Value, depth)
	} else {
		tag.BoolValue = bool(p.Value.(BoolValue))
	}
	tag.Size = int32(body.Pos())

	writeFNameInline(w, p.Name)
	writeFNameInline(w, tag.Type)
	writePropertyTagBody(w, pkg.ObjectVersion, tag, typeName)
	w.Raw(body.Bytes())
}

// writePropertyTagBody writes everything after name+type: size, array
// index, preamble, optional GUID (split out so the caller can write
// name/type once up front, matching the read path).
func writePropertyTagBody(w *Writer, objVer ObjectVersion, tag *PropertyTag, typeName string) {
	w.I32(tag.Size)
	w.I32(tag.ArrayIndex)
	switch typeName {
	case "BoolProperty":
		w.Bool8(tag.BoolValue)
	case "ByteProperty", "EnumProperty":
		writeFNameInline(w, tag.EnumName)
	case "ArrayProperty":
		writeFNameInline(w, tag.ArrayInnerType)
	case "SetProperty":
		writeFNameInline(w, tag.SetInnerType)
	case "MapProperty":
		writeFNameInline(w, tag.MapKeyType)
		writeFNameInline(w, tag.MapValueType)
		w.I32(tag.MapRemovedCount)
	case "StructProperty":
		writeFNameInline(w, tag.StructName)
		w.Guid(tag.StructGUID)
	}
	if objVer.AtLeast(VerUE4PropertyGUIDInPropertyTag) {
		w.Bool8(tag.PropertyGUID != nil)
		if tag.PropertyGUID != nil {
			w.Guid(*tag.PropertyGUID)
		}
	}
}

func (pkg *Package) writePropertyValue(w *Writer, tag *PropertyTag, typeName string, v PropertyValue, depth int) {
	switch typeName {
	case "ArrayProperty":
		pkg.writeArray(w, tag, v.(ArrayValue), depth)
	case "SetProperty":
		pkg.writeSet(w, tag, v.(SetValue), depth)
	case "MapProperty":
		pkg.writeMap(w, tag, v.(MapValue), depth)
	case "StructProperty":
		pkg.writeStructValue(w, v.(StructValue), depth)
	default:
		if op, ok := v.(OpaqueValue); ok {
			w.Raw(op.Bytes)
			return
		}
		writeLeafValue(w, typeName, v)
	}
}

func (pkg *Package) writeStructValue(w *Writer, sv StructValue, depth int) {
	if sv.Fast != nil {
		writeFastStruct(w, sv.Fast)
		return
	}
	pkg.WritePropertyList(w, sv.Children, depth+1)
}

func (pkg *Package) writeArray(w *Writer, tag *PropertyTag, av ArrayValue, depth int) {
	w.I32(int32(len(av.Elements)))
	innerName := resolveName(pkg.Names, tag.ArrayInnerType)
	if innerName == "StructProperty" || innerName == "ByteProperty" || innerName == "EnumProperty" {
		pkg.writeDummyElementTag(w, tag.Name, av.Elements, innerName, av.DummyTagSize)
	}
	for _, e := range av.Elements {
		pkg.writeInnerElement(w, innerName, e.Value, depth+1)
	}
}

func (pkg *Package) writeSet(w *Writer, tag *PropertyTag, sv SetValue, depth int) {
	innerName := resolveName(pkg.Names, tag.SetInnerType)
	if innerName == "StructProperty" || innerName == "ByteProperty" || innerName == "EnumProperty" {
		all := append(append([]Property(nil), sv.RemovedElements...), sv.Elements...)
		pkg.writeDummyElementTag(w, tag.Name, all, innerName, sv.DummyTagSize)
	}
	w.I32(int32(len(sv.RemovedElements)))
	for _, e := range sv.RemovedElements {
		pkg.writeInnerElement(w, innerName, e.Value, depth+1)
	}
	w.I32(int32(len(sv.Elements)))
	for _, e := range sv.Elements {
		pkg.writeInnerElement(w, innerName, e.Value, depth+1)
	}
}

func (pkg *Package) writeMap(w *Writer, tag *PropertyTag, mv MapValue, depth int) {
	tag.MapRemovedCount = int32(len(mv.RemovedKeys))
	keyName := resolveName(pkg.Names, tag.MapKeyType)
	valName := resolveName(pkg.Names, tag.MapValueType)
	for _, k := range mv.RemovedKeys {
		pkg.writeInnerElement(w, keyName, k.Value, depth+1)
	}
	w.I32(int32(len(mv.Entries)))
	for _, e := range mv.Entries {
		pkg.writeInnerElement(w, keyName, e.Key.Value, depth+1)
		pkg.writeInnerElement(w, valName, e.Value.Value, depth+1)
	}
}

// readDummyElementTag reads the one-off property tag that precedes
// struct/byte/enum array and set bodies, carrying the element struct or
// enum type (spec.md §4.5: "read one dummy property tag describing the
// element layout").
func (pkg *Package) readDummyElementTag(r *Reader, innerName string) (*PropertyTag, error) {
	name, err := readFNameInline(r)
	if err != nil {
		return nil, err
	}
	typ, err := readFNameInline(r)
	if err != nil {
		return nil, err
	}
	tag := &PropertyTag{Name: name, Type: typ}
	if err := finishPropertyTag(r, pkg.ObjectVersion, tag, innerName); err != nil {
		return nil, err
	}
	return tag, nil
}

// writeDummyElementTag emits the one-off property tag that precedes
// struct/byte/enum array and set bodies, carrying the element struct or
// enum type. size is the dummy tag's Size field as originally read
// (readDummyElementTag); re-emitting it verbatim keeps a write byte-
// identical instead of zeroing what readArray/readSet captured.
func (pkg *Package) writeDummyElementTag(w *Writer, fieldName FName, elems []Property, innerName string, size int32) {
	dummy := &PropertyTag{Name: fieldName, Type: FName{Index: pkg.Names.Intern(innerName)}, Size: size}
	if len(elems) > 0 {
		if sv, ok := elems[0].Value.(StructValue); ok {
			dummy.StructName = sv.StructName
			dummy.StructGUID = sv.StructGUID
		}
	}
	writeFNameInline(w, dummy.Name)
	writeFNameInline(w, dummy.Type)
	writePropertyTagBody(w, pkg.ObjectVersion, dummy, innerName)
}
