// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// RebuildNameMap walks every import, export header and property body in
// discovery order and rewrites Names to contain exactly the strings still
// referenced, re-interned in that first-seen order (spec.md §4.3). Callers
// that build or mutate a Package by hand should call this before
// WritePackage: it discards stale entries left behind by removed
// imports/exports/properties instead of carrying them through to the
// written name table verbatim.
func (pkg *Package) RebuildNameMap() {
	old := pkg.Names
	next := NewNameTable()
	remap := func(n FName) FName {
		content, err := old.Content(n)
		if err != nil {
			return n
		}
		return FName{Index: next.Intern(content), Number: n.Number}
	}

	for i := range pkg.Imports {
		imp := &pkg.Imports[i]
		imp.ClassPackage = remap(imp.ClassPackage)
		imp.ClassName = remap(imp.ClassName)
		imp.ObjectName = remap(imp.ObjectName)
	}

	for i := range pkg.Exports {
		e := &pkg.Exports[i]
		e.ObjectName = remap(e.ObjectName)
		e.Body = remapExportBody(e.Body, old, remap)
	}

	pkg.Names = next
}

func remapExportBody(body ExportBody, old *NameTable, remap func(FName) FName) ExportBody {
	switch b := body.(type) {
	case NormalExport:
		remapProperties(b.Properties, old, remap)
		return b
	case RawExport:
		return b
	case LevelExport:
		remapProperties(b.Properties, old, remap)
		return b
	case StringTableExport:
		remapProperties(b.Properties, old, remap)
		return b
	case EnumExport:
		remapProperties(b.Properties, old, remap)
		for i := range b.Names {
			b.Names[i].Name = remap(b.Names[i].Name)
		}
		return b
	case FunctionExport:
		remapProperties(b.Properties, old, remap)
		return b
	case DataTableExport:
		remapProperties(b.Properties, old, remap)
		b.RowStructName = remap(b.RowStructName)
		for i := range b.Rows {
			b.Rows[i].RowName = remap(b.Rows[i].RowName)
			remapProperties(b.Rows[i].Properties, old, remap)
		}
		return b
	case PropertyExport:
		remapProperties(b.Properties, old, remap)
		return b
	case ClassExport:
		remapProperties(b.Properties, old, remap)
		return b
	default:
		return body
	}
}

func remapProperties(props []Property, old *NameTable, remap func(FName) FName) {
	for i := range props {
		remapProperty(&props[i], old, remap)
	}
}

func remapProperty(p *Property, old *NameTable, remap func(FName) FName) {
	p.Name = remap(p.Name)
	for i := range p.Ancestry {
		p.Ancestry[i] = remap(p.Ancestry[i])
	}
	if p.Tag != nil {
		remapTag(p.Tag, old, remap)
	}
	p.Value = remapValue(p.Value, old, remap)
}

// remapTag mirrors finishPropertyTag's type-specific field selection so a
// zero-value FName in an inapplicable field (e.g. ArrayInnerType on a
// non-array tag) is never mistaken for a real reference to name index 0.
func remapTag(tag *PropertyTag, old *NameTable, remap func(FName) FName) {
	tag.Name = remap(tag.Name)
	tag.Type = remap(tag.Type)
	typeName, _ := old.Content(tag.Type)
	switch typeName {
	case "ByteProperty", "EnumProperty":
		tag.EnumName = remap(tag.EnumName)
	case "ArrayProperty":
		tag.ArrayInnerType = remap(tag.ArrayInnerType)
	case "SetProperty":
		tag.SetInnerType = remap(tag.SetInnerType)
	case "MapProperty":
		tag.MapKeyType = remap(tag.MapKeyType)
		tag.MapValueType = remap(tag.MapValueType)
	case "StructProperty":
		tag.StructName = remap(tag.StructName)
	}
}

func remapValue(v PropertyValue, old *NameTable, remap func(FName) FName) PropertyValue {
	switch val := v.(type) {
	case ArrayValue:
		val.InnerType = remap(val.InnerType)
		remapProperties(val.Elements, old, remap)
		return val
	case SetValue:
		val.InnerType = remap(val.InnerType)
		remapProperties(val.RemovedElements, old, remap)
		remapProperties(val.Elements, old, remap)
		return val
	case MapValue:
		val.KeyType = remap(val.KeyType)
		val.ValueType = remap(val.ValueType)
		remapProperties(val.RemovedKeys, old, remap)
		for i := range val.Entries {
			remapProperty(&val.Entries[i].Key, old, remap)
			remapProperty(&val.Entries[i].Value, old, remap)
		}
		return val
	case StructValue:
		val.StructName = remap(val.StructName)
		remapProperties(val.Children, old, remap)
		return val
	case NameValue:
		return NameValue(remap(FName(val)))
	case EnumValue:
		return EnumValue(remap(FName(val)))
	case SoftObjectValue:
		val.AssetPathName = remap(val.AssetPathName)
		return val
	default:
		return v
	}
}
