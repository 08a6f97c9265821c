// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// ExportBody is the tagged union over the specialized export kinds the
// dispatcher (dispatch.go) can produce (spec.md §3/§4.4).
type ExportBody interface{ exportBody() }

// NormalExport is the fallback body for any class name that does not
// match one of the specialized suffixes: a plain tagged property tree.
type NormalExport struct{ Properties []Property }

// RawExport preserves an export's body verbatim because its decoder
// failed (spec.md §4.8); an unrecognized class decodes as NormalExport.
type RawExport struct{ Bytes []byte }

// LevelExport is a "Level" export: the level's own property tree plus
// the flat list of actor PackageIndexes it owns.
type LevelExport struct {
	Properties      []Property
	ActorReferences []PackageIndex
}

// StringTableEntry is one namespace-scoped key/value pair of a string
// table.
type StringTableEntry struct {
	Key   string
	Value string
}

// StringTableExport is a "StringTable"-suffixed export.
type StringTableExport struct {
	Properties []Property
	Namespace  string
	Entries    []StringTableEntry
}

// EnumValuePair is one enumerator name/value pair.
type EnumValuePair struct {
	Name  FName
	Value int64
}

// EnumExport is an "Enum"/"UserDefinedEnum" export.
type EnumExport struct {
	Properties []Property
	Names      []EnumValuePair
	CppForm    int8
}

// FunctionExport is a "Function" export; the Kismet bytecode itself is
// out of scope for this codec and is carried as an opaque span.
type FunctionExport struct {
	Properties     []Property
	ScriptBytecode []byte
}

// DataTableRow is one row of a DataTableExport: the row name plus its
// property tree (the row struct's fields).
type DataTableRow struct {
	RowName    FName
	Properties []Property
}

// DataTableExport is a "DataTable"-suffixed export.
type DataTableExport struct {
	Properties   []Property
	RowStructName FName
	Rows         []DataTableRow
}

// PropertyExport wraps a single FProperty reflection record
// ("*Property"-suffixed export). Inner/KeyProp/ValueProp/Struct are
// populated only when the resolved class name needs them (array/set
// element, map key/value, struct type respectively); the zero
// PackageIndex means "not applicable".
type PropertyExport struct {
	Properties []Property
	Inner      PackageIndex // ArrayProperty/SetProperty element FProperty export
	KeyProp    PackageIndex // MapProperty key FProperty export
	ValueProp  PackageIndex // MapProperty value FProperty export
	Struct     PackageIndex // StructProperty struct export/import
}

// ClassExport is a "BlueprintGeneratedClass"-suffixed export: a struct
// export plus the class's own field list. Dispatch-time scanning of
// LoadedProperties populates the package's MapKeyOverride/MapValueOverride
// tables (spec.md §4.4).
type ClassExport struct {
	Properties       []Property
	SuperStruct      PackageIndex
	LoadedProperties []PackageIndex
}

func (NormalExport) exportBody()      {}
func (RawExport) exportBody()         {}
func (LevelExport) exportBody()       {}
func (StringTableExport) exportBody() {}
func (EnumExport) exportBody()        {}
func (FunctionExport) exportBody()    {}
func (DataTableExport) exportBody()   {}
func (PropertyExport) exportBody()    {}
func (ClassExport) exportBody()       {}

func (pkg *Package) decodeNormalExport(r *Reader) (ExportBody, error) {
	props, err := pkg.ReadPropertyList(r, nil, 0)
	if err != nil {
		return nil, err
	}
	return NormalExport{Properties: props}, nil
}

func (pkg *Package) decodeLevelExport(r *Reader) (ExportBody, error) {
	props, err := pkg.ReadPropertyList(r, nil, 0)
	if err != nil {
		return nil, err
	}
	count, err := r.I32()
	if err != nil {
		return nil, err
	}
	actors := make([]PackageIndex, count)
	for i := range actors {
		idx, err := r.I32()
		if err != nil {
			return nil, err
		}
		actors[i] = PackageIndex(idx)
	}
	return LevelExport{Properties: props, ActorReferences: actors}, nil
}

func (pkg *Package) decodeStringTableExport(r *Reader) (ExportBody, error) {
	props, err := pkg.ReadPropertyList(r, nil, 0)
	if err != nil {
		return nil, err
	}
	ns, err := r.FString()
	if err != nil {
		return nil, err
	}
	count, err := r.I32()
	if err != nil {
		return nil, err
	}
	entries := make([]StringTableEntry, count)
	for i := range entries {
		k, err := r.FString()
		if err != nil {
			return nil, err
		}
		v, err := r.FString()
		if err != nil {
			return nil, err
		}
		entries[i] = StringTableEntry{k, v}
	}
	return StringTableExport{Properties: props, Namespace: ns, Entries: entries}, nil
}

func (pkg *Package) decodeEnumExport(r *Reader) (ExportBody, error) {
	props, err := pkg.ReadPropertyList(r, nil, 0)
	if err != nil {
		return nil, err
	}
	count, err := r.I32()
	if err != nil {
		return nil, err
	}
	names := make([]EnumValuePair, count)
	for i := range names {
		n, err := readFNameInline(r)
		if err != nil {
			return nil, err
		}
		v, err := r.I64()
		if err != nil {
			return nil, err
		}
		names[i] = EnumValuePair{n, v}
	}
	cppForm, err := r.U8()
	if err != nil {
		return nil, err
	}
	return EnumExport{Properties: props, Names: names, CppForm: int8(cppForm)}, nil
}

func (pkg *Package) decodeFunctionExport(r *Reader) (ExportBody, error) {
	props, err := pkg.ReadPropertyList(r, nil, 0)
	if err != nil {
		return nil, err
	}
	size, err := r.I32()
	if err != nil {
		return nil, err
	}
	code, err := r.Bytes(int(size))
	if err != nil {
		return nil, err
	}
	return FunctionExport{Properties: props, ScriptBytecode: append([]byte(nil), code...)}, nil
}

func (pkg *Package) decodeDataTableExport(r *Reader) (ExportBody, error) {
	props, err := pkg.ReadPropertyList(r, nil, 0)
	if err != nil {
		return nil, err
	}
	structName, err := readFNameInline(r)
	if err != nil {
		return nil, err
	}
	count, err := r.I32()
	if err != nil {
		return nil, err
	}
	rows := make([]DataTableRow, count)
	for i := range rows {
		rowName, err := readFNameInline(r)
		if err != nil {
			return nil, err
		}
		rowProps, err := pkg.ReadPropertyList(r, []FName{structName}, 1)
		if err != nil {
			return nil, err
		}
		rows[i] = DataTableRow{RowName: rowName, Properties: rowProps}
	}
	return DataTableExport{Properties: props, RowStructName: structName, Rows: rows}, nil
}

func (pkg *Package) decodePropertyExport(r *Reader, className string) (ExportBody, error) {
	props, err := pkg.ReadPropertyList(r, nil, 0)
	if err != nil {
		return nil, err
	}
	pe := PropertyExport{Properties: props}
	switch className {
	case "ArrayProperty", "SetProperty":
		idx, err := r.I32()
		if err != nil {
			return nil, err
		}
		pe.Inner = PackageIndex(idx)
	case "MapProperty":
		kidx, err := r.I32()
		if err != nil {
			return nil, err
		}
		vidx, err := r.I32()
		if err != nil {
			return nil, err
		}
		pe.KeyProp, pe.ValueProp = PackageIndex(kidx), PackageIndex(vidx)
	case "StructProperty":
		sidx, err := r.I32()
		if err != nil {
			return nil, err
		}
		pe.Struct = PackageIndex(sidx)
	}
	return pe, nil
}

func (pkg *Package) decodeClassExport(r *Reader) (ExportBody, error) {
	props, err := pkg.ReadPropertyList(r, nil, 0)
	if err != nil {
		return nil, err
	}
	superIdx, err := r.I32()
	if err != nil {
		return nil, err
	}
	count, err := r.I32()
	if err != nil {
		return nil, err
	}
	loaded := make([]PackageIndex, count)
	for i := range loaded {
		idx, err := r.I32()
		if err != nil {
			return nil, err
		}
		loaded[i] = PackageIndex(idx)
	}
	ce := ClassExport{Properties: props, SuperStruct: PackageIndex(superIdx), LoadedProperties: loaded}
	pkg.recordMapPropertyOverrides(&ce)
	return ce, nil
}

// recordMapPropertyOverrides implements the §4.4 class-dispatch side
// effect: for every loaded FMapProperty whose key or value sub-property
// is an FStructProperty resolving through an import, remember the
// struct type name so readMap can decode that map without a per-entry
// tag.
func (pkg *Package) recordMapPropertyOverrides(ce *ClassExport) {
	for _, idx := range ce.LoadedProperties {
		exp, err := pkg.GetExport(idx)
		if err != nil {
			continue
		}
		pe, ok := exp.Body.(PropertyExport)
		if !ok {
			continue
		}
		if pkg.GetExportClassType(exp) != "MapProperty" {
			continue
		}
		propName := resolveName(pkg.Names, exp.ObjectName)
		if structName, ok := pkg.structPropertyTypeName(pe.KeyProp); ok {
			pkg.MapKeyOverride[propName] = structName
		}
		if structName, ok := pkg.structPropertyTypeName(pe.ValueProp); ok {
			pkg.MapValueOverride[propName] = structName
		}
	}
}

// structPropertyTypeName resolves a KeyProp/ValueProp PackageIndex to its
// struct type name, only when that sub-property is itself an
// FStructProperty whose Struct field resolves through the import table.
func (pkg *Package) structPropertyTypeName(idx PackageIndex) (string, bool) {
	if idx.IsNull() {
		return "", false
	}
	sub, err := pkg.GetExport(idx)
	if err != nil {
		return "", false
	}
	subPE, ok := sub.Body.(PropertyExport)
	if !ok || pkg.GetExportClassType(sub) != "StructProperty" {
		return "", false
	}
	if subPE.Struct.IsNull() || !subPE.Struct.IsImport() {
		return "", false
	}
	imp, err := pkg.GetImport(subPE.Struct)
	if err != nil {
		return "", false
	}
	return resolveName(pkg.Names, imp.ObjectName), true
}
