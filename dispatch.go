// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import "strings"

// resolveExportClassName follows an export's ClassIndex to the resolved
// class name used for dispatch (spec.md §4.4): an import's object name,
// another export's object name, or (class_index == 0) the export is
// itself a class, keyed by its own object name.
func (pkg *Package) resolveExportClassName(e *Export) string {
	switch {
	case e.ClassIndex.IsNull():
		return resolveName(pkg.Names, e.ObjectName)
	case e.ClassIndex.IsImport():
		imp, err := pkg.GetImport(e.ClassIndex)
		if err != nil {
			return ""
		}
		return resolveName(pkg.Names, imp.ObjectName)
	default:
		other, err := pkg.GetExport(e.ClassIndex)
		if err != nil {
			return ""
		}
		return resolveName(pkg.Names, other.ObjectName)
	}
}

// decodeExportBody picks the specialized decoder for className per the
// exact-match/suffix rules of spec.md §4.4.
func (pkg *Package) decodeExportBody(r *Reader, className string) (ExportBody, error) {
	switch {
	case className == "Level":
		return pkg.decodeLevelExport(r)
	case className == "StringTable" || strings.HasSuffix(className, "StringTable"):
		return pkg.decodeStringTableExport(r)
	case className == "Enum" || className == "UserDefinedEnum":
		return pkg.decodeEnumExport(r)
	case className == "Function":
		return pkg.decodeFunctionExport(r)
	case strings.HasSuffix(className, "DataTable"):
		return pkg.decodeDataTableExport(r)
	case strings.HasSuffix(className, "BlueprintGeneratedClass"):
		return pkg.decodeClassExport(r)
	case strings.HasSuffix(className, "Property"):
		return pkg.decodePropertyExport(r, className)
	default:
		return pkg.decodeNormalExport(r)
	}
}

// readExportBody decodes export e's body at its declared serial range,
// demoting to RawExport on any decode failure (spec.md §4.8) and
// preserving whatever trailing bytes the engine expects but the
// specialized decoder did not consume (the "extras" span).
func (pkg *Package) readExportBody(data []byte, e *Export, rangeEnd int64) {
	className := pkg.resolveExportClassName(e)
	body, extras, err := pkg.tryDecodeExportBody(data, e, className, rangeEnd)
	if err != nil {
		pkg.addAnomaly("export %q (%s): %s; demoted to RawExport", resolveName(pkg.Names, e.ObjectName), className, err)
		raw := data[e.SerialOffset:rangeEnd]
		e.Body = RawExport{Bytes: append([]byte(nil), raw...)}
		e.Extras = nil
		return
	}
	e.Body = body
	e.Extras = extras
}

func (pkg *Package) tryDecodeExportBody(data []byte, e *Export, className string, rangeEnd int64) (body ExportBody, extras []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = newErr(KindProperty, e.SerialOffset, className, "panic during export decode: %v", rec)
		}
	}()
	if e.SerialOffset < 0 || rangeEnd > int64(len(data)) || e.SerialOffset > rangeEnd {
		return nil, nil, newErr(KindInvalidFile, e.SerialOffset, "SerialOffset", "export range out of bounds")
	}
	r := NewReader(data[e.SerialOffset:rangeEnd])
	body, err = pkg.decodeExportBody(r, className)
	if err != nil {
		return nil, nil, err
	}
	remaining := r.Len() - r.Pos()
	if remaining < 0 {
		return nil, nil, newErr(KindInvalidFile, r.Pos(), className, "decoder overran its declared export range")
	}
	if remaining > 0 {
		tail, _ := r.Bytes(int(remaining))
		extras = append([]byte(nil), tail...)
	}
	return body, extras, nil
}

// writeExportBody re-emits export e's body into w, in the same fixed
// order as read: the decoded body followed by its extras span.
func (pkg *Package) writeExportBody(w *Writer, e *Export) {
	switch body := e.Body.(type) {
	case RawExport:
		w.Raw(body.Bytes)
		return
	case NormalExport:
		pkg.WritePropertyList(w, body.Properties, 0)
	case LevelExport:
		pkg.WritePropertyList(w, body.Properties, 0)
		w.I32(int32(len(body.ActorReferences)))
		for _, idx := range body.ActorReferences {
			w.I32(int32(idx))
		}
	case StringTableExport:
		pkg.WritePropertyList(w, body.Properties, 0)
		w.FString(body.Namespace)
		w.I32(int32(len(body.Entries)))
		for _, e := range body.Entries {
			w.FString(e.Key)
			w.FString(e.Value)
		}
	case EnumExport:
		pkg.WritePropertyList(w, body.Properties, 0)
		w.I32(int32(len(body.Names)))
		for _, n := range body.Names {
			writeFNameInline(w, n.Name)
			w.I64(n.Value)
		}
		w.U8(uint8(body.CppForm))
	case FunctionExport:
		pkg.WritePropertyList(w, body.Properties, 0)
		w.I32(int32(len(body.ScriptBytecode)))
		w.Raw(body.ScriptBytecode)
	case DataTableExport:
		pkg.WritePropertyList(w, body.Properties, 0)
		writeFNameInline(w, body.RowStructName)
		w.I32(int32(len(body.Rows)))
		for _, row := range body.Rows {
			writeFNameInline(w, row.RowName)
			pkg.WritePropertyList(w, row.Properties, 1)
		}
	case PropertyExport:
		pkg.WritePropertyList(w, body.Properties, 0)
		switch pkg.resolveExportClassName(e) {
		case "ArrayProperty", "SetProperty":
			w.I32(int32(body.Inner))
		case "MapProperty":
			w.I32(int32(body.KeyProp))
			w.I32(int32(body.ValueProp))
		case "StructProperty":
			w.I32(int32(body.Struct))
		}
	case ClassExport:
		pkg.WritePropertyList(w, body.Properties, 0)
		w.I32(int32(body.SuperStruct))
		w.I32(int32(len(body.LoadedProperties)))
		for _, idx := range body.LoadedProperties {
			w.I32(int32(idx))
		}
	}
	w.Raw(e.Extras)
}
