// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// Export is the base export header (spec.md §3). The body itself (the
// typed ExportBody) is decoded separately by the dispatcher (§4.4) once
// the header table has been fully read.
type Export struct {
	ClassIndex    PackageIndex
	SuperIndex    PackageIndex
	TemplateIndex PackageIndex // zero when ObjectVersion < VerUE4TemplateIndexInCookedExports
	OuterIndex    PackageIndex
	ObjectName    FName
	ObjectFlags   uint32
	SerialSize    int64
	SerialOffset  int64

	ForcedExport               bool
	NotForClient               bool
	NotForServer               bool
	PackageGUID                Guid
	PackageFlags               uint32
	NotAlwaysLoadedForEditorGame bool
	IsAsset                    bool

	// Preload-dependency span (spec.md §4.7), present only when
	// ObjectVersion >= VerUE4PreloadDependenciesInCookedExports.
	FirstExportDependency                        int32
	SerializationBeforeSerializationDependencies int32
	CreateBeforeSerializationDependencies        int32
	SerializationBeforeCreateDependencies        int32
	CreateBeforeCreateDependencies                int32

	// Body is populated by the export dispatcher after the full header
	// table has been read (§4.4).
	Body ExportBody
	// Extras holds trailing bytes the engine ignores but the stream
	// expects, the gap between the decoded body and the next export's
	// SerialOffset.
	Extras []byte
}

func readExportHeader(r *Reader, objVer ObjectVersion) (Export, error) {
	var e Export
	ci, err := r.I32()
	if err != nil {
		return e, err
	}
	e.ClassIndex = PackageIndex(ci)

	si, err := r.I32()
	if err != nil {
		return e, err
	}
	e.SuperIndex = PackageIndex(si)

	if objVer.AtLeast(VerUE4TemplateIndexInCookedExports) {
		ti, err := r.I32()
		if err != nil {
			return e, err
		}
		e.TemplateIndex = PackageIndex(ti)
	}

	oi, err := r.I32()
	if err != nil {
		return e, err
	}
	e.OuterIndex = PackageIndex(oi)

	on, err := readFNameInline(r)
	if err != nil {
		return e, err
	}
	e.ObjectName = on

	flags, err := r.U32()
	if err != nil {
		return e, err
	}
	e.ObjectFlags = flags

	if objVer.AtLeast(VerUE464BitExportMapSerialSizes) {
		ss, err := r.I64()
		if err != nil {
			return e, err
		}
		so, err := r.I64()
		if err != nil {
			return e, err
		}
		e.SerialSize, e.SerialOffset = ss, so
	} else {
		ss, err := r.I32()
		if err != nil {
			return e, err
		}
		so, err := r.I32()
		if err != nil {
			return e, err
		}
		e.SerialSize, e.SerialOffset = int64(ss), int64(so)
	}

	if e.ForcedExport, err = r.Bool32(); err != nil {
		return e, err
	}
	if e.NotForClient, err = r.Bool32(); err != nil {
		return e, err
	}
	if e.NotForServer, err = r.Bool32(); err != nil {
		return e, err
	}
	if e.PackageGUID, err = r.Guid(); err != nil {
		return e, err
	}
	if e.PackageFlags, err = r.U32(); err != nil {
		return e, err
	}
	if objVer.AtLeast(VerUE4LoadForEditorGame) {
		if e.NotAlwaysLoadedForEditorGame, err = r.Bool32(); err != nil {
			return e, err
		}
	}
	if objVer.AtLeast(VerUE4CookedAssetsInEditorSupport) {
		if e.IsAsset, err = r.Bool32(); err != nil {
			return e, err
		}
	}

	if objVer.AtLeast(VerUE4PreloadDependenciesInCookedExports) {
		if e.FirstExportDependency, err = r.I32(); err != nil {
			return e, err
		}
		if e.SerializationBeforeSerializationDependencies, err = r.I32(); err != nil {
			return e, err
		}
		if e.CreateBeforeSerializationDependencies, err = r.I32(); err != nil {
			return e, err
		}
		if e.SerializationBeforeCreateDependencies, err = r.I32(); err != nil {
			return e, err
		}
		if e.CreateBeforeCreateDependencies, err = r.I32(); err != nil {
			return e, err
		}
	}
	return e, nil
}

func writeExportHeader(w *Writer, objVer ObjectVersion, e Export) {
	w.I32(int32(e.ClassIndex))
	w.I32(int32(e.SuperIndex))
	if objVer.AtLeast(VerUE4TemplateIndexInCookedExports) {
		w.I32(int32(e.TemplateIndex))
	}
	w.I32(int32(e.OuterIndex))
	writeFNameInline(w, e.ObjectName)
	w.U32(e.ObjectFlags)
	if objVer.AtLeast(VerUE464BitExportMapSerialSizes) {
		w.I64(e.SerialSize)
		w.I64(e.SerialOffset)
	} else {
		w.I32(int32(e.SerialSize))
		w.I32(int32(e.SerialOffset))
	}
	w.Bool32(e.ForcedExport)
	w.Bool32(e.NotForClient)
	w.Bool32(e.NotForServer)
	w.Guid(e.PackageGUID)
	w.U32(e.PackageFlags)
	if objVer.AtLeast(VerUE4LoadForEditorGame) {
		w.Bool32(e.NotAlwaysLoadedForEditorGame)
	}
	if objVer.AtLeast(VerUE4CookedAssetsInEditorSupport) {
		w.Bool32(e.IsAsset)
	}
	if objVer.AtLeast(VerUE4PreloadDependenciesInCookedExports) {
		w.I32(e.FirstExportDependency)
		w.I32(e.SerializationBeforeSerializationDependencies)
		w.I32(e.CreateBeforeSerializationDependencies)
		w.I32(e.SerializationBeforeCreateDependencies)
		w.I32(e.CreateBeforeCreateDependencies)
	}
}
