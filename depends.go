// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// DependsMap holds, for each export (by export table slot), the list of
// other objects it depends on — legacy dependency data superseded by the
// preload-dependency region (§4.7) in newer files but still present at
// depends_offset for every version this codec supports.
type DependsMap [][]PackageIndex

func readDependsMap(r *Reader, exportCount int32) (DependsMap, error) {
	deps := make(DependsMap, exportCount)
	for i := int32(0); i < exportCount; i++ {
		count, err := r.I32()
		if err != nil {
			return nil, err
		}
		list := make([]PackageIndex, count)
		for j := int32(0); j < count; j++ {
			idx, err := r.I32()
			if err != nil {
				return nil, err
			}
			list[j] = PackageIndex(idx)
		}
		deps[i] = list
	}
	return deps, nil
}

func writeDependsMap(w *Writer, deps DependsMap) {
	for _, list := range deps {
		w.I32(int32(len(list)))
		for _, idx := range list {
			w.I32(int32(idx))
		}
	}
}

// readSoftPackageReferences reads the soft-package-reference list: a
// count followed by that many fstrings.
func readSoftPackageReferences(r *Reader) ([]string, error) {
	count, err := r.I32()
	if err != nil {
		return nil, err
	}
	refs := make([]string, count)
	for i := range refs {
		s, err := r.FString()
		if err != nil {
			return nil, err
		}
		refs[i] = s
	}
	return refs, nil
}

func writeSoftPackageReferences(w *Writer, refs []string) {
	w.I32(int32(len(refs)))
	for _, s := range refs {
		w.FString(s)
	}
}

// readPreloadDependencies reads the flat preload-dependency cross-reference
// region (§4.7): count PackageIndexes, where count comes from the header's
// PreloadDependencyCount (the region carries no count prefix of its own).
// Each export's four span fields slice into this region starting at
// FirstExportDependency.
func readPreloadDependencies(r *Reader, count int32) ([]PackageIndex, error) {
	deps := make([]PackageIndex, count)
	for i := range deps {
		idx, err := r.I32()
		if err != nil {
			return nil, err
		}
		deps[i] = PackageIndex(idx)
	}
	return deps, nil
}

func writePreloadDependencies(w *Writer, deps []PackageIndex) {
	for _, idx := range deps {
		w.I32(int32(idx))
	}
}

// exportPreloadSpan slices p.PreloadDependencies per the four counts
// recorded on e, in the fixed order: serialization-before-serialization,
// create-before-serialization, serialization-before-create,
// create-before-create.
func (p *Package) exportPreloadSpan(e *Export) (sbs, cbs, sbc, cbc []PackageIndex) {
	off := int(e.FirstExportDependency)
	take := func(n int32) []PackageIndex {
		end := off + int(n)
		if off < 0 || end > len(p.PreloadDependencies) {
			return nil
		}
		s := p.PreloadDependencies[off:end]
		off = end
		return s
	}
	sbs = take(e.SerializationBeforeSerializationDependencies)
	cbs = take(e.CreateBeforeSerializationDependencies)
	sbc = take(e.SerializationBeforeCreateDependencies)
	cbc = take(e.CreateBeforeCreateDependencies)
	return
}

// rebuildPreloadDependencies rebuilds the flat PreloadDependencies region
// and each export's FirstExportDependency running offset from the four
// span-count fields already on each Export (§4.7), slicing each export's
// current spans out of the old region with exportPreloadSpan before that
// export's own fields are overwritten; the old region is replaced only
// once every export has been processed.
// Re-emitting FirstExportDependency verbatim on write would leave a stale
// offset once an export's dependency counts diverge from what was read.
func (p *Package) rebuildPreloadDependencies(objVer ObjectVersion) {
	if !objVer.AtLeast(VerUE4PreloadDependenciesInCookedExports) {
		return
	}
	next := make([]PackageIndex, 0, len(p.PreloadDependencies))
	for i := range p.Exports {
		e := &p.Exports[i]
		sbs, cbs, sbc, cbc := p.exportPreloadSpan(e)
		e.FirstExportDependency = int32(len(next))
		next = append(next, sbs...)
		next = append(next, cbs...)
		next = append(next, sbc...)
		next = append(next, cbc...)
		e.SerializationBeforeSerializationDependencies = int32(len(sbs))
		e.CreateBeforeSerializationDependencies = int32(len(cbs))
		e.SerializationBeforeCreateDependencies = int32(len(sbc))
		e.CreateBeforeCreateDependencies = int32(len(cbc))
	}
	p.PreloadDependencies = next
}
