// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// Import is a reference to an object owned by another package (spec.md
// §3). Imports form a forest via Outer (an import may reference another
// import as its outer, or the null package).
type Import struct {
	ClassPackage FName
	ClassName    FName
	Outer        PackageIndex
	ObjectName   FName
}

func readImport(r *Reader) (Import, error) {
	cp, err := readFNameInline(r)
	if err != nil {
		return Import{}, err
	}
	cn, err := readFNameInline(r)
	if err != nil {
		return Import{}, err
	}
	outer, err := r.I32()
	if err != nil {
		return Import{}, err
	}
	on, err := readFNameInline(r)
	if err != nil {
		return Import{}, err
	}
	return Import{ClassPackage: cp, ClassName: cn, Outer: PackageIndex(outer), ObjectName: on}, nil
}

func writeImport(w *Writer, imp Import) {
	writeFNameInline(w, imp.ClassPackage)
	writeFNameInline(w, imp.ClassName)
	w.I32(int32(imp.Outer))
	writeFNameInline(w, imp.ObjectName)
}
