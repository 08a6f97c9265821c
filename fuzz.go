// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// Fuzz is the go-fuzz entry point: corpus bytes in, a signal for the
// fuzzer out. It exercises the full read path (header, tables, property
// tree, export-body dispatch) the way a malformed or truncated package
// would reach it in the wild.
func Fuzz(data []byte) int {
	pkg, err := ReadPackage(data, ObjectVersionUnknown, false)
	if err != nil {
		return 0
	}
	if len(pkg.Exports) == 0 {
		return 0
	}
	return 1
}
