// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// UnversionedPropertyData is the property payload for an export read with
// PKG_UNVERSIONED_PROPERTIES set (spec.md §4.6): the explicit fragment/
// zero-mask presence header that replaces the tagged-property stream.
// This codec does not resolve unversioned slot indices against a ".usmap"
// schema, so the encoded value region that follows the header is not
// decoded here; it is preserved verbatim as the owning export's Extras
// span (dispatch.go's readExportBody/writeExportBody), keeping the export
// byte-identical across a read/write round trip.
type UnversionedPropertyData struct {
	Header UnversionedHeader
}

func (UnversionedPropertyData) propertyValue() {}

// readUnversionedPropertyList replaces ReadPropertyList's tagged-property
// loop for the top-level property list of an unversioned export (spec.md
// §4.3/§4.6): it consumes exactly the presence header and returns it as a
// single synthetic property, leaving the rest of the body for the caller's
// extras capture.
func (pkg *Package) readUnversionedPropertyList(r *Reader) ([]Property, error) {
	hdr, err := readUnversionedHeader(r)
	if err != nil {
		return nil, err
	}
	return []Property{{Value: UnversionedPropertyData{Header: hdr}}}, nil
}

// writeUnversionedPropertyList re-emits the presence header captured by
// readUnversionedPropertyList. A caller that hand-builds an unversioned
// export without supplying one gets an empty, all-absent header instead
// of a panic.
func (pkg *Package) writeUnversionedPropertyList(w *Writer, props []Property) {
	var hdr UnversionedHeader
	if len(props) == 1 {
		if up, ok := props[0].Value.(UnversionedPropertyData); ok {
			hdr = up.Header
		}
	}
	if len(hdr.Fragments) == 0 {
		hdr = PackUnversionedHeader(nil, nil)
	}
	writeUnversionedHeader(w, hdr)
}
