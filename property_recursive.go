// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// Recursive property payloads (spec.md §3).

// ArrayValue is an ArrayProperty: an element type name plus an ordered
// sequence of child properties. DummyTagSize is the Size field of the
// one-off element tag that precedes a struct/byte/enum array's body
// (propertycodec.go's readDummyElementTag/writeDummyElementTag); zero for
// every other element type, which carries no dummy tag.
type ArrayValue struct {
	InnerType    FName
	Elements     []Property
	DummyTagSize int32
}

// SetValue is a SetProperty: an element type name, a list of keys removed
// since the last save, and the ordered sequence of present elements.
// DummyTagSize mirrors ArrayValue.DummyTagSize.
type SetValue struct {
	InnerType       FName
	RemovedElements []Property
	Elements        []Property
	DummyTagSize    int32
}

// MapEntry is one (key, value) pair of a MapProperty.
type MapEntry struct {
	Key   Property
	Value Property
}

// MapValue is a MapProperty: key/value type names and an ordered list of
// entries. RemovedKeys mirrors the tag's keys-to-remove count.
type MapValue struct {
	KeyType     FName
	ValueType   FName
	RemovedKeys []Property
	Entries     []MapEntry
}

// StructValue is a StructProperty body: either Fast (a hard-coded inline
// layout) or Children (a generic child-property sequence), never both.
type StructValue struct {
	StructName FName
	StructGUID Guid
	Fast       FastStructValue // non-nil for fast-path structs
	Children   []Property      // non-nil for generic structs
}

func (ArrayValue) propertyValue()  {}
func (SetValue) propertyValue()    {}
func (MapValue) propertyValue()    {}
func (StructValue) propertyValue() {}
