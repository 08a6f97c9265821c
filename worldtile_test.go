// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import "testing"

func TestWorldTileInfoRoundTrip(t *testing.T) {
	wt := &WorldTileInfo{
		Position:               Vector3I{X: 1, Y: 2, Z: 3},
		Bounds:                 BoxF{Min: VectorValue{X: -1, Y: -1, Z: -1}, Max: VectorValue{X: 1, Y: 1, Z: 1}},
		LayerName:              "Layer0",
		LayerStreamingDistance: 10000,
		LayerEnabled:           true,
		HideInTileView:         false,
		ParentTilePackageName:  "/Game/Maps/Parent",
		LODList: []WorldTileLODInfo{
			{RelativeStreamingDistance: 5000, Price: 1.5, Reserved0: 0, Reserved1: 0},
		},
		ZOrder: 7,
	}

	w := NewByteSink()
	writeWorldTileInfo(w, wt)

	r := NewReader(w.Bytes())
	got, err := readWorldTileInfo(r, VerUE4WorldLevelInfoUpdated, 0)
	if err != nil {
		t.Fatalf("readWorldTileInfo: %v", err)
	}

	if got.Position != wt.Position {
		t.Errorf("Position = %+v, want %+v", got.Position, wt.Position)
	}
	if got.Bounds != wt.Bounds {
		t.Errorf("Bounds = %+v, want %+v", got.Bounds, wt.Bounds)
	}
	if got.LayerName != wt.LayerName {
		t.Errorf("LayerName = %q, want %q", got.LayerName, wt.LayerName)
	}
	if got.ZOrder != wt.ZOrder {
		t.Errorf("ZOrder = %d, want %d", got.ZOrder, wt.ZOrder)
	}
	if len(got.LODList) != 1 || got.LODList[0] != wt.LODList[0] {
		t.Errorf("LODList = %+v, want %+v", got.LODList, wt.LODList)
	}
}

func TestPackageIndexValidate(t *testing.T) {
	tests := []struct {
		name                  string
		idx                   PackageIndex
		importCount, exportCount int
		wantErr               bool
	}{
		{"null", NullIndex, 0, 0, false},
		{"import in range", ImportIndex(2), 3, 0, false},
		{"import out of range", ImportIndex(3), 3, 0, true},
		{"export in range", ExportIndex(0), 0, 1, false},
		{"export out of range", ExportIndex(1), 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.idx.Validate(tt.importCount, tt.exportCount)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
