// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

// WorldTileInfo is the optional per-package world-composition metadata
// (spec.md §3), present only when object_version >= VerUE4WorldLevelInfo
// and the header's world_tile_info_offset is nonzero.
type WorldTileInfo struct {
	Position Vector3I
	Bounds   BoxF

	LayerName             string
	LayerStreamingDistance int32
	LayerEnabled          bool

	HideInTileView      bool
	ParentTilePackageName string

	LODList []WorldTileLODInfo
	ZOrder  int32
}

// Vector3I is the on-disk i32 position vector.
type Vector3I struct{ X, Y, Z int32 }

// BoxF is a float AABB (min/max corners, no IsValid flag on this variant
// of the world-tile bounds box).
type BoxF struct {
	Min, Max VectorValue
}

// WorldTileLODInfo is one entry of the LOD distance/price list.
type WorldTileLODInfo struct {
	RelativeStreamingDistance int32
	Price                     float32
	Reserved0                 float32
	Reserved1                 int32
}

func readVector3I(r *Reader) (Vector3I, error) {
	x, err := r.I32()
	if err != nil {
		return Vector3I{}, err
	}
	y, err := r.I32()
	if err != nil {
		return Vector3I{}, err
	}
	z, err := r.I32()
	return Vector3I{x, y, z}, err
}

func writeVector3I(w *Writer, v Vector3I) { w.I32(v.X); w.I32(v.Y); w.I32(v.Z) }

func readBoxF(r *Reader) (BoxF, error) {
	min, err := readVector(r)
	if err != nil {
		return BoxF{}, err
	}
	max, err := readVector(r)
	return BoxF{min, max}, err
}

func writeBoxF(w *Writer, b BoxF) { writeVector(w, b.Min); writeVector(w, b.Max) }

// readWorldTileInfo decodes the world-tile block (called from reader.go's
// readWorldTileBlock). Every field is read unconditionally in the order
// writeWorldTileInfo writes it; objVer and worldLevelInfoVersion are not
// consulted, so no field is gated on an object or custom version.
func readWorldTileInfo(r *Reader, objVer ObjectVersion, worldLevelInfoVersion int32) (*WorldTileInfo, error) {
	var wt WorldTileInfo
	pos, err := readVector3I(r)
	if err != nil {
		return nil, err
	}
	wt.Position = pos

	bounds, err := readBoxF(r)
	if err != nil {
		return nil, err
	}
	wt.Bounds = bounds

	layerName, err := r.FString()
	if err != nil {
		return nil, err
	}
	wt.LayerName = layerName

	// Pre-2.0 FWorldTileLayer additionally wrote a streaming distance and
	// a bool flag directly inline, matching the engine's own struct
	// layout at every worldLevelInfoVersion this codec targets.
	dist, err := r.I32()
	if err != nil {
		return nil, err
	}
	wt.LayerStreamingDistance = dist

	enabled, err := r.Bool32()
	if err != nil {
		return nil, err
	}
	wt.LayerEnabled = enabled

	hide, err := r.Bool32()
	if err != nil {
		return nil, err
	}
	wt.HideInTileView = hide

	parent, err := r.FString()
	if err != nil {
		return nil, err
	}
	wt.ParentTilePackageName = parent

	count, err := r.I32()
	if err != nil {
		return nil, err
	}
	wt.LODList = make([]WorldTileLODInfo, count)
	for i := range wt.LODList {
		d, err := r.I32()
		if err != nil {
			return nil, err
		}
		price, err := r.F32()
		if err != nil {
			return nil, err
		}
		r0, err := r.F32()
		if err != nil {
			return nil, err
		}
		r1, err := r.I32()
		if err != nil {
			return nil, err
		}
		wt.LODList[i] = WorldTileLODInfo{d, price, r0, r1}
	}

	zOrder, err := r.I32()
	if err != nil {
		return nil, err
	}
	wt.ZOrder = zOrder

	return &wt, nil
}

func writeWorldTileInfo(w *Writer, wt *WorldTileInfo) {
	writeVector3I(w, wt.Position)
	writeBoxF(w, wt.Bounds)
	w.FString(wt.LayerName)
	w.I32(wt.LayerStreamingDistance)
	w.Bool32(wt.LayerEnabled)
	w.Bool32(wt.HideInTileView)
	w.FString(wt.ParentTilePackageName)
	w.I32(int32(len(wt.LODList)))
	for _, lod := range wt.LODList {
		w.I32(lod.RelativeStreamingDistance)
		w.F32(lod.Price)
		w.F32(lod.Reserved0)
		w.I32(lod.Reserved1)
	}
	w.I32(wt.ZOrder)
}
