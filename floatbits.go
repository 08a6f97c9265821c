package uasset

import "math"

func decodeF32(bits uint32) float32 { return math.Float32frombits(bits) }
func encodeF32(v float32) uint32    { return math.Float32bits(v) }
func decodeF64(bits uint64) float64 { return math.Float64frombits(bits) }
func encodeF64(v float64) uint64    { return math.Float64bits(v) }
