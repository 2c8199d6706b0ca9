// Package model loads glTF/GLB models and draws them through a gfx.Context.
package model

import "github.com/Faultbox/stairscene/internal/engine/gfx"

// Mesh holds triangle geometry flattened into world (model) space.
type Mesh struct {
	Vertices []gfx.Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the model.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return b.Min[0] > b.Max[0]
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e30, 1e30, 1e30},
		Max: [3]float32{-1e30, -1e30, -1e30},
	}
}

func (b *Bounds) extend(p [3]float32) {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

// Options control how a model is prepared for drawing.
type Options struct {
	// ReverseWinding flips triangle order. glTF front faces are
	// counter-clockwise; the scene culls with clockwise front faces.
	ReverseWinding bool
}

// DefaultOptions matches the scene's clockwise front-face convention.
func DefaultOptions() Options {
	return Options{ReverseWinding: true}
}
