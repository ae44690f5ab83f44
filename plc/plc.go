// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package plc holds the ordered input point set a mesh is generated from.
package plc

import (
	"fmt"
	"math"

	"github.com/2dChan/delaunaygrid/geom"
)

// PLC is an ordered, read-only collection of points.
type PLC[P geom.Point] struct {
	points []P
}

// New returns a PLC holding a copy of points.
func New[P geom.Point](points []P) *PLC[P] {
	return &PLC[P]{points: append([]P(nil), points...)}
}

// Len returns the number of points.
func (p *PLC[P]) Len() int {
	return len(p.points)
}

// At returns the i-th point.
func (p *PLC[P]) At(i int) P {
	if i < 0 || i >= len(p.points) {
		panic(fmt.Sprintf("At: index %d out of range [0 %d)", i, len(p.points)))
	}
	return p.points[i]
}

// Points returns a copy of all points in order.
func (p *PLC[P]) Points() []P {
	return append([]P(nil), p.points...)
}

// Bounds returns the per-coordinate minimum and maximum over all points.
// Both are nil for an empty PLC.
func (p *PLC[P]) Bounds() (lo, hi []float64) {
	if len(p.points) == 0 {
		return nil, nil
	}
	d := geom.Dim[P]()
	lo = make([]float64, d)
	hi = make([]float64, d)
	for i := 0; i < d; i++ {
		lo[i], hi[i] = math.Inf(1), math.Inf(-1)
	}
	for _, pt := range p.points {
		for i, c := range geom.Coords(pt) {
			lo[i] = math.Min(lo[i], c)
			hi[i] = math.Max(hi[i], c)
		}
	}
	return lo, hi
}
