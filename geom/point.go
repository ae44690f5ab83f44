// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package geom provides the geometric predicates used by the mesh generator:
// discretization, circumspheres, rank and orientation tests, and intersection
// tests between simplices sharing some of their vertices.
package geom

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Point is a point of the plane or of space.
type Point interface {
	r2.Point | r3.Vector
}

// Dim returns the number of coordinates of P.
func Dim[P Point]() int {
	var p P
	if _, ok := any(p).(r2.Point); ok {
		return 2
	}
	return 3
}

// Coords returns the coordinates of p as a new slice.
func Coords[P Point](p P) []float64 {
	switch v := any(p).(type) {
	case r2.Point:
		return []float64{v.X, v.Y}
	case r3.Vector:
		return []float64{v.X, v.Y, v.Z}
	}
	panic("Coords: unsupported point type")
}

// FromCoords builds a point of type P from its coordinates.
// It panics if len(c) is less than Dim[P]().
func FromCoords[P Point](c []float64) P {
	var p P
	switch any(p).(type) {
	case r2.Point:
		return any(r2.Point{X: c[0], Y: c[1]}).(P)
	case r3.Vector:
		return any(r3.Vector{X: c[0], Y: c[1], Z: c[2]}).(P)
	}
	panic("FromCoords: unsupported point type")
}

func vec3(c []float64) r3.Vector {
	if len(c) == 2 {
		return r3.Vector{X: c[0], Y: c[1]}
	}
	return r3.Vector{X: c[0], Y: c[1], Z: c[2]}
}
