// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import "math"

// DefaultStep is the square root of the float64 machine epsilon.
const DefaultStep = 0x1p-26

// Trunc truncates v toward zero to a multiple of step.
func Trunc(v, step float64) float64 {
	return math.Trunc(v/step) * step
}

// Round rounds v to the nearest multiple of step.
func Round(v, step float64) float64 {
	return math.Round(v/step) * step
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b []float64) float64 {
	return math.Sqrt(sqDist(a, b))
}

func sqDist(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
