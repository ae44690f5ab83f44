// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Predicates evaluates orientation and intersection tests with every
// determinant truncated to a multiple of Step.
type Predicates struct {
	Step float64
}

// Sign returns the sign of v after truncation.
func (p Predicates) Sign(v float64) int {
	v = Trunc(v, p.Step)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Side returns the truncated determinant of the rows
// facet[1]-facet[0], ..., facet[d-1]-facet[0], q-facet[0].
// Zero means q lies in the hyperplane of facet.
func (p Predicates) Side(q []float64, facet [][]float64) float64 {
	d := len(q)
	m := mat.NewDense(d, d, nil)
	for i := 1; i < d; i++ {
		for j := 0; j < d; j++ {
			m.Set(i-1, j, facet[i][j]-facet[0][j])
		}
	}
	for j := 0; j < d; j++ {
		m.Set(d-1, j, q[j]-facet[0][j])
	}
	return Trunc(mat.Det(m), p.Step)
}

// Intersect reports whether the (d-1)-simplices a and b, given as indices
// into pts, intersect improperly: their intersection is not exactly the face
// spanned by their shared vertices. Segments (d = 2) and triangles (d = 3)
// are supported.
func (p Predicates) Intersect(a, b []int, pts [][]float64) bool {
	if len(a) != len(b) {
		panic(fmt.Sprintf("Intersect: arity mismatch %d != %d", len(a), len(b)))
	}
	switch len(a) {
	case 2:
		return p.intersectSegments(a, b, pts)
	case 3:
		return p.intersectTriangles(a, b, pts)
	}
	panic(fmt.Sprintf("Intersect: unsupported simplex arity %d", len(a)))
}

func shared(a, b []int) []int {
	var s []int
	for _, x := range a {
		for _, y := range b {
			if x == y {
				s = append(s, x)
				break
			}
		}
	}
	return s
}

func without(a []int, drop []int) []int {
	r := make([]int, 0, len(a))
outer:
	for _, x := range a {
		for _, y := range drop {
			if x == y {
				continue outer
			}
		}
		r = append(r, x)
	}
	return r
}
