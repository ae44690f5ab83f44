// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when the points of a simplex do not determine a
// unique circumsphere.
var ErrSingular = errors.New("geom: singular circumsphere system")

// CircumsphereMethod selects how an element circumsphere is computed.
type CircumsphereMethod int

const (
	// LinearSolve solves 2(Pi-P0)·c = |Pi|²-|P0|² for the center.
	LinearSolve CircumsphereMethod = iota
	// CayleyMenger solves the bordered Cayley-Menger system for the
	// barycentric weights of the center.
	CayleyMenger
)

func (m CircumsphereMethod) String() string {
	switch m {
	case LinearSolve:
		return "LinearSolve"
	case CayleyMenger:
		return "CayleyMenger"
	}
	return fmt.Sprintf("CircumsphereMethod(%d)", int(m))
}

// Circumsphere dispatches to the formulation selected by m.
func Circumsphere(m CircumsphereMethod, pts [][]float64) ([]float64, float64, error) {
	switch m {
	case LinearSolve:
		return CircumsphereLinear(pts)
	case CayleyMenger:
		return CircumsphereCayleyMenger(pts)
	}
	return nil, 0, fmt.Errorf("geom: unknown circumsphere method %v", m)
}

// CircumsphereLinear returns the center and radius of the sphere through the
// d+1 vertices of a d-simplex.
func CircumsphereLinear(pts [][]float64) ([]float64, float64, error) {
	if len(pts) == 0 {
		return nil, 0, errors.New("geom: empty simplex")
	}
	d := len(pts[0])
	if len(pts) != d+1 {
		return nil, 0, fmt.Errorf("geom: linear circumsphere needs %d points, got %d", d+1, len(pts))
	}

	p0 := pts[0]
	n0 := dot(p0, p0)
	a := mat.NewDense(d, d, nil)
	b := mat.NewVecDense(d, nil)
	for i := 1; i <= d; i++ {
		for j := 0; j < d; j++ {
			a.Set(i-1, j, 2*(pts[i][j]-p0[j]))
		}
		b.SetVec(i-1, dot(pts[i], pts[i])-n0)
	}

	var c mat.VecDense
	if err := c.SolveVec(a, b); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	center := make([]float64, d)
	for i := 0; i < d; i++ {
		center[i] = c.AtVec(i)
	}
	return center, Dist(center, p0), nil
}

// CircumsphereCayleyMenger returns the center and radius of the smallest
// sphere through k <= d+1 affinely independent points. The center lies in
// their affine hull.
func CircumsphereCayleyMenger(pts [][]float64) ([]float64, float64, error) {
	k := len(pts)
	if k == 0 {
		return nil, 0, errors.New("geom: empty simplex")
	}

	n := k + 1
	m := mat.NewDense(n, n, nil)
	for i := 1; i < n; i++ {
		m.Set(0, i, 1)
		m.Set(i, 0, 1)
	}
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			d2 := sqDist(pts[i], pts[j])
			m.Set(i+1, j+1, d2)
			m.Set(j+1, i+1, d2)
		}
	}
	rhs := mat.NewVecDense(n, nil)
	rhs.SetVec(0, 1)

	var x mat.VecDense
	if err := x.SolveVec(m, rhs); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	center := make([]float64, len(pts[0]))
	for i := 0; i < k; i++ {
		w := x.AtVec(i + 1)
		for j := range center {
			center[j] += w * pts[i][j]
		}
	}
	return center, math.Sqrt(math.Abs(x.AtVec(0)) / 2), nil
}
