// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package meshcheck validates generated grids after the fact.
package meshcheck

import (
	"math"

	"github.com/2dChan/delaunaygrid/geom"
	"github.com/2dChan/delaunaygrid/grid"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Conservation checks that g holds exactly the input points, in order.
func Conservation[P geom.Point](points []P, g *grid.Grid[P], tol float64) error {
	if g.NumNodes() != len(points) {
		return errors.Errorf("node count %d, want %d", g.NumNodes(), len(points))
	}
	for i, p := range points {
		if d := geom.Dist(geom.Coords(p), geom.Coords(g.Nodes[i])); d > tol {
			return errors.Errorf("node %d moved by %v", i, d)
		}
	}
	return nil
}

// EmptyCircumsphere checks that no node lies inside the circumsphere of an
// element it does not belong to by more than tol.
func EmptyCircumsphere[P geom.Point](g *grid.Grid[P], tol float64) error {
	coords := make([][]float64, g.NumNodes())
	for i, p := range g.Nodes {
		coords[i] = geom.Coords(p)
	}

	for i, e := range g.Elements {
		pts := make([][]float64, len(e.Nodes))
		for k, n := range e.Nodes {
			pts[k] = coords[n]
		}
		center, r, err := geom.CircumsphereLinear(pts)
		if err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
		for n, c := range coords {
			if contains(e.Nodes, n) {
				continue
			}
			if d := geom.Dist(c, center); d < r-tol {
				return errors.Errorf("node %d inside circumsphere of element %d by %v", n, i, r-d)
			}
		}
	}
	return nil
}

// Coverage checks that the elements fill the convex hull of the nodes: their
// total measure equals the hull measure within a relative tol.
func Coverage[P geom.Point](g *grid.Grid[P], tol float64) error {
	hull, err := HullVolume(g.Nodes)
	if err != nil {
		return errors.Wrap(err, "hull")
	}
	vol := g.Volume()
	if math.Abs(vol-hull) > tol*math.Max(1, hull) {
		return errors.Errorf("hull volumes disagree: elements %v, hull %v", vol, hull)
	}
	return nil
}

// FacetBalance checks the facet count of a completed front: every interior
// facet bounds two elements and every boundary facet one, and each was
// killed once.
func FacetBalance(dim, deadFacets, elements, boundaryFacets int) error {
	if 2*deadFacets != (dim+1)*elements+boundaryFacets {
		return errors.Errorf("facet balance: 2*%d != %d*%d + %d", deadFacets, dim+1, elements, boundaryFacets)
	}
	return nil
}

// Quality returns the normalized radius ratio d·r/R of every element, where
// r and R are the inscribed and circumscribed radii. It is 1 for a regular
// simplex and tends to 0 for flat ones.
func Quality[P geom.Point](g *grid.Grid[P]) ([]float64, error) {
	q := make([]float64, g.NumElements())
	for i, e := range g.Elements {
		pts := make([][]float64, len(e.Nodes))
		for k, n := range e.Nodes {
			pts[k] = geom.Coords(g.Nodes[n])
		}
		_, circumR, err := geom.CircumsphereLinear(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		d := len(pts) - 1
		inR := float64(d) * math.Abs(g.SignedVolume(i)) / boundaryMeasure(pts)
		q[i] = float64(d) * inR / circumR
	}
	return q, nil
}

// boundaryMeasure returns the total length (d = 2) or area (d = 3) of the
// facets of a simplex.
func boundaryMeasure(pts [][]float64) float64 {
	vs := make([]r3.Vector, len(pts))
	for i, c := range pts {
		vs[i] = r3.Vector{X: c[0], Y: c[1]}
		if len(c) > 2 {
			vs[i].Z = c[2]
		}
	}

	s := 0.0
	if len(vs) == 3 {
		for i := 0; i < 3; i++ {
			s += vs[(i+1)%3].Sub(vs[i]).Norm()
		}
		return s
	}
	for skip := range vs {
		var f []r3.Vector
		for k, v := range vs {
			if k != skip {
				f = append(f, v)
			}
		}
		s += f[1].Sub(f[0]).Cross(f[2].Sub(f[0])).Norm() / 2
	}
	return s
}

// Validate runs Conservation, EmptyCircumsphere and Coverage.
func Validate[P geom.Point](points []P, g *grid.Grid[P], tol float64) error {
	if err := Conservation(points, g, tol); err != nil {
		return errors.Wrap(err, "conservation")
	}
	if err := EmptyCircumsphere(g, tol); err != nil {
		return errors.Wrap(err, "empty circumsphere")
	}
	if err := Coverage(g, tol); err != nil {
		return errors.Wrap(err, "coverage")
	}
	return nil
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
