// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package meshcheck

import (
	"fmt"
	"math"
	"sort"

	"github.com/2dChan/delaunaygrid/geom"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
	"github.com/pkg/errors"
)

// hullEps is passed to quickhull, which scales it by the largest coordinate
// magnitude of the point cloud.
const hullEps = 1e-12

// planeTol is the distance, relative to the extent of the point cloud, within
// which a point lies on a hull plane.
const planeTol = 1e-9

// HullFacets returns the triangles of the convex hull of pts as indices into
// pts, counter-clockwise seen from outside.
func HullFacets(pts []r3.Vector) ([][3]int, error) {
	if len(pts) < 4 {
		return nil, errors.Errorf("meshcheck: hull needs 4 points, got %d", len(pts))
	}
	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(pts, true, true, hullEps)
	if len(ch.Indices) == 0 || len(ch.Indices)%3 != 0 {
		return nil, errors.New("meshcheck: inconsistent number of indices returned from QuickHull")
	}

	facets := make([][3]int, len(ch.Indices)/3)
	for i := range facets {
		base := i * 3
		facets[i] = [3]int{ch.Indices[base], ch.Indices[base+1], ch.Indices[base+2]}
	}
	return facets, nil
}

// HullVolume returns the area (2D) or volume (3D) of the convex hull of pts.
func HullVolume[P geom.Point](pts []P) (float64, error) {
	switch ps := any(pts).(type) {
	case []r2.Point:
		return polygonArea(convexHull2D(ps)), nil
	case []r3.Vector:
		facets, err := HullFacets(ps)
		if err != nil {
			return 0, err
		}
		return polyhedronVolume(ps, facets), nil
	}
	return 0, errors.New("meshcheck: unsupported point type")
}

// polyhedronVolume sums the pyramids from the centroid of pts over the
// distinct supporting planes of facets. Triangles of one hull face may
// overlap when points lie on the face, so each plane is measured once as the
// 2D hull of every point on it.
func polyhedronVolume(pts []r3.Vector, facets [][3]int) float64 {
	var ref r3.Vector
	for _, p := range pts {
		ref = ref.Add(p)
	}
	ref = ref.Mul(1 / float64(len(pts)))

	extent := 0.0
	for _, p := range pts {
		extent = math.Max(extent, p.Sub(ref).Norm())
	}
	if extent == 0 {
		return 0
	}
	tol := planeTol * extent

	seen := make(map[string]struct{})
	v := 0.0
	for _, f := range facets {
		a, b, c := pts[f[0]], pts[f[1]], pts[f[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Norm() <= planeTol*extent*extent {
			continue
		}
		n = n.Normalize()
		h := n.Dot(a.Sub(ref))
		if h < 0 {
			n, h = n.Mul(-1), -h
		}

		var members []int
		supporting := true
		for i, p := range pts {
			dist := n.Dot(p.Sub(ref)) - h
			if dist > tol {
				supporting = false
				break
			}
			if dist >= -tol {
				members = append(members, i)
			}
		}
		if !supporting {
			continue
		}
		key := fmt.Sprint(members)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		u := n.Ortho()
		w := n.Cross(u)
		face := make([]r2.Point, len(members))
		for i, m := range members {
			face[i] = r2.Point{X: pts[m].Dot(u), Y: pts[m].Dot(w)}
		}
		v += polygonArea(convexHull2D(face)) * h / 3
	}
	return v
}

// convexHull2D returns the hull of pts counter-clockwise, by monotone chain.
func convexHull2D(pts []r2.Point) []r2.Point {
	ps := append([]r2.Point(nil), pts...)
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].X != ps[j].X {
			return ps[i].X < ps[j].X
		}
		return ps[i].Y < ps[j].Y
	})
	if len(ps) < 3 {
		return ps
	}

	hull := make([]r2.Point, 0, 2*len(ps))
	for _, p := range ps {
		for len(hull) >= 2 && hull[len(hull)-1].Sub(hull[len(hull)-2]).Cross(p.Sub(hull[len(hull)-2])) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(ps) - 2; i >= 0; i-- {
		p := ps[i]
		for len(hull) >= lower && hull[len(hull)-1].Sub(hull[len(hull)-2]).Cross(p.Sub(hull[len(hull)-2])) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

func polygonArea(poly []r2.Point) float64 {
	a := 0.0
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		a += p.Cross(q)
	}
	return math.Abs(a) / 2
}
