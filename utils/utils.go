// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides deterministic point sets for meshing: random clouds,
// lattices and subdivided icosahedra.
package utils

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// RandomPoints2D generates cnt random points in the unit square.
// The seed parameter ensures reproducibility.
func RandomPoints2D(cnt int, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r2.Point, cnt)
	for i := 0; i < cnt; i++ {
		points[i] = r2.Point{X: random.Float64(), Y: random.Float64()}
	}
	return points
}

// RandomPoints3D generates cnt random points in the unit cube.
func RandomPoints3D(cnt int, seed int64) []r3.Vector {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r3.Vector, cnt)
	for i := 0; i < cnt; i++ {
		points[i] = r3.Vector{X: random.Float64(), Y: random.Float64(), Z: random.Float64()}
	}
	return points
}

// RandomSpherePoints generates cnt random points on the sphere of the given
// center and radius.
func RandomSpherePoints(cnt int, seed int64, center r3.Vector, radius float64) []r3.Vector {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r3.Vector, cnt)
	for i := 0; i < cnt; i++ {
		p := randomLatLng(random)
		points[i] = center.Add(p.Mul(radius))
	}
	return points
}

// RandomBallPoints generates cnt random points inside the ball of the given
// center and radius, uniformly in radius cubed.
func RandomBallPoints(cnt int, seed int64, center r3.Vector, radius float64) []r3.Vector {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r3.Vector, cnt)
	for i := 0; i < cnt; i++ {
		p := randomLatLng(random)
		r := radius * math.Cbrt(random.Float64())
		points[i] = center.Add(p.Mul(r))
	}
	return points
}

func randomLatLng(random *rand.Rand) r3.Vector {
	return s2.PointFromLatLng(s2.LatLng{
		Lat: s1.Angle((random.Float64() - 0.5) * math.Pi),
		Lng: s1.Angle((random.Float64()*2 - 1) * math.Pi),
	}).Vector
}

// Lattice2D returns the (n+1)² nodes of a regular lattice over the unit
// square, x outermost.
func Lattice2D(n int) []r2.Point {
	points := make([]r2.Point, 0, (n+1)*(n+1))
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			points = append(points, r2.Point{X: float64(i) / float64(n), Y: float64(j) / float64(n)})
		}
	}
	return points
}

// Lattice3D returns the (n+1)³ nodes of a regular lattice over the unit
// cube, x outermost.
func Lattice3D(n int) []r3.Vector {
	points := make([]r3.Vector, 0, (n+1)*(n+1)*(n+1))
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			for k := 0; k <= n; k++ {
				points = append(points, r3.Vector{
					X: float64(i) / float64(n),
					Y: float64(j) / float64(n),
					Z: float64(k) / float64(n),
				})
			}
		}
	}
	return points
}

var (
	phi = (1 + math.Sqrt(5)) / 2

	icosahedronVertices = []r3.Vector{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}

	icosahedronFaces = [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// Icosahedron returns the vertices of a regular icosahedron inscribed in the
// sphere of the given center and radius. Each level splits every face into
// four through its edge midpoints, appending each midpoint once. With
// reflect, the midpoints are projected onto the sphere.
func Icosahedron(center r3.Vector, radius float64, levels int, reflect bool) []r3.Vector {
	verts := make([]r3.Vector, len(icosahedronVertices))
	for i, v := range icosahedronVertices {
		verts[i] = v.Normalize()
	}

	faces := icosahedronFaces
	for i_ := 0; i_ < levels; i_++ {
		cache := make(map[[2]int]int)
		mid := func(a, b int) int {
			key := [2]int{min(a, b), max(a, b)}
			if i, ok := cache[key]; ok {
				return i
			}
			cache[key] = len(verts)
			verts = append(verts, verts[a].Add(verts[b]).Mul(0.5))
			return cache[key]
		}

		next := make([][3]int, 0, 4*len(faces))
		for _, f := range faces {
			a, b, c := f[0], f[1], f[2]
			x, y, z := mid(a, b), mid(b, c), mid(c, a)
			next = append(next, [3]int{a, x, z}, [3]int{b, y, x}, [3]int{c, z, y}, [3]int{x, y, z})
		}
		faces = next
	}

	points := make([]r3.Vector, len(verts))
	for i, v := range verts {
		if reflect {
			v = v.Normalize()
		}
		points[i] = center.Add(v.Mul(radius))
	}
	return points
}
