// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package meshcheck

import (
	"math"
	"testing"

	"github.com/2dChan/delaunaygrid/grid"
	"github.com/2dChan/delaunaygrid/utils"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// Hull

func TestHullVolume(t *testing.T) {
	square := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 0.5}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	got, err := HullVolume(square)
	if err != nil {
		t.Fatalf("HullVolume(square) error = %v, want nil", err)
	}
	assert.InDelta(t, 1.0, got, 1e-12)

	got, err = HullVolume(utils.Lattice3D(2))
	if err != nil {
		t.Fatalf("HullVolume(lattice) error = %v, want nil", err)
	}
	assert.InDelta(t, 1.0, got, 1e-9)

	pts := utils.Icosahedron(r3.Vector{}, 1, 0, false)
	a := pts[0].Sub(pts[1]).Norm()
	want := 5.0 / 12 * (3 + math.Sqrt(5)) * a * a * a
	got, err = HullVolume(pts)
	if err != nil {
		t.Fatalf("HullVolume(icosahedron) error = %v, want nil", err)
	}
	assert.InDelta(t, want, got, 1e-9)
}

func TestHullVolume_PointsOnFaces(t *testing.T) {
	center := r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}
	want, err := HullVolume(utils.Icosahedron(center, 0.5, 0, false))
	if err != nil {
		t.Fatalf("HullVolume(level 0) error = %v, want nil", err)
	}
	assert.InDelta(t, 0.3170188, want, 1e-7)

	for _, levels := range []int{1, 2} {
		got, err := HullVolume(utils.Icosahedron(center, 0.5, levels, false))
		if err != nil {
			t.Fatalf("HullVolume(level %d) error = %v, want nil", levels, err)
		}
		assert.InDelta(t, want, got, 1e-9, "level %d", levels)
	}
}

func TestHullFacets(t *testing.T) {
	tet := []r3.Vector{{}, {X: 1}, {Y: 1}, {Z: 1}}
	facets, err := HullFacets(tet)
	if err != nil {
		t.Fatalf("HullFacets(tet) error = %v, want nil", err)
	}
	if len(facets) != 4 {
		t.Errorf("len(HullFacets(tet)) = %d, want 4", len(facets))
	}

	facets, err = HullFacets(utils.Icosahedron(r3.Vector{}, 1, 0, false))
	if err != nil {
		t.Fatalf("HullFacets(icosahedron) error = %v, want nil", err)
	}
	if len(facets) != 20 {
		t.Errorf("len(HullFacets(icosahedron)) = %d, want 20", len(facets))
	}

	if _, err := HullFacets(tet[:3]); err == nil {
		t.Errorf("HullFacets(3 points) error = nil, want non-nil")
	}
}

func TestConvexHull2D(t *testing.T) {
	pts := []r2.Point{{X: 0, Y: 0}, {X: 0.5, Y: 0.2}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0.5, Y: 1}}
	want := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	if diff := cmp.Diff(want, convexHull2D(pts)); diff != "" {
		t.Errorf("convexHull2D(...) mismatch (-want +got):\n%s", diff)
	}
}

// Checks

func TestConservation(t *testing.T) {
	points := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}

	tests := []struct {
		name    string
		nodes   []r2.Point
		wantErr bool
	}{
		{"same nodes", points, false},
		{"missing node", points[:2], true},
		{"moved node", []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1.1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid.New[r2.Point]()
			for _, p := range tt.nodes {
				g.CreateNode(p)
			}
			err := Conservation(points, g, 1e-9)
			if (err != nil) != tt.wantErr {
				errValMsg := "nil"
				if tt.wantErr {
					errValMsg = "non-nil"
				}
				t.Errorf("Conservation(...) error = %v, want %s", err, errValMsg)
			}
		})
	}
}

func TestEmptyCircumsphere(t *testing.T) {
	nodes := []r2.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0.2}, {X: 1, Y: -0.2}}

	tests := []struct {
		name     string
		elements [][]int
		wantErr  bool
	}{
		{"delaunay", [][]int{{2, 3, 0}, {2, 1, 3}}, false},
		{"flipped edge", [][]int{{0, 1, 2}, {0, 3, 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustNewGrid(t, nodes, tt.elements)
			err := EmptyCircumsphere(g, 1e-9)
			if (err != nil) != tt.wantErr {
				errValMsg := "nil"
				if tt.wantErr {
					errValMsg = "non-nil"
				}
				t.Errorf("EmptyCircumsphere(...) error = %v, want %s", err, errValMsg)
			}
		})
	}
}

func TestCoverage(t *testing.T) {
	nodes := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}

	tests := []struct {
		name     string
		elements [][]int
		wantErr  bool
	}{
		{"full square", [][]int{{0, 1, 2}, {2, 1, 3}}, false},
		{"half square", [][]int{{0, 1, 2}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustNewGrid(t, nodes, tt.elements)
			err := Coverage(g, 1e-9)
			if (err != nil) != tt.wantErr {
				errValMsg := "nil"
				if tt.wantErr {
					errValMsg = "non-nil"
				}
				t.Errorf("Coverage(...) error = %v, want %s", err, errValMsg)
			}
		})
	}
}

func TestFacetBalance(t *testing.T) {
	tests := []struct {
		name                              string
		dim, deadFacets, elements, bounds int
		wantErr                           bool
	}{
		{"unit square", 2, 5, 2, 4, false},
		{"lattice", 3, 120, 48, 48, false},
		{"icosahedron", 3, 44, 17, 20, false},
		{"unbalanced", 3, 44, 17, 19, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FacetBalance(tt.dim, tt.deadFacets, tt.elements, tt.bounds)
			if (err != nil) != tt.wantErr {
				errValMsg := "nil"
				if tt.wantErr {
					errValMsg = "non-nil"
				}
				t.Errorf("FacetBalance(%d, %d, %d, %d) error = %v, want %s",
					tt.dim, tt.deadFacets, tt.elements, tt.bounds, err, errValMsg)
			}
		})
	}
}

func TestQuality(t *testing.T) {
	h := math.Sqrt(3) / 2
	g2 := mustNewGrid(t,
		[]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: h}, {X: 0, Y: 1}},
		[][]int{{0, 1, 2}, {0, 1, 3}},
	)
	q, err := Quality(g2)
	if err != nil {
		t.Fatalf("Quality(g2) error = %v, want nil", err)
	}
	assert.InDeltaSlice(t, []float64{1, 2 * math.Sqrt(2) / (2 + math.Sqrt(2))}, q, 1e-12)

	g3 := grid.New[r3.Vector]()
	for _, p := range []r3.Vector{{X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: 1}} {
		g3.CreateNode(p)
	}
	if _, err := g3.CreateFiniteElement([]int{0, 1, 2, 3}, nil); err != nil {
		t.Fatalf("CreateFiniteElement(...) error = %v, want nil", err)
	}
	q, err = Quality(g3)
	if err != nil {
		t.Fatalf("Quality(g3) error = %v, want nil", err)
	}
	assert.InDeltaSlice(t, []float64{1}, q, 1e-12)
}

func TestValidate(t *testing.T) {
	nodes := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	g := mustNewGrid(t, nodes, [][]int{{0, 1, 2}, {2, 1, 3}})
	if err := Validate(nodes, g, 1e-9); err != nil {
		t.Errorf("Validate(...) error = %v, want nil", err)
	}

	g = mustNewGrid(t, nodes, [][]int{{0, 1, 2}})
	if err := Validate(nodes, g, 1e-9); err == nil {
		t.Errorf("Validate(half square) error = nil, want non-nil")
	}
}

// Helpers

func mustNewGrid(t *testing.T, nodes []r2.Point, elements [][]int) *grid.Grid[r2.Point] {
	t.Helper()
	g := grid.New[r2.Point]()
	for _, p := range nodes {
		g.CreateNode(p)
	}
	for _, e := range elements {
		if _, err := g.CreateFiniteElement(e, nil); err != nil {
			t.Fatalf("CreateFiniteElement(%v, nil) error = %v, want nil", e, err)
		}
	}
	return g
}
