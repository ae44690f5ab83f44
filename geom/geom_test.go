// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// Points

func TestDim(t *testing.T) {
	if got := Dim[r2.Point](); got != 2 {
		t.Errorf("Dim[r2.Point]() = %d, want 2", got)
	}
	if got := Dim[r3.Vector](); got != 3 {
		t.Errorf("Dim[r3.Vector]() = %d, want 3", got)
	}
}

func TestCoords_RoundTrip(t *testing.T) {
	p2 := r2.Point{X: 1, Y: -2}
	if diff := cmp.Diff([]float64{1, -2}, Coords(p2)); diff != "" {
		t.Errorf("Coords(%v) mismatch (-want +got):\n%s", p2, diff)
	}
	if got := FromCoords[r2.Point](Coords(p2)); got != p2 {
		t.Errorf("FromCoords(Coords(%v)) = %v, want %v", p2, got, p2)
	}

	p3 := r3.Vector{X: 1, Y: -2, Z: 3}
	if diff := cmp.Diff([]float64{1, -2, 3}, Coords(p3)); diff != "" {
		t.Errorf("Coords(%v) mismatch (-want +got):\n%s", p3, diff)
	}
	if got := FromCoords[r3.Vector](Coords(p3)); got != p3 {
		t.Errorf("FromCoords(Coords(%v)) = %v, want %v", p3, got, p3)
	}
}

// Discretization

func TestDefaultStep(t *testing.T) {
	want := math.Sqrt(2.220446049250313e-16)
	if DefaultStep != want {
		t.Errorf("DefaultStep = %v, want %v", DefaultStep, want)
	}
}

func TestTrunc(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		step float64
		want float64
	}{
		{"exact multiple", 0.75, 0.25, 0.75},
		{"positive toward zero", 0.8, 0.25, 0.75},
		{"negative toward zero", -0.8, 0.25, -0.75},
		{"below step", 1e-17, DefaultStep, 0},
		{"negative below step", -1e-17, DefaultStep, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Trunc(tt.v, tt.step); got != tt.want {
				t.Errorf("Trunc(%v, %v) = %v, want %v", tt.v, tt.step, got, tt.want)
			}
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		step float64
		want float64
	}{
		{"round up", 0.8, 0.25, 0.75},
		{"round to upper", 0.9, 0.25, 1},
		{"negative", -0.9, 0.25, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.v, tt.step); got != tt.want {
				t.Errorf("Round(%v, %v) = %v, want %v", tt.v, tt.step, got, tt.want)
			}
		})
	}
}

// Circumsphere

func TestCircumsphere(t *testing.T) {
	tests := []struct {
		name       string
		method     CircumsphereMethod
		pts        [][]float64
		wantCenter []float64
		wantRadius float64
	}{
		{
			"linear triangle", LinearSolve,
			[][]float64{{0, 0}, {1, 0}, {0, 1}},
			[]float64{0.5, 0.5}, math.Sqrt(0.5),
		},
		{
			"linear tetrahedron", LinearSolve,
			[][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			[]float64{0.5, 0.5, 0.5}, math.Sqrt(0.75),
		},
		{
			"cayley-menger triangle", CayleyMenger,
			[][]float64{{0, 0}, {1, 0}, {0, 1}},
			[]float64{0.5, 0.5}, math.Sqrt(0.5),
		},
		{
			"cayley-menger tetrahedron", CayleyMenger,
			[][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			[]float64{0.5, 0.5, 0.5}, math.Sqrt(0.75),
		},
		{
			"cayley-menger segment in space", CayleyMenger,
			[][]float64{{0, 0, 0}, {2, 0, 0}},
			[]float64{1, 0, 0}, 1,
		},
		{
			"cayley-menger triangle in space", CayleyMenger,
			[][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			[]float64{0.5, 0.5, 0}, math.Sqrt(0.5),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r, err := Circumsphere(tt.method, tt.pts)
			if err != nil {
				t.Fatalf("Circumsphere(%v, ...) error = %v, want nil", tt.method, err)
			}
			assert.InDelta(t, tt.wantRadius, r, 1e-12)
			assert.InDeltaSlice(t, tt.wantCenter, c, 1e-12)
		})
	}
}

func TestCircumsphere_Singular(t *testing.T) {
	collinear := [][]float64{{0, 0}, {1, 0}, {2, 0}}
	for _, m := range []CircumsphereMethod{LinearSolve, CayleyMenger} {
		_, _, err := Circumsphere(m, collinear)
		if !errors.Is(err, ErrSingular) {
			t.Errorf("Circumsphere(%v, collinear) error = %v, want %v", m, err, ErrSingular)
		}
	}
}

func TestCircumsphere_InvalidInput(t *testing.T) {
	if _, _, err := CircumsphereLinear([][]float64{{0, 0}, {1, 0}}); err == nil {
		t.Errorf("CircumsphereLinear(2 points in plane) error = nil, want non-nil")
	}
	if _, _, err := CircumsphereCayleyMenger(nil); err == nil {
		t.Errorf("CircumsphereCayleyMenger(nil) error = nil, want non-nil")
	}
	if _, _, err := Circumsphere(CircumsphereMethod(7), [][]float64{{0}}); err == nil {
		t.Errorf("Circumsphere(unknown, ...) error = nil, want non-nil")
	}
}

func TestCircumsphereMethod_String(t *testing.T) {
	tests := []struct {
		in   CircumsphereMethod
		want string
	}{
		{LinearSolve, "LinearSolve"},
		{CayleyMenger, "CayleyMenger"},
		{CircumsphereMethod(9), "CircumsphereMethod(9)"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("CircumsphereMethod(%d).String() = %q, want %q", int(tt.in), got, tt.want)
		}
	}
}

// Rank

func TestDependent(t *testing.T) {
	tests := []struct {
		name string
		pts  [][]float64
		want bool
	}{
		{"single point", [][]float64{{0, 0, 0}}, false},
		{"distinct pair", [][]float64{{0, 0, 0}, {1, 0, 0}}, false},
		{"coincident pair", [][]float64{{1, 1, 1}, {1, 1, 1}}, true},
		{"collinear triple", [][]float64{{0, 0, 0}, {0, 0, 0.5}, {0, 0, 1}}, true},
		{"triangle", [][]float64{{0, 0, 0}, {0, 0, 0.5}, {0, 0.5, 0}}, false},
		{"coplanar quad", [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}}, true},
		{"tetrahedron", [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, false},
		{"too many points", [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dependent(tt.pts); got != tt.want {
				t.Errorf("Dependent(%v) = %v, want %v", tt.pts, got, tt.want)
			}
		})
	}
}

// Predicates

func TestPredicates_Side(t *testing.T) {
	p := Predicates{Step: DefaultStep}
	tests := []struct {
		name  string
		q     []float64
		facet [][]float64
		want  float64
	}{
		{"2d left", []float64{0, 1}, [][]float64{{0, 0}, {1, 0}}, 1},
		{"2d right", []float64{0, -1}, [][]float64{{0, 0}, {1, 0}}, -1},
		{"2d collinear", []float64{2, 0}, [][]float64{{0, 0}, {1, 0}}, 0},
		{"3d above", []float64{0, 0, 1}, [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, 1},
		{"3d below", []float64{0, 0, -2}, [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, -2},
		{"3d coplanar", []float64{3, 3, 0}, [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Side(tt.q, tt.facet)
			assert.InDelta(t, tt.want, got, 1e-7)
			if (got == 0) != (tt.want == 0) {
				t.Errorf("Side(%v, %v) = %v, want exactly zero: %v", tt.q, tt.facet, got, tt.want == 0)
			}
		})
	}
}

func TestPredicates_Sign(t *testing.T) {
	p := Predicates{Step: DefaultStep}
	tests := []struct {
		in   float64
		want int
	}{
		{1, 1},
		{-1, -1},
		{0, 0},
		{1e-12, 0},
		{-1e-12, 0},
	}
	for _, tt := range tests {
		if got := p.Sign(tt.in); got != tt.want {
			t.Errorf("Sign(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPredicates_IntersectSegments(t *testing.T) {
	p := Predicates{Step: DefaultStep}
	pts := [][]float64{
		{0, 0},  // 0
		{1, 1},  // 1
		{0, 1},  // 2
		{1, 0},  // 3
		{2, 0},  // 4
		{-1, 0}, // 5
		{1, 2},  // 6
		{5, 5},  // 7
		{6, 5},  // 8
	}
	tests := []struct {
		name string
		a, b []int
		want bool
	}{
		{"same segment", []int{0, 1}, []int{1, 0}, false},
		{"crossing", []int{0, 1}, []int{2, 3}, true},
		{"disjoint", []int{0, 1}, []int{7, 8}, false},
		{"shared endpoint, angle", []int{0, 3}, []int{0, 2}, false},
		{"shared endpoint, overlapping", []int{0, 3}, []int{0, 4}, true},
		{"shared endpoint, opposite", []int{0, 3}, []int{0, 5}, false},
		{"endpoint touches interior", []int{0, 4}, []int{3, 1}, true},
		{"parallel disjoint", []int{0, 3}, []int{7, 8}, false},
		{"near miss", []int{3, 1}, []int{2, 6}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Intersect(tt.a, tt.b, pts); got != tt.want {
				t.Errorf("Intersect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := p.Intersect(tt.b, tt.a, pts); got != tt.want {
				t.Errorf("Intersect(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestPredicates_IntersectTriangles(t *testing.T) {
	p := Predicates{Step: DefaultStep}
	pts := [][]float64{
		{0, 0, 0},        // 0
		{1, 0, 0},        // 1
		{0, 1, 0},        // 2
		{1, 1, 0},        // 3
		{0, -1, 0},       // 4
		{0, 0, 1},        // 5
		{-1, 1, 0},       // 6
		{-1, 0, 0},       // 7
		{1, 1, -1},       // 8
		{1, 1, 1},        // 9
		{-1, -1, -1},     // 10
		{-1, -1, 1},      // 11
		{2, 0, 0},        // 12
		{0, 2, 0},        // 13
		{0.5, 0.5, -1},   // 14
		{0.5, 0.5, 1},    // 15
		{3, 3, 0},        // 16
		{5, 5, 5},        // 17
		{6, 5, 5},        // 18
		{5, 6, 5},        // 19
		{0.2, 0.2, 0},    // 20
		{1, 0.2, 0},      // 21
		{0.2, 1, 0},      // 22
	}
	tests := []struct {
		name string
		a, b []int
		want bool
	}{
		{"same triangle", []int{0, 1, 2}, []int{2, 0, 1}, false},
		{"shared edge, folded", []int{0, 1, 2}, []int{0, 1, 5}, false},
		{"shared edge, coplanar same side", []int{0, 1, 2}, []int{0, 1, 3}, true},
		{"shared edge, coplanar opposite side", []int{0, 1, 2}, []int{0, 1, 4}, false},
		{"shared vertex, coplanar overlap", []int{0, 1, 2}, []int{0, 3, 6}, true},
		{"shared vertex, coplanar apart", []int{0, 1, 2}, []int{0, 7, 4}, false},
		{"shared vertex, piercing", []int{0, 1, 2}, []int{0, 8, 9}, true},
		{"shared vertex, apart", []int{0, 1, 2}, []int{0, 10, 11}, false},
		{"shared vertex, touching along edge plane", []int{0, 1, 2}, []int{0, 7, 5}, false},
		{"edge pierces", []int{0, 12, 13}, []int{14, 15, 16}, true},
		{"far apart", []int{0, 12, 13}, []int{17, 18, 19}, false},
		{"coplanar nested", []int{0, 12, 13}, []int{20, 21, 22}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Intersect(tt.a, tt.b, pts); got != tt.want {
				t.Errorf("Intersect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := p.Intersect(tt.b, tt.a, pts); got != tt.want {
				t.Errorf("Intersect(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestPredicates_IntersectPanics(t *testing.T) {
	assertPanic := func(a, b []int) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Intersect(%v, %v) did not panic, want panic", a, b)
			}
		}()
		Predicates{Step: DefaultStep}.Intersect(a, b, [][]float64{{0}, {1}, {2}, {3}})
	}

	assertPanic([]int{0, 1}, []int{0, 1, 2})
	assertPanic([]int{0}, []int{1})
}

// Benchmarks

func BenchmarkCircumsphere(b *testing.B) {
	pts := [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0.3, 0.2, 1}}
	for _, m := range []CircumsphereMethod{LinearSolve, CayleyMenger} {
		b.Run(m.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, _, err := Circumsphere(m, pts); err != nil {
					b.Fatalf("Circumsphere(%v, ...) error = %v, want nil", m, err)
				}
			}
		})
	}
}
