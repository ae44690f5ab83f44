// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package grid stores a simplicial mesh: nodes and finite elements given as
// tuples of node indices.
package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/2dChan/delaunaygrid/geom"
	"gonum.org/v1/gonum/mat"
)

// Element is a simplex of the grid.
type Element struct {
	Nodes []int
	// Material holds per-element coefficients; nil when unset.
	Material []float64
}

// Grid is a mesh of triangles (P = r2.Point) or tetrahedra (P = r3.Vector).
type Grid[P geom.Point] struct {
	Nodes    []P
	Elements []Element
}

// New returns an empty grid.
func New[P geom.Point]() *Grid[P] {
	return &Grid[P]{}
}

// NumNodes returns the number of nodes.
func (g *Grid[P]) NumNodes() int {
	return len(g.Nodes)
}

// NumElements returns the number of elements.
func (g *Grid[P]) NumElements() int {
	return len(g.Elements)
}

// CreateNode appends a node and returns its index.
func (g *Grid[P]) CreateNode(p P) int {
	g.Nodes = append(g.Nodes, p)
	return len(g.Nodes) - 1
}

// CreateFiniteElement appends an element over existing, distinct nodes and
// returns its index. Both slices are copied.
func (g *Grid[P]) CreateFiniteElement(nodes []int, material []float64) (int, error) {
	d := geom.Dim[P]()
	if len(nodes) != d+1 {
		return 0, fmt.Errorf("grid: element needs %d nodes, got %d", d+1, len(nodes))
	}
	for i, n := range nodes {
		if n < 0 || n >= len(g.Nodes) {
			return 0, fmt.Errorf("grid: node index %d out of range [0 %d)", n, len(g.Nodes))
		}
		for _, m := range nodes[:i] {
			if m == n {
				return 0, errors.New("grid: element nodes must be distinct")
			}
		}
	}

	e := Element{Nodes: append([]int(nil), nodes...)}
	if material != nil {
		e.Material = append([]float64(nil), material...)
	}
	g.Elements = append(g.Elements, e)
	return len(g.Elements) - 1, nil
}

// ElementNodes returns the node coordinates of the i-th element.
func (g *Grid[P]) ElementNodes(i int) []P {
	if i < 0 || i >= len(g.Elements) {
		panic("ElementNodes: index out of range")
	}
	nodes := g.Elements[i].Nodes
	pts := make([]P, len(nodes))
	for j, n := range nodes {
		pts[j] = g.Nodes[n]
	}
	return pts
}

// SignedVolume returns the oriented measure of the i-th element: area for
// triangles, volume for tetrahedra.
func (g *Grid[P]) SignedVolume(i int) float64 {
	pts := g.ElementNodes(i)
	d := len(pts) - 1
	p0 := geom.Coords(pts[0])
	m := mat.NewDense(d, d, nil)
	for r := 1; r <= d; r++ {
		for c, v := range geom.Coords(pts[r]) {
			m.Set(r-1, c, v-p0[c])
		}
	}
	return mat.Det(m) / factorial(d)
}

// Volume returns the total unsigned measure of all elements.
func (g *Grid[P]) Volume() float64 {
	v := 0.0
	for i := range g.Elements {
		v += math.Abs(g.SignedVolume(i))
	}
	return v
}

// PermuteOnNegativeVolume swaps the first two nodes of every element with a
// negative signed volume, so that all elements are positively oriented.
// It returns the number of elements changed.
func (g *Grid[P]) PermuteOnNegativeVolume() int {
	n := 0
	for i := range g.Elements {
		if g.SignedVolume(i) < 0 {
			nodes := g.Elements[i].Nodes
			nodes[0], nodes[1] = nodes[1], nodes[0]
			n++
		}
	}
	return n
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}
