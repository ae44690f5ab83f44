// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunaygrid

import (
	"github.com/2dChan/delaunaygrid/geom"
)

// Node is a view of a node held by a Generator. It stays valid until the
// next mutating call on the generator.
type Node[P geom.Point] struct {
	idx int
	g   *Generator[P]
}

// Index returns the node index, which equals the index of its input point.
func (n Node[P]) Index() int {
	return n.idx
}

// Point returns the node position.
func (n Node[P]) Point() P {
	return n.g.nodes[n.idx].point
}

func (n Node[P]) State() State {
	return n.g.nodes[n.idx].state
}

// FacetIndices returns the facets incident to the node in creation order.
func (n Node[P]) FacetIndices() []int {
	return append([]int(nil), n.g.nodes[n.idx].facets...)
}

// Facet is a view of a facet held by a Generator.
type Facet[P geom.Point] struct {
	idx int
	g   *Generator[P]
}

func (f Facet[P]) Index() int {
	return f.idx
}

// NodeIndices returns the d nodes of the facet.
func (f Facet[P]) NodeIndices() []int {
	return append([]int(nil), f.g.facets[f.idx].nodes...)
}

func (f Facet[P]) State() State {
	return f.g.facets[f.idx].state
}

// Direction returns the side on which the facet still looks for an element.
func (f Facet[P]) Direction() Direction {
	return f.g.facets[f.idx].dir
}

// IsMetastructure reports whether the facet was found to bound the domain.
func (f Facet[P]) IsMetastructure() bool {
	return f.g.facets[f.idx].meta
}

// Element is a view of an element held by a Generator.
type Element[P geom.Point] struct {
	idx int
	g   *Generator[P]
}

func (e Element[P]) Index() int {
	return e.idx
}

// NodeIndices returns the d+1 nodes of the element in construction order:
// the base facet first, the apex last.
func (e Element[P]) NodeIndices() []int {
	return append([]int(nil), e.g.elements[e.idx].nodes...)
}

// Center returns the circumsphere center computed when the element was
// accepted.
func (e Element[P]) Center() P {
	return geom.FromCoords[P](e.g.elements[e.idx].center)
}

// Radius returns the circumsphere radius truncated to the discretization
// step.
func (e Element[P]) Radius() float64 {
	return e.g.elements[e.idx].radius
}

// FacetIndices returns the base facet followed by the d facets through the
// apex.
func (e Element[P]) FacetIndices() []int {
	return append([]int(nil), e.g.elements[e.idx].facets...)
}

// SavedDirections returns the directions the bounding facets had before the
// element was accepted, in FacetIndices order.
func (e Element[P]) SavedDirections() []Direction {
	return append([]Direction(nil), e.g.elements[e.idx].dirs...)
}

// Generator accessors

func (g *Generator[P]) NumNodes() int {
	return len(g.nodes)
}

func (g *Generator[P]) NumFacets() int {
	return len(g.facets)
}

func (g *Generator[P]) NumElements() int {
	return len(g.elements)
}

// NumMetastructureFacets returns the number of facets marked as bounding the
// domain.
func (g *Generator[P]) NumMetastructureFacets() int {
	n := 0
	for _, f := range g.facets {
		if f.meta {
			n++
		}
	}
	return n
}

func (g *Generator[P]) Node(i int) Node[P] {
	if i < 0 || i >= len(g.nodes) {
		panic("Node: index out of range")
	}
	return Node[P]{idx: i, g: g}
}

func (g *Generator[P]) Facet(i int) Facet[P] {
	if i < 0 || i >= len(g.facets) {
		panic("Facet: index out of range")
	}
	return Facet[P]{idx: i, g: g}
}

func (g *Generator[P]) Element(i int) Element[P] {
	if i < 0 || i >= len(g.elements) {
		panic("Element: index out of range")
	}
	return Element[P]{idx: i, g: g}
}

// AliveNodes returns the alive node indices in list order.
func (g *Generator[P]) AliveNodes() []int {
	return g.aliveNodes.ids()
}

// DeadNodes returns the dead node indices in the order they died.
func (g *Generator[P]) DeadNodes() []int {
	return g.deadNodes.ids()
}

// AliveFacets returns the front in processing order.
func (g *Generator[P]) AliveFacets() []int {
	return g.aliveFacets.ids()
}

// DeadFacets returns the dead facet indices in the order they died.
func (g *Generator[P]) DeadFacets() []int {
	return g.deadFacets.ids()
}
