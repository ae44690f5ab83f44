// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package delaunaygrid builds Delaunay meshes of planar and spatial point sets
// by advancing a front of facets one simplex at a time.
//
// The same Generator body triangulates r2.Point inputs and tetrahedralizes
// r3.Vector inputs. Besides the one-shot ConstructGrid, a Generator can be
// driven step by step and rolled back with Undo.
package delaunaygrid

import (
	"errors"
	"fmt"

	"github.com/2dChan/delaunaygrid/geom"
	"github.com/2dChan/delaunaygrid/grid"
	"github.com/2dChan/delaunaygrid/plc"
	"go.uber.org/zap"
)

var (
	// ErrInvalidInput is returned for a nil PLC or one with fewer than d+1
	// points.
	ErrInvalidInput = errors.New("delaunaygrid: invalid input")
	// ErrInsufficientFront is returned when fewer than d alive nodes remain
	// to build a facet or an element.
	ErrInsufficientFront = errors.New("delaunaygrid: insufficient alive nodes")
	// ErrDegenerateInput is returned when no seed facet exists or the front
	// is exhausted while nodes are still alive. Such errors also match
	// ErrInsufficientFront.
	ErrDegenerateInput = errors.New("delaunaygrid: degenerate input")
	// ErrNothingToUndo is returned by Undo when no step has been recorded.
	ErrNothingToUndo = errors.New("delaunaygrid: nothing to undo")
)

// State is the lifecycle state of a node or a facet.
type State uint8

const (
	StateUnknown State = iota
	StateAlive
	StateDead
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "Unknown"
	case StateAlive:
		return "Alive"
	case StateDead:
		return "Dead"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Direction records on which side of a facet the missing element must be
// searched. Left accepts nodes with a negative side determinant, Right
// nodes with a positive one.
type Direction uint8

const (
	DirectionBoth Direction = iota
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionBoth:
		return "Both"
	case DirectionLeft:
		return "Left"
	case DirectionRight:
		return "Right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

type node[P geom.Point] struct {
	point  P
	state  State
	facets []int
}

type facet struct {
	nodes []int
	state State
	dir   Direction
	meta  bool
}

type element struct {
	nodes  []int
	center []float64
	radius float64
	facets []int
	dirs   []Direction
}

// Generator owns every node, facet and element created while meshing one
// point set. It is not safe for concurrent use.
type Generator[P geom.Point] struct {
	opts Options
	pred geom.Predicates
	log  *zap.Logger
	dim  int

	initialized bool
	nodes       []node[P]
	coords      [][]float64
	facets      []facet
	elements    []element

	aliveNodes  idList
	deadNodes   idList
	aliveFacets idList
	deadFacets  idList

	journal journal
	steps   int
}

// NewGenerator returns an empty generator configured by opts.
func NewGenerator[P geom.Point](opts ...Option) (*Generator[P], error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	g := &Generator[P]{
		opts: o,
		pred: geom.Predicates{Step: o.Step},
		log:  o.Logger,
		dim:  geom.Dim[P](),
	}
	g.Clear()
	return g, nil
}

// ConstructGrid meshes p and exports the result. Elements of the returned
// grid are positively oriented. When clearWhenDone is false the generator
// keeps its state for inspection; the run is not journaled, so Undo is not
// available afterwards.
func (g *Generator[P]) ConstructGrid(p *plc.PLC[P], clearWhenDone bool) (*grid.Grid[P], error) {
	if err := g.validate(p); err != nil {
		return nil, err
	}

	g.Clear()
	g.journal.off = true
	defer func() { g.journal.off = false }()

	g.initialize(p)
	if err := g.seed(); err != nil {
		g.Clear()
		return nil, err
	}
	for g.aliveFacets.len() > 0 {
		if err := g.advance(); err != nil {
			g.Clear()
			return nil, err
		}
	}
	if n := g.aliveNodes.len(); n > 0 {
		g.Clear()
		return nil, fmt.Errorf("%w: %w: %d nodes left outside the mesh", ErrDegenerateInput, ErrInsufficientFront, n)
	}

	out, err := g.export()
	if err != nil {
		g.Clear()
		return nil, err
	}
	g.log.Info("grid constructed",
		zap.Int("nodes", out.NumNodes()),
		zap.Int("elements", out.NumElements()),
		zap.Int("deadFacets", g.deadFacets.len()),
		zap.Int("steps", g.steps),
	)

	if clearWhenDone {
		g.Clear()
	}
	return out, nil
}

// Clear releases every node, facet and element and forgets the journal.
func (g *Generator[P]) Clear() {
	g.initialized = false
	g.nodes = nil
	g.coords = nil
	g.facets = nil
	g.elements = nil
	g.aliveNodes.reset()
	g.deadNodes.reset()
	g.aliveFacets.reset()
	g.deadFacets.reset()
	g.journal.reset()
	g.steps = 0
}

func (g *Generator[P]) String() string {
	return fmt.Sprintf("Generator{nodes: %d (%d alive), facets: %d (%d alive), elements: %d}",
		len(g.nodes), g.aliveNodes.len(), len(g.facets), g.aliveFacets.len(), len(g.elements))
}

func (g *Generator[P]) validate(p *plc.PLC[P]) error {
	if p == nil {
		return fmt.Errorf("%w: nil PLC", ErrInvalidInput)
	}
	if p.Len() < g.dim+1 {
		return fmt.Errorf("%w: %d points, need at least %d", ErrInvalidInput, p.Len(), g.dim+1)
	}
	return nil
}

// initialize copies the points of p into alive nodes.
func (g *Generator[P]) initialize(p *plc.PLC[P]) {
	n := p.Len()
	g.nodes = make([]node[P], n)
	g.coords = make([][]float64, n)
	for i := 0; i < n; i++ {
		c := geom.Coords(p.At(i))
		if g.opts.RoundInput {
			for k := range c {
				c[k] = geom.Round(c[k], g.opts.Step)
			}
		}
		g.coords[i] = c
		g.nodes[i] = node[P]{point: geom.FromCoords[P](c), state: StateAlive}
		g.aliveNodes.pushBack(i)
	}
	g.initialized = true
}

func (g *Generator[P]) export() (*grid.Grid[P], error) {
	out := grid.New[P]()
	for _, n := range g.nodes {
		out.CreateNode(n.point)
	}
	for _, e := range g.elements {
		if _, err := out.CreateFiniteElement(e.nodes, nil); err != nil {
			return nil, fmt.Errorf("delaunaygrid: export: %w", err)
		}
	}
	out.PermuteOnNegativeVolume()
	return out, nil
}
