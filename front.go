// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunaygrid

import (
	"fmt"
	"math"

	"github.com/2dChan/delaunaygrid/geom"
	"github.com/2dChan/delaunaygrid/plc"
	"go.uber.org/zap"
)

// candidate is an element accepted by constructElement but not yet applied.
type candidate struct {
	nodes  []int
	center []float64
	radius float64
}

// Step advances the generator by one step. The first call copies the points
// of p into the node store and the second builds the seed facet; p is ignored
// afterwards. Every later call builds one element on the first alive facet,
// or marks that facet as metastructure. Step is a no-op once Done reports true.
func (g *Generator[P]) Step(p *plc.PLC[P]) error {
	switch {
	case !g.initialized:
		if err := g.validate(p); err != nil {
			return err
		}
		g.journal.begin()
		g.journal.record(opInit, -1, -1)
		g.initialize(p)
		g.steps++
		g.log.Debug("nodes initialized", zap.Int("nodes", len(g.nodes)))
		return nil
	case len(g.facets) == 0:
		return g.seed()
	case g.aliveFacets.len() == 0:
		return nil
	}
	return g.advance()
}

// Undo reverts the most recent Step, restoring the node, facet and element
// lists exactly.
func (g *Generator[P]) Undo() error {
	ops, ok := g.journal.pop()
	if !ok {
		return ErrNothingToUndo
	}

	for _, o := range ops {
		switch o.kind {
		case opInit:
			g.Clear()
		case opCreateFacet:
			g.aliveFacets.remove(o.id)
			g.unregisterAtNodes(o.id)
			g.facets = g.facets[:o.id]
		case opKillFacet:
			g.deadFacets.remove(o.id)
			g.aliveFacets.insertAfter(o.prev, o.id)
			g.facets[o.id].state = StateAlive
		case opKillNode:
			g.deadNodes.remove(o.id)
			g.aliveNodes.insertAfter(o.prev, o.id)
			g.nodes[o.id].state = StateAlive
		case opMarkMeta:
			g.facets[o.id].meta = false
		case opCreateElement:
			e := g.elements[o.id]
			for i, f := range e.facets {
				g.facets[f].dir = e.dirs[i]
			}
			g.elements = g.elements[:o.id]
		}
	}
	if g.steps > 0 {
		g.steps--
	}

	g.opts.Metrics.observeUndo(g.aliveFacets.len())
	g.log.Debug("undo", zap.Int("step", g.steps), zap.Int("aliveFacets", g.aliveFacets.len()))
	return nil
}

// Steps returns the number of steps that Undo can revert.
func (g *Generator[P]) Steps() int {
	return g.journal.depth()
}

// Done reports whether the front has been exhausted.
func (g *Generator[P]) Done() bool {
	return g.initialized && len(g.facets) > 0 && g.aliveFacets.len() == 0
}

// seed builds the first facet. Position 0 takes the first alive node and
// every later position the first node independent of those already chosen.
// The remaining nodes are then scanned in order against the sphere through
// the chosen nodes, and a node strictly inside replaces the node at that
// position.
func (g *Generator[P]) seed() error {
	if g.aliveNodes.len() < g.dim {
		return fmt.Errorf("%w: %d alive nodes for the seed facet", ErrInsufficientFront, g.aliveNodes.len())
	}

	step := g.opts.Step
	alive := g.aliveNodes.ids()
	idx := make([]int, 1, g.dim)
	idx[0] = alive[0]
	for i := 1; i < g.dim; i++ {
		k := g.independentNode(alive, idx)
		if k < 0 {
			return fmt.Errorf("%w: %w: no independent node for seed position %d", ErrDegenerateInput, ErrInsufficientFront, i)
		}
		idx = append(idx, alive[k])
		center, r, err := geom.CircumsphereCayleyMenger(g.points(idx))
		if err != nil {
			return fmt.Errorf("%w: %w: seed position %d: %v", ErrDegenerateInput, ErrInsufficientFront, i, err)
		}
		r = geom.Trunc(r, step)

		for k++; k < len(alive); k++ {
			q := alive[k]
			if contains(idx, q) || geom.Trunc(geom.Dist(g.coords[q], center), step) >= r {
				continue
			}
			cand := g.points(append(idx[:i:i], q))
			if geom.Dependent(cand) {
				continue
			}
			c, rq, err := geom.CircumsphereCayleyMenger(cand)
			if err != nil {
				continue
			}
			idx[i] = q
			center, r = c, geom.Trunc(rq, step)
		}
	}

	g.journal.begin()
	f := g.createFacet(idx)
	g.steps++
	g.log.Debug("seed facet", zap.Int("facet", f), zap.Ints("nodes", idx))
	g.opts.Metrics.observeStep(false, false, g.aliveFacets.len())
	return nil
}

// independentNode returns the position in alive of the first node not in idx
// that is affinely independent of it, or -1.
func (g *Generator[P]) independentNode(alive, idx []int) int {
	for k, q := range alive {
		if contains(idx, q) {
			continue
		}
		if !geom.Dependent(g.points(append(idx[:len(idx):len(idx)], q))) {
			return k
		}
	}
	return -1
}

// advance processes the first alive facet.
func (g *Generator[P]) advance() error {
	if g.aliveNodes.len() < g.dim {
		return fmt.Errorf("%w: %d alive nodes", ErrInsufficientFront, g.aliveNodes.len())
	}

	base := g.aliveFacets.front()
	g.journal.begin()
	c, ok := g.constructElement(base)
	apex := -1
	if ok {
		apex = c.nodes[g.dim]
		g.update(base, c)
	} else {
		g.markMetastructure(base)
	}
	g.steps++

	g.opts.Metrics.observeStep(ok, !ok, g.aliveFacets.len())
	g.log.Debug("step",
		zap.Int("step", g.steps),
		zap.Int("base", base),
		zap.Int("apex", apex),
		zap.Bool("metastructure", !ok),
		zap.Int("aliveFacets", g.aliveFacets.len()),
	)
	return nil
}

// constructElement finds the apex that closes facet f into an element whose
// circumsphere holds no alive node. It reports false when no node lies on
// the searchable side of f.
func (g *Generator[P]) constructElement(f int) (candidate, bool) {
	d := g.dim
	base := g.facets[f].nodes
	dir := g.facets[f].dir
	step := g.opts.Step
	alive := g.aliveNodes.ids()

	e := make([]int, d+1)
	copy(e, base)

	var (
		center []float64
		radius float64
		sphere []int
	)
	apex := -1
	for k := 0; k < len(alive); {
		c := alive[k]
		k++
		if contains(base, c) || !g.validSide(c, base, dir) {
			continue
		}
		e[d] = c
		cc, r, err := g.elementSphere(e)
		if err != nil {
			continue
		}
		apex, center, radius = c, cc, geom.Trunc(r, step)
		sphere = append(sphere[:0], c)

		inside := false
		for ; k < len(alive); k++ {
			q := alive[k]
			if contains(base, q) {
				continue
			}
			dq := geom.Trunc(geom.Dist(g.coords[q], center), step)
			if dq > radius {
				continue
			}
			if dq < radius {
				inside = true
				break
			}
			if g.onSphereSide(q, base, dir) {
				sphere = append(sphere, q)
			}
		}
		if !inside {
			break
		}
	}
	if apex < 0 {
		return candidate{}, false
	}
	e[d] = apex

	// Co-spherical nodes: take the first whose new facets cross no alive
	// facet inside the sphere.
	scope := append(append([]int(nil), sphere...), base...)
	if len(sphere) > 1 {
		for _, s := range sphere {
			e[d] = s
			if !g.blocked(e, center, radius, 0, scope) {
				break
			}
		}
	}

	if g.blocked(e, center, radius, step, scope) {
		var near []int
		for _, q := range alive {
			if contains(base, q) || !g.validSide(q, base, dir) {
				continue
			}
			if math.Abs(geom.Trunc(geom.Dist(g.coords[q], center), step)-radius) <= step {
				near = append(near, q)
			}
		}
		scope = append(near, base...)

		chosen := e[d]
		found := false
		for _, q := range near {
			e[d] = q
			if !g.blocked(e, center, radius, step, scope) {
				found = true
				break
			}
		}
		if !found {
			e[d] = chosen
			g.log.Warn("no intersection-free apex on the sphere",
				zap.Int("facet", f),
				zap.Int("apex", chosen),
				zap.Int("candidates", len(near)),
			)
		}
	}

	return candidate{nodes: e, center: center, radius: radius}, true
}

// blocked reports whether a facet of element e, other than the base, crosses
// an alive facet that is incident to a node of scope and lies within the
// sphere enlarged by slack.
func (g *Generator[P]) blocked(e []int, center []float64, radius, slack float64, scope []int) bool {
	d := g.dim
	nf := make([]int, 0, d)
	for _, n := range scope {
		for _, h := range g.nodes[n].facets {
			other := g.facets[h]
			if other.state == StateDead || !g.withinSphere(other.nodes, center, radius+slack) {
				continue
			}
			for i := 0; i < d; i++ {
				nf = dropAt(nf[:0], e, d-1-i)
				if g.pred.Intersect(nf, other.nodes, g.coords) {
					return true
				}
			}
		}
	}
	return false
}

// update applies an accepted element built on facet f: it reuses or creates
// the new facets, fixes their directions and kills what is complete.
func (g *Generator[P]) update(f int, c candidate) {
	d := g.dim
	e := c.nodes
	apex := e[d]

	nf := make([]int, 0, d+1)
	nf = append(nf, f)
	for i := 0; i < d; i++ {
		idx := dropAt(nil, e, d-1-i)
		if h, ok := g.findAliveFacet(apex, idx); ok {
			g.killFacet(h)
			nf = append(nf, h)
			continue
		}
		nf = append(nf, g.createFacet(idx))
	}

	dirs := make([]Direction, len(nf))
	for i, h := range nf {
		dirs[i] = g.facets[h].dir
	}

	for i, h := range nf {
		fc := &g.facets[h]
		switch {
		case fc.state == StateDead:
			g.tryKillNodes(h)
		case fc.dir == DirectionBoth:
			if g.side(e[d-i], fc.nodes) > 0 {
				fc.dir = DirectionLeft
			} else {
				fc.dir = DirectionRight
			}
		default:
			g.killFacet(h)
			g.tryKillNodes(h)
		}
	}

	id := len(g.elements)
	g.elements = append(g.elements, element{
		nodes:  e,
		center: c.center,
		radius: c.radius,
		facets: nf,
		dirs:   dirs,
	})
	g.journal.record(opCreateElement, id, -1)
}

func (g *Generator[P]) markMetastructure(f int) {
	g.facets[f].meta = true
	g.journal.record(opMarkMeta, f, -1)
	g.killFacet(f)
	g.tryKillNodes(f)
}

// Lifecycle

func (g *Generator[P]) createFacet(nodes []int) int {
	id := len(g.facets)
	g.facets = append(g.facets, facet{nodes: nodes, state: StateUnknown, dir: DirectionBoth})
	for _, n := range nodes {
		g.nodes[n].facets = append(g.nodes[n].facets, id)
	}
	g.facets[id].state = StateAlive
	g.aliveFacets.pushBack(id)
	g.journal.record(opCreateFacet, id, -1)
	return id
}

func (g *Generator[P]) unregisterAtNodes(f int) {
	for _, n := range g.facets[f].nodes {
		fs := g.nodes[n].facets
		for i := len(fs) - 1; i >= 0; i-- {
			if fs[i] == f {
				g.nodes[n].facets = append(fs[:i], fs[i+1:]...)
				break
			}
		}
	}
}

func (g *Generator[P]) killFacet(f int) {
	prev := g.aliveFacets.remove(f)
	g.deadFacets.pushBack(f)
	g.facets[f].state = StateDead
	g.journal.record(opKillFacet, f, prev)
}

// tryKillNodes kills every node of facet f left without an alive facet.
func (g *Generator[P]) tryKillNodes(f int) {
	for _, n := range g.facets[f].nodes {
		if g.nodes[n].state != StateAlive || g.hasAliveFacet(n) {
			continue
		}
		prev := g.aliveNodes.remove(n)
		g.deadNodes.pushBack(n)
		g.nodes[n].state = StateDead
		g.journal.record(opKillNode, n, prev)
	}
}

func (g *Generator[P]) hasAliveFacet(n int) bool {
	for _, f := range g.nodes[n].facets {
		if g.facets[f].state == StateAlive {
			return true
		}
	}
	return false
}

// findAliveFacet looks among the facets of node n for an alive one with the
// node set nodes.
func (g *Generator[P]) findAliveFacet(n int, nodes []int) (int, bool) {
	for _, f := range g.nodes[n].facets {
		if g.facets[f].state != StateDead && sameSet(g.facets[f].nodes, nodes) {
			return f, true
		}
	}
	return -1, false
}

// Geometry

func (g *Generator[P]) points(ids []int) [][]float64 {
	pts := make([][]float64, len(ids))
	for i, id := range ids {
		pts[i] = g.coords[id]
	}
	return pts
}

func (g *Generator[P]) side(q int, facet []int) float64 {
	return g.pred.Side(g.coords[q], g.points(facet))
}

// validSide reports whether q may close facet base searched in direction dir.
func (g *Generator[P]) validSide(q int, base []int, dir Direction) bool {
	s := g.side(q, base)
	switch {
	case s == 0:
		return false
	case s < 0 && dir == DirectionRight:
		return false
	case s > 0 && dir == DirectionLeft:
		return false
	}
	return true
}

// onSphereSide decides whether a node on the current sphere joins the
// co-spherical set.
func (g *Generator[P]) onSphereSide(q int, base []int, dir Direction) bool {
	if dir == DirectionBoth {
		return true
	}
	s := g.side(q, base)
	return (s > 0 && dir == DirectionRight) || (s < 0 && dir == DirectionLeft)
}

func (g *Generator[P]) elementSphere(e []int) ([]float64, float64, error) {
	return geom.Circumsphere(g.opts.Circumsphere, g.points(e))
}

func (g *Generator[P]) withinSphere(nodes []int, center []float64, limit float64) bool {
	for _, n := range nodes {
		if geom.Trunc(geom.Dist(g.coords[n], center), g.opts.Step) > limit {
			return false
		}
	}
	return true
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// dropAt appends to dst every element of s except s[k].
func dropAt(dst, s []int, k int) []int {
	for i, v := range s {
		if i != k {
			dst = append(dst, v)
		}
	}
	return dst
}

func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		if !contains(b, x) {
			return false
		}
	}
	return true
}
