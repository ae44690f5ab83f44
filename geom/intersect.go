// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import (
	"github.com/golang/geo/r3"
)

// orientFunc is a signed area of the triangle abc, measured in some plane.
type orientFunc func(a, b, c r3.Vector) float64

// orientXY is the signed area of abc projected onto the xy plane.
func orientXY(a, b, c r3.Vector) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Z
}

// orientIn returns the signed area of abc measured along the normal n.
func orientIn(n r3.Vector) orientFunc {
	return func(a, b, c r3.Vector) float64 {
		return b.Sub(a).Cross(c.Sub(a)).Dot(n)
	}
}

func orient3(a, b, c, d r3.Vector) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Dot(d.Sub(a))
}

func (p Predicates) intersectSegments(a, b []int, pts [][]float64) bool {
	s := shared(a, b)
	switch len(s) {
	case 2:
		return false
	case 1:
		v := vec3(pts[s[0]])
		u := vec3(pts[without(a, s)[0]])
		w := vec3(pts[without(b, s)[0]])
		if p.Sign(orientXY(v, u, w)) != 0 {
			return false
		}
		return u.Sub(v).Dot(w.Sub(v)) > 0
	}
	return p.segmentsMeet(vec3(pts[a[0]]), vec3(pts[a[1]]), vec3(pts[b[0]]), vec3(pts[b[1]]), orientXY)
}

// onSegment reports whether r, known to be collinear with pq, lies on the
// closed segment pq.
func (p Predicates) onSegment(q0, q1, r r3.Vector) bool {
	return r.Sub(q0).Dot(r.Sub(q1)) <= p.Step
}

// segmentsMeet reports whether the closed segments p0p1 and q0q1 share a
// point. Both segments must lie in the plane orient measures in.
func (p Predicates) segmentsMeet(p0, p1, q0, q1 r3.Vector, orient orientFunc) bool {
	o1, o2 := p.Sign(orient(p0, p1, q0)), p.Sign(orient(p0, p1, q1))
	o3, o4 := p.Sign(orient(q0, q1, p0)), p.Sign(orient(q0, q1, p1))
	if o1*o2 < 0 && o3*o4 < 0 {
		return true
	}
	return (o1 == 0 && p.onSegment(p0, p1, q0)) ||
		(o2 == 0 && p.onSegment(p0, p1, q1)) ||
		(o3 == 0 && p.onSegment(q0, q1, p0)) ||
		(o4 == 0 && p.onSegment(q0, q1, p1))
}

func (p Predicates) intersectTriangles(a, b []int, pts [][]float64) bool {
	s := shared(a, b)
	switch len(s) {
	case 3:
		return false
	case 2:
		return p.trianglesShareEdge(a, b, s, pts)
	case 1:
		return p.trianglesShareVertex(a, b, s[0], pts)
	}

	ta := [3]r3.Vector{vec3(pts[a[0]]), vec3(pts[a[1]]), vec3(pts[a[2]])}
	tb := [3]r3.Vector{vec3(pts[b[0]]), vec3(pts[b[1]]), vec3(pts[b[2]])}
	coplanar := true
	for _, x := range tb {
		if p.Sign(orient3(ta[0], ta[1], ta[2], x)) != 0 {
			coplanar = false
			break
		}
	}
	if coplanar {
		n := ta[1].Sub(ta[0]).Cross(ta[2].Sub(ta[0])).Normalize()
		return p.trianglesMeetCoplanar(ta, tb, n)
	}
	for i := 0; i < 3; i++ {
		if p.segmentMeetsTriangle(ta[i], ta[(i+1)%3], tb[0], tb[1], tb[2]) {
			return true
		}
		if p.segmentMeetsTriangle(tb[i], tb[(i+1)%3], ta[0], ta[1], ta[2]) {
			return true
		}
	}
	return false
}

// trianglesShareEdge handles triangles with a common edge: they overlap
// only when coplanar and on the same side of that edge.
func (p Predicates) trianglesShareEdge(a, b, s []int, pts [][]float64) bool {
	u, w := vec3(pts[s[0]]), vec3(pts[s[1]])
	x := vec3(pts[without(a, s)[0]])
	y := vec3(pts[without(b, s)[0]])
	if p.Sign(orient3(u, w, x, y)) != 0 {
		return false
	}
	e := w.Sub(u)
	return e.Cross(x.Sub(u)).Dot(e.Cross(y.Sub(u))) > 0
}

// trianglesShareVertex handles triangles with a single common vertex v.
func (p Predicates) trianglesShareVertex(a, b []int, v int, pts [][]float64) bool {
	oa, ob := without(a, []int{v}), without(b, []int{v})
	pv := vec3(pts[v])
	a1, a2 := vec3(pts[oa[0]]), vec3(pts[oa[1]])
	b1, b2 := vec3(pts[ob[0]]), vec3(pts[ob[1]])

	if p.Sign(orient3(pv, a1, a2, b1)) == 0 && p.Sign(orient3(pv, a1, a2, b2)) == 0 {
		ua1, ua2 := a1.Sub(pv), a2.Sub(pv)
		ub1, ub2 := b1.Sub(pv), b2.Sub(pv)
		n := ua1.Cross(ua2).Normalize()
		if ub1.Cross(ub2).Dot(n) < 0 {
			ub1, ub2 = ub2, ub1
		}
		return p.inCone(ua1, ua2, ub1, n) || p.inCone(ua1, ua2, ub2, n) ||
			p.inCone(ub1, ub2, ua1, n) || p.inCone(ub1, ub2, ua2, n)
	}

	da, ok := p.planeCut(pv, a1, a2, pv, b1, b2)
	if !ok {
		return false
	}
	db, ok := p.planeCut(pv, b1, b2, pv, a1, a2)
	if !ok {
		return false
	}
	return da.Dot(db) > 0
}

// inCone reports whether w lies in the closed wedge from u1 counterclockwise
// to u2 around the normal n.
func (p Predicates) inCone(u1, u2, w, n r3.Vector) bool {
	return p.Sign(u1.Cross(w).Dot(n)) >= 0 && p.Sign(w.Cross(u2).Dot(n)) >= 0
}

// planeCut returns the direction from v of the segment in which the plane
// through b0, b1, b2 cuts the triangle v, a1, a2. The plane passes through v;
// ok is false when v is the only common point.
func (p Predicates) planeCut(v, a1, a2, b0, b1, b2 r3.Vector) (r3.Vector, bool) {
	s1 := Trunc(orient3(b0, b1, b2, a1), p.Step)
	s2 := Trunc(orient3(b0, b1, b2, a2), p.Step)
	switch {
	case (s1 > 0 && s2 > 0) || (s1 < 0 && s2 < 0):
		return r3.Vector{}, false
	case s1 == 0:
		return a1.Sub(v), true
	case s2 == 0:
		return a2.Sub(v), true
	}
	cut := a1.Add(a2.Sub(a1).Mul(s1 / (s1 - s2)))
	return cut.Sub(v), true
}

func (p Predicates) pointInTriangle(q, a, b, c, n r3.Vector) bool {
	s1 := p.Sign(b.Sub(a).Cross(q.Sub(a)).Dot(n))
	s2 := p.Sign(c.Sub(b).Cross(q.Sub(b)).Dot(n))
	s3 := p.Sign(a.Sub(c).Cross(q.Sub(c)).Dot(n))
	return (s1 >= 0 && s2 >= 0 && s3 >= 0) || (s1 <= 0 && s2 <= 0 && s3 <= 0)
}

func (p Predicates) trianglesMeetCoplanar(ta, tb [3]r3.Vector, n r3.Vector) bool {
	orient := orientIn(n)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if p.segmentsMeet(ta[i], ta[(i+1)%3], tb[j], tb[(j+1)%3], orient) {
				return true
			}
		}
	}
	return p.pointInTriangle(ta[0], tb[0], tb[1], tb[2], n) ||
		p.pointInTriangle(tb[0], ta[0], ta[1], ta[2], n)
}

// segmentMeetsTriangle reports whether the closed segment pq shares a point
// with the closed triangle abc.
func (p Predicates) segmentMeetsTriangle(q0, q1, a, b, c r3.Vector) bool {
	s1, s2 := p.Sign(orient3(a, b, c, q0)), p.Sign(orient3(a, b, c, q1))
	if s1*s2 > 0 {
		return false
	}
	if s1 == 0 && s2 == 0 {
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		if p.pointInTriangle(q0, a, b, c, n) || p.pointInTriangle(q1, a, b, c, n) {
			return true
		}
		orient := orientIn(n)
		return p.segmentsMeet(q0, q1, a, b, orient) ||
			p.segmentsMeet(q0, q1, b, c, orient) ||
			p.segmentsMeet(q0, q1, c, a, orient)
	}
	t1 := p.Sign(orient3(q0, q1, a, b))
	t2 := p.Sign(orient3(q0, q1, b, c))
	t3 := p.Sign(orient3(q0, q1, c, a))
	return (t1 >= 0 && t2 >= 0 && t3 >= 0) || (t1 <= 0 && t2 <= 0 && t3 <= 0)
}
