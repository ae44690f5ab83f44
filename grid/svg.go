// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package grid

import (
	"errors"
	"io"
	"math"

	"github.com/2dChan/delaunaygrid/geom"
	svg "github.com/ajstarks/svgo"
)

const (
	svgMargin = 10

	elementStyle = "fill:rgb(255,255,255);stroke:rgb(170,170,170);stroke-width:1;stroke-opacity:1.0"
	faceStyle    = "fill:none;stroke:rgb(170,170,170);stroke-width:1;stroke-opacity:0.6"
	nodeStyle    = "fill:rgb(0,0,255)"
)

// Viewport maps the xy plane of a grid onto an SVG canvas.
type Viewport struct {
	Width, Height int
	minX, minY    float64
	scale         float64
}

// NewViewport fits the xy bounding box of pts into a canvas width pixels
// wide, preserving the aspect ratio.
func NewViewport[P geom.Point](pts []P, width int) Viewport {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		c := geom.Coords(p)
		minX, maxX = math.Min(minX, c[0]), math.Max(maxX, c[0])
		minY, maxY = math.Min(minY, c[1]), math.Max(maxY, c[1])
	}
	if len(pts) == 0 {
		minX, minY, maxX, maxY = 0, 0, 1, 1
	}

	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	inner := float64(width - 2*svgMargin)
	scale := inner / span
	return Viewport{
		Width:  width,
		Height: int(math.Ceil((maxY-minY)*scale)) + 2*svgMargin,
		minX:   minX,
		minY:   minY,
		scale:  scale,
	}
}

// ToScreen returns the canvas position of p. The y axis points up.
func ToScreen[P geom.Point](v Viewport, p P) (int, int) {
	c := geom.Coords(p)
	x := (c[0]-v.minX)*v.scale + svgMargin
	y := float64(v.Height) - ((c[1]-v.minY)*v.scale + svgMargin)
	return int(math.Round(x)), int(math.Round(y))
}

// WriteSVG renders the grid seen from above onto a canvas width pixels wide.
// Tetrahedra are drawn as their four faces.
func (g *Grid[P]) WriteSVG(w io.Writer, width int) error {
	if width <= 2*svgMargin {
		return errors.New("grid: svg width too small")
	}

	ew := &errWriter{w: w}
	vp := NewViewport(g.Nodes, width)
	canvas := svg.New(ew)
	canvas.Start(vp.Width, vp.Height)
	canvas.Rect(0, 0, vp.Width, vp.Height, "fill:rgb(255,255,255)")

	xPoints := make([]int, 0, 4)
	yPoints := make([]int, 0, 4)
	for _, e := range g.Elements {
		if len(e.Nodes) == 3 {
			xPoints, yPoints = xPoints[:0], yPoints[:0]
			for _, n := range e.Nodes {
				x, y := ToScreen(vp, g.Nodes[n])
				xPoints = append(xPoints, x)
				yPoints = append(yPoints, y)
			}
			canvas.Polygon(xPoints, yPoints, elementStyle)
			continue
		}

		for skip := range e.Nodes {
			xPoints, yPoints = xPoints[:0], yPoints[:0]
			for k, n := range e.Nodes {
				if k == skip {
					continue
				}
				x, y := ToScreen(vp, g.Nodes[n])
				xPoints = append(xPoints, x)
				yPoints = append(yPoints, y)
			}
			canvas.Polygon(xPoints, yPoints, faceStyle)
		}
	}

	for _, p := range g.Nodes {
		x, y := ToScreen(vp, p)
		canvas.Circle(x, y, 3, nodeStyle)
	}
	canvas.End()
	return ew.err
}

// errWriter records the first write error; svgo discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return len(p), nil
	}
	if _, err := ew.w.Write(p); err != nil {
		ew.err = err
	}
	return len(p), nil
}
