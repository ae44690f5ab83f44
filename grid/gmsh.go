// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package grid

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/2dChan/delaunaygrid/geom"
)

// Gmsh element type codes.
const (
	gmshTriangle    = 2
	gmshTetrahedron = 4
)

// WriteGmsh writes the grid in the Gmsh 4.1 ASCII format, as one entity of
// dimension 2 or 3 holding all nodes and elements.
func (g *Grid[P]) WriteGmsh(w io.Writer) error {
	d := geom.Dim[P]()
	elemType := gmshTriangle
	if d == 3 {
		elemType = gmshTetrahedron
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "$MeshFormat")
	fmt.Fprintln(bw, "4.1 0 8")
	fmt.Fprintln(bw, "$EndMeshFormat")

	lo, hi := g.bounds()
	fmt.Fprintln(bw, "$Entities")
	if d == 3 {
		fmt.Fprintln(bw, "0 0 0 1")
	} else {
		fmt.Fprintln(bw, "0 0 1 0")
	}
	fmt.Fprintf(bw, "1 %v %v %v %v %v %v 0 0\n", lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
	fmt.Fprintln(bw, "$EndEntities")

	numNodes := len(g.Nodes)
	fmt.Fprintln(bw, "$Nodes")
	fmt.Fprintf(bw, "1 %d 1 %d\n", numNodes, numNodes)
	fmt.Fprintf(bw, "%d 1 0 %d\n", d, numNodes)
	for i := 0; i < numNodes; i++ {
		fmt.Fprintf(bw, "%d\n", i+1)
	}
	for _, p := range g.Nodes {
		c := append(geom.Coords(p), 0)
		fmt.Fprintf(bw, "%v %v %v\n", c[0], c[1], c[2])
	}
	fmt.Fprintln(bw, "$EndNodes")

	numElements := len(g.Elements)
	fmt.Fprintln(bw, "$Elements")
	fmt.Fprintf(bw, "1 %d 1 %d\n", numElements, numElements)
	fmt.Fprintf(bw, "%d 1 %d %d\n", d, elemType, numElements)
	for i, e := range g.Elements {
		fmt.Fprintf(bw, "%d", i+1)
		for _, n := range e.Nodes {
			fmt.Fprintf(bw, " %d", n+1)
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintln(bw, "$EndElements")

	return bw.Flush()
}

// bounds returns the bounding box of the nodes padded to three coordinates.
func (g *Grid[P]) bounds() (lo, hi [3]float64) {
	if len(g.Nodes) == 0 {
		return lo, hi
	}
	for i := 0; i < 3; i++ {
		lo[i], hi[i] = math.Inf(1), math.Inf(-1)
	}
	for _, p := range g.Nodes {
		c := append(geom.Coords(p), 0)
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], c[i])
			hi[i] = math.Max(hi[i], c[i])
		}
	}
	return lo, hi
}
