package dump

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/Megidd/tetremesh/mesh"
)

// WriteSVG renders an XY projection of every finite edge, feature edges in
// red, ordinary edges in light grey.
func WriteSVG(m *mesh.Mesh, w io.Writer) error {
	const size = 800
	const margin = 40

	minX, minY, maxX, maxY := boundsXY(m)
	scale := 1.0
	if dx, dy := maxX-minX, maxY-minY; dx > 0 || dy > 0 {
		span := dx
		if dy > span {
			span = dy
		}
		if span > 0 {
			scale = (size - 2*margin) / span
		}
	}
	project := func(p mesh.Vec) (int, int) {
		x := margin + (p.X-minX)*scale
		y := size - margin - (p.Y-minY)*scale
		return int(x), int(y)
	}

	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, "fill:white")

	m.FiniteEdges(func(ek mesh.EdgeKey) bool {
		a, b := m.Vertex(ek[0]), m.Vertex(ek[1])
		x1, y1 := project(a.Pos)
		x2, y2 := project(b.Pos)
		style := "stroke:#cccccc;stroke-width:1"
		if m.IsComplexEdge(ek[0], ek[1]) {
			style = "stroke:#cc0000;stroke-width:2"
		}
		canvas.Line(x1, y1, x2, y2, style)
		return true
	})

	canvas.End()
	return nil
}

func boundsXY(m *mesh.Mesh) (minX, minY, maxX, maxY float64) {
	first := true
	m.FiniteVertices(func(v mesh.VertexHandle) bool {
		p := m.Vertex(v).Pos
		if first {
			minX, maxX = p.X, p.X
			minY, maxY = p.Y, p.Y
			first = false
			return true
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
		return true
	})
	return
}
