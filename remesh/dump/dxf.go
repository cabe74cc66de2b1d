package dump

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/Megidd/tetremesh/mesh"
)

// WriteDXF exports every tagged complex (feature) edge as a 3D line
// entity, for reviewing preserved sharp features in CAD tooling.
func WriteDXF(m *mesh.Mesh, path string) error {
	d := dxf.NewDrawing()
	d.AddLayer("complex_edges", drawing.DefaultColor, drawing.DefaultLineType, true)

	for ek := range m.ComplexEdges {
		a := m.Vertex(ek[0]).Pos
		b := m.Vertex(ek[1]).Pos
		d.Line(a.X, a.Y, a.Z, b.X, b.Y, b.Z)
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("dump: saving dxf: %w", err)
	}
	return nil
}
