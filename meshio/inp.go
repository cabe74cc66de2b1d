package meshio

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Megidd/tetremesh/mesh"
)

// WriteInp writes the finite cells of m as a CalculiX/ABAQUS `inp` file:
// every finite vertex as a *NODE, every finite cell as a 4-node C3D4
// tetrahedron. Modeled on the teacher's render/finiteelements/mesh Inp.Write,
// simplified to linear tets since the remeshing core only ever produces
// linear (non-quadratic) elements.
func WriteInp(m *mesh.Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("meshio: creating %s: %w", path, err)
	}
	defer f.Close()
	return writeInp(m, f)
}

func writeInp(m *mesh.Mesh, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "**\n** Structure: remeshed tetrahedral volume.\n**\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "*HEADING\nModel: tetremesh output Date: %s\n", time.Now().UTC().Format("2006-Jan-02 MST")); err != nil {
		return err
	}

	ids := map[mesh.VertexHandle]int{}
	nextID := 1
	var err error

	if _, err := io.WriteString(w, "*NODE\n"); err != nil {
		return err
	}
	m.FiniteVertices(func(v mesh.VertexHandle) bool {
		pos := m.Vertex(v).Pos
		ids[v] = nextID
		_, err = fmt.Fprintf(w, "%d,%f,%f,%f\n", nextID, pos.X, pos.Y, pos.Z)
		nextID++
		return err == nil
	})
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "*ELEMENT, TYPE=C3D4, ELSET=eC3D4\n"); err != nil {
		return err
	}
	eleID := 1
	m.FiniteCells(func(c mesh.CellHandle) bool {
		cell := m.Cell(c)
		_, err = fmt.Fprintf(w, "%d,%d,%d,%d,%d\n", eleID, ids[cell.V[0]], ids[cell.V[1]], ids[cell.V[2]], ids[cell.V[3]])
		eleID++
		return err == nil
	})
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, "*SOLID SECTION,MATERIAL=resin,ELSET=eC3D4\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "*MATERIAL, name=resin\n*ELASTIC,TYPE=ISO\n1.0e9,0.3,0\n*DENSITY\n1.0e-9\n"); err != nil {
		return err
	}
	return nil
}
