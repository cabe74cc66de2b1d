package dump

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Megidd/tetremesh/mesh"
)

// buildSingleTet mirrors remesh/testutil_test.go's fixture, rebuilt here
// with mesh's exported surface only (this package can't reach mesh's
// unexported rewireAll/facetVerts).
func buildSingleTet(t *testing.T) *mesh.Mesh {
	t.Helper()
	m := mesh.NewMesh()
	positions := [4]mesh.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1},
	}
	var v [4]mesh.VertexHandle
	for i, p := range positions {
		v[i] = m.AddVertex(p, mesh.DimVolume)
	}
	inf := m.InfiniteVertex()
	f := m.AddCell([4]mesh.VertexHandle{v[0], v[1], v[2], v[3]}, 1)
	if vol := m.SignedVolume(f); vol <= 0 {
		t.Fatalf("fixture tet has non-positive volume %g", vol)
	}
	cell := m.Cell(f)
	group := []mesh.CellHandle{f}
	for i := 0; i < 4; i++ {
		var fv [3]mesh.VertexHandle
		k := 0
		for l := 0; l < 4; l++ {
			if l != i {
				fv[k] = cell.V[l]
				k++
			}
		}
		ic := m.AddCell([4]mesh.VertexHandle{inf, fv[0], fv[1], fv[2]}, mesh.NoSubdomain)
		group = append(group, ic)
	}
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			c1, c2 := m.Cell(group[i]), m.Cell(group[j])
			a1, a2, ok := sharedFacet(c1, c2)
			if !ok {
				continue
			}
			c1.N[a1] = group[j]
			c2.N[a2] = group[i]
			m.SetCell(group[i], c1)
			m.SetCell(group[j], c2)
		}
	}
	m.AddComplexFacet(v[0], v[1], v[2])
	m.AddComplexEdge(v[0], v[1])
	return m
}

func sharedFacet(c1, c2 mesh.Cell) (i1, i2 int, ok bool) {
	apex1, apex2 := -1, -1
	shared := 0
	for i, a := range c1.V {
		found := false
		for _, b := range c2.V {
			if a == b {
				found = true
				break
			}
		}
		if found {
			shared++
		} else {
			apex1 = i
		}
	}
	if shared != 3 {
		return -1, -1, false
	}
	for j, b := range c2.V {
		found := false
		for _, a := range c1.V {
			if a == b {
				found = true
				break
			}
		}
		if !found {
			apex2 = j
		}
	}
	if apex1 < 0 || apex2 < 0 {
		return -1, -1, false
	}
	return apex1, apex2, true
}

func TestWriteSVGContainsLines(t *testing.T) {
	m := buildSingleTet(t)
	var buf strings.Builder
	if err := WriteSVG(m, &buf); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatalf("output doesn't look like an SVG document:\n%s", out)
	}
	if !strings.Contains(out, "<line") {
		t.Fatalf("expected at least one <line> element for the tet's edges:\n%s", out)
	}
}

func TestWrite3MFProducesNonEmptyOutput(t *testing.T) {
	m := buildSingleTet(t)
	var buf strings.Builder
	if err := Write3MF(m, &buf); err != nil {
		t.Fatalf("Write3MF: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("Write3MF produced no output for a mesh with one tagged complex facet")
	}
}

func TestWriteCrossSectionPNG(t *testing.T) {
	m := buildSingleTet(t)
	path := filepath.Join(t.TempDir(), "slice.png")
	if err := WriteCrossSectionPNG(m, 0.25, path, "test slice"); err != nil {
		t.Fatalf("WriteCrossSectionPNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected a PNG file to exist: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PNG file is empty")
	}
}

func TestDirDumperWritesSelectedFormats(t *testing.T) {
	m := buildSingleTet(t)
	dir := t.TempDir()
	d := &DirDumper{Dir: dir, SVG: true, ThreeMF: true, DXF: true}
	if err := d.Dump("test", 1, m); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	for _, name := range []string{"test-001.svg", "test-001.3mf", "test-001.dxf"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "test-001.png")); err == nil {
		t.Error("PNG was not requested but a file was written anyway")
	}
}
