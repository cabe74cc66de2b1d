package remesh

import (
	"testing"

	"github.com/Megidd/tetremesh/mesh"
)

// rewireGroup wires neighbor pointers within group by brute-force facet
// matching, mirroring the mesh package's own (unexported) rewireAll using
// only the exported Cell/SetCell surface -- this package can't reach
// mesh.Mesh's internals directly.
func rewireGroup(m *mesh.Mesh, group []mesh.CellHandle) {
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			c1, c2 := group[i], group[j]
			if !m.ValidCell(c1) || !m.ValidCell(c2) {
				continue
			}
			cell1, cell2 := m.Cell(c1), m.Cell(c2)
			a1, a2, ok := sharedFacetLocal(cell1, cell2)
			if !ok {
				continue
			}
			cell1.N[a1] = c2
			cell2.N[a2] = c1
			m.SetCell(c1, cell1)
			m.SetCell(c2, cell2)
		}
	}
}

func sharedFacetLocal(c1, c2 mesh.Cell) (i1, i2 int, ok bool) {
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

func facetVertsLocal(c mesh.Cell, i int) [3]mesh.VertexHandle {
	var out [3]mesh.VertexHandle
	k := 0
	for l := 0; l < 4; l++ {
		if l != i {
			out[k] = c.V[l]
			k++
		}
	}
	return out
}

// buildSingleTet returns one finite cell closed off by a 4-cell cone to
// the infinite vertex.
func buildSingleTet(t *testing.T) (*mesh.Mesh, [4]mesh.VertexHandle, mesh.CellHandle) {
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
		fv := facetVertsLocal(cell, i)
		ic := m.AddCell([4]mesh.VertexHandle{inf, fv[0], fv[1], fv[2]}, mesh.NoSubdomain)
		group = append(group, ic)
	}
	rewireGroup(m, group)
	return m, v, f
}

// buildTwoTets returns a bipyramid: two finite tets sharing facet
// (v1,v2,v3), closed off by six infinite cells over the remaining hull
// faces. Both finite tets share subdomain 1.
func buildTwoTets(t *testing.T) (*mesh.Mesh, [5]mesh.VertexHandle, mesh.CellHandle, mesh.CellHandle) {
	t.Helper()
	m := mesh.NewMesh()
	positions := [5]mesh.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0.5, Y: 0.5, Z: 1.5},
	}
	var v [5]mesh.VertexHandle
	for i, p := range positions {
		v[i] = m.AddVertex(p, mesh.DimVolume)
	}
	inf := m.InfiniteVertex()

	f := m.AddCell([4]mesh.VertexHandle{v[0], v[1], v[2], v[3]}, 1)
	if vol := m.SignedVolume(f); vol <= 0 {
		t.Fatalf("fixture F has non-positive volume %g", vol)
	}
	gVerts := positiveOrderLocal(m, v[4], v[1], v[2], v[3])
	g := m.AddCell(gVerts, 1)
	if vol := m.SignedVolume(g); vol <= 0 {
		t.Fatalf("fixture G has non-positive volume %g", vol)
	}

	group := []mesh.CellHandle{f, g}
	for _, c := range []mesh.CellHandle{f, g} {
		cell := m.Cell(c)
		for i := 0; i < 4; i++ {
			fv := facetVertsLocal(cell, i)
			shared := 0
			for _, vv := range fv {
				if vv == v[1] || vv == v[2] || vv == v[3] {
					shared++
				}
			}
			if shared == 3 {
				continue
			}
			ic := m.AddCell([4]mesh.VertexHandle{inf, fv[0], fv[1], fv[2]}, mesh.NoSubdomain)
			group = append(group, ic)
		}
	}
	rewireGroup(m, group)
	return m, v, f, g
}

func positiveOrderLocal(m *mesh.Mesh, apex, a, b, c mesh.VertexHandle) [4]mesh.VertexHandle {
	pa, pb, pc := m.Vertex(a).Pos, m.Vertex(b).Pos, m.Vertex(c).Pos
	papex := m.Vertex(apex).Pos
	if mesh.SignedVolume6(papex, pa, pb, pc) > 0 {
		return [4]mesh.VertexHandle{apex, a, b, c}
	}
	return [4]mesh.VertexHandle{apex, a, c, b}
}
