package mesh

import "testing"

// buildSingleTet returns a minimal valid triangulation: one finite cell and
// its four-cell cone to the infinite vertex (the combinatorics of any two
// 4-subsets of a 5-element set sharing exactly 3 elements makes a blind
// pairwise rewireAll over all five cells correct here).
func buildSingleTet(t *testing.T) (*Mesh, [4]VertexHandle, CellHandle) {
	t.Helper()
	m := NewMesh()
	positions := [4]Vec{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	}
	var v [4]VertexHandle
	for i, p := range positions {
		v[i] = m.AddVertex(p, DimVolume)
	}
	inf := m.InfiniteVertex()
	f := m.AddCell([4]VertexHandle{v[0], v[1], v[2], v[3]}, 0)
	if vol := m.SignedVolume(f); vol <= 0 {
		t.Fatalf("fixture tet has non-positive volume %g", vol)
	}
	cell := m.Cell(f)
	var group []CellHandle
	group = append(group, f)
	for i := 0; i < 4; i++ {
		a, b, c := facetVerts(cell, i)
		ic := m.AddCell([4]VertexHandle{inf, a, b, c}, NoSubdomain)
		group = append(group, ic)
	}
	m.rewireAll(group)
	return m, v, f
}

// buildTwoTets returns a bipyramid: two finite tets sharing facet
// (v1,v2,v3), closed off by six infinite cells over the remaining hull
// faces.
func buildTwoTets(t *testing.T) (*Mesh, [5]VertexHandle, CellHandle, CellHandle) {
	t.Helper()
	m := NewMesh()
	positions := [5]Vec{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0.5, 0.5, 1.5},
	}
	var v [5]VertexHandle
	for i, p := range positions {
		v[i] = m.AddVertex(p, DimVolume)
	}
	inf := m.InfiniteVertex()

	f := m.AddCell([4]VertexHandle{v[0], v[1], v[2], v[3]}, 0)
	if vol := m.SignedVolume(f); vol <= 0 {
		t.Fatalf("fixture F has non-positive volume %g", vol)
	}
	gVerts := m.positiveOrder(v[4], v[1], v[2], v[3])
	g := m.AddCell(gVerts, 0)
	if vol := m.SignedVolume(g); vol <= 0 {
		t.Fatalf("fixture G has non-positive volume %g", vol)
	}

	var group []CellHandle
	group = append(group, f, g)
	for _, c := range []CellHandle{f, g} {
		cell := m.Cell(c)
		for i := 0; i < 4; i++ {
			a, b, cc := facetVerts(cell, i)
			// Skip the shared internal facet (v1,v2,v3): it will be wired
			// directly between f and g by rewireAll below.
			shared := 0
			for _, vv := range [3]VertexHandle{a, b, cc} {
				if vv == v[1] || vv == v[2] || vv == v[3] {
					shared++
				}
			}
			if shared == 3 {
				continue
			}
			ic := m.AddCell([4]VertexHandle{inf, a, b, cc}, NoSubdomain)
			group = append(group, ic)
		}
	}
	m.rewireAll(group)
	return m, v, f, g
}

func TestSingleTetAudit(t *testing.T) {
	m, _, _ := buildSingleTet(t)
	if got := m.CellCount(); got != 5 {
		t.Fatalf("CellCount: got %d, want 5", got)
	}
	if problems := m.Audit(); len(problems) != 0 {
		t.Fatalf("Audit found problems on a fresh fixture: %v", problems)
	}
}

func TestInsertInCell(t *testing.T) {
	m, v, f := buildSingleTet(t)
	centroid := Vec{}
	for _, vh := range v {
		centroid = centroid.Add(m.Vertex(vh).Pos)
	}
	centroid = centroid.Scale(0.25)

	_, reason := m.InsertInCell(f, centroid, DimVolume)
	if reason != RejectNone {
		t.Fatalf("InsertInCell rejected: %v", reason)
	}
	if got := m.CellCount(); got != 8 {
		t.Fatalf("CellCount after 1-4 split: got %d, want 8", got)
	}
	if problems := m.Audit(); len(problems) != 0 {
		t.Fatalf("Audit found problems after InsertInCell: %v", problems)
	}
}

func TestInsertOnFacet(t *testing.T) {
	m, v, f, _ := buildTwoTets(t)
	cell := m.Cell(f)

	// Find the facet index on f whose neighbor is the other finite cell.
	facetIdx := -1
	for k := 0; k < 4; k++ {
		nb := cell.N[k]
		if nb.IsNull() || !m.ValidCell(nb) {
			continue
		}
		if !m.IsInfiniteCell(nb) {
			facetIdx = k
			break
		}
	}
	if facetIdx < 0 {
		t.Fatal("could not find the shared finite-finite facet")
	}

	mid := m.Vertex(v[1]).Pos.Add(m.Vertex(v[2]).Pos).Add(m.Vertex(v[3]).Pos).Scale(1.0 / 3)
	_, reason := m.InsertOnFacet(f, facetIdx, mid, DimSurface)
	if reason != RejectNone {
		t.Fatalf("InsertOnFacet rejected: %v", reason)
	}
	const want = 12 // 8 before, minus the 2 split cells, plus 6 new ones
	if got := m.CellCount(); got != want {
		t.Fatalf("CellCount after 2-6 split: got %d, want %d", got, want)
	}
	if problems := m.Audit(); len(problems) != 0 {
		t.Fatalf("Audit found problems after InsertOnFacet: %v", problems)
	}
}

func TestFlip32RejectsNonThreeRing(t *testing.T) {
	m, v, _, _ := buildTwoTets(t)
	ring, _, ok := m.EdgeRing(v[1], v[2])
	if !ok {
		t.Fatal("expected an edge ring for v1,v2")
	}
	t.Logf("ring length for v1-v2: %d", len(ring))
	// Whatever the ring length, Flip32 must reject anything other than 3
	// and must never corrupt the mesh when it does.
	if _, reason := m.Flip32(v[1], v[2]); len(ring) != 3 && reason != RejectTopology {
		t.Fatalf("Flip32 on a non-3 ring: got reason %v, want RejectTopology", reason)
	}
	if problems := m.Audit(); len(problems) != 0 {
		t.Fatalf("Audit found problems after a rejected Flip32: %v", problems)
	}
}

func TestCollapseEdgeLinkCondition(t *testing.T) {
	m, v, _, _ := buildTwoTets(t)
	// Collapsing v4 into v1 should succeed: v4's only finite neighbors are
	// v1,v2,v3, all already adjacent to v1.
	reason := m.CollapseEdge(v[4], v[1])
	if reason != RejectNone {
		t.Fatalf("CollapseEdge rejected: %v", reason)
	}
	if m.Valid(v[4]) {
		t.Fatal("src vertex should have been deleted")
	}
	if problems := m.Audit(); len(problems) != 0 {
		t.Fatalf("Audit found problems after CollapseEdge: %v", problems)
	}
}

func TestCollapseEdgeRejectsCorner(t *testing.T) {
	m, v, _, _ := buildTwoTets(t)
	m.RegisterCorner(v[4])
	if reason := m.CollapseEdge(v[4], v[1]); reason != RejectProtected {
		t.Fatalf("CollapseEdge on a corner: got %v, want RejectProtected", reason)
	}
}

func TestQualityOfRegularTet(t *testing.T) {
	// A regular tetrahedron's dihedral angle is arccos(1/3) ~= 70.53 degrees.
	p := [4]Vec{
		{1, 1, 1}, {1, -1, -1}, {-1, -1, 1}, {-1, 1, -1},
	}
	q := CellQuality(p)
	want := 1.2309594173407747 // radians
	if d := q - want; d > 1e-6 || d < -1e-6 {
		t.Errorf("CellQuality(regular tet): got %v, want ~%v", q, want)
	}
}
