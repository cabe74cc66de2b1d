package mesh

// Flip23 replaces cell c and its neighbor across local index i (two cells
// sharing a facet) with three cells sharing the edge between the two
// apexes. It refuses to cross a subdomain boundary or a tagged complex
// facet (RejectFeatureLoss), and refuses to produce an inverted cell
// (RejectInversion), validating every candidate before committing any of
// them.
func (m *Mesh) Flip23(c CellHandle, i int) ([3]CellHandle, RejectReason) {
	var zero [3]CellHandle
	if !m.ValidCell(c) {
		return zero, RejectStaleHandle
	}
	cellA := m.Cell(c)
	nb := cellA.N[i]
	if nb.IsNull() || !m.ValidCell(nb) {
		return zero, RejectTopology
	}
	if m.IsInfiniteCell(c) || m.IsInfiniteCell(nb) {
		return zero, RejectTopology
	}
	cellB := m.Cell(nb)
	j := m.localIndexOfCell(cellB, c)
	if j < 0 {
		return zero, RejectTopology
	}
	fa, fb, fcv := facetVerts(cellA, i)
	fk := NewFacetKey(fa, fb, fcv)
	if _, ok := m.ComplexFacets[fk]; ok {
		return zero, RejectFeatureLoss
	}
	if cellA.Subdomain != cellB.Subdomain {
		return zero, RejectFeatureLoss
	}

	apexA := cellA.V[i]
	apexB := cellB.V[j]
	face := [3]VertexHandle{fa, fb, fcv}

	var candidates [3][4]VertexHandle
	for k := 0; k < 3; k++ {
		w0, w1 := face[k], face[(k+1)%3]
		v := [4]VertexHandle{apexA, apexB, w0, w1}
		var p [4]Vec
		for idx, vv := range v {
			p[idx] = m.Vertex(vv).Pos
		}
		if SignedVolume6(p[0], p[1], p[2], p[3]) <= 0 {
			return zero, RejectInversion
		}
		candidates[k] = v
	}

	var fresh [3]CellHandle
	for k, v := range candidates {
		fresh[k] = m.AddCell(v, cellA.Subdomain)
	}
	group := append([]CellHandle{}, fresh[:]...)
	group = append(group, outerNeighbors(m, []CellHandle{c, nb})...)
	m.rewireAll(group)
	m.deleteCell(c)
	m.deleteCell(nb)
	return fresh, RejectNone
}

// positiveOrder returns (apex,a,b,c) or (apex,a,c,b), whichever has
// strictly positive signed volume.
func (m *Mesh) positiveOrder(apex, a, b, c VertexHandle) [4]VertexHandle {
	pa, pb, pc := m.Vertex(a).Pos, m.Vertex(b).Pos, m.Vertex(c).Pos
	papex := m.Vertex(apex).Pos
	if SignedVolume6(papex, pa, pb, pc) > 0 {
		return [4]VertexHandle{apex, a, b, c}
	}
	return [4]VertexHandle{apex, a, c, b}
}

// Flip32 replaces the three cells forming the ring around edge (u,v) with
// two cells sharing the outer triangle as a facet. It refuses to collapse
// a tagged or constrained edge (RejectFeatureLoss), a ring that spans more
// than one subdomain, or a ring that isn't exactly three cells
// (RejectTopology).
func (m *Mesh) Flip32(u, v VertexHandle) ([2]CellHandle, RejectReason) {
	var zero [2]CellHandle
	ring, outer, ok := m.EdgeRing(u, v)
	if !ok {
		return zero, RejectTopology
	}
	if len(ring) != 3 {
		return zero, RejectTopology
	}
	ek := NewEdgeKey(u, v)
	if _, ok := m.ComplexEdges[ek]; ok {
		return zero, RejectFeatureLoss
	}
	if _, ok := m.Constrained[ek]; ok {
		return zero, RejectFeatureLoss
	}
	for _, c := range ring {
		if m.IsInfiniteCell(c) {
			return zero, RejectTopology
		}
	}
	sub := m.Cell(ring[0]).Subdomain
	for _, c := range ring[1:] {
		if m.Cell(c).Subdomain != sub {
			return zero, RejectFeatureLoss
		}
	}

	w0, w1, w2 := outer[0], outer[1], outer[2]
	cu := m.positiveOrder(u, w0, w1, w2)
	cv := m.positiveOrder(v, w0, w1, w2)
	var pu, pv [4]Vec
	for idx, vv := range cu {
		pu[idx] = m.Vertex(vv).Pos
	}
	for idx, vv := range cv {
		pv[idx] = m.Vertex(vv).Pos
	}
	if SignedVolume6(pu[0], pu[1], pu[2], pu[3]) <= 0 || SignedVolume6(pv[0], pv[1], pv[2], pv[3]) <= 0 {
		return zero, RejectInversion
	}

	cellU := m.AddCell(cu, sub)
	cellV := m.AddCell(cv, sub)
	group := []CellHandle{cellU, cellV}
	group = append(group, outerNeighbors(m, ring)...)
	m.rewireAll(group)
	for _, c := range ring {
		m.deleteCell(c)
	}
	return [2]CellHandle{cellU, cellV}, RejectNone
}
