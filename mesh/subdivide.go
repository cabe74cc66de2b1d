package mesh

// InsertInCell subdivides cell c into four cells around a new interior
// vertex placed at pos (the classical 1-to-4 split). The cell's four
// original facets survive unchanged, so no complex-overlay bookkeeping is
// needed here.
func (m *Mesh) InsertInCell(c CellHandle, pos Vec, dim int) (VertexHandle, RejectReason) {
	if !m.ValidCell(c) {
		return NullVertexHandle, RejectStaleHandle
	}
	if m.IsInfiniteCell(c) {
		return NullVertexHandle, RejectTopology
	}
	cell := m.Cell(c)
	p := m.AddVertex(pos, dim)

	var fresh [4]CellHandle
	for i := 0; i < 4; i++ {
		v := cell.V
		v[i] = p
		fresh[i] = m.AddCell(v, cell.Subdomain)
	}
	group := append([]CellHandle{}, fresh[:]...)
	group = append(group, outerNeighbors(m, []CellHandle{c})...)
	m.rewireAll(group)
	m.deleteCell(c)
	return p, RejectNone
}

// InsertOnFacet subdivides the facet shared by cell c and its neighbor
// across local index i, splitting both incident cells into three (the
// classical 2-to-6 split). If the facet was tagged in the complex overlay,
// the three sub-facets along the split inherit the tag.
func (m *Mesh) InsertOnFacet(c CellHandle, i int, pos Vec, dim int) (VertexHandle, RejectReason) {
	if !m.ValidCell(c) {
		return NullVertexHandle, RejectStaleHandle
	}
	cellA := m.Cell(c)
	nb := cellA.N[i]
	if nb.IsNull() || !m.ValidCell(nb) {
		return NullVertexHandle, RejectTopology
	}
	if m.IsInfiniteCell(c) || m.IsInfiniteCell(nb) {
		return NullVertexHandle, RejectTopology
	}
	cellB := m.Cell(nb)
	j := m.localIndexOfCell(cellB, c)
	if j < 0 {
		return NullVertexHandle, RejectTopology
	}
	fa, fb, fcv := facetVerts(cellA, i)
	apexA := cellA.V[i]
	apexB := cellB.V[j]
	wasComplex := false
	oldKey := NewFacetKey(fa, fb, fcv)
	if _, ok := m.ComplexFacets[oldKey]; ok {
		wasComplex = true
		delete(m.ComplexFacets, oldKey)
	}

	p := m.AddVertex(pos, dim)
	face := [3]VertexHandle{fa, fb, fcv}

	var group []CellHandle
	for k := 0; k < 3; k++ {
		va := face
		va[k] = p
		group = append(group, m.AddCell(m.positiveOrder(apexA, va[0], va[1], va[2]), cellA.Subdomain))
		vb := face
		vb[k] = p
		group = append(group, m.AddCell(m.positiveOrder(apexB, vb[0], vb[1], vb[2]), cellB.Subdomain))

		if wasComplex {
			other1, other2 := face[(k+1)%3], face[(k+2)%3]
			m.ComplexFacets[NewFacetKey(p, other1, other2)] = struct{}{}
		}
	}
	group = append(group, outerNeighbors(m, []CellHandle{c, nb})...)
	m.rewireAll(group)
	m.deleteCell(c)
	m.deleteCell(nb)
	return p, RejectNone
}

// InsertOnEdge subdivides edge (u,v) by inserting a new vertex at pos,
// replacing each of the k ring cells around the edge with two cells (the
// classical k-to-2k edge split). If (u,v) was a constrained or tagged
// complex edge, both halves (u,p) and (p,v) inherit the tag.
func (m *Mesh) InsertOnEdge(u, v VertexHandle, pos Vec, dim int) (VertexHandle, RejectReason) {
	ring, outer, ok := m.EdgeRing(u, v)
	if !ok {
		return NullVertexHandle, RejectTopology
	}
	for _, c := range ring {
		if m.IsInfiniteCell(c) {
			return NullVertexHandle, RejectTopology
		}
	}
	oldKey := NewEdgeKey(u, v)
	_, wasComplex := m.ComplexEdges[oldKey]
	_, wasConstrained := m.Constrained[oldKey]
	delete(m.ComplexEdges, oldKey)
	delete(m.Constrained, oldKey)

	// Every facet incident to (u,v) has the form {u,v,w} for some outer
	// ring vertex w (the n cells around an interior edge share exactly n
	// such facets, one per outer vertex). Re-tag the ones tagged in the
	// complex overlay the same way InsertOnFacet re-tags a split facet.
	var splitFacets []VertexHandle
	for _, w := range outer {
		fk := NewFacetKey(u, v, w)
		if _, ok := m.ComplexFacets[fk]; ok {
			delete(m.ComplexFacets, fk)
			splitFacets = append(splitFacets, w)
		}
	}

	p := m.AddVertex(pos, dim)
	n := len(ring)
	var group []CellHandle
	for i, c := range ring {
		cell := m.Cell(c)
		w0 := outer[i]
		w1 := outer[(i+1)%n]
		group = append(group, m.AddCell(m.positiveOrder(u, p, w0, w1), cell.Subdomain))
		group = append(group, m.AddCell(m.positiveOrder(v, p, w0, w1), cell.Subdomain))
	}
	group = append(group, outerNeighbors(m, ring)...)
	m.rewireAll(group)
	for _, c := range ring {
		m.deleteCell(c)
	}

	if wasComplex {
		m.ComplexEdges[NewEdgeKey(u, p)] = struct{}{}
		m.ComplexEdges[NewEdgeKey(p, v)] = struct{}{}
	}
	if wasConstrained {
		m.Constrained[NewEdgeKey(u, p)] = struct{}{}
		m.Constrained[NewEdgeKey(p, v)] = struct{}{}
	}
	for _, w := range splitFacets {
		m.ComplexFacets[NewFacetKey(u, p, w)] = struct{}{}
		m.ComplexFacets[NewFacetKey(p, v, w)] = struct{}{}
	}
	return p, RejectNone
}
