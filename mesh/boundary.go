package mesh

// WrapBoundaryFacet materializes a scaffold tetrahedron on the exterior
// side of facet (c,i): a fresh vertex at pos becomes the apex of a new
// cell sharing that facet with c, tagged with subdomain. The cell that was
// c's neighbor in slot i (the exterior/infinite cell being wrapped) is
// replaced by three cells, each joining the new apex to one edge of the
// facet, so that every neighbor link of the new cell stays mutual.
// Used by the remesh package's imaginary-layer construction (spec: "the
// layer algorithm walks every such facet and materializes an extra
// tetrahedron on the exterior side").
func (m *Mesh) WrapBoundaryFacet(c CellHandle, i int, pos Vec, subdomain int) (CellHandle, RejectReason) {
	if !m.ValidCell(c) {
		return NullCellHandle, RejectStaleHandle
	}
	cell := m.Cell(c)
	old := cell.N[i]
	fa, fb, fcv := facetVerts(cell, i)

	newV := m.AddVertex(pos, DimVolume)
	order := m.positiveOrder(newV, fa, fb, fcv)
	newCell := m.AddCell(order, subdomain)

	group := []CellHandle{c, newCell}
	if !old.IsNull() && m.ValidCell(old) {
		oc := m.Cell(old)
		for k, v := range oc.V {
			if !m.IsInfiniteVertex(v) {
				nv := oc.V
				nv[k] = newV
				group = append(group, m.AddCell(nv, oc.Subdomain))
			}
		}
		group = append(group, outerNeighbors(m, []CellHandle{old})...)
		m.deleteCell(old)
	}
	m.rewireAll(group)
	return newCell, RejectNone
}
