package mesh

// RemoveVertex merges src into tgt by a cone retriangulation onto tgt: every
// cell incident to src that also contains tgt (the edge ring) is deleted
// outright, and every other cell incident to src has its src-vertex slot
// replaced by tgt in place. This is the general-purpose vertex-removal
// primitive; CollapseEdge is a thin alias naming the same operation by its
// edge-collapse role.
func (m *Mesh) RemoveVertex(src, tgt VertexHandle) RejectReason {
	if !m.Valid(src) || !m.Valid(tgt) {
		return RejectStaleHandle
	}
	if _, corner := m.Corners[src]; corner {
		return RejectProtected
	}
	if m.IsInfiniteVertex(src) || m.IsInfiniteVertex(tgt) {
		return RejectTopology
	}

	ring, outer, ok := m.EdgeRing(src, tgt)
	if !ok {
		return RejectTopology
	}

	if reason := m.checkLinkCondition(src, tgt, outer); reason != RejectNone {
		return reason
	}

	ringSet := map[CellHandle]struct{}{}
	for _, c := range ring {
		ringSet[c] = struct{}{}
	}

	star := m.VertexStar(src)
	type pending struct {
		h   CellHandle
		rec Cell
	}
	var survivors []pending
	for _, c := range star {
		if _, in := ringSet[c]; in {
			continue
		}
		cell := m.Cell(c)
		li := m.localIndexOfVertex(cell, src)
		if li < 0 {
			continue
		}
		cell.V[li] = tgt
		if !m.IsInfiniteCell2(cell) {
			var p [4]Vec
			for k, v := range cell.V {
				p[k] = m.Vertex(v).Pos
			}
			if SignedVolume6(p[0], p[1], p[2], p[3]) <= 0 {
				return RejectInversion
			}
		}
		survivors = append(survivors, pending{h: c, rec: cell})
	}

	// Commit: no early return past this point.
	var survivorHandles []CellHandle
	for _, s := range survivors {
		m.SetCell(s.h, s.rec)
		survivorHandles = append(survivorHandles, s.h)
	}
	group := append([]CellHandle{}, survivorHandles...)
	group = append(group, outerNeighbors(m, ring)...)
	m.rewireAll(group)
	for _, c := range group {
		m.bindVertexBackrefs(c)
	}

	for _, c := range ring {
		m.deleteCell(c)
	}
	m.deleteVertex(src)
	return RejectNone
}

// IsInfiniteCell2 reports whether a not-yet-committed cell record
// references the infinite vertex, for validation before a cell is stored.
func (m *Mesh) IsInfiniteCell2(c Cell) bool {
	for _, v := range c.V {
		if m.IsInfiniteVertex(v) {
			return true
		}
	}
	return false
}

// checkLinkCondition verifies the classical manifold-preserving collapse
// test: the set of vertices adjacent to both src and tgt must equal exactly
// the edge ring's outer vertex set. A mismatch means collapsing would
// create a non-manifold or duplicated edge.
func (m *Mesh) checkLinkCondition(src, tgt VertexHandle, outer []VertexHandle) RejectReason {
	linkSrc := m.LinkVertices(src)
	linkTgt := m.LinkVertices(tgt)
	common := map[VertexHandle]struct{}{}
	for w := range linkSrc {
		if _, ok := linkTgt[w]; ok {
			common[w] = struct{}{}
		}
	}
	outerSet := map[VertexHandle]struct{}{}
	for _, w := range outer {
		outerSet[w] = struct{}{}
	}
	if len(common) != len(outerSet) {
		return RejectLinkCondition
	}
	for w := range outerSet {
		if _, ok := common[w]; !ok {
			return RejectLinkCondition
		}
	}
	return RejectNone
}

// CollapseEdge merges src into tgt. It is the edge-collapse entry point
// spec §4.5 names; the mechanics are RemoveVertex's.
func (m *Mesh) CollapseEdge(src, tgt VertexHandle) RejectReason {
	return m.RemoveVertex(src, tgt)
}
