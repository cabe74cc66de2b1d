package remesh

import "github.com/Megidd/tetremesh/mesh"

// Split performs one full split pass (spec §4.4): every finite edge whose
// squared length exceeds emax² is subdivided at its midpoint, processed in
// order of decreasing squared length with lazy invalidation.
func Split(m *mesh.Mesh, emax float64, protectBoundaries bool) OpStats {
	stats := newOpStats()
	emax2 := emax * emax

	pq := newLazyPQ[mesh.EdgeKey](true)
	m.FiniteEdges(func(ek mesh.EdgeKey) bool {
		pq.push(m.SquaredLength(ek), ek)
		return true
	})

	for {
		ek, key, ok := pq.pop()
		if !ok {
			break
		}
		if !m.Valid(ek[0]) || !m.Valid(ek[1]) || !m.EdgeExists(ek[0], ek[1]) {
			continue
		}
		cur := m.SquaredLengthOf(ek[0], ek[1])
		if cur < key*(1-1e-9) {
			// Stale: the edge shrank since it was queued (an earlier split
			// touched its ring). Re-queue at its current length.
			pq.push(cur, ek)
			continue
		}
		if cur <= emax2 {
			continue
		}

		stats.Attempted++
		if isImaginaryOnlyEdge(m, ek) {
			continue
		}
		if protectBoundaries && (m.IsComplexEdge(ek[0], ek[1]) || isOnComplexFacet(m, ek)) {
			stats.Rejected[mesh.RejectProtected]++
			continue
		}

		dim := edgeDimension(m, ek)
		mid := m.Vertex(ek[0]).Pos.Midpoint(m.Vertex(ek[1]).Pos)
		p, reason := m.InsertOnEdge(ek[0], ek[1], mid, dim)
		if reason != mesh.RejectNone {
			stats.Rejected[reason]++
			continue
		}
		stats.Accepted++
		for w := range m.LinkVertices(p) {
			nek := mesh.NewEdgeKey(p, w)
			pq.push(m.SquaredLength(nek), nek)
		}
	}
	return stats
}

// edgeDimension mirrors split's midpoint in_dimension inheritance rule
// (spec §4.4): 1 if complex edge, 2 if on a complex facet, 3 otherwise.
func edgeDimension(m *mesh.Mesh, ek mesh.EdgeKey) int {
	switch {
	case m.IsComplexEdge(ek[0], ek[1]):
		return mesh.DimFeatureEdge
	case isOnComplexFacet(m, ek):
		return mesh.DimSurface
	default:
		return mesh.DimVolume
	}
}

// isOnComplexFacet reports whether edge ek is an edge of some tagged
// complex facet.
func isOnComplexFacet(m *mesh.Mesh, ek mesh.EdgeKey) bool {
	for fk := range m.ComplexFacets {
		has0, has1 := false, false
		for _, v := range fk {
			if v == ek[0] {
				has0 = true
			}
			if v == ek[1] {
				has1 = true
			}
		}
		if has0 && has1 {
			return true
		}
	}
	return false
}

// isImaginaryOnlyEdge reports whether every cell incident to the edge is
// tagged with the imaginary subdomain (spec §4.4: "edges between two
// imaginary cells only are also skipped").
func isImaginaryOnlyEdge(m *mesh.Mesh, ek mesh.EdgeKey) bool {
	ring, _, ok := m.EdgeRing(ek[0], ek[1])
	if !ok {
		return false
	}
	for _, c := range ring {
		if !m.ValidCell(c) {
			continue
		}
		if m.IsInfiniteCell(c) {
			continue
		}
		if !m.IsImaginaryCell(c) {
			return false
		}
	}
	return true
}
