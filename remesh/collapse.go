package remesh

import "github.com/Megidd/tetremesh/mesh"

// Collapse performs one full collapse pass (spec §4.5): every finite edge
// shorter than emin is offered for merge, shortest first, subject to the
// direction-selection priority and the rejection rules below.
func Collapse(m *mesh.Mesh, emin, emax float64, protectBoundaries bool) OpStats {
	stats := newOpStats()
	emin2 := emin * emin
	emax2 := emax * emax

	pq := newLazyPQ[mesh.EdgeKey](false)
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
		if cur > key*(1+1e-9) {
			pq.push(cur, ek)
			continue
		}
		if cur >= emin2 {
			continue
		}

		stats.Attempted++
		src, tgt, reason := collapseDirection(m, ek[0], ek[1], protectBoundaries)
		if reason != mesh.RejectNone {
			stats.Rejected[reason]++
			continue
		}
		if reason := extraCollapseChecks(m, src, tgt, emax2); reason != mesh.RejectNone {
			stats.Rejected[reason]++
			continue
		}

		survivorLink := m.LinkVertices(src)
		if reason := m.CollapseEdge(src, tgt); reason != mesh.RejectNone {
			stats.Rejected[reason]++
			continue
		}
		stats.Accepted++
		for w := range survivorLink {
			if !m.Valid(w) || w == tgt {
				continue
			}
			if m.EdgeExists(tgt, w) {
				nek := mesh.NewEdgeKey(tgt, w)
				pq.push(m.SquaredLength(nek), nek)
			}
		}
	}
	return stats
}

// collapseDirection applies spec §4.5's priority rules to pick src (removed)
// and tgt (survivor), or rejects the edge outright.
func collapseDirection(m *mesh.Mesh, a, b mesh.VertexHandle, protectBoundaries bool) (src, tgt mesh.VertexHandle, reason mesh.RejectReason) {
	cornerA, cornerB := m.IsCorner(a), m.IsCorner(b)
	da, db := m.Vertex(a).InDimension, m.Vertex(b).InDimension

	switch {
	case cornerA && cornerB:
		src, tgt = a, b
	case cornerA:
		src, tgt = b, a
	case cornerB:
		src, tgt = a, b
	case da < db:
		src, tgt = b, a
	case db < da:
		src, tgt = a, b
	default:
		// Same dimension, neither a corner: collapse the lower handle
		// index into the higher for a stable, deterministic direction.
		src, tgt = a, b
	}

	if cornerA && cornerB {
		return src, tgt, mesh.RejectProtected
	}

	if protectBoundaries && isBoundaryEdge(m, a, b) {
		sameDim := da == db && da <= mesh.DimSurface
		if !sameDim || wouldChangeComplexTopology(m, a, b) {
			return src, tgt, mesh.RejectProtected
		}
	}

	return src, tgt, mesh.RejectNone
}

// isBoundaryEdge reports whether (a,b) is a complex edge or lies on a
// complex facet.
func isBoundaryEdge(m *mesh.Mesh, a, b mesh.VertexHandle) bool {
	if m.IsComplexEdge(a, b) {
		return true
	}
	return isOnComplexFacet(m, mesh.NewEdgeKey(a, b))
}

// wouldChangeComplexTopology is a conservative proxy for spec §4.5's
// "collapsing does not change the complex topology" clause: true if the
// two endpoints see different numbers of distinct subdomains among their
// incident finite cells.
func wouldChangeComplexTopology(m *mesh.Mesh, a, b mesh.VertexHandle) bool {
	return subdomainCountAt(m, a) != subdomainCountAt(m, b)
}

// extraCollapseChecks applies the rejection rules of spec §4.5 that require
// looking at the post-collapse neighborhood: resulting edge length,
// subdomain-count preservation, and dimension-demotion.
func extraCollapseChecks(m *mesh.Mesh, src, tgt mesh.VertexHandle, emax2 float64) mesh.RejectReason {
	before := subdomainCountAt(m, tgt)
	after := subdomainsUnion(m, src, tgt)
	if after < before {
		return mesh.RejectFeatureLoss
	}

	srcDim := m.Vertex(src).InDimension
	tgtDim := m.Vertex(tgt).InDimension
	if srcDim < tgtDim {
		// tgt would be demoted below a complex element still incident to src.
		if isIncidentToComplexElement(m, src) {
			return mesh.RejectFeatureLoss
		}
	}

	for w := range m.LinkVertices(src) {
		if w == tgt || !m.Valid(w) {
			continue
		}
		if m.SquaredLengthOf(tgt, w) > emax2 {
			return mesh.RejectWouldExceedLength
		}
	}
	return mesh.RejectNone
}

// subdomainCountAt returns the number of distinct subdomain indices among
// the cells incident to v.
func subdomainCountAt(m *mesh.Mesh, v mesh.VertexHandle) int {
	seen := map[int]struct{}{}
	for _, c := range m.VertexStar(v) {
		if m.IsInfiniteCell(c) {
			continue
		}
		seen[m.Cell(c).Subdomain] = struct{}{}
	}
	return len(seen)
}

// subdomainsUnion returns the number of distinct subdomain indices among
// the cells incident to either src or tgt -- the count the surviving
// vertex would see immediately after the merge.
func subdomainsUnion(m *mesh.Mesh, src, tgt mesh.VertexHandle) int {
	seen := map[int]struct{}{}
	for _, c := range m.VertexStar(src) {
		if m.IsInfiniteCell(c) {
			continue
		}
		seen[m.Cell(c).Subdomain] = struct{}{}
	}
	for _, c := range m.VertexStar(tgt) {
		if m.IsInfiniteCell(c) {
			continue
		}
		seen[m.Cell(c).Subdomain] = struct{}{}
	}
	return len(seen)
}

// isIncidentToComplexElement reports whether v is an endpoint of any
// tagged complex edge or complex facet.
func isIncidentToComplexElement(m *mesh.Mesh, v mesh.VertexHandle) bool {
	for ek := range m.ComplexEdges {
		if ek[0] == v || ek[1] == v {
			return true
		}
	}
	for fk := range m.ComplexFacets {
		for _, fv := range fk {
			if fv == v {
				return true
			}
		}
	}
	return false
}
