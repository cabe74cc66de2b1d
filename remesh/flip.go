package remesh

import "github.com/Megidd/tetremesh/mesh"

// Flip performs repeated flip passes (spec §4.6) until a pass applies no
// flip: 3-to-2 candidates are tried over finite edges whose ring is exactly
// three cells, 2-to-3 candidates over finite facets not on the complex.
// Each candidate is accepted only if it strictly improves the minimum
// element quality across the cells it creates relative to the ones it
// destroys.
func Flip(m *mesh.Mesh) OpStats {
	stats := newOpStats()
	for {
		applied := flipPass(m, &stats)
		if !applied {
			break
		}
	}
	return stats
}

func flipPass(m *mesh.Mesh, stats *OpStats) bool {
	applied := false

	var edges []mesh.EdgeKey
	m.FiniteEdges(func(ek mesh.EdgeKey) bool {
		edges = append(edges, ek)
		return true
	})
	for _, ek := range edges {
		if !m.Valid(ek[0]) || !m.Valid(ek[1]) {
			continue
		}
		if m.IsComplexEdge(ek[0], ek[1]) {
			continue
		}
		stats.Attempted++
		before := minRingQuality(m, ek[0], ek[1])
		fresh, reason := m.Flip32(ek[0], ek[1])
		if reason != mesh.RejectNone {
			stats.Rejected[reason]++
			continue
		}
		after := minQualityOf(m, fresh[:])
		if after <= before {
			// Not an improvement: revert by flipping the two fresh cells'
			// shared facet back to three cells (Flip23).
			undoFlip32(m, fresh, ek[0], ek[1])
			stats.Rejected[mesh.RejectQuality]++
			continue
		}
		stats.Accepted++
		applied = true
	}

	var facets []mesh.FacetKey
	m.FiniteFacets(func(fk mesh.FacetKey) bool {
		facets = append(facets, fk)
		return true
	})
	for _, fk := range facets {
		if !m.Valid(fk[0]) || !m.Valid(fk[1]) || !m.Valid(fk[2]) {
			continue
		}
		if m.IsComplexFacet(fk[0], fk[1], fk[2]) {
			continue
		}
		c, i, ok := findFacetCell(m, fk)
		if !ok {
			continue
		}
		stats.Attempted++
		before := minFacetPairQuality(m, c, i)
		fresh, reason := m.Flip23(c, i)
		if reason != mesh.RejectNone {
			stats.Rejected[reason]++
			continue
		}
		after := minQualityOf(m, fresh[:])
		if after <= before {
			undoFlip23(m, fresh)
			stats.Rejected[mesh.RejectQuality]++
			continue
		}
		stats.Accepted++
		applied = true
	}

	return applied
}

func minQualityOf(m *mesh.Mesh, cells []mesh.CellHandle) float64 {
	best := -1.0
	first := true
	for _, c := range cells {
		if !m.ValidCell(c) {
			continue
		}
		q := m.Quality(c)
		if first || q < best {
			best = q
			first = false
		}
	}
	if first {
		return 0
	}
	return best
}

func minRingQuality(m *mesh.Mesh, u, v mesh.VertexHandle) float64 {
	ring, _, ok := m.EdgeRing(u, v)
	if !ok {
		return 0
	}
	return minQualityOf(m, ring)
}

func minFacetPairQuality(m *mesh.Mesh, c mesh.CellHandle, i int) float64 {
	cell := m.Cell(c)
	nb := cell.N[i]
	cells := []mesh.CellHandle{c}
	if !nb.IsNull() && m.ValidCell(nb) {
		cells = append(cells, nb)
	}
	return minQualityOf(m, cells)
}

// undoFlip32 reverses a committed Flip32 by flipping the shared facet of
// the two fresh cells back to three, restoring the pre-flip ring.
func undoFlip32(m *mesh.Mesh, fresh [2]mesh.CellHandle, u, v mesh.VertexHandle) {
	cellU := m.Cell(fresh[0])
	for i, n := range cellU.N {
		if n == fresh[1] {
			m.Flip23(fresh[0], i)
			return
		}
	}
}

// undoFlip23 reverses a committed Flip23 by flipping the shared edge of
// the three fresh cells back to two.
func undoFlip23(m *mesh.Mesh, fresh [3]mesh.CellHandle) {
	if !m.ValidCell(fresh[0]) || !m.ValidCell(fresh[1]) {
		return
	}
	c0 := m.Cell(fresh[0])
	c1 := m.Cell(fresh[1])
	shared := sharedEdge(c0, c1)
	if shared[0].IsNull() {
		return
	}
	m.Flip32(shared[0], shared[1])
}

// sharedEdge returns two vertices common to both cells, or the null handle
// pair if fewer than two are shared.
func sharedEdge(a, b mesh.Cell) [2]mesh.VertexHandle {
	var common []mesh.VertexHandle
	for _, av := range a.V {
		for _, bv := range b.V {
			if av == bv {
				common = append(common, av)
				break
			}
		}
	}
	if len(common) < 2 {
		return [2]mesh.VertexHandle{}
	}
	return [2]mesh.VertexHandle{common[0], common[1]}
}

// findFacetCell returns a finite cell having fk as one of its facets, and
// the local index opposite that facet.
func findFacetCell(m *mesh.Mesh, fk mesh.FacetKey) (mesh.CellHandle, int, bool) {
	for _, c := range m.VertexStar(fk[0]) {
		if m.IsInfiniteCell(c) {
			continue
		}
		cell := m.Cell(c)
		for i := 0; i < 4; i++ {
			var others []mesh.VertexHandle
			for j, v := range cell.V {
				if j != i {
					others = append(others, v)
				}
			}
			if containsSameThree(others, fk) {
				return c, i, true
			}
		}
	}
	return mesh.NullCellHandle, -1, false
}

func containsSameThree(vs []mesh.VertexHandle, fk mesh.FacetKey) bool {
	if len(vs) != 3 {
		return false
	}
	for _, want := range fk {
		found := false
		for _, v := range vs {
			if v == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
