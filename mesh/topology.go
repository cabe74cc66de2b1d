package mesh

// vertexTripleIndex maps an edge's local indices (i,j) to the local indices
// of the two other vertices of the tet, in the order that keeps the facet
// opposite i (then opposite j) well defined. Spec §6: "vertex_triple_index(i,j)".
var vertexTripleIndex = [4][4][2]int{}

func init() {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				continue
			}
			var others [2]int
			k := 0
			for l := 0; l < 4; l++ {
				if l != i && l != j {
					others[k] = l
					k++
				}
			}
			vertexTripleIndex[i][j] = others
		}
	}
}

// VertexTripleIndex returns the local indices of the two tet vertices other
// than i and j.
func VertexTripleIndex(i, j int) (int, int) {
	o := vertexTripleIndex[i][j]
	return o[0], o[1]
}

// FiniteCells calls yield for every live, finite (non-infinite) cell.
// Iteration stops early if yield returns false.
func (m *Mesh) FiniteCells(yield func(CellHandle) bool) {
	for idx := range m.cells {
		s := &m.cells[idx]
		if !s.alive {
			continue
		}
		h := CellHandle{idx: uint32(idx), gen: s.gen}
		if m.IsInfiniteCell(h) {
			continue
		}
		if !yield(h) {
			return
		}
	}
}

// AllCells calls yield for every live cell, including infinite ones.
func (m *Mesh) AllCells(yield func(CellHandle) bool) {
	for idx := range m.cells {
		s := &m.cells[idx]
		if !s.alive {
			continue
		}
		h := CellHandle{idx: uint32(idx), gen: s.gen}
		if !yield(h) {
			return
		}
	}
}

// FiniteVertices calls yield for every live vertex other than the infinite one.
func (m *Mesh) FiniteVertices(yield func(VertexHandle) bool) {
	for idx := range m.verts {
		s := &m.verts[idx]
		if !s.alive {
			continue
		}
		h := VertexHandle{idx: uint32(idx), gen: s.gen}
		if m.IsInfiniteVertex(h) {
			continue
		}
		if !yield(h) {
			return
		}
	}
}

// FiniteFacets calls yield once per finite facet (a facet is skipped if
// either incident cell is infinite), deduplicated by FacetKey.
func (m *Mesh) FiniteFacets(yield func(FacetKey) bool) {
	seen := map[FacetKey]struct{}{}
	m.FiniteCells(func(c CellHandle) bool {
		cell := m.Cell(c)
		for i := 0; i < 4; i++ {
			nc := cell.N[i]
			if nc.IsNull() || m.IsInfiniteCell(nc) {
				continue
			}
			a, b, cc := facetVerts(cell, i)
			fk := NewFacetKey(a, b, cc)
			if _, ok := seen[fk]; ok {
				continue
			}
			seen[fk] = struct{}{}
			if !yield(fk) {
				return false
			}
		}
		return true
	})
}

// facetVerts returns the three vertices of the facet opposite local index i.
func facetVerts(c Cell, i int) (VertexHandle, VertexHandle, VertexHandle) {
	var out [3]VertexHandle
	k := 0
	for l := 0; l < 4; l++ {
		if l != i {
			out[k] = c.V[l]
			k++
		}
	}
	return out[0], out[1], out[2]
}

// FiniteEdges calls yield once per finite edge (both endpoints finite and
// not isolated to imaginary-only cells is left to callers), deduplicated.
func (m *Mesh) FiniteEdges(yield func(EdgeKey) bool) {
	seen := map[EdgeKey]struct{}{}
	m.FiniteCells(func(c CellHandle) bool {
		cell := m.Cell(c)
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				ek := NewEdgeKey(cell.V[i], cell.V[j])
				if _, ok := seen[ek]; ok {
					continue
				}
				seen[ek] = struct{}{}
				if !yield(ek) {
					return false
				}
			}
		}
		return true
	})
}

// MirrorFacet returns the facet (c,i) as seen from its other incident cell.
func (m *Mesh) MirrorFacet(c CellHandle, i int) (CellHandle, int, bool) {
	cell := m.Cell(c)
	nc := cell.N[i]
	if nc.IsNull() || !m.ValidCell(nc) {
		return NullCellHandle, -1, false
	}
	ncell := m.Cell(nc)
	j := m.localIndexOfCell(ncell, c)
	if j < 0 {
		return NullCellHandle, -1, false
	}
	return nc, j, true
}

// VertexStar returns every live cell incident to v, found by a breadth
// first walk over cell neighbors seeded at v's back-index cell.
func (m *Mesh) VertexStar(v VertexHandle) []CellHandle {
	vs := m.Vertex(v)
	if vs.Cell.IsNull() || !m.ValidCell(vs.Cell) {
		return nil
	}
	visited := map[CellHandle]struct{}{}
	queue := []CellHandle{vs.Cell}
	var out []CellHandle
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if _, ok := visited[c]; ok {
			continue
		}
		visited[c] = struct{}{}
		if !m.ValidCell(c) {
			continue
		}
		cell := m.Cell(c)
		if m.localIndexOfVertex(cell, v) < 0 {
			continue
		}
		out = append(out, c)
		for _, n := range cell.N {
			if n.IsNull() {
				continue
			}
			if _, ok := visited[n]; ok {
				continue
			}
			queue = append(queue, n)
		}
	}
	return out
}

// LinkVertices returns the set of vertices adjacent to v (appearing in some
// cell together with v), excluding v itself.
func (m *Mesh) LinkVertices(v VertexHandle) map[VertexHandle]struct{} {
	out := map[VertexHandle]struct{}{}
	for _, c := range m.VertexStar(v) {
		cell := m.Cell(c)
		for _, cv := range cell.V {
			if cv != v {
				out[cv] = struct{}{}
			}
		}
	}
	return out
}

// EdgeRing returns, for edge (u,v), the ordered ring of cells around it and
// the cyclic sequence of "outer" vertices w_0..w_{k-1} such that ring[i] has
// vertices {u,v,w_i,w_{i+1 mod k}}. ok is false if u,v are not adjacent.
func (m *Mesh) EdgeRing(u, v VertexHandle) (ring []CellHandle, outer []VertexHandle, ok bool) {
	start, ok := m.findEdgeCell(u, v)
	if !ok {
		return nil, nil, false
	}
	cell := m.Cell(start)
	iu := m.localIndexOfVertex(cell, u)
	iv := m.localIndexOfVertex(cell, v)
	o1, o2 := VertexTripleIndex(iu, iv)
	w0, w1 := cell.V[o1], cell.V[o2]

	ring = []CellHandle{start}
	outer = []VertexHandle{w0}
	cur := start
	curW0, curW1 := w0, w1
	for {
		cc := m.Cell(cur)
		iw0 := m.localIndexOfVertex(cc, curW0)
		if iw0 < 0 {
			return nil, nil, false
		}
		next := cc.N[iw0]
		if next.IsNull() || !m.ValidCell(next) {
			return nil, nil, false
		}
		if next == start {
			break
		}
		ncell := m.Cell(next)
		iu2 := m.localIndexOfVertex(ncell, u)
		iv2 := m.localIndexOfVertex(ncell, v)
		if iu2 < 0 || iv2 < 0 {
			return nil, nil, false
		}
		a, b := VertexTripleIndex(iu2, iv2)
		var w2 VertexHandle
		if ncell.V[a] == curW1 {
			w2 = ncell.V[b]
		} else if ncell.V[b] == curW1 {
			w2 = ncell.V[a]
		} else {
			return nil, nil, false
		}
		ring = append(ring, next)
		outer = append(outer, curW1)
		curW0, curW1 = curW1, w2
		cur = next
		if len(ring) > 4096 {
			// Pathological/non-manifold input; bail rather than loop forever.
			return nil, nil, false
		}
	}
	return ring, outer, true
}

// EdgeExists reports whether some live cell contains both u and v.
func (m *Mesh) EdgeExists(u, v VertexHandle) bool {
	_, ok := m.findEdgeCell(u, v)
	return ok
}

// findEdgeCell returns one cell containing both u and v, searching u's star.
func (m *Mesh) findEdgeCell(u, v VertexHandle) (CellHandle, bool) {
	for _, c := range m.VertexStar(u) {
		cell := m.Cell(c)
		if m.localIndexOfVertex(cell, v) >= 0 {
			return c, true
		}
	}
	return NullCellHandle, false
}

// cellVerts returns the vertex set of a cell as a sorted-independent array,
// for facet-sharing comparisons.
func cellVerts(c Cell) [4]VertexHandle { return c.V }

// sharedFacet reports whether cells c1, c2 share exactly 3 vertices, and if
// so returns the local index of the apex (non-shared) vertex in each.
func sharedFacet(c1, c2 Cell) (i1, i2 int, ok bool) {
	v1 := cellVerts(c1)
	v2 := cellVerts(c2)
	var apex1, apex2 int = -1, -1
	sharedCount := 0
	for i, a := range v1 {
		found := false
		for _, b := range v2 {
			if a == b {
				found = true
				break
			}
		}
		if found {
			sharedCount++
		} else {
			apex1 = i
		}
	}
	if sharedCount != 3 {
		return -1, -1, false
	}
	for j, b := range v2 {
		found := false
		for _, a := range v1 {
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

// rewireAll wires neighbor pointers within group by brute-force facet
// matching: O(n²) in the group size, which is always small (a handful of
// cells from one local mesh-surgery site), so this is simpler and more
// robust than threading index bookkeeping through every operator.
func (m *Mesh) rewireAll(group []CellHandle) {
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			c1, c2 := group[i], group[j]
			if !m.ValidCell(c1) || !m.ValidCell(c2) {
				continue
			}
			cell1, cell2 := m.Cell(c1), m.Cell(c2)
			a1, a2, ok := sharedFacet(cell1, cell2)
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

// outerNeighbors returns the distinct live neighbors of the cells in
// region that are not themselves in region -- the surviving cells a
// replacement group must be stitched back onto.
func outerNeighbors(m *Mesh, region []CellHandle) []CellHandle {
	inRegion := map[CellHandle]struct{}{}
	for _, c := range region {
		inRegion[c] = struct{}{}
	}
	seen := map[CellHandle]struct{}{}
	var out []CellHandle
	for _, c := range region {
		cell := m.Cell(c)
		for _, n := range cell.N {
			if n.IsNull() || !m.ValidCell(n) {
				continue
			}
			if _, in := inRegion[n]; in {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}
