// Package mesh implements the decorated tetrahedral triangulation that the
// remesh package's operators mutate: an arena of vertices and cells
// addressed by generation-checked handles, plus the complex overlay
// (tagged cells, facets, edges and corner vertices) that records domain
// structure on top of the raw combinatorics.
package mesh

import (
	v3 "github.com/Megidd/tetremesh/vec/v3"
)

// Vec is the vector type used for vertex positions, re-exported from vec/v3
// so callers outside this module don't need a second import for it.
type Vec = v3.Vec

// VertexHandle addresses a vertex slot in a Mesh's vertex arena.
// The zero VertexHandle is never a valid allocated vertex (see NullVertexHandle).
type VertexHandle struct {
	idx uint32
	gen uint32
}

// CellHandle addresses a cell slot in a Mesh's cell arena.
// The zero CellHandle is never a valid allocated cell (see NullCellHandle).
type CellHandle struct {
	idx uint32
	gen uint32
}

// NullVertexHandle is the distinguished "no vertex" handle.
var NullVertexHandle = VertexHandle{}

// NullCellHandle is the distinguished "no cell" handle.
var NullCellHandle = CellHandle{}

// IsNull reports whether h is the null handle.
func (h VertexHandle) IsNull() bool { return h == NullVertexHandle }

// IsNull reports whether h is the null handle.
func (h CellHandle) IsNull() bool { return h == NullCellHandle }

// Vertex dimension constants (spec: in_dimension).
const (
	DimUnclassified = -1 // not yet classified
	DimCorner       = 0
	DimFeatureEdge  = 1
	DimSurface      = 2
	DimVolume       = 3
)

// NoSubdomain is the subdomain_index value meaning "outside all subdomains".
const NoSubdomain = -1

// Vertex is a flat vertex record: position, complex dimension, and a
// back-index to one incident cell for local traversal.
type Vertex struct {
	Pos         Vec
	InDimension int
	Cell        CellHandle
}

// Cell is a flat tetrahedron record: four vertex references and four
// neighbor-cell references (neighbor i is opposite vertex i).
type Cell struct {
	V         [4]VertexHandle
	N         [4]CellHandle
	Subdomain int
}

type vertexSlot struct {
	alive bool
	gen   uint32
	v     Vertex
}

type cellSlot struct {
	alive bool
	gen   uint32
	c     Cell
}

// Mesh is the decorated tetrahedralization: arena-indexed vertices and
// cells with stable, generation-checked handles, plus the complex overlay.
type Mesh struct {
	verts []vertexSlot
	cells []cellSlot

	freeVerts []uint32
	freeCells []uint32

	infinite VertexHandle

	// ImaginaryIndex is the reserved subdomain index for scaffold cells
	// added by the imaginary layer (spec: max(subdomain_index)+1).
	ImaginaryIndex int

	ComplexFacets map[FacetKey]struct{}
	ComplexEdges  map[EdgeKey]struct{}
	Corners       map[VertexHandle]struct{}

	// Constrained records edges the caller declared constrained on input
	// (spec §4.3: "caller-constrained"), independent of subdomain count.
	Constrained map[EdgeKey]struct{}
}

// NewMesh returns an empty mesh with its infinite vertex allocated.
func NewMesh() *Mesh {
	m := &Mesh{
		ComplexFacets: map[FacetKey]struct{}{},
		ComplexEdges:  map[EdgeKey]struct{}{},
		Corners:       map[VertexHandle]struct{}{},
		Constrained:   map[EdgeKey]struct{}{},
	}
	m.infinite = m.addVertexRaw(Vertex{InDimension: DimUnclassified})
	return m
}

// InfiniteVertex returns the handle of the distinguished infinite vertex.
func (m *Mesh) InfiniteVertex() VertexHandle { return m.infinite }

// IsInfiniteVertex reports whether v is the infinite vertex.
func (m *Mesh) IsInfiniteVertex(v VertexHandle) bool { return v == m.infinite }

func (m *Mesh) addVertexRaw(v Vertex) VertexHandle {
	if n := len(m.freeVerts); n > 0 {
		idx := m.freeVerts[n-1]
		m.freeVerts = m.freeVerts[:n-1]
		s := &m.verts[idx]
		s.alive = true
		s.gen++
		s.v = v
		return VertexHandle{idx: idx, gen: s.gen}
	}
	idx := uint32(len(m.verts))
	m.verts = append(m.verts, vertexSlot{alive: true, gen: 1, v: v})
	return VertexHandle{idx: idx, gen: 1}
}

// AddVertex allocates a new vertex with the given attributes.
func (m *Mesh) AddVertex(pos Vec, dim int) VertexHandle {
	return m.addVertexRaw(Vertex{Pos: pos, InDimension: dim, Cell: NullCellHandle})
}

// AddCell allocates a new cell with the given vertices and subdomain.
// Neighbors start out null; the caller is responsible for wiring them
// (see rewireAll in topology.go).
func (m *Mesh) AddCell(v [4]VertexHandle, subdomain int) CellHandle {
	c := Cell{V: v, Subdomain: subdomain, N: [4]CellHandle{NullCellHandle, NullCellHandle, NullCellHandle, NullCellHandle}}
	if n := len(m.freeCells); n > 0 {
		idx := m.freeCells[n-1]
		m.freeCells = m.freeCells[:n-1]
		s := &m.cells[idx]
		s.alive = true
		s.gen++
		s.c = c
		h := CellHandle{idx: idx, gen: s.gen}
		m.bindVertexBackrefs(h)
		return h
	}
	idx := uint32(len(m.cells))
	m.cells = append(m.cells, cellSlot{alive: true, gen: 1, c: c})
	h := CellHandle{idx: idx, gen: 1}
	m.bindVertexBackrefs(h)
	return h
}

func (m *Mesh) bindVertexBackrefs(h CellHandle) {
	c := m.cellSlot(h).c
	for _, v := range c.V {
		if v.IsNull() {
			continue
		}
		vs := m.vertSlot(v)
		if vs != nil {
			vs.v.Cell = h
		}
	}
}

// deleteVertex frees a vertex slot. Callers must ensure no live cell
// still references v.
func (m *Mesh) deleteVertex(v VertexHandle) {
	s := m.vertSlot(v)
	if s == nil {
		return
	}
	s.alive = false
	m.freeVerts = append(m.freeVerts, v.idx)
}

// deleteCell frees a cell slot. Callers must ensure no live neighbor
// still references c.
func (m *Mesh) deleteCell(c CellHandle) {
	s := m.cellSlot(c)
	if s == nil {
		return
	}
	s.alive = false
	m.freeCells = append(m.freeCells, c.idx)
}

func (m *Mesh) vertSlot(v VertexHandle) *vertexSlot {
	if int(v.idx) >= len(m.verts) {
		return nil
	}
	s := &m.verts[v.idx]
	if !s.alive || s.gen != v.gen {
		return nil
	}
	return s
}

func (m *Mesh) cellSlot(c CellHandle) *cellSlot {
	if int(c.idx) >= len(m.cells) {
		return nil
	}
	s := &m.cells[c.idx]
	if !s.alive || s.gen != c.gen {
		return nil
	}
	return s
}

// Valid reports whether v still addresses a live vertex.
func (m *Mesh) Valid(v VertexHandle) bool { return m.vertSlot(v) != nil }

// ValidCell reports whether c still addresses a live cell.
func (m *Mesh) ValidCell(c CellHandle) bool { return m.cellSlot(c) != nil }

// Vertex returns the vertex record for v. Panics if v is stale; callers
// that cannot guarantee liveness should check Valid first.
func (m *Mesh) Vertex(v VertexHandle) Vertex {
	s := m.vertSlot(v)
	if s == nil {
		panic("mesh: stale vertex handle")
	}
	return s.v
}

// SetVertex overwrites the vertex record for v.
func (m *Mesh) SetVertex(v VertexHandle, rec Vertex) {
	s := m.vertSlot(v)
	if s == nil {
		panic("mesh: stale vertex handle")
	}
	s.v = rec
}

// Cell returns the cell record for c. Panics if c is stale; callers
// that cannot guarantee liveness should check ValidCell first.
func (m *Mesh) Cell(c CellHandle) Cell {
	s := m.cellSlot(c)
	if s == nil {
		panic("mesh: stale cell handle")
	}
	return s.c
}

// SetCell overwrites the cell record for c.
func (m *Mesh) SetCell(c CellHandle, rec Cell) {
	s := m.cellSlot(c)
	if s == nil {
		panic("mesh: stale cell handle")
	}
	s.c = rec
}

// VertexCount returns the number of live vertices, including the infinite one.
func (m *Mesh) VertexCount() int {
	n := 0
	for i := range m.verts {
		if m.verts[i].alive {
			n++
		}
	}
	return n
}

// CellCount returns the number of live cells.
func (m *Mesh) CellCount() int {
	n := 0
	for i := range m.cells {
		if m.cells[i].alive {
			n++
		}
	}
	return n
}

// IsInfiniteCell reports whether c references the infinite vertex.
func (m *Mesh) IsInfiniteCell(c CellHandle) bool {
	cell := m.Cell(c)
	for _, v := range cell.V {
		if m.IsInfiniteVertex(v) {
			return true
		}
	}
	return false
}

// IsImaginaryCell reports whether c was tagged by the imaginary layer.
func (m *Mesh) IsImaginaryCell(c CellHandle) bool {
	return m.Cell(c).Subdomain == m.ImaginaryIndex
}

// localIndexOfVertex returns the local slot (0..3) holding v in cell c, or -1.
func (m *Mesh) localIndexOfVertex(c Cell, v VertexHandle) int {
	for i, cv := range c.V {
		if cv == v {
			return i
		}
	}
	return -1
}

// localIndexOfCell returns the neighbor slot (0..3) holding n in cell c, or -1.
func (m *Mesh) localIndexOfCell(c Cell, n CellHandle) int {
	for i, cn := range c.N {
		if cn == n {
			return i
		}
	}
	return -1
}
