package mesh

import "fmt"

// Audit walks the whole mesh and returns a description of every invariant
// violation found (orientation, neighbor symmetry, back-reference
// integrity, dangling complex-overlay keys). A clean mesh returns nil.
// Intended for tests and the driver's optional post-operator checks, not
// the hot path.
func (m *Mesh) Audit() []string {
	var problems []string

	m.FiniteCells(func(c CellHandle) bool {
		if v := m.SignedVolume(c); v <= 0 {
			problems = append(problems, fmt.Sprintf("cell %v: non-positive signed volume %g", c, v))
		}
		cell := m.Cell(c)
		for i, n := range cell.N {
			if n.IsNull() {
				continue
			}
			if !m.ValidCell(n) {
				problems = append(problems, fmt.Sprintf("cell %v: neighbor %d is a stale handle", c, i))
				continue
			}
			back, j, ok := m.MirrorFacet(c, i)
			if !ok || back != n {
				problems = append(problems, fmt.Sprintf("cell %v: neighbor %d does not mirror back", c, i))
				continue
			}
			nc := m.Cell(n)
			if nc.N[j] != c {
				problems = append(problems, fmt.Sprintf("cell %v: neighbor %d's reciprocal slot %d points to %v, not back to this cell", c, i, j, nc.N[j]))
			}
		}
		return true
	})

	m.FiniteVertices(func(v VertexHandle) bool {
		vv := m.Vertex(v)
		if vv.Cell.IsNull() {
			problems = append(problems, fmt.Sprintf("vertex %v: null back-reference cell", v))
			return true
		}
		if !m.ValidCell(vv.Cell) {
			problems = append(problems, fmt.Sprintf("vertex %v: back-reference cell is stale", v))
			return true
		}
		cell := m.Cell(vv.Cell)
		if m.localIndexOfVertex(cell, v) < 0 {
			problems = append(problems, fmt.Sprintf("vertex %v: back-reference cell %v does not contain it", v, vv.Cell))
		}
		return true
	})

	for fk := range m.ComplexFacets {
		for _, v := range fk {
			if !m.Valid(v) {
				problems = append(problems, fmt.Sprintf("complex facet %v: references stale vertex %v", fk, v))
			}
		}
	}
	for ek := range m.ComplexEdges {
		for _, v := range ek {
			if !m.Valid(v) {
				problems = append(problems, fmt.Sprintf("complex edge %v: references stale vertex %v", ek, v))
			}
		}
	}
	for ek := range m.Constrained {
		for _, v := range ek {
			if !m.Valid(v) {
				problems = append(problems, fmt.Sprintf("constrained edge %v: references stale vertex %v", ek, v))
			}
		}
	}
	for v := range m.Corners {
		if !m.Valid(v) {
			problems = append(problems, fmt.Sprintf("corner set references stale vertex %v", v))
			continue
		}
		if m.Vertex(v).InDimension != DimCorner {
			problems = append(problems, fmt.Sprintf("vertex %v is registered as a corner but in_dimension is %d", v, m.Vertex(v).InDimension))
		}
	}

	return problems
}
