package remesh

import (
	"fmt"

	"github.com/Megidd/tetremesh/mesh"
)

// InitConfig collects the inputs to InitComplex (spec §4.3).
type InitConfig struct {
	Selector CellSelector
	ECMap    ConstraintMap
}

// InitReport summarizes the outcome of InitComplex.
type InitReport struct {
	MaxSubdomainIndex int
	Warnings          []string
}

// InitComplex builds the complex overlay on an already-triangulated mesh
// (spec §4.3 steps 1-6): selects cells into subdomains, classifies vertex
// dimensions, tags boundary facets and feature edges, and registers
// corners.
func InitComplex(m *mesh.Mesh, cfg InitConfig) (*InitReport, error) {
	if cfg.Selector == nil {
		return nil, fmt.Errorf("remesh: InitComplex requires a non-nil cell selector")
	}
	report := &InitReport{}

	maxSI := 0
	m.FiniteCells(func(c mesh.CellHandle) bool {
		if !cfg.Selector(m, c) {
			return true
		}
		cell := m.Cell(c)
		if cell.Subdomain > maxSI {
			maxSI = cell.Subdomain
		}
		for _, v := range cell.V {
			vv := m.Vertex(v)
			if vv.InDimension == mesh.DimUnclassified {
				vv.InDimension = mesh.DimVolume
				m.SetVertex(v, vv)
			}
		}
		return true
	})
	report.MaxSubdomainIndex = maxSI
	m.ImaginaryIndex = maxSI + 1
	if maxSI == 0 {
		report.Warnings = append(report.Warnings, "max subdomain index is 0: remeshing is likely to fail without tagged subdomains")
	}

	m.FiniteFacets(func(fk mesh.FacetKey) bool {
		c, i, ok := findFacetCell(m, fk)
		if !ok {
			return true
		}
		cell := m.Cell(c)
		nb := cell.N[i]
		if nb.IsNull() || !m.ValidCell(nb) {
			return true
		}
		if cell.Subdomain == m.Cell(nb).Subdomain {
			return true
		}
		m.AddComplexFacet(fk[0], fk[1], fk[2])
		for _, v := range fk {
			demote(m, v, mesh.DimSurface)
		}
		return true
	})

	m.FiniteEdges(func(ek mesh.EdgeKey) bool {
		constrained := cfg.ECMap != nil && cfg.ECMap.IsConstrained(ek[0], ek[1])
		nonManifold := incidentSubdomainCount(m, ek) > 2
		if !constrained && !nonManifold {
			return true
		}
		if constrained {
			m.AddConstrainedEdge(ek[0], ek[1])
		}
		m.AddComplexEdge(ek[0], ek[1])
		demote(m, ek[0], mesh.DimFeatureEdge)
		demote(m, ek[1], mesh.DimFeatureEdge)
		return true
	})

	m.FiniteVertices(func(v mesh.VertexHandle) bool {
		if m.Vertex(v).InDimension == mesh.DimCorner || incidentComplexEdgeCount(m, v) > 2 {
			m.RegisterCorner(v)
		}
		return true
	})

	return report, nil
}

// demote lowers v's in_dimension to at most dim, never raising it.
func demote(m *mesh.Mesh, v mesh.VertexHandle, dim int) {
	vv := m.Vertex(v)
	if vv.InDimension == mesh.DimUnclassified || vv.InDimension > dim {
		vv.InDimension = dim
		m.SetVertex(v, vv)
	}
}

func incidentSubdomainCount(m *mesh.Mesh, ek mesh.EdgeKey) int {
	ring, _, ok := m.EdgeRing(ek[0], ek[1])
	if !ok {
		return 0
	}
	seen := map[int]struct{}{}
	for _, c := range ring {
		if m.IsInfiniteCell(c) {
			continue
		}
		seen[m.Cell(c).Subdomain] = struct{}{}
	}
	return len(seen)
}

func incidentComplexEdgeCount(m *mesh.Mesh, v mesh.VertexHandle) int {
	n := 0
	for ek := range m.ComplexEdges {
		if ek[0] == v || ek[1] == v {
			n++
		}
	}
	return n
}

// AddImaginaryLayer wraps every real boundary facet (one side tagged, the
// other exterior/infinite) with a scaffold tetrahedron on the exterior
// side, tagged with ImaginaryIndex (spec §4.2). The scaffold's fourth
// vertex is the reflection of the facet's opposite vertex across the
// facet plane.
func AddImaginaryLayer(m *mesh.Mesh) error {
	var boundary []mesh.FacetKey
	m.FiniteCells(func(c mesh.CellHandle) bool {
		cell := m.Cell(c)
		for i, nb := range cell.N {
			realInterior := !nb.IsNull() && m.ValidCell(nb) && !m.IsInfiniteCell(nb)
			if realInterior || cell.Subdomain == mesh.NoSubdomain {
				continue
			}
			var fv []mesh.VertexHandle
			for j, v := range cell.V {
				if j != i {
					fv = append(fv, v)
				}
			}
			boundary = append(boundary, mesh.NewFacetKey(fv[0], fv[1], fv[2]))
		}
		return true
	})

	for _, fk := range boundary {
		c, i, ok := findFacetCell(m, fk)
		if !ok {
			continue
		}
		cell := m.Cell(c)
		opp := cell.V[i]
		p0, p1, p2 := m.Vertex(fk[0]).Pos, m.Vertex(fk[1]).Pos, m.Vertex(fk[2]).Pos
		n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		oppPos := m.Vertex(opp).Pos
		d := oppPos.Sub(p0).Dot(n)
		reflected := oppPos.Sub(n.Scale(2 * d))

		if _, reason := m.WrapBoundaryFacet(c, i, reflected, m.ImaginaryIndex); reason != mesh.RejectNone {
			return fmt.Errorf("remesh: wrapping boundary facet: %v", reason)
		}
	}
	return nil
}

// RemoveImaginaryFromComplex strips imaginary-tagged cells and their
// facets/edges from the complex overlay without touching the
// triangulation itself (spec §4.2 postprocess: "not from the
// triangulation itself").
func RemoveImaginaryFromComplex(m *mesh.Mesh) {
	for fk := range m.ComplexFacets {
		c, i, ok := findFacetCell(m, fk)
		if !ok {
			continue
		}
		cell := m.Cell(c)
		if cell.Subdomain == m.ImaginaryIndex {
			delete(m.ComplexFacets, fk)
			continue
		}
		nb := cell.N[i]
		if !nb.IsNull() && m.ValidCell(nb) && m.Cell(nb).Subdomain == m.ImaginaryIndex {
			delete(m.ComplexFacets, fk)
		}
	}
	for ek := range m.ComplexEdges {
		if incidentSubdomainCount(m, ek) == 0 {
			continue
		}
		onlyImaginary := true
		ring, _, ok := m.EdgeRing(ek[0], ek[1])
		if !ok {
			continue
		}
		for _, c := range ring {
			if m.IsInfiniteCell(c) {
				continue
			}
			if m.Cell(c).Subdomain != m.ImaginaryIndex {
				onlyImaginary = false
				break
			}
		}
		if onlyImaginary {
			delete(m.ComplexEdges, ek)
		}
	}
}
