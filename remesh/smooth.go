package remesh

import (
	v3 "github.com/Megidd/tetremesh/vec/v3"

	"github.com/Megidd/tetremesh/mesh"
)

// Smooth performs one full smoothing pass (spec §4.7): every finite
// non-corner vertex is offered a new position constrained by its
// in_dimension, accepted only if every incident tet stays positively
// oriented and the minimum incident quality does not decrease.
func Smooth(m *mesh.Mesh) OpStats {
	stats := newOpStats()

	var verts []mesh.VertexHandle
	m.FiniteVertices(func(v mesh.VertexHandle) bool {
		verts = append(verts, v)
		return true
	})

	for _, v := range verts {
		if !m.Valid(v) || m.IsCorner(v) {
			continue
		}
		dim := m.Vertex(v).InDimension
		if dim <= mesh.DimCorner {
			continue
		}
		stats.Attempted++

		target, ok := smoothTarget(m, v, dim)
		if !ok {
			continue
		}
		if tryRelocate(m, v, target) {
			stats.Accepted++
		} else {
			stats.Rejected[mesh.RejectQuality]++
		}
	}
	return stats
}

func smoothTarget(m *mesh.Mesh, v mesh.VertexHandle, dim int) (mesh.Vec, bool) {
	switch dim {
	case mesh.DimVolume:
		return oneRingCentroid(m, v), true
	case mesh.DimSurface:
		return surfaceSmoothTarget(m, v)
	case mesh.DimFeatureEdge:
		return featureEdgeMidpoint(m, v)
	default:
		return mesh.Vec{}, false
	}
}

func oneRingCentroid(m *mesh.Mesh, v mesh.VertexHandle) mesh.Vec {
	var pts []mesh.Vec
	for w := range m.LinkVertices(v) {
		if m.Valid(w) && !m.IsInfiniteVertex(w) {
			pts = append(pts, m.Vertex(w).Pos)
		}
	}
	return v3.Centroid(pts)
}

// surfaceSmoothTarget averages the one-ring vertices sharing a complex
// facet with v, then projects the average back onto the tangent plane
// estimated from the normal-weighted average of those facets' normals.
func surfaceSmoothTarget(m *mesh.Mesh, v mesh.VertexHandle) (mesh.Vec, bool) {
	var ringPts []mesh.Vec
	var normalSum mesh.Vec
	seen := map[mesh.VertexHandle]bool{}

	for fk := range m.ComplexFacets {
		idx := -1
		for i, fv := range fk {
			if fv == v {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		p0, p1, p2 := m.Vertex(fk[0]).Pos, m.Vertex(fk[1]).Pos, m.Vertex(fk[2]).Pos
		n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		normalSum = normalSum.Add(n)
		for _, fv := range fk {
			if fv != v && !seen[fv] {
				seen[fv] = true
				ringPts = append(ringPts, m.Vertex(fv).Pos)
			}
		}
	}
	if len(ringPts) == 0 {
		return mesh.Vec{}, false
	}
	avg := v3.Centroid(ringPts)
	n := normalSum.Normalize()
	if n == (mesh.Vec{}) {
		return avg, true
	}
	cur := m.Vertex(v).Pos
	// Project avg onto the tangent plane through cur with normal n.
	d := avg.Sub(cur).Dot(n)
	return avg.Sub(n.Scale(d)), true
}

func featureEdgeMidpoint(m *mesh.Mesh, v mesh.VertexHandle) (mesh.Vec, bool) {
	var neighbors []mesh.VertexHandle
	for ek := range m.ComplexEdges {
		if ek[0] == v {
			neighbors = append(neighbors, ek[1])
		} else if ek[1] == v {
			neighbors = append(neighbors, ek[0])
		}
	}
	if len(neighbors) != 2 {
		return mesh.Vec{}, false
	}
	a := m.Vertex(neighbors[0]).Pos
	b := m.Vertex(neighbors[1]).Pos
	return a.Midpoint(b), true
}

// tryRelocate moves v to target if every incident finite tet stays
// positively oriented and the minimum incident quality does not decrease;
// otherwise v is left in place.
func tryRelocate(m *mesh.Mesh, v mesh.VertexHandle, target mesh.Vec) bool {
	star := m.VertexStar(v)
	var finite []mesh.CellHandle
	for _, c := range star {
		if !m.IsInfiniteCell(c) {
			finite = append(finite, c)
		}
	}
	if len(finite) == 0 {
		return false
	}

	before := minQualityOf(m, finite)
	original := m.Vertex(v).Pos

	vv := m.Vertex(v)
	vv.Pos = target
	m.SetVertex(v, vv)

	ok := true
	for _, c := range finite {
		cell := m.Cell(c)
		var p [4]mesh.Vec
		for i, cv := range cell.V {
			p[i] = m.Vertex(cv).Pos
		}
		if mesh.SignedVolume6(p[0], p[1], p[2], p[3]) <= 0 {
			ok = false
			break
		}
	}
	if ok {
		after := minQualityOf(m, finite)
		if after < before {
			ok = false
		}
	}

	if !ok {
		vv.Pos = original
		m.SetVertex(v, vv)
		return false
	}
	return true
}
