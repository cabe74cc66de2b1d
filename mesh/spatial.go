package mesh

import (
	"github.com/dhconnelly/rtreego"
)

// spatialPoint is the rtreego.Spatial wrapper around a single mesh vertex,
// degenerate (zero-volume) bounding box at its position.
type spatialPoint struct {
	v   VertexHandle
	pos Vec
}

func (p *spatialPoint) Bounds() rtreego.Rect {
	const eps = 1e-9
	rect, err := rtreego.NewRect(
		rtreego.Point{p.pos.X, p.pos.Y, p.pos.Z},
		[]float64{eps, eps, eps},
	)
	if err != nil {
		// NewRect only errors on non-positive lengths, which eps never is.
		panic(err)
	}
	return rect
}

// SpatialIndex is an rtreego-backed nearest-neighbor and range index over a
// mesh's vertex positions, used by meshio's initial-vertex snapping. It is a
// separate,
// optional structure: callers rebuild it after any batch of topology
// changes rather than keeping it live-updated incrementally.
type SpatialIndex struct {
	tree   *rtreego.Rtree
	byVert map[VertexHandle]*spatialPoint
}

// NewSpatialIndex builds an index over the mesh's current finite vertices.
func NewSpatialIndex(m *Mesh) *SpatialIndex {
	idx := &SpatialIndex{
		tree:   rtreego.NewTree(3, 25, 50),
		byVert: map[VertexHandle]*spatialPoint{},
	}
	m.FiniteVertices(func(v VertexHandle) bool {
		idx.Insert(v, m.Vertex(v).Pos)
		return true
	})
	return idx
}

// Insert adds (or re-adds) a vertex at pos to the index.
func (s *SpatialIndex) Insert(v VertexHandle, pos Vec) {
	if old, ok := s.byVert[v]; ok {
		s.tree.Delete(old)
	}
	sp := &spatialPoint{v: v, pos: pos}
	s.byVert[v] = sp
	s.tree.Insert(sp)
}

// Remove drops v from the index, if present.
func (s *SpatialIndex) Remove(v VertexHandle) {
	if old, ok := s.byVert[v]; ok {
		s.tree.Delete(old)
		delete(s.byVert, v)
	}
}

// Nearest returns the indexed vertex closest to pos, and false if the
// index is empty.
func (s *SpatialIndex) Nearest(pos Vec) (VertexHandle, bool) {
	if len(s.byVert) == 0 {
		return NullVertexHandle, false
	}
	results := s.tree.NearestNeighbors(1, rtreego.Point{pos.X, pos.Y, pos.Z})
	if len(results) == 0 {
		return NullVertexHandle, false
	}
	sp, ok := results[0].(*spatialPoint)
	if !ok {
		return NullVertexHandle, false
	}
	return sp.v, true
}

// WithinRadius returns every indexed vertex within radius of pos.
func (s *SpatialIndex) WithinRadius(pos Vec, radius float64) []VertexHandle {
	if radius <= 0 {
		return nil
	}
	bb, err := rtreego.NewRect(
		rtreego.Point{pos.X - radius, pos.Y - radius, pos.Z - radius},
		[]float64{2 * radius, 2 * radius, 2 * radius},
	)
	if err != nil {
		return nil
	}
	hits := s.tree.SearchIntersect(bb)
	out := make([]VertexHandle, 0, len(hits))
	r2 := radius * radius
	for _, h := range hits {
		sp, ok := h.(*spatialPoint)
		if !ok {
			continue
		}
		if sp.pos.Sub(pos).SquaredLength() <= r2 {
			out = append(out, sp.v)
		}
	}
	return out
}
