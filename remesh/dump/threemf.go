package dump

import (
	"io"

	"github.com/hpinc/go3mf"

	"github.com/Megidd/tetremesh/mesh"
)

// Write3MF exports the complex's boundary (every tagged complex facet) as a
// single 3MF mesh object -- a dump of the subdomain-boundary surface, not
// of the volume mesh.
func Write3MF(m *mesh.Mesh, w io.Writer) error {
	index := map[mesh.VertexHandle]uint32{}
	var verts []go3mf.Point3D
	var tris []go3mf.Triangle

	add := func(v mesh.VertexHandle) uint32 {
		if i, ok := index[v]; ok {
			return i
		}
		p := m.Vertex(v).Pos
		i := uint32(len(verts))
		verts = append(verts, go3mf.Point3D{float32(p.X), float32(p.Y), float32(p.Z)})
		index[v] = i
		return i
	}

	for fk := range m.ComplexFacets {
		i0 := add(fk[0])
		i1 := add(fk[1])
		i2 := add(fk[2])
		tris = append(tris, go3mf.NewTriangle(int(i0), int(i1), int(i2)))
	}

	model := new(go3mf.Model)
	model.Units = go3mf.UnitMillimeter
	obj := &go3mf.Object{
		ID:   1,
		Mesh: &go3mf.Mesh{Vertices: go3mf.Vertices{Vertex: verts}, Triangles: go3mf.Triangles{Triangle: tris}},
	}
	model.Resources.Objects = append(model.Resources.Objects, obj)
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: 1})

	enc := go3mf.NewEncoder(w)
	return enc.Encode(model)
}
