// Package meshio reads an initial tetrahedral mesh from a plain text node/
// element file and writes the remeshed result as an ABAQUS/CalculiX `inp`
// file, the two named-but-out-of-scope collaborators spec §1 calls "file
// I/O" and "the initial mesh generator".
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Megidd/tetremesh/mesh"
)

// snapEpsilon is the distance within which two input nodes are treated as
// the same vertex, ironing out duplicate points at shared element faces.
const snapEpsilon = 1e-9

// ReadInitialMesh reads a tetrahedral soup from path: a node block
// ("N <count>" followed by "<id> <x> <y> <z>" lines) and an element block
// ("E <count>" followed by "<id> <n0> <n1> <n2> <n3> <subdomain>" lines),
// and assembles it into a mesh.Mesh with full neighbor wiring. Facets
// shared by only one element are closed off with an infinite-vertex cell,
// matching the convex-hull convention mesh.NewMesh establishes.
func ReadInitialMesh(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: opening %s: %w", path, err)
	}
	defer f.Close()
	return readInitialMesh(f)
}

func readInitialMesh(r io.Reader) (*mesh.Mesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	m := mesh.NewMesh()
	idx := mesh.NewSpatialIndex(m)
	nodeVerts := map[int]mesh.VertexHandle{}
	var elements []rawElement

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "N":
			count, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("meshio: parsing node count: %w", err)
			}
			for i := 0; i < count && sc.Scan(); i++ {
				nf := strings.Fields(strings.TrimSpace(sc.Text()))
				if len(nf) != 4 {
					return nil, fmt.Errorf("meshio: malformed node line %q", sc.Text())
				}
				id, err := strconv.Atoi(nf[0])
				if err != nil {
					return nil, fmt.Errorf("meshio: parsing node id: %w", err)
				}
				x, err1 := strconv.ParseFloat(nf[1], 64)
				y, err2 := strconv.ParseFloat(nf[2], 64)
				z, err3 := strconv.ParseFloat(nf[3], 64)
				if err1 != nil || err2 != nil || err3 != nil {
					return nil, fmt.Errorf("meshio: parsing node coordinates on line %q", sc.Text())
				}
				pos := mesh.Vec{X: x, Y: y, Z: z}
				if existing, ok := idx.Nearest(pos); ok && m.Vertex(existing).Pos.Sub(pos).SquaredLength() <= snapEpsilon*snapEpsilon {
					nodeVerts[id] = existing
					continue
				}
				v := m.AddVertex(pos, mesh.DimUnclassified)
				idx.Insert(v, pos)
				nodeVerts[id] = v
			}
		case "E":
			count, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("meshio: parsing element count: %w", err)
			}
			for i := 0; i < count && sc.Scan(); i++ {
				ef := strings.Fields(strings.TrimSpace(sc.Text()))
				if len(ef) != 6 {
					return nil, fmt.Errorf("meshio: malformed element line %q", sc.Text())
				}
				var el rawElement
				for k := 0; k < 4; k++ {
					n, err := strconv.Atoi(ef[1+k])
					if err != nil {
						return nil, fmt.Errorf("meshio: parsing element node reference: %w", err)
					}
					el.nodes[k] = n
				}
				sub, err := strconv.Atoi(ef[5])
				if err != nil {
					return nil, fmt.Errorf("meshio: parsing subdomain index: %w", err)
				}
				el.subdomain = sub
				elements = append(elements, el)
			}
		default:
			return nil, fmt.Errorf("meshio: unrecognized section header %q", fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("meshio: scanning input: %w", err)
	}

	if err := assemble(m, nodeVerts, elements); err != nil {
		return nil, err
	}
	return m, nil
}

type rawElement struct {
	nodes     [4]int
	subdomain int
}

func assemble(m *mesh.Mesh, nodeVerts map[int]mesh.VertexHandle, elements []rawElement) error {
	cells := make([]mesh.CellHandle, len(elements))
	for i, el := range elements {
		var v [4]mesh.VertexHandle
		for k, n := range el.nodes {
			vh, ok := nodeVerts[n]
			if !ok {
				return fmt.Errorf("meshio: element references undefined node %d", n)
			}
			v[k] = vh
		}
		p := [4]mesh.Vec{
			m.Vertex(v[0]).Pos, m.Vertex(v[1]).Pos, m.Vertex(v[2]).Pos, m.Vertex(v[3]).Pos,
		}
		if mesh.SignedVolume6(p[0], p[1], p[2], p[3]) <= 0 {
			v[2], v[3] = v[3], v[2]
		}
		cells[i] = m.AddCell(v, el.subdomain)
	}

	type facetSide struct {
		cell mesh.CellHandle
		i    int
	}
	facets := map[mesh.FacetKey][]facetSide{}
	for _, c := range cells {
		cell := m.Cell(c)
		for i := 0; i < 4; i++ {
			fk := facetKeyOpposite(cell, i)
			facets[fk] = append(facets[fk], facetSide{cell: c, i: i})
		}
	}

	var infCells []mesh.CellHandle
	for fk, sides := range facets {
		switch len(sides) {
		case 2:
			a, b := sides[0], sides[1]
			ca := m.Cell(a.cell)
			ca.N[a.i] = b.cell
			m.SetCell(a.cell, ca)
			cb := m.Cell(b.cell)
			cb.N[b.i] = a.cell
			m.SetCell(b.cell, cb)
		case 1:
			s := sides[0]
			inf := m.InfiniteVertex()
			cell := m.Cell(s.cell)
			apex := cell.V[s.i]
			order := [4]mesh.VertexHandle{inf, fk[0], fk[1], fk[2]}
			pa, pb, pc := m.Vertex(fk[0]).Pos, m.Vertex(fk[1]).Pos, m.Vertex(fk[2]).Pos
			apexPos := m.Vertex(apex).Pos
			n := pb.Sub(pa).Cross(pc.Sub(pa))
			if n.Dot(apexPos.Sub(pa)) > 0 {
				order[2], order[3] = order[3], order[2]
			}
			infCell := m.AddCell(order, mesh.NoSubdomain)
			cellA := m.Cell(s.cell)
			cellA.N[s.i] = infCell
			m.SetCell(s.cell, cellA)
			// order[0] is always the infinite vertex (only order[2],
			// order[3] may have been swapped), so local index 0 is
			// opposite the shared facet.
			ic := m.Cell(infCell)
			ic.N[0] = s.cell
			m.SetCell(infCell, ic)
			infCells = append(infCells, infCell)
		default:
			return fmt.Errorf("meshio: facet shared by %d elements, expected 1 or 2", len(sides))
		}
	}

	// Stitch the infinite cells to each other along the hull edges: each
	// infinite cell's three side facets (the ones including the infinite
	// vertex) are shared with exactly one other infinite cell.
	sideFacets := map[mesh.FacetKey][]facetSide{}
	for _, c := range infCells {
		cell := m.Cell(c)
		for i := 1; i < 4; i++ {
			fk := facetKeyOpposite(cell, i)
			sideFacets[fk] = append(sideFacets[fk], facetSide{cell: c, i: i})
		}
	}
	for _, sides := range sideFacets {
		if len(sides) != 2 {
			continue
		}
		a, b := sides[0], sides[1]
		ca := m.Cell(a.cell)
		ca.N[a.i] = b.cell
		m.SetCell(a.cell, ca)
		cb := m.Cell(b.cell)
		cb.N[b.i] = a.cell
		m.SetCell(b.cell, cb)
	}
	return nil
}

func facetKeyOpposite(c mesh.Cell, i int) mesh.FacetKey {
	var out [3]mesh.VertexHandle
	k := 0
	for l := 0; l < 4; l++ {
		if l != i {
			out[k] = c.V[l]
			k++
		}
	}
	return mesh.NewFacetKey(out[0], out[1], out[2])
}
