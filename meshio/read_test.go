package meshio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Megidd/tetremesh/mesh"
)

// singleTetInput is one finite tetrahedron over 4 nodes: the simplest
// case where every facet is a hull facet and needs an infinite-cell cap.
const singleTetInput = `
N 4
1 0 0 0
2 1 0 0
3 0 1 0
4 0 0 1
E 1
1 1 2 3 4 0
`

// twoTetInput is a bipyramid: two tets sharing the internal facet
// (2,3,4), exercising the 2-sided facet-matching path as well as the
// hull-closing infinite-cell path.
const twoTetInput = `
N 5
1 0 0 0
2 1 0 0
3 0 1 0
4 0 0 1
5 0.5 0.5 1.5
E 2
1 1 2 3 4 0
2 5 2 3 4 0
`

func TestReadInitialMeshSingleTet(t *testing.T) {
	m, err := readInitialMesh(strings.NewReader(singleTetInput))
	require.NoError(t, err)
	assert.Equal(t, 5, m.CellCount(), "1 finite + 4 infinite cap cells")
	assert.Empty(t, m.Audit())

	n := 0
	m.FiniteVertices(func(v mesh.VertexHandle) bool { n++; return true })
	assert.Equal(t, 4, n)
}

func TestReadInitialMeshTwoTets(t *testing.T) {
	m, err := readInitialMesh(strings.NewReader(twoTetInput))
	require.NoError(t, err)
	assert.Empty(t, m.Audit())

	finiteCells := 0
	m.FiniteCells(func(c mesh.CellHandle) bool { finiteCells++; return true })
	assert.Equal(t, 2, finiteCells)

	// the two tets share facet (2,3,4): that facet must not be a hull
	// facet, so only the 6 remaining outer faces get infinite caps.
	assert.Equal(t, 2+6, m.CellCount())
}

func TestReadInitialMeshSnapsDuplicateNodes(t *testing.T) {
	const dup = `
N 5
1 0 0 0
2 1 0 0
3 0 1 0
4 0 0 1
5 0 0 0
E 1
1 1 2 3 4 0
`
	m, err := readInitialMesh(strings.NewReader(dup))
	require.NoError(t, err)

	n := 0
	m.FiniteVertices(func(v mesh.VertexHandle) bool { n++; return true })
	assert.Equal(t, 4, n, "the duplicate node at (0,0,0) should have snapped onto node 1")
}

func TestReadInitialMeshRejectsUndefinedNodeReference(t *testing.T) {
	const bad = `
N 3
1 0 0 0
2 1 0 0
3 0 1 0
E 1
1 1 2 3 99 0
`
	_, err := readInitialMesh(strings.NewReader(bad))
	assert.Error(t, err)
}

func TestReadInitialMeshRejectsMalformedHeader(t *testing.T) {
	_, err := readInitialMesh(strings.NewReader("X 3\n"))
	assert.Error(t, err)
}
