package remesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v3 "github.com/Megidd/tetremesh/vec/v3"

	"github.com/Megidd/tetremesh/mesh"
)

func constantSizing(l float64) SizingFunc {
	return func(p v3.Vec) float64 { return l }
}

func selectAll(m *mesh.Mesh, c mesh.CellHandle) bool { return true }

func TestRemeshRunsToCompletionOnASingleTet(t *testing.T) {
	m, _, f := buildSingleTet(t)
	cell := m.Cell(f)
	cell.Subdomain = 1
	m.SetCell(f, cell)

	result, err := Remesh(m, constantSizing(1.0), false, nil, selectAll, 3)
	require.NoError(t, err)
	assert.NotZero(t, result.Iterations, "expected at least one iteration to run")
	assert.Empty(t, m.Audit())
}

func TestRemeshRejectsNilSelector(t *testing.T) {
	m := mesh.NewMesh()
	// An isolated infinite vertex with no cells is a degenerate but
	// structurally valid (empty) triangulation -- Audit should still pass,
	// so instead exercise the nil-selector fast-fail path for a concrete
	// InvalidInput case.
	_, err := Remesh(m, constantSizing(1.0), false, nil, nil, 1)
	require.Error(t, err)

	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, InvalidInput, rerr.Kind)
}

func TestRemeshCancellation(t *testing.T) {
	m, _, f := buildSingleTet(t)
	cell := m.Cell(f)
	cell.Subdomain = 1
	m.SetCell(f, cell)

	calls := 0
	cancel := func() bool {
		calls++
		return true
	}
	result, err := Remesh(m, constantSizing(1.0), false, nil, selectAll, 10, WithCancelFunc(cancel))
	require.NoError(t, err)
	assert.Contains(t, []Status{Cancelled, OK}, result.Status)
	assert.NotZero(t, calls, "cancel predicate was never consulted")
}
