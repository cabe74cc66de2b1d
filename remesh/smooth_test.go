package remesh

import "testing"

func TestSmoothPreservesValidity(t *testing.T) {
	m, _, _, _ := buildTwoTets(t)

	stats := Smooth(m)
	t.Logf("smooth stats: %+v", stats)

	if problems := m.Audit(); len(problems) != 0 {
		t.Fatalf("Audit found problems after Smooth: %v", problems)
	}
}

func TestSmoothNeverMovesACorner(t *testing.T) {
	m, v, _, _ := buildTwoTets(t)
	m.RegisterCorner(v[4])
	before := m.Vertex(v[4]).Pos

	Smooth(m)

	after := m.Vertex(v[4]).Pos
	if before != after {
		t.Fatalf("corner vertex moved: before %v after %v", before, after)
	}
}
