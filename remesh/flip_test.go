package remesh

import "testing"

func TestFlipPreservesValidity(t *testing.T) {
	m, _, _, _ := buildTwoTets(t)
	before := m.CellCount()

	stats := Flip(m)
	t.Logf("flip stats: %+v", stats)

	if problems := m.Audit(); len(problems) != 0 {
		t.Fatalf("Audit found problems after Flip: %v", problems)
	}
	// An accepted 2-to-3 adds a cell and an accepted 3-to-2 removes one,
	// but rejected flips are undone, so the cell count may change only
	// when some flip was accepted.
	if got := m.CellCount(); got != before && stats.Accepted == 0 {
		t.Fatalf("CellCount changed with no accepted flips: got %d, want %d", got, before)
	}
}

func TestMinQualityOfEmptyIsZero(t *testing.T) {
	m, _, _ := buildSingleTet(t)
	if q := minQualityOf(m, nil); q != 0 {
		t.Fatalf("minQualityOf(nil): got %v, want 0", q)
	}
}
