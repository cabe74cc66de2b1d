package remesh

import (
	"testing"

	"github.com/Megidd/tetremesh/mesh"
)

func TestCollectEdgeLengthStatsOnSingleTet(t *testing.T) {
	m, _, _ := buildSingleTet(t)
	s := CollectEdgeLengthStats(m)
	if s.Count != 6 {
		t.Fatalf("Count: got %d, want 6 (a tet has 6 edges)", s.Count)
	}
	if s.Min <= 0 || s.Max < s.Min {
		t.Fatalf("stats look wrong: %+v", s)
	}
}

func TestCollectEdgeLengthStatsOnEmptyMesh(t *testing.T) {
	m := mesh.NewMesh()
	s := CollectEdgeLengthStats(m)
	if s.Count != 0 {
		t.Fatalf("Count on an empty mesh: got %d, want 0", s.Count)
	}
}
