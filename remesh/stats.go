package remesh

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Megidd/tetremesh/mesh"
)

// EdgeLengthStats summarizes the distribution of finite edge lengths,
// useful for verbose progress reporting and for deciding whether the
// driver is converging.
type EdgeLengthStats struct {
	Min, Max, Mean, StdDev float64
	Count                  int
}

// CollectEdgeLengthStats computes edge-length statistics over every finite
// edge of m via gonum/stat, the library the rest of the retrieved corpus
// reaches for over hand-rolled mean/variance accumulation.
func CollectEdgeLengthStats(m *mesh.Mesh) EdgeLengthStats {
	var lengths []float64
	m.FiniteEdges(func(ek mesh.EdgeKey) bool {
		lengths = append(lengths, math.Sqrt(m.SquaredLength(ek)))
		return true
	})
	if len(lengths) == 0 {
		return EdgeLengthStats{}
	}

	mean, std := stat.MeanStdDev(lengths, nil)
	lo, hi := lengths[0], lengths[0]
	for _, l := range lengths {
		if l < lo {
			lo = l
		}
		if l > hi {
			hi = l
		}
	}
	return EdgeLengthStats{Min: lo, Max: hi, Mean: mean, StdDev: std, Count: len(lengths)}
}
