package remesh

import (
	v3 "github.com/Megidd/tetremesh/vec/v3"
	"github.com/Megidd/tetremesh/mesh"
)

// SizingFunc is the sizing callable spec §6 names ("FT sizing(Point)").
type SizingFunc func(p v3.Vec) float64

// ConstraintMap is the constraint property map spec §6 names
// ("get(ecmap, (v1,v2)) -> bool").
type ConstraintMap interface {
	IsConstrained(v1, v2 mesh.VertexHandle) bool
}

// CellSelector is the cell selector spec §6 names ("bool(cell) -> bool").
type CellSelector func(m *mesh.Mesh, c mesh.CellHandle) bool

// CancelFunc is the caller-supplied cooperative-cancellation predicate
// checked between phases (spec §5).
type CancelFunc func() bool

// OpStats summarizes one operator pass: how many candidate operations were
// attempted, how many were accepted, and a breakdown of rejections by
// reason -- the per-phase progress spec §4.4-4.8 implies but never names
// as its own type.
type OpStats struct {
	Attempted int
	Accepted  int
	Rejected  map[mesh.RejectReason]int
}

func newOpStats() OpStats {
	return OpStats{Rejected: map[mesh.RejectReason]int{}}
}

// Status is the driver-level outcome spec §7 exposes to the caller.
type Status int

const (
	// OK means the resolution criterion was reached.
	OK Status = iota
	// ResolutionNotReached means max iterations were exhausted first.
	ResolutionNotReached
	// Cancelled means the caller's CancelFunc requested abort.
	Cancelled
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case ResolutionNotReached:
		return "resolution not reached"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result is Remesh's non-error outcome: status plus the per-iteration,
// per-phase operator statistics.
type Result struct {
	Status     Status
	Iterations int
	Split      []OpStats
	Collapse   []OpStats
	Flip       []OpStats
	Smooth     []OpStats
	InitReport *InitReport
	// FinalEdgeStats summarizes finite edge lengths on return, for
	// reporting convergence without re-scanning the mesh.
	FinalEdgeStats EdgeLengthStats
}
