// Package remesh implements the local-operation remeshing loop over a
// mesh.Mesh: the imaginary-layer scaffold, the split/collapse/flip/smooth
// operators, and the fixed-point driver that sequences them.
package remesh

import "fmt"

// ErrorKind classifies a fatal remesh error.
type ErrorKind int

const (
	// InvalidInput means the triangulation failed its validity audit on
	// entry, or the complex initialization was misconfigured (e.g. a nil
	// subdomain selector).
	InvalidInput ErrorKind = iota
	// DegenerateGeometry means a predicate reported a configuration no
	// operator could resolve, blocking progress.
	DegenerateGeometry
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case DegenerateGeometry:
		return "degenerate geometry"
	default:
		return "unknown"
	}
}

// Error is the fatal-error type Remesh returns. OperatorRejected never
// reaches this far up -- it's handled locally as a mesh.RejectReason, and
// ResolutionNotReached/Cancelled are reported on Result.Status, not as errors.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("remesh: %s: %s", e.Kind, e.Msg)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
