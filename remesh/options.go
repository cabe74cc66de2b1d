package remesh

import (
	"log"

	"github.com/Megidd/tetremesh/remesh/dump"
)

// Option configures observation-only behavior of Remesh: none of these
// change the output mesh (spec: "Observable compile-time toggles ...
// these never change the output mesh").
type Option func(*config)

type config struct {
	logger  *log.Logger
	dumper  dump.Dumper
	audit   bool
	verbose bool
	cancel  CancelFunc
}

func defaultConfig() *config {
	return &config{logger: log.Default()}
}

// WithVerbose turns on progress logging via the standard log package.
func WithVerbose(v bool) Option {
	return func(c *config) { c.verbose = v }
}

// WithLogger overrides the destination logger (default log.Default()).
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithDumper attaches a dump.Dumper invoked at phase boundaries.
func WithDumper(d dump.Dumper) Option {
	return func(c *config) { c.dumper = d }
}

// WithAudit turns on mesh.Mesh.Audit() calls after every phase (debug-build
// style); an unconditional audit still runs once on driver entry regardless
// of this option (release-build style, per spec §7).
func WithAudit(a bool) Option {
	return func(c *config) { c.audit = a }
}

// WithCancelFunc attaches a cooperative cancellation predicate, checked
// between driver phases (spec §5).
func WithCancelFunc(fn CancelFunc) Option {
	return func(c *config) { c.cancel = fn }
}
