package remesh

import (
	v3 "github.com/Megidd/tetremesh/vec/v3"

	"github.com/Megidd/tetremesh/mesh"
)

// Remesh is the exposed entry point spec §6 names: "remesh(triangulation,
// sizing, protect_boundaries, ecmap, cell_selector, max_iters) ->
// triangulation". It mutates m in place and returns the per-phase
// statistics; on return m holds the remeshed result regardless of status.
func Remesh(m *mesh.Mesh, sizing SizingFunc, protectBoundaries bool, ecmap ConstraintMap, selector CellSelector, maxIters int, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}

	if problems := m.Audit(); len(problems) > 0 {
		return nil, newError(InvalidInput, "triangulation fails validity audit on entry: %v", problems)
	}

	report, err := InitComplex(m, InitConfig{Selector: selector, ECMap: ecmap})
	if err != nil {
		return nil, newError(InvalidInput, "%v", err)
	}
	for _, w := range report.Warnings {
		cfg.logger.Printf("remesh: %s", w)
	}

	if err := AddImaginaryLayer(m); err != nil {
		return nil, newError(DegenerateGeometry, "adding imaginary layer: %v", err)
	}
	cfg.dump("preprocess", 0, m)

	lstar := sizing(v3.Vec{})
	emin := (4.0 / 5.0) * lstar
	emax := (4.0 / 3.0) * lstar

	result := &Result{InitReport: report}
	status := ResolutionNotReached

loop:
	for i := 1; i <= maxIters; i++ {
		result.Iterations = i

		splitStats := Split(m, emax, protectBoundaries)
		result.Split = append(result.Split, splitStats)
		cfg.verboseLog("split", i, splitStats)
		cfg.maybeAudit(m, "split", i)
		if cfg.cancel != nil && cfg.cancel() {
			status = Cancelled
			break loop
		}

		collapseStats := Collapse(m, emin, emax, protectBoundaries)
		result.Collapse = append(result.Collapse, collapseStats)
		cfg.verboseLog("collapse", i, collapseStats)
		cfg.maybeAudit(m, "collapse", i)
		if cfg.cancel != nil && cfg.cancel() {
			status = Cancelled
			break loop
		}

		flipStats := Flip(m)
		result.Flip = append(result.Flip, flipStats)
		cfg.verboseLog("flip", i, flipStats)
		cfg.maybeAudit(m, "flip", i)
		if cfg.cancel != nil && cfg.cancel() {
			status = Cancelled
			break loop
		}

		smoothStats := Smooth(m)
		result.Smooth = append(result.Smooth, smoothStats)
		cfg.verboseLog("smooth", i, smoothStats)
		cfg.maybeAudit(m, "smooth", i)

		cfg.dump("iteration", i, m)

		if resolutionMet(m, emin*emin, emax*emax) {
			status = OK
			break
		}
		if cfg.cancel != nil && cfg.cancel() {
			status = Cancelled
			break
		}
	}

	RemoveImaginaryFromComplex(m)
	cfg.dump("postprocess", 0, m)

	result.Status = status
	result.FinalEdgeStats = CollectEdgeLengthStats(m)
	if cfg.verbose {
		s := result.FinalEdgeStats
		cfg.logger.Printf("remesh: done after %d iterations, status=%s, edge length mean=%.4g stddev=%.4g (n=%d)", result.Iterations, status, s.Mean, s.StdDev, s.Count)
	}
	return result, nil
}

// resolutionMet reports spec §4.8's length criterion: every finite edge
// that is neither complex, on a complex facet, nor incident to an
// imaginary cell has squared length in [emin2, emax2].
func resolutionMet(m *mesh.Mesh, emin2, emax2 float64) bool {
	met := true
	m.FiniteEdges(func(ek mesh.EdgeKey) bool {
		if m.IsComplexEdge(ek[0], ek[1]) || isOnComplexFacet(m, ek) || edgeTouchesImaginary(m, ek) {
			return true
		}
		sq := m.SquaredLength(ek)
		if sq < emin2 || sq > emax2 {
			met = false
			return false
		}
		return true
	})
	return met
}

func edgeTouchesImaginary(m *mesh.Mesh, ek mesh.EdgeKey) bool {
	ring, _, ok := m.EdgeRing(ek[0], ek[1])
	if !ok {
		return false
	}
	for _, c := range ring {
		if m.IsInfiniteCell(c) {
			continue
		}
		if m.Cell(c).Subdomain == m.ImaginaryIndex {
			return true
		}
	}
	return false
}

func (c *config) verboseLog(phase string, iter int, s OpStats) {
	if !c.verbose {
		return
	}
	c.logger.Printf("remesh: iter %d %s: attempted=%d accepted=%d rejected=%v", iter, phase, s.Attempted, s.Accepted, s.Rejected)
}

func (c *config) maybeAudit(m *mesh.Mesh, phase string, iter int) {
	if !c.audit {
		return
	}
	if problems := m.Audit(); len(problems) > 0 {
		c.logger.Printf("remesh: audit failed after %s (iter %d): %v", phase, iter, problems)
	}
}

func (c *config) dump(phase string, iter int, m *mesh.Mesh) {
	if c.dumper == nil {
		return
	}
	if err := c.dumper.Dump(phase, iter, m); err != nil {
		c.logger.Printf("remesh: dump %s/%d failed: %v", phase, iter, err)
	}
}
