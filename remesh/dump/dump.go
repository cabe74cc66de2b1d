// Package dump implements the diagnostic, compile-time-optional mesh dump
// utilities spec.md §1/§6 name as an external collaborator: cross-section
// rasters, a 3MF export of the complex boundary, and a DXF export of
// feature edges. None of these ever influence the mesh Remesh returns.
package dump

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Megidd/tetremesh/mesh"
)

// Dumper is invoked by the driver at phase boundaries (spec: "dumps are
// compile-time optional and invoked only at phase boundaries").
type Dumper interface {
	Dump(phase string, iteration int, m *mesh.Mesh) error
}

// DirDumper writes one set of dump files per call into Dir, named by phase
// and iteration. Any of the SVG, PNG, ThreeMF or DXF flags left false skips
// that format.
type DirDumper struct {
	Dir          string
	SVG          bool
	PNG          bool
	PNGSliceZ    float64
	ThreeMF      bool
	DXF          bool
}

// Dump implements Dumper.
func (d *DirDumper) Dump(phase string, iteration int, m *mesh.Mesh) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("dump: creating %s: %w", d.Dir, err)
	}
	base := fmt.Sprintf("%s-%03d", phase, iteration)

	if d.SVG {
		f, err := os.Create(filepath.Join(d.Dir, base+".svg"))
		if err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		defer f.Close()
		if err := WriteSVG(m, f); err != nil {
			return fmt.Errorf("dump: svg: %w", err)
		}
	}
	if d.PNG {
		path := filepath.Join(d.Dir, base+".png")
		if err := WriteCrossSectionPNG(m, d.PNGSliceZ, path, fmt.Sprintf("%s iter %d", phase, iteration)); err != nil {
			return fmt.Errorf("dump: png: %w", err)
		}
	}
	if d.ThreeMF {
		f, err := os.Create(filepath.Join(d.Dir, base+".3mf"))
		if err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		defer f.Close()
		if err := Write3MF(m, f); err != nil {
			return fmt.Errorf("dump: 3mf: %w", err)
		}
	}
	if d.DXF {
		path := filepath.Join(d.Dir, base+".dxf")
		if err := WriteDXF(m, path); err != nil {
			return fmt.Errorf("dump: dxf: %w", err)
		}
	}
	return nil
}
