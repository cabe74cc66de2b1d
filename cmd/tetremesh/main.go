//-----------------------------------------------------------------------------
/*

Remesh a tetrahedral mesh read from a plain-text node/element file to a
target edge length and write the result as an ABAQUS/CalculiX `inp` file.

*/
//-----------------------------------------------------------------------------

package main

import (
	"flag"
	"log"

	"github.com/Megidd/tetremesh/mesh"
	"github.com/Megidd/tetremesh/meshio"
	"github.com/Megidd/tetremesh/remesh"
	"github.com/Megidd/tetremesh/remesh/dump"
	v3 "github.com/Megidd/tetremesh/vec/v3"
)

//-----------------------------------------------------------------------------

func selectAllSubdomains(m *mesh.Mesh, c mesh.CellHandle) bool {
	return m.Cell(c).Subdomain >= 0
}

// noConstraints treats no edge as feature-constrained, leaving classification
// to the boundary/corner rules InitComplex derives from the input mesh alone.
type noConstraints struct{}

func (noConstraints) IsConstrained(a, b mesh.VertexHandle) bool { return false }

//-----------------------------------------------------------------------------

func main() {
	in := flag.String("in", "", "input node/element mesh file")
	out := flag.String("out", "remeshed.inp", "output inp file")
	target := flag.Float64("target", 1.0, "target edge length")
	protect := flag.Bool("protect-boundaries", true, "protect boundary/feature edges from collapse")
	maxIters := flag.Int("max-iters", 10, "maximum remeshing iterations")
	verbose := flag.Bool("v", false, "log progress after every phase")
	dumpDir := flag.String("dump", "", "directory for diagnostic SVG/3MF/DXF dumps (empty disables dumping)")
	flag.Parse()

	if *in == "" {
		log.Fatalf("error: -in is required")
	}

	m, err := meshio.ReadInitialMesh(*in)
	if err != nil {
		log.Fatalf("error: reading %s: %s", *in, err)
	}

	sizing := func(p v3.Vec) float64 { return *target }

	var opts []remesh.Option
	opts = append(opts, remesh.WithVerbose(*verbose))
	if *dumpDir != "" {
		opts = append(opts, remesh.WithDumper(&dump.DirDumper{
			Dir: *dumpDir, SVG: true, ThreeMF: true, DXF: true,
		}))
	}

	result, err := remesh.Remesh(m, sizing, *protect, noConstraints{}, selectAllSubdomains, *maxIters, opts...)
	if err != nil {
		log.Fatalf("error: remeshing: %s", err)
	}
	log.Printf("remesh: status=%s iterations=%d", result.Status, result.Iterations)

	if err := meshio.WriteInp(m, *out); err != nil {
		log.Fatalf("error: writing %s: %s", *out, err)
	}
}

//-----------------------------------------------------------------------------
