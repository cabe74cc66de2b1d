package dump

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/llgcode/draw2d/draw2dimg"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Megidd/tetremesh/mesh"
)

// WriteCrossSectionPNG rasterizes a fixed-Z planar slice of the mesh,
// coloring each sliced cell's polygon by its quality (red = poor,
// green = good), and labels it with title.
func WriteCrossSectionPNG(m *mesh.Mesh, z float64, path string, title string) error {
	const w, h = 900, 900
	const margin = 40.0

	minX, minY, maxX, maxY := boundsXY(m)
	scale := 1.0
	if dx, dy := maxX-minX, maxY-minY; dx > 0 || dy > 0 {
		span := dx
		if dy > span {
			span = dy
		}
		if span > 0 {
			scale = (w - 2*margin) / span
		}
	}
	project := func(p mesh.Vec) (float64, float64) {
		x := margin + (p.X-minX)*scale
		y := h - margin - (p.Y-minY)*scale
		return x, y
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetFillColor(color.White)
	gc.MoveTo(0, 0)
	gc.LineTo(w, 0)
	gc.LineTo(w, h)
	gc.LineTo(0, h)
	gc.Close()
	gc.Fill()

	m.FiniteCells(func(c mesh.CellHandle) bool {
		poly, ok := slicePolygon(m, c, z)
		if !ok {
			return true
		}
		col := qualityColor(m.Quality(c))
		gc.SetFillColor(col)
		gc.SetStrokeColor(color.Black)
		gc.SetLineWidth(0.5)
		for i, p := range poly {
			x, y := project(p)
			if i == 0 {
				gc.MoveTo(x, y)
			} else {
				gc.LineTo(x, y)
			}
		}
		gc.Close()
		gc.FillStroke()
		return true
	})

	if err := drawLabel(img, title); err != nil {
		return err
	}

	return draw2dimg.SaveToPngFile(path, img)
}

// slicePolygon returns the convex polygon (cyclically ordered in the XY
// plane) where the plane z=z0 cuts cell c, or ok=false if the plane misses it.
func slicePolygon(m *mesh.Mesh, c mesh.CellHandle, z0 float64) ([]mesh.Vec, bool) {
	cell := m.Cell(c)
	var p [4]mesh.Vec
	for i, v := range cell.V {
		p[i] = m.Vertex(v).Pos
	}
	d := [4]float64{p[0].Z - z0, p[1].Z - z0, p[2].Z - z0, p[3].Z - z0}

	allSameSign := true
	for i := 1; i < 4; i++ {
		if (d[i] > 0) != (d[0] > 0) {
			allSameSign = false
			break
		}
	}
	if allSameSign {
		return nil, false
	}

	var pts []mesh.Vec
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if (d[i] > 0) == (d[j] > 0) {
				continue
			}
			t := d[i] / (d[i] - d[j])
			pts = append(pts, p[i].Lerp(p[j], t))
		}
	}
	if len(pts) < 3 {
		return nil, false
	}

	var cx, cy float64
	for _, pt := range pts {
		cx += pt.X
		cy += pt.Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))
	sort.Slice(pts, func(i, j int) bool {
		ai := math.Atan2(pts[i].Y-cy, pts[i].X-cx)
		aj := math.Atan2(pts[j].Y-cy, pts[j].X-cx)
		return ai < aj
	})
	return pts, true
}

func qualityColor(q float64) color.Color {
	const best = 1.2309594173407747 // regular tet's minimum dihedral angle
	t := q / best
	if t > 1 {
		t = 1
	}
	if t < 0 {
		t = 0
	}
	return color.RGBA{R: uint8(255 * (1 - t)), G: uint8(255 * t), B: 40, A: 255}
}

// drawLabel bakes title onto the top-left corner of img using freetype over
// the embedded Go regular face, the teacher's combination of draw2d (for
// the raster itself) and freetype (for any text on it).
func drawLabel(img *image.RGBA, title string) error {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("dump: parsing label font: %w", err)
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(14)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(color.Black))
	if _, err := ctx.DrawString(title, freetype.Pt(10, 20)); err != nil {
		return fmt.Errorf("dump: drawing label: %w", err)
	}
	return nil
}
