package mesh

import "math"

// Kernel is the external geometric-predicate collaborator spec §6 names
// ("geometric kernel"): orientation and in-sphere tests, kept behind an
// interface so an exact-arithmetic kernel can replace the floating point
// default without touching any operator.
type Kernel interface {
	// Orientation returns the sign of the signed volume of (p0,p1,p2,p3):
	// +1 positive, -1 negative, 0 degenerate/coplanar.
	Orientation(p0, p1, p2, p3 Vec) int
	// InSphere returns +1 if p is inside the circumsphere of (p0,p1,p2,p3)
	// (assumed positively oriented), -1 if outside, 0 if on it.
	InSphere(p0, p1, p2, p3, p Vec) int
}

// DefaultKernel is a plain floating point implementation of Kernel. It is
// not exact (no symbolic perturbation, no adaptive precision) -- spec §1
// explicitly places exact predicates out of this core's scope and names
// them as an external collaborator.
type DefaultKernel struct{}

// SignedVolume6 returns six times the signed volume of tetrahedron
// (p0,p1,p2,p3), i.e. (p1-p0)·((p2-p0)×(p3-p0)).
func SignedVolume6(p0, p1, p2, p3 Vec) float64 {
	a := p1.Sub(p0)
	b := p2.Sub(p0)
	c := p3.Sub(p0)
	return a.Dot(b.Cross(c))
}

// Orientation implements Kernel.
func (DefaultKernel) Orientation(p0, p1, p2, p3 Vec) int {
	v := SignedVolume6(p0, p1, p2, p3)
	switch {
	case v > epsilon:
		return 1
	case v < -epsilon:
		return -1
	default:
		return 0
	}
}

// InSphere implements Kernel using the standard 4x4-minor expansion of the
// lifted-paraboloid determinant.
func (DefaultKernel) InSphere(p0, p1, p2, p3, p Vec) int {
	// Orient (p0,p1,p2,p3) positively first; for a positively oriented tet
	// the determinant below is negative when p is inside the circumsphere.
	if SignedVolume6(p0, p1, p2, p3) < 0 {
		p0, p1 = p1, p0
	}
	rows := [5]Vec{p0, p1, p2, p3, p}
	// Build the 5x4 matrix [x,y,z,x^2+y^2+z^2] and take the determinant of
	// the 4x4 obtained by subtracting row 4 (p) from rows 0..3, then
	// evaluating the 3x3 cofactor expansion -- the classical in-sphere trick.
	var m [4][4]float64
	for i, r := range rows[:4] {
		m[i][0] = r.X - p.X
		m[i][1] = r.Y - p.Y
		m[i][2] = r.Z - p.Z
		m[i][3] = m[i][0]*m[i][0] + m[i][1]*m[i][1] + m[i][2]*m[i][2]
	}
	det := det4(m)
	val := -det
	switch {
	case val > epsilon:
		return 1
	case val < -epsilon:
		return -1
	default:
		return 0
	}
}

func det3(a, b, c, d, e, f, g, h, i float64) float64 {
	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}

func det4(m [4][4]float64) float64 {
	// Cofactor expansion along the last column.
	minor := func(skipRow int) float64 {
		var r [3][3]float64
		ri := 0
		for i := 0; i < 4; i++ {
			if i == skipRow {
				continue
			}
			r[ri] = [3]float64{m[i][0], m[i][1], m[i][2]}
			ri++
		}
		return det3(r[0][0], r[0][1], r[0][2], r[1][0], r[1][1], r[1][2], r[2][0], r[2][1], r[2][2])
	}
	return -m[0][3]*minor(0) + m[1][3]*minor(1) - m[2][3]*minor(2) + m[3][3]*minor(3)
}

const epsilon = 1e-12

// SquaredLength returns the squared Euclidean length of edge ek's endpoints.
func (m *Mesh) SquaredLength(ek EdgeKey) float64 {
	a := m.Vertex(ek[0]).Pos
	b := m.Vertex(ek[1]).Pos
	return a.Sub(b).SquaredLength()
}

// SquaredLengthOf is SquaredLength for two vertex handles directly.
func (m *Mesh) SquaredLengthOf(a, b VertexHandle) float64 {
	return m.Vertex(a).Pos.Sub(m.Vertex(b).Pos).SquaredLength()
}

// SignedVolume returns the signed volume of a finite cell (positive iff
// the cell satisfies the orientation invariant).
func (m *Mesh) SignedVolume(c CellHandle) float64 {
	cell := m.Cell(c)
	p := [4]Vec{}
	for i, v := range cell.V {
		p[i] = m.Vertex(v).Pos
	}
	return SignedVolume6(p[0], p[1], p[2], p[3]) / 6
}

// faceOutwardNormal returns the outward normal of the face opposite local
// index i of a positively oriented cell (unnormalized).
func faceOutwardNormal(p [4]Vec, i int) Vec {
	var idx [3]int
	k := 0
	for l := 0; l < 4; l++ {
		if l != i {
			idx[k] = l
			k++
		}
	}
	n := p[idx[1]].Sub(p[idx[0]]).Cross(p[idx[2]].Sub(p[idx[0]]))
	if i%2 == 1 {
		n = n.Scale(-1)
	}
	return n
}

// Quality returns the minimum dihedral angle (radians) of a finite cell,
// the metric spec §9 recommends for flip acceptance. Cells with
// non-positive signed volume (degenerate or inverted) return 0.
func (m *Mesh) Quality(c CellHandle) float64 {
	cell := m.Cell(c)
	var p [4]Vec
	for i, v := range cell.V {
		p[i] = m.Vertex(v).Pos
	}
	return CellQuality(p)
}

// CellQuality computes the minimum-dihedral-angle quality of a tet given
// directly as four positions, for use where no live cell handle exists yet
// (e.g. evaluating a candidate flip before committing it).
func CellQuality(p [4]Vec) float64 {
	if SignedVolume6(p[0], p[1], p[2], p[3]) <= 0 {
		return 0
	}
	var normals [4]Vec
	for i := 0; i < 4; i++ {
		normals[i] = faceOutwardNormal(p, i).Normalize()
	}
	min := math.Inf(1)
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			k, l := VertexTripleIndex(i, j)
			nk, nl := normals[k], normals[l]
			cosTheta := -nk.Dot(nl)
			if cosTheta > 1 {
				cosTheta = 1
			}
			if cosTheta < -1 {
				cosTheta = -1
			}
			theta := math.Acos(cosTheta)
			if theta < min {
				min = theta
			}
		}
	}
	return min
}
