// Package v3 provides 3D vector arithmetic shared by the mesh and remesh
// packages.
package v3

import "math"

// Vec is a point or direction in ℝ³.
type Vec struct {
	X, Y, Z float64
}

// Add returns a + b.
func (a Vec) Add(b Vec) Vec {
	return Vec{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a - b.
func (a Vec) Sub(b Vec) Vec {
	return Vec{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale returns a scaled by s.
func (a Vec) Scale(s float64) Vec {
	return Vec{a.X * s, a.Y * s, a.Z * s}
}

// Dot returns the dot product of a and b.
func (a Vec) Dot(b Vec) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec) Cross(b Vec) Vec {
	return Vec{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// SquaredLength returns |a|².
func (a Vec) SquaredLength() float64 {
	return a.Dot(a)
}

// Length returns |a|.
func (a Vec) Length() float64 {
	return math.Sqrt(a.SquaredLength())
}

// Normalize returns a unit vector in the direction of a.
// Returns the zero vector if a is (near) zero length.
func (a Vec) Normalize() Vec {
	l := a.Length()
	if l < 1e-18 {
		return Vec{}
	}
	return a.Scale(1 / l)
}

// Midpoint returns the midpoint of a and b.
func (a Vec) Midpoint(b Vec) Vec {
	return a.Add(b).Scale(0.5)
}

// Lerp returns the point a fraction t of the way from a to b.
func (a Vec) Lerp(b Vec, t float64) Vec {
	return a.Add(b.Sub(a).Scale(t))
}

// Centroid returns the average of the given points.
// Returns the zero vector for an empty slice.
func Centroid(pts []Vec) Vec {
	if len(pts) == 0 {
		return Vec{}
	}
	var sum Vec
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(pts)))
}

// Min returns the component-wise minimum of a and b.
func Min(a, b Vec) Vec {
	return Vec{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// Max returns the component-wise maximum of a and b.
func Max(a, b Vec) Vec {
	return Vec{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}
