package v3

import "testing"

func almostEqual(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestAddSub(t *testing.T) {
	a := Vec{1, 2, 3}
	b := Vec{4, 5, 6}
	if got := a.Add(b); got != (Vec{5, 7, 9}) {
		t.Errorf("Add: got %v", got)
	}
	if got := b.Sub(a); got != (Vec{3, 3, 3}) {
		t.Errorf("Sub: got %v", got)
	}
}

func TestCross(t *testing.T) {
	x := Vec{1, 0, 0}
	y := Vec{0, 1, 0}
	got := x.Cross(y)
	if got != (Vec{0, 0, 1}) {
		t.Errorf("Cross: got %v, want {0 0 1}", got)
	}
}

func TestLength(t *testing.T) {
	v := Vec{3, 4, 0}
	if !almostEqual(v.Length(), 5, 1e-9) {
		t.Errorf("Length: got %v, want 5", v.Length())
	}
	if !almostEqual(v.SquaredLength(), 25, 1e-9) {
		t.Errorf("SquaredLength: got %v, want 25", v.SquaredLength())
	}
}

func TestNormalize(t *testing.T) {
	v := Vec{0, 0, 5}.Normalize()
	if !almostEqual(v.Length(), 1, 1e-9) {
		t.Errorf("Normalize: got length %v, want 1", v.Length())
	}
	z := Vec{}.Normalize()
	if z != (Vec{}) {
		t.Errorf("Normalize of zero vector: got %v, want zero", z)
	}
}

func TestMidpointLerp(t *testing.T) {
	a := Vec{0, 0, 0}
	b := Vec{2, 4, 6}
	if got := a.Midpoint(b); got != (Vec{1, 2, 3}) {
		t.Errorf("Midpoint: got %v", got)
	}
	if got := a.Lerp(b, 0.25); got != (Vec{0.5, 1, 1.5}) {
		t.Errorf("Lerp: got %v", got)
	}
}

func TestCentroid(t *testing.T) {
	pts := []Vec{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}, {0, 0, 2}}
	got := Centroid(pts)
	want := Vec{0.5, 0.5, 0.5}
	if got != want {
		t.Errorf("Centroid: got %v, want %v", got, want)
	}
	if got := Centroid(nil); got != (Vec{}) {
		t.Errorf("Centroid(nil): got %v", got)
	}
}
