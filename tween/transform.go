package tween

// Affine is a 2D affine transform laid out as
//
//	| A  B  0 |
//	| C  D  0 |
//	| TX TY 1 |
type Affine struct {
	A, B, C, D, TX, TY float64
}

// IdentityAffine is the transform that changes nothing.
var IdentityAffine = Affine{A: 1, D: 1}

// Tween interpolates every cell independently. This is not rotation aware: a
// tween between two rotations passes through a scaled, skewed matrix.
func (a Affine) Tween(end Affine, progress float64) Affine {
	return Affine{
		A:  Lerp(a.A, end.A, progress),
		B:  Lerp(a.B, end.B, progress),
		C:  Lerp(a.C, end.C, progress),
		D:  Lerp(a.D, end.D, progress),
		TX: Lerp(a.TX, end.TX, progress),
		TY: Lerp(a.TY, end.TY, progress),
	}
}

// Apply transforms a point.
func (a Affine) Apply(p Point) Point {
	return Point{
		X: a.A*p.X + a.C*p.Y + a.TX,
		Y: a.B*p.X + a.D*p.Y + a.TY,
	}
}

// Transform3D is a 4x4 projective transform in row-major order.
type Transform3D [4][4]float64

// Identity3D is the 4x4 identity matrix.
var Identity3D = Transform3D{
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
	{0, 0, 0, 1},
}

// Tween interpolates all sixteen cells independently.
func (m Transform3D) Tween(end Transform3D, progress float64) Transform3D {
	var out Transform3D
	for i := range m {
		for j := range m[i] {
			out[i][j] = Lerp(m[i][j], end[i][j], progress)
		}
	}
	return out
}
