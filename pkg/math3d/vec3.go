// Package math3d provides vectors, quaternion rotations and affine transforms
// written once against [scalar.Scalar] and usable with any backend.
//
// Conventions: vectors are rows and multiply transforms from the left
// (v' = v·M), so the translation of a [Transform] lives in row 3. A rotation
// composed as a.Mul(b) applies a first, then b.
package math3d

import "github.com/taigrr/lantern/pkg/scalar"

// Vec3 represents a 3D vector.
type Vec3[S scalar.Scalar[S]] struct {
	X, Y, Z S
}

// V3 creates a new Vec3.
func V3[S scalar.Scalar[S]](x, y, z S) Vec3[S] {
	return Vec3[S]{x, y, z}
}

// V3f creates a Vec3 from float64 components.
func V3f[S scalar.Scalar[S]](x, y, z float64) Vec3[S] {
	f := scalar.FromFloat[S]
	return Vec3[S]{f(x), f(y), f(z)}
}

// UnitX returns (1, 0, 0).
func UnitX[S scalar.Scalar[S]]() Vec3[S] {
	return Vec3[S]{X: scalar.One[S]()}
}

// UnitY returns (0, 1, 0).
func UnitY[S scalar.Scalar[S]]() Vec3[S] {
	return Vec3[S]{Y: scalar.One[S]()}
}

// UnitZ returns (0, 0, 1).
func UnitZ[S scalar.Scalar[S]]() Vec3[S] {
	return Vec3[S]{Z: scalar.One[S]()}
}

// Splat3 returns (s, s, s).
func Splat3[S scalar.Scalar[S]](s S) Vec3[S] {
	return Vec3[S]{s, s, s}
}

// Add returns the vector sum a + b.
func (a Vec3[S]) Add(b Vec3[S]) Vec3[S] {
	return Vec3[S]{a.X.Add(b.X), a.Y.Add(b.Y), a.Z.Add(b.Z)}
}

// Sub returns the vector difference a - b.
func (a Vec3[S]) Sub(b Vec3[S]) Vec3[S] {
	return Vec3[S]{a.X.Sub(b.X), a.Y.Sub(b.Y), a.Z.Sub(b.Z)}
}

// Mul returns the component-wise product a * b.
func (a Vec3[S]) Mul(b Vec3[S]) Vec3[S] {
	return Vec3[S]{a.X.Mul(b.X), a.Y.Mul(b.Y), a.Z.Mul(b.Z)}
}

// Scale returns the scalar product a * s.
func (a Vec3[S]) Scale(s S) Vec3[S] {
	return Vec3[S]{a.X.Mul(s), a.Y.Mul(s), a.Z.Mul(s)}
}

// Div returns the scalar division a / s.
func (a Vec3[S]) Div(s S) Vec3[S] {
	return Vec3[S]{a.X.Div(s), a.Y.Div(s), a.Z.Div(s)}
}

// Dot returns the dot product a · b.
func (a Vec3[S]) Dot(b Vec3[S]) S {
	return a.X.Mul(b.X).Add(a.Y.Mul(b.Y)).Add(a.Z.Mul(b.Z))
}

// Cross returns the right-handed cross product a × b.
func (a Vec3[S]) Cross(b Vec3[S]) Vec3[S] {
	return Vec3[S]{
		a.Y.Mul(b.Z).Sub(a.Z.Mul(b.Y)),
		a.Z.Mul(b.X).Sub(a.X.Mul(b.Z)),
		a.X.Mul(b.Y).Sub(a.Y.Mul(b.X)),
	}
}

// Len returns the length of the vector. The components are brought into a
// range where squaring neither overflows nor underflows in fixed point.
func (a Vec3[S]) Len() S {
	s, r := rangeScale(a.X, a.Y, a.Z)
	return a.Scale(s).LenSq().Sqrt().Mul(r)
}

// LenSq returns the squared length. It can saturate in fixed point for
// components above ~181 (radix 16).
func (a Vec3[S]) LenSq() S {
	return a.X.Square().Add(a.Y.Square()).Add(a.Z.Square())
}

// Normalize returns the unit vector in the same direction, or the zero
// vector when a has no length.
func (a Vec3[S]) Normalize() Vec3[S] {
	if a.IsZero() {
		return a
	}
	s, _ := rangeScale(a.X, a.Y, a.Z)
	a = a.Scale(s)
	l := a.LenSq().Sqrt()
	if l.IsZero() {
		return Vec3[S]{}
	}
	return a.Div(l)
}

// Negate returns the negated vector.
func (a Vec3[S]) Negate() Vec3[S] {
	return Vec3[S]{a.X.Neg(), a.Y.Neg(), a.Z.Neg()}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec3[S]) Lerp(b Vec3[S], t S) Vec3[S] {
	return Vec3[S]{
		scalar.Lerp(a.X, b.X, t),
		scalar.Lerp(a.Y, b.Y, t),
		scalar.Lerp(a.Z, b.Z, t),
	}
}

// Distance returns the distance between two points.
func (a Vec3[S]) Distance(b Vec3[S]) S {
	return a.Sub(b).Len()
}

// Reflect returns the reflection of a around normal n.
func (a Vec3[S]) Reflect(n Vec3[S]) Vec3[S] {
	d := a.Dot(n)
	return a.Sub(n.Scale(d.Add(d)))
}

// Min returns the component-wise minimum.
func (a Vec3[S]) Min(b Vec3[S]) Vec3[S] {
	return Vec3[S]{scalar.Min(a.X, b.X), scalar.Min(a.Y, b.Y), scalar.Min(a.Z, b.Z)}
}

// Max returns the component-wise maximum.
func (a Vec3[S]) Max(b Vec3[S]) Vec3[S] {
	return Vec3[S]{scalar.Max(a.X, b.X), scalar.Max(a.Y, b.Y), scalar.Max(a.Z, b.Z)}
}

// Abs returns the component-wise absolute value.
func (a Vec3[S]) Abs() Vec3[S] {
	return Vec3[S]{a.X.Abs(), a.Y.Abs(), a.Z.Abs()}
}

// Floor returns the component-wise floor.
func (a Vec3[S]) Floor() Vec3[S] {
	return Vec3[S]{a.X.Floor(), a.Y.Floor(), a.Z.Floor()}
}

// Ceil returns the component-wise ceiling.
func (a Vec3[S]) Ceil() Vec3[S] {
	return Vec3[S]{a.X.Ceil(), a.Y.Ceil(), a.Z.Ceil()}
}

// IsZero reports whether every component is exactly zero.
func (a Vec3[S]) IsZero() bool {
	return a.X.IsZero() && a.Y.IsZero() && a.Z.IsZero()
}

// Equals reports whether every component of a is within tol of b.
func (a Vec3[S]) Equals(b Vec3[S], tol S) bool {
	return near(a.X, b.X, tol) && near(a.Y, b.Y, tol) && near(a.Z, b.Z, tol)
}

// AlmostEqual compares component-wise with [scalar.Scalar.AlmostEqual].
func (a Vec3[S]) AlmostEqual(b Vec3[S], bitsTol uint) bool {
	return a.X.AlmostEqual(b.X, bitsTol) &&
		a.Y.AlmostEqual(b.Y, bitsTol) &&
		a.Z.AlmostEqual(b.Z, bitsTol)
}

// Elem returns component i (0, 1 or 2).
func (a Vec3[S]) Elem(i int) S {
	switch i {
	case 0:
		return a.X
	case 1:
		return a.Y
	}
	return a.Z
}

// Float64s returns the components as float64.
func (a Vec3[S]) Float64s() [3]float64 {
	return [3]float64{a.X.Float64(), a.Y.Float64(), a.Z.Float64()}
}

func near[S scalar.Scalar[S]](a, b, tol S) bool {
	return !tol.Less(a.Sub(b).Abs())
}

// rangeScale returns a power-of-64 factor that moves the largest magnitude
// in vs into [1, 64], and its reciprocal. Factors whose reciprocal would
// vanish in the representation are not used.
func rangeScale[S scalar.Scalar[S]](vs ...S) (scale, recip S) {
	one := scalar.One[S]()
	k := scalar.FromInt[S](64)
	ik := k.Recip()
	scale, recip = one, one

	var mx S
	for _, v := range vs {
		mx = scalar.Max(mx, v.Abs())
	}
	if mx.IsZero() {
		return scale, recip
	}

	for k.Less(mx) {
		mx = mx.Mul(ik)
		scale = scale.Mul(ik)
		recip = recip.Mul(k)
	}
	for mx.Less(one) {
		next := recip.Mul(ik)
		if next.IsZero() {
			break
		}
		mx = mx.Mul(k)
		scale = scale.Mul(k)
		recip = next
	}
	return scale, recip
}
