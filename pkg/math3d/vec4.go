package math3d

import "github.com/taigrr/lantern/pkg/scalar"

// Vec4 represents a 4D vector (or homogeneous 3D point).
type Vec4[S scalar.Scalar[S]] struct {
	X, Y, Z, W S
}

// V4 creates a new Vec4.
func V4[S scalar.Scalar[S]](x, y, z, w S) Vec4[S] {
	return Vec4[S]{x, y, z, w}
}

// V4FromV3 creates a Vec4 from Vec3 with specified W.
func V4FromV3[S scalar.Scalar[S]](v Vec3[S], w S) Vec4[S] {
	return Vec4[S]{v.X, v.Y, v.Z, w}
}

// Vec3 returns the Vec3 portion (ignoring W).
func (v Vec4[S]) Vec3() Vec3[S] {
	return Vec3[S]{v.X, v.Y, v.Z}
}

// PerspectiveDivide returns Vec3 after dividing by W.
func (v Vec4[S]) PerspectiveDivide() Vec3[S] {
	if v.W.IsZero() {
		return v.Vec3()
	}
	r := v.W.Recip()
	return Vec3[S]{v.X.Mul(r), v.Y.Mul(r), v.Z.Mul(r)}
}

// Add returns the vector sum.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4[S]) Add(b Vec4[S]) Vec4[S] {
	return Vec4[S]{a.X.Add(b.X), a.Y.Add(b.Y), a.Z.Add(b.Z), a.W.Add(b.W)}
}

// Sub returns the vector difference.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4[S]) Sub(b Vec4[S]) Vec4[S] {
	return Vec4[S]{a.X.Sub(b.X), a.Y.Sub(b.Y), a.Z.Sub(b.Z), a.W.Sub(b.W)}
}

// Scale returns the scalar product.
func (v Vec4[S]) Scale(s S) Vec4[S] {
	return Vec4[S]{v.X.Mul(s), v.Y.Mul(s), v.Z.Mul(s), v.W.Mul(s)}
}

// Div divides every component by s.
func (v Vec4[S]) Div(s S) Vec4[S] {
	return Vec4[S]{v.X.Div(s), v.Y.Div(s), v.Z.Div(s), v.W.Div(s)}
}

// Dot returns the dot product.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vec4[S]) Dot(b Vec4[S]) S {
	return a.X.Mul(b.X).Add(a.Y.Mul(b.Y)).Add(a.Z.Mul(b.Z)).Add(a.W.Mul(b.W))
}

// Len returns the length.
func (v Vec4[S]) Len() S {
	s, r := rangeScale(v.X, v.Y, v.Z, v.W)
	v = v.Scale(s)
	return v.Dot(v).Sqrt().Mul(r)
}

// Normalize returns the unit vector, or zero for the zero vector.
func (v Vec4[S]) Normalize() Vec4[S] {
	if v.IsZero() {
		return v
	}
	s, _ := rangeScale(v.X, v.Y, v.Z, v.W)
	v = v.Scale(s)
	l := v.Dot(v).Sqrt()
	if l.IsZero() {
		return Vec4[S]{}
	}
	return v.Div(l)
}

// Negate returns the negated vector.
func (v Vec4[S]) Negate() Vec4[S] {
	return Vec4[S]{v.X.Neg(), v.Y.Neg(), v.Z.Neg(), v.W.Neg()}
}

// Lerp returns linear interpolation.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a Vec4[S]) Lerp(b Vec4[S], t S) Vec4[S] {
	return Vec4[S]{
		scalar.Lerp(a.X, b.X, t),
		scalar.Lerp(a.Y, b.Y, t),
		scalar.Lerp(a.Z, b.Z, t),
		scalar.Lerp(a.W, b.W, t),
	}
}

// IsZero reports whether every component is zero.
func (v Vec4[S]) IsZero() bool {
	return v.X.IsZero() && v.Y.IsZero() && v.Z.IsZero() && v.W.IsZero()
}

// Equals reports whether each component is within tol of b.
//
//nolint:st1016 // a,b naming convention is clearer for comparison
func (a Vec4[S]) Equals(b Vec4[S], tol S) bool {
	return near(a.X, b.X, tol) && near(a.Y, b.Y, tol) &&
		near(a.Z, b.Z, tol) && near(a.W, b.W, tol)
}

// AlmostEqual compares component-wise with [scalar.Scalar.AlmostEqual].
//
//nolint:st1016 // a,b naming convention is clearer for comparison
func (a Vec4[S]) AlmostEqual(b Vec4[S], bitsTol uint) bool {
	return a.X.AlmostEqual(b.X, bitsTol) && a.Y.AlmostEqual(b.Y, bitsTol) &&
		a.Z.AlmostEqual(b.Z, bitsTol) && a.W.AlmostEqual(b.W, bitsTol)
}
