package math3d

import "github.com/taigrr/lantern/pkg/scalar"

// Vec2 represents a 2D vector.
type Vec2[S scalar.Scalar[S]] struct {
	X, Y S
}

// V2 creates a new Vec2.
func V2[S scalar.Scalar[S]](x, y S) Vec2[S] {
	return Vec2[S]{x, y}
}

// V2f creates a Vec2 from float64 components.
func V2f[S scalar.Scalar[S]](x, y float64) Vec2[S] {
	return Vec2[S]{scalar.FromFloat[S](x), scalar.FromFloat[S](y)}
}

// Add returns the vector sum.
func (a Vec2[S]) Add(b Vec2[S]) Vec2[S] {
	return Vec2[S]{a.X.Add(b.X), a.Y.Add(b.Y)}
}

// Sub returns the vector difference.
func (a Vec2[S]) Sub(b Vec2[S]) Vec2[S] {
	return Vec2[S]{a.X.Sub(b.X), a.Y.Sub(b.Y)}
}

// Mul returns the component-wise product.
func (a Vec2[S]) Mul(b Vec2[S]) Vec2[S] {
	return Vec2[S]{a.X.Mul(b.X), a.Y.Mul(b.Y)}
}

// Scale returns the scalar product.
func (a Vec2[S]) Scale(s S) Vec2[S] {
	return Vec2[S]{a.X.Mul(s), a.Y.Mul(s)}
}

// Div returns the scalar division.
func (a Vec2[S]) Div(s S) Vec2[S] {
	return Vec2[S]{a.X.Div(s), a.Y.Div(s)}
}

// Dot returns the dot product.
func (a Vec2[S]) Dot(b Vec2[S]) S {
	return a.X.Mul(b.X).Add(a.Y.Mul(b.Y))
}

// Cross returns the z component of the 3D cross product of a and b.
func (a Vec2[S]) Cross(b Vec2[S]) S {
	return a.X.Mul(b.Y).Sub(a.Y.Mul(b.X))
}

// Len returns the length.
func (a Vec2[S]) Len() S {
	s, r := rangeScale(a.X, a.Y)
	return a.Scale(s).LenSq().Sqrt().Mul(r)
}

// LenSq returns the squared length.
func (a Vec2[S]) LenSq() S {
	return a.X.Square().Add(a.Y.Square())
}

// Normalize returns the unit vector, or zero for the zero vector.
func (a Vec2[S]) Normalize() Vec2[S] {
	if a.IsZero() {
		return a
	}
	s, _ := rangeScale(a.X, a.Y)
	a = a.Scale(s)
	l := a.LenSq().Sqrt()
	if l.IsZero() {
		return Vec2[S]{}
	}
	return a.Div(l)
}

// Negate returns the negated vector.
func (a Vec2[S]) Negate() Vec2[S] {
	return Vec2[S]{a.X.Neg(), a.Y.Neg()}
}

// Lerp returns linear interpolation.
func (a Vec2[S]) Lerp(b Vec2[S], t S) Vec2[S] {
	return Vec2[S]{scalar.Lerp(a.X, b.X, t), scalar.Lerp(a.Y, b.Y, t)}
}

// Distance returns the distance between two points.
func (a Vec2[S]) Distance(b Vec2[S]) S {
	return a.Sub(b).Len()
}

// Min returns the component-wise minimum.
func (a Vec2[S]) Min(b Vec2[S]) Vec2[S] {
	return Vec2[S]{scalar.Min(a.X, b.X), scalar.Min(a.Y, b.Y)}
}

// Max returns the component-wise maximum.
func (a Vec2[S]) Max(b Vec2[S]) Vec2[S] {
	return Vec2[S]{scalar.Max(a.X, b.X), scalar.Max(a.Y, b.Y)}
}

// Abs returns the component-wise absolute value.
func (a Vec2[S]) Abs() Vec2[S] {
	return Vec2[S]{a.X.Abs(), a.Y.Abs()}
}

// IsZero reports whether both components are zero.
func (a Vec2[S]) IsZero() bool {
	return a.X.IsZero() && a.Y.IsZero()
}

// Equals reports whether each component is within tol of b.
func (a Vec2[S]) Equals(b Vec2[S], tol S) bool {
	return near(a.X, b.X, tol) && near(a.Y, b.Y, tol)
}

// AlmostEqual compares component-wise with [scalar.Scalar.AlmostEqual].
func (a Vec2[S]) AlmostEqual(b Vec2[S], bitsTol uint) bool {
	return a.X.AlmostEqual(b.X, bitsTol) && a.Y.AlmostEqual(b.Y, bitsTol)
}
