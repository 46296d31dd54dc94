package math3d

import (
	"golang.org/x/image/math/f32"

	"github.com/taigrr/lantern/pkg/scalar"
)

// Mat4 is a 4x4 matrix stored in column-major order, the layout of glTF node
// matrices and of OpenGL. It multiplies column vectors (v' = M·v).
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
//
// The column-major array of an affine Mat4 holds the rows of the equivalent
// row-vector [Transform] in order, so the two convert without reshuffling.
type Mat4[S scalar.Scalar[S]] [16]S

// IdentityMat4 returns the identity matrix.
func IdentityMat4[S scalar.Scalar[S]]() Mat4[S] {
	one := scalar.One[S]()
	var m Mat4[S]
	m[0], m[5], m[10], m[15] = one, one, one, one
	return m
}

// Mat4FromFloat64s converts a column-major float64 array, such as a glTF
// node matrix.
func Mat4FromFloat64s[S scalar.Scalar[S]](a [16]float64) Mat4[S] {
	var m Mat4[S]
	for i, v := range a {
		m[i] = scalar.FromFloat[S](v)
	}
	return m
}

// LookAt creates a view matrix looking from eye towards center.
func LookAt[S scalar.Scalar[S]](eye, center, up Vec3[S]) Mat4[S] {
	f := center.Sub(eye).Normalize() // Forward
	s := f.Cross(up).Normalize()     // Right
	u := s.Cross(f)                  // Up (recomputed)

	var o S
	one := o.FromInt(1)
	return Mat4[S]{
		s.X, u.X, f.X.Neg(), o,
		s.Y, u.Y, f.Y.Neg(), o,
		s.Z, u.Z, f.Z.Neg(), o,
		s.Dot(eye).Neg(), u.Dot(eye).Neg(), f.Dot(eye), one,
	}
}

// Perspective creates a perspective projection matrix.
// fovy is vertical field of view in radians.
// aspect is width/height.
// near and far are clipping planes.
func Perspective[S scalar.Scalar[S]](fovy, aspect, near, far S) Mat4[S] {
	var o S
	one := o.FromInt(1)
	s, c := fovy.Mul(o.FromFloat(0.5)).SinCos()
	f := c.Div(s)
	nf := near.Sub(far).Recip()
	fn := far.Mul(near).Mul(nf)

	return Mat4[S]{
		f.Div(aspect), o, o, o,
		o, f, o, o,
		o, o, far.Add(near).Mul(nf), one.Neg(),
		o, o, fn.Add(fn), o,
	}
}

// Orthographic creates an orthographic projection matrix.
func Orthographic[S scalar.Scalar[S]](left, right, bottom, top, near, far S) Mat4[S] {
	var o S
	one := o.FromInt(1)
	rl := right.Sub(left).Recip()
	tb := top.Sub(bottom).Recip()
	fn := far.Sub(near).Recip()

	return Mat4[S]{
		rl.Add(rl), o, o, o,
		o, tb.Add(tb), o, o,
		o, o, fn.Add(fn).Neg(), o,
		right.Add(left).Mul(rl).Neg(), top.Add(bottom).Mul(tb).Neg(), far.Add(near).Mul(fn).Neg(), one,
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4[S]) Mul(b Mat4[S]) Mat4[S] {
	var m Mat4[S]
	for col := range 4 {
		for row := range 4 {
			var sum S
			for k := range 4 {
				sum = sum.Add(a[row+k*4].Mul(b[k+col*4]))
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulPoint transforms v as a point (w=1) and divides by the resulting w.
func (m Mat4[S]) MulPoint(v Vec3[S]) Vec3[S] {
	return m.MulVec4(V4FromV3(v, scalar.One[S]())).PerspectiveDivide()
}

// MulDir transforms v as a direction (w=0, no translation).
func (m Mat4[S]) MulDir(v Vec3[S]) Vec3[S] {
	return m.MulVec4(V4FromV3(v, scalar.Zero[S]())).Vec3()
}

// MulVec4 transforms a Vec4.
func (m Mat4[S]) MulVec4(v Vec4[S]) Vec4[S] {
	row := func(r int) S {
		return m[r].Mul(v.X).Add(m[r+4].Mul(v.Y)).Add(m[r+8].Mul(v.Z)).Add(m[r+12].Mul(v.W))
	}
	return Vec4[S]{row(0), row(1), row(2), row(3)}
}

// Transpose returns the transposed matrix.
func (m Mat4[S]) Transpose() Mat4[S] {
	var t Mat4[S]
	for row := range 4 {
		for col := range 4 {
			t[col+row*4] = m[row+col*4]
		}
	}
	return t
}

// Get returns the element at (row, col).
func (m Mat4[S]) Get(row, col int) S {
	return m[row+col*4]
}

// Set sets the element at (row, col).
func (m *Mat4[S]) Set(row, col int, val S) {
	m[row+col*4] = val
}

// Translation extracts the translation component.
func (m Mat4[S]) Translation() Vec3[S] {
	return Vec3[S]{m[12], m[13], m[14]}
}

// Affine returns the row-vector Transform of m, dropping the projective
// row.
func (m Mat4[S]) Affine() Transform[S] {
	var t Transform[S]
	for c := range 4 {
		for r := range 3 {
			t[c][r] = m[r+c*4]
		}
	}
	return t
}

// Float64s returns the column-major elements as float64.
func (m Mat4[S]) Float64s() [16]float64 {
	var a [16]float64
	for i, v := range m {
		a[i] = v.Float64()
	}
	return a
}

// F32 returns m as a row-major x/image f32.Mat4.
func (m Mat4[S]) F32() f32.Mat4 {
	var a f32.Mat4
	for row := range 4 {
		for col := range 4 {
			a[4*row+col] = m[row+col*4].Float32()
		}
	}
	return a
}

// Mat4 promotes m to a column-major 4x4 matrix for column vectors.
func (m Transform[S]) Mat4() Mat4[S] {
	var a Mat4[S]
	for c := range 4 {
		for r := range 3 {
			a[r+c*4] = m[c][r]
		}
	}
	a[15] = scalar.One[S]()
	return a
}
