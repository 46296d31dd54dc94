package math3d

import "github.com/taigrr/lantern/pkg/scalar"

// Transform is an affine transform stored as four rows of three. Rows 0-2
// hold the linear part and row 3 the translation; the implicit fourth column
// is (0, 0, 0, 1). Points are row vectors: p' = p·M.
//
// The element order is the interchange layout: Transform[r][c] is row r,
// column c, so it can be copied to and from files as 12 scalars.
type Transform[S scalar.Scalar[S]] [4][3]S

// IdentityTransform returns the identity transform.
func IdentityTransform[S scalar.Scalar[S]]() Transform[S] {
	one := scalar.One[S]()
	var m Transform[S]
	m[0][0], m[1][1], m[2][2] = one, one, one
	return m
}

// TransformFromRows builds a transform from three linear rows and a
// translation row.
func TransformFromRows[S scalar.Scalar[S]](r0, r1, r2, t Vec3[S]) Transform[S] {
	return Transform[S]{
		{r0.X, r0.Y, r0.Z},
		{r1.X, r1.Y, r1.Z},
		{r2.X, r2.Y, r2.Z},
		{t.X, t.Y, t.Z},
	}
}

// TransformFromFloat64s converts a row-major float64 array.
func TransformFromFloat64s[S scalar.Scalar[S]](a [4][3]float64) Transform[S] {
	var m Transform[S]
	for i := range 4 {
		for j := range 3 {
			m[i][j] = scalar.FromFloat[S](a[i][j])
		}
	}
	return m
}

// Translation returns a pure translation by v.
func Translation[S scalar.Scalar[S]](v Vec3[S]) Transform[S] {
	m := IdentityTransform[S]()
	m[3] = [3]S{v.X, v.Y, v.Z}
	return m
}

// Scaling returns a non-uniform scale by v.
func Scaling[S scalar.Scalar[S]](v Vec3[S]) Transform[S] {
	var m Transform[S]
	m[0][0], m[1][1], m[2][2] = v.X, v.Y, v.Z
	return m
}

// UniformScaling returns a scale by s on every axis.
func UniformScaling[S scalar.Scalar[S]](s S) Transform[S] {
	return Scaling(Splat3(s))
}

// TransformFromEuler builds scale, then Z-Y-X fixed-angle rotation in
// degrees, then translation.
func TransformFromEuler[S scalar.Scalar[S]](translation, degrees, scale Vec3[S]) Transform[S] {
	return Scaling(scale).ApplyEuler(degrees).WithTranslation(translation)
}

// Row returns row i.
func (m Transform[S]) Row(i int) Vec3[S] {
	return Vec3[S]{m[i][0], m[i][1], m[i][2]}
}

// IsIdentity reports whether m is exactly the identity.
func (m Transform[S]) IsIdentity() bool {
	return m == IdentityTransform[S]()
}

// IsZero reports whether every element is zero.
func (m Transform[S]) IsZero() bool {
	return m == Transform[S]{}
}

// Equals reports whether every element is within tol of o.
func (m Transform[S]) Equals(o Transform[S], tol S) bool {
	for i := range 4 {
		for j := range 3 {
			if !near(m[i][j], o[i][j], tol) {
				return false
			}
		}
	}
	return true
}

// Mul returns m·b: m is applied first, then b.
func (m Transform[S]) Mul(b Transform[S]) Transform[S] {
	switch {
	case b.IsIdentity():
		return m
	case m.IsIdentity():
		return b
	}

	var r Transform[S]
	for i := range 4 {
		for j := range 3 {
			sum := m[i][0].Mul(b[0][j]).Add(m[i][1].Mul(b[1][j])).Add(m[i][2].Mul(b[2][j]))
			if i == 3 {
				sum = sum.Add(b[3][j])
			}
			r[i][j] = sum
		}
	}
	return r
}

// MultRight returns m·b.
func (m Transform[S]) MultRight(b Transform[S]) Transform[S] {
	return m.Mul(b)
}

// MultLeft returns b·m.
func (m Transform[S]) MultLeft(b Transform[S]) Transform[S] {
	return b.Mul(m)
}

// MulPoint transforms a point given as a row vector.
func (m Transform[S]) MulPoint(v Vec3[S]) Vec3[S] {
	return m.MulDir(v).Add(m.Origin())
}

// MulDir transforms a direction, ignoring translation.
func (m Transform[S]) MulDir(v Vec3[S]) Vec3[S] {
	return Vec3[S]{
		v.X.Mul(m[0][0]).Add(v.Y.Mul(m[1][0])).Add(v.Z.Mul(m[2][0])),
		v.X.Mul(m[0][1]).Add(v.Y.Mul(m[1][1])).Add(v.Z.Mul(m[2][1])),
		v.X.Mul(m[0][2]).Add(v.Y.Mul(m[1][2])).Add(v.Z.Mul(m[2][2])),
	}
}

// MulColumn multiplies the linear part by v as a column vector.
func (m Transform[S]) MulColumn(v Vec3[S]) Vec3[S] {
	return Vec3[S]{m.Row(0).Dot(v), m.Row(1).Dot(v), m.Row(2).Dot(v)}
}

// MulVec4 multiplies a homogeneous row vector by the implicit 4x4 matrix.
func (m Transform[S]) MulVec4(v Vec4[S]) Vec4[S] {
	d := m.MulDir(v.Vec3()).Add(m.Origin().Scale(v.W))
	return V4FromV3(d, v.W)
}

// Det3 returns the determinant of the 3x3 matrix formed by rows r1, r2, r3.
func (m Transform[S]) Det3(r1, r2, r3 int) S {
	mm := func(a, b, c S) S { return a.Mul(b).Mul(c) }
	return mm(m[r1][0], m[r2][1], m[r3][2]).
		Add(mm(m[r1][1], m[r2][2], m[r3][0])).
		Add(mm(m[r1][2], m[r2][0], m[r3][1])).
		Sub(mm(m[r1][0], m[r2][2], m[r3][1])).
		Sub(mm(m[r1][1], m[r2][0], m[r3][2])).
		Sub(mm(m[r1][2], m[r2][1], m[r3][0]))
}

// Det returns the determinant of the linear part.
func (m Transform[S]) Det() S {
	return m.Det3(0, 1, 2)
}

// Transpose3 returns the transposed linear part with zero translation.
func (m Transform[S]) Transpose3() Transform[S] {
	var t Transform[S]
	for i := range 3 {
		for j := range 3 {
			t[i][j] = m[j][i]
		}
	}
	return t
}

// Linear returns m with its translation zeroed.
func (m Transform[S]) Linear() Transform[S] {
	m[3] = [3]S{}
	return m
}

// Origin returns the translation row.
func (m Transform[S]) Origin() Vec3[S] {
	return m.Row(3)
}

// WithTranslation returns m with its translation replaced by v.
func (m Transform[S]) WithTranslation(v Vec3[S]) Transform[S] {
	m[3] = [3]S{v.X, v.Y, v.Z}
	return m
}

// Translate returns m with v added to its translation.
func (m Transform[S]) Translate(v Vec3[S]) Transform[S] {
	return m.WithTranslation(m.Origin().Add(v))
}

// Scale returns the length of each linear row.
func (m Transform[S]) Scale() Vec3[S] {
	return Vec3[S]{m.Row(0).Len(), m.Row(1).Len(), m.Row(2).Len()}
}

// Rotation returns the quaternion of the linear part, which must be a
// rotation.
func (m Transform[S]) Rotation() Rotation[S] {
	return RotationFromTransform(m)
}

// Euler returns Z-Y-X fixed angles in degrees, each in [0, 360). Scale is
// removed by normalizing the rows first. Near gimbal lock the Z angle is
// folded into X.
func (m Transform[S]) Euler() Vec3[S] {
	var t [3]Vec3[S]
	for i := range t {
		t[i] = m.Row(i).Normalize()
	}

	var x, z S
	y := t[2].X.Asin()
	one := scalar.One[S]()
	if scalar.FromFloat[S](0.001).Less(t[2].X.Abs().Sub(one).Abs()) {
		x = t[2].Y.Neg().Atan2(t[2].Z)
		z = t[1].X.Neg().Atan2(t[0].X)
	} else {
		sy := t[0].Y
		if t[2].X.Sign() < 0 {
			sy = sy.Neg()
		}
		x = sy.Atan2(t[1].Y)
	}

	deg := Vec3[S]{scalar.Degrees(x), scalar.Degrees(y), scalar.Degrees(z)}
	full := scalar.FromInt[S](360)
	if deg.X.Sign() < 0 {
		deg.X = deg.X.Add(full)
	}
	if deg.Y.Sign() < 0 {
		deg.Y = deg.Y.Add(full)
	}
	if deg.Z.Sign() < 0 {
		deg.Z = deg.Z.Add(full)
	}
	return deg
}

// ApplyEuler returns m followed by rotations about Z, then Y, then X, by the
// given angles in degrees. Zero angles are skipped.
func (m Transform[S]) ApplyEuler(degrees Vec3[S]) Transform[S] {
	var o S
	one := o.FromInt(1)
	if !degrees.Z.IsZero() {
		s, c := scalar.Radians(degrees.Z).SinCos()
		m = m.Mul(Transform[S]{{c, s, o}, {s.Neg(), c, o}, {o, o, one}})
	}
	if !degrees.Y.IsZero() {
		s, c := scalar.Radians(degrees.Y).SinCos()
		m = m.Mul(Transform[S]{{c, o, s.Neg()}, {o, one, o}, {s, o, c}})
	}
	if !degrees.X.IsZero() {
		s, c := scalar.Radians(degrees.X).SinCos()
		m = m.Mul(Transform[S]{{one, o, o}, {o, c, s}, {o, s.Neg(), c}})
	}
	return m
}

// Inverse returns the inverse of m, treating it as a 4x4 matrix whose last
// column is (0, 0, 0, 1). When the linear part is singular relative to the
// magnitude of its terms, m is returned unchanged.
func (m Transform[S]) Inverse() Transform[S] {
	if m.IsIdentity() {
		return m
	}

	var pos, neg S
	acc := func(v S) {
		if v.Sign() >= 0 {
			pos = pos.Add(v)
		} else {
			neg = neg.Add(v)
		}
	}
	mm := func(a, b, c S) S { return a.Mul(b).Mul(c) }
	acc(mm(m[0][0], m[1][1], m[2][2]))
	acc(mm(m[0][1], m[1][2], m[2][0]))
	acc(mm(m[0][2], m[1][0], m[2][1]))
	acc(mm(m[0][2], m[1][1], m[2][0]).Neg())
	acc(mm(m[0][1], m[1][0], m[2][2]).Neg())
	acc(mm(m[0][0], m[1][2], m[2][1]).Neg())
	det := pos.Add(neg)

	// 0/0 is one, so an all-zero product set must be caught before the ratio.
	if det.IsZero() || det.Div(pos.Sub(neg)).Abs().Less(scalar.Threshold[S](1e-15)) {
		return m
	}

	inv := det.Recip()
	minor := func(a, b, c, d S) S { return a.Mul(b).Sub(c.Mul(d)).Mul(inv) }

	var r Transform[S]
	r[0][0] = minor(m[1][1], m[2][2], m[1][2], m[2][1])
	r[1][0] = minor(m[1][0], m[2][2], m[1][2], m[2][0]).Neg()
	r[2][0] = minor(m[1][0], m[2][1], m[1][1], m[2][0])
	r[0][1] = minor(m[0][1], m[2][2], m[0][2], m[2][1]).Neg()
	r[1][1] = minor(m[0][0], m[2][2], m[0][2], m[2][0])
	r[2][1] = minor(m[0][0], m[2][1], m[0][1], m[2][0]).Neg()
	r[0][2] = minor(m[0][1], m[1][2], m[0][2], m[1][1])
	r[1][2] = minor(m[0][0], m[1][2], m[0][2], m[1][0]).Neg()
	r[2][2] = minor(m[0][0], m[1][1], m[0][1], m[1][0])

	t := r.MulDir(m.Origin()).Negate()
	r[3] = [3]S{t.X, t.Y, t.Z}
	return r
}

// Float64s returns the elements as float64 in the same order.
func (m Transform[S]) Float64s() [4][3]float64 {
	var a [4][3]float64
	for i := range 4 {
		for j := range 3 {
			a[i][j] = m[i][j].Float64()
		}
	}
	return a
}
