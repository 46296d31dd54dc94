package math3d

import (
	"fmt"

	"github.com/taigrr/lantern/pkg/scalar"
)

// Rotation is a unit quaternion (x, y, z, w). It is immutable: every
// constructor and product returns a renormalized value.
type Rotation[S scalar.Scalar[S]] struct {
	x, y, z, w S
}

// IdentityRotation returns the rotation that leaves vectors unchanged.
func IdentityRotation[S scalar.Scalar[S]]() Rotation[S] {
	return Rotation[S]{w: scalar.One[S]()}
}

// RotationFromQuat builds a rotation from quaternion components,
// normalizing them. A zero quaternion yields the identity.
func RotationFromQuat[S scalar.Scalar[S]](x, y, z, w S) Rotation[S] {
	return Rotation[S]{x, y, z, w}.normalize()
}

// RotationFromAxisAngle rotates by radians about axis.
func RotationFromAxisAngle[S scalar.Scalar[S]](axis Vec3[S], radians S) Rotation[S] {
	s, c := radians.Mul(scalar.Half[S]()).SinCos()
	q := axis.Normalize().Scale(s)
	return RotationFromQuat(q.X, q.Y, q.Z, c)
}

// RotationFromTransform extracts the rotation from the linear part of m,
// which must be a rotation matrix. An all-zero matrix yields the identity.
func RotationFromTransform[S scalar.Scalar[S]](m Transform[S]) Rotation[S] {
	if m.IsZero() {
		return IdentityRotation[S]()
	}

	// Start from the largest of w, x, y, z so the divisions stay well
	// conditioned.
	var i int
	if m[1][1].Less(m[0][0]) {
		if m[2][2].Less(m[0][0]) {
			i = 0
		} else {
			i = 2
		}
	} else {
		if m[2][2].Less(m[1][1]) {
			i = 1
		} else {
			i = 2
		}
	}

	one := scalar.One[S]()
	half := scalar.Half[S]()
	four := scalar.FromInt[S](4)
	trace := m[0][0].Add(m[1][1]).Add(m[2][2])

	var q [4]S
	if m[i][i].Less(trace) {
		q[3] = trace.Add(one).Sqrt().Mul(half)
		d := four.Mul(q[3])
		q[0] = m[1][2].Sub(m[2][1]).Div(d)
		q[1] = m[2][0].Sub(m[0][2]).Div(d)
		q[2] = m[0][1].Sub(m[1][0]).Div(d)
	} else {
		j, k := (i+1)%3, (i+2)%3
		q[i] = m[i][i].Sub(m[j][j]).Sub(m[k][k]).Add(one).Sqrt().Mul(half)
		d := four.Mul(q[i])
		q[j] = m[i][j].Add(m[j][i]).Div(d)
		q[k] = m[i][k].Add(m[k][i]).Div(d)
		q[3] = m[j][k].Sub(m[k][j]).Div(d)
	}
	return RotationFromQuat(q[0], q[1], q[2], q[3])
}

// RotationBetween returns the rotation that turns direction from onto
// direction to. Nearly parallel inputs give the identity; nearly opposite
// inputs give a half turn about an axis perpendicular to from.
func RotationBetween[S scalar.Scalar[S]](from, to Vec3[S]) Rotation[S] {
	from = from.Normalize()
	to = to.Normalize()
	cost := from.Dot(to)
	cross := from.Cross(to)

	// 0.99999, or one unit below 1 where that rounds to 1. A zero cross
	// product settles inputs that normalization left just inside the limit.
	limit := scalar.One[S]().Sub(scalar.Threshold[S](0.00001))
	switch {
	case limit.Less(cost), cross.IsZero() && cost.Sign() > 0:
		return IdentityRotation[S]()
	case cost.Less(limit.Neg()), cross.IsZero():
		axis := from.Cross(UnitX[S]())
		if axis.Len().Less(scalar.Threshold[S](0.00001)) {
			axis = from.Cross(UnitY[S]())
		}
		axis = axis.Normalize()
		return RotationFromQuat(axis.X, axis.Y, axis.Z, scalar.Zero[S]())
	}

	one := scalar.One[S]()
	half := scalar.Half[S]()
	// Half-angle identities: sin²(t/2) = (1-cos t)/2, cos²(t/2) = (1+cos t)/2.
	axis := cross.Normalize().Scale(half.Mul(one.Sub(cost)).Sqrt())
	w := half.Mul(one.Add(cost)).Sqrt()
	return RotationFromQuat(axis.X, axis.Y, axis.Z, w)
}

// Quat returns the quaternion components as (x, y, z, w).
func (r Rotation[S]) Quat() Vec4[S] {
	return Vec4[S]{r.x, r.y, r.z, r.w}
}

// Mul returns the rotation that applies r, then b.
func (r Rotation[S]) Mul(b Rotation[S]) Rotation[S] {
	dot4 := func(a0, b0, a1, b1, a2, b2, a3, b3 S) S {
		return a0.Mul(b0).Add(a1.Mul(b1)).Add(a2.Mul(b2)).Add(a3.Mul(b3))
	}
	return RotationFromQuat(
		dot4(b.w, r.x, b.x, r.w, b.y, r.z, b.z.Neg(), r.y),
		dot4(b.w, r.y, b.y, r.w, b.z, r.x, b.x.Neg(), r.z),
		dot4(b.w, r.z, b.z, r.w, b.x, r.y, b.y.Neg(), r.x),
		dot4(b.w, r.w, b.x.Neg(), r.x, b.y.Neg(), r.y, b.z.Neg(), r.z),
	)
}

// Transform returns the rotation matrix with zero translation.
func (r Rotation[S]) Transform() Transform[S] {
	one := scalar.One[S]()
	two := func(a, b, c, d S) S {
		s := a.Mul(b).Add(c.Mul(d))
		return s.Add(s)
	}
	x, y, z, w := r.x, r.y, r.z, r.w

	var m Transform[S]
	m[0][0] = one.Sub(two(y, y, z, z))
	m[0][1] = two(x, y, z, w)
	m[0][2] = two(z, x, y.Neg(), w)
	m[1][0] = two(x, y, z.Neg(), w)
	m[1][1] = one.Sub(two(z, z, x, x))
	m[1][2] = two(y, z, x, w)
	m[2][0] = two(z, x, y, w)
	m[2][1] = two(y, z, x.Neg(), w)
	m[2][2] = one.Sub(two(y, y, x, x))
	return m
}

// RotateVec rotates v.
func (r Rotation[S]) RotateVec(v Vec3[S]) Vec3[S] {
	return r.Transform().MulDir(v)
}

// AxisAngle returns the rotation axis and angle in radians. A rotation too
// small to define an axis reports (0, 0, 1) and 0.
func (r Rotation[S]) AxisAngle() (Vec3[S], S) {
	v := Vec3[S]{r.x, r.y, r.z}
	l := v.Len()
	if !scalar.Threshold[S](0.00001).Less(l) {
		return UnitZ[S](), scalar.Zero[S]()
	}
	a := r.w.Acos()
	return v.Div(l), a.Add(a)
}

// ScaleAngle keeps the axis and multiplies the angle by s.
func (r Rotation[S]) ScaleAngle(s S) Rotation[S] {
	axis, angle := r.AxisAngle()
	return RotationFromAxisAngle(axis, angle.Mul(s))
}

// Dot returns the 4D dot product of the quaternions.
func (r Rotation[S]) Dot(b Rotation[S]) S {
	return r.Quat().Dot(b.Quat())
}

// Len returns the 4D length of the quaternion.
func (r Rotation[S]) Len() S {
	return r.Quat().Len()
}

// Conjugate returns (-x, -y, -z, w).
func (r Rotation[S]) Conjugate() Rotation[S] {
	return Rotation[S]{r.x.Neg(), r.y.Neg(), r.z.Neg(), r.w}
}

// Invert returns the inverse rotation: the conjugate divided by the squared
// norm.
func (r Rotation[S]) Invert() Rotation[S] {
	inv := r.Dot(r).Recip()
	return Rotation[S]{
		r.x.Mul(inv).Neg(),
		r.y.Mul(inv).Neg(),
		r.z.Mul(inv).Neg(),
		r.w.Mul(inv),
	}
}

// Equals reports whether r and b describe the same rotation within tol per
// component. q and -q are the same rotation.
func (r Rotation[S]) Equals(b Rotation[S], tol S) bool {
	return r.Quat().Equals(b.Quat(), tol) || r.Quat().Equals(b.Quat().Negate(), tol)
}

// IsIdentity reports whether r is exactly the identity.
func (r Rotation[S]) IsIdentity() bool {
	id := IdentityRotation[S]()
	return r == id || r == id.negate()
}

// Slerp interpolates along the shorter arc from r0 (t=0) to r1 (t=1).
func Slerp[S scalar.Scalar[S]](r0, r1 Rotation[S], t S) Rotation[S] {
	cosom := r0.Dot(r1)
	if cosom.Sign() < 0 {
		cosom = cosom.Neg()
		r1 = r1.negate()
	}

	one := scalar.One[S]()
	s0, s1 := one.Sub(t), t
	if scalar.Threshold[S](0.00001).Less(one.Sub(cosom)) {
		omega := cosom.Acos()
		sinom := omega.Sin()
		s0 = s0.Mul(omega).Sin().Div(sinom)
		s1 = t.Mul(omega).Sin().Div(sinom)
	}

	return RotationFromQuat(
		s0.Mul(r0.x).Add(s1.Mul(r1.x)),
		s0.Mul(r0.y).Add(s1.Mul(r1.y)),
		s0.Mul(r0.z).Add(s1.Mul(r1.z)),
		s0.Mul(r0.w).Add(s1.Mul(r1.w)),
	)
}

// String formats the rotation as axis and angle in degrees.
func (r Rotation[S]) String() string {
	axis, angle := r.AxisAngle()
	a := axis.Float64s()
	return fmt.Sprintf("rot(%.4g, %.4g, %.4g; %.4g°)", a[0], a[1], a[2], scalar.Degrees(angle).Float64())
}

func (r Rotation[S]) negate() Rotation[S] {
	return Rotation[S]{r.x.Neg(), r.y.Neg(), r.z.Neg(), r.w.Neg()}
}

func (r Rotation[S]) normalize() Rotation[S] {
	q := r.Quat().Normalize()
	if q.IsZero() {
		return IdentityRotation[S]()
	}
	return Rotation[S]{q.X, q.Y, q.Z, q.W}
}
