package math3d

import "github.com/taigrr/lantern/pkg/scalar"

// Factorization splits an affine transform M into R·S·Rᵀ·U·T: R and U are
// rotations, S a diagonal scale and T a translation.
type Factorization[S scalar.Scalar[S]] struct {
	// R holds the scale axes as columns.
	R Transform[S]
	S Vec3[S]
	U Transform[S]
	T Vec3[S]
	// Projection is the discarded projective part. A Transform has none, so
	// this is always the identity.
	Projection Transform[S]
}

// Factor splits m into a Factorization. It reports false when the linear
// part is singular.
func (m Transform[S]) Factor() (Factorization[S], bool) {
	f := Factorization[S]{Projection: IdentityTransform[S]()}
	a := m.Linear()
	f.T = m.Origin()

	det := a.Det()
	one := scalar.One[S]()
	sign := one
	if det.Sign() < 0 {
		sign = one.Neg()
	}
	if det.Abs().Less(scalar.Threshold[S](1e-12)) {
		return f, false
	}

	b := a.Mul(a.Transpose3())
	vals, vecs, _ := jacobi3([3][3]S{b[0], b[1], b[2]})

	f.R = Transform[S]{vecs[0], vecs[1], vecs[2]}
	// Eigenvectors are only defined up to sign; keep R a proper rotation so
	// it converts to a quaternion.
	if f.R.Det().Sign() < 0 {
		for i := range 3 {
			f.R[i][0] = f.R[i][0].Neg()
		}
	}

	var si Transform[S]
	for i := range 3 {
		s := sign.Mul(vals[i].Sqrt())
		si[i][i] = s.Recip()
		switch i {
		case 0:
			f.S.X = s
		case 1:
			f.S.Y = s
		default:
			f.S.Z = s
		}
	}

	f.U = f.R.Mul(si).Mul(f.R.Transpose3()).Mul(a)
	return f, true
}

// Recompose returns R·S·Rᵀ·U·T.
func (f Factorization[S]) Recompose() Transform[S] {
	return f.R.Mul(Scaling(f.S)).Mul(f.R.Transpose3()).Mul(f.U).Mul(Translation(f.T))
}

// Decomposition describes a transform as scale about a rotated frame, then
// rotation, then translation, all relative to a center point.
type Decomposition[S scalar.Scalar[S]] struct {
	Translation      Vec3[S]
	Rotation         Rotation[S]
	Scale            Vec3[S]
	ScaleOrientation Rotation[S]
}

// IdentityDecomposition returns the decomposition of the identity.
func IdentityDecomposition[S scalar.Scalar[S]]() Decomposition[S] {
	return Decomposition[S]{
		Rotation:         IdentityRotation[S](),
		Scale:            Splat3(scalar.One[S]()),
		ScaleOrientation: IdentityRotation[S](),
	}
}

// Decompose factors m about center. It reports false, with the identity
// decomposition, when m is singular.
func (m Transform[S]) Decompose(center Vec3[S]) (Decomposition[S], bool) {
	if !center.IsZero() {
		m = Translation(center).Mul(m).Mul(Translation(center.Negate()))
	}
	f, ok := m.Factor()
	if !ok {
		return IdentityDecomposition[S](), false
	}
	return Decomposition[S]{
		Translation:      f.T,
		Rotation:         RotationFromTransform(f.U),
		Scale:            f.S,
		ScaleOrientation: RotationFromTransform(f.R.Transpose3()),
	}, true
}

// Compose builds the transform described by d about center. It is the
// inverse of [Transform.Decompose].
func Compose[S scalar.Scalar[S]](d Decomposition[S], center Vec3[S]) Transform[S] {
	m := Translation(d.Translation)
	if !center.IsZero() {
		m = m.MultLeft(Translation(center))
	}
	m = m.MultLeft(d.Rotation.Transform())
	if d.Scale != Splat3(scalar.One[S]()) {
		so := d.ScaleOrientation
		m = m.MultLeft(so.Transform())
		m = m.MultLeft(Scaling(d.Scale))
		m = m.MultLeft(so.Invert().Transform())
	}
	if !center.IsZero() {
		m = m.MultLeft(Translation(center.Negate()))
	}
	return m
}
