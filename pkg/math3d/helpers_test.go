package math3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/taigrr/lantern/pkg/scalar"
)

// tolerance bounds the error of one backend against float64 references.
type tolerance struct {
	unit float64 // quaternion length after any constructor
	cmp  float64 // element-wise comparison
	deg  float64 // Euler angles in degrees
}

var (
	tolFixed16 = tolerance{unit: 1e-4, cmp: 2e-3, deg: 0.05}
	tolFixed12 = tolerance{unit: 1e-3, cmp: 2e-2, deg: 0.5}
	tolFloat   = tolerance{unit: 1e-6, cmp: 1e-4, deg: 1e-3}
)

// eachBackend runs the three instantiations of a generic check.
func eachBackend(t *testing.T, fixed16, fixed12, float func(t *testing.T)) {
	t.Helper()
	t.Run("Fixed16", fixed16)
	t.Run("Fixed12", fixed12)
	t.Run("Float", float)
}

func mglVec[S scalar.Scalar[S]](v Vec3[S]) mgl32.Vec3 {
	return mgl32.Vec3{v.X.Float32(), v.Y.Float32(), v.Z.Float32()}
}

func mglQuat[S scalar.Scalar[S]](r Rotation[S]) mgl32.Quat {
	q := r.Quat()
	return mgl32.Quat{W: q.W.Float32(), V: mgl32.Vec3{q.X.Float32(), q.Y.Float32(), q.Z.Float32()}}
}

func assertVec[S scalar.Scalar[S]](t *testing.T, want mgl32.Vec3, got Vec3[S], eps float64, msg string) {
	t.Helper()
	g := got.Float64s()
	for i := range 3 {
		assert.InDelta(t, float64(want[i]), g[i], eps, "%s[%d]", msg, i)
	}
}

func assertQuat[S scalar.Scalar[S]](t *testing.T, want mgl32.Quat, got Rotation[S], eps float64, msg string) {
	t.Helper()
	w := Rotation[scalar.Float]{
		scalar.F(want.V[0]), scalar.F(want.V[1]), scalar.F(want.V[2]), scalar.F(want.W),
	}
	g := got.Quat()
	gf := Rotation[scalar.Float]{
		scalar.F(g.X.Float32()), scalar.F(g.Y.Float32()), scalar.F(g.Z.Float32()), scalar.F(g.W.Float32()),
	}
	assert.Truef(t, gf.Equals(w, scalar.F(float32(eps))), "%s: got %v, want %v", msg, g, want)
}

func assertUnit[S scalar.Scalar[S]](t *testing.T, r Rotation[S], eps float64, msg string) {
	t.Helper()
	q := r.Quat()
	l := q.X.Float64()*q.X.Float64() + q.Y.Float64()*q.Y.Float64() +
		q.Z.Float64()*q.Z.Float64() + q.W.Float64()*q.W.Float64()
	// |l - 1| ≈ 2·|len - 1| near one.
	assert.InDeltaf(t, 1, l, 2*eps, "%s: squared length %v", msg, l)
}

func assertTransform[S scalar.Scalar[S]](t *testing.T, want, got Transform[S], eps float64, msg string) {
	t.Helper()
	w, g := want.Float64s(), got.Float64s()
	for i := range 4 {
		for j := range 3 {
			assert.InDeltaf(t, w[i][j], g[i][j], eps, "%s[%d][%d]: got %v, want %v", msg, i, j, g, w)
		}
	}
}

func mglMat[S scalar.Scalar[S]](m Mat4[S]) mgl32.Mat4 {
	var a mgl32.Mat4
	for i, v := range m {
		a[i] = v.Float32()
	}
	return a
}

func assertMat4[S scalar.Scalar[S]](t *testing.T, want mgl32.Mat4, got Mat4[S], eps float64, msg string) {
	t.Helper()
	for i := range 16 {
		assert.InDeltaf(t, float64(want[i]), got[i].Float64(), eps, "%s[row %d, col %d]", msg, i%4, i/4)
	}
}
