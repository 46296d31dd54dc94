package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/lantern/pkg/math3d"
	"github.com/taigrr/lantern/pkg/scalar"
)

func TestCameraMatrices(t *testing.T) {
	cam := NewCamera()
	cam.SetPosition(v3(2, 3, 6))
	cam.LookAt(v3(0, 0.5, 0))
	cam.SetViewport(160, 90)

	eye := mgl32.Vec3{2, 3, 6}
	want := mgl32.Perspective(mgl32.DegToRad(60), 160.0/90.0, 0.1, 100).
		Mul4(mgl32.LookAtV(eye, mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{0, 1, 0}))
	got := cam.ViewProjection()
	for i := range 16 {
		assert.InDelta(t, float64(want[i]), got[i].Float64(), clipTol, "element %d", i)
	}

	for _, p := range []mgl32.Vec3{{0, 0, 0}, {1, -1, 2}, {-0.5, 2, -3}} {
		w := want.Mul4x1(p.Vec4(1))
		c := cam.Clip(v3(float64(p[0]), float64(p[1]), float64(p[2])))
		assert.InDelta(t, float64(w[0]), c.X.Float64(), clipTol)
		assert.InDelta(t, float64(w[1]), c.Y.Float64(), clipTol)
		assert.InDelta(t, float64(w[3]), c.W.Float64(), clipTol, "clip w of %v", p)
	}
}

func TestCameraCache(t *testing.T) {
	cam := NewCamera()
	before := cam.ViewProjection()
	assert.Equal(t, before, cam.ViewProjection())

	cam.SetFOV(scalar.Radians(num(30)))
	narrow := cam.ViewProjection()
	assert.NotEqual(t, before, narrow)
	assert.Greater(t, narrow.Get(0, 0).Float64(), before.Get(0, 0).Float64(), "a narrower field magnifies")

	cam.SetClipPlanes(num(1), num(10))
	assert.NotEqual(t, narrow, cam.ViewProjection())

	cam.SetViewport(0, 10)
	assert.InDelta(t, 1, cam.Aspect.Float64(), 1e-6, "empty viewports are ignored")
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera()
	cam.SetViewport(100, 100)

	p, depth, ok := cam.Project(v3(0, 0, 0), 100, 100)
	require.True(t, ok)
	assert.InDelta(t, 50, float64(p.X)/64, 0.1)
	assert.InDelta(t, 50, float64(p.Y)/64, 0.1)

	// z_ndc = (f+n)/(f-n) - 2fn/((f-n)·d) at distance d = 5.
	assert.InDelta(t, 100.1/99.9-20/(99.9*5), depth.Float64(), 0.01)

	right, _, ok := cam.Project(v3(1, 0, 0), 100, 100)
	require.True(t, ok)
	// tan(30°)·5 world units span half the viewport.
	assert.InDelta(t, 50+50/(5*math.Tan(math.Pi/6)), float64(right.X)/64, 0.2)

	up, _, ok := cam.Project(v3(0, 1, 0), 100, 100)
	require.True(t, ok)
	assert.Less(t, float64(up.Y)/64, 50.0, "+Y is up on screen")

	_, farDepth, ok := cam.Project(v3(0, 0, -10), 100, 100)
	require.True(t, ok)
	assert.Greater(t, farDepth.Float64(), depth.Float64())

	_, _, ok = cam.Project(v3(0, 0, 8), 100, 100)
	assert.False(t, ok, "behind the camera")
	_, _, ok = cam.Project(v3(30, 0, 0), 100, 100)
	assert.False(t, ok, "outside the field of view")
}

func TestCameraOrbit(t *testing.T) {
	cam := NewCamera()
	quarter := math3d.RotationFromAxisAngle(math3d.UnitY[scalar.Real](), scalar.HalfPi[scalar.Real]())
	cam.Orbit(quarter, num(4))

	// +Z turned a quarter about Y is +X.
	assert.InDelta(t, 4, cam.Position.X.Float64(), 0.01)
	assert.InDelta(t, 0, cam.Position.Z.Float64(), 0.01)
	assert.InDelta(t, 1, cam.Up.Y.Float64(), 0.01)

	p, _, ok := cam.Project(v3(0, 0, 0), 64, 64)
	require.True(t, ok)
	assert.InDelta(t, 32, float64(p.X)/64, 0.1, "the target stays centered")
}
