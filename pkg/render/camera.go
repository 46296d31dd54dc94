package render

import (
	"golang.org/x/image/math/fixed"

	"github.com/taigrr/lantern/pkg/math3d"
	"github.com/taigrr/lantern/pkg/scalar"
)

type (
	// Vec3 is a point or direction in the build's scalar representation.
	Vec3 = math3d.Vec3[scalar.Real]
	// Vec4 is a homogeneous clip-space coordinate.
	Vec4 = math3d.Vec4[scalar.Real]
	// Mat4 is a column-major view or projection matrix.
	Mat4 = math3d.Mat4[scalar.Real]
	// Transform places a model in the world.
	Transform = math3d.Transform[scalar.Real]
	// Rotation orients a model or the camera.
	Rotation = math3d.Rotation[scalar.Real]
)

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOV    scalar.Real // Vertical field of view in radians
	Aspect scalar.Real // Width / Height
	Near   scalar.Real
	Far    scalar.Real

	// Cached matrices (computed on demand)
	view      Mat4
	proj      Mat4
	viewProj  Mat4
	viewDirty bool
	projDirty bool
}

// NewCamera creates a camera 5 units along +Z looking at the origin with a
// 60 degree field of view.
func NewCamera() *Camera {
	f := scalar.FromFloat[scalar.Real]
	return &Camera{
		Position:  math3d.V3f[scalar.Real](0, 0, 5),
		Up:        math3d.UnitY[scalar.Real](),
		FOV:       scalar.Radians(f(60)),
		Aspect:    scalar.One[scalar.Real](),
		Near:      f(0.1),
		Far:       f(100),
		viewDirty: true,
		projDirty: true,
	}
}

// SetPosition moves the camera, keeping the target.
func (c *Camera) SetPosition(pos Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target Vec3) {
	c.Target = target
	c.viewDirty = true
}

// Orbit places the camera distance units from its target along the +Z axis
// of r, with r's +Y as up.
func (c *Camera) Orbit(r Rotation, distance scalar.Real) {
	c.Position = c.Target.Add(r.RotateVec(math3d.UnitZ[scalar.Real]()).Scale(distance))
	c.Up = r.RotateVec(math3d.UnitY[scalar.Real]())
	c.viewDirty = true
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov scalar.Real) {
	c.FOV = fov
	c.projDirty = true
}

// SetViewport sets the aspect ratio from a pixel size.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = scalar.FromInt[scalar.Real](int64(width)).Div(scalar.FromInt[scalar.Real](int64(height)))
	c.projDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far scalar.Real) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// View returns the view matrix.
func (c *Camera) View() Mat4 {
	if c.viewDirty {
		c.view = math3d.LookAt(c.Position, c.Target, c.Up)
	}
	return c.view
}

// Projection returns the projection matrix.
func (c *Camera) Projection() Mat4 {
	if c.projDirty {
		c.proj = math3d.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
	}
	return c.proj
}

// ViewProjection returns Projection·View.
func (c *Camera) ViewProjection() Mat4 {
	if c.viewDirty || c.projDirty {
		c.viewProj = c.Projection().Mul(c.View())
		c.viewDirty, c.projDirty = false, false
	}
	return c.viewProj
}

// Frustum returns the current view frustum in world space.
func (c *Camera) Frustum() Frustum {
	return FrustumFromMatrix(c.ViewProjection())
}

// Clip transforms a world point to homogeneous clip space.
func (c *Camera) Clip(world Vec3) Vec4 {
	return c.ViewProjection().MulVec4(math3d.V4FromV3(world, scalar.One[scalar.Real]()))
}

// Project maps a world point to sub-pixel screen coordinates on a width x
// height viewport, with +Y down. It reports false for points outside the
// view volume.
func (c *Camera) Project(world Vec3, width, height int) (fixed.Point26_6, scalar.Real, bool) {
	clip := c.Clip(world)
	if !inside(clip) {
		return fixed.Point26_6{}, scalar.Real{}, false
	}
	p, depth := toScreen(clip, width, height)
	return p, depth, true
}

// inside reports whether a clip-space point lies in -w <= x, y, z <= w.
func inside(v Vec4) bool {
	if v.W.Sign() <= 0 {
		return false
	}
	for _, d := range clipDistances(v) {
		if d.Sign() < 0 {
			return false
		}
	}
	return true
}

// toScreen divides by w and maps NDC to the viewport.
func toScreen(clip Vec4, width, height int) (fixed.Point26_6, scalar.Real) {
	ndc := clip.PerspectiveDivide()
	half := scalar.Half[scalar.Real]()
	one := scalar.One[scalar.Real]()
	x := ndc.X.Add(one).Mul(half).Mul(scalar.FromInt[scalar.Real](int64(width)))
	y := one.Sub(ndc.Y).Mul(half).Mul(scalar.FromInt[scalar.Real](int64(height)))
	return scalar.Point26_6(x, y), ndc.Z
}
