package render

import (
	"github.com/taigrr/lantern/pkg/math3d"
	"github.com/taigrr/lantern/pkg/scalar"
	"github.com/taigrr/lantern/pkg/scene"
)

// Wireframe draws line geometry through a camera into a framebuffer.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// cubeEdges connects the corners of [AABB.Corners] that differ on one axis.
var cubeEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along X
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along Y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along Z
}

// DrawLine3D draws a world-space line, clipped to the view volume. It
// reports whether any part was drawn.
func (w *Wireframe) DrawLine3D(p1, p2 Vec3, color Color) bool {
	return w.drawClip(w.camera.Clip(p1), w.camera.Clip(p2), color)
}

func (w *Wireframe) drawClip(a, b Vec4, color Color) bool {
	a, b, ok := clipLine(a, b)
	if !ok {
		return false
	}
	p0, _ := toScreen(a, w.fb.Width, w.fb.Height)
	p1, _ := toScreen(b, w.fb.Width, w.fb.Height)
	w.fb.DrawLine26_6(p0, p1, color)
	return true
}

// DrawEdgeMesh draws em placed by model and returns the number of edges
// drawn. Meshes whose bounds are outside the frustum are skipped.
func (w *Wireframe) DrawEdgeMesh(em *scene.EdgeMesh, model Transform, color Color) int {
	if len(em.Positions) == 0 {
		return 0
	}
	box := AABB{Min: em.BoundsMin, Max: em.BoundsMax}.Transform(model)
	if !w.camera.Frustum().IntersectAABB(box) {
		return 0
	}

	mvp := w.camera.ViewProjection().Mul(model.Mat4())
	one := scalar.One[scalar.Real]()
	clip := make([]Vec4, len(em.Positions))
	for i, p := range em.Positions {
		clip[i] = mvp.MulVec4(math3d.V4FromV3(p, one))
	}

	drawn := 0
	for _, e := range em.Edges {
		if w.drawClip(clip[e[0]], clip[e[1]], color) {
			drawn++
		}
	}
	return drawn
}

// DrawCube draws a cube of the given edge length centered on the origin of
// model.
func (w *Wireframe) DrawCube(model Transform, size scalar.Real, color Color) {
	half := size.Mul(scalar.Half[scalar.Real]())
	box := AABB{Min: math3d.Splat3(half.Neg()), Max: math3d.Splat3(half)}
	cs := box.Corners()
	for i, c := range cs {
		cs[i] = model.MulPoint(c)
	}
	for _, e := range cubeEdges {
		w.DrawLine3D(cs[e[0]], cs[e[1]], color)
	}
}

// DrawAxes draws the X, Y and Z axes of model in red, green and blue.
func (w *Wireframe) DrawAxes(model Transform, length scalar.Real) {
	o := model.Origin()
	for i, c := range [3]Color{ColorRed, ColorGreen, ColorBlue} {
		var axis Vec3
		switch i {
		case 0:
			axis = math3d.UnitX[scalar.Real]()
		case 1:
			axis = math3d.UnitY[scalar.Real]()
		default:
			axis = math3d.UnitZ[scalar.Real]()
		}
		w.DrawLine3D(o, model.MulPoint(axis.Scale(length)), c)
	}
}

// DrawGrid draws a grid on the XZ plane at y=0.
func (w *Wireframe) DrawGrid(size, step scalar.Real, color Color) {
	if step.Sign() <= 0 {
		return
	}
	half := size.Mul(scalar.Half[scalar.Real]())
	zero := scalar.Zero[scalar.Real]()
	for v := half.Neg(); !half.Less(v); v = v.Add(step) {
		w.DrawLine3D(math3d.V3(v, zero, half.Neg()), math3d.V3(v, zero, half), color)
		w.DrawLine3D(math3d.V3(half.Neg(), zero, v), math3d.V3(half, zero, v), color)
	}
}
