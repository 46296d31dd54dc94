package main

import (
	"fmt"
	"path/filepath"

	"github.com/taigrr/lantern/pkg/math3d"
	"github.com/taigrr/lantern/pkg/render"
	"github.com/taigrr/lantern/pkg/scalar"
	"github.com/taigrr/lantern/pkg/scene"
)

const (
	minDistance     = 1.5
	maxDistance     = 20.0
	defaultDistance = 5.0
)

// stage is everything a frame draws: the model, the camera looking at it and
// the framebuffer it lands in.
type stage struct {
	name      string
	mesh      *scene.EdgeMesh // nil when no model was loaded
	fit       render.Transform
	showModel bool

	camera   *render.Camera
	tilt     render.Rotation
	distance float64
	fb       *render.Framebuffer
	wf       *render.Wireframe
	bg       render.Color
}

// newStage loads path, or sets up the unit cube when path is empty, for a
// width x height pixel framebuffer.
func newStage(path string, width, height int, bg render.Color) (*stage, error) {
	st := &stage{
		name:     "cube",
		fit:      math3d.IdentityTransform[scalar.Real](),
		camera:   render.NewCamera(),
		tilt:     math3d.RotationFromAxisAngle(math3d.UnitX[scalar.Real](), scalar.Radians(scalar.FromInt[scalar.Real](-20))),
		distance: defaultDistance,
		fb:       render.NewFramebuffer(width, height),
		bg:       bg,
	}
	if path != "" {
		em, err := loadEdges(path)
		if err != nil {
			return nil, err
		}
		st.name = filepath.Base(path)
		st.mesh = em
		st.fit = em.Fit(scalar.FromInt[scalar.Real](2))
		st.showModel = true
	}
	st.wf = render.NewWireframe(st.camera, st.fb)
	st.camera.SetViewport(width, height)
	st.placeCamera()
	return st, nil
}

func loadEdges(path string) (*scene.EdgeMesh, error) {
	s, err := scene.Open(path)
	if err != nil {
		return nil, err
	}
	em, err := s.Edges()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	if em.EdgeCount() == 0 {
		return nil, fmt.Errorf("load %s: no triangle or line meshes", filepath.Base(path))
	}
	return em, nil
}

func (st *stage) placeCamera() {
	st.camera.Orbit(st.tilt, scalar.FromFloat[scalar.Real](st.distance))
}

// zoom moves the camera by delta, within [minDistance, maxDistance].
func (st *stage) zoom(delta float64) {
	st.distance = min(max(st.distance+delta, minDistance), maxDistance)
	st.placeCamera()
}

// toggle swaps between the loaded model and the cube. It does nothing
// without a model.
func (st *stage) toggle() {
	if st.mesh != nil {
		st.showModel = !st.showModel
	}
}

// resize matches the framebuffer and camera to a new pixel size.
func (st *stage) resize(width, height int) {
	st.fb.Resize(width, height)
	st.camera.SetViewport(width, height)
}

// label names what is on screen.
func (st *stage) label() string {
	if st.showModel {
		return fmt.Sprintf("%s  %d edges", st.name, st.mesh.EdgeCount())
	}
	return "cube  12 edges"
}

// draw renders one frame with the model turned by r and returns the number
// of model edges that reached the screen.
func (st *stage) draw(r render.Rotation) int {
	f := scalar.FromFloat[scalar.Real]
	st.fb.Clear(st.bg)
	st.wf.DrawGrid(f(4), f(0.5), render.RGB(48, 52, 72))

	turn := r.Transform()
	drawn := 12
	if st.showModel {
		drawn = st.wf.DrawEdgeMesh(st.mesh, st.fit.Mul(turn), render.ColorCyan)
	} else {
		st.wf.DrawCube(turn, f(2), render.ColorCyan)
	}
	st.wf.DrawAxes(turn, f(1.5))
	return drawn
}
