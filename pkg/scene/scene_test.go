package scene

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/lantern/pkg/math3d"
	"github.com/taigrr/lantern/pkg/scalar"
)

// tol holds for every backend at the magnitudes used here.
const tol = 2e-2

func v3(x, y, z float64) Vec3 { return math3d.V3f[scalar.Real](x, y, z) }

func assertVec3(t *testing.T, want [3]float64, got Vec3, msg string) {
	t.Helper()
	g := got.Float64s()
	for i := range 3 {
		assert.InDelta(t, want[i], g[i], tol, "%s[%d]", msg, i)
	}
}

// columnMajor returns m as a glTF node matrix.
func columnMajor(m Transform) [16]float64 {
	return m.Mat4().Float64s()
}

// cubeDoc returns a document with a unit cube mesh (8 vertices, 12
// triangles) and no nodes.
func cubeDoc() *gltf.Document {
	corners := [8][3]float32{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	indices := []uint16{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 1, 5, 0, 5, 4, // bottom
		3, 7, 6, 3, 6, 2, // top
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
	}

	var buf bytes.Buffer
	for _, c := range corners {
		for _, f := range c {
			_ = binary.Write(&buf, binary.LittleEndian, math.Float32bits(f))
		}
	}
	posLen := buf.Len()
	for _, i := range indices {
		_ = binary.Write(&buf, binary.LittleEndian, i)
	}

	doc := gltf.NewDocument()
	doc.Buffers = []*gltf.Buffer{{ByteLength: buf.Len(), Data: buf.Bytes()}}
	doc.BufferViews = []*gltf.BufferView{
		{Buffer: 0, ByteLength: posLen},
		{Buffer: 0, ByteOffset: posLen, ByteLength: buf.Len() - posLen},
	}
	doc.Accessors = []*gltf.Accessor{
		{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Count: 8, Type: gltf.AccessorVec3,
			Min: []float64{0, 0, 0}, Max: []float64{1, 1, 1}},
		{BufferView: gltf.Index(1), ComponentType: gltf.ComponentUshort, Count: len(indices), Type: gltf.AccessorScalar},
	}
	doc.Meshes = []*gltf.Mesh{{
		Name: "cube",
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{gltf.POSITION: 0},
			Indices:    gltf.Index(1),
		}},
	}}
	return doc
}

// hierarchyDoc has a TRS root, a matrix child holding the cube, and a bare
// grandchild.
func hierarchyDoc() *gltf.Document {
	doc := cubeDoc()
	s := math.Sqrt2 / 2
	doc.Nodes = []*gltf.Node{
		{
			Name:        "root",
			Children:    []int{1},
			Translation: [3]float64{1, 2, 3},
			Rotation:    [4]float64{0, 0, s, s}, // quarter turn about Z
			Scale:       [3]float64{2, 2, 2},
		},
		{
			Name:     "child",
			Children: []int{2},
			Mesh:     gltf.Index(0),
			Matrix:   columnMajor(math3d.Translation(v3(0, 1, 0))),
		},
		{Name: "leaf", Translation: [3]float64{0, 0, 1}},
	}
	doc.Scenes[0].Nodes = []int{0}
	return doc
}

func TestOpenInvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/path.glb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open gltf")
}

func TestHierarchy(t *testing.T) {
	s, err := New(hierarchyDoc())
	require.NoError(t, err)

	assert.Equal(t, []int{0}, s.Roots())
	assert.Equal(t, -1, s.Nodes[0].Parent)
	assert.Equal(t, 0, s.Nodes[1].Parent)
	assert.Equal(t, 1, s.Nodes[2].Parent)
	assert.Equal(t, 0, s.Nodes[1].Mesh)
	assert.Equal(t, -1, s.Nodes[0].Mesh)
	assert.False(t, s.Nodes[0].Matrix)
	assert.True(t, s.Nodes[1].Matrix)

	// (0,1,0) scaled by 2, turned a quarter about Z, moved by (1,2,3).
	assertVec3(t, [3]float64{-1, 2, 3}, s.World(1).Origin(), "child origin")
	// One more unit along the root's Z, which the turn leaves alone.
	assertVec3(t, [3]float64{-1, 2, 5}, s.World(2).Origin(), "leaf origin")

	var order []string
	err = s.Walk(func(n *Node, world Transform) error {
		order = append(order, n.Name)
		assert.True(t, world.Equals(s.World(n.Index), scalar.FromFloat[scalar.Real](tol)), n.Name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "child", "leaf"}, order)

	stop := errors.New("stop")
	visited := 0
	err = s.Walk(func(*Node, Transform) error {
		visited++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, visited)
}

func TestHierarchyErrors(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Nodes = []*gltf.Node{{Children: []int{1}}, {Children: []int{0}}}
	_, err := New(doc)
	assert.ErrorContains(t, err, "cycle")

	doc.Nodes = []*gltf.Node{{Children: []int{2}}, {Children: []int{2}}, {}}
	_, err = New(doc)
	assert.ErrorContains(t, err, "parents")

	doc.Nodes = []*gltf.Node{{Children: []int{5}}}
	_, err = New(doc)
	assert.ErrorContains(t, err, "out of range")

	doc.Nodes = []*gltf.Node{{Name: "only"}}
	doc.Scenes[0].Nodes = []int{0, 99}
	_, err = New(doc)
	assert.ErrorContains(t, err, "scene root 99 out of range")

	doc.Scenes[0].Nodes = []int{-1}
	_, err = New(doc)
	assert.ErrorContains(t, err, "scene root -1 out of range")
}

func TestRootsWithoutScene(t *testing.T) {
	doc := &gltf.Document{Nodes: []*gltf.Node{{Children: []int{2}}, {}, {}}}
	s, err := New(doc)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, s.Roots())
}

func TestNodeTRS(t *testing.T) {
	rot := math3d.RotationFromAxisAngle(v3(1, 2, 2), scalar.FromFloat[scalar.Real](0.8))
	local := math3d.Scaling(v3(1.5, 0.5, 2)).Mul(rot.Transform()).WithTranslation(v3(3, -1, 0.5))

	n := Node{Local: local}
	trs, err := n.TRS()
	require.NoError(t, err)
	assert.False(t, trs.Sheared)
	assert.InDeltaSlice(t, []float64{3, -1, 0.5}, trs.Translation[:], tol)
	assert.InDeltaSlice(t, []float64{1.5, 0.5, 2}, trs.Scale[:], tol)

	// Back through the glTF node path.
	back := localTransform(&gltf.Node{Translation: trs.Translation, Rotation: trs.Rotation, Scale: trs.Scale})
	assert.True(t, local.Equals(back, scalar.FromFloat[scalar.Real](tol)))

	// Scale along rotated axes is a shear in the node frame.
	n.Local = rot.Transform().Mul(math3d.Scaling(v3(1, 3, 1))).Mul(rot.Invert().Transform())
	trs, err = n.TRS()
	require.NoError(t, err)
	assert.True(t, trs.Sheared)

	// A uniform scale is never sheared.
	n.Local = math3d.UniformScaling(scalar.FromFloat[scalar.Real](2)).Mul(rot.Transform())
	trs, err = n.TRS()
	require.NoError(t, err)
	assert.False(t, trs.Sheared)

	n.Local = math3d.Scaling(v3(1, 0, 1))
	_, err = n.TRS()
	assert.ErrorIs(t, err, ErrSingular)
}

func TestBakeTRS(t *testing.T) {
	doc := hierarchyDoc()
	rot := math3d.RotationFromAxisAngle(v3(0, 1, 0), scalar.FromFloat[scalar.Real](1.1))
	// Conjugating a scale by a rotation off its axes leaves an oriented
	// scale that TRS cannot hold.
	tilt := math3d.RotationFromAxisAngle(v3(1, 0, 1), scalar.FromFloat[scalar.Real](0.7))
	doc.Nodes[2].Translation = [3]float64{}
	doc.Nodes[2].Matrix = columnMajor(math3d.Scaling(v3(1, 2, 3)).Mul(rot.Transform()).WithTranslation(v3(0, 0, 1)))
	doc.Nodes = append(doc.Nodes,
		&gltf.Node{Name: "flat", Matrix: columnMajor(math3d.Scaling(v3(1, 1, 0)))},
		&gltf.Node{Name: "skew", Matrix: columnMajor(tilt.Transform().Mul(math3d.Scaling(v3(1, 3, 1))).Mul(tilt.Invert().Transform()))},
	)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 3, 4)

	before, err := New(doc)
	require.NoError(t, err)
	worlds := make([]Transform, len(before.Nodes))
	for i := range before.Nodes {
		worlds[i] = before.World(i)
	}

	baked, err := BakeTRS(doc)
	assert.Equal(t, 2, baked)
	assert.ErrorIs(t, err, ErrSingular)
	assert.ErrorIs(t, err, ErrSheared)

	assert.Equal(t, gltf.DefaultMatrix, doc.Nodes[1].MatrixOrDefault())
	assert.Equal(t, gltf.DefaultMatrix, doc.Nodes[2].MatrixOrDefault())
	assert.NotEqual(t, gltf.DefaultMatrix, doc.Nodes[3].MatrixOrDefault(), "singular keeps its matrix")
	assert.NotEqual(t, gltf.DefaultMatrix, doc.Nodes[4].MatrixOrDefault(), "sheared keeps its matrix")

	after, err := New(doc)
	require.NoError(t, err)
	for i := range after.Nodes {
		assert.Truef(t, worlds[i].Equals(after.World(i), scalar.FromFloat[scalar.Real](tol)), "node %d world changed", i)
	}
}

func TestEdges(t *testing.T) {
	doc := cubeDoc()
	em, err := Edges(doc, 0)
	require.NoError(t, err)
	assert.Equal(t, "cube", em.Name)
	assert.Equal(t, 8, em.VertexCount())
	// 12 cube edges plus one diagonal per face.
	assert.Equal(t, 18, em.EdgeCount())
	for _, e := range em.Edges {
		assert.Less(t, e[0], e[1])
	}
	assertVec3(t, [3]float64{0.5, 0.5, 0.5}, em.Center(), "center")
	assertVec3(t, [3]float64{1, 1, 1}, em.Size(), "size")

	fit := em.Fit(scalar.FromFloat[scalar.Real](4))
	assertVec3(t, [3]float64{2, 2, 2}, fit.MulPoint(em.BoundsMax), "fit max")
	assertVec3(t, [3]float64{-2, -2, -2}, fit.MulPoint(em.BoundsMin), "fit min")

	_, err = Edges(doc, 3)
	assert.Error(t, err)

	// Lines become edges as they are.
	doc.Meshes[0].Primitives[0].Mode = gltf.PrimitiveLines
	em, err = Edges(doc, 0)
	require.NoError(t, err)
	// 18 segments, three of which repeat.
	assert.Equal(t, 15, em.EdgeCount())
}

func TestEdgesBadAccessor(t *testing.T) {
	doc := cubeDoc()
	doc.Accessors[0].Count = 100
	_, err := Edges(doc, 0)
	assert.ErrorContains(t, err, "past end")

	doc = cubeDoc()
	doc.Accessors[0].ComponentType = gltf.ComponentUshort
	_, err = Edges(doc, 0)
	assert.ErrorContains(t, err, "VEC3")
}

func TestSceneEdges(t *testing.T) {
	s, err := New(hierarchyDoc())
	require.NoError(t, err)
	em, err := s.Edges()
	require.NoError(t, err)
	assert.Equal(t, 18, em.EdgeCount())

	// Cube corner (1,0,0) in the child frame, then through the root.
	// (1,1,0)·2 = (2,2,0); quarter turn gives (-2,2,0); plus (1,2,3).
	assertVec3(t, [3]float64{-1, 4, 3}, em.Positions[1], "corner")
}

func TestSaveOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.glb")
	require.NoError(t, Save(hierarchyDoc(), path))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "scene.glb", s.Name)
	require.Len(t, s.Nodes, 3)
	assertVec3(t, [3]float64{-1, 2, 5}, s.World(2).Origin(), "leaf origin")

	em, err := s.Edges()
	require.NoError(t, err)
	assert.Equal(t, 18, em.EdgeCount())
}
