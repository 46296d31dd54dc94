// Package scene reads glTF node hierarchies into affine transforms and writes
// factored transforms back as translation, rotation and scale.
package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/lantern/pkg/math3d"
	"github.com/taigrr/lantern/pkg/scalar"
)

// Transform and Vec3 are the kernel types instantiated with the build's
// scalar backend.
type (
	Transform = math3d.Transform[scalar.Real]
	Vec3      = math3d.Vec3[scalar.Real]
)

var (
	// ErrSingular is returned for nodes whose transform cannot be factored.
	ErrSingular = errors.New("singular transform")
	// ErrSheared is returned for nodes whose scale axes are rotated relative
	// to the node frame, which glTF TRS cannot express.
	ErrSheared = errors.New("sheared transform")
)

// Node is one glTF node and its local transform.
type Node struct {
	Index    int
	Name     string
	Parent   int // -1 for roots
	Children []int
	Mesh     int // -1 when the node has no mesh
	Local    Transform
	// Matrix reports whether the document stored a matrix instead of TRS.
	Matrix bool
}

// Scene is the node hierarchy of a glTF document.
type Scene struct {
	Name  string
	Doc   *gltf.Document
	Nodes []Node
	roots []int
}

// Open reads a .gltf or .glb file.
func Open(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	s, err := New(doc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	s.Name = filepath.Base(path)
	return s, nil
}

// New builds the hierarchy of doc.
func New(doc *gltf.Document) (*Scene, error) {
	s := &Scene{Doc: doc, Nodes: make([]Node, len(doc.Nodes))}
	for i, n := range doc.Nodes {
		s.Nodes[i] = Node{
			Index:    i,
			Name:     n.Name,
			Parent:   -1,
			Children: n.Children,
			Mesh:     -1,
			Local:    localTransform(n),
			Matrix:   hasMatrix(n),
		}
		if n.Mesh != nil {
			s.Nodes[i].Mesh = *n.Mesh
		}
	}

	for i, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < 0 || c >= len(s.Nodes) {
				return nil, fmt.Errorf("node %d: child %d out of range", i, c)
			}
			if p := s.Nodes[c].Parent; p >= 0 {
				return nil, fmt.Errorf("node %d: parents %d and %d", c, p, i)
			}
			s.Nodes[c].Parent = i
		}
	}

	// With single parents, a chain longer than the node count is a cycle.
	for i := range s.Nodes {
		steps := 0
		for p := s.Nodes[i].Parent; p >= 0; p = s.Nodes[p].Parent {
			if steps++; steps > len(s.Nodes) {
				return nil, fmt.Errorf("node %d: parent cycle", i)
			}
		}
	}

	s.roots = sceneRoots(doc)
	for _, r := range s.roots {
		if r < 0 || r >= len(s.Nodes) {
			return nil, fmt.Errorf("scene root %d out of range", r)
		}
	}
	if len(s.roots) == 0 {
		for i, n := range s.Nodes {
			if n.Parent < 0 {
				s.roots = append(s.roots, i)
			}
		}
	}
	return s, nil
}

// sceneRoots returns the node list of the default scene, or of the first
// scene when no default is set.
func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) == 0 {
		return nil
	}
	i := 0
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		i = *doc.Scene
	}
	return doc.Scenes[i].Nodes
}

func hasMatrix(n *gltf.Node) bool {
	return n.MatrixOrDefault() != gltf.DefaultMatrix
}

// localTransform converts the node's matrix, or its TRS when the matrix is
// the identity.
func localTransform(n *gltf.Node) Transform {
	if hasMatrix(n) {
		return math3d.Mat4FromFloat64s[scalar.Real](n.MatrixOrDefault()).Affine()
	}
	t, r, sc := n.TranslationOrDefault(), n.RotationOrDefault(), n.ScaleOrDefault()
	f := scalar.FromFloat[scalar.Real]
	d := math3d.IdentityDecomposition[scalar.Real]()
	d.Translation = math3d.V3f[scalar.Real](t[0], t[1], t[2])
	d.Rotation = math3d.RotationFromQuat(f(r[0]), f(r[1]), f(r[2]), f(r[3]))
	d.Scale = math3d.V3f[scalar.Real](sc[0], sc[1], sc[2])
	return math3d.Compose(d, Vec3{})
}

// Roots returns the top-level nodes in document order.
func (s *Scene) Roots() []int {
	return s.roots
}

// World returns the transform from node i's frame to the scene frame.
func (s *Scene) World(i int) Transform {
	m := s.Nodes[i].Local
	for p := s.Nodes[i].Parent; p >= 0; p = s.Nodes[p].Parent {
		m = m.MultRight(s.Nodes[p].Local)
	}
	return m
}

// Walk visits every node reachable from the roots depth first, parents
// before children, with its world transform. It stops at the first error fn
// returns.
func (s *Scene) Walk(fn func(n *Node, world Transform) error) error {
	var visit func(i int, parent Transform) error
	visit = func(i int, parent Transform) error {
		n := &s.Nodes[i]
		world := n.Local.Mul(parent)
		if err := fn(n, world); err != nil {
			return err
		}
		for _, c := range n.Children {
			if err := visit(c, world); err != nil {
				return err
			}
		}
		return nil
	}

	id := math3d.IdentityTransform[scalar.Real]()
	for _, r := range s.roots {
		if err := visit(r, id); err != nil {
			return err
		}
	}
	return nil
}

// TRS is a node transform in glTF form.
type TRS struct {
	Translation [3]float64
	Rotation    [4]float64 // x, y, z, w
	Scale       [3]float64
	// Sheared reports that the scale axes are rotated relative to the node
	// frame, so the TRS only approximates the local transform.
	Sheared bool
}

// TRS factors the local transform. It wraps ErrSingular when the transform
// has no inverse.
func (n *Node) TRS() (TRS, error) {
	d, ok := n.Local.Decompose(Vec3{})
	if !ok {
		return TRS{}, fmt.Errorf("node %d %q: %w", n.Index, n.Name, ErrSingular)
	}
	q := d.Rotation.Quat()
	trs := TRS{
		Translation: d.Translation.Float64s(),
		Rotation:    [4]float64{q.X.Float64(), q.Y.Float64(), q.Z.Float64(), q.W.Float64()},
		Scale:       d.Scale.Float64s(),
	}

	// A uniform scale has no preferred axes.
	tol := scalar.Threshold[scalar.Real](0.001)
	uniform := d.Scale.Equals(math3d.Splat3(d.Scale.X), tol)
	trs.Sheared = !uniform && !d.ScaleOrientation.Equals(math3d.IdentityRotation[scalar.Real](), tol)
	return trs, nil
}

// BakeTRS replaces every node matrix in doc with the equivalent TRS. Nodes
// that are singular or sheared keep their matrix and are reported in the
// joined error. It returns the number of nodes rewritten.
func BakeTRS(doc *gltf.Document) (int, error) {
	s, err := New(doc)
	if err != nil {
		return 0, err
	}

	var (
		baked int
		errs  []error
	)
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if !n.Matrix {
			continue
		}
		trs, err := n.TRS()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if trs.Sheared {
			errs = append(errs, fmt.Errorf("node %d %q: %w", n.Index, n.Name, ErrSheared))
			continue
		}

		gn := doc.Nodes[i]
		gn.Matrix = gltf.DefaultMatrix
		gn.Translation = trs.Translation
		gn.Rotation = trs.Rotation
		gn.Scale = trs.Scale
		baked++
	}
	return baked, errors.Join(errs...)
}

// Save writes doc to path, as binary glTF when the extension is .glb.
func Save(doc *gltf.Document, path string) error {
	var err error
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("save gltf: %w", err)
	}
	return nil
}
