package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/lantern/pkg/math3d"
	"github.com/taigrr/lantern/pkg/scalar"
)

// EdgeMesh is the set of unique edges of a mesh, for wireframe drawing.
type EdgeMesh struct {
	Name      string
	Positions []Vec3
	Edges     [][2]int

	// Bounding box (calculated on load)
	BoundsMin Vec3
	BoundsMax Vec3
}

// Edges reads the triangle and line primitives of mesh idx. Positions are in
// the mesh frame.
func Edges(doc *gltf.Document, idx int) (*EdgeMesh, error) {
	if idx < 0 || idx >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh %d out of range", idx)
	}
	m := doc.Meshes[idx]
	em := &EdgeMesh{Name: m.Name}
	seen := make(map[[2]int]struct{})
	add := func(a, b int) {
		if a == b {
			return
		}
		if b < a {
			a, b = b, a
		}
		e := [2]int{a, b}
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		em.Edges = append(em.Edges, e)
	}

	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != gltf.PrimitiveLines {
			// Points, strips and fans carry no edges we draw
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: read positions: %w", m.Name, err)
		}

		base := len(em.Positions)
		for _, p := range positions {
			em.Positions = append(em.Positions, math3d.V3f[scalar.Real](float64(p[0]), float64(p[1]), float64(p[2])))
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: read indices: %w", m.Name, err)
			}
		} else {
			// No indices, assume sequential vertices
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}
		for _, i := range indices {
			if i >= len(positions) {
				return nil, fmt.Errorf("mesh %q: index %d out of range", m.Name, i)
			}
		}

		if prim.Mode == gltf.PrimitiveLines {
			for i := 0; i+1 < len(indices); i += 2 {
				add(base+indices[i], base+indices[i+1])
			}
			continue
		}
		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := base+indices[i], base+indices[i+1], base+indices[i+2]
			add(a, b)
			add(b, c)
			add(c, a)
		}
	}

	em.CalculateBounds()
	return em, nil
}

// Edges merges the edges of every mesh node in the scene, with positions
// moved into the scene frame.
func (s *Scene) Edges() (*EdgeMesh, error) {
	out := &EdgeMesh{Name: s.Name}
	cache := make(map[int]*EdgeMesh)
	err := s.Walk(func(n *Node, world Transform) error {
		if n.Mesh < 0 {
			return nil
		}
		em, ok := cache[n.Mesh]
		if !ok {
			var err error
			if em, err = Edges(s.Doc, n.Mesh); err != nil {
				return err
			}
			cache[n.Mesh] = em
		}

		base := len(out.Positions)
		for _, p := range em.Positions {
			out.Positions = append(out.Positions, world.MulPoint(p))
		}
		for _, e := range em.Edges {
			out.Edges = append(out.Edges, [2]int{base + e[0], base + e[1]})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.CalculateBounds()
	return out, nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *EdgeMesh) CalculateBounds() {
	if len(m.Positions) == 0 {
		return
	}

	m.BoundsMin = m.Positions[0]
	m.BoundsMax = m.Positions[0]

	for _, p := range m.Positions[1:] {
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *EdgeMesh) Center() Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(scalar.Half[scalar.Real]())
}

// Size returns the dimensions of the bounding box.
func (m *EdgeMesh) Size() Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Fit returns the transform that centers the mesh at the origin and scales
// its largest dimension to size.
func (m *EdgeMesh) Fit(size scalar.Real) Transform {
	d := m.Size()
	longest := scalar.Max(d.X, scalar.Max(d.Y, d.Z))
	t := math3d.Translation(m.Center().Negate())
	if longest.IsZero() {
		return t
	}
	return t.Mul(math3d.UniformScaling(size.Div(longest)))
}

// EdgeCount returns the number of edges.
func (m *EdgeMesh) EdgeCount() int {
	return len(m.Edges)
}

// VertexCount returns the number of positions.
func (m *EdgeMesh) VertexCount() int {
	return len(m.Positions)
}
