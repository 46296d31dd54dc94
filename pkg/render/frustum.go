package render

import (
	"github.com/taigrr/lantern/pkg/math3d"
	"github.com/taigrr/lantern/pkg/scalar"
)

// Plane is the plane Normal·p + D = 0.
type Plane struct {
	Normal Vec3
	D      scalar.Real
}

// Normalize scales the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l.IsZero() {
		return
	}
	p.Normal = p.Normal.Div(l)
	p.D = p.D.Div(l)
}

// Distance returns the signed distance from the plane to point, positive on
// the side the normal points to.
func (p Plane) Distance(point Vec3) scalar.Real {
	return p.Normal.Dot(point).Add(p.D)
}

// Frustum holds six inward-facing planes: left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// Frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// FrustumFromMatrix extracts the planes of a view-projection matrix
// (Gribb/Hartmann). Plane i combines row 3 with row i/2 of the matrix.
func FrustumFromMatrix(m Mat4) Frustum {
	var f Frustum
	row := func(r int) Vec4 {
		return math3d.V4(m.Get(r, 0), m.Get(r, 1), m.Get(r, 2), m.Get(r, 3))
	}
	w := row(3)
	for i := range 3 {
		r := row(i)
		for j, v := range [2]Vec4{w.Add(r), w.Sub(r)} {
			p := Plane{Normal: v.Vec3(), D: v.W}
			p.Normalize()
			f.Planes[2*i+j] = p
		}
	}
	return f
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// Center returns the center of the box.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(scalar.Half[scalar.Real]())
}

// Corners returns the eight corners, bit i of the index selecting Max on
// axis i.
func (b AABB) Corners() [8]Vec3 {
	var cs [8]Vec3
	for i := range cs {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		cs[i] = c
	}
	return cs
}

// Transform returns the box bounding b after m.
func (b AABB) Transform(m Transform) AABB {
	cs := b.Corners()
	out := AABB{Min: m.MulPoint(cs[0])}
	out.Max = out.Min
	for _, c := range cs[1:] {
		p := m.MulPoint(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// ContainsPoint reports whether p is inside the box.
func (b AABB) ContainsPoint(p Vec3) bool {
	return !p.X.Less(b.Min.X) && !b.Max.X.Less(p.X) &&
		!p.Y.Less(b.Min.Y) && !b.Max.Y.Less(p.Y) &&
		!p.Z.Less(b.Min.Z) && !b.Max.Z.Less(p.Z)
}

// IntersectAABB reports whether any part of box may be visible. Only the
// corner furthest along each plane normal is tested.
func (f Frustum) IntersectAABB(box AABB) bool {
	for _, p := range f.Planes {
		if p.Distance(extreme(p.Normal, box.Max, box.Min)).Sign() < 0 {
			return false
		}
	}
	return true
}

// ContainsAABB reports whether box is entirely inside the frustum.
func (f Frustum) ContainsAABB(box AABB) bool {
	for _, p := range f.Planes {
		if p.Distance(extreme(p.Normal, box.Min, box.Max)).Sign() < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether p is inside the frustum.
func (f Frustum) ContainsPoint(p Vec3) bool {
	for _, pl := range f.Planes {
		if pl.Distance(p).Sign() < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether a sphere touches the frustum.
func (f Frustum) IntersectsSphere(center Vec3, radius scalar.Real) bool {
	for _, p := range f.Planes {
		if p.Distance(center).Less(radius.Neg()) {
			return false
		}
	}
	return true
}

// extreme picks, per axis, pos where n is non-negative and neg elsewhere.
func extreme(n, pos, neg Vec3) Vec3 {
	pick := func(s, a, b scalar.Real) scalar.Real {
		if s.Sign() >= 0 {
			return a
		}
		return b
	}
	return math3d.V3(pick(n.X, pos.X, neg.X), pick(n.Y, pos.Y, neg.Y), pick(n.Z, pos.Z, neg.Z))
}

// clipDistances returns w±x, w±y, w±z; all are non-negative inside the view
// volume.
func clipDistances(v Vec4) [6]scalar.Real {
	return [6]scalar.Real{
		v.W.Add(v.X), v.W.Sub(v.X),
		v.W.Add(v.Y), v.W.Sub(v.Y),
		v.W.Add(v.Z), v.W.Sub(v.Z),
	}
}

// clipLine clips the clip-space segment a-b to the view volume
// (Liang-Barsky in homogeneous coordinates). It reports false when nothing
// is left.
func clipLine(a, b Vec4) (Vec4, Vec4, bool) {
	t0, t1 := scalar.Zero[scalar.Real](), scalar.One[scalar.Real]()
	da, db := clipDistances(a), clipDistances(b)
	for i := range da {
		d0, d1 := da[i], db[i]
		switch {
		case d0.Sign() < 0 && d1.Sign() < 0:
			return a, b, false
		case d0.Sign() < 0:
			t0 = scalar.Max(t0, d0.Div(d0.Sub(d1)))
		case d1.Sign() < 0:
			t1 = scalar.Min(t1, d0.Div(d0.Sub(d1)))
		}
		if t1.Less(t0) {
			return a, b, false
		}
	}
	return a.Lerp(b, t0), a.Lerp(b, t1), true
}
