package math3d

import "github.com/taigrr/lantern/pkg/scalar"

// jacobiSweeps caps the number of passes over the off-diagonal elements.
const jacobiSweeps = 50

// jacobi3 diagonalizes the symmetric 3x3 matrix a with cyclic Jacobi
// rotations. Column k of vecs is the unit eigenvector for vals[k]. rots counts
// the element visits.
func jacobi3[S scalar.Scalar[S]](a [3][3]S) (vals [3]S, vecs [3][3]S, rots int) {
	var (
		zero    S
		one     = zero.FromInt(1)
		half    = zero.FromFloat(0.5)
		hundred = zero.FromInt(100)
		// 0.2 * sm / (n*n) for n = 3
		early = zero.FromFloat(0.2 / 9)
	)

	var b, z [3]S
	for i := range 3 {
		vals[i] = a[i][i]
		b[i] = a[i][i]
		vecs[i][i] = one
	}

	for sweep := range jacobiSweeps {
		var sm S
		for p := range 2 {
			for q := p + 1; q < 3; q++ {
				sm = sm.Add(a[p][q].Abs())
			}
		}
		if sm.IsZero() {
			return vals, vecs, rots
		}

		thresh := zero
		if sweep < 3 {
			thresh = sm.Mul(early)
		}

		for p := range 2 {
			for q := p + 1; q < 3; q++ {
				apq := a[p][q]
				g := hundred.Mul(apq.Abs())

				// After four sweeps an element too small to change either
				// eigenvalue is dropped without a rotation.
				if sweep > 3 && unchanged(vals[p], g) && unchanged(vals[q], g) {
					a[p][q] = zero
				} else if thresh.Less(apq.Abs()) {
					h := vals[q].Sub(vals[p])

					var t S
					if unchanged(h, g) {
						t = apq.Div(h)
					} else {
						theta := half.MulDiv(h, apq)
						t = theta.Abs().Add(one.Add(theta.Square()).Sqrt()).Recip()
						if theta.Sign() < 0 {
							t = t.Neg()
						}
					}

					c := one.Add(t.Square()).Sqrt().Recip()
					s := t.Mul(c)
					tau := s.Div(one.Add(c))
					h = t.Mul(apq)
					z[p] = z[p].Sub(h)
					z[q] = z[q].Add(h)
					vals[p] = vals[p].Sub(h)
					vals[q] = vals[q].Add(h)
					a[p][q] = zero

					rotate := func(x, y *S) {
						g, h := *x, *y
						*x = g.Sub(s.Mul(h.Add(g.Mul(tau))))
						*y = h.Add(s.Mul(g.Sub(h.Mul(tau))))
					}
					for j := range p {
						rotate(&a[j][p], &a[j][q])
					}
					for j := p + 1; j < q; j++ {
						rotate(&a[p][j], &a[j][q])
					}
					for j := q + 1; j < 3; j++ {
						rotate(&a[p][j], &a[q][j])
					}
					for j := range 3 {
						rotate(&vecs[j][p], &vecs[j][q])
					}
				}
				rots++
			}
		}

		for p := range 3 {
			b[p] = b[p].Add(z[p])
			vals[p] = b[p]
			z[p] = zero
		}
	}
	return vals, vecs, rots
}

// unchanged reports whether adding g to |x| leaves it the same in the
// working precision.
func unchanged[S scalar.Scalar[S]](x, g S) bool {
	ax := x.Abs()
	return ax.Add(g) == ax
}
