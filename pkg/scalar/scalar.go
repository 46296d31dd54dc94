// Package scalar provides the numeric kernel of lantern: a single arithmetic
// contract implemented by a 32-bit fixed-point representation (radix 16 or 12)
// and by native float32.
//
// All geometry in math3d is written once against [Scalar] and instantiated
// with [Real], the representation selected at build time:
//
//	go build                  // Real = Float
//	go build -tags mlfixed    // Real = Fixed16
//	go build -tags mlfixed12  // Real = Fixed12
//
// Scalars are opaque. Arithmetic happens only through methods, so values of
// different representations can never meet in one expression.
package scalar

import (
	"golang.org/x/exp/constraints"
)

// Scalar is the arithmetic contract shared by every representation.
// Methods named From*, Epsilon and Max ignore their receiver; they exist so
// generic code can build values of S from its zero value.
type Scalar[S any] interface {
	comparable

	Add(b S) S
	Sub(b S) S
	Neg() S
	Mul(b S) S
	Div(b S) S
	// MulDiv returns a*b/c without the intermediate overflow of Mul then Div.
	MulDiv(b, c S) S
	Square() S
	Recip() S
	Sqrt() S
	RecipSqrt() S
	Abs() S
	Floor() S
	Ceil() S
	Trunc() S

	Less(b S) bool
	Cmp(b S) int
	Sign() int
	IsZero() bool
	// AlmostEqual compares with a tolerance of 2^bitsTol units of the
	// representation's resolution.
	AlmostEqual(b S, bitsTol uint) bool

	Sin() S
	Cos() S
	SinCos() (sin, cos S)
	// Atan2 treats the receiver as y.
	Atan2(x S) S
	Asin() S
	Acos() S

	Float32() float32
	Float64() float64
	// Int returns the largest integer not greater than the value.
	Int() int64

	FromFloat(f float64) S
	FromInt(n int64) S
	// Epsilon is the resolution of the representation near zero.
	Epsilon() S
	// Max is the saturation magnitude.
	Max() S
}

// FromFloat converts f to S.
func FromFloat[S Scalar[S]](f float64) S {
	var z S
	return z.FromFloat(f)
}

// FromInt converts n to S.
func FromInt[S Scalar[S]](n int64) S {
	var z S
	return z.FromInt(n)
}

// Of converts any Go integer or float to S.
func Of[S Scalar[S], N constraints.Integer | constraints.Float](n N) S {
	return FromFloat[S](float64(n))
}

// Zero returns 0.
func Zero[S Scalar[S]]() S {
	var z S
	return z
}

// One returns 1.
func One[S Scalar[S]]() S {
	return FromInt[S](1)
}

// Half returns 0.5.
func Half[S Scalar[S]]() S {
	return FromFloat[S](0.5)
}

// Pi returns π.
func Pi[S Scalar[S]]() S {
	return FromFloat[S](3.14159265358979323846)
}

// HalfPi returns π/2.
func HalfPi[S Scalar[S]]() S {
	return FromFloat[S](1.57079632679489661923)
}

// TwoPi returns 2π.
func TwoPi[S Scalar[S]]() S {
	return FromFloat[S](6.28318530717958647692)
}

// Epsilon returns the resolution of S.
func Epsilon[S Scalar[S]]() S {
	var z S
	return z.Epsilon()
}

// MaxValue returns the saturation magnitude of S.
func MaxValue[S Scalar[S]]() S {
	var z S
	return z.Max()
}

// Threshold converts a small positive constant to S, rounding it up to the
// representation's resolution when it would otherwise vanish.
func Threshold[S Scalar[S]](f float64) S {
	t := FromFloat[S](f)
	if t.IsZero() {
		return t.Epsilon()
	}
	return t
}

// Min returns the smaller of a and b.
func Min[S Scalar[S]](a, b S) S {
	if b.Less(a) {
		return b
	}
	return a
}

// Max returns the larger of a and b.
func Max[S Scalar[S]](a, b S) S {
	if a.Less(b) {
		return b
	}
	return a
}

// Clamp restricts x to [lo, hi].
func Clamp[S Scalar[S]](x, lo, hi S) S {
	return Min(Max(x, lo), hi)
}

// Lerp returns a + (b-a)*t.
func Lerp[S Scalar[S]](a, b, t S) S {
	return a.Add(b.Sub(a).Mul(t))
}

// PowInt raises x to an integer power by repeated squaring. Negative powers
// take the reciprocal of the result.
func PowInt[S Scalar[S]](x S, n int) S {
	neg := n < 0
	if neg {
		n = -n
	}
	result := One[S]()
	for n > 0 {
		if n&1 != 0 {
			result = result.Mul(x)
		}
		if n >>= 1; n > 0 {
			x = x.Square()
		}
	}
	if neg {
		return result.Recip()
	}
	return result
}

// Radians converts degrees to radians.
func Radians[S Scalar[S]](deg S) S {
	return deg.MulDiv(Pi[S](), FromInt[S](180))
}

// Degrees converts radians to degrees.
func Degrees[S Scalar[S]](rad S) S {
	return rad.MulDiv(FromInt[S](180), Pi[S]())
}
