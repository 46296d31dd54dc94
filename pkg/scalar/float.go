package scalar

import (
	"fmt"

	"github.com/chewxy/math32"
)

const (
	floatEpsilon = 1e-7
	floatMax     = 1e38
)

// Float is a float32 scalar. Division by zero returns the same sentinels as
// the fixed-point kernel, so no operation produces NaN or infinity from
// finite input.
type Float struct {
	v float32
}

// F wraps a float32.
func F(v float32) Float { return Float{v} }

// Add returns a + b.
func (a Float) Add(b Float) Float { return Float{a.v + b.v} }

// Sub returns a - b.
func (a Float) Sub(b Float) Float { return Float{a.v - b.v} }

// Neg returns -a.
func (a Float) Neg() Float { return Float{-a.v} }

// Mul returns a * b.
func (a Float) Mul(b Float) Float { return Float{a.v * b.v} }

// Div returns a / b. 0/0 is 1 and x/0 is ±Max.
func (a Float) Div(b Float) Float {
	if b.v == 0 {
		return Float{zeroDivide(a.v)}
	}
	return Float{a.v / b.v}
}

func zeroDivide(a float32) float32 {
	switch {
	case a == 0:
		return 1
	case a < 0:
		saturated("divide by zero")
		return -floatMax
	}
	saturated("divide by zero")
	return floatMax
}

// MulDiv returns a * b / c.
func (a Float) MulDiv(b, c Float) Float { return a.Mul(b).Div(c) }

// Square returns a * a.
func (a Float) Square() Float { return Float{a.v * a.v} }

// Recip returns 1 / a.
func (a Float) Recip() Float { return Float{1}.Div(a) }

// Sqrt returns the square root of a, or 0 for negative a.
func (a Float) Sqrt() Float {
	if a.v <= 0 {
		return Float{}
	}
	return Float{math32.Sqrt(a.v)}
}

// RecipSqrt returns 1 / sqrt(a).
func (a Float) RecipSqrt() Float { return a.Sqrt().Recip() }

// Abs returns |a|.
func (a Float) Abs() Float { return Float{math32.Abs(a.v)} }

// Floor rounds toward negative infinity.
func (a Float) Floor() Float { return Float{math32.Floor(a.v)} }

// Ceil rounds toward positive infinity.
func (a Float) Ceil() Float { return Float{math32.Ceil(a.v)} }

// Trunc rounds toward zero.
func (a Float) Trunc() Float { return Float{math32.Trunc(a.v)} }

// Less reports whether a < b.
func (a Float) Less(b Float) bool { return a.v < b.v }

// Cmp returns -1, 0 or +1.
func (a Float) Cmp(b Float) int {
	switch {
	case a.v < b.v:
		return -1
	case a.v > b.v:
		return 1
	}
	return 0
}

// Sign returns -1, 0 or +1.
func (a Float) Sign() int { return a.Cmp(Float{}) }

// IsZero reports whether a == 0.
func (a Float) IsZero() bool { return a.v == 0 }

// AlmostEqual reports |a-b| <= 1e-7 * 2^bitsTol.
func (a Float) AlmostEqual(b Float, bitsTol uint) bool {
	tol := math32.Ldexp(floatEpsilon, int(min(bitsTol, 126)))
	return math32.Abs(a.v-b.v) <= tol
}

// Sin returns the sine of a radians.
func (a Float) Sin() Float { return Float{math32.Sin(a.v)} }

// Cos returns the cosine of a radians.
func (a Float) Cos() Float { return Float{math32.Cos(a.v)} }

// SinCos returns Sin and Cos.
func (a Float) SinCos() (sin, cos Float) {
	s, c := math32.Sincos(a.v)
	return Float{s}, Float{c}
}

// Atan2 returns the angle of (x, a) in (-π, π].
func (a Float) Atan2(x Float) Float { return Float{math32.Atan2(a.v, x.v)} }

// Asin returns the arcsine of a, clamped to [-1, 1].
func (a Float) Asin() Float { return Float{math32.Asin(clampUnit(a.v))} }

// Acos returns the arccosine of a, clamped to [-1, 1].
func (a Float) Acos() Float { return Float{math32.Acos(clampUnit(a.v))} }

func clampUnit(v float32) float32 {
	return min(max(v, -1), 1)
}

// Float32 returns the stored value.
func (a Float) Float32() float32 { return a.v }

// Float64 converts to float64.
func (a Float) Float64() float64 { return float64(a.v) }

// Int returns the integer part, rounding toward negative infinity.
func (a Float) Int() int64 { return int64(math32.Floor(a.v)) }

// FromFloat converts f.
func (Float) FromFloat(f float64) Float { return Float{float32(f)} }

// FromInt converts n.
func (Float) FromInt(n int64) Float { return Float{float32(n)} }

// Epsilon returns 1e-7.
func (Float) Epsilon() Float { return Float{floatEpsilon} }

// Max returns 1e38.
func (Float) Max() Float { return Float{floatMax} }

// String formats the value as a decimal.
func (a Float) String() string {
	return fmt.Sprintf("%.6g", a.v)
}
