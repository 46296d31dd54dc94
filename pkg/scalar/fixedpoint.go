package scalar

import (
	"fmt"
	"math"
)

// Radix selects the number of fractional bits of a [Fixed] value.
type Radix interface {
	Bits() uint
}

// Radix16 is the 16.16 format.
type Radix16 struct{}

// Bits returns 16.
func (Radix16) Bits() uint { return 16 }

// Radix12 is the 20.12 format.
type Radix12 struct{}

// Bits returns 12.
func (Radix12) Bits() uint { return 12 }

// Fixed is a signed 32-bit binary fixed-point number with R.Bits()
// fractional bits. The zero value is 0.
type Fixed[R Radix] struct {
	v int32
}

// Fixed16 stores value * 2^16.
type Fixed16 = Fixed[Radix16]

// Fixed12 stores value * 2^12.
type Fixed12 = Fixed[Radix12]

// FixedFromRaw wraps a stored integer without conversion.
func FixedFromRaw[R Radix](v int32) Fixed[R] {
	return Fixed[R]{v}
}

func radixOf[R Radix]() uint {
	var r R
	return r.Bits()
}

// Raw returns the stored integer.
func (a Fixed[R]) Raw() int32 { return a.v }

// Radix returns the number of fractional bits.
func (Fixed[R]) Radix() uint { return radixOf[R]() }

// Add returns a + b, saturating on overflow.
func (a Fixed[R]) Add(b Fixed[R]) Fixed[R] {
	return Fixed[R]{clampSum(int64(a.v)+int64(b.v), "add")}
}

// Sub returns a - b, saturating on overflow.
func (a Fixed[R]) Sub(b Fixed[R]) Fixed[R] {
	return Fixed[R]{clampSum(int64(a.v)-int64(b.v), "subtract")}
}

func clampSum(s int64, op string) int32 {
	switch {
	case s > fixedMax:
		return saturate(op, false)
	case s < -fixedMax:
		return saturate(op, true)
	}
	return int32(s)
}

// Neg returns -a.
func (a Fixed[R]) Neg() Fixed[R] { return Fixed[R]{-a.v} }

// Mul returns a * b.
func (a Fixed[R]) Mul(b Fixed[R]) Fixed[R] {
	return Fixed[R]{fixedMul(a.v, b.v, radixOf[R]())}
}

// Div returns a / b.
func (a Fixed[R]) Div(b Fixed[R]) Fixed[R] {
	return Fixed[R]{fixedDiv(a.v, b.v, radixOf[R]())}
}

// MulDiv returns a * b / c.
func (a Fixed[R]) MulDiv(b, c Fixed[R]) Fixed[R] {
	return Fixed[R]{fixedMulDiv(a.v, b.v, c.v, radixOf[R]())}
}

// Square returns a * a.
func (a Fixed[R]) Square() Fixed[R] { return a.Mul(a) }

// Recip returns 1 / a.
func (a Fixed[R]) Recip() Fixed[R] {
	return Fixed[R]{fixedRecip(a.v, radixOf[R]())}
}

// Sqrt returns the square root of a, or 0 for negative a.
func (a Fixed[R]) Sqrt() Fixed[R] {
	return Fixed[R]{fixedSqrt(a.v, radixOf[R]())}
}

// RecipSqrt returns 1 / sqrt(a).
func (a Fixed[R]) RecipSqrt() Fixed[R] {
	r := radixOf[R]()
	return Fixed[R]{fixedDiv(1<<r, fixedSqrt(a.v, r), r)}
}

// Abs returns |a|.
func (a Fixed[R]) Abs() Fixed[R] {
	if a.v < 0 {
		return Fixed[R]{-a.v}
	}
	return a
}

// Floor rounds toward negative infinity.
func (a Fixed[R]) Floor() Fixed[R] { return Fixed[R]{fixedFloor(a.v, radixOf[R]())} }

// Ceil rounds toward positive infinity.
func (a Fixed[R]) Ceil() Fixed[R] { return Fixed[R]{fixedCeil(a.v, radixOf[R]())} }

// Trunc rounds toward zero.
func (a Fixed[R]) Trunc() Fixed[R] { return Fixed[R]{fixedTrunc(a.v, radixOf[R]())} }

// Less reports whether a < b.
func (a Fixed[R]) Less(b Fixed[R]) bool { return a.v < b.v }

// Cmp returns -1, 0 or +1.
func (a Fixed[R]) Cmp(b Fixed[R]) int {
	switch {
	case a.v < b.v:
		return -1
	case a.v > b.v:
		return 1
	}
	return 0
}

// Sign returns -1, 0 or +1.
func (a Fixed[R]) Sign() int { return a.Cmp(Fixed[R]{}) }

// IsZero reports whether a == 0.
func (a Fixed[R]) IsZero() bool { return a.v == 0 }

// AlmostEqual ignores the low bitsTol bits.
func (a Fixed[R]) AlmostEqual(b Fixed[R], bitsTol uint) bool {
	return fixedAlmostEqual(a.v, b.v, bitsTol)
}

// Sin returns the sine of a radians.
func (a Fixed[R]) Sin() Fixed[R] {
	return Fixed[R]{tablesFor(radixOf[R]()).sin(a.v)}
}

// Cos returns the cosine of a radians.
func (a Fixed[R]) Cos() Fixed[R] {
	return Fixed[R]{tablesFor(radixOf[R]()).cos(a.v)}
}

// SinCos returns Sin and Cos from one phase reduction.
func (a Fixed[R]) SinCos() (sin, cos Fixed[R]) {
	t := tablesFor(radixOf[R]())
	phase := phaseOf(a.v, t.radix)
	return Fixed[R]{t.sinPhase(phase)}, Fixed[R]{t.sinPhase(phase + 1<<30)}
}

// Atan2 returns the angle of (x, a) in (-π, π].
func (a Fixed[R]) Atan2(x Fixed[R]) Fixed[R] {
	return Fixed[R]{tablesFor(radixOf[R]()).atan2(a.v, x.v)}
}

// Asin returns the arcsine of a, clamped to [-1, 1].
func (a Fixed[R]) Asin() Fixed[R] {
	return Fixed[R]{tablesFor(radixOf[R]()).asin(a.v)}
}

// Acos returns the arccosine of a, clamped to [-1, 1].
func (a Fixed[R]) Acos() Fixed[R] {
	return Fixed[R]{tablesFor(radixOf[R]()).acos(a.v)}
}

// Float32 converts to float32.
func (a Fixed[R]) Float32() float32 { return float32(a.Float64()) }

// Float64 converts to float64.
func (a Fixed[R]) Float64() float64 { return fixedToFloat(a.v, radixOf[R]()) }

// Int returns the integer part, rounding toward negative infinity.
func (a Fixed[R]) Int() int64 { return int64(a.v >> radixOf[R]()) }

// FromFloat rounds f to the nearest representable value.
func (Fixed[R]) FromFloat(f float64) Fixed[R] {
	return Fixed[R]{fixedFromFloat(f, radixOf[R]())}
}

// FromInt converts n.
func (Fixed[R]) FromInt(n int64) Fixed[R] {
	return Fixed[R]{fixedFromInt(n, radixOf[R]())}
}

// Epsilon returns one unit in the last place.
func (Fixed[R]) Epsilon() Fixed[R] { return Fixed[R]{1} }

// Max returns the saturation value.
func (Fixed[R]) Max() Fixed[R] { return Fixed[R]{math.MaxInt32} }

// String formats the value as a decimal.
func (a Fixed[R]) String() string {
	return fmt.Sprintf("%.6g", a.Float64())
}

// GoString shows the raw value and radix.
func (a Fixed[R]) GoString() string {
	return fmt.Sprintf("scalar.Fixed%d(0x%08x)", radixOf[R](), uint32(a.v))
}
