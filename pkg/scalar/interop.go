package scalar

import (
	"math"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/fixed"
)

// Conversions to and from the fixed-point types of golang.org/x/image.

// Int26_6 rounds a to the nearest 1/64.
func (a Fixed[R]) Int26_6() fixed.Int26_6 {
	r := radixOf[R]()
	return fixed.Int26_6((int64(a.v) + 1<<(r-7)) >> (r - 6))
}

// Int52_12 rounds a to the nearest 1/4096.
func (a Fixed[R]) Int52_12() fixed.Int52_12 {
	r := radixOf[R]()
	if r <= 12 {
		return fixed.Int52_12(int64(a.v) << (12 - r))
	}
	return fixed.Int52_12((int64(a.v) + 1<<(r-13)) >> (r - 12))
}

// FixedFromInt26_6 converts x, saturating outside the range of R.
func FixedFromInt26_6[R Radix](x fixed.Int26_6) Fixed[R] {
	return Fixed[R]{clampSum(int64(x)<<(radixOf[R]()-6), "from 26.6")}
}

// FixedFromInt52_12 converts x, saturating outside the range of R.
func FixedFromInt52_12[R Radix](x fixed.Int52_12) Fixed[R] {
	r := radixOf[R]()
	v := int64(x)
	if r >= 12 {
		if v > fixedMax>>(r-12) || v < -fixedMax>>(r-12) {
			return Fixed[R]{saturate("from 52.12", v < 0)}
		}
		return Fixed[R]{int32(v << (r - 12))}
	}
	return Fixed[R]{clampSum(v>>(12-r), "from 52.12")}
}

// Int26_6 rounds a to the nearest 1/64.
func (a Float) Int26_6() fixed.Int26_6 {
	v := math32.Round(a.v * 64)
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < -math.MaxInt32:
		return -math.MaxInt32
	}
	return fixed.Int26_6(v)
}

// Int52_12 rounds a to the nearest 1/4096.
func (a Float) Int52_12() fixed.Int52_12 {
	return fixed.Int52_12(math.Round(float64(a.v) * 4096))
}

// FloatFromInt26_6 converts x.
func FloatFromInt26_6(x fixed.Int26_6) Float {
	return Float{float32(x) / 64}
}

// Point26_6 converts a 2D point in any representation.
func Point26_6[S interface{ Int26_6() fixed.Int26_6 }](x, y S) fixed.Point26_6 {
	return fixed.Point26_6{X: x.Int26_6(), Y: y.Int26_6()}
}
