package scalar

import (
	"math"
	"math/bits"
)

// Raw fixed-point kernel shared by Fixed16 and Fixed12. Every function takes
// the radix (number of fractional bits) explicitly and works on the stored
// int32.

const fixedMax = math.MaxInt32

func saturate(op string, neg bool) int32 {
	saturated(op)
	if neg {
		return -fixedMax
	}
	return fixedMax
}

func abs32(a int32) uint32 {
	if a < 0 {
		return uint32(-int64(a))
	}
	return uint32(a)
}

func signed(mag uint64, neg bool) int32 {
	if neg {
		return int32(-int64(mag))
	}
	return int32(mag)
}

// fixedMul multiplies from three 16-bit partial products so no intermediate
// needs more than 32 bits of magnitude. The result truncates toward zero.
func fixedMul(a, b int32, radix uint) int32 {
	if a == 0 || b == 0 {
		return 0
	}
	neg := (a < 0) != (b < 0)
	ua, ub := abs32(a), abs32(b)
	ahi, alo := uint64(ua>>16), uint64(ua&0xffff)
	bhi, blo := uint64(ub>>16), uint64(ub&0xffff)

	top := ahi * bhi
	if top >= 1<<(radix-1) {
		return saturate("multiply", neg)
	}
	mid := alo*bhi + ahi*blo
	lo := alo * blo

	r := top<<(32-radix) + mid<<(16-radix) + lo>>radix
	if r > fixedMax {
		return saturate("multiply", neg)
	}
	return signed(r, neg)
}

// fixedDiv divides by normalizing the dividend into [divisor, 2*divisor) and
// collecting one quotient bit per shift-subtract step.
func fixedDiv(a, b int32, radix uint) int32 {
	if b == 0 {
		if a == 0 {
			return 1 << radix
		}
		return saturate("divide by zero", a < 0)
	}
	if a == 0 {
		return 0
	}

	neg := (a < 0) != (b < 0)
	dividend := uint64(abs32(a))
	divisor := uint64(abs32(b))
	shift := int(radix)

	if dividend < divisor {
		for dividend < divisor {
			if shift--; shift < 0 {
				return 0
			}
			dividend <<= 1
		}
	} else {
		for dividend >= divisor<<1 {
			if shift++; shift >= 31 {
				return saturate("divide", neg)
			}
			divisor <<= 1
		}
	}

	var quotient uint64
	for {
		var bit uint64
		if dividend >= divisor {
			dividend -= divisor
			bit = 1
		}
		dividend <<= 1
		quotient = quotient<<1 | bit
		if shift--; shift < 0 || dividend == 0 {
			break
		}
	}
	if shift >= 0 {
		quotient <<= uint(shift + 1)
	}
	return signed(quotient, neg)
}

// fixedMulDiv estimates the bit length of a*b and divides first when the
// product would leave the working range.
func fixedMulDiv(a, b, c int32, radix uint) int32 {
	lenA := bits.Len32(abs32(a))
	lenB := bits.Len32(abs32(b))
	ind := lenA + lenB - int(radix) - 1
	if ind > 0 && ind < 31 {
		return fixedDiv(fixedMul(a, b, radix), c, radix)
	}
	if abs32(b) > abs32(a) {
		return fixedMul(fixedDiv(b, c, radix), a, radix)
	}
	return fixedMul(fixedDiv(a, c, radix), b, radix)
}

func upperMask(radix uint) int32 {
	return ^int32(1<<radix - 1)
}

func fixedFloor(a int32, radix uint) int32 {
	return a & upperMask(radix)
}

// fixedCeil subtracts one ulp, floors, then adds one.
func fixedCeil(a int32, radix uint) int32 {
	f := int64((a-1)&upperMask(radix)) + 1<<radix
	if f > fixedMax {
		return saturate("ceil", false)
	}
	return int32(f)
}

func fixedTrunc(a int32, radix uint) int32 {
	mag := abs32(a) & uint32(upperMask(radix))
	return signed(uint64(mag), a < 0)
}

// fixedAlmostEqual drops bitsTol low bits before comparing. A second pass at
// one bit less catches pairs that straddle a power of two, such as
// 0x0ffff and 0x10000.
func fixedAlmostEqual(a, b int32, bitsTol uint) bool {
	if bitsTol == 0 {
		return a == b
	}
	if bitsTol > 31 {
		bitsTol = 31
	}
	if a>>bitsTol == b>>bitsTol {
		return true
	}
	tol := bitsTol - 1
	diff := int64(a>>tol) - int64(b>>tol)
	return diff == 1 || diff == -1
}

// TableInterp linearly interpolates table[index] toward table[index+1] by
// remdr<<remdrShift units of 2^-radix, rounding to nearest. table[index+1]
// is only read when remdr is nonzero. The result is negated when negate is
// set.
func TableInterp(table []int32, index int, remdr int32, negate bool, remdrShift, radix uint) int32 {
	lower := int64(table[index])
	if remdr != 0 {
		upper := int64(table[index+1])
		delta := (upper - lower) * (int64(remdr) << remdrShift)
		lower += (delta + 1<<(radix-1)) >> radix
	}
	if negate {
		lower = -lower
	}
	return int32(lower)
}

func fixedFromFloat(f float64, radix uint) int32 {
	if math.IsNaN(f) {
		return 0
	}
	v := math.Round(math.Ldexp(f, int(radix)))
	switch {
	case v > fixedMax:
		return saturate("from float", false)
	case v < -fixedMax:
		return saturate("from float", true)
	}
	return int32(v)
}

func fixedFromInt(n int64, radix uint) int32 {
	limit := int64(fixedMax >> radix)
	switch {
	case n > limit:
		return saturate("from int", false)
	case n < -limit:
		return saturate("from int", true)
	}
	return int32(n << radix)
}

func fixedToFloat(a int32, radix uint) float64 {
	return math.Ldexp(float64(a), -int(radix))
}
