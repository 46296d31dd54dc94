package scalar

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw16(f float64) int32 { return fixedFromFloat(f, 16) }

func TestFixedMul(t *testing.T) {
	tests := []struct {
		name  string
		a, b  int32
		radix uint
		want  int32
	}{
		{"1.5*2", 0x18000, 0x20000, 16, 0x30000},
		{"-1.5*2", -0x18000, 0x20000, 16, -0x30000},
		{"-1.5*-2", -0x18000, -0x20000, 16, 0x30000},
		{"0.5*0.5", 0x8000, 0x8000, 16, 0x4000},
		{"zero left", 0, 0x7fffffff, 16, 0},
		{"zero right", 0x10000, 0, 16, 0},
		{"ulp*ulp truncates", 1, 1, 16, 0},
		{"neg ulp truncates toward zero", -1, 1, 16, 0},
		{"181*181 fits", 181 << 16, 181 << 16, 16, 32761 << 16},
		{"256*256 saturates", 256 << 16, 256 << 16, 16, math.MaxInt32},
		{"-256*256 saturates", -256 << 16, 256 << 16, 16, -math.MaxInt32},
		{"radix12 1.5*2", 0x1800, 0x2000, 12, 0x3000},
		{"radix12 mid term", 100 << 12, 2 << 12, 12, 200 << 12},
		{"radix12 -100*2.5", -100 << 12, 0x2800, 12, -250 << 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fixedMul(tt.a, tt.b, tt.radix))
		})
	}
}

func TestFixedDiv(t *testing.T) {
	tests := []struct {
		name  string
		a, b  int32
		radix uint
		want  int32
	}{
		{"3/2", 0x30000, 0x20000, 16, 0x18000},
		{"-3/2", -0x30000, 0x20000, 16, -0x18000},
		{"3/-2", 0x30000, -0x20000, 16, -0x18000},
		{"1/3 truncates", 0x10000, 0x30000, 16, 0x5555},
		{"1/1", 0x10000, 0x10000, 16, 0x10000},
		{"ulp/1", 1, 0x10000, 16, 1},
		{"ulp/2 underflows", 1, 0x20000, 16, 0},
		{"0/5", 0, 5 << 16, 16, 0},
		{"0/0 is one", 0, 0, 16, 0x10000},
		{"1/0 saturates", 0x10000, 0, 16, math.MaxInt32},
		{"-1/0 saturates negative", -0x10000, 0, 16, -math.MaxInt32},
		{"30000/0.5 overflows", 30000 << 16, 0x8000, 16, math.MaxInt32},
		{"-30000/0.5 overflows", -30000 << 16, 0x8000, 16, -math.MaxInt32},
		{"radix12 3/2", 0x3000, 0x2000, 12, 0x1800},
		{"radix12 0/0 is one", 0, 0, 12, 0x1000},
		{"radix12 ulp/2 underflows", 1, 0x2000, 12, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fixedDiv(tt.a, tt.b, tt.radix))
		})
	}
}

func TestFixedMulDivInverse(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, radix := range []uint{16, 12} {
		for range 2000 {
			a := fixedFromFloat(rng.Float64()*2000-1000, radix)
			b := fixedFromFloat(0.0625+rng.Float64()*0.9375, radix)
			if rng.IntN(2) == 0 {
				b = -b
			}
			got := fixedMul(fixedDiv(a, b, radix), b, radix)
			diff := int64(got) - int64(a)
			require.LessOrEqualf(t, abs64(diff), int64(2),
				"radix %d: (%d/%d)*%d = %d", radix, a, b, b, got)
		}
	}
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestFixedMulDiv(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		want    float64
	}{
		{"direct path", 2, 3, 4, 1.5},
		{"product overflows, divide b first", 200, 300, 400, 150},
		{"product overflows, divide a first", 300, 200, 400, 150},
		{"negative", -200, 300, 400, -150},
		{"scale by ratio", 1000, 7, 8, 875},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fixedToFloat(fixedMulDiv(raw16(tt.a), raw16(tt.b), raw16(tt.c), 16), 16)
			assert.InDelta(t, tt.want, got, 1e-3)
		})
	}
}

func TestFixedRounding(t *testing.T) {
	tests := []struct {
		in                 float64
		floor, ceil, trunc float64
	}{
		{1.5, 1, 2, 1},
		{-1.5, -2, -1, -1},
		{2, 2, 2, 2},
		{-2, -2, -2, -2},
		{0, 0, 0, 0},
		{1.0 / 65536, 0, 1, 0},
		{-1.0 / 65536, -1, 0, 0},
	}
	for _, tt := range tests {
		a := raw16(tt.in)
		assert.Equal(t, raw16(tt.floor), fixedFloor(a, 16), "floor(%v)", tt.in)
		assert.Equal(t, raw16(tt.ceil), fixedCeil(a, 16), "ceil(%v)", tt.in)
		assert.Equal(t, raw16(tt.trunc), fixedTrunc(a, 16), "trunc(%v)", tt.in)
	}
}

func TestFixedAlmostEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b int32
		tol  uint
		want bool
	}{
		{"exact", 5, 5, 0, true},
		{"exact differs", 5, 6, 0, false},
		{"same bucket", 0x10001, 0x1000e, 4, true},
		{"power of two straddle", 0x0ffff, 0x10000, 4, true},
		{"straddle reversed", 0x10000, 0x0ffff, 4, true},
		{"too far", 0x10000, 0x10020, 4, false},
		{"negative straddle", -0x10000, -0x10001, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fixedAlmostEqual(tt.a, tt.b, tt.tol))
		})
	}
}

func TestTableInterp(t *testing.T) {
	table := []int32{0, 100, 200}

	t.Run("zero remainder reads one entry", func(t *testing.T) {
		assert.Equal(t, int32(100), TableInterp(table, 1, 0, false, 0, 16))
		// Last index with no remainder must not touch index+1.
		assert.Equal(t, int32(200), TableInterp(table, 2, 0, false, 0, 16))
	})

	t.Run("negate", func(t *testing.T) {
		assert.Equal(t, int32(-200), TableInterp(table, 2, 0, true, 0, 16))
	})

	t.Run("halfway rounds", func(t *testing.T) {
		unit := []int32{0, 1 << 16}
		assert.Equal(t, int32(1<<15), TableInterp(unit, 0, 1<<15, false, 0, 16))
		assert.Equal(t, int32(1<<15), TableInterp(unit, 0, 1<<13, false, 2, 16))
		assert.Equal(t, int32(50), TableInterp(table, 0, 1<<15, false, 0, 16))
		assert.Equal(t, int32(150), TableInterp(table, 1, 1<<11, false, 0, 12))
	})
}

func TestFixedSqrtRecip(t *testing.T) {
	for _, x := range []float64{0.01, 0.25, 1, 2, 3, 4, 10, 100, 1000, 30000} {
		a := Fixed16{}.FromFloat(x)
		assert.InDelta(t, math.Sqrt(x), a.Sqrt().Float64(), 1e-4, "sqrt(%v)", x)
		assert.InEpsilon(t, 1/math.Sqrt(x), a.RecipSqrt().Float64(), 2e-3, "rsqrt(%v)", x)
		if x >= 0.25 {
			assert.InDelta(t, 1/x, a.Recip().Float64(), 1e-4, "recip(%v)", x)
		}
	}

	assert.Equal(t, int32(2<<16), Fixed16{}.FromInt(4).Sqrt().Raw())
	assert.Equal(t, int32(0x4000), Fixed16{}.FromInt(4).Recip().Raw())
	assert.Equal(t, int32(0x5555), Fixed16{}.FromInt(3).Recip().Raw())
	assert.Equal(t, int32(-0x4000), Fixed16{}.FromInt(-4).Recip().Raw())
	assert.True(t, Fixed16{}.FromInt(-4).Sqrt().IsZero())
	assert.Equal(t, int32(math.MaxInt32), FixedFromRaw[Radix16](1).Recip().Raw())
	assert.Equal(t, int32(math.MaxInt32), Fixed16{}.Recip().Raw())

	for _, x := range []float64{0.5, 2, 9, 100, 5000} {
		a := Fixed12{}.FromFloat(x)
		assert.InDelta(t, math.Sqrt(x), a.Sqrt().Float64(), 1e-3, "sqrt12(%v)", x)
		assert.InDelta(t, 1/x, a.Recip().Float64(), 1e-3, "recip12(%v)", x)
	}
}

func TestRecipMatchesDivide(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for _, radix := range []uint{16, 12} {
		one := int32(1) << radix
		for range 2000 {
			a := int32(rng.Int32N(1<<28)) + 2
			assert.Equal(t, fixedDiv(one, a, radix), fixedRecip(a, radix), "radix %d: 1/%d", radix, a)
		}
	}
}

func TestFixedSaturatingAdd(t *testing.T) {
	big := Fixed16{}.FromInt(30000)
	assert.Equal(t, int32(math.MaxInt32), big.Add(big).Raw())
	assert.Equal(t, int32(-math.MaxInt32), big.Neg().Sub(big).Raw())
	assert.Equal(t, 3.0, Fixed16{}.FromInt(1).Add(Fixed16{}.FromInt(2)).Float64())
}

func TestFixedConversions(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{1.75, 1},
		{-1.75, -2},
		{0, 0},
		{32000.5, 32000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fixed16{}.FromFloat(tt.in).Int(), "int(%v)", tt.in)
		assert.Equal(t, tt.want, Fixed12{}.FromFloat(tt.in).Int(), "int12(%v)", tt.in)
	}

	assert.Equal(t, int32(math.MaxInt32), Fixed16{}.FromFloat(1e9).Raw())
	assert.Equal(t, int32(-math.MaxInt32), Fixed16{}.FromInt(-40000).Raw())
	assert.Equal(t, int32(0), Fixed16{}.FromFloat(math.NaN()).Raw())
	assert.Equal(t, uint(12), Fixed12{}.Radix())
	assert.Equal(t, "scalar.Fixed16(0x00018000)", Fixed16{}.FromFloat(1.5).GoString())
	assert.Equal(t, "-2.5", Fixed12{}.FromFloat(-2.5).String())
}
