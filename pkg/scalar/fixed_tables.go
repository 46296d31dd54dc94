package scalar

import (
	"math"
	"math/bits"
)

// Lookup tables for the fixed-point sqrt, reciprocal and trig routines.
// They are filled once at package init and only read afterwards.

const (
	tableBits = 8
	tableSize = 1 << tableBits
)

var (
	// sqrtSeed[i] = ceil(sqrt(i+1) * 256), an overestimate of sqrt(i).
	sqrtSeed [tableSize]uint32
	// recipSeed[i] = round(2^24 / (i+128)) for 8-bit normalized divisors.
	recipSeed [tableSize / 2]uint32

	trig16 = newTrigTables(16)
	trig12 = newTrigTables(12)
)

func init() {
	for i := range sqrtSeed {
		sqrtSeed[i] = uint32(math.Ceil(math.Sqrt(float64(i+1)) * 256))
	}
	for i := range recipSeed {
		recipSeed[i] = uint32(math.Round((1 << 24) / float64(i+tableSize/2)))
	}
}

// trigTables holds quarter-wave sine and [0,1] arctangent samples at one
// radix. Both carry tableSize+1 entries so the last bin can interpolate.
type trigTables struct {
	radix     uint
	sinTable  []int32
	atanTable []int32
	// halfPi and pi in raw units.
	halfPi, pi int32
}

func newTrigTables(radix uint) *trigTables {
	t := &trigTables{
		radix:     radix,
		sinTable:  make([]int32, tableSize+1),
		atanTable: make([]int32, tableSize+1),
		halfPi:    fixedFromFloat(math.Pi/2, radix),
		pi:        fixedFromFloat(math.Pi, radix),
	}
	for i := range tableSize + 1 {
		x := float64(i) / tableSize
		t.sinTable[i] = fixedFromFloat(math.Sin(x*math.Pi/2), radix)
		t.atanTable[i] = fixedFromFloat(math.Atan(x), radix)
	}
	return t
}

func tablesFor(radix uint) *trigTables {
	if radix == 12 {
		return trig12
	}
	return trig16
}

// isqrt returns floor(sqrt(n)) by Newton iteration from a table seed.
func isqrt(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	shift := bits.Len64(n) - tableBits
	if shift < 0 {
		shift = 0
	}
	shift = (shift + 1) &^ 1
	top := n >> uint(shift)

	// Seed from above; Newton then decreases monotonically to the floor.
	x := uint64(sqrtSeed[top])<<uint(shift/2)>>8 + 1
	for {
		y := (x + n/x) >> 1
		if y >= x {
			break
		}
		x = y
	}
	for x*x > n {
		x--
	}
	for (x+1)*(x+1) <= n {
		x++
	}
	return x
}

// fixedSqrt returns floor(sqrt(a)) in raw units. Negative input yields 0.
func fixedSqrt(a int32, radix uint) int32 {
	if a <= 0 {
		return 0
	}
	return int32(isqrt(uint64(a) << radix))
}

// fixedRecip returns 1/a, seeded from recipSeed and refined by two Newton
// steps x += x*(1 - a*x), then corrected to the truncated quotient.
func fixedRecip(a int32, radix uint) int32 {
	if a == 0 {
		return saturate("reciprocal of zero", false)
	}
	neg := a < 0
	d := uint64(abs32(a))
	one := int64(1) << (2 * radix)

	e := bits.Len64(d)
	var idx uint64
	if e > tableBits {
		idx = d >> uint(e-tableBits)
	} else {
		idx = d << uint(tableBits-e)
	}
	seed := int64(recipSeed[idx-tableSize/2])
	var x int64
	if s := int(2*radix) + tableBits - 24 - e; s >= 0 {
		x = seed << uint(s)
	} else {
		x = seed >> uint(-s)
	}

	for range 2 {
		r := one - int64(d)*x
		x += (x * r) >> (2 * radix)
	}

	q := uint64(max(x, 0))
	for q > 0 && q*d > uint64(one) {
		q--
	}
	for (q+1)*d <= uint64(one) {
		q++
	}
	if q > fixedMax {
		return saturate("reciprocal", neg)
	}
	return signed(q, neg)
}

// turnsPerRadian is round(2^32 / 2π): radians times this, shifted down by
// the radix, give the angle as a 32-bit fraction of a full turn.
const turnsPerRadian = 683565276

func phaseOf(a int32, radix uint) uint32 {
	return uint32((int64(a) * turnsPerRadian) >> radix)
}

// sinPhase evaluates sine from a 32-bit turn fraction. The top two bits pick
// the quadrant; the rest index the quarter-wave table.
func (t *trigTables) sinPhase(phase uint32) int32 {
	quadrant := phase >> 30
	// Quarter-turn position with radix+6 bits: 8 index bits, radix-2
	// remainder bits.
	pbits := t.radix + 6
	p := int64(phase&(1<<30-1)) >> (30 - pbits)
	if quadrant&1 != 0 {
		p = 1<<pbits - p
	}
	remBits := t.radix - 2
	index := int(p >> remBits)
	remdr := int32(p & (1<<remBits - 1))
	return TableInterp(t.sinTable, index, remdr, quadrant >= 2, 2, t.radix)
}

func (t *trigTables) sin(a int32) int32 {
	return t.sinPhase(phaseOf(a, t.radix))
}

func (t *trigTables) cos(a int32) int32 {
	return t.sinPhase(phaseOf(a, t.radix) + 1<<30)
}

// atanUnit returns atan(r) for r in [0, 1] in raw units.
func (t *trigTables) atanUnit(r int32) int32 {
	remBits := t.radix - tableBits
	index := int(r >> remBits)
	remdr := r & (1<<remBits - 1)
	return TableInterp(t.atanTable, index, remdr, false, tableBits, t.radix)
}

// atan2 reduces to the first octant, looks up atan of the smaller/larger
// ratio and unfolds the octant.
func (t *trigTables) atan2(y, x int32) int32 {
	if x == 0 && y == 0 {
		return 0
	}
	ax, ay := int32(abs32(x)), int32(abs32(y))
	var a int32
	if ay <= ax {
		a = t.atanUnit(fixedDiv(ay, ax, t.radix))
	} else {
		a = t.halfPi - t.atanUnit(fixedDiv(ax, ay, t.radix))
	}
	if x < 0 {
		a = t.pi - a
	}
	if y < 0 {
		a = -a
	}
	return a
}

// asin and acos go through atan2 with the complementary leg sqrt(1-x²).
func (t *trigTables) asin(a int32) int32 {
	one := int32(1) << t.radix
	a = min(max(a, -one), one)
	return t.atan2(a, fixedSqrt(one-fixedMul(a, a, t.radix), t.radix))
}

func (t *trigTables) acos(a int32) int32 {
	one := int32(1) << t.radix
	a = min(max(a, -one), one)
	return t.atan2(fixedSqrt(one-fixedMul(a, a, t.radix), t.radix), a)
}
