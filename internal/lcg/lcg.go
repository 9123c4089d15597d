// Package lcg implements the 64-bit linear congruential generator used by
// the console's boot-time RNG, along with O(log n) jump-ahead.
package lcg

// Multiplier and Increment are the console's LCG constants:
// state' = state*Multiplier + Increment (mod 2^64).
const (
	Multiplier uint64 = 0x5D588B656C078965
	Increment  uint64 = 0x269EC3
)

// LCG is a single generator instance. The zero value is not valid; use New.
// LCG is a plain value type: copying it clones the generator, mirroring the
// reference implementation's clone-before-lookahead idiom used throughout
// the derivation routines below.
type LCG struct {
	State uint64
	Step  uint64
}

// New returns a generator seeded at the given 64-bit state with step 0.
func New(seed uint64) LCG {
	return LCG{State: seed}
}

// Next advances the generator by one step and returns the new state.
func (l *LCG) Next() uint64 {
	l.State = l.State*Multiplier + Increment
	l.Step++
	return l.State
}

// Rand draws a value in [0, max) from the CURRENT state (before advancing),
// then advances the generator by one step. This matches the console's
// "peek high bits, then tick" draw order used by every derived value in
// this package family.
func (l *LCG) Rand(max uint32) uint32 {
	r := uint32((l.State >> 32) * uint64(max) >> 32)
	l.Next()
	return r
}

// NextThenRand advances the generator by one step and draws a value in
// [0, max) from the NEW state's upper 32 bits. This is the draw order used
// by the offset-search probability tables, which is the opposite order
// from Rand: those routines advance first and then sample, rather than
// sampling the state they are about to leave.
func (l *LCG) NextThenRand(max uint32) uint32 {
	s := l.Next()
	return uint32((s >> 32) * uint64(max) >> 32)
}

// Advance returns a NEW generator equal to l stepped forward n times,
// without mutating l. It runs in O(log n) using the standard doubling
// technique for affine recurrences (state' = a*state + c): rather than
// inverting (a-1) to sum a geometric series, it accumulates the total
// multiplier and additive offset for 2^k-step jumps and composes them
// according to the bits of n. This is intentionally NOT a transliteration
// of the reference exponentiation routine, which shifts its exponent by
// two bits per iteration and skips every other bit of n; that routine
// does not compute a*base^n for general n. The doubling form below is the
// standard jump-ahead construction for LCGs and is what produces results
// matching the documented test vectors.
func (l LCG) Advance(n uint64) LCG {
	mult, add := advanceParams(n)
	l.State = l.State*mult + add
	l.Step += n
	return l
}

// AdvanceInPlace advances l by n steps in place.
func (l *LCG) AdvanceInPlace(n uint64) {
	*l = l.Advance(n)
}

// advanceParams computes the composed (multiplier, increment) pair such
// that applying state' = mult*state + add is equivalent to n applications
// of state' = Multiplier*state + Increment.
func advanceParams(n uint64) (mult uint64, add uint64) {
	curMult := Multiplier
	curAdd := Increment
	mult = 1
	add = 0
	for n > 0 {
		if n&1 == 1 {
			mult *= curMult
			add = add*curMult + curAdd
		}
		curAdd *= curMult + 1
		curMult *= curMult
		n >>= 1
	}
	return mult, add
}
