package derive

import "seedhunter/internal/lcg"

// OffsetType names one of the five documented frame-advance recipes a save
// file's boot-to-title-screen path consumes before the first event frame
// is reachable. Each cartridge generation and continue-vs-new-game path
// has its own recipe.
type OffsetType int

const (
	// OffsetNone performs no frame advance at all; useful for tests and
	// for search modes that start directly from a known post-offset
	// seed1 instead of re-deriving it.
	OffsetNone OffsetType = iota
	OffsetBw1Start
	OffsetBw1Continue
	OffsetBW2Start
	OffsetBW2Continue
	OffsetBW2ContinueWithLink
)

// probabilityTable drives Pt: row i, column j gives the percent chance
// (out of 100) that a menu's j-th cascading sub-choice is NOT taken, i.e.
// the value at which the roll stops continuing; a 100 entry means the row
// always stops at that column without consuming a roll.
var probabilityTable = [6][5]uint32{
	{50, 100, 100, 100, 100},
	{50, 50, 100, 100, 100},
	{30, 50, 100, 100, 100},
	{25, 30, 50, 100, 100},
	{20, 25, 33, 50, 100},
	{100, 100, 100, 100, 100},
}

// Pt runs the menu-cascade offset protocol `counts` times against l,
// consuming one LCG step per non-trivial probability-table draw.
func Pt(l *lcg.LCG, counts int) {
	for c := 0; c < counts; c++ {
		for i := 0; i < 6; i++ {
			for j := 0; j < 5; j++ {
				if probabilityTable[i][j] == 100 {
					break
				}
				r := l.NextThenRand(101)
				if r <= probabilityTable[i][j] {
					break
				}
			}
		}
	}
}

// OffsetExtra is the BW2-specific cursor-position reroll: it draws three
// 0-14 values and repeats until all three are pairwise distinct.
func OffsetExtra(l *lcg.LCG) {
	for {
		r1 := l.NextThenRand(15)
		r2 := l.NextThenRand(15)
		r3 := l.NextThenRand(15)
		if !(r1 == r2 || r2 == r3 || r1 == r3) {
			break
		}
	}
}

// OffsetSeed1 runs the named recipe against l starting from its current
// state (seed1) and returns the resulting step count.
func OffsetSeed1(l *lcg.LCG, t OffsetType) uint64 {
	switch t {
	case OffsetNone:
		// no-op
	case OffsetBw1Start:
		Pt(l, 3)
		l.AdvanceInPlace(3)
	case OffsetBw1Continue:
		Pt(l, 5)
	case OffsetBW2Start:
		Pt(l, 1)
		l.AdvanceInPlace(2)
		Pt(l, 1)
		l.AdvanceInPlace(4)
		Pt(l, 1)
		l.AdvanceInPlace(2)
		l.Next()
	case OffsetBW2Continue:
		Pt(l, 1)
		l.AdvanceInPlace(3)
		Pt(l, 4)
		OffsetExtra(l)
	case OffsetBW2ContinueWithLink:
		Pt(l, 1)
		l.AdvanceInPlace(2)
		Pt(l, 4)
		OffsetExtra(l)
	}
	return l.Step
}

// OffsetSeed0 advances one step from seed0 to reach seed1, then runs
// OffsetSeed1.
func OffsetSeed0(l *lcg.LCG, t OffsetType) uint64 {
	l.Next()
	return OffsetSeed1(l, t)
}
