// Package search enumerates event frames forward from a seed1 and a
// chosen offset recipe, reporting every frame whose derived value (nature,
// wild encounter, or hidden grotto fill) satisfies a caller-supplied
// predicate.
package search

import (
	"seedhunter/internal/derive"
	"seedhunter/internal/lcg"
)

// Predicate evaluates the generator state at one event frame. Predicates
// receive the state BY VALUE: any steps they consume internally (as
// derive.GetNature does) never affect the frame-by-frame scan driving
// them, so a predicate cannot accidentally desynchronize the search from
// the frame count it reports.
type Predicate func(state lcg.LCG) bool

// FrameMatch is one frame that satisfied a Predicate during a Scan.
type FrameMatch struct {
	Frame uint32
	State lcg.LCG
}

// Scan advances a fresh generator from seed1 through the given offset
// recipe, then evaluates pred at every frame in [0, maxFrames), advancing
// the real scan state by exactly one LCG step per frame regardless of
// what the predicate itself consumed.
func Scan(seed1 uint64, offset derive.OffsetType, maxFrames uint32, pred Predicate) []FrameMatch {
	g := lcg.New(seed1)
	derive.OffsetSeed1(&g, offset)

	var matches []FrameMatch
	for frame := uint32(0); frame < maxFrames; frame++ {
		if pred(g) {
			matches = append(matches, FrameMatch{Frame: frame, State: g})
		}
		g.Next()
	}
	return matches
}

// NaturePredicate matches frames whose nature (consuming one step from a
// private copy of the frame state) is one of wanted.
func NaturePredicate(wanted ...derive.Nature) Predicate {
	set := make(map[derive.Nature]struct{}, len(wanted))
	for _, n := range wanted {
		set[n] = struct{}{}
	}
	return func(state lcg.LCG) bool {
		_, ok := set[derive.GetNature(&state)]
		return ok
	}
}

// WildEncounterPredicate matches frames whose wild encounter roll for the
// given region satisfies accept.
func WildEncounterPredicate(region derive.WildRegion, accept func(derive.WildEncounter) bool) Predicate {
	return func(state lcg.LCG) bool {
		return accept(derive.RollWildEncounter(state, region))
	}
}

// GrottoPredicate matches frames whose hidden grotto fill (seeded from
// base, leaving its pre-filled slots untouched) satisfies accept.
func GrottoPredicate(base derive.GrottoTable, accept func(derive.GrottoTable) bool) Predicate {
	return func(state lcg.LCG) bool {
		table := base
		table.Fill(state)
		return accept(table)
	}
}
