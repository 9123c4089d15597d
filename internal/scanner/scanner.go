// Package scanner implements the event-frame scanner: given a candidate's
// seed0 and offset recipe, it evaluates every window of interest (target
// nature, named wild-encounter locations, hidden grotto) and reports
// whether the candidate survives, i.e. every configured window matched at
// least one frame.
package scanner

import (
	"seedhunter/internal/derive"
	"seedhunter/internal/lcg"
)

// NatureWindow matches frames of the candidate's offset-advanced generator
// whose nature is one of Targets.
type NatureWindow struct {
	Min, Max uint32
	Targets  []derive.Nature
}

// WildWindow matches frames of a fresh LCG at seed0 (the offset recipe is
// not applied) whose wild encounter roll for Region satisfies Accept.
type WildWindow struct {
	Name     string
	Region   derive.WildRegion
	Min, Max uint32
	Accept   func(derive.WildEncounter) bool
}

// GrottoWindow matches frames of a fresh LCG at seed0 whose grotto table,
// filled from Base, satisfies Accept.
type GrottoWindow struct {
	Min, Max uint32
	Base     derive.GrottoTable
	Accept   func(derive.GrottoTable) bool
}

// Config composes every window one candidate must satisfy. A nil or empty
// field skips that window entirely (it never blocks survival); a Config
// with no windows configured at all vacuously survives.
type Config struct {
	Seed0  uint64
	Offset derive.OffsetType
	Nature *NatureWindow
	Wilds  []WildWindow
	Grotto *GrottoWindow
}

// WindowMatch is the first frame at which one configured window matched.
type WindowMatch struct {
	Window string
	Frame  uint32
}

// Result is a candidate that survived every configured window.
type Result struct {
	Seed0   uint64
	Matches []WindowMatch
}

// Scan evaluates cfg and reports whether the candidate survives: every
// configured window must match at least one frame in its own [min, max]
// range. Windows are checked in nature, wild, grotto order and the first
// one to fail to match short-circuits the scan.
func Scan(cfg Config) (Result, bool) {
	var matches []WindowMatch

	if cfg.Nature != nil {
		base := lcg.New(cfg.Seed0)
		derive.OffsetSeed0(&base, cfg.Offset)
		frame, ok := scanNature(base, *cfg.Nature)
		if !ok {
			return Result{}, false
		}
		matches = append(matches, WindowMatch{Window: "nature", Frame: frame})
	}

	for _, w := range cfg.Wilds {
		frame, ok := scanWild(cfg.Seed0, w)
		if !ok {
			return Result{}, false
		}
		matches = append(matches, WindowMatch{Window: w.Name, Frame: frame})
	}

	if cfg.Grotto != nil {
		frame, ok := scanGrotto(cfg.Seed0, *cfg.Grotto)
		if !ok {
			return Result{}, false
		}
		matches = append(matches, WindowMatch{Window: "grotto", Frame: frame})
	}

	return Result{Seed0: cfg.Seed0, Matches: matches}, true
}

// scanNature advances base to one frame below w.Min, then reads a nature
// (consuming one LCG step) at every frame in [w.Min, w.Max].
func scanNature(base lcg.LCG, w NatureWindow) (uint32, bool) {
	g := base
	if w.Min > 0 {
		g.AdvanceInPlace(uint64(w.Min) - 1)
	}
	want := make(map[derive.Nature]struct{}, len(w.Targets))
	for _, n := range w.Targets {
		want[n] = struct{}{}
	}
	for frame := w.Min; frame <= w.Max; frame++ {
		if _, ok := want[derive.GetNature(&g)]; ok {
			return frame, true
		}
	}
	return 0, false
}

// scanWild instantiates a fresh LCG at seed0 (bypassing the offset
// recipe), advances to w.Min-1, then for each frame in [w.Min, w.Max]
// advances one step and evaluates the wild encounter roll.
func scanWild(seed0 uint64, w WildWindow) (uint32, bool) {
	g := lcg.New(seed0)
	if w.Min > 0 {
		g.AdvanceInPlace(uint64(w.Min) - 1)
	}
	for frame := w.Min; frame <= w.Max; frame++ {
		g.Next()
		if w.Accept(derive.RollWildEncounter(g, w.Region)) {
			return frame, true
		}
	}
	return 0, false
}

// scanGrotto instantiates a fresh LCG at seed0, advances to w.Min, then for
// each frame in [w.Min, w.Max]: snapshots the generator, fills a grotto
// table from the snapshot, and tests the predicate, advancing the real
// generator by one step after each test.
func scanGrotto(seed0 uint64, w GrottoWindow) (uint32, bool) {
	g := lcg.New(seed0)
	if w.Min > 0 {
		g.AdvanceInPlace(uint64(w.Min))
	}
	for frame := w.Min; frame <= w.Max; frame++ {
		table := w.Base
		table.Fill(g)
		if w.Accept(table) {
			return frame, true
		}
		g.Next()
	}
	return 0, false
}
