package derive

import "seedhunter/internal/lcg"

// WildRegion selects which of the two wild-encounter roll variants to
// evaluate. The two regions share every step of the roll sequence; Region2
// additionally burns two generator steps ahead of the shared sequence,
// matching the console's per-region prefix offset.
type WildRegion int

const (
	Region1 WildRegion = iota
	Region2
)

// WildEncounter is the result of a single wild-grass encounter roll: a
// species slot (0-99), a packed 32-bit code carrying ability and gender,
// a nature, and a held-item roll (0-99). Present is false for the ~20% of
// rolls that yield no encounter at all.
type WildEncounter struct {
	Present  bool
	Slot     uint32
	PokeCode uint32
	Nature   Nature
	Item     uint32
}

// Ability returns the low bit of the packed species code: 0 or 1,
// selecting between the species' two possible abilities.
func (w WildEncounter) Ability() uint8 {
	return uint8(w.PokeCode & 1)
}

// Gender returns the low byte of the packed species code, compared against
// a species' gender threshold to determine male/female/genderless.
func (w WildEncounter) Gender() uint8 {
	return uint8(w.PokeCode & 0xFF)
}

// RollWildEncounter evaluates the wild encounter a generator in state l
// would produce right now, WITHOUT consuming any steps from l: it operates
// on a private copy, mirroring how a search engine looks ahead at a
// candidate frame without committing to it. region selects which of the two
// per-location roll variants to evaluate; Region2 burns two extra generator
// steps ahead of the shared roll sequence.
func RollWildEncounter(l lcg.LCG, region WildRegion) WildEncounter {
	local := l
	if region == Region2 {
		local.Next()
		local.Next()
	}
	if local.Rand(100) < 20 {
		return WildEncounter{}
	}
	local.Next()

	var w WildEncounter
	w.Present = true
	w.Slot = local.Rand(100)
	local.Next()
	w.PokeCode = uint32(local.Next() >> 32)
	w.Nature = GetNature(&local)
	w.Item = local.Rand(100)
	return w
}
