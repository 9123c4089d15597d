package derive

import "seedhunter/internal/lcg"

// GrottoEntry is one of a hidden grotto's 20 possible resident slots.
// Filled is false for slots the roll left empty.
type GrottoEntry struct {
	Filled             bool
	SubSlot, Slot, Gen uint32
}

// GrottoTable is the full 20-slot hidden grotto roll for a save file.
type GrottoTable struct {
	Entries [20]GrottoEntry
}

// NewGrottoTable returns an all-empty table, matching a save file that has
// never had any grotto resident determined yet.
func NewGrottoTable() GrottoTable {
	return GrottoTable{}
}

// NewGameGrottoTable returns the table a brand new save file starts with:
// every slot empty except index 1, which always holds the Route 5
// starting resident regardless of seed.
func NewGameGrottoTable() GrottoTable {
	t := GrottoTable{}
	t.Entries[1] = GrottoEntry{Filled: true, SubSlot: 1, Slot: 0, Gen: 0}
	return t
}

// Fill rolls every still-empty slot in t against a private copy of l,
// leaving already-filled slots untouched. Like RollWildEncounter, it never
// consumes steps from the caller's generator.
func (t *GrottoTable) Fill(l lcg.LCG) {
	local := l
	for i := range t.Entries {
		if t.Entries[i].Filled {
			continue
		}
		if local.Rand(100) >= 5 {
			continue
		}
		t.Entries[i] = GrottoEntry{
			Filled:  true,
			SubSlot: local.Rand(4),
			Slot:    local.Rand(100),
			Gen:     local.Rand(100),
		}
	}
}
