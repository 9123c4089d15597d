package derive

import "seedhunter/internal/lcg"

// TrainerID draws the trainer ID / secret ID pair from the upper 32 bits of
// l's next state (TID is the low half minus one, wrapping; SID is the high
// half), then runs whatever additional frame-consuming step the given
// offset type requires before the overworld becomes controllable (only
// Bw1Start needs one, to settle the player-house layout).
func TrainerID(l *lcg.LCG, t OffsetType) (tid, sid uint16) {
	next := uint32(l.Next() >> 32)
	tid = uint16(next&0xFFFF) - 1
	sid = uint16((next >> 16) & 0xFFFF)

	if t == OffsetBw1Start {
		Pt(l, 4)
		l.AdvanceInPlace(13)
	}
	return tid, sid
}
