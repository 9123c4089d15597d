package seedhash

import (
	"testing"

	"seedhunter/internal/calendar"
)

func TestMessageBlockLayout(t *testing.T) {
	cfg := DSConfig{Version: Black, Timer0: 0xc7a, MAC: 0x0009bf6d93ce}
	moment := calendar.Moment{
		Date: calendar.Date{Year: 26, Month: 1, Day: 24},
		Time: calendar.Time{Hour: 12, Minute: 0, Second: 0},
	}
	words := MessageBlock(cfg, moment, 0x2fff, calendar.WrapYear93)

	vc := VersionConfigFor(Black)
	if words[0] != vc.Nazo.Nazo1 || words[4] != vc.Nazo.Nazo5 {
		t.Fatalf("nazo words not in expected slots: %+v", words)
	}
	if words[5] != uint32(vc.VCount)<<16|uint32(cfg.Timer0) {
		t.Fatalf("vcount/timer0 word wrong: %#x", words[5])
	}
	if words[6] != uint32(cfg.MAC&0xFFFF) {
		t.Fatalf("mac low16 word wrong: %#x", words[6])
	}
	if words[10] != 0 || words[11] != 0 {
		t.Fatalf("padding words must be zero: %+v", words[10:12])
	}
	if words[12] != 0x2fff {
		t.Fatalf("key presses word wrong: %#x", words[12])
	}
}

func TestSeedsDeterministic(t *testing.T) {
	cfg := DSConfig{Version: White2, Timer0: 0x0fa0, MAC: 0x001122334455}
	moment := calendar.Moment{
		Date: calendar.Date{Year: 23, Month: 6, Day: 15},
		Time: calendar.Time{Hour: 8, Minute: 30, Second: 12},
	}
	s0a, s1a := Seeds(cfg, moment, 0x2fff, calendar.WrapYear93)
	s0b, s1b := Seeds(cfg, moment, 0x2fff, calendar.WrapYear93)
	if s0a != s0b || s1a != s1b {
		t.Fatalf("seed derivation is not deterministic")
	}
}

func TestSeed1IsOneLcgStepFromSeed0(t *testing.T) {
	cfg := DSConfig{Version: Black2, Timer0: 0x1000, MAC: 0xAABBCCDDEEFF}
	moment := calendar.Moment{
		Date: calendar.Date{Year: 24, Month: 3, Day: 3},
		Time: calendar.Time{Hour: 23, Minute: 59, Second: 59},
	}
	seed0, seed1 := Seeds(cfg, moment, 0x2ffe, calendar.WrapYear93)
	if got := Seed1(seed0); got != seed1 {
		t.Fatalf("Seed1(seed0) = %#x, want %#x", got, seed1)
	}
}

func TestKeyPressesChangeSeed(t *testing.T) {
	cfg := DSConfig{Version: Black, Timer0: 0xc7a, MAC: 0x0009bf6d93ce}
	moment := calendar.Moment{
		Date: calendar.Date{Year: 26, Month: 1, Day: 24},
		Time: calendar.Time{Hour: 12, Minute: 0, Second: 0},
	}
	s0, _ := Seeds(cfg, moment, 0x2fff, calendar.WrapYear93)
	s0Alt, _ := Seeds(cfg, moment, 0x2ffe, calendar.WrapYear93)
	if s0 == s0Alt {
		t.Fatalf("differing key presses produced identical seed0")
	}
}
