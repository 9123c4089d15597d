// Package seedhash assembles the 13-word boot message block and derives
// seed0/seed1 from it via the truncated SHA-1 digest the console computes
// at boot.
package seedhash

import (
	"crypto/sha1"
	"encoding/binary"
	"math/bits"

	"seedhunter/internal/calendar"
	"seedhunter/internal/lcg"
)

// GameVersion identifies one of the four supported cartridge releases.
// Each carries its own nazo constants and VCount value, burned into the
// firmware and required to reproduce the boot hash bit-for-bit.
type GameVersion int

const (
	Black GameVersion = iota
	White
	Black2
	White2
)

func (v GameVersion) String() string {
	switch v {
	case Black:
		return "Black"
	case White:
		return "White"
	case Black2:
		return "Black2"
	case White2:
		return "White2"
	default:
		return "Unknown"
	}
}

// NazoValues are the five 32-bit firmware constants embedded in every
// version's boot ROM.
type NazoValues struct {
	Nazo1, Nazo2, Nazo3, Nazo4, Nazo5 uint32
}

// VersionConfig pairs a version's nazo constants with its VCount value.
type VersionConfig struct {
	Version GameVersion
	Nazo    NazoValues
	VCount  uint8
}

var versionConfigs = map[GameVersion]VersionConfig{
	Black: {
		Version: Black,
		Nazo:    NazoValues{0x02215F10, 0x0221600C, 0x0221600C, 0x02216058, 0x02216058},
		VCount:  0x60,
	},
	White: {
		Version: White,
		Nazo:    NazoValues{0x02215F30, 0x0221602C, 0x0221602C, 0x02216078, 0x02216078},
		VCount:  0x5f,
	},
	Black2: {
		Version: Black2,
		Nazo:    NazoValues{0x0209A8DC, 0x02039AC9, 0x021FF9B0, 0x021FFA04, 0x021FFA04},
		VCount:  0x82,
	},
	White2: {
		Version: White2,
		Nazo:    NazoValues{0x0209A8FC, 0x02039AF5, 0x021FF9D0, 0x021FFA24, 0x021FFA24},
		VCount:  0x82,
	},
}

// VersionConfigFor returns the firmware constants for v.
func VersionConfigFor(v GameVersion) VersionConfig {
	return versionConfigs[v]
}

// DSConfig is the per-console, per-run configuration that does not change
// across a search: cartridge version, boot Timer0 value, the console's MAC
// address, and whether it is a DS Lite (which boots one GxFrame earlier
// than DSi/3DS-compatible hardware).
type DSConfig struct {
	Version  GameVersion
	Timer0   uint16
	MAC      uint64 // low 48 bits significant
	IsDSLite bool
}

const gxFrame uint32 = 0x06000000

// MessageBlock returns the 13 32-bit words hashed to produce seed0, in the
// exact order and endianness the console writes them.
func MessageBlock(cfg DSConfig, moment calendar.Moment, keys uint16, wrap calendar.WeekdayWrapMode) [13]uint32 {
	vc := VersionConfigFor(cfg.Version)

	vcountTimer0 := uint32(vc.VCount)<<16 | uint32(cfg.Timer0)
	macLower16 := uint32(cfg.MAC & 0xFFFF)

	frame := uint32(8)
	if cfg.IsDSLite {
		frame = 6
	}
	gxFrameXorFrame := gxFrame ^ frame
	gxFrameXorFrameSwapped := bits.ReverseBytes32(gxFrameXorFrame)
	macMiddle32 := uint32((cfg.MAC >> 16) & 0xFFFFFFFF)
	data7 := gxFrameXorFrameSwapped ^ macMiddle32

	date8 := moment.Date.Date8(wrap)
	time9 := moment.Time.Time9()

	return [13]uint32{
		vc.Nazo.Nazo1,
		vc.Nazo.Nazo2,
		vc.Nazo.Nazo3,
		vc.Nazo.Nazo4,
		vc.Nazo.Nazo5,
		vcountTimer0,
		macLower16,
		data7,
		date8,
		time9,
		0,
		0,
		uint32(keys),
	}
}

// writeWord appends v to buf in the given byte order (true = big endian).
func writeWord(buf []byte, v uint32, bigEndian bool) []byte {
	b := make([]byte, 4)
	if bigEndian {
		binary.BigEndian.PutUint32(b, v)
	} else {
		binary.LittleEndian.PutUint32(b, v)
	}
	return append(buf, b...)
}

// messageBytes serializes the 13-word block into the exact 52-byte SHA-1
// input, mixing endianness per word the way the firmware does: the five
// nazo words, vcount|timer0, the two padding words and the key-press word
// are little-endian; the MAC, data7, date8 and time9 words are big-endian.
func messageBytes(words [13]uint32) []byte {
	buf := make([]byte, 0, 52)
	for i := 0; i <= 4; i++ { // nazo1..5
		buf = writeWord(buf, words[i], false)
	}
	buf = writeWord(buf, words[5], false) // vcount|timer0
	buf = writeWord(buf, words[6], true)  // mac low16
	buf = writeWord(buf, words[7], true)  // data7
	buf = writeWord(buf, words[8], true)  // date8
	buf = writeWord(buf, words[9], true)  // time9
	buf = writeWord(buf, words[10], false)
	buf = writeWord(buf, words[11], false)
	buf = writeWord(buf, words[12], false) // key presses
	return buf
}

// Seed0 computes the boot seed: the low 8 bytes (little-endian) of the
// SHA-1 digest of the 13-word message block.
func Seed0(cfg DSConfig, moment calendar.Moment, keys uint16, wrap calendar.WeekdayWrapMode) uint64 {
	words := MessageBlock(cfg, moment, keys, wrap)
	digest := sha1.Sum(messageBytes(words))
	return binary.LittleEndian.Uint64(digest[:8])
}

// Seed1 is seed0 advanced by a single LCG step: the state the game's own
// RNG begins consuming from.
func Seed1(seed0 uint64) uint64 {
	return lcg.New(seed0).Advance(1).State
}

// Seeds computes both seed0 and seed1 for a given boot moment and key
// state.
func Seeds(cfg DSConfig, moment calendar.Moment, keys uint16, wrap calendar.WeekdayWrapMode) (seed0, seed1 uint64) {
	seed0 = Seed0(cfg, moment, keys, wrap)
	seed1 = Seed1(seed0)
	return
}
