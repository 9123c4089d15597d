package software

import (
	"context"
	"testing"

	"seedhunter/internal/calendar"
	"seedhunter/internal/gpuengine"
	"seedhunter/internal/ivgen"
	"seedhunter/internal/seedhash"
)

func TestScanBatchMatchesDirectComputation(t *testing.T) {
	cfg := seedhash.DSConfig{Version: seedhash.White2, Timer0: 0x0c00, MAC: 0x001122334455}
	moments := []calendar.Moment{
		{Date: calendar.Date{Year: 23, Month: 5, Day: 1}, Time: calendar.Time{Hour: 10, Minute: 0, Second: 0}},
		{Date: calendar.Date{Year: 23, Month: 5, Day: 2}, Time: calendar.Time{Hour: 11, Minute: 0, Second: 0}},
	}
	keys := []uint16{0x2fff, 0x2ffe}
	filter := gpuengine.Filter{
		P:   0,
		Min: ivgen.IVs{0, 0, 0, 0, 0, 0},
		Max: ivgen.IVs{31, 31, 31, 31, 31, 31}, // accept-all rectangle
	}

	k := New(1)
	got, err := k.ScanBatch(context.Background(), cfg, moments, keys, calendar.WrapYear93, filter)
	if err != nil {
		t.Fatalf("ScanBatch error: %v", err)
	}
	if len(got) != len(moments)*len(keys) {
		t.Fatalf("len(got) = %d, want %d (accept-all rectangle)", len(got), len(moments)*len(keys))
	}

	for _, c := range got {
		wantSeed0, wantSeed1 := seedhash.Seeds(cfg, c.Moment, c.Keys, calendar.WrapYear93)
		if c.Seed0 != wantSeed0 || c.Seed1 != wantSeed1 {
			t.Fatalf("candidate seeds mismatch: got (%#x,%#x) want (%#x,%#x)", c.Seed0, c.Seed1, wantSeed0, wantSeed1)
		}
	}
}

func TestKernelBAgreesWithKernelA(t *testing.T) {
	if testing.Short() {
		t.Skip("KernelB walks the full 32-bit seed-high space to build its reverse-IV table")
	}

	cfg := seedhash.DSConfig{Version: seedhash.White2, Timer0: 0x0c00, MAC: 0x001122334455}
	moments := []calendar.Moment{
		{Date: calendar.Date{Year: 23, Month: 5, Day: 1}, Time: calendar.Time{Hour: 10, Minute: 0, Second: 0}},
	}
	keys := []uint16{0x2fff}
	filter := gpuengine.Filter{
		P:   0,
		Min: ivgen.IVs{0, 0, 0, 0, 0, 0},
		Max: ivgen.IVs{5, 31, 31, 31, 31, 31},
	}

	kA := New(1)
	wantCandidates, err := kA.ScanBatch(context.Background(), cfg, moments, keys, calendar.WrapYear93, filter)
	if err != nil {
		t.Fatalf("kernel A ScanBatch error: %v", err)
	}

	kB := NewKernelB(1, nil)
	gotCandidates, err := kB.ScanBatch(context.Background(), cfg, moments, keys, calendar.WrapYear93, filter)
	if err != nil {
		t.Fatalf("kernel B ScanBatch error: %v", err)
	}

	if len(gotCandidates) != len(wantCandidates) {
		t.Fatalf("kernel B found %d survivors, kernel A found %d", len(gotCandidates), len(wantCandidates))
	}
	for i := range wantCandidates {
		if gotCandidates[i].Seed0 != wantCandidates[i].Seed0 || gotCandidates[i].Seed1 != wantCandidates[i].Seed1 {
			t.Fatalf("survivor %d mismatch: kernel B %+v, kernel A %+v", i, gotCandidates[i], wantCandidates[i])
		}
	}
}

func TestScanBatchFiltersOutNonMatches(t *testing.T) {
	cfg := seedhash.DSConfig{Version: seedhash.Black, Timer0: 0x0c7a, MAC: 0x0009bf6d93ce}
	moments := []calendar.Moment{
		{Date: calendar.Date{Year: 24, Month: 2, Day: 14}, Time: calendar.Time{Hour: 9, Minute: 15, Second: 30}},
	}
	keys := []uint16{0x2fff}

	impossible := gpuengine.Filter{
		P:   0,
		Min: ivgen.IVs{31, 31, 31, 31, 31, 31},
		Max: ivgen.IVs{31, 31, 31, 31, 31, 31},
	}

	k := New(2)
	got, err := k.ScanBatch(context.Background(), cfg, moments, keys, calendar.WrapYear93, impossible)
	if err != nil {
		t.Fatalf("ScanBatch error: %v", err)
	}
	// A single-point rectangle on all six stats at once is astronomically
	// unlikely to match for this one (moment, key) pair; this assertion
	// would only spuriously fail for the one-in-32^6 seed that does.
	if len(got) != 0 {
		t.Fatalf("expected no survivors for an all-31 rectangle, got %d", len(got))
	}
}
