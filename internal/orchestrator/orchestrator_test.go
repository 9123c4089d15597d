package orchestrator

import (
	"context"
	"testing"

	"seedhunter/internal/calendar"
	"seedhunter/internal/derive"
	"seedhunter/internal/gpuengine"
	"seedhunter/internal/ivgen"
	"seedhunter/internal/scanner"
	"seedhunter/internal/seedhash"
)

// fakeKernel returns one candidate per moment, keyed so tests can assert on
// ordering and dedup behavior without needing a real SHA-1/LCG pipeline.
type fakeKernel struct {
	seed0For func(calendar.Moment) uint64
}

func (f *fakeKernel) Name() string      { return "fake" }
func (f *fakeKernel) IsAvailable() bool { return true }

func (f *fakeKernel) ScanBatch(ctx context.Context, cfg seedhash.DSConfig, moments []calendar.Moment, keys []uint16, wrap calendar.WeekdayWrapMode, filter gpuengine.Filter) ([]gpuengine.Candidate, error) {
	out := make([]gpuengine.Candidate, 0, len(moments))
	for _, m := range moments {
		out = append(out, gpuengine.Candidate{
			Moment: m,
			Seed0:  f.seed0For(m),
			IVs:    ivgen.IVs{},
		})
	}
	return out, nil
}

func testRange(days uint8) calendar.Range {
	start := calendar.Date{Year: 11, Month: 1, Day: 1}
	end := calendar.Date{Year: 11, Month: 1, Day: days}
	return calendar.Range{
		Start: start,
		End:   end,
		Times: []calendar.Time{{Hour: 0, Minute: 0, Second: 0}},
	}
}

func TestRunPreservesBatchOrderAcrossConcurrentDispatch(t *testing.T) {
	rng := testRange(20)

	kernel := &fakeKernel{seed0For: func(m calendar.Moment) uint64 {
		return uint64(m.Date.Day)
	}}

	o := New(kernel)
	o.BatchSize = 4
	o.PipelineDepth = 3

	results, err := o.Run(context.Background(), seedhash.DSConfig{}, rng, []uint16{0}, calendar.WrapYear93, gpuengine.Filter{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != 20 {
		t.Fatalf("len(results) = %d, want 20", len(results))
	}
	for i, c := range results {
		want := uint64(i + 1)
		if c.Seed0 != want {
			t.Fatalf("results[%d].Seed0 = %d, want %d (batch order not preserved)", i, c.Seed0, want)
		}
	}
}

func TestRunDedupesAcrossBatches(t *testing.T) {
	rng := testRange(10)

	kernel := &fakeKernel{seed0For: func(m calendar.Moment) uint64 {
		return 42 // every moment collides on the same seed0
	}}

	o := New(kernel)
	o.BatchSize = 3

	results, err := o.Run(context.Background(), seedhash.DSConfig{}, rng, []uint16{0}, calendar.WrapYear93, gpuengine.Filter{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1 (all moments collide on Seed0)", len(results))
	}
}

func TestRunWithScannerDropsCandidatesThatFailAWindow(t *testing.T) {
	rng := testRange(6)

	kernel := &fakeKernel{seed0For: func(m calendar.Moment) uint64 {
		// Distinct Seed0 per day, small enough that scanWild's forward
		// walk in the test below stays cheap.
		return uint64(m.Date.Day)
	}}

	o := New(kernel)
	o.BatchSize = 2

	// Only day 3's seed0 is wired to survive; every other day's wild
	// window predicate always rejects.
	scan := func(c gpuengine.Candidate) scanner.Config {
		return scanner.Config{
			Seed0:  c.Seed0,
			Offset: derive.OffsetNone,
			Wilds: []scanner.WildWindow{{
				Name: "gate", Min: 1, Max: 1,
				Accept: func(derive.WildEncounter) bool { return c.Seed0 == 3 },
			}},
		}
	}

	results, err := o.RunWithScanner(context.Background(), seedhash.DSConfig{}, rng, []uint16{0}, calendar.WrapYear93, gpuengine.Filter{}, scan)
	if err != nil {
		t.Fatalf("RunWithScanner returned error: %v", err)
	}
	if len(results) != 1 || results[0].Seed0 != 3 {
		t.Fatalf("results = %+v, want exactly the day-3 candidate", results)
	}
	if len(results[0].Matches) != 1 || results[0].Matches[0].Window != "gate" {
		t.Fatalf("results[0].Matches = %+v, want one match on window \"gate\"", results[0].Matches)
	}
}

func TestRunEmptyRangeReturnsNoResults(t *testing.T) {
	rng := calendar.Range{
		Start: calendar.Date{Year: 11, Month: 1, Day: 1},
		End:   calendar.Date{Year: 11, Month: 1, Day: 1},
		Times: nil,
	}
	kernel := &fakeKernel{seed0For: func(m calendar.Moment) uint64 { return 0 }}

	results, err := New(kernel).Run(context.Background(), seedhash.DSConfig{}, rng, []uint16{0}, calendar.WrapYear93, gpuengine.Filter{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("len(results) = %d, want 0", len(results))
	}
}
