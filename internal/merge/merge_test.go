package merge

import (
	"testing"

	"seedhunter/internal/gpuengine"
)

func TestAddDedupesBySeed0KeepingFirstOccurrence(t *testing.T) {
	m := New()
	m.Add([]gpuengine.Candidate{
		{Seed0: 1, Seed1: 100},
		{Seed0: 2, Seed1: 200},
	})
	m.Add([]gpuengine.Candidate{
		{Seed0: 2, Seed1: 999}, // duplicate, should be dropped
		{Seed0: 3, Seed1: 300},
	})

	results := m.Results()
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for _, r := range results {
		if r.Seed0 == 2 && r.Seed1 != 200 {
			t.Fatalf("duplicate overwrote first occurrence: %+v", r)
		}
	}
}

func TestResultsPreserveArrivalOrder(t *testing.T) {
	m := New()
	m.Add([]gpuengine.Candidate{{Seed0: 5}})
	m.Add([]gpuengine.Candidate{{Seed0: 3}})
	m.Add([]gpuengine.Candidate{{Seed0: 9}})

	results := m.Results()
	want := []uint64{5, 3, 9}
	for i, r := range results {
		if r.Seed0 != want[i] {
			t.Fatalf("results[%d].Seed0 = %d, want %d", i, r.Seed0, want[i])
		}
	}
}
