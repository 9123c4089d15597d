// Package merge deduplicates candidates surfacing from multiple in-flight
// batches into a single, stably ordered result stream.
package merge

import "seedhunter/internal/gpuengine"

// Merger deduplicates gpuengine.Candidate values by Seed0, keeping the
// first occurrence and discarding later ones. It is not safe for
// concurrent use; callers feed it batches in submission order from a
// single goroutine, which is what makes "first occurrence wins" a
// deterministic, reproducible rule rather than a race.
type Merger struct {
	seen    map[uint64]struct{}
	results []gpuengine.Candidate
}

// New returns an empty Merger.
func New() *Merger {
	return &Merger{seen: make(map[uint64]struct{})}
}

// Add appends batch's candidates to the merged stream, skipping any whose
// Seed0 has already been recorded.
func (m *Merger) Add(batch []gpuengine.Candidate) {
	for _, c := range batch {
		if _, dup := m.seen[c.Seed0]; dup {
			continue
		}
		m.seen[c.Seed0] = struct{}{}
		m.results = append(m.results, c)
	}
}

// Results returns every deduplicated candidate added so far, in
// first-occurrence order.
func (m *Merger) Results() []gpuengine.Candidate {
	return m.results
}

// Len reports how many deduplicated candidates have been recorded.
func (m *Merger) Len() int {
	return len(m.results)
}
