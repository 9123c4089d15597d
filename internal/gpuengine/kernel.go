// Package gpuengine defines the compute-kernel contract shared by the
// software fallback (internal/gpuengine/software) and the WGPU-backed
// accelerator (gpu.go in this package). The orchestrator drives whichever
// Kernel it is handed identically, which is what lets the GPU-vs-CPU
// equivalence property be checked in CI without real graphics hardware:
// both backends implement the same interface and are expected to return
// bit-identical candidates for the same input.
package gpuengine

import (
	"context"

	"seedhunter/internal/calendar"
	"seedhunter/internal/ivgen"
	"seedhunter/internal/seedhash"
)

// Filter is the IV rectangle a kernel checks each candidate against, at a
// fixed frame offset.
type Filter struct {
	P        uint8
	Min, Max ivgen.IVs
}

// Candidate is a boot moment that survived a kernel's IV filter.
type Candidate struct {
	Moment calendar.Moment
	Keys   uint16
	Seed0  uint64
	Seed1  uint64
	IVs    ivgen.IVs
}

// Kernel computes seed0/seed1 and the IV filter for a batch of candidate
// boot moments and key states, returning only the survivors. Implementors
// must preserve the input ordering among survivors (Moment-major, then
// Keys) so callers can rely on deterministic, reproducible output.
type Kernel interface {
	// Name identifies the backend for logging and capability reporting.
	Name() string

	// IsAvailable reports whether this kernel can run in the current
	// process (e.g. whether a GPU device was attached).
	IsAvailable() bool

	// ScanBatch evaluates every (moment, key) pair against filter and
	// returns the surviving candidates.
	ScanBatch(ctx context.Context, cfg seedhash.DSConfig, moments []calendar.Moment, keys []uint16, wrap calendar.WeekdayWrapMode, filter Filter) ([]Candidate, error)
}
