// Package software implements gpuengine.Kernel on the CPU. It exists both
// as the fallback path when no compatible GPU is attached and as the
// reference implementation the WGPU-backed kernel is checked against.
package software

import (
	"context"
	"runtime"
	"sync"

	"seedhunter/internal/calendar"
	"seedhunter/internal/gpuengine"
	"seedhunter/internal/ivgen"
	"seedhunter/internal/reverseiv"
	"seedhunter/internal/seedhash"
)

// Kernel is the pure-Go, CPU-parallel implementation of gpuengine.Kernel.
type Kernel struct {
	// Workers bounds how many goroutines share the batch; 0 means use
	// runtime.NumCPU().
	Workers int
}

// New returns a Kernel using the given worker count (0 for NumCPU).
func New(workers int) *Kernel {
	return &Kernel{Workers: workers}
}

func (k *Kernel) Name() string { return "software" }

func (k *Kernel) IsAvailable() bool { return true }

// ScanBatch implements gpuengine.Kernel, mirroring kernel A's dense
// hash-then-filter pass: every (moment, key) pair is hashed, the IVs are
// derived at filter.P, and only rectangle survivors are kept. Work is
// sharded by moment index across a fixed-size worker pool and results are
// reassembled in input order, so output ordering matches a single-threaded
// scan regardless of scheduling.
func (k *Kernel) ScanBatch(ctx context.Context, cfg seedhash.DSConfig, moments []calendar.Moment, keys []uint16, wrap calendar.WeekdayWrapMode, filter gpuengine.Filter) ([]gpuengine.Candidate, error) {
	workers := k.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(moments) {
		workers = len(moments)
	}
	if workers < 1 {
		workers = 1
	}

	perMoment := make([][]gpuengine.Candidate, len(moments))

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				perMoment[idx] = scanMoment(cfg, moments[idx], keys, wrap, filter)
			}
		}()
	}
	for idx := range moments {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []gpuengine.Candidate
	for _, c := range perMoment {
		out = append(out, c...)
	}
	return out, nil
}

func scanMoment(cfg seedhash.DSConfig, moment calendar.Moment, keys []uint16, wrap calendar.WeekdayWrapMode, filter gpuengine.Filter) []gpuengine.Candidate {
	var out []gpuengine.Candidate
	for _, key := range keys {
		seed0, seed1 := seedhash.Seeds(cfg, moment, key, wrap)
		ivs := ivgen.FromSeed1(seed1, filter.P)
		if !ivgen.InRectangle(ivs, filter.Min, filter.Max) {
			continue
		}
		out = append(out, gpuengine.Candidate{
			Moment: moment,
			Keys:   key,
			Seed0:  seed0,
			Seed1:  seed1,
			IVs:    ivs,
		})
	}
	return out
}

// KernelB is the compact CPU-side counterpart to Kernel: instead of
// deriving and rectangle-checking the six tempered IVs for every (moment,
// key) pair, it builds the filter's reverse-IV membership table once per
// batch (internal/reverseiv.Finder caches it across batches sharing a
// filter) and looks candidates up by seed-high instead of recomputing
// them, mirroring the WGPU kernel's compact membership test.
type KernelB struct {
	Workers int
	Finder  *reverseiv.Finder
}

// NewKernelB returns a KernelB using the given worker count (0 for NumCPU)
// and Finder (nil to allocate one with the default cache size).
func NewKernelB(workers int, finder *reverseiv.Finder) *KernelB {
	if finder == nil {
		finder = reverseiv.NewFinder(0)
	}
	return &KernelB{Workers: workers, Finder: finder}
}

func (k *KernelB) Name() string { return "software-b" }

func (k *KernelB) IsAvailable() bool { return true }

// ScanBatch implements gpuengine.Kernel using the reverse-IV membership
// table instead of per-candidate IV derivation.
func (k *KernelB) ScanBatch(ctx context.Context, cfg seedhash.DSConfig, moments []calendar.Moment, keys []uint16, wrap calendar.WeekdayWrapMode, filter gpuengine.Filter) ([]gpuengine.Candidate, error) {
	workers := k.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(moments) {
		workers = len(moments)
	}
	if workers < 1 {
		workers = 1
	}

	seeds := k.Finder.Seeds(filter.P, filter.Min, filter.Max)
	member := make(map[uint32]struct{}, len(seeds))
	for _, s := range seeds {
		member[s] = struct{}{}
	}

	perMoment := make([][]gpuengine.Candidate, len(moments))

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				perMoment[idx] = scanMomentB(cfg, moments[idx], keys, wrap, filter, member)
			}
		}()
	}
	for idx := range moments {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []gpuengine.Candidate
	for _, c := range perMoment {
		out = append(out, c...)
	}
	return out, nil
}

func scanMomentB(cfg seedhash.DSConfig, moment calendar.Moment, keys []uint16, wrap calendar.WeekdayWrapMode, filter gpuengine.Filter, member map[uint32]struct{}) []gpuengine.Candidate {
	var out []gpuengine.Candidate
	for _, key := range keys {
		seed0, seed1 := seedhash.Seeds(cfg, moment, key, wrap)
		seedHigh := uint32(seed1 >> 32)
		if _, ok := member[seedHigh]; !ok {
			continue
		}
		out = append(out, gpuengine.Candidate{
			Moment: moment,
			Keys:   key,
			Seed0:  seed0,
			Seed1:  seed1,
			IVs:    ivgen.FromSeed1(seed1, filter.P),
		})
	}
	return out
}
