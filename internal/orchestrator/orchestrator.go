// Package orchestrator streams a date range through a gpuengine.Kernel in
// bounded-depth batches, so the CPU can prepare batch N+1 while the GPU (or
// software fallback) is still computing batch N, and merges survivors into
// a single deduplicated, deterministically ordered result.
package orchestrator

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"
	"golang.org/x/sync/errgroup"

	"seedhunter/internal/calendar"
	"seedhunter/internal/gpuengine"
	"seedhunter/internal/logging"
	"seedhunter/internal/merge"
	"seedhunter/internal/scanner"
	"seedhunter/internal/seedhash"
)

// DefaultBatchSize is the number of (date, time) moments grouped into one
// kernel dispatch when the caller does not specify one.
const DefaultBatchSize = 256

// DefaultPipelineDepth bounds how many batches may be in flight on the
// kernel at once. A depth of 2 lets the CPU assemble the next batch's
// input while the kernel is still processing the current one, without
// letting an unbounded number of batches queue up and exhaust memory.
const DefaultPipelineDepth = 2

// Orchestrator drives a Kernel across a calendar.Range.
type Orchestrator struct {
	Kernel        gpuengine.Kernel
	BatchSize     int
	PipelineDepth int
	Logger        *logging.Logger

	// ScanWorkers bounds the event-frame scanner's per-batch worker pool
	// (RunWithScanner only); 0 sizes it from gopsutil's logical CPU count,
	// matching the kernel worker pool's own sizing convention.
	ScanWorkers int
}

// New returns an Orchestrator with the documented defaults for any
// unset-looking (zero) fields.
func New(kernel gpuengine.Kernel) *Orchestrator {
	return &Orchestrator{
		Kernel:        kernel,
		BatchSize:     DefaultBatchSize,
		PipelineDepth: DefaultPipelineDepth,
	}
}

func (o *Orchestrator) batchSize() int {
	if o.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return o.BatchSize
}

func (o *Orchestrator) pipelineDepth() int {
	if o.PipelineDepth <= 0 {
		return DefaultPipelineDepth
	}
	return o.PipelineDepth
}

// Run scans every moment in rng against keys, using the configured Kernel
// and filter, and returns the deduplicated, first-occurrence-ordered
// survivor list. Batches are dispatched concurrently up to PipelineDepth,
// but merged strictly in batch-submission order, so the result is
// identical regardless of which batch's kernel call happens to finish
// first.
func (o *Orchestrator) Run(ctx context.Context, cfg seedhash.DSConfig, rng calendar.Range, keys []uint16, wrap calendar.WeekdayWrapMode, filter gpuengine.Filter) ([]gpuengine.Candidate, error) {
	moments := rng.Moments()
	if len(moments) == 0 {
		return nil, nil
	}

	batchSize := o.batchSize()
	batchCount := (len(moments) + batchSize - 1) / batchSize
	batchResults := make([][]gpuengine.Candidate, batchCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.pipelineDepth())

	for b := 0; b < batchCount; b++ {
		b := b
		start := b * batchSize
		end := start + batchSize
		if end > len(moments) {
			end = len(moments)
		}
		batch := moments[start:end]

		g.Go(func() error {
			if o.Logger != nil {
				o.Logger.Debug("dispatching batch %d/%d (%d moments)", b+1, batchCount, len(batch))
			}
			result, err := o.Kernel.ScanBatch(gctx, cfg, batch, keys, wrap, filter)
			if err != nil {
				return fmt.Errorf("orchestrator: batch %d: %w", b, err)
			}
			batchResults[b] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merger := merge.New()
	for _, r := range batchResults {
		merger.Add(r)
	}
	if o.Logger != nil {
		o.Logger.Info("scan complete: %d candidates across %d batches", merger.Len(), batchCount)
	}
	return merger.Results(), nil
}

// ScanFunc builds the §4.9 scanner.Config for one kernel survivor. A nil
// ScanFunc is not valid for RunWithScanner; callers that only need the IV
// filter (no event-frame enrichment) should call Run instead.
type ScanFunc func(gpuengine.Candidate) scanner.Config

// ScannedCandidate pairs a kernel survivor with the event-frame scanner's
// per-window matches, recorded once the candidate has cleared every window
// scan.Config configured for it.
type ScannedCandidate struct {
	gpuengine.Candidate
	Matches []scanner.WindowMatch
}

// RunWithScanner is Run plus a pipelined §4.9 event-frame scan stage: a CPU
// worker scans batch N's kernel survivors while the kernel is dispatched
// against batch N+1, per spec.md §4.8 step 2's pipeline depth of 2. Kernel
// batches are still computed strictly in order (one goroutine dispatches
// them sequentially), so at most one batch's kernel call and one batch's
// scan stage are ever in flight together; the unbuffered handoff channel
// between them is what enforces that bound without any extra bookkeeping.
// Candidates that fail to survive every configured window are dropped.
func (o *Orchestrator) RunWithScanner(ctx context.Context, cfg seedhash.DSConfig, rng calendar.Range, keys []uint16, wrap calendar.WeekdayWrapMode, filter gpuengine.Filter, scan ScanFunc) ([]ScannedCandidate, error) {
	moments := rng.Moments()
	if len(moments) == 0 {
		return nil, nil
	}

	batchSize := o.batchSize()
	batchCount := (len(moments) + batchSize - 1) / batchSize

	type kernelBatch struct {
		idx     int
		survive []gpuengine.Candidate
	}
	kernelOut := make(chan kernelBatch)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(kernelOut)
		for b := 0; b < batchCount; b++ {
			start := b * batchSize
			end := start + batchSize
			if end > len(moments) {
				end = len(moments)
			}
			batch := moments[start:end]

			if o.Logger != nil {
				o.Logger.Debug("dispatching batch %d/%d (%d moments)", b+1, batchCount, len(batch))
			}
			result, err := o.Kernel.ScanBatch(gctx, cfg, batch, keys, wrap, filter)
			if err != nil {
				return fmt.Errorf("orchestrator: batch %d: %w", b, err)
			}
			select {
			case kernelOut <- kernelBatch{idx: b, survive: result}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	batchResults := make([][]ScannedCandidate, batchCount)
	g.Go(func() error {
		for kb := range kernelOut {
			scanned, err := o.scanBatch(gctx, kb.survive, scan)
			if err != nil {
				return err
			}
			batchResults[kb.idx] = scanned
			if o.Logger != nil {
				o.Logger.Debug("scanned batch %d/%d: %d survivors", kb.idx+1, batchCount, len(scanned))
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{})
	var out []ScannedCandidate
	for _, r := range batchResults {
		for _, c := range r {
			if _, dup := seen[c.Seed0]; dup {
				continue
			}
			seen[c.Seed0] = struct{}{}
			out = append(out, c)
		}
	}
	if o.Logger != nil {
		o.Logger.Info("scan complete: %d candidates across %d batches", len(out), batchCount)
	}
	return out, nil
}

func (o *Orchestrator) scanWorkerCount(n int) int {
	workers := o.ScanWorkers
	if workers <= 0 {
		if c, err := cpu.Counts(true); err == nil && c > 0 {
			workers = c
		} else {
			workers = runtime.NumCPU()
		}
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// scanBatch fans candidates out across a bounded worker pool and evaluates
// scan.Config against each, mirroring internal/gpuengine/software.Kernel's
// own worker-pool shape. Survivor order matches input order.
func (o *Orchestrator) scanBatch(ctx context.Context, candidates []gpuengine.Candidate, scan ScanFunc) ([]ScannedCandidate, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	workers := o.scanWorkerCount(len(candidates))
	slots := make([]*ScannedCandidate, len(candidates))

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
				c := candidates[idx]
				result, ok := scanner.Scan(scan(c))
				if !ok {
					continue
				}
				slots[idx] = &ScannedCandidate{Candidate: c, Matches: result.Matches}
			}
		}()
	}
	for idx := range candidates {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	survivors := make([]ScannedCandidate, 0, len(candidates))
	for _, s := range slots {
		if s != nil {
			survivors = append(survivors, *s)
		}
	}
	return survivors, nil
}
