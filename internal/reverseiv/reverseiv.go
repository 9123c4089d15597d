// Package reverseiv implements the "reverse IV" lookup the rest of the
// codebase calls Flash Search: given an IV rectangle and a frame offset,
// find every 32-bit seed-high value whose tempered table output falls
// inside it, and cache the result so repeated queries for the same
// (offset, rectangle) pair are free.
//
// The compute kernels consult the tables built here: internal/gpuengine's
// GPUKernel uploads Finder.Seeds' result for its in-shader binary search,
// and the software KernelB tests each candidate's seed-high against the
// same list.
package reverseiv

import (
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"seedhunter/internal/ivgen"
)

// Key identifies one (frame offset, rectangle) query. It is comparable, so
// it can be used directly as a map/cache key.
type Key struct {
	P        uint8
	Min, Max ivgen.IVs
}

func (k Key) String() string {
	return fmt.Sprintf("p=%d min=%v max=%v", k.P, k.Min, k.Max)
}

// Finder scans the 32-bit seed-high space for IV-rectangle membership and
// memoizes results per Key.
type Finder struct {
	cache *lru.Cache[Key, []uint32]
}

// DefaultCacheSize is the number of distinct (offset, rectangle) queries
// kept resident before the least-recently-used one is evicted.
const DefaultCacheSize = 64

// NewFinder returns a Finder with the given result-cache capacity. A
// capacity of 0 uses DefaultCacheSize.
func NewFinder(cacheSize int) *Finder {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	c, err := lru.New[Key, []uint32](cacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which cacheSize
		// can never be at this point.
		panic(err)
	}
	return &Finder{cache: c}
}

// Seeds returns every 32-bit seed-high value whose IVs at frame offset p
// fall within [min, max] inclusive, scanning the full space on a cache
// miss and reusing the memoized result on a hit.
func (f *Finder) Seeds(p uint8, min, max ivgen.IVs) []uint32 {
	key := Key{P: p, Min: min, Max: max}
	if hit, ok := f.cache.Get(key); ok {
		return hit
	}

	var matches []uint32
	var seed uint32
	for {
		if ivgen.InRectangle(ivgen.FromSeed32(seed, p), min, max) {
			matches = append(matches, seed)
		}
		if seed == 0xFFFFFFFF {
			break
		}
		seed++
	}

	f.cache.Add(key, matches)
	return matches
}

// SeedsInRange is like Seeds but restricts the scan to [lo, hi] inclusive
// of the seed-high space, for callers sharding the space across workers.
// Range-scoped results are not cached, since they are not full-space
// answers to a Key.
func SeedsInRange(p uint8, min, max ivgen.IVs, lo, hi uint32) []uint32 {
	var matches []uint32
	for seed := lo; ; seed++ {
		if ivgen.InRectangle(ivgen.FromSeed32(seed, p), min, max) {
			matches = append(matches, seed)
		}
		if seed == hi {
			break
		}
	}
	return matches
}

// Rectangle is one IV rectangle query at a fixed frame offset, the unit
// UnionTables composes. It is the same shape as Key but named for its role
// here: a single rectangle among several being merged into one table.
type Rectangle struct {
	P        uint8
	Min, Max ivgen.IVs
}

// UnionTables returns the sorted, deduplicated union of every seed-high
// value satisfying any of rects, reusing each rectangle's cached Seeds
// result. This backs the GPU engine's mt_compact post-kernel: a
// multi-rectangle search dispatches kernel B once per rectangle and then
// re-checks the combined survivor set against this union so a seed
// matching more than one rectangle is only reported once.
func (f *Finder) UnionTables(rects []Rectangle) []uint32 {
	seen := make(map[uint32]struct{})
	var out []uint32
	for _, r := range rects {
		for _, s := range f.Seeds(r.P, r.Min, r.Max) {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len reports how many (offset, rectangle) queries are currently cached.
func (f *Finder) Len() int {
	return f.cache.Len()
}

// Purge clears every cached query result.
func (f *Finder) Purge() {
	f.cache.Purge()
}
