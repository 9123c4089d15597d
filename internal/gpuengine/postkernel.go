package gpuengine

// CompactUnion implements the mt_compact post-kernel: when a search spans
// more than one IV rectangle (a multi-rectangle union search), kernel A/B
// is dispatched once per rectangle and the per-rectangle survivor sets are
// concatenated by the caller before reaching here. A seed whose IVs fall in
// more than one rectangle shows up once per matching rectangle in that
// concatenation; CompactUnion re-checks every candidate's seed-high against
// the rectangle union table (internal/reverseiv.Finder.UnionTables) and
// keeps only the first candidate seen for each seed-high, so the final
// result set has exactly one entry per distinct seed regardless of how many
// rectangles it satisfied.
func CompactUnion(candidates []Candidate, union []uint32) []Candidate {
	member := make(map[uint32]struct{}, len(union))
	for _, s := range union {
		member[s] = struct{}{}
	}

	seen := make(map[uint32]struct{}, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		seedHigh := uint32(c.Seed1 >> 32)
		if _, ok := member[seedHigh]; !ok {
			continue
		}
		if _, ok := seen[seedHigh]; ok {
			continue
		}
		seen[seedHigh] = struct{}{}
		out = append(out, c)
	}
	return out
}
