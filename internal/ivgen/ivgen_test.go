package ivgen

import "testing"

func TestFromSeed0MatchesDocumentedVector(t *testing.T) {
	got := FromSeed0(0x9B3E7C4BC185AE31, 5)
	want := IVs{31, 19, 31, 31, 31, 31}
	if got != want {
		t.Fatalf("FromSeed0(seed, 5) = %v, want %v", got, want)
	}
}

func TestInRectangle(t *testing.T) {
	ivs := IVs{31, 0, 31, 31, 31, 31}
	min := IVs{31, 0, 0, 0, 0, 0}
	max := IVs{31, 31, 31, 31, 31, 31}
	if !InRectangle(ivs, min, max) {
		t.Fatalf("expected ivs to fall within rectangle")
	}
	min[1] = 1
	if InRectangle(ivs, min, max) {
		t.Fatalf("expected ivs to fall outside tightened rectangle")
	}
}

func TestFromSeed1MatchesFromSeed0Chain(t *testing.T) {
	seed0 := uint64(0x9B3E7C4BC185AE31)
	seed1 := seed0*0x5D588B656C078965 + 0x269EC3
	if got, want := FromSeed1(seed1, 5), FromSeed0(seed0, 5); got != want {
		t.Fatalf("FromSeed1 = %v, FromSeed0 = %v", got, want)
	}
}
