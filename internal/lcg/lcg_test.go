package lcg

import "testing"

func TestNextMatchesDirectFormula(t *testing.T) {
	seed := uint64(0x1234567890ABCDEF)
	g := New(seed)
	want := seed*Multiplier + Increment
	if got := g.Next(); got != want {
		t.Fatalf("Next() = %#x, want %#x", got, want)
	}
	if g.Step != 1 {
		t.Fatalf("Step = %d, want 1", g.Step)
	}
}

func TestAdvanceMatchesRepeatedNext(t *testing.T) {
	seed := uint64(0x9B3E7C4BC185AE31)
	stepped := New(seed)
	for i := 0; i < 40; i++ {
		stepped.Next()
	}

	jumped := New(seed).Advance(40)

	if jumped.State != stepped.State {
		t.Fatalf("Advance(40) = %#x, want %#x (matching 40x Next())", jumped.State, stepped.State)
	}
	if jumped.State != 0x20B7ACE1F983F819 {
		t.Fatalf("Advance(40) = %#x, want documented vector 0x20B7ACE1F983F819", jumped.State)
	}
}

func TestAdvanceZeroIsIdentity(t *testing.T) {
	g := New(0xDEADBEEFCAFEF00D)
	if j := g.Advance(0); j != g {
		t.Fatalf("Advance(0) = %+v, want identity %+v", j, g)
	}
}

func TestAdvanceIsAdditive(t *testing.T) {
	seed := uint64(0x0102030405060708)
	a := New(seed).Advance(17).Advance(23)
	b := New(seed).Advance(40)
	if a.State != b.State {
		t.Fatalf("Advance(17).Advance(23) = %#x, want Advance(40) = %#x", a.State, b.State)
	}
}

func TestAdvanceLargeNMatchesDoubling(t *testing.T) {
	seed := uint64(0xAAAAAAAAAAAAAAAA)
	g := New(seed)
	n := uint64(1_000_003)
	slow := g
	for i := uint64(0); i < n; i++ {
		slow.Next()
	}
	fast := g.Advance(n)
	if slow.State != fast.State {
		t.Fatalf("mismatch after %d steps: slow=%#x fast=%#x", n, slow.State, fast.State)
	}
}

func TestRandConsumesCurrentStateThenAdvances(t *testing.T) {
	g := New(0x48B96278DC6233AB)
	before := g.State
	want := uint32((before >> 32) * 100 >> 32)
	got := g.Rand(100)
	if got != want {
		t.Fatalf("Rand(100) = %d, want %d", got, want)
	}
	if g.Step != 1 {
		t.Fatalf("Rand should advance by one step, Step = %d", g.Step)
	}
}
