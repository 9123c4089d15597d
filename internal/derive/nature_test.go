package derive

import "testing"

import "seedhunter/internal/lcg"

func TestGetNatureMatchesDocumentedVector(t *testing.T) {
	g := lcg.New(0xf9d9dd91248eecb0)
	g = g.Advance(213)
	if got := GetNature(&g); got != Nature(19) {
		t.Fatalf("GetNature = %d (%s), want 19 (Rash)", got, got)
	}
}

func TestNatureNameTable(t *testing.T) {
	if Nature(0).String() != "Hardy" {
		t.Fatalf("Nature(0) = %s, want Hardy", Nature(0))
	}
	if Nature(24).String() != "Quirky" {
		t.Fatalf("Nature(24) = %s, want Quirky", Nature(24))
	}
}
