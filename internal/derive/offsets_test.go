package derive

import (
	"testing"

	"seedhunter/internal/lcg"
)

func TestOffsetBW2ContinueMatchesDocumentedStepCount(t *testing.T) {
	g := lcg.New(0x490CC591E17E7DB7)
	got := OffsetSeed1(&g, OffsetBW2Continue)
	if got != 55 {
		t.Fatalf("OffsetSeed1(BW2Continue) step count = %d, want 55", got)
	}
}

func TestOffsetBw1StartMatchesDocumentedStepCount(t *testing.T) {
	g := lcg.New(0x48B96278DC6233AB)
	got := OffsetSeed1(&g, OffsetBw1Start)
	if got != 34 {
		t.Fatalf("OffsetSeed1(Bw1Start) step count = %d, want 34", got)
	}
}

func TestTrainerIDMatchesDocumentedVectorAfterBw1Start(t *testing.T) {
	g := lcg.New(0x48B96278DC6233AB)
	OffsetSeed1(&g, OffsetBw1Start)
	tid, sid := TrainerID(&g, OffsetBw1Start)
	if tid != 5683 {
		t.Fatalf("tid = %d, want 5683", tid)
	}
	if sid != 47868 {
		t.Fatalf("sid = %d, want 47868", sid)
	}
}
