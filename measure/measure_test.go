package measure

import "testing"

func TestRecorderAccumulatesAndResets(t *testing.T) {
	r := &Recorder{m: make(map[string]uint64)}
	r.Add("base", 10)
	r.Add("base", 5)
	r.Add("prunable", 7)

	snap := r.SnapshotAndReset()
	if snap["base"] != 15 || snap["prunable"] != 7 {
		t.Fatalf("snapshot = %v, want base=15 prunable=7", snap)
	}
	if again := r.SnapshotAndReset(); len(again) != 0 {
		t.Fatalf("recorder not cleared: %v", again)
	}
}
