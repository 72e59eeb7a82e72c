package backoff

import "testing"

func TestPauseAdvancesRegimes(t *testing.T) {
	var b Backoff
	for i := 0; i < spinLoops+sleepLoops+3; i++ {
		b.Pause()
	}
	if b.count != spinLoops+sleepLoops+3 {
		t.Fatalf("count = %d, want %d", b.count, spinLoops+sleepLoops+3)
	}
}

func TestReset(t *testing.T) {
	var b Backoff
	b.Pause()
	b.Pause()
	b.Reset()
	if b.count != 0 {
		t.Fatalf("count = %d after Reset, want 0", b.count)
	}
}
