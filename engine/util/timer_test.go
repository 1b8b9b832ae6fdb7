package util

import (
	"strings"
	"testing"
	"time"
)

func TestTimerRecords(t *testing.T) {
	timer := NewTimer()
	clock := time.Unix(0, 0)
	timer.now = func() time.Time { return clock }

	for _, ms := range []int{2, 4, 6} {
		stop := timer.Start("flush")
		clock = clock.Add(time.Duration(ms) * time.Millisecond)
		if got := stop(); got != float64(ms) {
			t.Errorf("stop() = %v, want %d", got, ms)
		}
	}
	s := timer.GetState("flush")
	if s.Count() != 3 || s.Average() != 4 || s.Last() != 6 {
		t.Errorf("state = %s", s)
	}
	if s.minDuration != 2 || s.maxDuration != 6 {
		t.Errorf("min/max = %v/%v", s.minDuration, s.maxDuration)
	}

	timer.Reset()
	if s := timer.GetState("flush"); s.Count() != 0 || s.Average() != 0 {
		t.Errorf("after reset: %s", s)
	}
}

func TestTimerStringOrder(t *testing.T) {
	timer := NewTimer()
	timer.Start("layout")()
	timer.Start("flush")()
	lines := strings.Split(strings.TrimSpace(timer.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "layout") || !strings.HasPrefix(lines[1], "flush") {
		t.Errorf("String() = %q", timer.String())
	}
	if timer.GetState("missing") != nil {
		t.Error("unknown section has state")
	}
}
