package util

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// TimerState holds the statistics of one named section, in milliseconds.
type TimerState struct {
	name         string
	lastDuration float64

	totalDuration  float64
	executionCount int64

	minDuration float64
	maxDuration float64
}

func newTimerState(name string) *TimerState {
	return &TimerState{
		name:        name,
		minDuration: math.MaxFloat64,
		maxDuration: 0,
	}
}

func (t *TimerState) Count() int64 {
	return t.executionCount
}

func (t *TimerState) Last() float64 {
	return t.lastDuration
}

func (t *TimerState) Average() float64 {
	if t.executionCount == 0 {
		return 0
	}
	return t.totalDuration / float64(t.executionCount)
}

func (t *TimerState) record(durationInMS float64) {
	t.lastDuration = durationInMS
	t.totalDuration += durationInMS
	t.executionCount++
	if durationInMS < t.minDuration {
		t.minDuration = durationInMS
	}
	if durationInMS > t.maxDuration {
		t.maxDuration = durationInMS
	}
}

func (t *TimerState) String() string {
	if t.executionCount == 0 {
		return fmt.Sprintf("%s: no samples", t.name)
	}
	return fmt.Sprintf("%s last: %.2fms, avg: %.2fms, min: %.2fms, max: %.2fms (%d samples)",
		t.name, t.lastDuration, t.Average(), t.minDuration, t.maxDuration, t.executionCount)
}

// Timer measures named sections of a frame, such as text layout and flush.
type Timer struct {
	states     map[string]*TimerState
	timerNames []string
	now        func() time.Time
}

func NewTimer() *Timer {
	return &Timer{
		states: make(map[string]*TimerState),
		now:    time.Now,
	}
}

// GetState returns the statistics of name or nil if it was never started.
func (t *Timer) GetState(name string) *TimerState {
	return t.states[name]
}

func (t *Timer) Reset() {
	for _, name := range t.timerNames {
		t.states[name] = newTimerState(name)
	}
}

// String lists all sections in the order they were first started.
func (t *Timer) String() string {
	var sb strings.Builder
	for _, name := range t.timerNames {
		sb.WriteString(t.states[name].String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Start begins timing name. Calling the returned function stops it and
// returns the measured duration in milliseconds.
func (t *Timer) Start(name string) func() float64 {
	state, ok := t.states[name]
	if !ok {
		t.timerNames = append(t.timerNames, name)
		state = newTimerState(name)
		t.states[name] = state
	}
	start := t.now()
	return func() float64 {
		durationInMS := float64(t.now().Sub(start).Microseconds()) / 1000.0
		state.record(durationInMS)
		return durationInMS
	}
}
