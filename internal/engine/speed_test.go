package engine

import (
	"testing"
	"time"
)

func TestDropIntervalAfter(t *testing.T) {
	timing := Timing{
		DropIntervalStart:    500 * time.Millisecond,
		DropIntervalDecrease: 40 * time.Millisecond,
		DropIntervalMinimum:  100 * time.Millisecond,
	}

	for n := 0; n <= 30; n++ {
		expected := max(timing.DropIntervalMinimum, timing.DropIntervalStart-time.Duration(n)*timing.DropIntervalDecrease)
		if got := timing.DropIntervalAfter(n); got != expected {
			t.Errorf("DropIntervalAfter(%d) = %v, expected %v", n, got, expected)
		}
	}

	tests := []struct {
		n        int
		expected time.Duration
	}{
		{0, 500 * time.Millisecond},
		{1, 460 * time.Millisecond},
		{10, 100 * time.Millisecond},
		{11, 100 * time.Millisecond},
		{-3, 500 * time.Millisecond},
	}
	for _, tc := range tests {
		if got := timing.DropIntervalAfter(tc.n); got != tc.expected {
			t.Errorf("DropIntervalAfter(%d) = %v, expected %v", tc.n, got, tc.expected)
		}
	}
}

func TestDropIntervalFixed(t *testing.T) {
	timing := Timing{
		DropIntervalStart:   300 * time.Millisecond,
		DropIntervalMinimum: 100 * time.Millisecond,
	}
	if got := timing.DropIntervalAfter(50); got != 300*time.Millisecond {
		t.Errorf("DropIntervalAfter(50) with no decrease = %v, expected 300ms", got)
	}
}
