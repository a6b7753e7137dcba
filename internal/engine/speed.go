package engine

import "time"

// Timing holds the drop-speed schedule.
type Timing struct {
	DropIntervalStart    time.Duration
	DropIntervalDecrease time.Duration
	SpeedUpPeriod        time.Duration
	DropIntervalMinimum  time.Duration
}

// DropIntervalAfter returns the drop interval after n speed-ups:
// max(minimum, start - n*decrease).
func (t Timing) DropIntervalAfter(n int) time.Duration {
	if n < 0 {
		n = 0
	}
	d := t.DropIntervalStart - time.Duration(n)*t.DropIntervalDecrease
	return max(d, t.DropIntervalMinimum)
}
