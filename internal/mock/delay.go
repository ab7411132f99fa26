package mock

import (
	"math/rand"
	"time"
)

// Default delay bounds, matching the latency profile of the real
// registration endpoint.
const (
	DefaultDelayMin = 500 * time.Millisecond
	DefaultDelayMax = 1500 * time.Millisecond
)

// Delay blocks the caller for a uniformly random duration in [min, max),
// letting UI code exercise loading states realistically. There is no
// cancellation: once invoked it always returns after the computed delay.
// Negative bounds are treated as zero; when max <= min the delay is exactly
// min.
func Delay(min, max time.Duration) {
	time.Sleep(delayDuration(min, max))
}

// DefaultDelay is Delay with the default bounds.
func DefaultDelay() {
	Delay(DefaultDelayMin, DefaultDelayMax)
}

func delayDuration(min, max time.Duration) time.Duration {
	if min < 0 {
		min = 0
	}
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
