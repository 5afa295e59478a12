//go:build !js

package wrend

import "time"

// Clock returns a monotonic time in milliseconds.
type Clock func() float64

// defaultClock measures milliseconds since it was created.
func defaultClock() Clock {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
