//go:build js

package wrend

import "syscall/js"

// Clock returns a monotonic time in milliseconds.
type Clock func() float64

// defaultClock reads performance.now().
func defaultClock() Clock {
	perf := js.Global().Get("performance")
	return func() float64 {
		return perf.Call("now").Float()
	}
}
