package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Ticker is the discrete simulation clock. The zero value starts at tick 0.
type Ticker struct {
	tick int
}

// Tick returns the current tick
func (t *Ticker) Tick() int { return t.tick }

// Next returns the tick that follows the current one
func (t *Ticker) Next() int { return t.tick + 1 }

// Advance moves the clock forward by one tick
func (t *Ticker) Advance() int {
	t.tick++
	return t.tick
}
