// Package frame is the host frame-timing source. Callbacks are one-shot:
// each one posted before a tick runs exactly once on that tick, and must
// post itself again to hear about the next frame.
package frame

// Callback receives the frame time in nanoseconds.
type Callback interface {
	DoFrame(frameTimeNanos int64)
}

// Func adapts a function to Callback. Func values are not comparable, so
// post a *Func when the callback has to be removed later.
type Func func(frameTimeNanos int64)

func (f *Func) DoFrame(frameTimeNanos int64) {
	(*f)(frameTimeNanos)
}

// Clock delivers posted callbacks once per Tick. It belongs to the render
// goroutine and is not safe for concurrent use.
type Clock struct {
	pending []Callback
	running []Callback
	frames  uint64
}

func NewClock() *Clock {
	return &Clock{}
}

// PostFrameCallback schedules cb for the next tick. Posting a callback that
// is already pending is a no-op.
func (c *Clock) PostFrameCallback(cb Callback) {
	if cb == nil {
		return
	}
	for _, p := range c.pending {
		if p == cb {
			return
		}
	}
	c.pending = append(c.pending, cb)
}

// RemoveFrameCallback cancels cb. It takes effect immediately, including for
// a tick that is currently delivering callbacks.
func (c *Clock) RemoveFrameCallback(cb Callback) {
	c.pending = remove(c.pending, cb)
	c.running = remove(c.running, cb)
}

// Tick runs every callback that was pending when it was called. Callbacks
// posted during the tick wait for the next one.
func (c *Clock) Tick(frameTimeNanos int64) {
	c.frames++
	c.running, c.pending = c.pending, nil
	for len(c.running) > 0 {
		cb := c.running[0]
		c.running = c.running[1:]
		cb.DoFrame(frameTimeNanos)
	}
	c.running = nil
}

// Pending returns the number of callbacks waiting for the next tick.
func (c *Clock) Pending() int {
	return len(c.pending)
}

// Frames returns the number of ticks so far.
func (c *Clock) Frames() uint64 {
	return c.frames
}

func remove(list []Callback, cb Callback) []Callback {
	out := list[:0]
	for _, p := range list {
		if p != cb {
			out = append(out, p)
		}
	}
	return out
}
