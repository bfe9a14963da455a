package grid

import (
	"sort"
	"time"
)

// Timer is a cancelable deferred callback.
type Timer interface {
	// Stop cancels the timer. Returns false if it already fired or was stopped.
	Stop() bool
}

// Scheduler creates timers. Callbacks must run on the host's event loop,
// never concurrently with another grid operation.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
}

// FrameClock is a single-threaded Scheduler driven by the host's frame loop.
// Due callbacks fire synchronously inside Advance, in due order.
//
// Usage:
//
//	clock := NewFrameClock()
//	g, _ := New(provider, cols, WithScheduler(clock))
//	for !window.ShouldClose() {
//	    clock.Advance(frameDelta)
//	}
type FrameClock struct {
	now    time.Duration
	seq    uint64
	timers []*clockTimer
}

type clockTimer struct {
	clock    *FrameClock
	due      time.Duration
	interval time.Duration // 0 for one-shot
	seq      uint64
	fn       func()
	live     bool
}

// NewFrameClock creates a clock at time zero.
func NewFrameClock() *FrameClock {
	return &FrameClock{}
}

// AfterFunc schedules fn once, d from now.
func (c *FrameClock) AfterFunc(d time.Duration, fn func()) Timer {
	return c.add(d, 0, fn)
}

// Every schedules fn every d, the first call d from now.
func (c *FrameClock) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	return c.add(d, d, fn)
}

func (c *FrameClock) add(d, interval time.Duration, fn func()) *clockTimer {
	c.seq++
	t := &clockTimer{clock: c, due: c.now + d, interval: interval, seq: c.seq, fn: fn, live: true}
	c.timers = append(c.timers, t)
	return t
}

// Now returns the clock's elapsed time.
func (c *FrameClock) Now() time.Duration { return c.now }

// Advance moves the clock forward by dt and fires every callback due in
// between. A repeating timer fires once per elapsed interval.
func (c *FrameClock) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	target := c.now + dt
	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		c.now = t.due
		if t.interval > 0 {
			t.due += t.interval
		} else {
			t.live = false
		}
		t.fn()
		c.compact()
	}
	c.now = target
}

func (c *FrameClock) nextDue(target time.Duration) *clockTimer {
	var next *clockTimer
	for _, t := range c.timers {
		if !t.live || t.due > target {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (c *FrameClock) compact() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if t.live {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(c.timers); i++ {
		c.timers[i] = nil
	}
	c.timers = live
}

// Pending returns the number of live timers.
func (c *FrameClock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if t.live {
			n++
		}
	}
	return n
}

// NextDue returns the time until the earliest live timer fires.
func (c *FrameClock) NextDue() (time.Duration, bool) {
	live := make([]*clockTimer, 0, len(c.timers))
	for _, t := range c.timers {
		if t.live {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return 0, false
	}
	sort.Slice(live, func(i, j int) bool { return live[i].due < live[j].due })
	return live[0].due - c.now, true
}

func (t *clockTimer) Stop() bool {
	if !t.live {
		return false
	}
	t.live = false
	t.clock.compact()
	return true
}
