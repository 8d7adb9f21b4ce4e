package ambience

import (
	"container/heap"
	"time"
)

// Cancel stops a scheduled callback. Calling it more than once, or after
// the callback has fired, is a no-op.
type Cancel func()

// Scheduler registers delayed and recurring callbacks.
type Scheduler interface {
	After(d time.Duration, fn func()) Cancel
	Every(d time.Duration, fn func()) Cancel
}

// Clock is a single-threaded virtual-time scheduler. Nothing fires on its
// own: the owner's loop calls Advance and due callbacks run on the caller's
// goroutine, in due-time order and then registration order.
type Clock struct {
	now    time.Duration
	seq    uint64
	timers timerQueue
}

type timer struct {
	due      time.Duration
	seq      uint64
	interval time.Duration // zero for one-shot
	fn       func()
	dead     bool
	index    int
}

// NewClock returns a clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the virtual time elapsed since the clock was created.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Pending returns the number of live scheduled callbacks.
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.dead {
			n++
		}
	}
	return n
}

// After runs fn once, d after now.
func (c *Clock) After(d time.Duration, fn func()) Cancel {
	return c.schedule(d, 0, fn)
}

// Every runs fn every d, the first time one full interval from now.
func (c *Clock) Every(d time.Duration, fn func()) Cancel {
	if d <= 0 {
		panic("ambience: non-positive interval")
	}
	return c.schedule(d, d, fn)
}

func (c *Clock) schedule(d, interval time.Duration, fn func()) Cancel {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &timer{due: c.now + d, seq: c.seq, interval: interval, fn: fn}
	heap.Push(&c.timers, t)
	return func() {
		if t.dead {
			return
		}
		t.dead = true
		if t.index >= 0 {
			heap.Remove(&c.timers, t.index)
		}
	}
}

// Advance moves time forward by d, firing every callback that becomes due.
// Callbacks scheduled while advancing fire too if they fall within d.
func (c *Clock) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	end := c.now + d
	for len(c.timers) > 0 && c.timers[0].due <= end {
		t := heap.Pop(&c.timers).(*timer)
		c.now = t.due
		if t.interval > 0 {
			c.seq++
			t.due += t.interval
			t.seq = c.seq
			heap.Push(&c.timers, t)
		} else {
			t.dead = true
		}
		t.fn()
	}
	c.now = end
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
