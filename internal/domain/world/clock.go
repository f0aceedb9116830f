package world

import "time"

// Timer is a periodic process. A timer with interval d first fires at d
// after the clock starts, then every d.
type Timer struct {
	Name  string
	Every time.Duration
}

type Firing struct {
	Name string
	At   time.Duration
}

type ClockConfig struct {
	Timers []Timer
}

// Clock is a logical clock stepping simulated time forward. It never reads
// wall time; callers decide how much time passes.
type Clock struct {
	timers []Timer
	next   []time.Duration
	now    time.Duration
	paused bool
}

func NewClock(cfg ClockConfig) *Clock {
	c := &Clock{
		timers: make([]Timer, 0, len(cfg.Timers)),
		next:   make([]time.Duration, 0, len(cfg.Timers)),
	}
	for _, t := range cfg.Timers {
		if t.Every <= 0 {
			continue
		}
		c.timers = append(c.timers, t)
		c.next = append(c.next, t.Every)
	}
	return c
}

func (c *Clock) Now() time.Duration { return c.now }
func (c *Clock) Paused() bool       { return c.paused }
func (c *Clock) Pause()             { c.paused = true }
func (c *Clock) Resume()            { c.paused = false }

// NextDue reports the time at which the named timer fires next.
func (c *Clock) NextDue(name string) (time.Duration, bool) {
	for i, t := range c.timers {
		if t.Name == name {
			return c.next[i], true
		}
	}
	return 0, false
}

// Advance moves time forward by dt, calling fire for every firing that falls
// inside the step in chronological order. Firings due at the same instant run
// in the order the timers were configured. When fire returns false the clock
// stops at that firing's time and the remaining step is dropped. A paused
// clock does not move. Returns the number of firings delivered.
func (c *Clock) Advance(dt time.Duration, fire func(Firing) bool) int {
	if c.paused || dt <= 0 {
		return 0
	}
	target := c.now + dt
	fired := 0
	for {
		idx := c.earliest()
		if idx < 0 || c.next[idx] > target {
			break
		}
		c.now = c.next[idx]
		c.next[idx] += c.timers[idx].Every
		fired++
		if !fire(Firing{Name: c.timers[idx].Name, At: c.now}) {
			return fired
		}
	}
	c.now = target
	return fired
}

func (c *Clock) earliest() int {
	idx := -1
	for i := range c.timers {
		if idx < 0 || c.next[i] < c.next[idx] {
			idx = i
		}
	}
	return idx
}
