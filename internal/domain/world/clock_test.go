package world

import (
	"testing"
	"time"
)

func testClock() *Clock {
	return NewClock(ClockConfig{Timers: []Timer{
		{Name: "tax", Every: 10 * time.Second},
		{Name: "hunt", Every: 5 * time.Second},
		{Name: "spawn", Every: time.Second},
	}})
}

func TestClockFiresInChronologicalThenConfiguredOrder(t *testing.T) {
	c := testClock()
	var got []Firing
	n := c.Advance(10*time.Second, func(f Firing) bool {
		got = append(got, f)
		return true
	})
	if n != 13 {
		t.Fatalf("expected 13 firings, got %d", n)
	}
	tail := got[len(got)-3:]
	want := []string{"tax", "hunt", "spawn"}
	for i := range want {
		if tail[i].Name != want[i] || tail[i].At != 10*time.Second {
			t.Fatalf("expected %s at 10s in slot %d, got %s at %s", want[i], i, tail[i].Name, tail[i].At)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].At < got[i-1].At {
			t.Fatalf("firings out of order at %d: %s before %s", i, got[i-1].At, got[i].At)
		}
	}
	if c.Now() != 10*time.Second {
		t.Fatalf("expected now=10s, got %s", c.Now())
	}
}

func TestClockCarriesPartialSteps(t *testing.T) {
	c := testClock()
	fired := 0
	count := func(Firing) bool { fired++; return true }
	c.Advance(2500*time.Millisecond, count)
	c.Advance(2500*time.Millisecond, count)
	if fired != 6 {
		t.Fatalf("expected 5 spawn + 1 hunt firings over two half steps, got %d", fired)
	}
	next, ok := c.NextDue("hunt")
	if !ok || next != 10*time.Second {
		t.Fatalf("expected next hunt at 10s, got %s (ok=%v)", next, ok)
	}
}

func TestClockStopsWhenFireDeclines(t *testing.T) {
	c := testClock()
	n := c.Advance(time.Minute, func(f Firing) bool {
		return f.Name != "hunt"
	})
	if n != 5 {
		t.Fatalf("expected to stop at the first hunt, got %d firings", n)
	}
	if c.Now() != 5*time.Second {
		t.Fatalf("expected clock held at 5s, got %s", c.Now())
	}
}

func TestClockPaused(t *testing.T) {
	c := testClock()
	c.Pause()
	n := c.Advance(time.Minute, func(Firing) bool { return true })
	if n != 0 || c.Now() != 0 {
		t.Fatalf("expected paused clock to stay put, got n=%d now=%s", n, c.Now())
	}
	c.Resume()
	if c.Paused() {
		t.Fatalf("expected resumed clock")
	}
}

func TestClockIgnoresNonPositiveIntervals(t *testing.T) {
	c := NewClock(ClockConfig{Timers: []Timer{{Name: "broken", Every: 0}}})
	if n := c.Advance(time.Hour, func(Firing) bool { return true }); n != 0 {
		t.Fatalf("expected no firings, got %d", n)
	}
	if c.Now() != time.Hour {
		t.Fatalf("expected time to pass, got %s", c.Now())
	}
}
