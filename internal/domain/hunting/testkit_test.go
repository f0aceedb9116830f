package hunting

import "time"

// scriptedRNG replays fixed draws. Exhausted ints yield 0 and exhausted
// floats yield 0.999 so that unscripted draws never catch anything.
type scriptedRNG struct {
	ints   []int
	floats []float64
	intN   []int
	floatN int
}

func (r *scriptedRNG) IntN(n int) int {
	r.intN = append(r.intN, n)
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func (r *scriptedRNG) Float64() float64 {
	r.floatN++
	if len(r.floats) == 0 {
		return 0.999
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func testCatalog() Catalog {
	return Catalog{
		Animals: []AnimalKind{
			{ID: "x", Name: "Xerus", Cost: 10},
			{ID: "y", Name: "Yak", Cost: 25},
		},
		Traps: []TrapKind{
			{ID: "t", Name: "Trap", Cost: 30, CatchChance: map[AnimalKindID]float64{"x": 1.0}},
			{ID: "u", Name: "Cage", Cost: 50, CatchChance: map[AnimalKindID]float64{"x": 0.5, "y": 0.5}},
		},
	}
}

func testConfig() Config {
	return Config{
		Catalog:      testCatalog(),
		Zones:        []ZoneSpec{{ID: "z1", Name: "Zone One"}},
		StartMoney:   100,
		TaxMin:       15,
		TaxMax:       35,
		GoalBalance:  1000,
		InitialStock: 0,
		Timers:       Timers{Tax: 10 * time.Second, Hunt: 5 * time.Second, Spawn: time.Second},
	}
}

func countEvents(events []Event, typ EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func assertZoneCounts(t interface {
	Helper()
	Fatalf(string, ...any)
}, z *Zone) {
	t.Helper()
	byKind := map[AnimalKindID]int{}
	for _, a := range z.Animals() {
		byKind[a.Kind]++
	}
	for kind, n := range z.animalCounts {
		if n < 0 {
			t.Fatalf("negative animal count for %s: %d", kind, n)
		}
		if byKind[kind] != n {
			t.Fatalf("animal count mismatch for %s: counter=%d live=%d", kind, n, byKind[kind])
		}
	}
	trapsByKind := map[TrapKindID]int{}
	for _, tr := range z.Traps() {
		trapsByKind[tr.Kind]++
	}
	for kind, n := range z.trapCounts {
		if n < 0 {
			t.Fatalf("negative trap count for %s: %d", kind, n)
		}
		if trapsByKind[kind] != n {
			t.Fatalf("trap count mismatch for %s: counter=%d deployed=%d", kind, n, trapsByKind[kind])
		}
	}
}
