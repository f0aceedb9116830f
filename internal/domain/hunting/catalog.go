package hunting

import (
	"fmt"
	"strings"
)

// Catalog holds the immutable kind descriptors for one run. Slice order is
// significant: hunts evaluate trap kinds and spawn checks visit animal kinds
// in the order listed here.
type Catalog struct {
	Animals []AnimalKind `json:"animals"`
	Traps   []TrapKind   `json:"traps"`
}

func DefaultCatalog() Catalog {
	return Catalog{
		Animals: []AnimalKind{
			{ID: "little", Name: "Hare", Cost: 10},
			{ID: "big", Name: "Boar", Cost: 40},
			{ID: "bird", Name: "Pheasant", Cost: 15},
		},
		Traps: []TrapKind{
			{ID: "snare", Name: "Snare", Cost: 30, CatchChance: map[AnimalKindID]float64{"little": 0.6, "bird": 0.1}},
			{ID: "pit", Name: "Pit", Cost: 80, CatchChance: map[AnimalKindID]float64{"big": 0.5, "little": 0.2}},
			{ID: "net", Name: "Net", Cost: 20, CatchChance: map[AnimalKindID]float64{"bird": 0.5}},
		},
	}
}

func (c Catalog) Animal(id AnimalKindID) (AnimalKind, error) {
	for _, a := range c.Animals {
		if a.ID == id {
			return a, nil
		}
	}
	return AnimalKind{}, newInvalidKindError("animal", string(id), c.animalIDs())
}

func (c Catalog) Trap(id TrapKindID) (TrapKind, error) {
	for _, t := range c.Traps {
		if t.ID == id {
			return t, nil
		}
	}
	return TrapKind{}, newInvalidKindError("trap", string(id), c.trapIDs())
}

func (c Catalog) animalIDs() []string {
	out := make([]string, 0, len(c.Animals))
	for _, a := range c.Animals {
		out = append(out, string(a.ID))
	}
	return out
}

func (c Catalog) trapIDs() []string {
	out := make([]string, 0, len(c.Traps))
	for _, t := range c.Traps {
		out = append(out, string(t.ID))
	}
	return out
}

func (c Catalog) Validate() error {
	if len(c.Animals) == 0 {
		return fmt.Errorf("%w: catalog has no animal kinds", ErrInvalidConfig)
	}
	animals := make(map[AnimalKindID]struct{}, len(c.Animals))
	for _, a := range c.Animals {
		if strings.TrimSpace(string(a.ID)) == "" {
			return fmt.Errorf("%w: animal kind with empty id", ErrInvalidConfig)
		}
		if _, dup := animals[a.ID]; dup {
			return fmt.Errorf("%w: duplicate animal kind %q", ErrInvalidConfig, a.ID)
		}
		if a.Cost < 0 {
			return fmt.Errorf("%w: animal kind %q has negative cost", ErrInvalidConfig, a.ID)
		}
		animals[a.ID] = struct{}{}
	}
	traps := make(map[TrapKindID]struct{}, len(c.Traps))
	for _, t := range c.Traps {
		if strings.TrimSpace(string(t.ID)) == "" {
			return fmt.Errorf("%w: trap kind with empty id", ErrInvalidConfig)
		}
		if _, dup := traps[t.ID]; dup {
			return fmt.Errorf("%w: duplicate trap kind %q", ErrInvalidConfig, t.ID)
		}
		if t.Cost < 0 {
			return fmt.Errorf("%w: trap kind %q has negative cost", ErrInvalidConfig, t.ID)
		}
		for kind, chance := range t.CatchChance {
			if _, ok := animals[kind]; !ok {
				return fmt.Errorf("trap %q catch table: %w", t.ID, newInvalidKindError("animal", string(kind), c.animalIDs()))
			}
			if chance < 0 || chance > 1 {
				return fmt.Errorf("%w: trap %q chance for %q out of [0,1]: %v", ErrInvalidConfig, t.ID, kind, chance)
			}
		}
		traps[t.ID] = struct{}{}
	}
	return nil
}
