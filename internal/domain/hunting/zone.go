package hunting

// Zone owns the live animals and deployed traps of one habitat. Per-kind
// counts always equal the number of matching instances.
type Zone struct {
	spec    ZoneSpec
	catalog Catalog
	rng     RNG
	emit    emitFunc

	animals      []AnimalInstance
	traps        []TrapInstance
	animalCounts map[AnimalKindID]int
	trapCounts   map[TrapKindID]int
}

func NewZone(spec ZoneSpec, catalog Catalog, rng RNG, emit func(Event)) *Zone {
	return &Zone{
		spec:         spec,
		catalog:      catalog,
		rng:          rng,
		emit:         emit,
		animalCounts: map[AnimalKindID]int{},
		trapCounts:   map[TrapKindID]int{},
	}
}

func (z *Zone) ID() ZoneID     { return z.spec.ID }
func (z *Zone) Name() string   { return z.spec.Name }
func (z *Zone) Spec() ZoneSpec { return z.spec }

func (z *Zone) AnimalCount(kind AnimalKindID) int { return z.animalCounts[kind] }
func (z *Zone) TrapCount(kind TrapKindID) int     { return z.trapCounts[kind] }

// Animals returns a copy of the live collection in its current order.
func (z *Zone) Animals() []AnimalInstance {
	out := make([]AnimalInstance, len(z.animals))
	copy(out, z.animals)
	return out
}

func (z *Zone) Traps() []TrapInstance {
	out := make([]TrapInstance, len(z.traps))
	copy(out, z.traps)
	return out
}

// Spawn adds one animal. Overpopulation fires only when the count lands
// exactly on the threshold.
func (z *Zone) Spawn(kind AnimalKindID) {
	z.animals = append(z.animals, AnimalInstance{Kind: kind, Zone: z.spec.ID})
	z.animalCounts[kind]++
	count := z.animalCounts[kind]
	z.emit.emit(Event{Type: EventAnimalCountChanged, Zone: z.spec.ID, Animal: kind, Value: count})
	if count == OverpopulationThreshold {
		z.emit.emit(Event{Type: EventOverpopulation, Zone: z.spec.ID, Animal: kind, Value: count})
	}
}

func (z *Zone) DeployTrap(trap TrapInstance) {
	trap.Zone = z.spec.ID
	z.traps = append(z.traps, trap)
	z.trapCounts[trap.Kind]++
	z.emit.emit(Event{Type: EventZoneTrapCountChanged, Zone: z.spec.ID, Trap: trap.Kind, Value: z.trapCounts[trap.Kind]})
}

// ResolveHunt runs one hunt pass and returns the income it produced.
//
// Animals are shuffled so that each tick a different animal gets first pick
// of scarce traps. Each animal draws one number per deployed trap kind and
// that draw is shared by every instance of the kind, so stacking traps of
// one kind does not compound the chance. An animal is caught at most once
// and each catch consumes exactly one trap.
func (z *Zone) ResolveHunt() int {
	shuffleAnimals(z.rng, z.animals)

	income := 0
	caught := make([]bool, len(z.animals))
	for i, animal := range z.animals {
		kind, err := z.catalog.Animal(animal.Kind)
		if err != nil {
			continue
		}
		for _, trap := range z.catalog.Traps {
			if z.trapCounts[trap.ID] <= 0 {
				continue
			}
			r := z.rng.Float64()
			chance := trap.ChanceFor(animal.Kind)
			if chance <= 0 || chance < r {
				continue
			}
			income += kind.Cost
			z.consumeTrap(trap.ID)
			caught[i] = true
			z.emit.emit(Event{Type: EventHunted, Zone: z.spec.ID, Animal: animal.Kind, Trap: trap.ID, Value: kind.Cost})
			break
		}
	}

	survivors := z.animals[:0]
	removed := make([]AnimalKindID, 0)
	for i, animal := range z.animals {
		if caught[i] {
			removed = append(removed, animal.Kind)
			continue
		}
		survivors = append(survivors, animal)
	}
	z.animals = survivors

	for _, kind := range removed {
		z.animalCounts[kind]--
		count := z.animalCounts[kind]
		z.emit.emit(Event{Type: EventAnimalCountChanged, Zone: z.spec.ID, Animal: kind, Value: count})
		if count == 0 {
			z.emit.emit(Event{Type: EventExtinction, Zone: z.spec.ID, Animal: kind})
		}
	}
	return income
}

func (z *Zone) consumeTrap(kind TrapKindID) {
	for i, t := range z.traps {
		if t.Kind != kind {
			continue
		}
		z.traps = append(z.traps[:i], z.traps[i+1:]...)
		break
	}
	z.trapCounts[kind]--
	z.emit.emit(Event{Type: EventZoneTrapCountChanged, Zone: z.spec.ID, Trap: kind, Value: z.trapCounts[kind]})
}
