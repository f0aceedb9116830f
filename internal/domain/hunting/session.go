package hunting

import (
	"fmt"
	"time"

	"trapzone/internal/domain/world"
)

type Outcome struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// Session composes the economy, the inventory, the zones and the clock, and
// decides when the game ends. Once over it rejects commands and ignores
// ticks.
type Session struct {
	cfg       Config
	rng       RNG
	economy   *Economy
	inventory *Inventory
	zones     []*Zone
	clock     *world.Clock
	observers []Observer

	state   State
	outcome Outcome
}

// NewSession validates cfg, credits the start money and stocks every zone.
// A nil rng falls back to a PCG seeded from cfg.Seed.
func NewSession(cfg Config, rng RNG, observers ...Observer) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewSeededRNG(cfg.Seed)
	}
	s := &Session{
		cfg:       cfg,
		rng:       rng,
		observers: append([]Observer(nil), observers...),
		state:     StateRunning,
		clock: world.NewClock(world.ClockConfig{Timers: []world.Timer{
			{Name: string(ProcessTax), Every: cfg.Timers.Tax},
			{Name: string(ProcessHunt), Every: cfg.Timers.Hunt},
			{Name: string(ProcessSpawn), Every: cfg.Timers.Spawn},
		}}),
	}
	s.economy = NewEconomy(s.handle)
	s.inventory = NewInventory(s.handle)
	for _, spec := range cfg.Zones {
		s.zones = append(s.zones, NewZone(spec, cfg.Catalog, rng, s.handle))
	}

	s.economy.ApplyDelta(cfg.StartMoney)
	for _, z := range s.zones {
		for _, animal := range cfg.Catalog.Animals {
			for i := 0; i < cfg.InitialStock && s.running(); i++ {
				z.Spawn(animal.ID)
			}
		}
	}
	return s, nil
}

func (s *Session) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *Session) Config() Config         { return s.cfg }
func (s *Session) State() State           { return s.state }
func (s *Session) Outcome() Outcome       { return s.outcome }
func (s *Session) Over() bool             { return s.state == StateOver }
func (s *Session) Balance() int           { return s.economy.Balance() }
func (s *Session) Owned(k TrapKindID) int { return s.inventory.Count(k) }
func (s *Session) Now() time.Duration     { return s.clock.Now() }
func (s *Session) Paused() bool           { return s.clock.Paused() }

func (s *Session) running() bool { return s.state == StateRunning }

func (s *Session) Zones() []*Zone {
	return append([]*Zone(nil), s.zones...)
}

func (s *Session) Zone(id ZoneID) (*Zone, error) {
	for _, z := range s.zones {
		if z.ID() == id {
			return z, nil
		}
	}
	known := make([]string, 0, len(s.zones))
	for _, z := range s.zones {
		known = append(known, string(z.ID()))
	}
	if hint := closestID(string(id), known); hint != "" {
		return nil, fmt.Errorf("%w: %q (did you mean %q?)", ErrInvalidZone, id, hint)
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidZone, id)
}

// PurchaseTrap buys one trap of the given kind.
func (s *Session) PurchaseTrap(kind TrapKindID) error {
	if !s.running() {
		return ErrSessionOver
	}
	trap, err := s.cfg.Catalog.Trap(kind)
	if err != nil {
		return err
	}
	return s.inventory.Purchase(s.economy, trap)
}

// DeployTrap moves one owned trap into a zone.
func (s *Session) DeployTrap(kind TrapKindID, zoneID ZoneID) error {
	if !s.running() {
		return ErrSessionOver
	}
	if _, err := s.cfg.Catalog.Trap(kind); err != nil {
		return err
	}
	zone, err := s.Zone(zoneID)
	if err != nil {
		return err
	}
	trap, err := s.inventory.Deploy(kind, zoneID)
	if err != nil {
		return err
	}
	zone.DeployTrap(trap)
	return nil
}

// Advance steps the clock and runs every process that comes due. Returns the
// number of firings executed.
func (s *Session) Advance(dt time.Duration) int {
	if !s.running() {
		return 0
	}
	return s.clock.Advance(dt, func(f world.Firing) bool {
		s.fire(Process(f.Name))
		return s.running()
	})
}

// Fire runs one process immediately, outside the clock.
func (s *Session) Fire(p Process) error {
	switch p {
	case ProcessTax, ProcessHunt, ProcessSpawn:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProcess, p)
	}
	if !s.running() {
		return ErrSessionOver
	}
	s.fire(p)
	return nil
}

func (s *Session) FireTax() error        { return s.Fire(ProcessTax) }
func (s *Session) FireHunt() error       { return s.Fire(ProcessHunt) }
func (s *Session) FireSpawnCheck() error { return s.Fire(ProcessSpawn) }

func (s *Session) Pause()  { s.clock.Pause() }
func (s *Session) Resume() {
	if s.running() {
		s.clock.Resume()
	}
}

func (s *Session) fire(p Process) {
	switch p {
	case ProcessTax:
		s.collectTaxes()
	case ProcessHunt:
		s.hunt()
	case ProcessSpawn:
		s.spawnCheck()
	}
}

func (s *Session) collectTaxes() {
	amount := s.cfg.TaxMin
	if span := s.cfg.TaxMax - s.cfg.TaxMin; span > 0 {
		amount += s.rng.IntN(span)
	}
	s.economy.ApplyDelta(-amount)
}

func (s *Session) hunt() {
	for _, z := range s.zones {
		income := z.ResolveHunt()
		if !s.running() {
			return
		}
		s.economy.ApplyDelta(income)
		if !s.running() {
			return
		}
	}
}

// spawnCheck gives every kind in every zone a chance to breed. The chance
// grows with the current count and stops at SpawnCheckCap.
func (s *Session) spawnCheck() {
	for _, z := range s.zones {
		for _, animal := range s.cfg.Catalog.Animals {
			if !s.running() {
				return
			}
			count := z.AnimalCount(animal.ID)
			if count >= SpawnCheckCap {
				continue
			}
			if count >= s.rng.IntN(SpawnRollFaces) {
				z.Spawn(animal.ID)
			}
		}
	}
}

// Affordable lists trap kinds whose cost the balance covers, in catalog
// order.
func (s *Session) Affordable() []TrapKindID {
	out := make([]TrapKindID, 0, len(s.cfg.Catalog.Traps))
	for _, t := range s.cfg.Catalog.Traps {
		if s.economy.CanAfford(t.Cost) {
			out = append(out, t.ID)
		}
	}
	return out
}

// Deployable lists trap kinds with at least one owned trap.
func (s *Session) Deployable() []TrapKindID {
	out := make([]TrapKindID, 0, len(s.cfg.Catalog.Traps))
	for _, t := range s.cfg.Catalog.Traps {
		if s.inventory.Count(t.ID) > 0 {
			out = append(out, t.ID)
		}
	}
	return out
}

func (s *Session) handle(evt Event) {
	for _, o := range s.observers {
		o.Notify(evt)
	}
	if !s.running() {
		return
	}
	switch evt.Type {
	case EventBalanceChanged:
		switch {
		case evt.Value <= BankruptBalance:
			s.end(ReasonBankrupt, "You don't have money anymore so you die")
		case evt.Value >= s.cfg.GoalBalance:
			s.end(ReasonGoalReached, "You earned enough money for all life")
		}
	case EventExtinction:
		s.end(reasonExtinctionAt+string(evt.Animal), fmt.Sprintf("Population %s was killed. You're fired", s.animalName(evt.Animal)))
	case EventOverpopulation:
		s.end(reasonOverrunAt+string(evt.Animal), fmt.Sprintf("Population %s took over the world. Now you are a slave", s.animalName(evt.Animal)))
	}
}

func (s *Session) end(reason, message string) {
	s.state = StateOver
	s.outcome = Outcome{Reason: reason, Message: message}
	s.clock.Pause()
	evt := Event{Type: EventSessionOver, Reason: reason, Message: message, Value: s.economy.Balance()}
	for _, o := range s.observers {
		o.Notify(evt)
	}
}

func (s *Session) animalName(id AnimalKindID) string {
	if a, err := s.cfg.Catalog.Animal(id); err == nil && a.Name != "" {
		return a.Name
	}
	return string(id)
}

// Snapshot is a read-only view of the session for presentation layers.
type Snapshot struct {
	State      State              `json:"state"`
	Outcome    *Outcome           `json:"outcome,omitempty"`
	Balance    int                `json:"balance"`
	Owned      map[TrapKindID]int `json:"owned"`
	Zones      []ZoneSnapshot     `json:"zones"`
	Affordable []TrapKindID       `json:"affordable"`
	Deployable []TrapKindID       `json:"deployable"`
	Clock      time.Duration      `json:"clock"`
	Paused     bool               `json:"paused"`
}

type ZoneSnapshot struct {
	ID      ZoneID               `json:"id"`
	Name    string               `json:"name"`
	Animals map[AnimalKindID]int `json:"animals"`
	Traps   map[TrapKindID]int   `json:"traps"`
}

func (s *Session) Snapshot() Snapshot {
	out := Snapshot{
		State:      s.state,
		Balance:    s.economy.Balance(),
		Owned:      s.inventory.Snapshot(),
		Affordable: s.Affordable(),
		Deployable: s.Deployable(),
		Clock:      s.clock.Now(),
		Paused:     s.clock.Paused(),
	}
	if s.state == StateOver {
		o := s.outcome
		out.Outcome = &o
	}
	for _, z := range s.zones {
		zs := ZoneSnapshot{
			ID:      z.ID(),
			Name:    z.Name(),
			Animals: make(map[AnimalKindID]int, len(s.cfg.Catalog.Animals)),
			Traps:   make(map[TrapKindID]int, len(s.cfg.Catalog.Traps)),
		}
		for _, a := range s.cfg.Catalog.Animals {
			zs.Animals[a.ID] = z.AnimalCount(a.ID)
		}
		for _, t := range s.cfg.Catalog.Traps {
			zs.Traps[t.ID] = z.TrapCount(t.ID)
		}
		out.Zones = append(out.Zones, zs)
	}
	return out
}
