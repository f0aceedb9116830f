package hunting

// Inventory counts owned, not yet deployed traps per kind.
type Inventory struct {
	owned map[TrapKindID]int
	emit  emitFunc
}

func NewInventory(emit func(Event)) *Inventory {
	return &Inventory{owned: map[TrapKindID]int{}, emit: emit}
}

func (inv *Inventory) Count(kind TrapKindID) int {
	return inv.owned[kind]
}

// Snapshot returns a copy of the owned counts.
func (inv *Inventory) Snapshot() map[TrapKindID]int {
	out := make(map[TrapKindID]int, len(inv.owned))
	for k, v := range inv.owned {
		out[k] = v
	}
	return out
}

// Purchase charges the economy and adds one trap. Nothing changes when the
// balance is below the cost.
func (inv *Inventory) Purchase(economy *Economy, trap TrapKind) error {
	if !economy.CanAfford(trap.Cost) {
		return ErrInsufficientFunds
	}
	economy.ApplyDelta(-trap.Cost)
	inv.add(trap.ID, 1)
	return nil
}

func (inv *Inventory) Deploy(kind TrapKindID, zone ZoneID) (TrapInstance, error) {
	if inv.owned[kind] <= 0 {
		return TrapInstance{}, ErrNoneOwned
	}
	inv.add(kind, -1)
	return TrapInstance{Kind: kind, Zone: zone}, nil
}

// Restock returns one trap to the inventory. Hunts never call this: traps
// are consumed on a catch.
func (inv *Inventory) Restock(kind TrapKindID) {
	inv.add(kind, 1)
}

func (inv *Inventory) add(kind TrapKindID, delta int) {
	inv.owned[kind] += delta
	inv.emit.emit(Event{Type: EventTrapCountChanged, Trap: kind, Value: inv.owned[kind]})
}
