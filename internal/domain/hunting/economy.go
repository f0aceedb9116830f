package hunting

// Economy tracks the money balance. Sign is unrestricted; thresholds are the
// session's concern.
type Economy struct {
	balance int
	emit    emitFunc
}

func NewEconomy(emit func(Event)) *Economy {
	return &Economy{emit: emit}
}

func (e *Economy) Balance() int {
	return e.balance
}

// ApplyDelta adds amount without validation and always notifies.
func (e *Economy) ApplyDelta(amount int) {
	e.balance += amount
	e.emit.emit(Event{Type: EventBalanceChanged, Value: e.balance})
}

func (e *Economy) CanAfford(cost int) bool {
	return e.balance >= cost
}
