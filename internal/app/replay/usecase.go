package replay

import (
	"context"
	"errors"
	"strings"

	"trapzone/internal/app/ports"
	"trapzone/internal/domain/hunting"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	id := strings.TrimSpace(req.SessionID)
	if id == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	entries, err := u.Events.ListBySessionID(ctx, id, 0)
	if err != nil {
		return Response{}, err
	}
	latest := reconstruct(entries)
	entries = tail(filterByType(entries, req.Types), req.Limit)
	if entries == nil {
		entries = []ports.JournalEntry{}
	}
	return Response{Events: entries, LatestState: latest}, nil
}

// tail keeps the last limit entries; limit 0 keeps everything.
func tail(entries []ports.JournalEntry, limit int) []ports.JournalEntry {
	if limit <= 0 || len(entries) <= limit {
		return entries
	}
	return entries[len(entries)-limit:]
}

func filterByType(entries []ports.JournalEntry, types []string) []ports.JournalEntry {
	want := map[hunting.EventType]bool{}
	for _, t := range types {
		if t = strings.TrimSpace(t); t != "" {
			want[hunting.EventType(t)] = true
		}
	}
	if len(want) == 0 {
		return entries
	}
	out := make([]ports.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if want[e.Event.Type] {
			out = append(out, e)
		}
	}
	return out
}

func reconstruct(entries []ports.JournalEntry) LatestState {
	state := LatestState{
		Owned:   map[hunting.TrapKindID]int{},
		Animals: map[hunting.ZoneID]map[hunting.AnimalKindID]int{},
		Traps:   map[hunting.ZoneID]map[hunting.TrapKindID]int{},
	}
	for _, entry := range entries {
		evt := entry.Event
		state.Clock = entry.ClockAt
		switch evt.Type {
		case hunting.EventBalanceChanged:
			v := evt.Value
			state.Balance = &v
		case hunting.EventTrapCountChanged:
			state.Owned[evt.Trap] = evt.Value
		case hunting.EventAnimalCountChanged:
			if state.Animals[evt.Zone] == nil {
				state.Animals[evt.Zone] = map[hunting.AnimalKindID]int{}
			}
			state.Animals[evt.Zone][evt.Animal] = evt.Value
		case hunting.EventZoneTrapCountChanged:
			if state.Traps[evt.Zone] == nil {
				state.Traps[evt.Zone] = map[hunting.TrapKindID]int{}
			}
			state.Traps[evt.Zone][evt.Trap] = evt.Value
		case hunting.EventHunted:
			state.Caught++
		case hunting.EventSessionOver:
			state.Over = true
			state.Reason = evt.Reason
		}
	}
	return state
}
