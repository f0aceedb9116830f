package inmemory

import (
	"sync"

	"trapzone/internal/domain/hunting"
)

type Snapshot struct {
	CommandTotal    uint64            `json:"command_total"`
	CommandSuccess  uint64            `json:"command_success"`
	CommandRejected uint64            `json:"command_rejected"`
	ByCommand       map[string]uint64 `json:"by_command"`
	ByEventType     map[string]uint64 `json:"by_event_type"`
	Catches         uint64            `json:"catches"`
	HuntIncome      int64             `json:"hunt_income"`
	SessionsOver    map[string]uint64 `json:"sessions_over"`
}

type Recorder struct {
	mu        sync.Mutex
	success   uint64
	rejected  uint64
	byCommand map[string]uint64
	byEvent   map[string]uint64
	catches   uint64
	income    int64
	over      map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byCommand: map[string]uint64{},
		byEvent:   map[string]uint64{},
		over:      map[string]uint64{},
	}
}

func (r *Recorder) RecordCommand(command string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCommand[command]++
	if err != nil {
		r.rejected++
		return
	}
	r.success++
}

func (r *Recorder) RecordEvents(events []hunting.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, evt := range events {
		r.byEvent[string(evt.Type)]++
		switch evt.Type {
		case hunting.EventHunted:
			r.catches++
			r.income += int64(evt.Value)
		case hunting.EventSessionOver:
			r.over[evt.Reason]++
		}
	}
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		CommandSuccess:  r.success,
		CommandRejected: r.rejected,
		CommandTotal:    r.success + r.rejected,
		ByCommand:       make(map[string]uint64, len(r.byCommand)),
		ByEventType:     make(map[string]uint64, len(r.byEvent)),
		Catches:         r.catches,
		HuntIncome:      r.income,
		SessionsOver:    make(map[string]uint64, len(r.over)),
	}
	for k, v := range r.byCommand {
		out.ByCommand[k] = v
	}
	for k, v := range r.byEvent {
		out.ByEventType[k] = v
	}
	for k, v := range r.over {
		out.SessionsOver[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
