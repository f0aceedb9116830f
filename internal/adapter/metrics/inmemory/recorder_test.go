package inmemory

import (
	"errors"
	"testing"

	"trapzone/internal/domain/hunting"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordCommand("purchase", nil)
	r.RecordCommand("purchase", hunting.ErrInsufficientFunds)
	r.RecordCommand("advance", nil)
	r.RecordCommand("deploy", errors.New("boom"))
	r.RecordEvents([]hunting.Event{
		{Type: hunting.EventHunted, Value: 10},
		{Type: hunting.EventHunted, Value: 40},
		{Type: hunting.EventBalanceChanged, Value: 150},
		{Type: hunting.EventSessionOver, Reason: hunting.ReasonGoalReached},
	})

	s := r.Snapshot()
	if s.CommandTotal != 4 {
		t.Fatalf("expected total 4, got %d", s.CommandTotal)
	}
	if s.CommandSuccess != 2 {
		t.Fatalf("expected success 2, got %d", s.CommandSuccess)
	}
	if s.CommandRejected != 2 {
		t.Fatalf("expected rejected 2, got %d", s.CommandRejected)
	}
	if s.ByCommand["purchase"] != 2 {
		t.Fatalf("expected purchase count 2, got %d", s.ByCommand["purchase"])
	}
	if s.Catches != 2 || s.HuntIncome != 50 {
		t.Fatalf("expected 2 catches worth 50, got %d worth %d", s.Catches, s.HuntIncome)
	}
	if s.ByEventType[string(hunting.EventHunted)] != 2 {
		t.Fatalf("expected hunted event count 2")
	}
	if s.SessionsOver[hunting.ReasonGoalReached] != 1 {
		t.Fatalf("expected one goal-reached session")
	}
}
