package replay

import (
	"context"
	"errors"
	"testing"
	"time"

	"trapzone/internal/app/ports"
	"trapzone/internal/domain/hunting"
)

func TestUseCase_ReconstructsLatestStateFromEvents(t *testing.T) {
	repo := fakeRepo{entries: []ports.JournalEntry{
		{Seq: 1, Event: hunting.Event{Type: hunting.EventBalanceChanged, Value: 100}},
		{Seq: 2, Event: hunting.Event{Type: hunting.EventAnimalCountChanged, Zone: "meadow", Animal: "little", Value: 5}},
		{Seq: 3, Event: hunting.Event{Type: hunting.EventBalanceChanged, Value: 70}},
		{Seq: 4, Event: hunting.Event{Type: hunting.EventTrapCountChanged, Trap: "snare", Value: 1}},
		{Seq: 5, Event: hunting.Event{Type: hunting.EventTrapCountChanged, Trap: "snare", Value: 0}},
		{Seq: 6, Event: hunting.Event{Type: hunting.EventZoneTrapCountChanged, Zone: "meadow", Trap: "snare", Value: 1}},
		{Seq: 7, ClockAt: 5 * time.Second, Event: hunting.Event{Type: hunting.EventHunted, Zone: "meadow", Animal: "little", Trap: "snare", Value: 10}},
		{Seq: 8, ClockAt: 5 * time.Second, Event: hunting.Event{Type: hunting.EventAnimalCountChanged, Zone: "meadow", Animal: "little", Value: 4}},
	}}

	uc := UseCase{Events: repo}
	out, err := uc.Execute(context.Background(), Request{SessionID: "s-1", Limit: 10})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.LatestState.Balance == nil || *out.LatestState.Balance != 70 {
		t.Fatalf("expected latest balance 70, got %v", out.LatestState.Balance)
	}
	if out.LatestState.Owned["snare"] != 0 {
		t.Fatalf("expected owned snare 0, got %d", out.LatestState.Owned["snare"])
	}
	if out.LatestState.Animals["meadow"]["little"] != 4 {
		t.Fatalf("expected 4 hares, got %d", out.LatestState.Animals["meadow"]["little"])
	}
	if out.LatestState.Traps["meadow"]["snare"] != 1 || out.LatestState.Caught != 1 {
		t.Fatalf("unexpected trap state: %+v", out.LatestState)
	}
	if out.LatestState.Clock != 5*time.Second {
		t.Fatalf("expected clock 5s, got %s", out.LatestState.Clock)
	}
	if len(out.Events) != 8 {
		t.Fatalf("expected 8 events, got %d", len(out.Events))
	}
}

func TestUseCase_FiltersByTypeAfterReconstruction(t *testing.T) {
	repo := fakeRepo{entries: []ports.JournalEntry{
		{Seq: 1, Event: hunting.Event{Type: hunting.EventBalanceChanged, Value: -3}},
		{Seq: 2, Event: hunting.Event{Type: hunting.EventSessionOver, Reason: hunting.ReasonBankrupt, Value: -3}},
	}}
	uc := UseCase{Events: repo}
	out, err := uc.Execute(context.Background(), Request{SessionID: "s-1", Types: []string{"session_over"}})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Events) != 1 || out.Events[0].Seq != 2 {
		t.Fatalf("expected only the session_over entry, got %+v", out.Events)
	}
	if !out.LatestState.Over || out.LatestState.Reason != hunting.ReasonBankrupt {
		t.Fatalf("expected bankrupt outcome, got %+v", out.LatestState)
	}
	if out.LatestState.Balance == nil || *out.LatestState.Balance != -3 {
		t.Fatalf("expected balance from unfiltered entries, got %v", out.LatestState.Balance)
	}
}

func TestUseCase_LimitOnlyTrimsListedEvents(t *testing.T) {
	repo := fakeRepo{entries: []ports.JournalEntry{
		{Seq: 1, Event: hunting.Event{Type: hunting.EventBalanceChanged, Value: 100}},
		{Seq: 2, Event: hunting.Event{Type: hunting.EventHunted, Zone: "meadow", Animal: "little", Trap: "snare", Value: 10}},
		{Seq: 3, Event: hunting.Event{Type: hunting.EventBalanceChanged, Value: 110}},
		{Seq: 4, Event: hunting.Event{Type: hunting.EventHunted, Zone: "meadow", Animal: "bird", Trap: "net", Value: 15}},
		{Seq: 5, Event: hunting.Event{Type: hunting.EventBalanceChanged, Value: 125}},
		{Seq: 6, Event: hunting.Event{Type: hunting.EventAnimalCountChanged, Zone: "meadow", Animal: "little", Value: 4}},
	}}
	uc := UseCase{Events: repo}

	out, err := uc.Execute(context.Background(), Request{SessionID: "s-1", Limit: 2})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Events) != 2 || out.Events[0].Seq != 5 || out.Events[1].Seq != 6 {
		t.Fatalf("expected the last two entries, got %+v", out.Events)
	}
	if out.LatestState.Caught != 2 {
		t.Fatalf("expected catches counted over the whole journal, got %d", out.LatestState.Caught)
	}

	out, err = uc.Execute(context.Background(), Request{SessionID: "s-1", Limit: 1, Types: []string{"hunted"}})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Events) != 1 || out.Events[0].Seq != 4 {
		t.Fatalf("expected the latest hunted entry, got %+v", out.Events)
	}
	if out.LatestState.Balance == nil || *out.LatestState.Balance != 125 {
		t.Fatalf("expected balance 125, got %v", out.LatestState.Balance)
	}
}

func TestUseCase_RejectsInvalidRequest(t *testing.T) {
	uc := UseCase{Events: fakeRepo{}}
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), Request{SessionID: "s-1", Limit: -1}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for negative limit, got %v", err)
	}
}

func TestUseCase_PropagatesRepoError(t *testing.T) {
	wantErr := errors.New("journal down")
	uc := UseCase{Events: fakeRepo{err: wantErr}}
	if _, err := uc.Execute(context.Background(), Request{SessionID: "s-1"}); !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}

type fakeRepo struct {
	entries []ports.JournalEntry
	err     error
}

func (r fakeRepo) Append(_ context.Context, _ string, _ []ports.JournalEntry) error {
	return nil
}

func (r fakeRepo) ListBySessionID(_ context.Context, _ string, _ int) ([]ports.JournalEntry, error) {
	return r.entries, r.err
}
