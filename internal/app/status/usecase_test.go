package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"trapzone/internal/app/ports"
	"trapzone/internal/domain/hunting"
)

func TestUseCase_ReportsLiveSnapshotAndMessage(t *testing.T) {
	live := fakeLive{snapshots: map[string]hunting.Snapshot{
		"s-1": {
			State:   hunting.StateOver,
			Balance: -5,
			Outcome: &hunting.Outcome{Reason: hunting.ReasonBankrupt, Message: "broke"},
		},
	}}
	uc := UseCase{Live: live}
	resp, err := uc.Execute(context.Background(), Request{SessionID: "s-1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !resp.Live || resp.Snapshot == nil || resp.Snapshot.Balance != -5 {
		t.Fatalf("expected live snapshot, got %+v", resp)
	}
	if resp.Message != "broke" {
		t.Fatalf("expected outcome message, got %q", resp.Message)
	}
}

func TestUseCase_FallsBackToRecord(t *testing.T) {
	ended := time.Unix(20, 0)
	repo := fakeSessions{rec: ports.SessionRecord{SessionID: "s-1", Seed: 9, EndedAt: &ended, Reason: hunting.ReasonGoalReached}}
	uc := UseCase{Live: fakeLive{}, Sessions: repo}
	resp, err := uc.Execute(context.Background(), Request{SessionID: "s-1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Live || resp.Record == nil || resp.Record.Reason != hunting.ReasonGoalReached {
		t.Fatalf("expected journal record only, got %+v", resp)
	}
}

func TestUseCase_UnknownSession(t *testing.T) {
	uc := UseCase{Live: fakeLive{}, Sessions: fakeSessions{}}
	if _, err := uc.Execute(context.Background(), Request{SessionID: "nope"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUseCase_RejectsEmptySessionID(t *testing.T) {
	uc := UseCase{}
	if _, err := uc.Execute(context.Background(), Request{SessionID: "  "}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_PropagatesRepoError(t *testing.T) {
	wantErr := errors.New("journal down")
	uc := UseCase{Live: fakeLive{}, Sessions: fakeSessions{err: wantErr}}
	if _, err := uc.Execute(context.Background(), Request{SessionID: "s-1"}); !errors.Is(err, wantErr) {
		t.Fatalf("expected repo error %v, got %v", wantErr, err)
	}
}

type fakeLive struct {
	snapshots map[string]hunting.Snapshot
}

func (f fakeLive) Snapshot(id string) (hunting.Snapshot, error) {
	snap, ok := f.snapshots[id]
	if !ok {
		return hunting.Snapshot{}, ports.ErrNotFound
	}
	return snap, nil
}

type fakeSessions struct {
	rec ports.SessionRecord
	err error
}

func (r fakeSessions) Create(_ context.Context, _ ports.SessionRecord) error { return nil }

func (r fakeSessions) Close(_ context.Context, _, _ string, _ int, _ time.Time) error { return nil }

func (r fakeSessions) Get(_ context.Context, id string) (ports.SessionRecord, error) {
	if r.err != nil {
		return ports.SessionRecord{}, r.err
	}
	if r.rec.SessionID != id {
		return ports.SessionRecord{}, ports.ErrNotFound
	}
	return r.rec, nil
}

var _ ports.SessionRepository = fakeSessions{}
var _ LiveSessions = fakeLive{}
