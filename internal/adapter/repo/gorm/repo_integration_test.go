package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"trapzone/db/migrations"
	"trapzone/internal/app/ports"
	"trapzone/internal/domain/hunting"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TRAPZONE_DB_DSN")
	if dsn == "" {
		t.Skip("TRAPZONE_DB_DSN is required for integration test")
	}
	return dsn
}

func TestJournal_RoundTripInTx(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	if _, err := ApplyMigrations(ctx, db, migrations.FS); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sessionID := "it-journal-roundtrip"
	_ = db.Exec("DELETE FROM game_sessions WHERE session_id = ?", sessionID).Error

	sessions := NewSessionRepo(db)
	events := NewEventRepo(db)
	tx := NewTxManager(db)

	started := time.Unix(1700000000, 0).UTC()
	err = tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := sessions.Create(txCtx, ports.SessionRecord{SessionID: sessionID, Seed: 5, StartedAt: started}); err != nil {
			return err
		}
		return events.Append(txCtx, sessionID, []ports.JournalEntry{
			{Seq: 1, Event: hunting.Event{Type: hunting.EventBalanceChanged, Value: 100}, RecordedAt: started},
			{Seq: 2, ClockAt: 5 * time.Second, Event: hunting.Event{Type: hunting.EventHunted, Zone: "meadow", Animal: "little", Trap: "snare", Value: 10}, RecordedAt: started},
		})
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	got, err := events.ListBySessionID(ctx, sessionID, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Seq != 2 || got[0].Event.Trap != "snare" || got[0].ClockAt != 5*time.Second {
		t.Fatalf("expected latest hunted entry, got %+v", got)
	}

	if err := events.Append(ctx, sessionID, []ports.JournalEntry{{Seq: 2, RecordedAt: started}}); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected duplicate seq conflict, got %v", err)
	}

	if err := sessions.Close(ctx, sessionID, hunting.ReasonGoalReached, 1000, started.Add(time.Minute)); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := sessions.Close(ctx, sessionID, hunting.ReasonGoalReached, 1000, started.Add(time.Minute)); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected second close conflict, got %v", err)
	}
	rec, err := sessions.Get(ctx, sessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.EndedAt == nil || rec.FinalBalance != 1000 || rec.Reason != hunting.ReasonGoalReached {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	if _, err := ApplyMigrations(ctx, db, migrations.FS); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sessionID := "it-journal-rollback"
	_ = db.Exec("DELETE FROM game_sessions WHERE session_id = ?", sessionID).Error

	sessions := NewSessionRepo(db)
	wantErr := errors.New("abort")
	err = NewTxManager(db).RunInTx(ctx, func(txCtx context.Context) error {
		if err := sessions.Create(txCtx, ports.SessionRecord{SessionID: sessionID, StartedAt: time.Now()}); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected abort error, got %v", err)
	}
	if _, err := sessions.Get(ctx, sessionID); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected rolled back record, got %v", err)
	}
}
