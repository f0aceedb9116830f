package sqliterepo

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"trapzone/internal/app/ports"
	"trapzone/internal/domain/hunting"
)

type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, sessionID string, entries []ports.JournalEntry) error {
	q := conn(ctx, r.db)
	query := `
		INSERT INTO session_events (session_id, seq, type, zone, animal, trap, value, reason, message, clock_ms, recorded_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, e := range entries {
		_, err := q.ExecContext(ctx, query,
			sessionID, e.Seq, string(e.Event.Type), string(e.Event.Zone), string(e.Event.Animal),
			string(e.Event.Trap), e.Event.Value, e.Event.Reason, e.Event.Message,
			e.ClockAt.Milliseconds(), e.RecordedAt.UnixMilli(),
		)
		if isConstraintViolation(err) {
			return ports.ErrConflict
		}
		if err != nil {
			return fmt.Errorf("append event %d: %w", e.Seq, err)
		}
	}
	return nil
}

func (r EventRepo) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]ports.JournalEntry, error) {
	query := `SELECT session_id, seq, type, zone, animal, trap, value, reason, message, clock_ms, recorded_at_ms
		FROM session_events WHERE session_id = ? ORDER BY seq DESC`
	args := []any{sessionID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ports.JournalEntry
	for rows.Next() {
		var (
			e                      ports.JournalEntry
			typ, zone, animal, trp string
			clockMs, recordedMs    int64
		)
		err := rows.Scan(&e.SessionID, &e.Seq, &typ, &zone, &animal, &trp,
			&e.Event.Value, &e.Event.Reason, &e.Event.Message, &clockMs, &recordedMs)
		if err != nil {
			return nil, err
		}
		e.Event.Type = hunting.EventType(typ)
		e.Event.Zone = hunting.ZoneID(zone)
		e.Event.Animal = hunting.AnimalKindID(animal)
		e.Event.Trap = hunting.TrapKindID(trp)
		e.ClockAt = time.Duration(clockMs) * time.Millisecond
		e.RecordedAt = time.UnixMilli(recordedMs)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.Reverse(out)
	return out, nil
}
