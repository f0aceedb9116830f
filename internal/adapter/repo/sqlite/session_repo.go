package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"trapzone/internal/app/ports"
)

type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) SessionRepo {
	return SessionRepo{db: db}
}

func (r SessionRepo) Create(ctx context.Context, record ports.SessionRecord) error {
	var ended sql.NullInt64
	if record.EndedAt != nil {
		ended = sql.NullInt64{Int64: record.EndedAt.UnixMilli(), Valid: true}
	}
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO game_sessions (session_id, seed, started_at_ms, ended_at_ms, reason, final_balance)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.SessionID, record.Seed, record.StartedAt.UnixMilli(), ended, record.Reason, record.FinalBalance,
	)
	if isConstraintViolation(err) {
		return ports.ErrConflict
	}
	return err
}

func (r SessionRepo) Close(ctx context.Context, sessionID, reason string, finalBalance int, endedAt time.Time) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `
		UPDATE game_sessions SET ended_at_ms = ?, reason = ?, final_balance = ?
		WHERE session_id = ? AND ended_at_ms IS NULL`,
		endedAt.UnixMilli(), reason, finalBalance, sessionID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 1 {
		return nil
	}
	if _, err := r.Get(ctx, sessionID); err != nil {
		return err
	}
	return ports.ErrConflict
}

func (r SessionRepo) Get(ctx context.Context, sessionID string) (ports.SessionRecord, error) {
	var (
		rec       ports.SessionRecord
		startedMs int64
		endedMs   sql.NullInt64
	)
	err := conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT session_id, seed, started_at_ms, ended_at_ms, reason, final_balance
		FROM game_sessions WHERE session_id = ?`, sessionID,
	).Scan(&rec.SessionID, &rec.Seed, &startedMs, &endedMs, &rec.Reason, &rec.FinalBalance)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.SessionRecord{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.SessionRecord{}, err
	}
	rec.StartedAt = time.UnixMilli(startedMs)
	if endedMs.Valid {
		t := time.UnixMilli(endedMs.Int64)
		rec.EndedAt = &t
	}
	return rec, nil
}
