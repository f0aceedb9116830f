package gormrepo

import (
	"context"
	"errors"
	"slices"
	"time"

	"trapzone/internal/adapter/repo/gorm/model"
	"trapzone/internal/app/ports"
	"trapzone/internal/domain/hunting"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, sessionID string, entries []ports.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]model.SessionEvent, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, model.SessionEvent{
			SessionID:  sessionID,
			Seq:        e.Seq,
			Type:       string(e.Event.Type),
			Zone:       string(e.Event.Zone),
			Animal:     string(e.Event.Animal),
			Trap:       string(e.Event.Trap),
			Value:      int64(e.Event.Value),
			Reason:     e.Event.Reason,
			Message:    e.Event.Message,
			ClockMs:    e.ClockAt.Milliseconds(),
			RecordedAt: e.RecordedAt,
		})
	}
	err := getDBFromCtx(ctx, r.db).Create(&rows).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrConflict
	}
	return err
}

func (r EventRepo) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]ports.JournalEntry, error) {
	rows := []model.SessionEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.SessionEvent{SessionID: sessionID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "seq"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	slices.Reverse(rows)

	out := make([]ports.JournalEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, toEntry(row))
	}
	return out, nil
}

func toEntry(row model.SessionEvent) ports.JournalEntry {
	return ports.JournalEntry{
		SessionID: row.SessionID,
		Seq:       row.Seq,
		Event: hunting.Event{
			Type:    hunting.EventType(row.Type),
			Zone:    hunting.ZoneID(row.Zone),
			Animal:  hunting.AnimalKindID(row.Animal),
			Trap:    hunting.TrapKindID(row.Trap),
			Value:   int(row.Value),
			Reason:  row.Reason,
			Message: row.Message,
		},
		ClockAt:    time.Duration(row.ClockMs) * time.Millisecond,
		RecordedAt: row.RecordedAt,
	}
}
