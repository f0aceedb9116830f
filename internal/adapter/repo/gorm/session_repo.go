package gormrepo

import (
	"context"
	"errors"
	"time"

	"trapzone/internal/adapter/repo/gorm/model"
	"trapzone/internal/app/ports"

	"gorm.io/gorm"
)

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepo {
	return SessionRepo{db: db}
}

func (r SessionRepo) Create(ctx context.Context, record ports.SessionRecord) error {
	row := model.GameSession{
		SessionID:    record.SessionID,
		Seed:         record.Seed,
		StartedAt:    record.StartedAt,
		EndedAt:      record.EndedAt,
		Reason:       record.Reason,
		FinalBalance: int64(record.FinalBalance),
	}
	err := getDBFromCtx(ctx, r.db).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrConflict
	}
	return err
}

func (r SessionRepo) Close(ctx context.Context, sessionID, reason string, finalBalance int, endedAt time.Time) error {
	db := getDBFromCtx(ctx, r.db)
	res := db.Model(&model.GameSession{}).
		Where("session_id = ? AND ended_at IS NULL", sessionID).
		Updates(map[string]any{
			"ended_at":      endedAt,
			"reason":        reason,
			"final_balance": finalBalance,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}
	if _, err := r.Get(ctx, sessionID); err != nil {
		return err
	}
	return ports.ErrConflict
}

func (r SessionRepo) Get(ctx context.Context, sessionID string) (ports.SessionRecord, error) {
	var row model.GameSession
	err := getDBFromCtx(ctx, r.db).Where("session_id = ?", sessionID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.SessionRecord{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.SessionRecord{}, err
	}
	return ports.SessionRecord{
		SessionID:    row.SessionID,
		Seed:         row.Seed,
		StartedAt:    row.StartedAt,
		EndedAt:      row.EndedAt,
		Reason:       row.Reason,
		FinalBalance: int(row.FinalBalance),
	}, nil
}
