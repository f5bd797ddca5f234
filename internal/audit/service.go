package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"apgbuilders/internal/logger"
	"apgbuilders/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LogOptions struct {
	EntityType  string
	EntityID    uuid.UUID
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// Journal records every write made through the API.
type Journal struct {
	db *gorm.DB
}

func NewJournal(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

func (j *Journal) WriteLog(ctx context.Context, opts LogOptions) error {
	entry := models.AuditLog{
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  toJSON(opts.Before),
		AfterData:   toJSON(opts.After),
	}

	if err := j.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// Record is WriteLog for callers that must not fail because of the
// journal: errors are logged and dropped.
func (j *Journal) Record(ctx context.Context, opts LogOptions) {
	if err := j.WriteLog(ctx, opts); err != nil {
		logger.Log.Warn().Err(err).
			Str("entity_type", opts.EntityType).
			Str("entity_id", opts.EntityID.String()).
			Msg("audit log not written")
	}
}

// List returns the newest entries first. An empty entityType matches all.
func (j *Journal) List(ctx context.Context, entityType string, limit int) ([]models.AuditLog, error) {
	q := j.db.WithContext(ctx).Model(&models.AuditLog{})
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	logs := make([]models.AuditLog, 0)
	if err := q.Order("created_at desc, id desc").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}

// jsonb-style "null" rather than an empty string when there is no data
func toJSON(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
