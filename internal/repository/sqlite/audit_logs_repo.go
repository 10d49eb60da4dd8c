package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/suicart/escrow-backend/internal/models"
)

type auditLogsRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func (r *auditLogsRepo) Create(ctx context.Context, l models.AuditLog) error {
	row := auditLogRow{
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Action:     l.Action,
		CreatedAt:  r.now(),
	}
	if l.Details != nil {
		b, err := json.Marshal(l.Details)
		if err != nil {
			return err
		}
		row.Details = string(b)
	}
	return r.db.WithContext(ctx).Create(&row).Error
}
