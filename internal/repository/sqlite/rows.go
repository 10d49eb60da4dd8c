package sqlite

import (
	"time"

	"github.com/suicart/escrow-backend/internal/models"
)

type transactionRow struct {
	ID                  string     `gorm:"primaryKey"`
	UserAddress         string     `gorm:"not null;index"`
	CounterpartyAddress string     `gorm:"not null;index"`
	Amount              float64    `gorm:"not null"`
	Status              string     `gorm:"size:16;not null"`
	AssetID             string     `gorm:"not null"`
	TransactionType     string     `gorm:"size:16;not null"`
	CreatedAt           time.Time  `gorm:"not null;index"`
	CompletedAt         *time.Time `gorm:"column:completed_at"`
}

func (transactionRow) TableName() string { return "transactions" }

func (r transactionRow) model() models.Transaction {
	return models.Transaction{
		ID:                  r.ID,
		UserAddress:         r.UserAddress,
		CounterpartyAddress: r.CounterpartyAddress,
		Amount:              r.Amount,
		Status:              models.TransactionStatus(r.Status),
		AssetID:             r.AssetID,
		TransactionType:     models.TransactionType(r.TransactionType),
		CreatedAt:           r.CreatedAt,
		CompletedAt:         r.CompletedAt,
	}
}

type profileRow struct {
	Address          string    `gorm:"primaryKey"`
	Username         *string   `gorm:"column:username"`
	AvatarURL        *string   `gorm:"column:avatar_url"`
	CreatedAt        time.Time `gorm:"not null"`
	TransactionCount int64     `gorm:"not null;default:0"`
}

func (profileRow) TableName() string { return "user_profiles" }

func (r profileRow) model() models.UserProfile {
	return models.UserProfile{
		Address:          r.Address,
		Username:         r.Username,
		AvatarURL:        r.AvatarURL,
		CreatedAt:        r.CreatedAt,
		TransactionCount: r.TransactionCount,
	}
}

type auditLogRow struct {
	ID         uint      `gorm:"primaryKey"`
	EntityType string    `gorm:"not null;index:idx_audit_entity"`
	EntityID   *string   `gorm:"index:idx_audit_entity"`
	Action     string    `gorm:"not null"`
	Details    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (auditLogRow) TableName() string { return "audit_logs" }
