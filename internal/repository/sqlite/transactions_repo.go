package sqlite

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/suicart/escrow-backend/internal/models"
	"github.com/suicart/escrow-backend/internal/repository"
)

type transactionsRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}

func (r *transactionsRepo) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	row := transactionRow{
		ID:                  tx.ID,
		UserAddress:         tx.UserAddress,
		CounterpartyAddress: tx.CounterpartyAddress,
		Amount:              tx.Amount,
		Status:              string(tx.Status),
		AssetID:             tx.AssetID,
		TransactionType:     string(tx.TransactionType),
		CreatedAt:           r.now(),
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Transaction{}, err
	}
	return row.model(), nil
}

func (r *transactionsRepo) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	var row transactionRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return models.Transaction{}, notFound(err)
	}
	return row.model(), nil
}

func (r *transactionsRepo) ListByAddress(ctx context.Context, address string) ([]models.Transaction, error) {
	var rows []transactionRow
	err := r.db.WithContext(ctx).
		Where("user_address = ? OR counterparty_address = ?", address, address).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}
	return out, nil
}

func (r *transactionsRepo) Update(ctx context.Context, id string, patch models.Patch) (models.Transaction, error) {
	if err := repository.CheckColumns(patch, repository.TransactionColumns); err != nil {
		return models.Transaction{}, err
	}
	if len(patch) > 0 {
		res := r.db.WithContext(ctx).Model(&transactionRow{}).Where("id = ?", id).Updates(map[string]any(patch))
		if res.Error != nil {
			return models.Transaction{}, res.Error
		}
		if res.RowsAffected == 0 {
			return models.Transaction{}, repository.ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *transactionsRepo) Complete(ctx context.Context, id string, status models.TransactionStatus) (models.Transaction, error) {
	res := r.db.WithContext(ctx).Model(&transactionRow{}).Where("id = ?", id).Updates(map[string]any{
		models.ColStatus:      string(status),
		models.ColCompletedAt: r.now(),
	})
	if res.Error != nil {
		return models.Transaction{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.Transaction{}, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}
