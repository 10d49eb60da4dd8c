package sqlite

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/suicart/escrow-backend/internal/models"
	"github.com/suicart/escrow-backend/internal/repository"
)

type profilesRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func (r *profilesRepo) Get(ctx context.Context, address string) (models.UserProfile, error) {
	var row profileRow
	if err := r.db.WithContext(ctx).First(&row, "address = ?", address).Error; err != nil {
		return models.UserProfile{}, notFound(err)
	}
	return row.model(), nil
}

func (r *profilesRepo) Create(ctx context.Context, address string) (models.UserProfile, error) {
	row := profileRow{Address: address, CreatedAt: r.now()}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.UserProfile{}, err
	}
	return row.model(), nil
}

func (r *profilesRepo) GetOrCreate(ctx context.Context, address string) (models.UserProfile, error) {
	row := profileRow{Address: address, CreatedAt: r.now()}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "address"}}, DoNothing: true}).
		Create(&row).Error
	if err != nil {
		return models.UserProfile{}, err
	}
	return r.Get(ctx, address)
}

func (r *profilesRepo) Update(ctx context.Context, address string, patch models.Patch) (models.UserProfile, error) {
	if err := repository.CheckColumns(patch, repository.ProfileColumns); err != nil {
		return models.UserProfile{}, err
	}
	if len(patch) > 0 {
		res := r.db.WithContext(ctx).Model(&profileRow{}).Where("address = ?", address).Updates(map[string]any(patch))
		if res.Error != nil {
			return models.UserProfile{}, res.Error
		}
		if res.RowsAffected == 0 {
			return models.UserProfile{}, repository.ErrNotFound
		}
	}
	return r.Get(ctx, address)
}

func (r *profilesRepo) IncrementTransactionCount(ctx context.Context, address string) error {
	row := profileRow{Address: address, CreatedAt: r.now(), TransactionCount: 1}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "address"}},
			DoUpdates: clause.Assignments(map[string]any{
				models.ColTransactionCount: gorm.Expr("user_profiles.transaction_count + 1"),
			}),
		}).
		Create(&row).Error
}
