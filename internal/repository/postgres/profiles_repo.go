package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suicart/escrow-backend/internal/models"
	"github.com/suicart/escrow-backend/internal/repository"
)

type profilesRepo struct{ pool *pgxpool.Pool }

const profileColumns = `address, username, avatar_url, created_at, transaction_count`

func scanProfile(row pgx.Row) (models.UserProfile, error) {
	var p models.UserProfile
	err := row.Scan(&p.Address, &p.Username, &p.AvatarURL, &p.CreatedAt, &p.TransactionCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserProfile{}, repository.ErrNotFound
	}
	return p, err
}

func (r *profilesRepo) Get(ctx context.Context, address string) (models.UserProfile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE address=$1`, address))
}

func (r *profilesRepo) Create(ctx context.Context, address string) (models.UserProfile, error) {
	return scanProfile(r.pool.QueryRow(ctx,
		`INSERT INTO user_profiles(address, transaction_count, created_at)
		 VALUES($1, 0, now())
		 RETURNING `+profileColumns,
		address,
	))
}

func (r *profilesRepo) GetOrCreate(ctx context.Context, address string) (models.UserProfile, error) {
	// no-op update on conflict so RETURNING yields the existing row
	return scanProfile(r.pool.QueryRow(ctx,
		`INSERT INTO user_profiles(address, transaction_count, created_at)
		 VALUES($1, 0, now())
		 ON CONFLICT (address) DO UPDATE
		 SET address = EXCLUDED.address
		 RETURNING `+profileColumns,
		address,
	))
}

func (r *profilesRepo) Update(ctx context.Context, address string, patch models.Patch) (models.UserProfile, error) {
	if err := repository.CheckColumns(patch, repository.ProfileColumns); err != nil {
		return models.UserProfile{}, err
	}
	if len(patch) == 0 {
		return r.Get(ctx, address)
	}
	q, args := buildUpdate("user_profiles", "address", address, patch, profileColumns)
	return scanProfile(r.pool.QueryRow(ctx, q, args...))
}

func (r *profilesRepo) IncrementTransactionCount(ctx context.Context, address string) error {
	_, err := r.pool.Exec(ctx, `SELECT increment_transaction_count($1)`, address)
	return err
}
