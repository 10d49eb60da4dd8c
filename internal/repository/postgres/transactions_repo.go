package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suicart/escrow-backend/internal/models"
	"github.com/suicart/escrow-backend/internal/repository"
)

type transactionsRepo struct{ pool *pgxpool.Pool }

const txColumns = `id, user_address, counterparty_address, amount, status, asset_id, transaction_type, created_at, completed_at`

func scanTx(row pgx.Row) (models.Transaction, error) {
	var tx models.Transaction
	err := row.Scan(&tx.ID, &tx.UserAddress, &tx.CounterpartyAddress, &tx.Amount, &tx.Status,
		&tx.AssetID, &tx.TransactionType, &tx.CreatedAt, &tx.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Transaction{}, repository.ErrNotFound
	}
	return tx, err
}

func (r *transactionsRepo) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx, `
INSERT INTO transactions (
  id, user_address, counterparty_address, amount, status, asset_id, transaction_type
) VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING `+txColumns,
		tx.ID, tx.UserAddress, tx.CounterpartyAddress, tx.Amount, tx.Status, tx.AssetID, tx.TransactionType,
	)
	return scanTx(row)
}

func (r *transactionsRepo) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	return scanTx(r.pool.QueryRow(ctx, `SELECT `+txColumns+` FROM transactions WHERE id=$1`, id))
}

func (r *transactionsRepo) ListByAddress(ctx context.Context, address string) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+txColumns+`
		   FROM transactions
		  WHERE user_address=$1 OR counterparty_address=$1
		  ORDER BY created_at DESC`,
		address,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Transaction{}
	for rows.Next() {
		tx, err := scanTx(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (r *transactionsRepo) Update(ctx context.Context, id string, patch models.Patch) (models.Transaction, error) {
	if err := repository.CheckColumns(patch, repository.TransactionColumns); err != nil {
		return models.Transaction{}, err
	}
	if len(patch) == 0 {
		return r.GetByID(ctx, id)
	}
	q, args := buildUpdate("transactions", "id", id, patch, txColumns)
	return scanTx(r.pool.QueryRow(ctx, q, args...))
}

func (r *transactionsRepo) Complete(ctx context.Context, id string, status models.TransactionStatus) (models.Transaction, error) {
	return scanTx(r.pool.QueryRow(ctx,
		`UPDATE transactions
		    SET status=$2, completed_at=now()
		  WHERE id=$1
		  RETURNING `+txColumns,
		id, status,
	))
}

// buildUpdate renders UPDATE table SET col=$2,... WHERE key=$1 RETURNING returning.
// Column names come from the patch and must already be checked against an allow-list.
func buildUpdate(table, key string, keyVal any, patch models.Patch, returning string) (string, []any) {
	cols := patch.Keys()
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	args = append(args, keyVal)
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s=$%d", c, i+2)
		args = append(args, patch[c])
	}
	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s=$1 RETURNING %s", table, strings.Join(sets, ", "), key, returning)
	return q, args
}
