package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/suicart/escrow-backend/internal/models"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrUnknownField = errors.New("unknown field")
)

type Transactions interface {
	Create(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	GetByID(ctx context.Context, id string) (models.Transaction, error)
	// ListByAddress returns rows where address is either party, newest first.
	ListByAddress(ctx context.Context, address string) ([]models.Transaction, error)
	Update(ctx context.Context, id string, patch models.Patch) (models.Transaction, error)
	// Complete sets status and completed_at=now in a single statement.
	Complete(ctx context.Context, id string, status models.TransactionStatus) (models.Transaction, error)
}

type Profiles interface {
	Get(ctx context.Context, address string) (models.UserProfile, error)
	Create(ctx context.Context, address string) (models.UserProfile, error)
	// GetOrCreate is one conditional insert; concurrent callers get the same row.
	GetOrCreate(ctx context.Context, address string) (models.UserProfile, error)
	Update(ctx context.Context, address string, patch models.Patch) (models.UserProfile, error)
	IncrementTransactionCount(ctx context.Context, address string) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

// Writable columns per table. Patch keys outside these sets yield ErrUnknownField.
var (
	TransactionColumns = columnSet(models.TransactionPatchFields...)
	ProfileColumns     = columnSet(models.ColUsername, models.ColAvatarURL, models.ColTransactionCount)
)

func columnSet(cols ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		m[c] = struct{}{}
	}
	return m
}

// CheckColumns returns ErrUnknownField if patch names a column outside allowed.
func CheckColumns(patch models.Patch, allowed map[string]struct{}) error {
	for _, k := range patch.Keys() {
		if _, ok := allowed[k]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, k)
		}
	}
	return nil
}
