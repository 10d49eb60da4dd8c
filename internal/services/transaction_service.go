package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/suicart/escrow-backend/internal/metrics"
	"github.com/suicart/escrow-backend/internal/models"
	repo "github.com/suicart/escrow-backend/internal/repository"
	"github.com/suicart/escrow-backend/internal/worker"
)

const counterTimeout = 5 * time.Second

type TransactionService struct {
	trx      repo.Transactions
	audit    repo.AuditLogs
	profiles *ProfileService
	wp       *worker.Pool
	log      *slog.Logger
}

func NewTransactionService(t repo.Transactions, a repo.AuditLogs, ps *ProfileService, wp *worker.Pool, log *slog.Logger) *TransactionService {
	return &TransactionService{trx: t, audit: a, profiles: ps, wp: wp, log: log}
}

// ----------------- Helpers -----------------

func (s *TransactionService) record(ctx context.Context, id, action string, details map[string]any) {
	err := s.audit.Create(ctx, models.AuditLog{
		EntityType: "transaction",
		EntityID:   &id,
		Action:     action,
		Details:    details,
	})
	if err != nil {
		s.log.Warn("audit log write failed", "id", id, "action", action, "err", err)
	}
}

func (s *TransactionService) storeErr(op string, err error, attrs ...any) {
	if errors.Is(err, repo.ErrNotFound) {
		return
	}
	metrics.StoreErrors.WithLabelValues(op).Inc()
	s.log.Error("transaction store "+op+" failed", append(attrs, "err", err)...)
}

// ----------------- Queries -----------------

// ListForUser returns every record where address is either party, newest first.
// A store failure is logged and yields an empty list.
func (s *TransactionService) ListForUser(ctx context.Context, address string) []models.Transaction {
	txs, err := s.trx.ListByAddress(ctx, address)
	if err != nil {
		s.storeErr("list", err, "address", address)
		return []models.Transaction{}
	}
	return txs
}

func (s *TransactionService) Get(ctx context.Context, id string) (models.Transaction, error) {
	tx, err := s.trx.GetByID(ctx, id)
	if err != nil {
		s.storeErr("get", err, "id", id)
	}
	return tx, err
}

// ----------------- Writes -----------------

// Create stores a new record and bumps the caller's profile counter in the background.
func (s *TransactionService) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	created, err := s.trx.Create(ctx, tx)
	if err != nil {
		s.storeErr("create", err, "user_address", tx.UserAddress)
		return models.Transaction{}, err
	}
	metrics.RecordsTotal.WithLabelValues("transaction", "create").Inc()
	s.record(ctx, created.ID, "created", map[string]any{
		"status":           created.Status,
		"transaction_type": created.TransactionType,
	})

	if s.wp != nil && s.profiles != nil {
		addr := created.UserAddress
		s.wp.Submit(func() {
			cctx, cancel := context.WithTimeout(context.Background(), counterTimeout)
			defer cancel()
			s.profiles.IncrementTransactionCount(cctx, addr)
		})
	}
	return created, nil
}

// Update applies patch as-is. A patch can leave status and completed_at out of
// step; that is logged, not rejected.
func (s *TransactionService) Update(ctx context.Context, id string, patch models.Patch) (models.Transaction, error) {
	tx, err := s.trx.Update(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, repo.ErrUnknownField) {
			s.storeErr("update", err, "id", id)
		}
		return models.Transaction{}, err
	}
	if tx.Status.Terminal() != (tx.CompletedAt != nil) {
		s.log.Warn("transaction status and completed_at disagree", "id", id, "status", tx.Status)
	}
	metrics.RecordsTotal.WithLabelValues("transaction", "update").Inc()
	s.record(ctx, id, "updated", map[string]any{"fields": patch.Keys()})
	return tx, nil
}

// Complete moves a record to Completed or Refunded and stamps completed_at.
func (s *TransactionService) Complete(ctx context.Context, id string, status models.TransactionStatus) (models.Transaction, error) {
	if !status.Terminal() {
		return models.Transaction{}, ErrInvalidStatus
	}
	tx, err := s.trx.Complete(ctx, id, status)
	if err != nil {
		s.storeErr("complete", err, "id", id)
		return models.Transaction{}, err
	}
	metrics.RecordsTotal.WithLabelValues("transaction", "complete").Inc()
	s.record(ctx, id, "completed", map[string]any{"status": status})
	return tx, nil
}
