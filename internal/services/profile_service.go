package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/suicart/escrow-backend/internal/metrics"
	"github.com/suicart/escrow-backend/internal/models"
	repo "github.com/suicart/escrow-backend/internal/repository"
)

type ProfileService struct {
	r   repo.Profiles
	log *slog.Logger
}

func NewProfileService(r repo.Profiles, log *slog.Logger) *ProfileService {
	return &ProfileService{r: r, log: log}
}

// Get returns the profile for address, creating an empty one on first access.
func (s *ProfileService) Get(ctx context.Context, address string) (models.UserProfile, error) {
	p, err := s.r.GetOrCreate(ctx, address)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("profile_get").Inc()
		s.log.Error("get profile failed", "address", address, "err", err)
	}
	return p, err
}

func (s *ProfileService) Create(ctx context.Context, address string) (models.UserProfile, error) {
	p, err := s.r.Create(ctx, address)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("profile_create").Inc()
		s.log.Error("create profile failed", "address", address, "err", err)
		return models.UserProfile{}, err
	}
	metrics.RecordsTotal.WithLabelValues("profile", "create").Inc()
	return p, nil
}

// Update applies patch. A missing profile reports ErrNotFound even when the
// patch also names an unknown column.
func (s *ProfileService) Update(ctx context.Context, address string, patch models.Patch) (models.UserProfile, error) {
	p, err := s.r.Update(ctx, address, patch)
	if errors.Is(err, repo.ErrUnknownField) {
		if _, gerr := s.r.Get(ctx, address); errors.Is(gerr, repo.ErrNotFound) {
			err = gerr
		}
	}
	switch {
	case err == nil:
		metrics.RecordsTotal.WithLabelValues("profile", "update").Inc()
	case errors.Is(err, repo.ErrNotFound), errors.Is(err, repo.ErrUnknownField):
	default:
		metrics.StoreErrors.WithLabelValues("profile_update").Inc()
		s.log.Error("update profile failed", "address", address, "err", err)
	}
	return p, err
}

// IncrementTransactionCount bumps the stored counter. Failures are logged and dropped.
func (s *ProfileService) IncrementTransactionCount(ctx context.Context, address string) {
	if err := s.r.IncrementTransactionCount(ctx, address); err != nil {
		metrics.StoreErrors.WithLabelValues("profile_increment").Inc()
		s.log.Warn("increment transaction count failed", "address", address, "err", err)
		return
	}
	metrics.RecordsTotal.WithLabelValues("profile", "increment").Inc()
}
