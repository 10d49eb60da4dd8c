package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/suicart/escrow-backend/internal/chain"
	"github.com/suicart/escrow-backend/internal/metrics"
)

type AssetType string

const (
	AssetDigital  AssetType = "digital"
	AssetPhysical AssetType = "physical"
)

// ChainReader is the read side of the fullnode client.
type ChainReader interface {
	EscrowsByOwner(ctx context.Context, owner string) ([]chain.Object, error)
	AssetsByOwner(ctx context.Context, owner string) ([]chain.Object, error)
	TransactionHistory(ctx context.Context, address string) ([]chain.HistoryEntry, error)
}

// EscrowService builds escrow payloads and reads on-chain escrow state.
type EscrowService struct {
	b   *chain.Builder
	r   ChainReader
	log *slog.Logger
}

func NewEscrowService(b *chain.Builder, r ChainReader, log *slog.Logger) *EscrowService {
	return &EscrowService{b: b, r: r, log: log}
}

func (s *EscrowService) Demo() bool { return s.b.Demo() }

func (s *EscrowService) CreateEscrow(kind AssetType, seller string, amount float64, description string) (chain.Payload, error) {
	var (
		p   chain.Payload
		err error
	)
	switch kind {
	case AssetDigital:
		p, err = s.b.CreateDigitalEscrow(seller, amount, description)
	case AssetPhysical:
		p, err = s.b.CreatePhysicalEscrow(seller, amount, description)
	default:
		return chain.Payload{}, ErrInvalidAssetType
	}
	if errors.Is(err, chain.ErrAmountOutOfRange) {
		return chain.Payload{}, ErrInvalidAmount
	}
	return p, err
}

func (s *EscrowService) Deposit(escrowID, assetID string) chain.Payload {
	return s.b.DepositAsset(escrowID, assetID)
}

func (s *EscrowService) Confirm(escrowID string) chain.Payload { return s.b.Confirm(escrowID) }

func (s *EscrowService) Refund(escrowID string) chain.Payload { return s.b.Refund(escrowID) }

func (s *EscrowService) MintAsset(value uint64, recipient string) chain.Payload {
	return s.b.MintAsset(value, recipient)
}

// ----------------- Reads (fail-soft) -----------------

func (s *EscrowService) Escrows(ctx context.Context, owner string) []chain.Object {
	objs, err := s.r.EscrowsByOwner(ctx, owner)
	if err != nil {
		s.readFailed("escrows", owner, err)
		return []chain.Object{}
	}
	return objs
}

func (s *EscrowService) Assets(ctx context.Context, owner string) []chain.Object {
	objs, err := s.r.AssetsByOwner(ctx, owner)
	if err != nil {
		s.readFailed("assets", owner, err)
		return []chain.Object{}
	}
	return objs
}

func (s *EscrowService) History(ctx context.Context, address string) []chain.HistoryEntry {
	h, err := s.r.TransactionHistory(ctx, address)
	if err != nil {
		s.readFailed("history", address, err)
		return []chain.HistoryEntry{}
	}
	return h
}

func (s *EscrowService) readFailed(op, address string, err error) {
	metrics.ChainReadErrors.WithLabelValues(op).Inc()
	s.log.Error("chain read failed", "op", op, "address", address, "err", err)
}
