package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/suicart/escrow-backend/internal/chain"
	"github.com/suicart/escrow-backend/internal/config"
	"github.com/suicart/escrow-backend/internal/db"
	"github.com/suicart/escrow-backend/internal/models"
	repo "github.com/suicart/escrow-backend/internal/repository"
	"github.com/suicart/escrow-backend/internal/repository/sqlite"
	"github.com/suicart/escrow-backend/internal/worker"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type fixture struct {
	repos    sqlite.Repositories
	profiles *ProfileService
	txns     *TransactionService
	wp       *worker.Pool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := db.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, sqlite.AutoMigrate(gdb))
	repos := sqlite.NewRepositories(gdb)

	wp := worker.NewPool(2)
	ps := NewProfileService(repos.Profiles, quiet)
	return &fixture{
		repos:    repos,
		profiles: ps,
		txns:     NewTransactionService(repos.Transactions, repos.AuditLogs, ps, wp, quiet),
		wp:       wp,
	}
}

func pending(user, counterparty string) models.Transaction {
	return models.Transaction{
		UserAddress:         user,
		CounterpartyAddress: counterparty,
		Amount:              10,
		Status:              models.TxnPending,
		AssetID:             "asset1",
		TransactionType:     models.TxnBuyer,
	}
}

func TestCreateIncrementsUserCounter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.txns.Create(ctx, pending("0xA", "0xB"))
	require.NoError(t, err)
	_, err = f.txns.Create(ctx, pending("0xA", "0xC"))
	require.NoError(t, err)
	f.wp.Stop() // drain background jobs

	p, err := f.profiles.Get(ctx, "0xA")
	require.NoError(t, err)
	require.EqualValues(t, 2, p.TransactionCount)

	// the counterparty is not counted
	p, err = f.profiles.Get(ctx, "0xB")
	require.NoError(t, err)
	require.Zero(t, p.TransactionCount)
}

func TestCompleteSetsStatusAndTimestampTogether(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	t.Cleanup(f.wp.Stop)

	tx, err := f.txns.Create(ctx, pending("0xA", "0xB"))
	require.NoError(t, err)

	done, err := f.txns.Complete(ctx, tx.ID, models.TxnCompleted)
	require.NoError(t, err)
	require.Equal(t, models.TxnCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	_, err = f.txns.Complete(ctx, tx.ID, models.TxnPending)
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.txns.Complete(ctx, "missing", models.TxnRefunded)
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestUpdateIsPermissive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	t.Cleanup(f.wp.Stop)

	tx, err := f.txns.Create(ctx, pending("0xA", "0xB"))
	require.NoError(t, err)

	// status without completed_at is stored as given
	got, err := f.txns.Update(ctx, tx.ID, models.Patch{models.ColStatus: "Refunded"})
	require.NoError(t, err)
	require.Equal(t, models.TxnRefunded, got.Status)
	require.Nil(t, got.CompletedAt)

	_, err = f.txns.Update(ctx, tx.ID, models.Patch{"created_at": "now"})
	require.ErrorIs(t, err, repo.ErrUnknownField)
}

func TestGetMissingTransaction(t *testing.T) {
	f := newFixture(t)
	t.Cleanup(f.wp.Stop)
	_, err := f.txns.Get(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, repo.ErrNotFound)
}

type failingTransactions struct{ repo.Transactions }

func (failingTransactions) ListByAddress(context.Context, string) ([]models.Transaction, error) {
	return nil, errors.New("connection refused")
}

func TestListForUserFailsSoft(t *testing.T) {
	s := NewTransactionService(failingTransactions{}, nil, nil, nil, quiet)
	txs := s.ListForUser(context.Background(), "0xA")
	require.NotNil(t, txs)
	require.Empty(t, txs)
}

func TestProfileGetCreatesOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	t.Cleanup(f.wp.Stop)

	p1, err := f.profiles.Get(ctx, "0xNew")
	require.NoError(t, err)
	require.Zero(t, p1.TransactionCount)

	p2, err := f.profiles.Get(ctx, "0xNew")
	require.NoError(t, err)
	require.True(t, p1.CreatedAt.Equal(p2.CreatedAt))

	_, err = f.profiles.Create(ctx, "0xNew")
	require.Error(t, err, "duplicate insert must fail")
}

func TestProfileUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	t.Cleanup(f.wp.Stop)

	_, err := f.profiles.Update(ctx, "0xNobody", models.Patch{models.ColUsername: "x"})
	require.ErrorIs(t, err, repo.ErrNotFound)

	// not found wins over an unknown column
	_, err = f.profiles.Update(ctx, "0xNobody", models.Patch{"is_admin": true})
	require.ErrorIs(t, err, repo.ErrNotFound)

	_, err = f.profiles.Get(ctx, "0xA")
	require.NoError(t, err)
	p, err := f.profiles.Update(ctx, "0xA", models.Patch{models.ColUsername: "alice"})
	require.NoError(t, err)
	require.Equal(t, "alice", *p.Username)

	_, err = f.profiles.Update(ctx, "0xA", models.Patch{"is_admin": true})
	require.ErrorIs(t, err, repo.ErrUnknownField)
}

type failingProfiles struct{ repo.Profiles }

func (failingProfiles) IncrementTransactionCount(context.Context, string) error {
	return errors.New("procedure missing")
}

func TestIncrementSwallowsErrors(t *testing.T) {
	s := NewProfileService(failingProfiles{}, quiet)
	require.NotPanics(t, func() { s.IncrementTransactionCount(context.Background(), "0xA") })
}

type stubReader struct {
	err     error
	escrows []chain.Object
}

func (r stubReader) EscrowsByOwner(context.Context, string) ([]chain.Object, error) {
	return r.escrows, r.err
}
func (r stubReader) AssetsByOwner(context.Context, string) ([]chain.Object, error) {
	return nil, r.err
}
func (r stubReader) TransactionHistory(context.Context, string) ([]chain.HistoryEntry, error) {
	return nil, r.err
}

func TestEscrowServiceReadsFailSoft(t *testing.T) {
	b := chain.NewBuilder(config.ChainConfig{PackageID: "0x1"}, quiet)
	s := NewEscrowService(b, stubReader{err: errors.New("timeout")}, quiet)
	ctx := context.Background()

	require.Empty(t, s.Escrows(ctx, "0xA"))
	require.NotNil(t, s.Assets(ctx, "0xA"))
	require.NotNil(t, s.History(ctx, "0xA"))

	ok := NewEscrowService(b, stubReader{escrows: []chain.Object{{ObjectID: "0x9"}}}, quiet)
	require.Len(t, ok.Escrows(ctx, "0xA"), 1)
}

func TestEscrowServiceCreateValidates(t *testing.T) {
	b := chain.NewBuilder(config.ChainConfig{PackageID: "0x1"}, quiet)
	s := NewEscrowService(b, stubReader{}, quiet)

	p, err := s.CreateEscrow(AssetPhysical, "0xS", 1.5, "watch")
	require.NoError(t, err)
	require.Equal(t, chain.FnCreatePhysicalEscrow, p.Function)

	_, err = s.CreateEscrow("vehicle", "0xS", 1, "car")
	require.ErrorIs(t, err, ErrInvalidAssetType)

	_, err = s.CreateEscrow(AssetDigital, "0xS", -1, "nft")
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = s.CreateEscrow(AssetDigital, "0xS", 1e11, "nft")
	require.ErrorIs(t, err, ErrInvalidAmount)
}
