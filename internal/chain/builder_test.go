package chain

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suicart/escrow-backend/internal/config"
)

const testPackage = "0xe5c0"

func newBuilder(pkg string) *Builder {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewBuilder(config.ChainConfig{Network: "testnet", PackageID: pkg}, log)
}

func TestBuilderDemoModeReturnsEmptyPayloads(t *testing.T) {
	for _, pkg := range []string{"", "0x0"} {
		b := newBuilder(pkg)
		require.True(t, b.Demo())
		digital, err := b.CreateDigitalEscrow("0xs", 1, "d")
		require.NoError(t, err)
		physical, err := b.CreatePhysicalEscrow("0xs", 1, "d")
		require.NoError(t, err)
		for _, p := range []Payload{
			digital,
			physical,
			b.DepositAsset("0xe", "0xa"),
			b.Confirm("0xe"),
			b.Refund("0xe"),
			b.MintAsset(5, "0xr"),
		} {
			require.True(t, p.Empty())
			require.NotNil(t, p.Commands)
			require.Empty(t, p.Fingerprint)
			require.Empty(t, p.Package)
			require.Equal(t, "testnet", p.Network)
		}
	}
}

func TestCreateEscrowSplitsGasAndCallsContract(t *testing.T) {
	b := newBuilder(testPackage)

	p, err := b.CreateDigitalEscrow("0xseller", 2.5, "artwork")
	require.NoError(t, err)
	require.Equal(t, FnCreateDigitalEscrow, p.Function)
	require.Equal(t, testPackage, p.Package)
	require.Len(t, p.Commands, 2)

	split := p.Commands[0]
	require.Equal(t, CmdSplitCoins, split.Kind)
	require.Equal(t, []Argument{Gas(), Pure("2500000000")}, split.Arguments)

	call := p.Commands[1]
	require.Equal(t, CmdMoveCall, call.Kind)
	require.Equal(t, testPackage+"::escrow::create_digital_escrow", call.Target)
	require.Equal(t, []Argument{Result(0), Pure("0xseller"), Pure("artwork")}, call.Arguments)

	phys, err := b.CreatePhysicalEscrow("0xseller", 2.5, "artwork")
	require.NoError(t, err)
	require.Equal(t, testPackage+"::escrow::create_physical_escrow", phys.Commands[1].Target)
	require.NotEqual(t, p.Fingerprint, phys.Fingerprint)
}

func TestCreateEscrowRejectsOverflowingAmount(t *testing.T) {
	for _, pkg := range []string{testPackage, ""} {
		b := newBuilder(pkg)
		_, err := b.CreateDigitalEscrow("0xseller", 1e11, "too big")
		require.ErrorIs(t, err, ErrAmountOutOfRange)
		_, err = b.CreatePhysicalEscrow("0xseller", -1, "negative")
		require.ErrorIs(t, err, ErrAmountOutOfRange)
	}
}

func TestObjectCalls(t *testing.T) {
	b := newBuilder(testPackage)

	dep := b.DepositAsset("0xescrow", "0xasset")
	require.Len(t, dep.Commands, 1)
	require.Equal(t, testPackage+"::escrow::deposit_asset", dep.Commands[0].Target)
	require.Equal(t, []Argument{ObjectRef("0xescrow"), ObjectRef("0xasset")}, dep.Commands[0].Arguments)

	conf := b.Confirm("0xescrow")
	require.Equal(t, testPackage+"::escrow::confirm", conf.Commands[0].Target)
	require.Equal(t, []Argument{ObjectRef("0xescrow")}, conf.Commands[0].Arguments)

	ref := b.Refund("0xescrow")
	require.Equal(t, testPackage+"::escrow::refund", ref.Commands[0].Target)
}

func TestMintAssetTransfersToRecipient(t *testing.T) {
	p := newBuilder(testPackage).MintAsset(100, "0xme")
	require.Len(t, p.Commands, 2)
	require.Equal(t, []Argument{Pure("100")}, p.Commands[0].Arguments)
	require.Equal(t, CmdTransferObjects, p.Commands[1].Kind)
	require.Equal(t, []Argument{Result(0), Pure("0xme")}, p.Commands[1].Arguments)
}

func TestFingerprintIsStable(t *testing.T) {
	b := newBuilder(testPackage)
	a := b.Confirm("0x1")
	c := b.Confirm("0x1")
	require.Len(t, a.Fingerprint, 64)
	require.Equal(t, a.Fingerprint, c.Fingerprint)
	require.NotEqual(t, a.Fingerprint, b.Confirm("0x2").Fingerprint)
}
