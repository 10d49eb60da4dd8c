package chain

import (
	"log/slog"
	"strconv"

	"github.com/suicart/escrow-backend/internal/config"
	"github.com/suicart/escrow-backend/internal/metrics"
)

// Module is the Move module holding the escrow entry functions.
const Module = "escrow"

// Entry functions of the escrow module.
const (
	FnCreateDigitalEscrow  = "create_digital_escrow"
	FnCreatePhysicalEscrow = "create_physical_escrow"
	FnDepositAsset         = "deposit_asset"
	FnConfirm              = "confirm"
	FnRefund               = "refund"
	FnMintAsset            = "mint_asset"
)

// Builder assembles unsigned escrow transactions. With no package configured
// every method returns an empty payload.
type Builder struct {
	cfg config.ChainConfig
	log *slog.Logger
}

func NewBuilder(cfg config.ChainConfig, log *slog.Logger) *Builder {
	if cfg.DemoMode() {
		log.Warn("ESCROW_PACKAGE_ID is unset or 0x0, chain calls run in demo mode")
	}
	return &Builder{cfg: cfg, log: log}
}

func (b *Builder) Demo() bool { return b.cfg.DemoMode() }

func (b *Builder) target(fn string) string {
	return b.cfg.PackageID + "::" + Module + "::" + fn
}

func (b *Builder) CreateDigitalEscrow(seller string, amount float64, description string) (Payload, error) {
	return b.createEscrow(FnCreateDigitalEscrow, seller, amount, description)
}

func (b *Builder) CreatePhysicalEscrow(seller string, amount float64, description string) (Payload, error) {
	return b.createEscrow(FnCreatePhysicalEscrow, seller, amount, description)
}

// createEscrow splits the escrow amount off the gas coin and hands it to the contract.
// The amount is checked in demo mode too.
func (b *Builder) createEscrow(fn, seller string, amount float64, description string) (Payload, error) {
	mist, err := ToMist(amount)
	if err != nil {
		return Payload{}, err
	}
	return b.build(fn, func() []Command {
		return []Command{
			{Kind: CmdSplitCoins, Arguments: []Argument{Gas(), Pure(strconv.FormatUint(mist, 10))}},
			{Kind: CmdMoveCall, Target: b.target(fn), Arguments: []Argument{Result(0), Pure(seller), Pure(description)}},
		}
	}), nil
}

func (b *Builder) DepositAsset(escrowID, assetID string) Payload {
	return b.build(FnDepositAsset, func() []Command {
		return []Command{
			{Kind: CmdMoveCall, Target: b.target(FnDepositAsset), Arguments: []Argument{ObjectRef(escrowID), ObjectRef(assetID)}},
		}
	})
}

func (b *Builder) Confirm(escrowID string) Payload {
	return b.singleObjectCall(FnConfirm, escrowID)
}

func (b *Builder) Refund(escrowID string) Payload {
	return b.singleObjectCall(FnRefund, escrowID)
}

func (b *Builder) singleObjectCall(fn, objectID string) Payload {
	return b.build(fn, func() []Command {
		return []Command{
			{Kind: CmdMoveCall, Target: b.target(fn), Arguments: []Argument{ObjectRef(objectID)}},
		}
	})
}

// MintAsset mints a test asset and transfers it to recipient.
func (b *Builder) MintAsset(value uint64, recipient string) Payload {
	return b.build(FnMintAsset, func() []Command {
		return []Command{
			{Kind: CmdMoveCall, Target: b.target(FnMintAsset), Arguments: []Argument{Pure(strconv.FormatUint(value, 10))}},
			{Kind: CmdTransferObjects, Arguments: []Argument{Result(0), Pure(recipient)}},
		}
	})
}

func (b *Builder) build(fn string, commands func() []Command) Payload {
	p := Payload{Function: fn, Network: b.cfg.Network, Commands: []Command{}}
	if b.Demo() {
		b.log.Debug("demo mode: returning empty payload", "function", fn)
		metrics.ChainPayloads.WithLabelValues(fn, "demo").Inc()
		return p
	}
	p.Package = b.cfg.PackageID
	p.Commands = commands()
	p.Fingerprint = fingerprint(p.Commands)
	metrics.ChainPayloads.WithLabelValues(fn, "live").Inc()
	return p
}
