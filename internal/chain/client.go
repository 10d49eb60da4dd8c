package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/suicart/escrow-backend/internal/config"
)

const (
	pageSize = 50
	// maxPages bounds a single read so one busy address cannot stall a request.
	maxPages = 20
)

// Object is an owned Move object. Content holds the object's Move fields.
type Object struct {
	ObjectID string         `json:"objectId" yaml:"objectId"`
	Version  string         `json:"version" yaml:"version"`
	Digest   string         `json:"digest" yaml:"digest"`
	Type     string         `json:"type" yaml:"type"`
	Content  map[string]any `json:"content" yaml:"content"`
}

type Event struct {
	Type       string         `json:"type" yaml:"type"`
	ParsedJSON map[string]any `json:"parsedJson" yaml:"parsedJson"`
}

// HistoryEntry is one executed transaction block sent by the queried address.
type HistoryEntry struct {
	Digest      string  `json:"digest"`
	Sender      string  `json:"sender"`
	Status      string  `json:"status"`
	Events      []Event `json:"events"`
	TimestampMs int64   `json:"timestamp_ms"`
}

type caller interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
}

// Client reads escrow state from a fullnode. In demo mode it serves fixtures
// and never dials.
type Client struct {
	cfg      config.ChainConfig
	rpc      caller
	closeFn  func()
	fixtures *fixtures
	now      func() time.Time
}

func NewClient(ctx context.Context, cfg config.ChainConfig) (*Client, error) {
	c := &Client{cfg: cfg, closeFn: func() {}, now: time.Now}
	if cfg.DemoMode() {
		fx, err := loadFixtures()
		if err != nil {
			return nil, err
		}
		c.fixtures = fx
		return c, nil
	}

	hc := &http.Client{
		Timeout:   cfg.RPCTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	rc, err := rpc.DialOptions(ctx, cfg.RPCURL, rpc.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("dial fullnode %s: %w", cfg.RPCURL, err)
	}
	c.rpc = rc
	c.closeFn = rc.Close
	return c, nil
}

func (c *Client) Close() { c.closeFn() }

func (c *Client) structType(name string) string {
	pkg := c.cfg.PackageID
	if c.cfg.DemoMode() {
		pkg = config.ZeroPackageID
	}
	return pkg + "::" + Module + "::" + name
}

func (c *Client) EscrowsByOwner(ctx context.Context, owner string) ([]Object, error) {
	if c.fixtures != nil {
		return c.fixtures.escrows(owner, c.structType("Escrow")), nil
	}
	return c.ownedObjects(ctx, owner, c.structType("Escrow"))
}

func (c *Client) AssetsByOwner(ctx context.Context, owner string) ([]Object, error) {
	if c.fixtures != nil {
		return c.fixtures.assets(owner, c.structType("Asset")), nil
	}
	return c.ownedObjects(ctx, owner, c.structType("Asset"))
}

// TransactionHistory returns blocks sent by address that emitted escrow module events.
func (c *Client) TransactionHistory(ctx context.Context, address string) ([]HistoryEntry, error) {
	if c.fixtures != nil {
		return c.fixtures.history(address, c.structType(""), c.now()), nil
	}

	query := map[string]any{
		"filter":  map[string]any{"FromAddress": address},
		"options": map[string]any{"showInput": true, "showEffects": true, "showEvents": true},
	}
	prefix := c.structType("")
	out := []HistoryEntry{}
	var cursor *string
	for page := 0; page < maxPages; page++ {
		var res txBlockPage
		if err := c.rpc.CallContext(ctx, &res, "suix_queryTransactionBlocks", query, cursor, pageSize, true); err != nil {
			return nil, fmt.Errorf("suix_queryTransactionBlocks: %w", err)
		}
		for _, b := range res.Data {
			if e, ok := b.entry(prefix); ok {
				out = append(out, e)
			}
		}
		if !res.HasNextPage || res.NextCursor == nil {
			break
		}
		cursor = res.NextCursor
	}
	return out, nil
}

func (c *Client) ownedObjects(ctx context.Context, owner, structType string) ([]Object, error) {
	query := map[string]any{
		"filter":  map[string]any{"StructType": structType},
		"options": map[string]any{"showType": true, "showContent": true},
	}
	out := []Object{}
	var cursor *string
	for page := 0; page < maxPages; page++ {
		var res objectPage
		if err := c.rpc.CallContext(ctx, &res, "suix_getOwnedObjects", owner, query, cursor, pageSize); err != nil {
			return nil, fmt.Errorf("suix_getOwnedObjects: %w", err)
		}
		for _, item := range res.Data {
			if item.Data == nil {
				continue
			}
			out = append(out, item.Data.object())
		}
		if !res.HasNextPage || res.NextCursor == nil {
			break
		}
		cursor = res.NextCursor
	}
	return out, nil
}

// Fullnode wire shapes.

type objectPage struct {
	Data []struct {
		Data *objectData `json:"data"`
	} `json:"data"`
	NextCursor  *string `json:"nextCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

type objectData struct {
	ObjectID string `json:"objectId"`
	Version  string `json:"version"`
	Digest   string `json:"digest"`
	Type     string `json:"type"`
	Content  *struct {
		Fields map[string]any `json:"fields"`
	} `json:"content"`
}

func (d objectData) object() Object {
	o := Object{ObjectID: d.ObjectID, Version: d.Version, Digest: d.Digest, Type: d.Type}
	if d.Content != nil {
		o.Content = d.Content.Fields
	}
	return o
}

type txBlockPage struct {
	Data        []txBlock `json:"data"`
	NextCursor  *string   `json:"nextCursor"`
	HasNextPage bool      `json:"hasNextPage"`
}

type txBlock struct {
	Digest      string `json:"digest"`
	Transaction struct {
		Data struct {
			Sender string `json:"sender"`
		} `json:"data"`
	} `json:"transaction"`
	Effects struct {
		Status struct {
			Status string `json:"status"`
		} `json:"status"`
	} `json:"effects"`
	Events      []Event         `json:"events"`
	TimestampMs json.RawMessage `json:"timestampMs"`
}

// entry keeps the block only if one of its events comes from the module at prefix.
func (b txBlock) entry(prefix string) (HistoryEntry, bool) {
	var events []Event
	for _, ev := range b.Events {
		if strings.HasPrefix(ev.Type, prefix) {
			events = append(events, ev)
		}
	}
	if len(events) == 0 {
		return HistoryEntry{}, false
	}
	return HistoryEntry{
		Digest:      b.Digest,
		Sender:      b.Transaction.Data.Sender,
		Status:      b.Effects.Status.Status,
		Events:      events,
		TimestampMs: parseMillis(b.TimestampMs),
	}, true
}

// parseMillis accepts the fullnode's string-encoded u64 as well as a bare number.
func parseMillis(raw json.RawMessage) int64 {
	s := strings.Trim(string(raw), `"`)
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return ms
}
