package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"lg/peso-certo-api/internal/ledger"
	"lg/peso-certo-api/internal/plan"
	"lg/peso-certo-api/internal/profile"
)

// Snapshot is the persisted state. Any field may be nil when its document is
// absent or could not be decoded.
type Snapshot struct {
	Profile profile.Profile
	Plan    *plan.Plan
	Ledger  *ledger.Ledger
}

// Gateway reads and writes the three documents. Writes are independent: a
// failed write is logged and the remaining documents are still written.
type Gateway struct {
	storage Storage
	log     *zap.Logger
}

func NewGateway(s Storage, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{storage: s, log: log}
}

// Save writes each non-nil document of snap. It returns every write error
// joined; callers that treat persistence as best effort may ignore it.
func (g *Gateway) Save(ctx context.Context, snap Snapshot) error {
	var errs []error
	if snap.Profile != nil {
		errs = append(errs, g.put(ctx, KeyProfile, snap.Profile))
	}
	if snap.Plan != nil {
		errs = append(errs, g.put(ctx, KeyPlan, snap.Plan))
	}
	if snap.Ledger != nil {
		errs = append(errs, g.put(ctx, KeyLedger, snap.Ledger))
	}
	return errors.Join(errs...)
}

func (g *Gateway) SaveProfile(ctx context.Context, p profile.Profile) error {
	return g.put(ctx, KeyProfile, p)
}

func (g *Gateway) SavePlan(ctx context.Context, p plan.Plan) error {
	return g.put(ctx, KeyPlan, p)
}

func (g *Gateway) SaveLedger(ctx context.Context, l *ledger.Ledger) error {
	return g.put(ctx, KeyLedger, l)
}

// Load reads every document. A document that is missing, unreadable or
// corrupt comes back nil without affecting the others.
func (g *Gateway) Load(ctx context.Context) Snapshot {
	var snap Snapshot

	var p profile.Profile
	if g.get(ctx, KeyProfile, &p) && p != nil {
		snap.Profile = p
	}
	var pl plan.Plan
	if g.get(ctx, KeyPlan, &pl) {
		snap.Plan = &pl
	}
	l := ledger.New()
	if g.get(ctx, KeyLedger, l) {
		snap.Ledger = l
	}
	return snap
}

// Clear removes every document.
func (g *Gateway) Clear(ctx context.Context) error {
	if err := g.storage.Clear(ctx); err != nil {
		g.log.Error("Failed to clear storage", zap.Error(err))
		return err
	}
	return nil
}

func (g *Gateway) put(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		g.log.Error("Failed to encode document", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := g.storage.Set(ctx, key, string(b)); err != nil {
		g.log.Error("Failed to write document", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (g *Gateway) get(ctx context.Context, key string, dst any) bool {
	raw, err := g.storage.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		g.log.Warn("Failed to read document", zap.String("key", key), zap.Error(err))
		return false
	}
	if raw == "" || raw == "null" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		g.log.Warn("Ignoring corrupt document", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}
