package flow

import (
	"context"

	"lg/peso-certo-api/internal/ledger"
	"lg/peso-certo-api/internal/plan"
)

// HistoryLimit is how many days the progress history shows by default.
const HistoryLimit = 10

// Plan returns the generated plan.
func (a *App) Plan() (plan.Plan, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.plan == nil {
		return plan.Plan{}, ErrNoPlan
	}
	return *a.plan, nil
}

// Today returns today's record, empty if nothing was logged yet.
func (a *App) Today() ledger.DailyProgress {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.Today(a.clock)
}

// UpdateToday merges patch into today's record and saves the ledger. Only
// the dashboard logs progress.
func (a *App) UpdateToday(ctx context.Context, patch ledger.Patch) (ledger.DailyProgress, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.requirePhase(Dashboard); err != nil {
		return ledger.DailyProgress{}, err
	}
	rec, err := a.ledger.UpsertToday(a.clock, patch)
	if err != nil {
		return ledger.DailyProgress{}, err
	}
	_ = a.gateway.SaveLedger(ctx, a.ledger)
	return rec, nil
}

// Lookup returns the record for a date-key.
func (a *App) Lookup(dateKey string) (ledger.DailyProgress, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.Lookup(dateKey)
}

// Progress is the dashboard summary of logged days.
type Progress struct {
	Today          ledger.DailyProgress   `json:"today"`
	Records        []ledger.DailyProgress `json:"records"`
	Totals         ledger.Totals          `json:"totals"`
	StartWeight    float64                `json:"startWeight"`
	TargetWeight   float64                `json:"targetWeight"`
	CurrentWeight  float64                `json:"currentWeight"`
	WeightProgress float64                `json:"weightProgress"`
}

// Progress returns up to limit records newest first, with totals over every
// recorded day. limit <= 0 returns all records.
func (a *App) Progress(limit int) Progress {
	a.mu.Lock()
	defer a.mu.Unlock()

	in := plan.InputsFrom(a.engine.Profile())
	start, target := in.WeightKG, in.TargetWeightKG
	current, ok := a.ledger.LatestWeight()
	if !ok {
		current = start
	}
	return Progress{
		Today:          a.ledger.Today(a.clock),
		Records:        a.ledger.Recent(limit),
		Totals:         ledger.Aggregate(a.ledger.Records()),
		StartWeight:    start,
		TargetWeight:   target,
		CurrentWeight:  current,
		WeightProgress: ledger.WeightProgress(start, target, current),
	}
}
