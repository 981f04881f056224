package flow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"lg/peso-certo-api/internal/clock"
	"lg/peso-certo-api/internal/ledger"
	"lg/peso-certo-api/internal/plan"
	"lg/peso-certo-api/internal/profile"
	"lg/peso-certo-api/internal/questionnaire"
	"lg/peso-certo-api/internal/store"
)

// Options are the collaborators of an App. Zero fields get production
// defaults.
type Options struct {
	Clock     clock.Clock
	Scheduler clock.Scheduler
	Gateway   *store.Gateway
	Logger    *zap.Logger
	Questions []questionnaire.Question
}

// App is the single-user session. Every exported method takes the same lock,
// so the app is safe to share between HTTP handlers and scheduler ticks.
type App struct {
	mu sync.Mutex

	clock   clock.Clock
	sched   clock.Scheduler
	gateway *store.Gateway
	log     *zap.Logger

	phase  Phase
	engine *questionnaire.Engine
	plan   *plan.Plan
	ledger *ledger.Ledger

	anim      Animation
	countdown Countdown

	cancelTick clock.Cancel
	tickEpoch  int
}

// New builds an app in the Welcome phase. Call Start to restore saved state.
func New(opts Options) *App {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = clock.Ticker{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Gateway == nil {
		opts.Gateway = store.NewGateway(store.NewMemory(), opts.Logger)
	}
	if opts.Questions == nil {
		opts.Questions = questionnaire.Catalog
	}
	a := &App{
		clock:   opts.Clock,
		sched:   opts.Scheduler,
		gateway: opts.Gateway,
		log:     opts.Logger,
		ledger:  ledger.New(),
	}
	a.engine = questionnaire.NewEngine(opts.Questions, profile.New(), a.generatePlan)
	return a
}

// Start restores saved documents. A saved profile and plan resume at the
// Dashboard; anything less starts over at Welcome. A saved ledger is kept
// either way.
func (a *App) Start(ctx context.Context) Phase {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := a.gateway.Load(ctx)
	if snap.Ledger != nil {
		a.ledger = snap.Ledger
	}
	if snap.Profile != nil && snap.Plan != nil {
		a.engine = questionnaire.NewEngine(a.engine.Questions(), snap.Profile, a.generatePlan)
		a.plan = snap.Plan
		a.enter(Dashboard, a.clock.Now())
	} else {
		a.enter(Welcome, a.clock.Now())
	}
	a.log.Info("Session restored",
		zap.Stringer("phase", a.phase),
		zap.Int("days_tracked", a.ledger.Len()))
	return a.phase
}

// Close stops any periodic work.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopTick()
}

// Phase returns the current phase after applying any timed transitions.
func (a *App) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settle(a.clock.Now())
	return a.phase
}

// Next performs the user-triggered transition out of the current phase.
func (a *App) Next() (Phase, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	a.settle(now)
	to, ok := manualNext[a.phase]
	if !ok {
		return a.phase, fmt.Errorf("next from %s: %w", a.phase, ErrWrongPhase)
	}
	a.enter(to, now)
	return a.phase, nil
}

// Back returns from Intro to Welcome.
func (a *App) Back() (Phase, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase != Intro {
		return a.phase, fmt.Errorf("back from %s: %w", a.phase, ErrWrongPhase)
	}
	a.enter(Welcome, a.clock.Now())
	return a.phase, nil
}

// Reset forgets everything: documents in storage, answers, plan and ledger.
// The app returns to Welcome with onboarding at its first question.
func (a *App) Reset(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.gateway.Clear(ctx)
	a.engine.Reset()
	a.plan = nil
	a.ledger = ledger.New()
	a.anim = Animation{}
	a.countdown = Countdown{}
	a.enter(Welcome, a.clock.Now())
	a.log.Info("Session reset")
	return err
}

/* ─── Phase machinery ────────────────────────────────────────────────── */

// enter switches to p as of instant at. Timed phases start their animation
// at that instant and schedule a tick that samples it.
func (a *App) enter(p Phase, at time.Time) {
	a.stopTick()
	from := a.phase
	a.phase = p

	switch p {
	case Generating:
		a.anim = Animation{Start: at, Duration: GeneratingDuration, Easing: Linear}
		a.startTick(GeneratingTick)
	case Adapting:
		a.anim = Animation{Start: at, Duration: AdaptingDuration, Easing: Linear}
		a.startTick(AdaptingTick)
	case Offer:
		a.countdown = Countdown{Start: at, Total: OfferDuration}
		a.startTick(OfferTick)
	}
	if from != p {
		a.log.Debug("Phase changed", zap.Stringer("from", from), zap.Stringer("to", p))
	}
}

// settle applies every timed transition due by now. A transition takes
// effect at the instant it was due, not when it was observed, so late
// sampling gives the same timeline as prompt ticking.
func (a *App) settle(now time.Time) {
	for {
		switch a.phase {
		case Generating, Adapting:
			due := a.anim.End().Add(PhaseHold)
			if now.Before(due) {
				return
			}
			next := Result
			if a.phase == Generating {
				next = Adapting
			}
			a.enter(next, due)
			continue
		case Offer:
			if a.countdown.Expired(now) {
				a.stopTick()
			}
		}
		return
	}
}

func (a *App) startTick(period time.Duration) {
	a.tickEpoch++
	epoch := a.tickEpoch
	a.cancelTick = a.sched.Schedule(func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		// A tick that raced with cancellation belongs to an earlier phase.
		if epoch != a.tickEpoch {
			return
		}
		a.settle(a.clock.Now())
	}, period)
}

func (a *App) stopTick() {
	if a.cancelTick != nil {
		a.cancelTick()
		a.cancelTick = nil
	}
	a.tickEpoch++
}

func (a *App) snapshot() store.Snapshot {
	return store.Snapshot{Profile: a.engine.Profile(), Plan: a.plan, Ledger: a.ledger}
}

// generatePlan is the onboarding completion hook.
func (a *App) generatePlan(p profile.Profile) {
	pl := plan.Generate(p)
	a.plan = &pl
	a.log.Info("Plan generated",
		zap.Int("daily_calories", pl.DailyCalories),
		zap.Float64("bmi", pl.BMI),
		zap.Int("estimated_weeks", pl.EstimatedWeeks))
}
