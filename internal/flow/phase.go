// Package flow drives the app through its phases, from the welcome screen
// to the dashboard, and owns the in-memory profile, plan and ledger.
package flow

import (
	"errors"
	"fmt"
)

// Phase is a screen of the app. Phases only move forward, except for
// stepping back inside onboarding and resetting from the dashboard.
type Phase int

const (
	Welcome Phase = iota
	Intro
	Onboarding
	Generating
	Adapting
	Result
	Offer
	Dashboard
)

var phaseNames = [...]string{
	Welcome:    "welcome",
	Intro:      "intro",
	Onboarding: "onboarding",
	Generating: "generating",
	Adapting:   "adapting",
	Result:     "result",
	Offer:      "offer",
	Dashboard:  "dashboard",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	for i, name := range phaseNames {
		if name == string(b) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

var (
	// ErrWrongPhase is returned by operations that are not available in the
	// current phase.
	ErrWrongPhase = errors.New("not available in this phase")
	ErrNoPlan     = errors.New("no plan generated yet")
)

// manualNext lists the transitions a user triggers directly. Generating and
// Adapting advance on their own; Onboarding ends through Advance.
var manualNext = map[Phase]Phase{
	Welcome: Intro,
	Intro:   Onboarding,
	Result:  Offer,
	Offer:   Dashboard,
}
