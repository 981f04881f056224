package flow

import "lg/peso-certo-api/internal/clock"

// View is what a client needs to draw the current phase.
type View struct {
	Phase Phase `json:"phase"`

	// Generating and Adapting.
	Progress          int    `json:"progress"`
	SecondaryProgress int    `json:"secondaryProgress"`
	StepIndex         int    `json:"stepIndex"`
	StepLabel         string `json:"stepLabel,omitempty"`

	// Offer.
	CountdownSeconds int    `json:"countdownSeconds"`
	Countdown        string `json:"countdown,omitempty"`
	OfferExpired     bool   `json:"offerExpired"`

	HasPlan bool   `json:"hasPlan"`
	Today   string `json:"today"`
}

// View samples the current phase.
func (a *App) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	a.settle(now)

	v := View{Phase: a.phase, HasPlan: a.plan != nil, Today: now.Format(clock.DateLayout)}
	switch a.phase {
	case Generating:
		v.Progress = a.anim.Percent(now)
		v.StepIndex = GeneratingStep(v.Progress)
		v.StepLabel = generatingSteps[v.StepIndex]
	case Adapting:
		v.Progress = a.anim.Percent(now)
		v.SecondaryProgress = max(v.Progress-30, 0)
	case Result:
		v.Progress = 100
	case Offer:
		v.CountdownSeconds = a.countdown.Seconds(now)
		v.Countdown = FormatClock(v.CountdownSeconds)
		v.OfferExpired = v.CountdownSeconds == 0
	}
	return v
}
