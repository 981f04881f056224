package flow

import (
	"fmt"
	"math"
	"time"
)

// Phase timings. Generating climbs 2% every 50ms, Adapting 1% every 80ms;
// each holds at 100% for PhaseHold before moving on.
const (
	GeneratingDuration = 2500 * time.Millisecond
	GeneratingTick     = 50 * time.Millisecond
	AdaptingDuration   = 8000 * time.Millisecond
	AdaptingTick       = 80 * time.Millisecond
	PhaseHold          = 500 * time.Millisecond

	OfferDuration = 10 * time.Minute
	OfferTick     = time.Second
)

// Easing maps linear progress in [0, 1] to displayed progress in [0, 1].
type Easing func(float64) float64

func Linear(x float64) float64 { return x }

// Animation is a progress value derived from elapsed time. It holds no
// timer; callers sample it against a clock.
type Animation struct {
	Start    time.Time
	Duration time.Duration
	Easing   Easing
}

// Fraction returns the eased progress at now, clamped to [0, 1].
func (a Animation) Fraction(now time.Time) float64 {
	if a.Duration <= 0 {
		return 1
	}
	x := float64(now.Sub(a.Start)) / float64(a.Duration)
	x = min(max(x, 0), 1)
	if a.Easing != nil {
		x = a.Easing(x)
	}
	return min(max(x, 0), 1)
}

// Percent returns the progress at now as a whole percentage.
func (a Animation) Percent(now time.Time) int {
	return int(math.Floor(a.Fraction(now)*100 + 1e-9))
}

// End is the instant progress reaches 100%.
func (a Animation) End() time.Time {
	return a.Start.Add(a.Duration)
}

// Done reports whether the animation has reached 100%.
func (a Animation) Done(now time.Time) bool {
	return !now.Before(a.End())
}

// Countdown counts whole seconds down from Total and stops at zero.
type Countdown struct {
	Start time.Time
	Total time.Duration
}

// Seconds returns the whole seconds left at now, never below zero.
func (c Countdown) Seconds(now time.Time) int {
	elapsed := int(now.Sub(c.Start) / time.Second)
	left := int(c.Total/time.Second) - max(elapsed, 0)
	return max(left, 0)
}

// Expired reports whether the countdown reached zero.
func (c Countdown) Expired(now time.Time) bool {
	return c.Seconds(now) == 0
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

var generatingSteps = []string{
	"Analyzing your profile...",
	"Calculating your BMI...",
	"Creating your personalized plan...",
	"Selecting recipes...",
	"Setting up exercises...",
	"Finishing your plan...",
}

// GeneratingStep returns the index of the label shown at a Generating
// progress percentage.
func GeneratingStep(percent int) int {
	return min(percent/17, len(generatingSteps)-1)
}

// GeneratingSteps returns every Generating label in order.
func GeneratingSteps() []string {
	return append([]string(nil), generatingSteps...)
}
