package flow

import (
	"context"
	"fmt"
	"slices"

	"lg/peso-certo-api/internal/profile"
	"lg/peso-certo-api/internal/questionnaire"
)

// QuestionView is the active onboarding question with the state the view
// needs to draw it.
type QuestionView struct {
	Question   questionnaire.Question `json:"question"`
	Position   questionnaire.Position `json:"position"`
	Answer     any                    `json:"answer,omitempty"`
	CanAdvance bool                   `json:"canAdvance"`
	CanRetreat bool                   `json:"canRetreat"`
	IsLast     bool                   `json:"isLast"`
}

// CurrentQuestion describes the active onboarding question.
func (a *App) CurrentQuestion() QuestionView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.questionView()
}

func (a *App) questionView() QuestionView {
	q := a.engine.Current()
	pos := a.engine.Position()
	answer, _ := a.engine.Profile().Get(q.ID)
	if list, ok := answer.([]string); ok {
		answer = slices.Clone(list)
	}
	return QuestionView{
		Question:   q,
		Position:   pos,
		Answer:     answer,
		CanAdvance: a.engine.CanAdvance(),
		CanRetreat: pos.Index > 0,
		IsLast:     pos.Index == pos.Total-1,
	}
}

// RecordAnswer stores an answer during onboarding.
func (a *App) RecordAnswer(questionID string, value any) (QuestionView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.requirePhase(Onboarding); err != nil {
		return QuestionView{}, err
	}
	if err := a.engine.RecordAnswer(questionID, value); err != nil {
		return QuestionView{}, err
	}
	return a.questionView(), nil
}

// ToggleAnswer flips value in a multi-select answer during onboarding.
func (a *App) ToggleAnswer(questionID, value string) (QuestionView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.requirePhase(Onboarding); err != nil {
		return QuestionView{}, err
	}
	if err := a.engine.ToggleMultiValue(questionID, value); err != nil {
		return QuestionView{}, err
	}
	return a.questionView(), nil
}

// Advance moves onboarding forward. Completing the last question generates
// the plan, saves every document and enters Generating.
func (a *App) Advance(ctx context.Context) (questionnaire.Step, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.requirePhase(Onboarding); err != nil {
		return questionnaire.Blocked, err
	}
	step := a.engine.Advance()
	if step == questionnaire.Completed {
		// Persistence is best effort; the gateway logs failures.
		_ = a.gateway.Save(ctx, a.snapshot())
		a.enter(Generating, a.clock.Now())
	}
	return step, nil
}

// Retreat steps onboarding back one question. It reports false at the first
// question.
func (a *App) Retreat() (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.requirePhase(Onboarding); err != nil {
		return false, err
	}
	return a.engine.Retreat(), nil
}

// Profile returns a copy of the answers given so far.
func (a *App) Profile() profile.Profile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine.Profile().Clone()
}

func (a *App) requirePhase(want Phase) error {
	a.settle(a.clock.Now())
	if a.phase != want {
		return fmt.Errorf("%w: in %s, want %s", ErrWrongPhase, a.phase, want)
	}
	return nil
}

// Questions returns every onboarding question in order.
func (a *App) Questions() []questionnaire.Question {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.engine.Questions())
}
