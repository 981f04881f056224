// Package questionnaire runs the ordered onboarding flow: it tracks the active
// question, decides whether it has been answered well enough to move on, and
// writes answers into the profile.
package questionnaire

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"lg/peso-certo-api/internal/profile"
)

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrUnknownOption   = errors.New("unknown option")
	ErrNotMultiSelect  = errors.New("question is not multi-select")
	ErrInvalidAnswer   = errors.New("invalid answer")
)

// Step is the outcome of Advance.
type Step int

const (
	// Blocked means the active question has no sufficient answer yet.
	Blocked Step = iota
	// Moved means the cursor moved to the next question.
	Moved
	// Completed means the last question was answered and the completion
	// hook ran instead of moving.
	Completed
)

func (s Step) String() string {
	switch s {
	case Moved:
		return "moved"
	case Completed:
		return "completed"
	default:
		return "blocked"
	}
}

// Position describes where the cursor is, for the progress header.
type Position struct {
	Index   int     `json:"index"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// Engine owns the question cursor. It is not safe for concurrent use.
type Engine struct {
	questions  []Question
	index      int
	profile    profile.Profile
	onComplete func(profile.Profile)
}

// NewEngine starts at the first question of questions, writing answers into
// p. onComplete runs when Advance is called on an answered last question.
func NewEngine(questions []Question, p profile.Profile, onComplete func(profile.Profile)) *Engine {
	if p == nil {
		p = profile.New()
	}
	return &Engine{questions: questions, profile: p, onComplete: onComplete}
}

// Current returns the active question.
func (e *Engine) Current() Question {
	return e.questions[e.index]
}

// Position returns the cursor index, the question count and the percentage
// shown on the progress bar, counting the active question as done.
func (e *Engine) Position() Position {
	total := len(e.questions)
	return Position{
		Index:   e.index,
		Total:   total,
		Percent: float64(e.index+1) / float64(total) * 100,
	}
}

// Questions returns the questions in order.
func (e *Engine) Questions() []Question {
	return e.questions
}

// Profile returns the profile answers are written into.
func (e *Engine) Profile() profile.Profile {
	return e.profile
}

// CanAdvance reports whether the active question is answered. Multi-select
// questions need at least one selected value; every other type needs a
// present, non-blank value. Numbers are not range checked.
func (e *Engine) CanAdvance() bool {
	return e.profile.Has(e.Current().ID)
}

// Advance moves to the next question, or runs the completion hook when the
// active question is the last one. Nothing happens while CanAdvance is false.
func (e *Engine) Advance() Step {
	if !e.CanAdvance() {
		return Blocked
	}
	if e.index < len(e.questions)-1 {
		e.index++
		return Moved
	}
	if e.onComplete != nil {
		e.onComplete(e.profile)
	}
	return Completed
}

// Retreat moves back one question. It reports false at the first question.
func (e *Engine) Retreat() bool {
	if e.index == 0 {
		return false
	}
	e.index--
	return true
}

// RecordAnswer stores value for questionID, replacing any earlier answer.
// Select questions only accept one of their option values. Numeric and age
// answers given as numeric strings are stored as numbers; NaN and infinities
// are rejected. Repeated multi-select values are stored once.
func (e *Engine) RecordAnswer(questionID string, value any) error {
	q, err := e.lookup(questionID)
	if err != nil {
		return err
	}

	switch q.Type {
	case SingleSelect, ImageSelect, AgeSelect:
		s := answerText(value)
		if !q.HasOption(s) {
			return fmt.Errorf("%s: %w %q", questionID, ErrUnknownOption, s)
		}
		value = s
		if q.Type == AgeSelect {
			if value, err = numberOrText(s); err != nil {
				return fmt.Errorf("%s: %w", questionID, err)
			}
		}
	case NumericInput:
		switch x := value.(type) {
		case string:
			value, err = numberOrText(x)
		case float64:
			err = checkFinite(x)
		case float32:
			err = checkFinite(float64(x))
		}
		if err != nil {
			return fmt.Errorf("%s: %w", questionID, err)
		}
	case MultiSelect:
		list, ok := stringList(value)
		if !ok {
			return fmt.Errorf("%s: %w: multi-select answers are a list of strings", questionID, ErrInvalidAnswer)
		}
		for _, v := range list {
			if !q.HasOption(v) {
				return fmt.Errorf("%s: %w %q", questionID, ErrUnknownOption, v)
			}
		}
		value = dedupe(list)
	}

	e.profile.Set(questionID, value)
	return nil
}

// ToggleMultiValue flips membership of value in the selection set of a
// multi-select question.
func (e *Engine) ToggleMultiValue(questionID, value string) error {
	q, err := e.lookup(questionID)
	if err != nil {
		return err
	}
	if q.Type != MultiSelect {
		return fmt.Errorf("%s: %w", questionID, ErrNotMultiSelect)
	}
	if !q.HasOption(value) {
		return fmt.Errorf("%s: %w %q", questionID, ErrUnknownOption, value)
	}
	e.profile.Toggle(questionID, value)
	return nil
}

// Reset clears the profile and returns to the first question.
func (e *Engine) Reset() {
	clear(e.profile)
	e.index = 0
}

func (e *Engine) lookup(id string) (Question, error) {
	for _, q := range e.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, fmt.Errorf("%w %q", ErrUnknownQuestion, id)
}

func answerText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(v)
	}
}

func stringList(v any) ([]string, bool) {
	switch x := v.(type) {
	case []string:
		return x, true
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// numberOrText parses s as a number, keeping it as text when it is not one.
func numberOrText(s string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return s, nil
	}
	if err := checkFinite(f); err != nil {
		return nil, err
	}
	return f, nil
}

func checkFinite(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %v is not a finite number", ErrInvalidAnswer, f)
	}
	return nil
}

// dedupe drops repeated values, keeping the first occurrence of each.
func dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
