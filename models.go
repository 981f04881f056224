package main

import (
	"lg/peso-certo-api/internal/flow"
	"lg/peso-certo-api/internal/ledger"
	"lg/peso-certo-api/internal/questionnaire"
)

/* ─── Requests ───────────────────────────────────────────────────────── */

// loginRequest is the request body for POST /api/login.
type loginRequest struct {
	Passcode string `json:"passcode"`
}

// answerRequest is the request body for PUT /api/onboarding/answers/:id.
// Value is a string, a number, or a list of strings for multi-select.
type answerRequest struct {
	Value any `json:"value"`
}

// toggleRequest is the request body for POST /api/onboarding/answers/:id/toggle.
type toggleRequest struct {
	Value string `json:"value" binding:"required"`
}

// patchTodayRequest is the request body for PATCH /api/progress/today. All
// fields are pointers; only non-nil fields are written.
type patchTodayRequest = ledger.Patch

/* ─── Responses ──────────────────────────────────────────────────────── */

// advanceResponse is returned by POST /api/onboarding/advance. Phase moves to
// generating when the last question is completed.
type advanceResponse struct {
	Step       string             `json:"step"`
	Phase      flow.Phase         `json:"phase"`
	Onboarding *flow.QuestionView `json:"onboarding,omitempty"`
}

// retreatResponse is returned by POST /api/onboarding/retreat.
type retreatResponse struct {
	Moved      bool              `json:"moved"`
	Onboarding flow.QuestionView `json:"onboarding"`
}

// phaseResponse is returned by the manual flow transitions and reset.
type phaseResponse struct {
	Phase flow.Phase `json:"phase"`
}

// catalogResponse lists every onboarding question for clients that render
// the whole questionnaire up front.
type catalogResponse struct {
	Questions []questionnaire.Question `json:"questions"`
}
