package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/peso-certo-api/internal/flow"
)

// getOnboarding returns the active question, its answer so far, and whether
// the user can move on.
// GET /api/onboarding.
func (h *Handler) getOnboarding(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.CurrentQuestion())
}

// getQuestions returns the whole questionnaire in order.
// GET /api/onboarding/questions.
func (h *Handler) getQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, catalogResponse{Questions: h.app.Questions()})
}

// putAnswer records the answer to one question, replacing any earlier one.
// PUT /api/onboarding/answers/:id. Body: { "value": ... }.
// Select questions only accept their own option values (400 otherwise).
func (h *Handler) putAnswer(c *gin.Context) {
	var body answerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Value == nil {
		apiError(c, http.StatusBadRequest, "value is required")
		return
	}

	view, err := h.app.RecordAnswer(c.Param("id"), body.Value)
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// toggleAnswer flips one value in a multi-select answer.
// POST /api/onboarding/answers/:id/toggle. Body: { "value": "..." }.
func (h *Handler) toggleAnswer(c *gin.Context) {
	var body toggleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "value is required")
		return
	}

	view, err := h.app.ToggleAnswer(c.Param("id"), body.Value)
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// advanceOnboarding moves to the next question. Advancing past the last
// question generates the plan and starts the generating phase.
// POST /api/onboarding/advance. An unanswered question is not an error; the
// response reports step "blocked".
func (h *Handler) advanceOnboarding(c *gin.Context) {
	step, err := h.app.Advance(c.Request.Context())
	if err != nil {
		h.domainError(c, err)
		return
	}

	resp := advanceResponse{Step: step.String(), Phase: h.app.Phase()}
	if resp.Phase == flow.Onboarding {
		view := h.app.CurrentQuestion()
		resp.Onboarding = &view
	}
	c.JSON(http.StatusOK, resp)
}

// retreatOnboarding steps back one question; a no-op at the first.
// POST /api/onboarding/retreat.
func (h *Handler) retreatOnboarding(c *gin.Context) {
	moved, err := h.app.Retreat()
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, retreatResponse{Moved: moved, Onboarding: h.app.CurrentQuestion()})
}

// getProfile returns the answers given so far.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.Profile())
}

// getPlan returns the generated plan, or 404 before onboarding completes.
// GET /api/plan.
func (h *Handler) getPlan(c *gin.Context) {
	p, err := h.app.Plan()
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
