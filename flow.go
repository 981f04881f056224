package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getFlow returns the current phase with its progress or countdown.
// GET /api/flow.
func (h *Handler) getFlow(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.View())
}

// nextPhase moves welcome → intro → onboarding and result → offer →
// dashboard. Other phases answer 409.
// POST /api/flow/next.
func (h *Handler) nextPhase(c *gin.Context) {
	phase, err := h.app.Next()
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, phaseResponse{Phase: phase})
}

// previousPhase returns from intro to welcome.
// POST /api/flow/back.
func (h *Handler) previousPhase(c *gin.Context) {
	phase, err := h.app.Back()
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, phaseResponse{Phase: phase})
}

// reset deletes every saved document and starts over at welcome.
// POST /api/reset. A storage failure is logged; the session still resets.
func (h *Handler) reset(c *gin.Context) {
	if err := h.app.Reset(c.Request.Context()); err != nil {
		h.log.Warn("Reset could not clear storage", zap.Error(err))
	}
	c.JSON(http.StatusOK, phaseResponse{Phase: h.app.Phase()})
}
