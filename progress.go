package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lg/peso-certo-api/internal/flow"
	"lg/peso-certo-api/internal/ledger"
)

// getToday returns today's record. A day with nothing logged yet comes back
// as an empty record dated today, not 404.
// GET /api/progress/today.
func (h *Handler) getToday(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.Today())
}

// patchToday merges the provided fields into today's record and saves the
// ledger.
// PATCH /api/progress/today. Body: any of { "weight", "waterGlasses",
// "exerciseMinutes", "caloriesConsumed", "mood" }. Counters must be >= 0.
func (h *Handler) patchToday(c *gin.Context) {
	var body patchTodayRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Empty() {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}
	if body.Weight != nil && (*body.Weight <= 0 || *body.Weight > 999.9) {
		apiError(c, http.StatusBadRequest, "weight must be between 0 and 999.9")
		return
	}

	rec, err := h.app.UpdateToday(c.Request.Context(), body)
	if err != nil {
		h.domainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// getProgress returns recent records newest first, totals over every logged
// day, and progress toward the target weight.
// GET /api/progress?limit=N. limit defaults to 10; 0 returns every record.
func (h *Handler) getProgress(c *gin.Context) {
	limit := flow.HistoryLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			apiError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	p := h.app.Progress(limit)
	// Ensure empty array (not null) in JSON
	if p.Records == nil {
		p.Records = []ledger.DailyProgress{}
	}
	c.JSON(http.StatusOK, p)
}

// getProgressDay returns the record for one day.
// GET /api/progress/:date with date as YYYY-MM-DD; 404 when nothing was
// logged that day.
func (h *Handler) getProgressDay(c *gin.Context) {
	date := c.Param("date")
	if !ledger.ValidDateKey(date) {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	rec, ok := h.app.Lookup(date)
	if !ok {
		apiError(c, http.StatusNotFound, "no progress logged on "+date)
		return
	}
	c.JSON(http.StatusOK, rec)
}
