package main

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lg/peso-certo-api/internal/flow"
	"lg/peso-certo-api/internal/ledger"
	"lg/peso-certo-api/internal/questionnaire"
)

// Handler holds shared dependencies (the session, auth settings, logger) for
// all route handlers.
type Handler struct {
	app          *flow.App
	log          *zap.Logger
	passcodeHash string // bcrypt hash; empty disables auth
	token        string

	done    chan struct{}  // closed on shutdown; ends open streams
	streams sync.WaitGroup // open /ws/flow connections
}

func newHandler(app *flow.App, log *zap.Logger, passcodeHash, token string) *Handler {
	return &Handler{
		app:          app,
		log:          log,
		passcodeHash: passcodeHash,
		token:        token,
		done:         make(chan struct{}),
	}
}

// closeStreams ends every open stream and waits for them to finish.
func (h *Handler) closeStreams() {
	close(h.done)
	h.streams.Wait()
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// domainError maps an error from the session to a status code. Unknown errors
// are logged and reported as 500.
func (h *Handler) domainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, questionnaire.ErrUnknownQuestion), errors.Is(err, flow.ErrNoPlan):
		apiError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, questionnaire.ErrUnknownOption),
		errors.Is(err, questionnaire.ErrNotMultiSelect),
		errors.Is(err, questionnaire.ErrInvalidAnswer),
		errors.Is(err, ledger.ErrNegativeValue),
		errors.Is(err, ledger.ErrInvalidDate):
		apiError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, flow.ErrWrongPhase):
		apiError(c, http.StatusConflict, err.Error())
	default:
		h.log.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		apiError(c, http.StatusInternalServerError, "internal error")
	}
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// newRouter builds the gin engine with CORS and every route registered.
func newRouter(h *Handler, corsOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetTrustedProxies(nil)

	cc := cors.DefaultConfig()
	cc.AllowOrigins = []string{corsOrigin}
	cc.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"}
	cc.AllowHeaders = append(cc.AllowHeaders, "Authorization")
	router.Use(cors.New(cc))

	h.registerRoutes(router)
	return router
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/flow", h.getFlow)
	api.POST("/flow/next", h.nextPhase)
	api.POST("/flow/back", h.previousPhase)
	api.GET("/onboarding", h.getOnboarding)
	api.GET("/onboarding/questions", h.getQuestions)
	api.PUT("/onboarding/answers/:id", h.putAnswer)
	api.POST("/onboarding/answers/:id/toggle", h.toggleAnswer)
	api.POST("/onboarding/advance", h.advanceOnboarding)
	api.POST("/onboarding/retreat", h.retreatOnboarding)
	api.GET("/profile", h.getProfile)
	api.GET("/plan", h.getPlan)
	api.GET("/progress/today", h.getToday)
	api.PATCH("/progress/today", h.patchToday)
	api.GET("/progress", h.getProgress)
	api.GET("/progress/:date", h.getProgressDay)
	api.POST("/reset", h.reset)

	// Browsers can't set headers on WebSocket upgrades; the token rides in
	// the query string instead.
	router.GET("/ws/flow", h.authMiddleware(), h.streamFlow)
}
