package forms

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvwizard-backend/internal/shared/metrics"
	"cvwizard-backend/internal/shared/server/middleware"
	"cvwizard-backend/internal/shared/server/respond"
)

const maxFormSize = 1 << 20 // 1MB of form-encoded input is plenty

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches wizard routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/wizard/state", h.state)
	rg.POST("/wizard/steps/:step", h.submitStep)
	rg.POST("/wizard/reset", h.reset)
}

func (h *Handler) state(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	state, err := h.Svc.State(c.Request.Context(), sessionID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load form state", nil)
		return
	}

	respond.OK(c, toStateResponse(state))
}

func (h *Handler) submitStep(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	step, ok := ParseStep(c.Param("step"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "unknown_step", "unknown wizard step", nil)
		return
	}
	c.Set("wizardStep", string(step))

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFormSize)
	if err := c.Request.ParseForm(); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to parse form input", nil)
		return
	}

	next, fieldErrs, err := h.Svc.SubmitStep(c.Request.Context(), sessionID, step, c.Request.PostForm)
	if err != nil {
		switch {
		case errors.Is(err, ErrStepNotReached):
			respond.Error(c, http.StatusConflict, "step_not_reached", err.Error(), nil)
		case errors.Is(err, ErrInvalidStep):
			respond.Error(c, http.StatusNotFound, "unknown_step", "unknown wizard step", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit step", nil)
		}
		return
	}
	if fieldErrs.Any() {
		respond.Error(c, http.StatusBadRequest, "validation_error", "step input failed validation", fieldErrs)
		return
	}

	metrics.IncStepSubmitted()
	respond.OK(c, StepResult{NextStep: next})
}

func (h *Handler) reset(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	if err := h.Svc.Reset(c.Request.Context(), sessionID); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to reset form state", nil)
		return
	}

	respond.OK(c, gin.H{"ok": true})
}
