package export

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cvwizard-backend/internal/compose"
	"cvwizard-backend/internal/forms"
	"cvwizard-backend/internal/shared/server/middleware"
	"cvwizard-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the export service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches export and download routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/export", h.export)
	rg.GET("/files/:name", h.download)
	rg.GET("/files/:name/inline", h.inline)
}

func (h *Handler) export(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)
	c.Set("exportId", uuid.NewString())

	result, err := h.Svc.Export(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotReady), errors.Is(err, forms.ErrNotFound):
			respond.Error(c, http.StatusConflict, "export_not_ready", "complete the wizard before exporting", nil)
		case errors.Is(err, compose.ErrIncompleteData):
			respond.Error(c, http.StatusConflict, "incomplete_data", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "export failed", nil)
		}
		return
	}

	respond.OK(c, result)
}

func (h *Handler) download(c *gin.Context) {
	h.serveFile(c, true)
}

func (h *Handler) inline(c *gin.Context) {
	h.serveFile(c, false)
}

// serveFile streams one of the session's generated documents. The storage key
// is rebuilt from the session so one session can never fetch another's files.
func (h *Handler) serveFile(c *gin.Context, attachment bool) {
	sessionID := middleware.SessionIDFromContext(c)
	name := filepath.Base(c.Param("name"))

	key := h.Svc.Store.SessionKey(sessionID, name)
	if !h.Svc.Store.Exists(key) {
		respond.Error(c, http.StatusNotFound, "file_not_found", "no such generated file for this session", nil)
		return
	}

	reader, err := h.Svc.Store.Open(c.Request.Context(), key)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open generated file", nil)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", contentTypeFor(name))
	if attachment {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	} else {
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	}
	c.Status(http.StatusOK)
	io.Copy(c.Writer, reader)
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
