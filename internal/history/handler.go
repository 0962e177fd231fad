package history

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"outreach-backend/internal/shared/server/middleware"
	"outreach-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.list)
	rg.DELETE("/history", h.clear)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	recs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list history", nil)
		return
	}
	respond.OK(c, recs)
}

func (h *Handler) clear(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	err := h.Svc.Clear(c.Request.Context(), userID, confirmed)
	if err != nil {
		switch {
		case errors.Is(err, ErrConfirmationRequired):
			respond.Error(c, http.StatusBadRequest, "confirmation_required", "pass confirm=true to clear history", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to clear history", nil)
		}
		return
	}
	respond.OK(c, gin.H{"cleared": true})
}
