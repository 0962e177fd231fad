package prefs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"outreach-backend/internal/shared/server/middleware"
	"outreach-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the preference store.
type Handler struct {
	Store *Store
}

// NewHandler constructs a Handler.
func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches preference routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/prefs/theme", h.getTheme)
	rg.PUT("/prefs/theme", h.putTheme)
}

func (h *Handler) getTheme(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	respond.OK(c, gin.H{"theme": h.Store.GetTheme(c.Request.Context(), userID)})
}

type putThemeRequest struct {
	Theme string `json:"theme"`
}

func (h *Handler) putTheme(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req putThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	theme, err := ParseTheme(req.Theme)
	if err != nil {
		if errors.Is(err, ErrInvalidTheme) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to parse theme", nil)
		return
	}

	if err := h.Store.SetTheme(c.Request.Context(), userID, theme); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save theme", nil)
		return
	}
	respond.OK(c, gin.H{"theme": theme})
}
