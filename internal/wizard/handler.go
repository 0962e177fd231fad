package wizard

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"outreach-backend/internal/llm"
	"outreach-backend/internal/outreach"
	"outreach-backend/internal/resumes"
	"outreach-backend/internal/shared/server/middleware"
	"outreach-backend/internal/shared/server/respond"
)

// maxResumeBytes caps resume uploads at 10 MB.
const maxResumeBytes = 10 << 20

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
	rg.POST("/wizard/sessions", h.create)
	rg.GET("/wizard/sessions/:id", h.get)
	rg.POST("/wizard/sessions/:id/resume", h.uploadResume)
	rg.POST("/wizard/sessions/:id/discover", h.discover)
	rg.POST("/wizard/sessions/:id/selection", h.toggleSelection)
	rg.POST("/wizard/sessions/:id/draft", h.draft)
	rg.PUT("/wizard/sessions/:id/drafts/:contactId", h.editDraft)
	rg.POST("/wizard/sessions/:id/dispatch", h.dispatch)
	rg.POST("/wizard/sessions/:id/back", h.back)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	sess, err := h.Svc.Create(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Set("sessionId", sess.ID)
	respondSession(c, http.StatusCreated, sess)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := c.Param("id")
	c.Set("sessionId", sessionID)

	sess, err := h.Svc.Get(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSession(c, http.StatusOK, sess)
}

func (h *Handler) uploadResume(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := c.Param("id")
	c.Set("sessionId", sessionID)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxResumeBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_upload", "expected multipart field 'file'", nil)
		return
	}
	defer file.Close()

	sess, err := h.Svc.UploadResume(c.Request.Context(), userID, sessionID, header.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSession(c, http.StatusOK, sess)
}

func (h *Handler) discover(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := c.Param("id")
	c.Set("sessionId", sessionID)

	var req struct {
		University string `json:"university"`
		Department string `json:"department"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "malformed JSON body", nil)
		return
	}

	sess, err := h.Svc.Discover(c.Request.Context(), userID, sessionID, req.University, req.Department)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSession(c, http.StatusOK, sess)
}

func (h *Handler) toggleSelection(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := c.Param("id")
	c.Set("sessionId", sessionID)

	var req struct {
		ContactID string `json:"contactId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ContactID == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "contactId is required", nil)
		return
	}

	sess, err := h.Svc.ToggleSelect(c.Request.Context(), userID, sessionID, req.ContactID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSession(c, http.StatusOK, sess)
}

func (h *Handler) draft(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := c.Param("id")
	c.Set("sessionId", sessionID)

	var req struct {
		Purpose string `json:"purpose"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "malformed JSON body", nil)
		return
	}

	sess, err := h.Svc.Draft(c.Request.Context(), userID, sessionID, req.Purpose)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSession(c, http.StatusOK, sess)
}

func (h *Handler) editDraft(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := c.Param("id")
	c.Set("sessionId", sessionID)

	var req struct {
		Body string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "malformed JSON body", nil)
		return
	}

	sess, err := h.Svc.EditDraft(c.Request.Context(), userID, sessionID, c.Param("contactId"), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSession(c, http.StatusOK, sess)
}

func (h *Handler) dispatch(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := c.Param("id")
	c.Set("sessionId", sessionID)

	// The server cannot open a mail client in the user's browser; the
	// dispatcher reports each composition URI and the frontend opens them.
	noop := outreach.LauncherFunc(func(ctx context.Context, uri string) error {
		return nil
	})

	sess, launched, err := h.Svc.Dispatch(c.Request.Context(), userID, sessionID, noop)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Set("wizardStep", string(sess.Step))
	respond.OK(c, gin.H{
		"session":  sess,
		"launched": launched,
	})
}

// respondSession records the resulting step for request logging and writes
// the session payload.
func respondSession(c *gin.Context, status int, sess Session) {
	c.Set("wizardStep", string(sess.Step))
	respond.JSON(c, status, sess)
}

func (h *Handler) back(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := c.Param("id")
	c.Set("sessionId", sessionID)

	sess, err := h.Svc.GoBack(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSession(c, http.StatusOK, sess)
}

// respondError maps domain errors to the standard error envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
	case errors.Is(err, ErrBusy):
		respond.Error(c, http.StatusConflict, "session_busy", "another action is in progress for this session", nil)
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
	case errors.Is(err, ErrNoEmail):
		respond.Error(c, http.StatusBadRequest, "no_email", "contact has no email address", nil)
	case errors.Is(err, ErrAlreadySent):
		respond.Error(c, http.StatusConflict, "already_sent", "draft was already sent", nil)
	case errors.Is(err, resumes.ErrNotPDF):
		respond.Error(c, http.StatusBadRequest, "not_pdf", "only PDF resumes are supported", nil)
	case errors.Is(err, resumes.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid upload", nil)
	case errors.Is(err, llm.ErrParse), errors.Is(err, llm.ErrSchema):
		respond.Error(c, http.StatusBadGateway, "ai_translation_error", "AI response could not be translated", nil)
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusBadGateway, "ai_not_configured", "no AI provider is configured", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected error", nil)
	}
}
