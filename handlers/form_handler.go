package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/naiveform/naiveform-backend/errors"
	"github.com/naiveform/naiveform-backend/internal/embed"
	"github.com/naiveform/naiveform-backend/types"
)

// FormHandler handles the owner-facing form management endpoints. The owner
// identity arrives as an X-User-ID header set by the auth proxy in front of
// this service.
type FormHandler struct {
	formService FormServiceInterface
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(formService FormServiceInterface) *FormHandler {
	return &FormHandler{formService: formService}
}

// requireUserID extracts the owner identity or rejects the request.
func requireUserID(c *gin.Context) (string, bool) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		_ = c.Error(apperrors.ValidationFailed("Missing X-User-ID header", ""))
		return "", false
	}
	return userID, true
}

func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request payload", err.Error()))
		return false
	}
	return true
}

// CreateForm handles POST /v1/forms.
func (h *FormHandler) CreateForm(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req types.FormCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	form, err := h.formService.CreateForm(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, form)
}

// GetForm handles GET /v1/forms/:id.
func (h *FormHandler) GetForm(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	form, err := h.formService.GetForm(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// UpdateForm handles PATCH /v1/forms/:id.
func (h *FormHandler) UpdateForm(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req types.FormUpdate
	if !bindJSONOrError(c, &req) {
		return
	}

	form, err := h.formService.UpdateForm(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// ListForms handles GET /v1/forms. ?archived=true lists archived forms instead
// of active ones.
func (h *FormHandler) ListForms(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	forms, err := h.formService.ListForms(c.Request.Context(), userID, c.Query("archived") == "true")
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"forms": forms})
}

// GetEmbed handles GET /v1/forms/:id/embed, returning the headless HTML
// snippet pointed at this service's html-action endpoint.
func (h *FormHandler) GetEmbed(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	form, err := h.formService.GetForm(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}
	if forwarded := c.GetHeader("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	actionURL := fmt.Sprintf("%s://%s/html-action/%s", scheme, c.Request.Host, form.ID)

	c.JSON(http.StatusOK, gin.H{
		"formId": form.ID,
		"html":   embed.BuildSnippet(form.Questions, actionURL),
	})
}
