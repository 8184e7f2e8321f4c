package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/naiveform/naiveform-backend/errors"
	"github.com/naiveform/naiveform-backend/store"
)

// ResponseHandler exposes collected responses and webhook delivery logs to the
// form owner.
type ResponseHandler struct {
	formService   FormServiceInterface
	responseStore store.ResponseStore
	logStore      store.WebhookLogStore
}

// NewResponseHandler creates a new ResponseHandler.
func NewResponseHandler(formService FormServiceInterface, responseStore store.ResponseStore, logStore store.WebhookLogStore) *ResponseHandler {
	return &ResponseHandler{
		formService:   formService,
		responseStore: responseStore,
		logStore:      logStore,
	}
}

// ListResponses handles GET /v1/forms/:id/responses. Ownership is checked by
// loading the form through the form service first.
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	form, err := h.formService.GetForm(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	responses, err := h.responseStore.ListByForm(c.Request.Context(), form.ID)
	if err != nil {
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"responses": responses})
}

// ListWebhookLogs handles GET /v1/forms/:id/webhook-logs?limit=.
func (h *ResponseHandler) ListWebhookLogs(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	form, err := h.formService.GetForm(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	logs, err := h.logStore.ListByForm(c.Request.Context(), form.ID, limit)
	if err != nil {
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
