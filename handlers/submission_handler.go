package handlers

import (
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/naiveform/naiveform-backend/errors"
	"github.com/naiveform/naiveform-backend/logger"
	"github.com/naiveform/naiveform-backend/services"
	"github.com/naiveform/naiveform-backend/types"
)

// maxBodySize bounds how much of a submission body is read.
const maxBodySize = 10 << 20

// SubmissionHandler handles the anonymous submission endpoints.
type SubmissionHandler struct {
	submissionService SubmissionServiceInterface
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService SubmissionServiceInterface) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// Submit handles POST /f/:formIdOrSlug. JSON bodies take the strict
// programmatic path; everything else is treated as a headless HTML form post.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	formRef := c.Param("formIdOrSlug")
	contentType := c.GetHeader("Content-Type")

	if strings.Contains(contentType, "application/json") {
		result, err := h.submissionService.SubmitValues(c.Request.Context(), formRef, body)
		if err != nil {
			_ = c.Error(err)
			return
		}
		h.respondStrict(c, result)
		return
	}

	result, err := h.submissionService.SubmitPairs(c.Request.Context(), formRef, contentType, body)
	if err != nil {
		respondHeadlessError(c, err)
		return
	}
	h.respondHeadless(c, result)
}

// SubmitHTMLAction handles POST /html-action/:formId, the endpoint the embed
// snippet points at. Always headless; the form is addressed by id only.
func (h *SubmissionHandler) SubmitHTMLAction(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	result, err := h.submissionService.SubmitPairsByID(
		c.Request.Context(), c.Param("formId"), c.GetHeader("Content-Type"), body)
	if err != nil {
		respondHeadlessError(c, err)
		return
	}
	h.respondHeadless(c, result)
}

func (h *SubmissionHandler) readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize))
	if err != nil {
		logger.GetLogger().Warnw("Failed to read submission body", "error", err)
		_ = c.Error(apperrors.MalformedBody(err))
		return nil, false
	}
	return body, true
}

func (h *SubmissionHandler) respondStrict(c *gin.Context, result *services.SubmitResult) {
	if result.RedirectURL != "" {
		c.Redirect(http.StatusFound, result.RedirectURL)
		return
	}
	c.JSON(http.StatusOK, types.SubmitAccepted{
		Message:    "Response saved successfully",
		ResponseID: result.ResponseID,
	})
}

func (h *SubmissionHandler) respondHeadless(c *gin.Context, result *services.SubmitResult) {
	if result.RedirectURL != "" {
		c.Redirect(http.StatusFound, result.RedirectURL)
		return
	}
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
		return
	}

	message := result.ConfirmationMessage
	if message == "" {
		message = "Thanks! Your response has been recorded."
	}
	page := fmt.Sprintf(
		"<!doctype html><html><head><meta charset=\"utf-8\"><title>Thank you</title></head>"+
			"<body><p>%s</p></body></html>",
		html.EscapeString(message))
	c.Data(http.StatusCreated, "text/html; charset=utf-8", []byte(page))
}

// respondHeadlessError renders an error as plain text so browsers showing the
// raw response stay readable. The JSON error middleware never sees these.
func respondHeadlessError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		logger.LogHTTPError(c, err, appErr.GetHTTPStatus(), "Headless submission rejected")
		c.String(appErr.GetHTTPStatus(), appErr.Message)
		c.Abort()
		return
	}
	logger.LogHTTPError(c, err, http.StatusInternalServerError, "Headless submission failed")
	c.String(http.StatusInternalServerError, "Something went wrong")
	c.Abort()
}
