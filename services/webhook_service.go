package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/naiveform/naiveform-backend/logger"
	"github.com/naiveform/naiveform-backend/store"
	"github.com/naiveform/naiveform-backend/types"
	"go.uber.org/zap"
)

// Dispatcher enqueues webhook delivery for a persisted response.
type Dispatcher interface {
	Enqueue(formID, responseID string) bool
}

// WebhookService delivers submission notifications to the webhook URLs
// configured on a form. Deliveries run asynchronously on a shared worker
// pool so a slow endpoint never delays the submitting client.
type WebhookService struct {
	formStore     store.FormStore
	responseStore store.ResponseStore
	logStore      store.WebhookLogStore
	pool          *WorkerPool
	client        *http.Client
	timeout       time.Duration
	logger        *zap.SugaredLogger
}

// NewWebhookService creates a webhook dispatch service backed by the given
// worker pool. timeout bounds each individual delivery attempt.
func NewWebhookService(
	formStore store.FormStore,
	responseStore store.ResponseStore,
	logStore store.WebhookLogStore,
	pool *WorkerPool,
	timeout time.Duration,
) *WebhookService {
	return &WebhookService{
		formStore:     formStore,
		responseStore: responseStore,
		logStore:      logStore,
		pool:          pool,
		client:        &http.Client{Timeout: timeout},
		timeout:       timeout,
		logger:        logger.GetLogger().Named("webhook-service"),
	}
}

// Enqueue schedules delivery of the given response to every webhook URL on
// its form. Returns false if the dispatch queue is full and the job was
// dropped; the response itself is already persisted either way.
func (s *WebhookService) Enqueue(formID, responseID string) bool {
	return s.pool.Submit(Job{
		Name: fmt.Sprintf("webhook-dispatch:%s", responseID),
		Execute: func(ctx context.Context) error {
			return s.deliver(ctx, formID, responseID)
		},
	})
}

// deliver re-reads the form and response and posts the payload to every
// configured URL concurrently. Each attempt gets its own timeout and its own
// log row; one failing endpoint does not affect the others.
func (s *WebhookService) deliver(ctx context.Context, formID, responseID string) error {
	form, err := s.formStore.GetByID(ctx, formID)
	if err != nil {
		return fmt.Errorf("load form %s: %w", formID, err)
	}
	resp, err := s.responseStore.GetByID(ctx, responseID)
	if err != nil {
		return fmt.Errorf("load response %s: %w", responseID, err)
	}

	urls := form.WebhookURLs()
	if len(urls) == 0 {
		return nil
	}

	payload := types.WebhookPayload{
		FormID:      form.ID,
		FormTitle:   form.Title,
		ResponseID:  resp.ID,
		SubmittedAt: resp.CreatedAt.UnixMilli(),
		Answers:     resp.Answers,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	var wg sync.WaitGroup
	for _, url := range urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			s.postOne(ctx, form.ID, resp.ID, url, body)
		}(url)
	}
	wg.Wait()
	return nil
}

// postOne performs a single webhook POST and records the outcome.
func (s *WebhookService) postOne(ctx context.Context, formID, responseID, url string, body []byte) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var statusCode *int
	success := false
	errMsg := ""

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		errMsg = err.Error()
	} else {
		req.Header.Set("Content-Type", "application/json")
		resp, err := s.client.Do(req)
		if err != nil {
			errMsg = err.Error()
		} else {
			io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			code := resp.StatusCode
			statusCode = &code
			success = code >= 200 && code < 300
			if !success {
				errMsg = fmt.Sprintf("endpoint returned status %d", code)
			}
		}
	}

	if success {
		s.logger.Infow("Webhook delivered",
			"formId", formID,
			"responseId", responseID,
			"url", logger.MaskWebhookURL(url))
	} else {
		s.logger.Warnw("Webhook delivery failed",
			"formId", formID,
			"responseId", responseID,
			"url", logger.MaskWebhookURL(url),
			"error", errMsg)
	}

	logEntry := &types.WebhookLog{
		FormID:       formID,
		ResponseID:   responseID,
		URL:          url,
		Success:      success,
		StatusCode:   statusCode,
		ErrorMessage: errMsg,
	}
	if err := s.logStore.Create(ctx, logEntry); err != nil {
		s.logger.Errorw("Failed to record webhook delivery log",
			"formId", formID,
			"responseId", responseID,
			"error", err)
	}
}
