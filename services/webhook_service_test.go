package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/naiveform/naiveform-backend/config"
	"github.com/naiveform/naiveform-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func webhookFixtures(urls ...string) (*types.Form, *types.Response) {
	form := testForm()
	form.Settings = &types.FormSettings{Webhooks: urls}
	response := &types.Response{
		ID:        "resp-1",
		FormID:    testFormID,
		Answers:   map[string]any{"Your name": "Ada"},
		CreatedAt: time.UnixMilli(1_700_000_000_000),
	}
	return form, response
}

func newTestWebhookService(form *types.Form, response *types.Response, logStore *mockWebhookLogStore, timeout time.Duration) *WebhookService {
	formStore := new(mockFormStore)
	responseStore := new(mockResponseStore)
	formStore.On("GetByID", mock.Anything, form.ID).Return(form, nil)
	responseStore.On("GetByID", mock.Anything, response.ID).Return(response, nil)
	return NewWebhookService(formStore, responseStore, logStore, nil, timeout)
}

func capturedLogs(logStore *mockWebhookLogStore) []*types.WebhookLog {
	var logs []*types.WebhookLog
	for _, call := range logStore.Calls {
		if call.Method == "Create" {
			logs = append(logs, call.Arguments.Get(1).(*types.WebhookLog))
		}
	}
	return logs
}

func TestWebhookDeliverSuccess(t *testing.T) {
	var (
		mu       sync.Mutex
		received types.WebhookPayload
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		mu.Lock()
		defer mu.Unlock()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	form, response := webhookFixtures(server.URL)
	logStore := new(mockWebhookLogStore)
	logStore.On("Create", mock.Anything, mock.AnythingOfType("*types.WebhookLog")).Return(nil)

	svc := newTestWebhookService(form, response, logStore, 5*time.Second)
	require.NoError(t, svc.deliver(context.Background(), form.ID, response.ID))

	mu.Lock()
	assert.Equal(t, testFormID, received.FormID)
	assert.Equal(t, "Feedback", received.FormTitle)
	assert.Equal(t, "resp-1", received.ResponseID)
	assert.Equal(t, int64(1_700_000_000_000), received.SubmittedAt)
	assert.Equal(t, map[string]any{"Your name": "Ada"}, received.Answers)
	mu.Unlock()

	logs := capturedLogs(logStore)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].Success)
	require.NotNil(t, logs[0].StatusCode)
	assert.Equal(t, http.StatusOK, *logs[0].StatusCode)
	assert.Equal(t, server.URL, logs[0].URL)
	assert.Empty(t, logs[0].ErrorMessage)
}

func TestWebhookDeliverNon2xxIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	form, response := webhookFixtures(server.URL)
	logStore := new(mockWebhookLogStore)
	logStore.On("Create", mock.Anything, mock.AnythingOfType("*types.WebhookLog")).Return(nil)

	svc := newTestWebhookService(form, response, logStore, 5*time.Second)
	require.NoError(t, svc.deliver(context.Background(), form.ID, response.ID))

	logs := capturedLogs(logStore)
	require.Len(t, logs, 1)
	assert.False(t, logs[0].Success)
	require.NotNil(t, logs[0].StatusCode)
	assert.Equal(t, http.StatusInternalServerError, *logs[0].StatusCode)
	assert.Contains(t, logs[0].ErrorMessage, "500")
}

func TestWebhookDeliverConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	form, response := webhookFixtures(url)
	logStore := new(mockWebhookLogStore)
	logStore.On("Create", mock.Anything, mock.AnythingOfType("*types.WebhookLog")).Return(nil)

	svc := newTestWebhookService(form, response, logStore, time.Second)
	require.NoError(t, svc.deliver(context.Background(), form.ID, response.ID))

	logs := capturedLogs(logStore)
	require.Len(t, logs, 1)
	assert.False(t, logs[0].Success)
	assert.Nil(t, logs[0].StatusCode)
	assert.NotEmpty(t, logs[0].ErrorMessage)
}

func TestWebhookDeliverFansOutToAllURLs(t *testing.T) {
	var hits sync.Map
	handler := func(key string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			hits.Store(key, true)
			w.WriteHeader(http.StatusNoContent)
		}
	}
	serverA := httptest.NewServer(handler("a"))
	defer serverA.Close()
	serverB := httptest.NewServer(handler("b"))
	defer serverB.Close()

	form, response := webhookFixtures(serverA.URL, serverB.URL)
	logStore := new(mockWebhookLogStore)
	logStore.On("Create", mock.Anything, mock.AnythingOfType("*types.WebhookLog")).Return(nil)

	svc := newTestWebhookService(form, response, logStore, 5*time.Second)
	require.NoError(t, svc.deliver(context.Background(), form.ID, response.ID))

	_, hitA := hits.Load("a")
	_, hitB := hits.Load("b")
	assert.True(t, hitA)
	assert.True(t, hitB)
	assert.Len(t, capturedLogs(logStore), 2)
}

func TestWebhookDeliverSlowEndpointTimesOut(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	form, response := webhookFixtures(server.URL)
	logStore := new(mockWebhookLogStore)
	logStore.On("Create", mock.Anything, mock.AnythingOfType("*types.WebhookLog")).Return(nil)

	svc := newTestWebhookService(form, response, logStore, 50*time.Millisecond)
	require.NoError(t, svc.deliver(context.Background(), form.ID, response.ID))

	logs := capturedLogs(logStore)
	require.Len(t, logs, 1)
	assert.False(t, logs[0].Success)
	assert.Nil(t, logs[0].StatusCode)
	assert.NotEmpty(t, logs[0].ErrorMessage)
}

func TestWebhookDeliverLogInsertFailureDoesNotFailJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	form, response := webhookFixtures(server.URL)
	logStore := new(mockWebhookLogStore)
	logStore.On("Create", mock.Anything, mock.AnythingOfType("*types.WebhookLog")).
		Return(assert.AnError)

	svc := newTestWebhookService(form, response, logStore, 5*time.Second)
	assert.NoError(t, svc.deliver(context.Background(), form.ID, response.ID))
}

func TestWebhookEnqueueRunsThroughPool(t *testing.T) {
	delivered := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	form, response := webhookFixtures(server.URL)
	formStore := new(mockFormStore)
	responseStore := new(mockResponseStore)
	formStore.On("GetByID", mock.Anything, form.ID).Return(form, nil)
	responseStore.On("GetByID", mock.Anything, response.ID).Return(response, nil)
	logStore := new(mockWebhookLogStore)
	logStore.On("Create", mock.Anything, mock.AnythingOfType("*types.WebhookLog")).
		Run(func(mock.Arguments) { close(delivered) }).
		Return(nil)

	resetWorkerPoolMetricsForTesting()
	pool := NewWorkerPool(config.WorkerPoolConfig{MaxWorkers: 1, QueueSize: 10})
	pool.Start()

	svc := NewWebhookService(formStore, responseStore, logStore, pool, 5*time.Second)
	require.True(t, svc.Enqueue(form.ID, response.ID))

	select {
	case <-delivered:
	case <-time.After(5 * time.Second):
		t.Fatal("webhook was not delivered through the pool")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, pool.Shutdown(ctx))
}
