package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/naiveform/naiveform-backend/logger"
	"github.com/naiveform/naiveform-backend/middleware"
	"github.com/naiveform/naiveform-backend/services"
	"github.com/naiveform/naiveform-backend/types"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	return r
}

type mockSubmissionService struct {
	mock.Mock
}

func (m *mockSubmissionService) SubmitPairs(ctx context.Context, formRef, contentType string, body []byte) (*services.SubmitResult, error) {
	args := m.Called(ctx, formRef, contentType, body)
	if result := args.Get(0); result != nil {
		return result.(*services.SubmitResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubmissionService) SubmitPairsByID(ctx context.Context, formID, contentType string, body []byte) (*services.SubmitResult, error) {
	args := m.Called(ctx, formID, contentType, body)
	if result := args.Get(0); result != nil {
		return result.(*services.SubmitResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubmissionService) SubmitValues(ctx context.Context, formRef string, body []byte) (*services.SubmitResult, error) {
	args := m.Called(ctx, formRef, body)
	if result := args.Get(0); result != nil {
		return result.(*services.SubmitResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockFormService struct {
	mock.Mock
}

func (m *mockFormService) CreateForm(ctx context.Context, userID string, req *types.FormCreate) (*types.Form, error) {
	args := m.Called(ctx, userID, req)
	if form := args.Get(0); form != nil {
		return form.(*types.Form), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFormService) GetForm(ctx context.Context, userID, formID string) (*types.Form, error) {
	args := m.Called(ctx, userID, formID)
	if form := args.Get(0); form != nil {
		return form.(*types.Form), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFormService) UpdateForm(ctx context.Context, userID, formID string, req *types.FormUpdate) (*types.Form, error) {
	args := m.Called(ctx, userID, formID, req)
	if form := args.Get(0); form != nil {
		return form.(*types.Form), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFormService) ListForms(ctx context.Context, userID string, archivedOnly bool) ([]types.Form, error) {
	args := m.Called(ctx, userID, archivedOnly)
	if forms := args.Get(0); forms != nil {
		return forms.([]types.Form), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockResponseStore struct {
	mock.Mock
}

func (m *mockResponseStore) Create(ctx context.Context, response *types.Response) error {
	return m.Called(ctx, response).Error(0)
}

func (m *mockResponseStore) GetByID(ctx context.Context, id string) (*types.Response, error) {
	args := m.Called(ctx, id)
	if resp := args.Get(0); resp != nil {
		return resp.(*types.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResponseStore) ListByForm(ctx context.Context, formID string) ([]types.Response, error) {
	args := m.Called(ctx, formID)
	if responses := args.Get(0); responses != nil {
		return responses.([]types.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockWebhookLogStore struct {
	mock.Mock
}

func (m *mockWebhookLogStore) Create(ctx context.Context, log *types.WebhookLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *mockWebhookLogStore) ListByForm(ctx context.Context, formID string, limit int) ([]types.WebhookLog, error) {
	args := m.Called(ctx, formID, limit)
	if logs := args.Get(0); logs != nil {
		return logs.([]types.WebhookLog), args.Error(1)
	}
	return nil, args.Error(1)
}
