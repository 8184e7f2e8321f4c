package services

import (
	"context"

	"github.com/naiveform/naiveform-backend/logger"
	"github.com/naiveform/naiveform-backend/types"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.IsTest = true
}

type mockFormStore struct {
	mock.Mock
}

func (m *mockFormStore) Create(ctx context.Context, form *types.Form) error {
	return m.Called(ctx, form).Error(0)
}

func (m *mockFormStore) GetByID(ctx context.Context, id string) (*types.Form, error) {
	args := m.Called(ctx, id)
	if form := args.Get(0); form != nil {
		return form.(*types.Form), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFormStore) GetBySlug(ctx context.Context, slug string) (*types.Form, error) {
	args := m.Called(ctx, slug)
	if form := args.Get(0); form != nil {
		return form.(*types.Form), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFormStore) Update(ctx context.Context, form *types.Form) error {
	return m.Called(ctx, form).Error(0)
}

func (m *mockFormStore) ListByUser(ctx context.Context, userID string, archivedOnly bool) ([]types.Form, error) {
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

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Enqueue(formID, responseID string) bool {
	return m.Called(formID, responseID).Bool(0)
}
