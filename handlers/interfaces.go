package handlers

import (
	"context"

	"github.com/naiveform/naiveform-backend/services"
	"github.com/naiveform/naiveform-backend/types"
)

// SubmissionServiceInterface defines the submission pipeline methods needed by handlers.
type SubmissionServiceInterface interface {
	SubmitPairs(ctx context.Context, formRef, contentType string, body []byte) (*services.SubmitResult, error)
	SubmitPairsByID(ctx context.Context, formID, contentType string, body []byte) (*services.SubmitResult, error)
	SubmitValues(ctx context.Context, formRef string, body []byte) (*services.SubmitResult, error)
}

// FormServiceInterface defines the form management methods needed by handlers.
type FormServiceInterface interface {
	CreateForm(ctx context.Context, userID string, req *types.FormCreate) (*types.Form, error)
	GetForm(ctx context.Context, userID, formID string) (*types.Form, error)
	UpdateForm(ctx context.Context, userID, formID string, req *types.FormUpdate) (*types.Form, error)
	ListForms(ctx context.Context, userID string, archivedOnly bool) ([]types.Form, error)
}
