package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/naiveform/naiveform-backend/errors"
	"github.com/naiveform/naiveform-backend/logger"
	"github.com/naiveform/naiveform-backend/store"
	"github.com/naiveform/naiveform-backend/types"
	"go.uber.org/zap"
)

// FormService implements the form management surface: create, read, update,
// list and archive, with ownership enforced on every mutation.
type FormService struct {
	formStore store.FormStore
	logger    *zap.SugaredLogger
}

// NewFormService creates a form management service.
func NewFormService(formStore store.FormStore) *FormService {
	return &FormService{
		formStore: formStore,
		logger:    logger.GetLogger().Named("form-service"),
	}
}

// CreateForm validates and persists a new form owned by userID.
func (s *FormService) CreateForm(ctx context.Context, userID string, req *types.FormCreate) (*types.Form, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.ValidationFailed("Form title is required", "")
	}
	if err := validateQuestions(req.Questions); err != nil {
		return nil, err
	}
	if err := validateSlug(req.Slug); err != nil {
		return nil, err
	}

	form := &types.Form{
		UserID:      userID,
		Slug:        strings.TrimSpace(req.Slug),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Questions:   req.Questions,
		Settings:    req.Settings,
	}
	if form.Questions == nil {
		form.Questions = []types.Question{}
	}

	if err := s.formStore.Create(ctx, form); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Slug is already in use", form.Slug)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	s.logger.Infow("Form created", "formId", form.ID, "userId", userID)
	return form, nil
}

// GetForm loads a form and verifies the caller owns it.
func (s *FormService) GetForm(ctx context.Context, userID, formID string) (*types.Form, error) {
	form, err := s.formStore.GetByID(ctx, formID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("Form", formID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if form.UserID != userID {
		return nil, apperrors.Forbidden("Not authorized to access this form", "")
	}
	return form, nil
}

// UpdateForm applies a partial update to a form the caller owns. Nil request
// fields are left unchanged.
func (s *FormService) UpdateForm(ctx context.Context, userID, formID string, req *types.FormUpdate) (*types.Form, error) {
	form, err := s.GetForm(ctx, userID, formID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.ValidationFailed("Form title cannot be empty", "")
		}
		form.Title = title
	}
	if req.Description != nil {
		form.Description = strings.TrimSpace(*req.Description)
	}
	if req.Slug != nil {
		slug := strings.TrimSpace(*req.Slug)
		if err := validateSlug(slug); err != nil {
			return nil, err
		}
		form.Slug = slug
	}
	if req.Questions != nil {
		if err := validateQuestions(req.Questions); err != nil {
			return nil, err
		}
		form.Questions = req.Questions
	}
	if req.Settings != nil {
		form.Settings = req.Settings
	}
	if req.IsClosed != nil {
		form.IsClosed = *req.IsClosed
	}
	if req.Archived != nil {
		form.Archived = *req.Archived
	}

	if err := s.formStore.Update(ctx, form); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Slug is already in use", form.Slug)
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Form", formID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	s.logger.Infow("Form updated", "formId", form.ID, "userId", userID)
	return form, nil
}

// ListForms returns the caller's forms, active or archived.
func (s *FormService) ListForms(ctx context.Context, userID string, archivedOnly bool) ([]types.Form, error) {
	forms, err := s.formStore.ListByUser(ctx, userID, archivedOnly)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return forms, nil
}

// validateQuestions checks every question for a usable id, title and type.
func validateQuestions(questions []types.Question) error {
	seen := make(map[string]struct{}, len(questions))
	for i, q := range questions {
		if strings.TrimSpace(q.ID) == "" {
			return apperrors.ValidationFailed(
				fmt.Sprintf("Question %d is missing an id", i+1), "")
		}
		if _, dup := seen[q.ID]; dup {
			return apperrors.ValidationFailed(
				fmt.Sprintf("Duplicate question id: %s", q.ID), "")
		}
		seen[q.ID] = struct{}{}
		if strings.TrimSpace(q.Title) == "" {
			return apperrors.ValidationFailed(
				fmt.Sprintf("Question %s is missing a title", q.ID), "")
		}
		if !types.ValidQuestionType(q.Type) {
			return apperrors.ValidationFailed(
				fmt.Sprintf("Question %s has unsupported type: %s", q.ID, q.Type), "")
		}
	}
	return nil
}

// validateSlug rejects slugs that would collide with the routing namespace.
// An empty slug is valid: the form is then only reachable by id.
func validateSlug(slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil
	}
	for _, r := range slug {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' {
			continue
		}
		return apperrors.ValidationFailed(
			"Slug may only contain lowercase letters, digits and hyphens", slug)
	}
	return nil
}
