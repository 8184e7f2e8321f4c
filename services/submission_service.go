package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/naiveform/naiveform-backend/errors"
	"github.com/naiveform/naiveform-backend/internal/submission"
	"github.com/naiveform/naiveform-backend/logger"
	"github.com/naiveform/naiveform-backend/store"
	"github.com/naiveform/naiveform-backend/types"
	"go.uber.org/zap"
)

// SubmitResult is what the handler needs to answer an accepted submission.
type SubmitResult struct {
	ResponseID          string
	RedirectURL         string
	ConfirmationMessage string
}

// SubmissionService orchestrates the submission pipeline: form lookup,
// lifecycle checks, field resolution, answer coercion, persistence and
// webhook dispatch.
type SubmissionService struct {
	formStore     store.FormStore
	responseStore store.ResponseStore
	dispatcher    Dispatcher
	now           func() time.Time
	logger        *zap.SugaredLogger
}

// NewSubmissionService wires the pipeline together. dispatcher may be nil in
// tests that do not exercise webhook delivery.
func NewSubmissionService(
	formStore store.FormStore,
	responseStore store.ResponseStore,
	dispatcher Dispatcher,
) *SubmissionService {
	return &SubmissionService{
		formStore:     formStore,
		responseStore: responseStore,
		dispatcher:    dispatcher,
		now:           time.Now,
		logger:        logger.GetLogger().Named("submission-service"),
	}
}

// SubmitPairs runs the lenient (headless HTML) path: the raw body is decoded
// into ordered pairs, unknown field names pass through, and repeated names
// collapse into arrays.
func (s *SubmissionService) SubmitPairs(ctx context.Context, formRef, contentType string, body []byte) (*SubmitResult, error) {
	form, err := s.lookupOpenForm(ctx, formRef)
	if err != nil {
		return nil, err
	}

	pairs, err := submission.DecodePairs(contentType, body)
	if err != nil {
		return nil, err
	}

	resolver := submission.NewResolver(form.Questions)
	resolved := resolver.ResolvePairs(pairs)
	coerced := submission.CoerceAnswers(resolver, resolved)

	return s.persistAndDispatch(ctx, form, resolver, coerced)
}

// SubmitPairsByID is the html-action variant of SubmitPairs: the form is
// addressed by id only, slugs are not consulted.
func (s *SubmissionService) SubmitPairsByID(ctx context.Context, formID, contentType string, body []byte) (*SubmitResult, error) {
	form, err := s.formStore.GetByID(ctx, formID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.FormNotFound(formID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if err := checkLifecycle(form, s.now()); err != nil {
		return nil, err
	}

	pairs, err := submission.DecodePairs(contentType, body)
	if err != nil {
		return nil, err
	}

	resolver := submission.NewResolver(form.Questions)
	resolved := resolver.ResolvePairs(pairs)
	coerced := submission.CoerceAnswers(resolver, resolved)

	return s.persistAndDispatch(ctx, form, resolver, coerced)
}

// SubmitValues runs the strict (programmatic JSON) path: the body must match
// the values envelope and every field name must resolve to a question.
func (s *SubmissionService) SubmitValues(ctx context.Context, formRef string, body []byte) (*SubmitResult, error) {
	form, err := s.lookupOpenForm(ctx, formRef)
	if err != nil {
		return nil, err
	}

	values, err := submission.DecodeValues(body)
	if err != nil {
		return nil, err
	}

	resolver := submission.NewResolver(form.Questions)
	resolved, err := resolver.ResolveStrict(values)
	if err != nil {
		return nil, err
	}
	coerced := submission.CoerceAnswers(resolver, resolved)

	return s.persistAndDispatch(ctx, form, resolver, coerced)
}

// lookupOpenForm resolves the id-or-slug reference and enforces the lifecycle
// checks.
func (s *SubmissionService) lookupOpenForm(ctx context.Context, formRef string) (*types.Form, error) {
	form, err := s.lookupForm(ctx, formRef)
	if err != nil {
		return nil, err
	}
	if err := checkLifecycle(form, s.now()); err != nil {
		return nil, err
	}
	return form, nil
}

// checkLifecycle enforces the lifecycle checks in order: closed, expired,
// archived. A submission at exactly closeAt is still accepted.
func checkLifecycle(form *types.Form, now time.Time) error {
	if form.IsClosed {
		return apperrors.FormClosed()
	}
	if form.Settings != nil && form.Settings.CloseAt != nil {
		if now.UnixMilli() > *form.Settings.CloseAt {
			return apperrors.FormExpired()
		}
	}
	if form.Archived {
		return apperrors.FormArchived()
	}
	return nil
}

// lookupForm tries the reference as a slug first, then as an id. Slugs take
// priority so a slug that happens to collide with someone's uuid still works.
func (s *SubmissionService) lookupForm(ctx context.Context, formRef string) (*types.Form, error) {
	form, err := s.formStore.GetBySlug(ctx, formRef)
	if err == nil {
		return form, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NewDatabaseError(err)
	}

	if _, parseErr := uuid.Parse(formRef); parseErr != nil {
		return nil, apperrors.FormNotFound(formRef)
	}
	form, err = s.formStore.GetByID(ctx, formRef)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.FormNotFound(formRef)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return form, nil
}

// persistAndDispatch re-keys the coerced answers by question title, persists
// the response, and enqueues webhook delivery when the form has any URLs.
func (s *SubmissionService) persistAndDispatch(ctx context.Context, form *types.Form, resolver *submission.Resolver, coerced map[string]any) (*SubmitResult, error) {
	answers := make(map[string]any, len(coerced))
	for id, value := range coerced {
		key := id
		if q, ok := resolver.Question(id); ok && q.Title != "" {
			key = q.Title
		}
		answers[key] = value
	}

	response := &types.Response{
		FormID:  form.ID,
		Answers: answers,
	}
	if err := s.responseStore.Create(ctx, response); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	s.logger.Infow("Response recorded",
		"formId", form.ID,
		"responseId", response.ID,
		"answerCount", len(answers))

	if s.dispatcher != nil && len(form.WebhookURLs()) > 0 {
		if !s.dispatcher.Enqueue(form.ID, response.ID) {
			s.logger.Warnw("Webhook dispatch queue full, delivery skipped",
				"formId", form.ID,
				"responseId", response.ID)
		}
	}

	return &SubmitResult{
		ResponseID:          response.ID,
		RedirectURL:         form.RedirectURL(),
		ConfirmationMessage: form.ConfirmationMessage(),
	}, nil
}
