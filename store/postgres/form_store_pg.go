// Package postgres implements the store interfaces on PostgreSQL via pgx.
package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/naiveform/naiveform-backend/store"
	"github.com/naiveform/naiveform-backend/types"
	"github.com/pkg/errors"
)

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// Ensure pgFormStore implements store.FormStore.
var _ store.FormStore = (*pgFormStore)(nil)

type pgFormStore struct {
	pool store.PgxPool
}

// NewPgFormStore creates a new PostgreSQL form store.
func NewPgFormStore(pool store.PgxPool) store.FormStore {
	return &pgFormStore{pool: pool}
}

const formColumns = `id, user_id, slug, title, description, questions, settings, is_closed, archived, created_at, updated_at`

// Create inserts a new form. The id and timestamps are assigned here when the
// caller left them zero.
func (s *pgFormStore) Create(ctx context.Context, form *types.Form) error {
	if form.ID == "" {
		form.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if form.CreatedAt.IsZero() {
		form.CreatedAt = now
	}
	form.UpdatedAt = now

	questions, settings, err := marshalFormJSON(form)
	if err != nil {
		return err
	}

	query := `INSERT INTO forms (id, user_id, slug, title, description, questions, settings, is_closed, archived, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = s.pool.Exec(ctx, query,
		form.ID,
		form.UserID,
		nullableSlug(form.Slug),
		form.Title,
		form.Description,
		questions,
		settings,
		form.IsClosed,
		form.Archived,
		form.CreatedAt,
		form.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Wrap(store.ErrDuplicate, "form slug already in use")
		}
		return errors.Wrap(err, "failed to create form")
	}
	return nil
}

// GetByID retrieves a form by its id.
func (s *pgFormStore) GetByID(ctx context.Context, id string) (*types.Form, error) {
	query := `SELECT ` + formColumns + ` FROM forms WHERE id = $1`
	return s.scanForm(s.pool.QueryRow(ctx, query, id))
}

// GetBySlug retrieves a form by its owner-chosen slug.
func (s *pgFormStore) GetBySlug(ctx context.Context, slug string) (*types.Form, error) {
	query := `SELECT ` + formColumns + ` FROM forms WHERE slug = $1`
	return s.scanForm(s.pool.QueryRow(ctx, query, slug))
}

// Update persists the full form record and bumps updated_at.
func (s *pgFormStore) Update(ctx context.Context, form *types.Form) error {
	form.UpdatedAt = time.Now().UTC()

	questions, settings, err := marshalFormJSON(form)
	if err != nil {
		return err
	}

	query := `UPDATE forms
	          SET slug = $2, title = $3, description = $4, questions = $5, settings = $6,
	              is_closed = $7, archived = $8, updated_at = $9
	          WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query,
		form.ID,
		nullableSlug(form.Slug),
		form.Title,
		form.Description,
		questions,
		settings,
		form.IsClosed,
		form.Archived,
		form.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Wrap(store.ErrDuplicate, "form slug already in use")
		}
		return errors.Wrap(err, "failed to update form")
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListByUser retrieves a user's forms, newest first. archivedOnly toggles
// between the active and archived views, matching the console's two tabs.
func (s *pgFormStore) ListByUser(ctx context.Context, userID string, archivedOnly bool) ([]types.Form, error) {
	query := `SELECT ` + formColumns + ` FROM forms WHERE user_id = $1 AND archived = $2 ORDER BY updated_at DESC`

	rows, err := s.pool.Query(ctx, query, userID, archivedOnly)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query forms by user")
	}
	defer rows.Close()

	forms := []types.Form{}
	for rows.Next() {
		form, err := s.scanFormRow(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, *form)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error during row iteration for forms")
	}
	return forms, nil
}

func (s *pgFormStore) scanForm(row pgx.Row) (*types.Form, error) {
	form, err := scanFormFrom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get form")
	}
	return form, nil
}

func (s *pgFormStore) scanFormRow(rows pgx.Rows) (*types.Form, error) {
	form, err := scanFormFrom(rows)
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan form row")
	}
	return form, nil
}

// scanFormFrom scans one form record from a row-like source and unmarshals
// the jsonb columns.
func scanFormFrom(row interface {
	Scan(dest ...any) error
}) (*types.Form, error) {
	var (
		form      types.Form
		slug      *string
		questions []byte
		settings  []byte
	)
	err := row.Scan(
		&form.ID,
		&form.UserID,
		&slug,
		&form.Title,
		&form.Description,
		&questions,
		&settings,
		&form.IsClosed,
		&form.Archived,
		&form.CreatedAt,
		&form.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if slug != nil {
		form.Slug = *slug
	}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &form.Questions); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal form questions")
		}
	}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &form.Settings); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal form settings")
		}
	}
	return &form, nil
}

func marshalFormJSON(form *types.Form) (questions []byte, settings []byte, err error) {
	if form.Questions == nil {
		form.Questions = []types.Question{}
	}
	questions, err = json.Marshal(form.Questions)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to marshal form questions")
	}
	if form.Settings != nil {
		settings, err = json.Marshal(form.Settings)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to marshal form settings")
		}
	}
	return questions, settings, nil
}

// nullableSlug maps an empty slug to NULL so the unique index ignores forms
// without one.
func nullableSlug(slug string) *string {
	if slug == "" {
		return nil
	}
	return &slug
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
