package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/naiveform/naiveform-backend/store"
	"github.com/naiveform/naiveform-backend/types"
	"github.com/pkg/errors"
)

// Ensure pgResponseStore implements store.ResponseStore.
var _ store.ResponseStore = (*pgResponseStore)(nil)

type pgResponseStore struct {
	pool store.PgxPool
}

// NewPgResponseStore creates a new PostgreSQL response store.
func NewPgResponseStore(pool store.PgxPool) store.ResponseStore {
	return &pgResponseStore{pool: pool}
}

// Create inserts one immutable response record.
func (s *pgResponseStore) Create(ctx context.Context, response *types.Response) error {
	if response.ID == "" {
		response.ID = uuid.NewString()
	}
	if response.CreatedAt.IsZero() {
		response.CreatedAt = time.Now().UTC()
	}

	answers, err := json.Marshal(response.Answers)
	if err != nil {
		return errors.Wrap(err, "failed to marshal response answers")
	}

	query := `INSERT INTO responses (id, form_id, answers, created_at)
	          VALUES ($1, $2, $3, $4)`

	_, err = s.pool.Exec(ctx, query, response.ID, response.FormID, answers, response.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to create response")
	}
	return nil
}

// GetByID retrieves a response by its id.
func (s *pgResponseStore) GetByID(ctx context.Context, id string) (*types.Response, error) {
	query := `SELECT id, form_id, answers, created_at FROM responses WHERE id = $1`

	response, err := scanResponse(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get response by id")
	}
	return response, nil
}

// ListByForm retrieves all responses for a form, newest first.
func (s *pgResponseStore) ListByForm(ctx context.Context, formID string) ([]types.Response, error) {
	query := `SELECT id, form_id, answers, created_at FROM responses
	          WHERE form_id = $1 ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, formID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query responses by form")
	}
	defer rows.Close()

	responses := []types.Response{}
	for rows.Next() {
		response, err := scanResponse(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan response row")
		}
		responses = append(responses, *response)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error during row iteration for responses")
	}
	return responses, nil
}

func scanResponse(row interface {
	Scan(dest ...any) error
}) (*types.Response, error) {
	var (
		response types.Response
		answers  []byte
	)
	if err := row.Scan(&response.ID, &response.FormID, &answers, &response.CreatedAt); err != nil {
		return nil, err
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &response.Answers); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal response answers")
		}
	}
	return &response, nil
}
