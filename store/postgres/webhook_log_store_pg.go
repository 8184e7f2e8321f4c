package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/naiveform/naiveform-backend/store"
	"github.com/naiveform/naiveform-backend/types"
	"github.com/pkg/errors"
)

// Ensure pgWebhookLogStore implements store.WebhookLogStore.
var _ store.WebhookLogStore = (*pgWebhookLogStore)(nil)

const (
	webhookLogDefaultLimit = 50
	webhookLogMaxLimit     = 100
)

type pgWebhookLogStore struct {
	pool store.PgxPool
}

// NewPgWebhookLogStore creates a new PostgreSQL webhook delivery log store.
func NewPgWebhookLogStore(pool store.PgxPool) store.WebhookLogStore {
	return &pgWebhookLogStore{pool: pool}
}

// Create appends one delivery attempt outcome.
func (s *pgWebhookLogStore) Create(ctx context.Context, log *types.WebhookLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO webhook_logs (id, form_id, response_id, url, success, status_code, error_message, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.pool.Exec(ctx, query,
		log.ID,
		log.FormID,
		log.ResponseID,
		log.URL,
		log.Success,
		log.StatusCode,
		nullableString(log.ErrorMessage),
		log.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "failed to create webhook log")
	}
	return nil
}

// ListByForm retrieves recent delivery attempts for a form, newest first.
// The limit defaults to 50 and is capped at 100.
func (s *pgWebhookLogStore) ListByForm(ctx context.Context, formID string, limit int) ([]types.WebhookLog, error) {
	if limit <= 0 {
		limit = webhookLogDefaultLimit
	}
	if limit > webhookLogMaxLimit {
		limit = webhookLogMaxLimit
	}

	query := `SELECT id, form_id, response_id, url, success, status_code, error_message, created_at
	          FROM webhook_logs WHERE form_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := s.pool.Query(ctx, query, formID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query webhook logs by form")
	}
	defer rows.Close()

	logs := []types.WebhookLog{}
	for rows.Next() {
		var (
			log      types.WebhookLog
			errorMsg *string
		)
		if err := rows.Scan(&log.ID, &log.FormID, &log.ResponseID, &log.URL,
			&log.Success, &log.StatusCode, &errorMsg, &log.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan webhook log row")
		}
		if errorMsg != nil {
			log.ErrorMessage = *errorMsg
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error during row iteration for webhook logs")
	}
	return logs, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
