// Package store defines the persistence interfaces the pipeline depends on.
// Implementations live in subpackages (store/postgres).
package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/naiveform/naiveform-backend/types"
)

// PgxPool is the subset of pgxpool.Pool the stores use. pgxmock satisfies it,
// which keeps store tests free of a live database.
type PgxPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// FormStore reads and mutates form definitions. The submission pipeline only
// reads; the management surface mutates.
type FormStore interface {
	Create(ctx context.Context, form *types.Form) error
	GetByID(ctx context.Context, id string) (*types.Form, error)
	GetBySlug(ctx context.Context, slug string) (*types.Form, error)
	Update(ctx context.Context, form *types.Form) error
	ListByUser(ctx context.Context, userID string, archivedOnly bool) ([]types.Form, error)
}

// ResponseStore persists immutable submission records. No update or delete:
// responses are append-only by contract.
type ResponseStore interface {
	Create(ctx context.Context, response *types.Response) error
	GetByID(ctx context.Context, id string) (*types.Response, error)
	ListByForm(ctx context.Context, formID string) ([]types.Response, error)
}

// WebhookLogStore appends per-attempt delivery outcomes. The dispatcher only
// writes; owners read through the management surface.
type WebhookLogStore interface {
	Create(ctx context.Context, log *types.WebhookLog) error
	ListByForm(ctx context.Context, formID string, limit int) ([]types.WebhookLog, error)
}
