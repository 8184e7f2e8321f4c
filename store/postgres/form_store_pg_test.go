package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/naiveform/naiveform-backend/store"
	"github.com/naiveform/naiveform-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var formCols = []string{"id", "user_id", "slug", "title", "description", "questions", "settings", "is_closed", "archived", "created_at", "updated_at"}

func sampleQuestionsJSON(t *testing.T) []byte {
	t.Helper()
	questions := []types.Question{
		{ID: "name", Title: "Your name", Type: types.QuestionShortText, Required: true},
		{ID: "stars", Title: "Rating", Type: types.QuestionStarRating, RatingMax: 7},
	}
	raw, err := json.Marshal(questions)
	require.NoError(t, err)
	return raw
}

func TestFormStoreCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPgFormStore(mock)

	mock.ExpectExec("INSERT INTO forms").
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), "Feedback", "", pgxmock.AnyArg(),
			pgxmock.AnyArg(), false, false, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	form := &types.Form{UserID: "user-1", Title: "Feedback"}
	require.NoError(t, s.Create(context.Background(), form))

	assert.NotEmpty(t, form.ID)
	_, err = uuid.Parse(form.ID)
	assert.NoError(t, err)
	assert.False(t, form.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormStoreCreateSlugConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPgFormStore(mock)

	mock.ExpectExec("INSERT INTO forms").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err = s.Create(context.Background(), &types.Form{UserID: "u", Title: "t", Slug: "taken"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormStoreGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPgFormStore(mock)
	now := time.Now().UTC()
	slug := "customer-feedback"
	settings, _ := json.Marshal(types.FormSettings{Webhooks: []string{"https://hooks.example.com/a"}})

	mock.ExpectQuery("SELECT (.+) FROM forms WHERE id =").
		WithArgs("form-1").
		WillReturnRows(pgxmock.NewRows(formCols).
			AddRow("form-1", "user-1", &slug, "Feedback", "desc", sampleQuestionsJSON(t), settings, true, false, now, now))

	form, err := s.GetByID(context.Background(), "form-1")
	require.NoError(t, err)

	assert.Equal(t, "customer-feedback", form.Slug)
	assert.True(t, form.IsClosed)
	require.Len(t, form.Questions, 2)
	assert.Equal(t, types.QuestionStarRating, form.Questions[1].Type)
	require.NotNil(t, form.Settings)
	assert.Equal(t, []string{"https://hooks.example.com/a"}, form.Settings.Webhooks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormStoreGetBySlugNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPgFormStore(mock)

	mock.ExpectQuery("SELECT (.+) FROM forms WHERE slug =").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err = s.GetBySlug(context.Background(), "ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormStoreUpdateNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPgFormStore(mock)

	mock.ExpectExec("UPDATE forms").
		WithArgs("missing", pgxmock.AnyArg(), "t", "", pgxmock.AnyArg(), pgxmock.AnyArg(),
			false, false, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = s.Update(context.Background(), &types.Form{ID: "missing", Title: "t"})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormStoreListByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPgFormStore(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM forms WHERE user_id =").
		WithArgs("user-1", false).
		WillReturnRows(pgxmock.NewRows(formCols).
			AddRow("form-1", "user-1", (*string)(nil), "A", "", []byte("[]"), []byte(nil), false, false, now, now).
			AddRow("form-2", "user-1", (*string)(nil), "B", "", []byte("[]"), []byte(nil), false, false, now, now))

	forms, err := s.ListByUser(context.Background(), "user-1", false)
	require.NoError(t, err)

	assert.Len(t, forms, 2)
	assert.Empty(t, forms[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}
