package submission

import (
	"testing"
	"time"

	"github.com/naiveform/naiveform-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceDateShapeForAnyQuestionType(t *testing.T) {
	// The heuristic is shape-based, not type-directed: a date-shaped value
	// submitted for a short_text question is still coerced.
	r := NewResolver([]types.Question{{ID: "q1", Title: "Anything", Type: types.QuestionShortText}})

	coerced := CoerceAnswers(r, map[string]any{"q1": "2024-03-05"})

	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, want, coerced["q1"])
}

func TestCoerceDateShapeExactMidnightUTC(t *testing.T) {
	ms, ok := CoerceDateShape("2024-03-05")
	require.True(t, ok)
	assert.Equal(t, int64(1709596800000), ms)
}

func TestCoerceDateShapeRejectsNonMatching(t *testing.T) {
	for _, s := range []string{"2024-3-5", "2024-03-05T00:00:00Z", "not a date", "20240305"} {
		_, ok := CoerceDateShape(s)
		assert.False(t, ok, s)
	}
}

func TestCoerceInvalidCalendarDateDegradesToString(t *testing.T) {
	r := NewResolver([]types.Question{{ID: "q1", Title: "Date", Type: types.QuestionDate}})

	coerced := CoerceAnswers(r, map[string]any{"q1": "2024-13-40"})

	assert.Equal(t, "2024-13-40", coerced["q1"])
}

func TestCoerceStarRating(t *testing.T) {
	r := NewResolver([]types.Question{{ID: "stars", Title: "Rating", Type: types.QuestionStarRating}})

	coerced := CoerceAnswers(r, map[string]any{"stars": "4"})

	assert.Equal(t, 4, coerced["stars"])
}

func TestCoerceStarRatingUnparseableKeepsString(t *testing.T) {
	r := NewResolver([]types.Question{{ID: "stars", Title: "Rating", Type: types.QuestionStarRating}})

	coerced := CoerceAnswers(r, map[string]any{"stars": "abc"})

	assert.Equal(t, "abc", coerced["stars"])
}

func TestCoerceArraysPassThrough(t *testing.T) {
	r := NewResolver([]types.Question{{ID: "q2", Title: "Toppings", Type: types.QuestionCheckboxes}})

	coerced := CoerceAnswers(r, map[string]any{"q2": []string{"ham", "2024-03-05"}})

	// Shape-based date coercion applies to scalar strings only.
	assert.Equal(t, []string{"ham", "2024-03-05"}, coerced["q2"])
}

func TestCoerceUnknownQuestionPassesThrough(t *testing.T) {
	r := NewResolver(nil)

	coerced := CoerceAnswers(r, map[string]any{"ghost": "plain text"})

	assert.Equal(t, "plain text", coerced["ghost"])
}
