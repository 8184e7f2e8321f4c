package submission

import (
	"testing"

	apperrors "github.com/naiveform/naiveform-backend/errors"
	"github.com/naiveform/naiveform-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuestions() []types.Question {
	return []types.Question{
		{ID: "q1", Title: "Email", Type: types.QuestionShortText, InputType: types.InputEmail},
		{ID: "q2", Title: "Toppings", Type: types.QuestionCheckboxes, Options: []string{"ham", "cheese"}},
		{ID: "q3", Title: "Rating", Type: types.QuestionStarRating},
	}
}

func TestResolvePairsIDAndTitleAreEquivalent(t *testing.T) {
	r := NewResolver(testQuestions())

	byID := r.ResolvePairs([]Pair{{Name: "q1", Value: "x@example.com"}})
	byTitle := r.ResolvePairs([]Pair{{Name: "Email", Value: "x@example.com"}})

	assert.Equal(t, byID, byTitle)
	assert.Equal(t, "x@example.com", byID["q1"])
}

func TestResolvePairsCollapsesRepeats(t *testing.T) {
	r := NewResolver(testQuestions())

	resolved := r.ResolvePairs([]Pair{
		{Name: "q2", Value: "ham"},
		{Name: "q2", Value: "cheese"},
		{Name: "q2", Value: "extra"},
	})

	assert.Equal(t, []string{"ham", "cheese", "extra"}, resolved["q2"])
}

func TestResolvePairsMixedIDAndTitleCollapseTogether(t *testing.T) {
	r := NewResolver(testQuestions())

	resolved := r.ResolvePairs([]Pair{
		{Name: "q2", Value: "ham"},
		{Name: "Toppings", Value: "cheese"},
	})

	assert.Equal(t, []string{"ham", "cheese"}, resolved["q2"])
}

func TestResolvePairsDropsReservedNames(t *testing.T) {
	r := NewResolver(testQuestions())

	resolved := r.ResolvePairs([]Pair{
		{Name: "_next", Value: "https://example.com"},
		{Name: "submit", Value: "Send"},
		{Name: "q1", Value: "a@b.c"},
	})

	assert.Len(t, resolved, 1)
	assert.Equal(t, "a@b.c", resolved["q1"])
}

func TestResolvePairsPassesUnknownNamesThrough(t *testing.T) {
	r := NewResolver(testQuestions())

	resolved := r.ResolvePairs([]Pair{{Name: "mystery", Value: "42"}})

	assert.Equal(t, "42", resolved["mystery"])
}

func TestResolveStrictRejectsUnknownNames(t *testing.T) {
	r := NewResolver(testQuestions())

	_, err := r.ResolveStrict(map[string]any{
		"q1":      "a@b.c",
		"mystery": "42",
		"bogus":   "x",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.UnknownFieldsError, appErr.Type)
	// Every unknown name reported at once, deterministically ordered.
	assert.Equal(t, []string{"bogus", "mystery"}, appErr.Fields)
	assert.Equal(t, "Invalid or unknown field(s): bogus, mystery", appErr.Message)
}

func TestResolveStrictAcceptsTitles(t *testing.T) {
	r := NewResolver(testQuestions())

	resolved, err := r.ResolveStrict(map[string]any{"Email": "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", resolved["q1"])
}

func TestResolverFirstTitleWinsOnCollision(t *testing.T) {
	r := NewResolver([]types.Question{
		{ID: "first", Title: "Name"},
		{ID: "second", Title: "Name"},
	})

	resolved := r.ResolvePairs([]Pair{{Name: "Name", Value: "Ada"}})

	assert.Equal(t, "Ada", resolved["first"])
	_, present := resolved["second"]
	assert.False(t, present)
}
