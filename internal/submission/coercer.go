package submission

import (
	"regexp"
	"strconv"
	"time"

	"github.com/naiveform/naiveform-backend/types"
)

var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CoerceAnswers converts resolved string values into their typed forms.
// Coercion never fails: anything unparseable keeps its original string value.
func CoerceAnswers(r *Resolver, resolved map[string]any) map[string]any {
	coerced := make(map[string]any, len(resolved))
	for id, value := range resolved {
		coerced[id] = coerceValue(r, id, value)
	}
	return coerced
}

func coerceValue(r *Resolver, id string, value any) any {
	s, ok := value.(string)
	if !ok {
		// Arrays (checkboxes, repeated fields) pass through unchanged.
		return value
	}

	if ms, ok := CoerceDateShape(s); ok {
		return ms
	}

	if q, ok := r.Question(id); ok && q.Type == types.QuestionStarRating {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		// Keep the original string rather than failing the request.
	}

	return s
}

// CoerceDateShape maps a YYYY-MM-DD shaped string to epoch milliseconds at
// UTC midnight of that date. It is applied to every string value regardless of
// the question's declared type; swapping in a type-directed policy only
// requires replacing this function. Date-shaped strings that are not real
// calendar dates are left alone.
func CoerceDateShape(s string) (int64, bool) {
	if !dateShape.MatchString(s) {
		return 0, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}
