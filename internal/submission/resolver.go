package submission

import (
	"sort"
	"strings"

	apperrors "github.com/naiveform/naiveform-backend/errors"
	"github.com/naiveform/naiveform-backend/types"
)

// Resolver maps submitted field names to canonical question ids for one form.
// A submitted name may be a question id or a question title; the two indexes
// are built once per request since the question list can change between
// submissions.
type Resolver struct {
	byID      map[string]types.Question
	titleToID map[string]string
}

// NewResolver builds the id and title indexes for a form's question list.
// When two questions share a title, the first one wins.
func NewResolver(questions []types.Question) *Resolver {
	r := &Resolver{
		byID:      make(map[string]types.Question, len(questions)),
		titleToID: make(map[string]string, len(questions)),
	}
	for _, q := range questions {
		r.byID[q.ID] = q
		if _, taken := r.titleToID[q.Title]; !taken {
			r.titleToID[q.Title] = q.ID
		}
	}
	return r
}

// Question returns the question owning the given canonical id.
func (r *Resolver) Question(id string) (types.Question, bool) {
	q, ok := r.byID[id]
	return q, ok
}

// reservedName reports form-chrome field names that are never answers.
func reservedName(name string) bool {
	return strings.HasPrefix(name, "_") || name == "submit"
}

// canonicalID resolves one submitted name. known=false means the name matched
// neither a question id nor a title; the name itself is still returned so the
// lenient path can pass it through.
func (r *Resolver) canonicalID(name string) (id string, known bool) {
	if _, ok := r.byID[name]; ok {
		return name, true
	}
	if id, ok := r.titleToID[name]; ok {
		return id, true
	}
	return name, false
}

// ResolvePairs resolves an ordered pair list leniently: unknown names pass
// through as literal ids for forward compatibility with headless HTML forms.
// Repeated names collapse into arrays; a third or later repetition appends.
func (r *Resolver) ResolvePairs(pairs []Pair) map[string]any {
	resolved := make(map[string]any)
	for _, p := range pairs {
		if reservedName(p.Name) {
			continue
		}
		id, _ := r.canonicalID(p.Name)
		switch existing := resolved[id].(type) {
		case nil:
			resolved[id] = p.Value
		case string:
			resolved[id] = []string{existing, p.Value}
		case []string:
			resolved[id] = append(existing, p.Value)
		}
	}
	return resolved
}

// ResolveStrict resolves a decoded value map, rejecting the whole submission
// when any name is unrecognized. Every offending name is reported in a single
// error so integration mistakes surface in one round trip.
func (r *Resolver) ResolveStrict(values map[string]any) (map[string]any, error) {
	resolved := make(map[string]any, len(values))
	var unknown []string
	for name, value := range values {
		if reservedName(name) {
			continue
		}
		id, known := r.canonicalID(name)
		if !known {
			unknown = append(unknown, name)
			continue
		}
		resolved[id] = value
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, apperrors.UnknownFields(unknown)
	}
	return resolved, nil
}
