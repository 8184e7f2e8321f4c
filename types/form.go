// Package types contains the shared data model for forms, responses and
// webhook delivery logs.
package types

import (
	"strings"
	"time"
)

// QuestionType enumerates the supported question kinds.
type QuestionType string

const (
	QuestionShortText      QuestionType = "short_text"
	QuestionLongText       QuestionType = "long_text"
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionCheckboxes     QuestionType = "checkboxes"
	QuestionDropdown       QuestionType = "dropdown"
	QuestionDate           QuestionType = "date"
	QuestionStarRating     QuestionType = "star_rating"
)

// ValidQuestionType reports whether t is one of the supported question types.
func ValidQuestionType(t QuestionType) bool {
	switch t {
	case QuestionShortText, QuestionLongText, QuestionMultipleChoice,
		QuestionCheckboxes, QuestionDropdown, QuestionDate, QuestionStarRating:
		return true
	}
	return false
}

// InputType narrows the HTML input used for short_text questions.
type InputType string

const (
	InputText   InputType = "text"
	InputEmail  InputType = "email"
	InputPhone  InputType = "phone"
	InputNumber InputType = "number"
)

// Question is one typed question of a form. ID is the stable internal key and
// is owner-editable independently of the display Title, so the two can drift
// apart over a form's lifetime.
type Question struct {
	ID        string       `json:"id"`
	Type      QuestionType `json:"type"`
	Title     string       `json:"title"`
	Required  bool         `json:"required"`
	Options   []string     `json:"options,omitempty"`
	InputType InputType    `json:"inputType,omitempty"`
	RatingMax int          `json:"ratingMax,omitempty"`
}

const (
	// RatingMaxDefault is used when a star_rating question does not set RatingMax.
	RatingMaxDefault = 5
	// RatingMaxFloor and RatingMaxCeil bound the configurable rating scale.
	RatingMaxFloor = 3
	RatingMaxCeil  = 10
)

// EffectiveRatingMax returns the rating scale for a star_rating question,
// clamping out-of-range values to the default.
func (q *Question) EffectiveRatingMax() int {
	if q.RatingMax >= RatingMaxFloor && q.RatingMax <= RatingMaxCeil {
		return q.RatingMax
	}
	return RatingMaxDefault
}

// FormSettings holds per-form submission behavior. CloseAt is an epoch-ms
// deadline; a submission at exactly CloseAt is still accepted.
type FormSettings struct {
	LimitOneResponsePerPerson bool     `json:"limitOneResponsePerPerson,omitempty"`
	ConfirmationMessage       string   `json:"confirmationMessage,omitempty"`
	RedirectURL               string   `json:"redirectUrl,omitempty"`
	CloseAt                   *int64   `json:"closeAt,omitempty"`
	Webhooks                  []string `json:"webhooks,omitempty"`
}

// Form is a form definition. Questions and Settings are mutated by the
// external authoring surface; the submission pipeline only reads them.
type Form struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	Slug        string        `json:"slug,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Questions   []Question    `json:"questions"`
	Settings    *FormSettings `json:"settings,omitempty"`
	IsClosed    bool          `json:"isClosed"`
	Archived    bool          `json:"archived"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// WebhookURLs returns the configured webhook URLs with blanks trimmed away.
func (f *Form) WebhookURLs() []string {
	if f.Settings == nil {
		return nil
	}
	urls := make([]string, 0, len(f.Settings.Webhooks))
	for _, u := range f.Settings.Webhooks {
		if trimmed := strings.TrimSpace(u); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}

// RedirectURL returns the trimmed redirect target, or "" when unset.
func (f *Form) RedirectURL() string {
	if f.Settings == nil {
		return ""
	}
	return strings.TrimSpace(f.Settings.RedirectURL)
}

// ConfirmationMessage returns the trimmed confirmation text, or "" when unset.
func (f *Form) ConfirmationMessage() string {
	if f.Settings == nil {
		return ""
	}
	return strings.TrimSpace(f.Settings.ConfirmationMessage)
}
