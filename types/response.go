package types

import "time"

// Response is one respondent's immutable submission. Answers are keyed by
// question TITLE resolved at submission time (falling back to the raw id for
// questions removed since), so historical rows keep the title they were
// collected under even if the owner later renames the question. Values are
// string, []string or int64 (epoch-ms dates, star ratings).
type Response struct {
	ID        string         `json:"id"`
	FormID    string         `json:"formId"`
	Answers   map[string]any `json:"answers"`
	CreatedAt time.Time      `json:"createdAt"`
}

// WebhookLog records the outcome of a single webhook delivery attempt.
// Append-only; the dispatcher writes rows but never reads them.
type WebhookLog struct {
	ID           string    `json:"id"`
	FormID       string    `json:"formId"`
	ResponseID   string    `json:"responseId"`
	URL          string    `json:"url"`
	Success      bool      `json:"success"`
	StatusCode   *int      `json:"statusCode,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// WebhookPayload is the public-safe body POSTed to each configured webhook.
// Answer keys are question titles, never internal ids.
type WebhookPayload struct {
	FormID      string         `json:"formId"`
	FormTitle   string         `json:"formTitle"`
	ResponseID  string         `json:"responseId"`
	SubmittedAt int64          `json:"submittedAt"`
	Answers     map[string]any `json:"answers"`
}
