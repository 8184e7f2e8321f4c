package types

// StatusResponse is a generic success envelope.
type StatusResponse struct {
	Status string `json:"status"`
}

// SubmitAccepted is the success body of the programmatic submission path.
type SubmitAccepted struct {
	Message    string `json:"message"`
	ResponseID string `json:"responseId"`
}

// FormCreate is the request body for creating a form.
type FormCreate struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description"`
	Slug        string        `json:"slug"`
	Questions   []Question    `json:"questions"`
	Settings    *FormSettings `json:"settings"`
}

// FormUpdate is the request body for patching a form. Nil pointers leave the
// corresponding field untouched.
type FormUpdate struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Slug        *string       `json:"slug"`
	Questions   []Question    `json:"questions"`
	Settings    *FormSettings `json:"settings"`
	IsClosed    *bool         `json:"isClosed"`
	Archived    *bool         `json:"archived"`
}
