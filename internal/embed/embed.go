// Package embed renders the copy-pasteable headless HTML snippet for a form.
// The snippet pairs with the hosted form.js loader: the wrapper div and the
// data-loading / data-form-error / data-form-submitted markers are the hooks
// the loader toggles during submission.
package embed

import (
	"fmt"
	"html"
	"strings"

	"github.com/naiveform/naiveform-backend/types"
)

// The rating input is clamped to this range regardless of what the question
// declares.
const (
	snippetRatingFloor   = 1
	snippetRatingCeil    = 10
	snippetRatingDefault = 5
)

// BuildSnippet renders the headless HTML for a form's questions. actionURL is
// the full submission endpoint; the form.js script tag is derived from it by
// stripping the action path.
func BuildSnippet(questions []types.Question, actionURL string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<script src=\"%s/form.js\"></script>\n", html.EscapeString(scriptBase(actionURL)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "<form action=\"%s\" method=\"post\">\n", html.EscapeString(actionURL))
	b.WriteString("  <div data-form-wrapper>\n")

	for _, q := range questions {
		writeQuestion(&b, q)
	}

	b.WriteString("    <button type=\"submit\">Submit</button>\n")
	b.WriteString("  </div>\n")
	b.WriteString("  <div data-loading style=\"display:none\">loading...</div>\n")
	b.WriteString("  <div data-form-error style=\"display:none\"></div>\n")
	b.WriteString("  <div data-form-submitted style=\"display:none\">form-submitted</div>\n")
	b.WriteString("</form>")

	return b.String()
}

// scriptBase strips the action path so the script tag points at the service
// root.
func scriptBase(actionURL string) string {
	if idx := strings.Index(actionURL, "/html-action/"); idx > 0 {
		return actionURL[:idx]
	}
	return actionURL
}

func writeQuestion(b *strings.Builder, q types.Question) {
	title := q.Title
	if title == "" {
		title = "Untitled"
	}
	elemID := "q-" + q.ID
	name := html.EscapeString(q.ID)
	required := ""
	if q.Required {
		required = " required"
	}
	label := html.EscapeString(title)
	if q.Required {
		label += " *"
	}

	switch q.Type {
	case types.QuestionShortText:
		inputType := "text"
		placeholder := "Your answer"
		switch q.InputType {
		case types.InputEmail:
			inputType = "email"
			placeholder = "you@example.com"
		case types.InputNumber:
			inputType = "number"
		case types.InputPhone:
			placeholder = "+1 (555) 000-0000"
		}
		fmt.Fprintf(b, "    <label for=\"%s\">%s</label>\n", elemID, label)
		fmt.Fprintf(b, "    <input name=\"%s\" id=\"%s\" type=\"%s\" placeholder=\"%s\"%s>\n",
			name, elemID, inputType, placeholder, required)

	case types.QuestionLongText:
		fmt.Fprintf(b, "    <label for=\"%s\">%s</label>\n", elemID, label)
		fmt.Fprintf(b, "    <textarea name=\"%s\" id=\"%s\" rows=\"3\"%s></textarea>\n",
			name, elemID, required)

	case types.QuestionMultipleChoice:
		b.WriteString("    <fieldset>\n")
		fmt.Fprintf(b, "      <legend>%s</legend>\n", label)
		for _, opt := range q.Options {
			v := html.EscapeString(optionValue(opt))
			fmt.Fprintf(b, "      <label><input type=\"radio\" name=\"%s\" value=\"%s\"%s> %s</label>\n",
				name, v, required, v)
		}
		b.WriteString("    </fieldset>\n")

	case types.QuestionCheckboxes:
		b.WriteString("    <fieldset>\n")
		fmt.Fprintf(b, "      <legend>%s</legend>\n", label)
		for _, opt := range q.Options {
			v := html.EscapeString(optionValue(opt))
			fmt.Fprintf(b, "      <label><input type=\"checkbox\" name=\"%s\" value=\"%s\"> %s</label>\n",
				name, v, v)
		}
		b.WriteString("    </fieldset>\n")

	case types.QuestionDropdown:
		fmt.Fprintf(b, "    <label for=\"%s\">%s</label>\n", elemID, label)
		fmt.Fprintf(b, "    <select name=\"%s\" id=\"%s\"%s>\n", name, elemID, required)
		b.WriteString("      <option value=\"\">Choose</option>\n")
		for _, opt := range q.Options {
			v := html.EscapeString(optionValue(opt))
			fmt.Fprintf(b, "      <option value=\"%s\">%s</option>\n", v, v)
		}
		b.WriteString("    </select>\n")

	case types.QuestionDate:
		fmt.Fprintf(b, "    <label for=\"%s\">%s</label>\n", elemID, label)
		fmt.Fprintf(b, "    <input name=\"%s\" id=\"%s\" type=\"date\"%s>\n", name, elemID, required)

	case types.QuestionStarRating:
		max := q.RatingMax
		if max == 0 {
			max = snippetRatingDefault
		}
		if max < snippetRatingFloor {
			max = snippetRatingFloor
		}
		if max > snippetRatingCeil {
			max = snippetRatingCeil
		}
		fmt.Fprintf(b, "    <label for=\"%s\">%s</label>\n", elemID, label)
		fmt.Fprintf(b, "    <input name=\"%s\" id=\"%s\" type=\"number\" min=\"1\" max=\"%d\"%s>\n",
			name, elemID, max, required)
	}
}

func optionValue(opt string) string {
	if opt == "" {
		return "Option"
	}
	return opt
}
