package validation

// QuestionInput is the matcher's view of a quiz question.
type QuestionInput struct {
	ID      string   `json:"id" binding:"required"`
	Type    string   `json:"type" binding:"required,oneof=multiple open"`
	Text    string   `json:"text" binding:"required"`
	Points  int      `json:"points"`
	Options []string `json:"options,omitempty"`
}

// Question types.
const (
	TypeMultiple = "multiple"
	TypeOpen     = "open"
)

// MatchedAnswer is the suggested correct answer for one question, with
// provenance. The admin may edit it before accepting.
type MatchedAnswer struct {
	QuestionID      string   `json:"questionId"`
	QuestionText    string   `json:"questionText"`
	SuggestedAnswer string   `json:"suggestedAnswer"`
	Confidence      float64  `json:"confidence"`
	Source          string   `json:"source"`
	Alternatives    []string `json:"alternatives,omitempty"`
	IsEdited        bool     `json:"isEdited,omitempty"`
}

// ValidationResult is the uniform output of every validation source.
// Matches holds exactly one entry per input question, in input order.
type ValidationResult struct {
	EventTitle         string          `json:"eventTitle"`
	Source             string          `json:"source"`
	Matches            []MatchedAnswer `json:"matches"`
	OverallConfidence  float64         `json:"overallConfidence"`
	UnmatchedQuestions []string        `json:"unmatchedQuestions"`
}

// EventSearchResult is an ephemeral search hit used to pick an event or
// page for validation. Never persisted.
type EventSearchResult struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Date     string            `json:"date,omitempty"`
	Category string            `json:"category"`
	Source   string            `json:"source"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Fact is one category/value pair extracted from an external source.
// Confidence is the extraction-level trust (bold vs plain markup for
// Wikipedia), not the question-match score.
type Fact struct {
	Category   string
	Value      string
	Confidence float64
}
