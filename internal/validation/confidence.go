package validation

// BuildResult assembles the uniform result from per-question matches.
// Overall confidence is the arithmetic mean; questions with confidence
// exactly 0 are reported as unmatched.
func BuildResult(eventTitle, source string, matches []MatchedAnswer) *ValidationResult {
	result := &ValidationResult{
		EventTitle:         eventTitle,
		Source:             source,
		Matches:            matches,
		UnmatchedQuestions: []string{},
	}
	if len(matches) == 0 {
		return result
	}

	sum := 0.0
	for _, m := range matches {
		sum += m.Confidence
		if m.Confidence == 0 {
			result.UnmatchedQuestions = append(result.UnmatchedQuestions, m.QuestionID)
		}
	}
	result.OverallConfidence = sum / float64(len(matches))
	return result
}
