package validation

import "strings"

// ScoreSubmission applies the single documented scoring policy: trim both
// sides, case-sensitive exact match, set membership when a question has
// several accepted answers. Returns the sum of points over correct
// questions. Pure and idempotent.
func ScoreSubmission(questions []QuestionInput, correct map[string][]string, answers map[string]string) int {
	score := 0
	for _, q := range questions {
		accepted, ok := correct[q.ID]
		if !ok || len(accepted) == 0 {
			continue
		}
		submitted := strings.TrimSpace(answers[q.ID])
		if submitted == "" {
			continue
		}
		for _, a := range accepted {
			if submitted == strings.TrimSpace(a) {
				score += q.Points
				break
			}
		}
	}
	return score
}
