package validation

import (
	"errors"
	"strings"
)

// ErrNoJSONFound means no brace-balanced answers object exists in the text.
var ErrNoJSONFound = errors.New("no answers JSON object found in response")

// ExtractAnswersJSON pulls the first brace-balanced object containing an
// "answers" key out of free text. Models routinely wrap their JSON in prose
// or code fences; this tolerates both.
func ExtractAnswersJSON(text string) (string, error) {
	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}
		end, ok := scanBalanced(text, start)
		if !ok {
			continue
		}
		candidate := text[start : end+1]
		if strings.Contains(candidate, `"answers"`) {
			return candidate, nil
		}
		// Skip past this object; a nested scan would re-find its children.
		start = end
	}
	return "", ErrNoJSONFound
}

// scanBalanced returns the index of the brace closing the object opened at
// start, honoring JSON string literals and escapes.
func scanBalanced(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
