package service

import (
	"html"
	"regexp"
	"strings"

	"predictthis_backend/internal/validation"
)

// Extraction-level trust for facts pulled from article markup. Bolded
// values are how editors highlight outcomes, so they rank higher.
const (
	boldFactConfidence  = 0.85
	plainFactConfidence = 0.70
)

var (
	tableRowRe = regexp.MustCompile(`(?is)<tr[^>]*>.*?</tr>`)
	rowOpenRe  = regexp.MustCompile(`(?is)<tr[^>]*>`)
	cellRe     = regexp.MustCompile(`(?is)<t[dh][^>]*>.*?</t[dh]>`)
	boldRe     = regexp.MustCompile(`(?is)<(?:b|strong)[^>]*>(.*?)</(?:b|strong)>`)
	headingRe  = regexp.MustCompile(`(?is)<h[23][^>]*>(.*?)</h[23]>`)
	listItemRe = regexp.MustCompile(`(?is)<li[^>]*>.*?</li>`)
	tagRe      = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRe    = regexp.MustCompile(`\s+`)
)

// stripMarkup reduces an HTML fragment to its readable text.
func stripMarkup(fragment string) string {
	text := tagRe.ReplaceAllString(fragment, " ")
	text = html.UnescapeString(text)
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

func firstBold(fragment string) (string, bool) {
	m := boldRe.FindStringSubmatch(fragment)
	if m == nil {
		return "", false
	}
	text := stripMarkup(m[1])
	if text == "" {
		return "", false
	}
	return text, true
}

// extractTableBoldFacts finds table rows where a cell is bolded and pairs
// the bold value with the preceding cell as its category.
func extractTableBoldFacts(page string) []validation.Fact {
	var facts []validation.Fact
	for _, row := range tableRowRe.FindAllString(page, -1) {
		cells := cellRe.FindAllString(row, -1)
		for i := 1; i < len(cells); i++ {
			value, ok := firstBold(cells[i])
			if !ok {
				continue
			}
			category := stripMarkup(cells[i-1])
			if category == "" {
				continue
			}
			facts = append(facts, validation.Fact{
				Category:   category,
				Value:      value,
				Confidence: boldFactConfidence,
			})
			break
		}
	}
	return facts
}

// extractSectionFacts walks heading-delimited sections and, when the first
// list item under a heading carries bold text, records heading -> bold text.
func extractSectionFacts(page string) []validation.Fact {
	var facts []validation.Fact

	headings := headingRe.FindAllStringSubmatchIndex(page, -1)
	for i, h := range headings {
		category := stripMarkup(page[h[2]:h[3]])
		if category == "" {
			continue
		}

		sectionEnd := len(page)
		if i+1 < len(headings) {
			sectionEnd = headings[i+1][0]
		}
		section := page[h[1]:sectionEnd]

		item := listItemRe.FindString(section)
		if item == "" {
			continue
		}
		value, ok := firstBold(item)
		if !ok {
			continue
		}
		facts = append(facts, validation.Fact{
			Category:   category,
			Value:      value,
			Confidence: boldFactConfidence,
		})
	}
	return facts
}

// extractWinnerRowFacts finds table rows flagged as winners (a "winner"
// class or gold/yellow background) and records their first two cells as a
// category/value pair.
func extractWinnerRowFacts(page string) []validation.Fact {
	var facts []validation.Fact
	for _, row := range tableRowRe.FindAllString(page, -1) {
		if !isWinnerRow(row) {
			continue
		}
		cells := cellRe.FindAllString(row, -1)
		if len(cells) < 2 {
			continue
		}
		category := stripMarkup(cells[0])
		value := stripMarkup(cells[1])
		if category == "" || value == "" {
			continue
		}
		conf := plainFactConfidence
		if _, bold := firstBold(cells[1]); bold {
			conf = boldFactConfidence
		}
		facts = append(facts, validation.Fact{
			Category:   category,
			Value:      value,
			Confidence: conf,
		})
	}
	return facts
}

func isWinnerRow(row string) bool {
	open := rowOpenRe.FindString(row)
	lowered := strings.ToLower(row)
	openLowered := strings.ToLower(open)
	if strings.Contains(openLowered, "winner") {
		return true
	}
	for _, marker := range []string{"background:gold", "background: gold", "background:yellow", "background: yellow", "background:#ffd700", "background: #ffd700", "background:#faeb86", "background:#ffff"} {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// extractPageFacts pools all three heuristics without deduplication; the
// question matcher picks the best-scoring fact, so overlap is harmless.
func extractPageFacts(page string) []validation.Fact {
	var facts []validation.Fact
	facts = append(facts, extractTableBoldFacts(page)...)
	facts = append(facts, extractSectionFacts(page)...)
	facts = append(facts, extractWinnerRowFacts(page)...)
	return facts
}
