package service

import (
	"strings"

	"courtwatch-backend/models"
)

// Recognized line prefixes of the response grammar
const (
	prefixClassification = "Classification:"
	prefixConfidence     = "Confidence:"
	prefixTags           = "Tags:"
	prefixNotes          = "Notes:"
	prefixSummary        = "Summary:"
	prefixReasoning      = "Reasoning:"
)

// ParseAnalysis scans a free-form model response for the line-prefixed
// grammar. Field order does not matter. Summary content accumulates
// across lines until the next recognized prefix and is joined with
// single spaces. Absent fields resolve to their sentinel defaults;
// parsing never fails.
func ParseAnalysis(raw string) models.Analysis {
	a := models.Analysis{
		Classification: models.ClassificationUnknown,
		Confidence:     models.ConfidenceNA,
		Reasoning:      models.ReasoningNA,
	}

	inSummary := false
	var summaryLines []string

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, prefixClassification):
			inSummary = false
			a.Classification = fieldValue(trimmed)
		case strings.HasPrefix(trimmed, prefixConfidence):
			inSummary = false
			a.Confidence = fieldValue(trimmed)
		case strings.HasPrefix(trimmed, prefixTags):
			inSummary = false
			a.Tags = fieldValue(trimmed)
		case strings.HasPrefix(trimmed, prefixNotes):
			inSummary = false
			a.Notes = fieldValue(trimmed)
		case strings.HasPrefix(trimmed, prefixSummary):
			inSummary = true
			if v := fieldValue(trimmed); v != "" {
				summaryLines = append(summaryLines, v)
			}
		case strings.HasPrefix(trimmed, prefixReasoning):
			inSummary = false
			a.Reasoning = fieldValue(trimmed)
		default:
			if inSummary && trimmed != "" {
				summaryLines = append(summaryLines, trimmed)
			}
		}
	}

	if len(summaryLines) > 0 {
		a.Summary = strings.Join(summaryLines, " ")
	} else {
		a.Summary = models.SummaryUnavailable
	}
	return a
}

func fieldValue(line string) string {
	_, value, _ := strings.Cut(line, ":")
	return strings.TrimSpace(value)
}
