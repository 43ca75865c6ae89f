package models

import "strings"

// Leaning represents the 5-point political-leaning scale
type Leaning string

const (
	LeaningVeryConservative Leaning = "Very Conservative"
	LeaningConservative     Leaning = "Conservative"
	LeaningCenter           Leaning = "Center"
	LeaningLiberal          Leaning = "Liberal"
	LeaningVeryLiberal      Leaning = "Very Liberal"
)

// Sentinel values substituted for missing or erroneous data so the
// output schema stays uniform
const (
	ClassificationUnknown      = "Unknown"
	ClassificationError        = "Error"
	ClassificationInsufficient = "Insufficient Text"
	ConfidenceNA               = "N/A"
	ReasoningNA                = "N/A"
	AuthorUnknown              = "Unknown"
	AuthorPerCuriam            = "Per Curiam"
	CaseNameUnknown            = "Unknown Case"
	SummaryUnavailable         = "No summary available"
)

// Decision represents one court opinion record with resolved metadata
// and, once analyzed, its political-leaning classification
type Decision struct {
	OpinionID   int64  `json:"opinion_id"`
	ClusterID   int64  `json:"cluster_id"`
	CaseName    string `json:"case_name"`
	DateFiled   string `json:"date_filed"`
	Author      string `json:"author"`
	Type        string `json:"type"`
	Citation    string `json:"citation"`
	PageCount   int    `json:"page_count"`
	URL         string `json:"url"`
	DownloadURL string `json:"download_url"`

	// RawText is the (truncated) opinion text fed to the analyzer.
	// It is never written to the output stores.
	RawText string `json:"-"`

	Classification string `json:"classification"`
	Confidence     string `json:"confidence"`
	Tags           string `json:"tags"`
	Notes          string `json:"notes"`
	Summary        string `json:"summary"`
	Reasoning      string `json:"reasoning"`
	TextLength     int    `json:"text_length"`
	AnalyzedDate   string `json:"analyzed_date"`
}

// ApplyAnalysis copies an analysis result onto the decision and stamps it
func (d *Decision) ApplyAnalysis(a Analysis, analyzedDate string) {
	d.Classification = a.Classification
	d.Confidence = a.Confidence
	d.Tags = a.Tags
	d.Notes = a.Notes
	d.Summary = a.Summary
	d.Reasoning = a.Reasoning
	d.TextLength = len(d.RawText)
	d.AnalyzedDate = analyzedDate
}

// Analyzed reports whether the decision carries classification fields
func (d *Decision) Analyzed() bool {
	return d.AnalyzedDate != ""
}

// Analysis holds the parsed output of one classification call
type Analysis struct {
	Classification string `json:"classification"`
	Confidence     string `json:"confidence"`
	Tags           string `json:"tags"`
	Notes          string `json:"notes"`
	Summary        string `json:"summary"`
	Reasoning      string `json:"reasoning"`
}

// TagList splits the semicolon-delimited tags field into individual labels
func (a Analysis) TagList() []string {
	if strings.TrimSpace(a.Tags) == "" {
		return nil
	}
	parts := strings.Split(a.Tags, ";")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
