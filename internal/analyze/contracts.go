package analyze

import "context"

// TimelineEvent is one dated event pulled from a transcript.
type TimelineEvent struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CaseInfo is the loose case metadata found in a transcript.
type CaseInfo struct {
	CaseNumber string   `json:"case_number,omitempty"`
	Dates      []string `json:"dates,omitempty"`
	Names      []string `json:"names,omitempty"`
	Locations  []string `json:"locations,omitempty"`
}

// Empty reports whether no metadata was found at all.
func (c CaseInfo) Empty() bool {
	return c.CaseNumber == "" && len(c.Dates) == 0 && len(c.Names) == 0 && len(c.Locations) == 0
}

// Result is the structured findings for one transcript.
type Result struct {
	Violations     []string        `json:"violations"`
	TimelineEvents []TimelineEvent `json:"timeline_events"`
	CaseInfo       CaseInfo        `json:"case_info"`
}

// Analyzer turns a (title, transcript) pair into structured findings.
type Analyzer interface {
	Analyze(ctx context.Context, title, text string) (Result, error)
}
