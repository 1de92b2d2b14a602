package analyze

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// maxTimelineEvents caps the events pulled from one transcript.
const maxTimelineEvents = 50

// violationPattern pairs a transcript phrase with the violation it indicates.
type violationPattern struct {
	re    *regexp.Regexp
	label string
}

var violationPatterns = []violationPattern{
	{regexp.MustCompile(`(?i)\bwithout (a )?court order\b`), "Action taken without court order"},
	{regexp.MustCompile(`(?i)\b(failed to notify|without (prior )?notice)\b`), "Failure to provide notice"},
	{regexp.MustCompile(`(?i)\b(denied|refused) visitation\b`), "Denied visitation"},
	{regexp.MustCompile(`(?i)\bwithout (a )?warrant\b`), "Warrantless entry or search"},
	{regexp.MustCompile(`(?i)\b(coerced|under duress)\b`), "Coerced statement or consent"},
	{regexp.MustCompile(`(?i)\b(denied (access to )?counsel|without (an )?attorney)\b`), "Denied access to counsel"},
	{regexp.MustCompile(`(?i)\b(falsified|false statement|fabricated)\b`), "Falsified records or statements"},
	{regexp.MustCompile(`(?i)\b(missed|past) the (statutory )?deadline\b`), "Missed statutory deadline"},
	{regexp.MustCompile(`(?i)\bno (prior )?hearing\b`), "Action taken without hearing"},
}

var (
	reNumericDate = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	reLongDate    = regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}\b`)
	reCaseNumber  = regexp.MustCompile(`(?i)\bcase\s*(?:no\.?|number|#)\s*:?\s*#?\s*([A-Za-z0-9][A-Za-z0-9-]{2,})`)
	reTitledName  = regexp.MustCompile(`\b(?:Judge|Officer|Caseworker|Attorney|Dr\.|Mr\.|Mrs\.|Ms\.)\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?`)
	reCounty      = regexp.MustCompile(`\b[A-Z][a-z]+ County\b`)
	reCourtOf     = regexp.MustCompile(`\b(?:County|City|Court) of\s+[A-Z][a-z]+\b`)
)

// RuleAnalyzer is the built-in keyword/regex analyzer. It is intentionally
// modest; a remote analyzer can replace it via the Analyzer interface.
type RuleAnalyzer struct {
	logger *slog.Logger
}

var _ Analyzer = (*RuleAnalyzer)(nil)

func NewRuleAnalyzer(logger *slog.Logger) *RuleAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &RuleAnalyzer{logger: logger}
}

func (a *RuleAnalyzer) Analyze(ctx context.Context, title, text string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	res := Result{
		Violations:     detectViolations(text),
		TimelineEvents: detectTimelineEvents(text),
		CaseInfo:       detectCaseInfo(text),
	}
	a.logger.Debug("rule analysis done",
		"title", title,
		"violations", len(res.Violations),
		"timeline_events", len(res.TimelineEvents),
	)
	return res, nil
}

func detectViolations(text string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, p := range violationPatterns {
		if !p.re.MatchString(text) {
			continue
		}
		if _, ok := seen[p.label]; ok {
			continue
		}
		seen[p.label] = struct{}{}
		out = append(out, p.label)
	}
	return out
}

// detectTimelineEvents turns each dated line into an event, preserving
// transcript order.
func detectTimelineEvents(text string) []TimelineEvent {
	var out []TimelineEvent
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		date := reNumericDate.FindString(line)
		if date == "" {
			date = reLongDate.FindString(line)
		}
		if date == "" {
			continue
		}
		out = append(out, TimelineEvent{
			Date:        date,
			Title:       truncate(line, 60),
			Description: line,
		})
		if len(out) >= maxTimelineEvents {
			break
		}
	}
	return out
}

func detectCaseInfo(text string) CaseInfo {
	info := CaseInfo{}
	if m := reCaseNumber.FindStringSubmatch(text); m != nil {
		info.CaseNumber = m[1]
	}
	info.Dates = dedupe(append(reNumericDate.FindAllString(text, -1), reLongDate.FindAllString(text, -1)...))
	info.Names = dedupe(reTitledName.FindAllString(text, -1))
	info.Locations = dedupe(append(reCounty.FindAllString(text, -1), reCourtOf.FindAllString(text, -1)...))
	return info
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
