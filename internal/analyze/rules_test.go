package analyze

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTranscript = `--- Page 1 ---
Case No: 24-JV-0012
IN THE COURT OF Maple County

On 3/14/2024 Officer Daniels entered the home without a warrant.
The children were removed without court order and without prior notice.
On March 20, 2024 Judge Harmon set a review hearing.
Mrs. Garrison was denied visitation on 4/2/2024.
`

func TestDetectViolations(t *testing.T) {
	got := detectViolations(sampleTranscript)
	assert.Contains(t, got, "Action taken without court order")
	assert.Contains(t, got, "Failure to provide notice")
	assert.Contains(t, got, "Warrantless entry or search")
	assert.Contains(t, got, "Denied visitation")
	assert.NotContains(t, got, "Missed statutory deadline")
}

func TestDetectViolationsDeduped(t *testing.T) {
	text := "removed without court order; again acted without court order"
	assert.Equal(t, []string{"Action taken without court order"}, detectViolations(text))
}

func TestDetectViolationsCleanText(t *testing.T) {
	assert.Empty(t, detectViolations("The hearing proceeded as scheduled."))
}

func TestDetectTimelineEvents(t *testing.T) {
	events := detectTimelineEvents(sampleTranscript)
	require.Len(t, events, 3)
	assert.Equal(t, "3/14/2024", events[0].Date)
	assert.Equal(t, "March 20, 2024", events[1].Date)
	assert.Equal(t, "4/2/2024", events[2].Date)
	for _, ev := range events {
		assert.NotEmpty(t, ev.Title)
		assert.NotEmpty(t, ev.Description)
	}
}

func TestDetectTimelineEventsCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < maxTimelineEvents+20; i++ {
		b.WriteString("On 1/1/2024 something happened\n")
	}
	assert.Len(t, detectTimelineEvents(b.String()), maxTimelineEvents)
}

func TestDetectTimelineEventsTruncatesTitle(t *testing.T) {
	long := "On 1/1/2024 " + strings.Repeat("x", 200)
	events := detectTimelineEvents(long)
	require.Len(t, events, 1)
	assert.Len(t, events[0].Title, 63)
	assert.True(t, strings.HasSuffix(events[0].Title, "..."))
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	long := "On 1/1/2024 " + strings.Repeat("é", 200)
	events := detectTimelineEvents(long)
	require.Len(t, events, 1)
	assert.True(t, utf8.ValidString(events[0].Title))
	assert.Equal(t, 60, utf8.RuneCountInString(strings.TrimSuffix(events[0].Title, "...")))

	assert.Equal(t, "short", truncate("short", 60))
	assert.Equal(t, "ééé...", truncate("ééééé", 3))
}

func TestDetectCaseInfo(t *testing.T) {
	info := detectCaseInfo(sampleTranscript)
	assert.Equal(t, "24-JV-0012", info.CaseNumber)
	assert.Contains(t, info.Dates, "3/14/2024")
	assert.Contains(t, info.Dates, "March 20, 2024")
	assert.Contains(t, info.Names, "Officer Daniels")
	assert.Contains(t, info.Names, "Judge Harmon")
	assert.Contains(t, info.Names, "Mrs. Garrison")
	assert.Contains(t, info.Locations, "Maple County")
	assert.False(t, info.Empty())
}

func TestDetectCaseInfoEmpty(t *testing.T) {
	info := detectCaseInfo("nothing of interest here")
	assert.Empty(t, info.CaseNumber)
	assert.Empty(t, info.Dates)
	assert.True(t, info.Empty())
}

func TestRuleAnalyzerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRuleAnalyzer(nil).Analyze(ctx, "t", sampleTranscript)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRuleAnalyzer(t *testing.T) {
	res, err := NewRuleAnalyzer(nil).Analyze(context.Background(), "sample", sampleTranscript)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Violations)
	assert.NotEmpty(t, res.TimelineEvents)
	assert.Equal(t, "24-JV-0012", res.CaseInfo.CaseNumber)
}

func TestDedupe(t *testing.T) {
	assert.Nil(t, dedupe(nil))
	assert.Equal(t, []string{"a", "b"}, dedupe([]string{"a", "b", "a", "a", "b"}))
}
