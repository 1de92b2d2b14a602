package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResult(t *testing.T) {
	raw := []byte(`{
		"violations": ["Denied visitation"],
		"timeline_events": [{"date": "3/14/2024", "title": "Removal", "description": "Children removed"}],
		"case_info": {"case_number": "24-JV-0012", "names": ["Judge Harmon"]}
	}`)
	res, err := ParseResult(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Denied visitation"}, res.Violations)
	require.Len(t, res.TimelineEvents, 1)
	assert.Equal(t, "3/14/2024", res.TimelineEvents[0].Date)
	assert.Equal(t, "24-JV-0012", res.CaseInfo.CaseNumber)
}

func TestParseResultEmptyObject(t *testing.T) {
	res, err := ParseResult([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, res.Violations)
	assert.True(t, res.CaseInfo.Empty())
}

func TestParseResultRejectsUnknownField(t *testing.T) {
	_, err := ParseResult([]byte(`{"verdict": "guilty"}`))
	assert.ErrorContains(t, err, "validate analysis")
}

func TestParseResultRejectsMissingEventDate(t *testing.T) {
	_, err := ParseResult([]byte(`{"timeline_events": [{"title": "no date"}]}`))
	assert.ErrorContains(t, err, "validate analysis")
}

func TestParseResultRejectsWrongTypes(t *testing.T) {
	_, err := ParseResult([]byte(`{"violations": "not an array"}`))
	assert.ErrorContains(t, err, "validate analysis")
}

func TestParseResultRejectsInvalidJSON(t *testing.T) {
	_, err := ParseResult([]byte(`{`))
	assert.ErrorContains(t, err, "decode analysis")
}
