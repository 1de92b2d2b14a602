package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCRLF(t *testing.T) {
	assert.Equal(t, "a\nb\nc", Normalize("a\r\nb\rc"))
}

func TestNormalizeCollapsesSpaces(t *testing.T) {
	assert.Equal(t, "the court finds", Normalize("the   court \t finds"))
}

func TestNormalizeCollapsesBlankLines(t *testing.T) {
	assert.Equal(t, "a\n\nb", Normalize("a\n\n\n\n\nb"))
}

func TestNormalizeStripsRuleLines(t *testing.T) {
	got := Normalize("header\n________\nbody\n---\nfooter")
	assert.NotContains(t, got, "____")
	assert.NotContains(t, got, "---")
	assert.Contains(t, got, "header")
	assert.Contains(t, got, "body")
	assert.Contains(t, got, "footer")
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("  \n \t \n"))
}
