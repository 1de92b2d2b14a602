package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapExtToFormat(t *testing.T) {
	cases := map[string]Format{
		"txt":  TEXT,
		"pdf":  PDF,
		"jpg":  IMAGE,
		"jpeg": IMAGE,
		"png":  IMAGE,
		"gif":  IMAGE,
		"bmp":  IMAGE,
		"webp": IMAGE,
		"doc":  WORD,
		"docx": WORD,
		"rtf":  WORD,
		"odt":  WORD,
	}
	for ext, want := range cases {
		assert.Equal(t, want, MapExtToFormat(ext), ext)
	}
}

func TestMapExtToFormatCaseInsensitive(t *testing.T) {
	assert.Equal(t, PDF, MapExtToFormat("PDF"))
	assert.Equal(t, IMAGE, MapExtToFormat(".JPeG"))
	assert.Equal(t, WORD, MapExtToFormat(".DocX"))
}

func TestMapExtToFormatUnsupported(t *testing.T) {
	for _, ext := range []string{"", "exe", "zip", "mp4", "unsupportedext", "tar.gz"} {
		assert.Equal(t, Format(""), MapExtToFormat(ext), ext)
		assert.False(t, IsSupportedExt(ext), ext)
	}
}

func TestNormalizeExt(t *testing.T) {
	assert.Equal(t, "pdf", NormalizeExt(".PDF"))
	assert.Equal(t, "txt", NormalizeExt("txt"))
	assert.Equal(t, "", NormalizeExt("."))
}

func TestSupportedExtensions(t *testing.T) {
	exts := SupportedExtensions()
	assert.Len(t, exts, 12)
	for e := range exts {
		assert.True(t, IsSupportedExt(e), e)
	}
}
