package constants

import "strings"

// Format is the extraction strategy family for an uploaded file.
type Format string

const (
	TEXT  Format = "TEXT"
	PDF   Format = "PDF"
	IMAGE Format = "IMAGE"
	WORD  Format = "WORD"
)

var imageExts = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
	"bmp":  {},
	"webp": {},
}

var wordExts = map[string]struct{}{
	"doc":  {},
	"docx": {},
	"rtf":  {},
	"odt":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to its extraction format.
// Returns "" for extensions with no registered extractor; callers treat
// that as "requires manual transcription", never as an error.
func MapExtToFormat(ext string) Format {
	ext = NormalizeExt(ext)
	switch {
	case ext == "txt":
		return TEXT
	case ext == "pdf":
		return PDF
	default:
		if _, ok := imageExts[ext]; ok {
			return IMAGE
		}
		if _, ok := wordExts[ext]; ok {
			return WORD
		}
		return ""
	}
}

// SupportedExtensions returns the set of accepted extensions (lowercase, no dot).
func SupportedExtensions() map[string]struct{} {
	out := map[string]struct{}{
		"txt": {},
		"pdf": {},
	}
	for e := range imageExts {
		out[e] = struct{}{}
	}
	for e := range wordExts {
		out[e] = struct{}{}
	}
	return out
}

// IsSupportedExt reports whether an extractor exists for the extension.
func IsSupportedExt(ext string) bool {
	return MapExtToFormat(ext) != ""
}
