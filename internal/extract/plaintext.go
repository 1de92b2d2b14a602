package extract

import "strings"

// readPlainText decodes the bytes verbatim. An empty file is a skip, not a
// failure.
func (e *Extractor) readPlainText(data []byte) Outcome {
	txt := strings.TrimSpace(string(data))
	if txt == "" {
		return Outcome{
			Status: StatusSkippedEmpty,
			Reason: "File is empty",
			Pages:  1,
		}
	}
	return Outcome{
		Status: StatusExtracted,
		Method: MethodPlainText,
		Text:   txt,
		Pages:  1,
	}
}
