package extract

import (
	"bytes"
	"strings"

	"code.sajari.com/docconv"
)

var _ WordConverter = (*DocconvConverter)(nil)

// DocconvConverter extracts raw text from word-processor files via
// code.sajari.com/docconv, with the MIME type derived from the filename.
type DocconvConverter struct{}

func NewDocconvConverter() *DocconvConverter { return &DocconvConverter{} }

func (DocconvConverter) ConvertBytes(name string, data []byte) (string, error) {
	mime := docconv.MimeTypeByExtension(name)
	res, err := docconv.Convert(bytes.NewReader(data), mime, false)
	if err != nil {
		return "", err
	}
	return res.Body, nil
}

func (e *Extractor) extractWord(name string, data []byte) Outcome {
	txt, err := e.word.ConvertBytes(name, data)
	if err != nil {
		e.logger.Warn("word extraction failed", "name", name, "error", err)
		return Outcome{
			Status:   StatusFailed,
			Reason:   "Failed to extract text from document",
			Warnings: []string{err.Error()},
		}
	}
	txt = strings.TrimSpace(txt)
	if txt == "" {
		return Outcome{
			Status: StatusSkippedEmpty,
			Reason: "No text found in document",
		}
	}
	return Outcome{
		Status: StatusExtracted,
		Method: MethodWordExtract,
		Text:   txt,
		Pages:  1,
	}
}
