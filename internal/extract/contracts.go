package extract

import (
	"context"
	"time"
)

// Status tags the outcome of running one file through the pipeline.
type Status string

const (
	StatusExtracted    Status = "EXTRACTED"
	StatusSkippedEmpty Status = "SKIPPED_EMPTY" // extractor ran but found no usable text
	StatusFailed       Status = "FAILED"        // extractor raised an error
	StatusUnsupported  Status = "UNSUPPORTED"   // no extractor for this extension
)

// Extraction methods. The method on an extracted outcome fully determines
// which extractor path was taken and is surfaced to the user.
const (
	MethodDirectText    = "direct-text"
	MethodOCRScannedPDF = "ocr-scanned-pdf"
	MethodOCRImage      = "ocr-image"
	MethodWordExtract   = "word-extract"
	MethodPlainText     = "plain-text"
)

// Outcome is the result of running one upload through the pipeline.
// Exactly one Outcome is produced per file.
type Outcome struct {
	Status   Status
	Method   string // set when Status == StatusExtracted
	Text     string
	Reason   string // set for skip/fail/unsupported
	Pages    int
	Warnings []string
	Duration time.Duration
}

// Extracted reports whether the outcome carries a usable transcript.
func (o Outcome) Extracted() bool { return o.Status == StatusExtracted }

// MethodLabel returns the user-facing wording for an extraction method.
func MethodLabel(method string) string {
	switch method {
	case MethodDirectText:
		return "embedded PDF text"
	case MethodOCRScannedPDF:
		return "scanned PDF processed with OCR"
	case MethodOCRImage:
		return "image processed with OCR"
	case MethodWordExtract:
		return "word document text"
	case MethodPlainText:
		return "plain text"
	default:
		return method
	}
}

// TextExtractor turns one file's bytes into an Outcome. Extractor-level
// problems (parse errors, OCR errors, empty results, unknown extensions)
// are reported inside the Outcome, never as the error return; a non-nil
// error means the pipeline itself was interrupted (context cancellation).
type TextExtractor interface {
	Extract(ctx context.Context, name string, data []byte) (Outcome, error)
}

// WordConverter is the raw-text extraction capability for word-processor
// files (doc/docx/rtf/odt).
type WordConverter interface {
	ConvertBytes(name string, data []byte) (string, error)
}
