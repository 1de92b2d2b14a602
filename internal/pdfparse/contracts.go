package pdfparse

// TextRun is one positioned text fragment on a page.
type TextRun struct {
	Text string
	X    float64
	Y    float64
}

// Parser is the PDF parsing capability: bytes to a page-addressable document.
type Parser interface {
	Parse(data []byte) (Document, error)
}

// Document exposes embedded text runs page by page.
type Document interface {
	PageCount() int
	// PageRuns returns the positioned text runs of page n (1-based) in
	// content order. A page with no text layer returns an empty slice.
	PageRuns(n int) ([]TextRun, error)
}
