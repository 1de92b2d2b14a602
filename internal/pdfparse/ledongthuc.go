package pdfparse

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

var _ Parser = (*LedongthucParser)(nil)

// LedongthucParser reads embedded PDF text via github.com/ledongthuc/pdf.
type LedongthucParser struct{}

func NewParser() *LedongthucParser { return &LedongthucParser{} }

func (LedongthucParser) Parse(data []byte) (doc Document, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty PDF content")
	}
	// The library panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &ledongthucDoc{r: r}, nil
}

type ledongthucDoc struct {
	r *pdf.Reader
}

func (d *ledongthucDoc) PageCount() int { return d.r.NumPage() }

func (d *ledongthucDoc) PageRuns(n int) (runs []TextRun, err error) {
	defer func() {
		if r := recover(); r != nil {
			runs = nil
			err = fmt.Errorf("page %d content: %v", n, r)
		}
	}()
	page := d.r.Page(n)
	if page.V.IsNull() {
		return nil, nil
	}
	content := page.Content()
	runs = make([]TextRun, 0, len(content.Text))
	for _, t := range content.Text {
		runs = append(runs, TextRun{Text: t.S, X: t.X, Y: t.Y})
	}
	return runs, nil
}
