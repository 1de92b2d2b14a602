package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/beckagarrison/caseintake/internal/ocr"
	"github.com/beckagarrison/caseintake/internal/pdfparse"
)

// fakeParser serves canned text runs per page.
type fakeParser struct {
	pages    [][]pdfparse.TextRun
	pageErrs map[int]error
	err      error
}

func (f *fakeParser) Parse(data []byte) (pdfparse.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &fakeParsedDoc{pages: f.pages, pageErrs: f.pageErrs}, nil
}

type fakeParsedDoc struct {
	pages    [][]pdfparse.TextRun
	pageErrs map[int]error
}

func (d *fakeParsedDoc) PageCount() int { return len(d.pages) }

func (d *fakeParsedDoc) PageRuns(n int) ([]pdfparse.TextRun, error) {
	if err, ok := d.pageErrs[n]; ok {
		return nil, err
	}
	return d.pages[n-1], nil
}

// fakeRenderer pretends each page renders to "page-N" bytes.
type fakeRenderer struct {
	pages   int
	openErr error
}

func (f *fakeRenderer) Open(data []byte) (ocr.RenderedDoc, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return fakeRendered{pages: f.pages}, nil
}

type fakeRendered struct {
	pages int
}

func (d fakeRendered) PageCount() int { return d.pages }

func (d fakeRendered) Render(n int, scale float64) ([]byte, error) {
	return []byte(fmt.Sprintf("page-%d@%.1f", n, scale)), nil
}

func (d fakeRendered) Close() error { return nil }

// fakeEngine recognizes rendered bytes via a lookup table and counts calls.
type fakeEngine struct {
	texts  map[string]string
	errOn  map[string]error
	slowOn map[string]time.Duration
	calls  int
}

func (f *fakeEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	f.calls++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := string(image)
	if d, ok := f.slowOn[key]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err, ok := f.errOn[key]; ok {
		return "", err
	}
	return f.texts[key], nil
}

// fakeWord converts via a fixed response.
type fakeWord struct {
	text string
	err  error
}

func (f *fakeWord) ConvertBytes(name string, data []byte) (string, error) {
	return f.text, f.err
}
