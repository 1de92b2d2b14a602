package ocr

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

// Renderer rasterizes PDF pages for OCR.
type Renderer interface {
	Open(data []byte) (RenderedDoc, error)
}

// RenderedDoc renders one page at a time; the encoded bitmap is released
// as soon as the caller is done with it, so peak memory stays bounded to
// a single page.
type RenderedDoc interface {
	PageCount() int
	// Render returns page n (1-based) as PNG bytes at scale times native size.
	Render(n int, scale float64) ([]byte, error)
	Close() error
}

// nativeDPI is the PDF user-space resolution; render scale multiplies it.
const nativeDPI = 72.0

var _ Renderer = (*FitzRenderer)(nil)

// FitzRenderer rasterizes pages with MuPDF (github.com/gen2brain/go-fitz).
type FitzRenderer struct{}

func NewFitzRenderer() *FitzRenderer { return &FitzRenderer{} }

func (FitzRenderer) Open(data []byte) (RenderedDoc, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf for render: %w", err)
	}
	return &fitzDoc{doc: doc}, nil
}

type fitzDoc struct {
	doc *fitz.Document
}

func (d *fitzDoc) PageCount() int { return d.doc.NumPage() }

func (d *fitzDoc) Render(n int, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1.0
	}
	img, err := d.doc.ImageDPI(n-1, nativeDPI*scale)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", n, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode page %d: %w", n, err)
	}
	return buf.Bytes(), nil
}

func (d *fitzDoc) Close() error { return d.doc.Close() }
