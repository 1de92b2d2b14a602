package extract

import (
	"context"
	"fmt"

	"github.com/beckagarrison/caseintake/internal/ocr"
)

// extractScannedPDF renders each page and pipes it through OCR. Pages are
// processed strictly in order so at most one rendered bitmap is in flight.
// A single page's failure records a placeholder and does not abort the rest;
// only a failure that prevents the fallback from running at all is fatal.
func (e *Extractor) extractScannedPDF(ctx context.Context, data []byte) (Outcome, error) {
	doc, err := e.renderer.Open(data)
	if err != nil {
		e.logger.Warn("scanned pdf open failed", "error", err)
		return Outcome{
			Status:   StatusFailed,
			Reason:   "Failed to extract text from scanned PDF using OCR",
			Warnings: []string{err.Error()},
		}, nil
	}
	defer func() { _ = doc.Close() }()

	pageCount := doc.PageCount()
	var warnings []string
	if e.cfg.MaxPages > 0 && pageCount > e.cfg.MaxPages {
		warnings = append(warnings, fmt.Sprintf("pdf has %d pages, processing first %d", pageCount, e.cfg.MaxPages))
		pageCount = e.cfg.MaxPages
	}

	pages := make([]pageText, 0, pageCount)
	recognized := false
	for n := 1; n <= pageCount; n++ {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		txt, err := e.ocrPage(ctx, doc, n)
		if err != nil {
			if ctx.Err() != nil {
				return Outcome{}, ctx.Err()
			}
			e.logger.Warn("page ocr failed", "page", n, "error", err)
			warnings = append(warnings, fmt.Sprintf("page %d: %v", n, err))
			pages = append(pages, pageText{
				number: n,
				text:   fmt.Sprintf("[OCR failed on page %d]", n),
				source: "ocr",
			})
			continue
		}
		txt = Normalize(txt)
		if txt == "" {
			continue
		}
		recognized = true
		pages = append(pages, pageText{number: n, text: txt, source: "ocr"})
	}

	if !recognized {
		return Outcome{
			Status:   StatusSkippedEmpty,
			Reason:   "No text detected in scanned PDF",
			Pages:    pageCount,
			Warnings: warnings,
		}, nil
	}
	return Outcome{
		Status:   StatusExtracted,
		Method:   MethodOCRScannedPDF,
		Text:     joinPages(pages),
		Pages:    pageCount,
		Warnings: warnings,
	}, nil
}

// ocrPage renders one page and recognizes it under the per-page budget. The
// bitmap is scoped to this call, so it is released before the next page.
func (e *Extractor) ocrPage(ctx context.Context, doc ocr.RenderedDoc, n int) (string, error) {
	pctx := ctx
	if e.cfg.PageTimeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(ctx, e.cfg.PageTimeout)
		defer cancel()
	}
	img, err := doc.Render(n, e.cfg.RenderScale)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	txt, err := e.engine.Recognize(pctx, img)
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return txt, nil
}
