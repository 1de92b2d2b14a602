package extract

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/beckagarrison/caseintake/internal/pdfparse"
)

// pageText is the extractor-internal per-page transcript fragment. It never
// leaves the PDF extractors; pages are concatenated in order with a marker.
type pageText struct {
	number int
	text   string
	source string // "embedded" | "ocr"
}

func (p pageText) marker() string {
	if p.source == "ocr" {
		return fmt.Sprintf("--- Page %d (OCR) ---", p.number)
	}
	return fmt.Sprintf("--- Page %d ---", p.number)
}

// extractPDF walks pages in order pulling embedded text runs, then decides
// whether the extracted volume is enough to trust. Text-poor documents are
// re-routed through the scanned-PDF OCR fallback instead of returning a
// nearly empty transcript.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) (Outcome, error) {
	if e.cfg.ForceOCR {
		return e.extractScannedPDF(ctx, data)
	}

	doc, err := e.parser.Parse(data)
	if err != nil {
		e.logger.Warn("pdf parse failed", "error", err)
		return Outcome{
			Status:   StatusFailed,
			Reason:   "Failed to extract text from PDF",
			Warnings: []string{err.Error()},
		}, nil
	}

	pageCount := doc.PageCount()
	pages := make([]pageText, 0, pageCount)
	var warnings []string
	totalChars := 0
	maxPageChars := 0

	for n := 1; n <= pageCount; n++ {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		runs, err := doc.PageRuns(n)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", n, err))
			// Placeholder keeps page numbering continuous; its text does not
			// count toward the text-poor classification.
			pages = append(pages, pageText{
				number: n,
				text:   fmt.Sprintf("[Text extraction failed on page %d]", n),
				source: "embedded",
			})
			continue
		}
		txt := buildPageText(runs, e.cfg.LineBreakYDelta)
		pages = append(pages, pageText{number: n, text: txt, source: "embedded"})
		totalChars += len(txt)
		if c := countNonWhitespace(txt); c > maxPageChars {
			maxPageChars = c
		}
	}

	if e.textPoor(totalChars, maxPageChars) {
		e.logger.Info("pdf classified text-poor, falling back to ocr",
			"total_chars", totalChars, "max_page_chars", maxPageChars, "pages", pageCount)
		out, err := e.extractScannedPDF(ctx, data)
		out.Warnings = append(warnings, out.Warnings...)
		return out, err
	}

	return Outcome{
		Status:   StatusExtracted,
		Method:   MethodDirectText,
		Text:     joinPages(pages),
		Pages:    pageCount,
		Warnings: warnings,
	}, nil
}

// textPoor is the core classification heuristic: the embedded text layer is
// not trusted when it is empty with no page clearing the per-page floor, or
// when the total volume is below the configured minimum.
func (e *Extractor) textPoor(totalChars, maxPageChars int) bool {
	if totalChars == 0 && maxPageChars <= e.cfg.MinPageChars {
		return true
	}
	return totalChars < e.cfg.MinTotalChars
}

// buildPageText reconstructs line breaks from glyph vertical position: a new
// line starts whenever the vertical delta from the previous run exceeds
// yDelta; runs on the same line are concatenated with a trailing space.
func buildPageText(runs []pdfparse.TextRun, yDelta float64) string {
	var b strings.Builder
	lastY := math.NaN()
	for _, run := range runs {
		if run.Text == "" {
			continue
		}
		if !math.IsNaN(lastY) && math.Abs(run.Y-lastY) > yDelta {
			b.WriteString("\n")
		}
		b.WriteString(run.Text)
		b.WriteString(" ")
		lastY = run.Y
	}
	lines := strings.Split(b.String(), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func joinPages(pages []pageText) string {
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p.marker())
		b.WriteString("\n")
		b.WriteString(p.text)
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}

func countNonWhitespace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
