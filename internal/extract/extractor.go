package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/beckagarrison/caseintake/constants"
	"github.com/beckagarrison/caseintake/internal/ocr"
	"github.com/beckagarrison/caseintake/internal/pdfparse"
)

// Config holds the extraction heuristics and OCR behavior.
type Config struct {
	LineBreakYDelta float64       // vertical run delta that starts a new line; default 5.0
	MinTotalChars   int           // total embedded chars below this -> text-poor; default 50
	MinPageChars    int           // per-page non-whitespace floor; default 10
	RenderScale     float64       // raster upscaling for OCR; default 2.0
	PageTimeout     time.Duration // per-page OCR budget; 0 = none
	MaxPages        int           // 0 = no limit
	ForceOCR        bool          // skip embedded text, always OCR PDFs
}

// Extractor dispatches a file to the right extraction strategy by extension.
type Extractor struct {
	cfg      Config
	parser   pdfparse.Parser
	renderer ocr.Renderer
	engine   ocr.Engine
	word     WordConverter
	logger   *slog.Logger
}

var _ TextExtractor = (*Extractor)(nil)

func NewExtractor(cfg Config, parser pdfparse.Parser, renderer ocr.Renderer, engine ocr.Engine, word WordConverter, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.LineBreakYDelta <= 0 {
		cfg.LineBreakYDelta = 5.0
	}
	if cfg.MinTotalChars <= 0 {
		cfg.MinTotalChars = 50
	}
	if cfg.MinPageChars <= 0 {
		cfg.MinPageChars = 10
	}
	if cfg.RenderScale <= 0 {
		cfg.RenderScale = 2.0
	}
	return &Extractor{
		cfg:      cfg,
		parser:   parser,
		renderer: renderer,
		engine:   engine,
		word:     word,
		logger:   logger,
	}
}

// Extract picks a strategy based on file extension and runs it.
func (e *Extractor) Extract(ctx context.Context, name string, data []byte) (Outcome, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(name))
	e.logger.Debug("starting extraction", "name", name, "ext", ext, "bytes", len(data))

	var out Outcome
	var err error
	switch constants.MapExtToFormat(ext) {
	case constants.TEXT:
		out = e.readPlainText(data)
	case constants.PDF:
		out, err = e.extractPDF(ctx, data)
	case constants.IMAGE:
		out, err = e.extractImage(ctx, data)
	case constants.WORD:
		out = e.extractWord(name, data)
	default:
		out = Outcome{
			Status: StatusUnsupported,
			Reason: fmt.Sprintf("unsupported file type %q; transcribe manually", ext),
		}
	}
	if err != nil {
		return out, err
	}

	out.Duration = time.Since(start)
	e.logger.Info("extraction finished",
		"name", name,
		"status", string(out.Status),
		"method", out.Method,
		"chars", len(out.Text),
		"pages", out.Pages,
		"duration_ms", out.Duration.Milliseconds(),
	)
	return out, nil
}
