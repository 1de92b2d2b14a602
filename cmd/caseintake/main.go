package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/beckagarrison/caseintake/internal/analyze"
	"github.com/beckagarrison/caseintake/internal/batch"
	"github.com/beckagarrison/caseintake/internal/common"
	"github.com/beckagarrison/caseintake/internal/export"
	"github.com/beckagarrison/caseintake/internal/extract"
	"github.com/beckagarrison/caseintake/internal/ingest"
	"github.com/beckagarrison/caseintake/internal/ocr"
	"github.com/beckagarrison/caseintake/internal/pdfparse"
	"github.com/beckagarrison/caseintake/internal/repository"
	"github.com/beckagarrison/caseintake/internal/services/intake"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir      = flag.String("dir", "", "directory of case files to process")
		watch    = flag.Bool("watch", false, "watch -dir for dropped files instead of a one-shot batch")
		out      = flag.String("out", "", "output XLSX report path (defaults to <dir>/../caseintake.xlsx)")
		inmem    = flag.Bool("inmem", false, "use an in-memory SQLite database")
		dbDSN    = flag.String("db", "", "database DSN (sqlite path or postgres URL, overrides DB_URL)")
		workers  = flag.Int("workers", 1, "concurrent extraction workers (results stay in input order)")
		forceOCR = flag.Bool("force-ocr", false, "always OCR PDFs, ignoring any embedded text layer")
		lang     = flag.String("lang", "", "OCR language (default from OCR_LANG or eng)")
	)
	flag.Parse()

	if *dir == "" && flag.NArg() == 0 {
		printError("Error: --dir or at least one file argument is required\n")
		os.Exit(1)
	}
	if *out == "" && *dir != "" {
		*out = filepath.Join(filepath.Dir(*dir), "caseintake.xlsx")
	}
	if *out == "" {
		*out = "caseintake.xlsx"
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := common.LoadConfig()
	if *lang != "" {
		cfg.OCR.Language = *lang
	}
	if *forceOCR {
		cfg.Extract.ForceOCR = true
	}
	if *dbDSN != "" {
		cfg.Database.DSN = *dbDSN
	}
	if *inmem {
		cfg.Database.DSN = ":memory:"
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open document store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	engine, err := ocr.NewTesseract(ocr.TesseractConfig{
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
	}, logger)
	if err != nil {
		logger.Error("failed to initialize OCR engine", "error", err)
		os.Exit(1)
	}
	defer func() { _ = engine.Close() }()

	extractor := extract.NewExtractor(extract.Config{
		LineBreakYDelta: cfg.Extract.LineBreakYDelta,
		MinTotalChars:   cfg.Extract.MinTotalChars,
		MinPageChars:    cfg.Extract.MinPageChars,
		RenderScale:     cfg.OCR.RenderScale,
		PageTimeout:     cfg.OCR.PageTimeout,
		MaxPages:        cfg.OCR.MaxPages,
		ForceOCR:        cfg.Extract.ForceOCR,
	}, pdfparse.NewParser(), ocr.NewFitzRenderer(), engine, extract.NewDocconvConverter(), logger)

	var analyzer analyze.Analyzer
	if cfg.Analyzer.URL != "" {
		analyzer = analyze.NewHTTPAnalyzer(analyze.HTTPConfig{
			URL:     cfg.Analyzer.URL,
			Timeout: cfg.Analyzer.Timeout,
		}, logger)
		logger.Info("using remote analyzer", "url", cfg.Analyzer.URL)
	} else {
		analyzer = analyze.NewRuleAnalyzer(logger)
	}

	orch := batch.NewOrchestrator(extractor, analyzer, batch.Config{Workers: *workers}, logger)
	svc := intake.NewService(orch, store, logger)

	sink := batch.Sink{
		OnProgress: func(ev batch.Event) {
			switch ev.Kind {
			case batch.EventStarted:
				fmt.Printf("processing %s...\n", ev.Name)
			case batch.EventCompleted:
				fmt.Println(ev.Line)
			}
		},
		OnViolations: func(v []string) {
			for _, s := range v {
				fmt.Printf("  violation: %s\n", s)
			}
		},
	}

	if *watch {
		runWatch(ctx, svc, *dir, sink, logger)
		return
	}

	var summary batch.Summary
	if *dir != "" {
		summary, err = svc.RunDirectory(ctx, intake.DirectoryRequest{Root: *dir, SkipHidden: true}, sink)
	} else {
		summary, err = svc.RunFiles(ctx, flag.Args(), sink)
	}
	if err != nil {
		logger.Error("batch interrupted", "error", err)
		os.Exit(1)
	}

	exportSvc := export.NewService(store, logger)
	xlsxBytes, err := exportSvc.ExportBatchXLSX(ctx, summary)
	if err != nil {
		logger.Error("failed to export report", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write report", "path", *out, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Batch complete!\n")
	fmt.Printf("- Files: %d\n", summary.Total)
	fmt.Printf("- Extracted: %d\n", summary.Succeeded)
	fmt.Printf("- Skipped: %d\n", summary.Skipped)
	fmt.Printf("- Failed: %d\n", summary.Failed)
	fmt.Printf("- Unsupported: %d\n", summary.Unsupported)
	fmt.Printf("- Report: %s\n", *out)
}

// runWatch processes files as they land in the drop folder, one batch per
// file, until the context is cancelled.
func runWatch(ctx context.Context, svc *intake.Service, dir string, sink batch.Sink, logger *slog.Logger) {
	if dir == "" {
		printError("Error: --watch requires --dir\n")
		os.Exit(1)
	}
	evCh, errCh, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{dir},
		InitialScan: true,
		Debounce:    500 * time.Millisecond,
	}, logger)
	if err != nil {
		logger.Error("failed to start watcher", "dir", dir, "error", err)
		os.Exit(1)
	}
	logger.Info("watching for case files", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return
		case err, ok := <-errCh:
			if ok && err != nil {
				logger.Error("watcher error", "error", err)
			}
		case path, ok := <-evCh:
			if !ok {
				return
			}
			if _, err := svc.RunFiles(ctx, []string{path}, sink); err != nil {
				logger.Error("processing interrupted", "path", path, "error", err)
				return
			}
		}
	}
}
