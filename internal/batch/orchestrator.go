package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/beckagarrison/caseintake/internal/analyze"
	"github.com/beckagarrison/caseintake/internal/extract"
	"github.com/beckagarrison/caseintake/internal/ingest"
)

// Document is what gets added to the case for one extracted file.
type Document struct {
	ID       uuid.UUID
	Title    string
	Text     string
	Method   string
	Pages    int
	AddedAt  time.Time
	Analysis analyze.Result
}

// Sink receives the downstream effects of a batch. Every callback is
// optional; each invocation carries data for exactly one source file.
type Sink struct {
	OnDocumentAdded  func(Document)
	OnViolations     func([]string)
	OnTimelineEvents func([]analyze.TimelineEvent)
	OnCaseInfo       func(analyze.CaseInfo)
	OnProgress       func(Event)
}

// Summary is the per-batch rollup. Log holds one human-readable status line
// per file, in input order.
type Summary struct {
	Total       int
	Succeeded   int
	Skipped     int
	Failed      int
	Unsupported int
	Log         []string
	Duration    time.Duration
}

// Config controls batch scheduling. Workers <= 1 processes files strictly
// sequentially (the default); larger values extract concurrently but results
// are still reported in input order.
type Config struct {
	Workers int
}

// Orchestrator runs a batch of uploads through extraction and analysis,
// fanning findings out to the sink. It is the only component with externally
// visible side effects; per-file problems never abort the batch.
type Orchestrator struct {
	extractor extract.TextExtractor
	analyzer  analyze.Analyzer
	cfg       Config
	logger    *slog.Logger
}

func NewOrchestrator(ex extract.TextExtractor, an analyze.Analyzer, cfg Config, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Orchestrator{extractor: ex, analyzer: an, cfg: cfg, logger: logger}
}

// ProcessBatch processes the items in order, isolating failures per file.
// The returned error is non-nil only when the batch itself was interrupted
// (context cancellation); partial results up to that point are in Summary.
func (o *Orchestrator) ProcessBatch(ctx context.Context, items []ingest.UploadItem, sink Sink) (Summary, error) {
	start := time.Now()
	sum := Summary{Total: len(items)}

	var err error
	if o.cfg.Workers > 1 {
		err = o.runPooled(ctx, items, sink, &sum)
	} else {
		err = o.runSequential(ctx, items, sink, &sum)
	}
	sum.Duration = time.Since(start)
	if err != nil {
		return sum, err
	}

	o.logger.Info("batch finished",
		"total", sum.Total,
		"succeeded", sum.Succeeded,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
		"unsupported", sum.Unsupported,
		"duration_ms", sum.Duration.Milliseconds(),
	)
	final := sum
	o.notify(sink, Event{Kind: EventBatchFinished, Summary: &final})
	return sum, nil
}

func (o *Orchestrator) runSequential(ctx context.Context, items []ingest.UploadItem, sink Sink, sum *Summary) error {
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		o.notify(sink, Event{Kind: EventStarted, Name: item.Name})
		out, err := o.extractor.Extract(ctx, item.Name, item.Data)
		if err != nil {
			return err
		}
		if err := o.finishItem(ctx, item, out, sink, sum); err != nil {
			return err
		}
	}
	return nil
}

// finishItem applies one outcome: analyze + fan out on success, count and
// log otherwise. Exactly one status line is appended per item.
func (o *Orchestrator) finishItem(ctx context.Context, item ingest.UploadItem, out extract.Outcome, sink Sink, sum *Summary) error {
	var line string
	switch out.Status {
	case extract.StatusExtracted:
		if err := o.analyzeAndFanOut(ctx, item, out, sink); err != nil {
			return err
		}
		sum.Succeeded++
		line = fmt.Sprintf("%s: extracted %d characters (%s)", item.Name, len(out.Text), extract.MethodLabel(out.Method))
	case extract.StatusSkippedEmpty:
		sum.Skipped++
		line = fmt.Sprintf("%s: skipped: %s", item.Name, out.Reason)
	case extract.StatusFailed:
		sum.Failed++
		line = fmt.Sprintf("%s: failed: %s", item.Name, out.Reason)
	default:
		sum.Unsupported++
		line = fmt.Sprintf("%s: %s", item.Name, out.Reason)
	}
	sum.Log = append(sum.Log, line)
	o.notify(sink, Event{Kind: EventCompleted, Name: item.Name, Line: line, Outcome: &out})
	return nil
}

func (o *Orchestrator) analyzeAndFanOut(ctx context.Context, item ingest.UploadItem, out extract.Outcome, sink Sink) error {
	title := strings.TrimSuffix(item.Name, filepath.Ext(item.Name))

	analysis, err := o.analyzer.Analyze(ctx, title, out.Text)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// The transcript is still worth keeping; the document is added
		// without findings.
		o.logger.Warn("analysis failed", "name", item.Name, "error", err)
		analysis = analyze.Result{}
	}

	doc := Document{
		ID:       uuid.New(),
		Title:    title,
		Text:     out.Text,
		Method:   out.Method,
		Pages:    out.Pages,
		AddedAt:  time.Now().UTC(),
		Analysis: analysis,
	}
	if sink.OnDocumentAdded != nil {
		sink.OnDocumentAdded(doc)
	}
	if len(analysis.Violations) > 0 && sink.OnViolations != nil {
		sink.OnViolations(analysis.Violations)
	}
	if len(analysis.TimelineEvents) > 0 && sink.OnTimelineEvents != nil {
		sink.OnTimelineEvents(analysis.TimelineEvents)
	}
	if !analysis.CaseInfo.Empty() && sink.OnCaseInfo != nil {
		sink.OnCaseInfo(analysis.CaseInfo)
	}
	return nil
}

func (o *Orchestrator) notify(sink Sink, ev Event) {
	if sink.OnProgress != nil {
		sink.OnProgress(ev)
	}
}
