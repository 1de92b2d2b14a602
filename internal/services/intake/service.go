package intake

import (
	"context"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/beckagarrison/caseintake/internal/batch"
	"github.com/beckagarrison/caseintake/internal/common"
	"github.com/beckagarrison/caseintake/internal/ingest"
	"github.com/beckagarrison/caseintake/internal/repository"
)

// Service handles intake business logic: load files, run the batch, persist
// successful transcripts.
type Service struct {
	orch   *batch.Orchestrator
	docs   repository.DocumentRepository
	logger *slog.Logger
}

func NewService(orch *batch.Orchestrator, docs repository.DocumentRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{orch: orch, docs: docs, logger: logger}
}

// DirectoryRequest represents directory intake parameters.
type DirectoryRequest struct {
	Root       string
	SkipHidden bool
}

// RunDirectory scans a directory and processes everything it finds as one
// batch. Successful documents are saved through the repository in addition
// to whatever the caller's sink does.
func (s *Service) RunDirectory(ctx context.Context, req DirectoryRequest, sink batch.Sink) (batch.Summary, error) {
	if strings.TrimSpace(req.Root) == "" {
		return batch.Summary{}, common.InvalidArgumentError("root directory is required")
	}

	items, stats, err := ingest.ScanDirectory(req.Root, req.SkipHidden, s.logger)
	if err != nil {
		s.logger.Error("directory scan failed", "root", req.Root, "error", err)
		return batch.Summary{}, common.InternalErrorf("scan directory: %v", err)
	}
	s.logger.Info("directory scanned",
		"root", req.Root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"loaded", stats.Loaded,
		"failed", stats.Failed,
	)

	return s.RunBatch(ctx, items, sink)
}

// RunFiles loads the given paths in order and processes them as one batch.
func (s *Service) RunFiles(ctx context.Context, paths []string, sink batch.Sink) (batch.Summary, error) {
	if len(paths) == 0 {
		return batch.Summary{}, common.InvalidArgumentError("at least one file is required")
	}
	items := make([]ingest.UploadItem, 0, len(paths))
	for _, p := range paths {
		item, err := ingest.LoadPath(p)
		if err != nil {
			// Unreadable files still occupy a slot in the batch so the
			// summary accounts for them; give them an empty payload and
			// let the extractor report the skip or failure.
			s.logger.Warn("load failed", "path", p, "error", err)
			item = ingest.UploadItem{Name: filepath.Base(p), SourcePath: p}
		}
		items = append(items, item)
	}
	return s.RunBatch(ctx, items, sink)
}

// RunBatch wraps the caller's sink so successful documents also land in the
// repository, then delegates to the orchestrator.
func (s *Service) RunBatch(ctx context.Context, items []ingest.UploadItem, sink batch.Sink) (batch.Summary, error) {
	callerAdd := sink.OnDocumentAdded
	sink.OnDocumentAdded = func(doc batch.Document) {
		row := repository.DocumentRow{
			ID:             doc.ID,
			Title:          doc.Title,
			Method:         doc.Method,
			CharCount:      len(doc.Text),
			Text:           doc.Text,
			Violations:     len(doc.Analysis.Violations),
			TimelineEvents: len(doc.Analysis.TimelineEvents),
			AddedAt:        doc.AddedAt,
		}
		if err := s.docs.Save(ctx, row); err != nil {
			s.logger.Error("persist document failed", "id", doc.ID, "title", doc.Title, "error", err)
		}
		if callerAdd != nil {
			callerAdd(doc)
		}
	}
	return s.orch.ProcessBatch(ctx, items, sink)
}
