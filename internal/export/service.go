package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/beckagarrison/caseintake/internal/batch"
	"github.com/beckagarrison/caseintake/internal/repository"
)

// Service produces XLSX bytes summarizing a batch and its stored documents.
type Service struct {
	docs   repository.DocumentRepository
	logger *slog.Logger
}

func NewService(docs repository.DocumentRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{docs: docs, logger: logger}
}

// ExportBatchXLSX returns a workbook with a Documents sheet (all stored
// documents) and a Batch Log sheet (the per-file status lines and counts).
func (s *Service) ExportBatchXLSX(ctx context.Context, summary batch.Summary) ([]byte, error) {
	start := time.Now()

	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	f := excelize.NewFile()
	const docSheet = "Documents"
	if err := f.SetSheetName("Sheet1", docSheet); err != nil {
		return nil, err
	}

	headers := []string{"Title", "Method", "Characters", "Violations", "Timeline Events", "Added At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(docSheet, cell, h)
	}

	row := 2
	for _, d := range docs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(docSheet, cell, v)
		}
		write(1, d.Title)
		write(2, d.Method)
		write(3, d.CharCount)
		write(4, d.Violations)
		write(5, d.TimelineEvents)
		write(6, d.AddedAt.UTC().Format(time.RFC3339))
		row++
	}

	const logSheet = "Batch Log"
	if _, err := f.NewSheet(logSheet); err != nil {
		return nil, err
	}
	counts := []struct {
		label string
		n     int
	}{
		{"Total", summary.Total},
		{"Succeeded", summary.Succeeded},
		{"Skipped", summary.Skipped},
		{"Failed", summary.Failed},
		{"Unsupported", summary.Unsupported},
	}
	for i, c := range counts {
		keyCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valCell, _ := excelize.CoordinatesToCellName(2, i+1)
		_ = f.SetCellValue(logSheet, keyCell, c.label)
		_ = f.SetCellValue(logSheet, valCell, c.n)
	}
	for i, line := range summary.Log {
		cell, _ := excelize.CoordinatesToCellName(1, len(counts)+2+i)
		_ = f.SetCellValue(logSheet, cell, line)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export complete",
		"documents", len(docs),
		"bytes", buf.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
