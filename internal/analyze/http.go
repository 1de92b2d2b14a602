package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HTTPConfig points at a remote analyzer endpoint.
type HTTPConfig struct {
	URL     string
	Timeout time.Duration
	Headers map[string]string
}

// HTTPAnalyzer posts (title, text) to a remote analyzer and schema-validates
// the reply before trusting it.
type HTTPAnalyzer struct {
	cfg    HTTPConfig
	client *http.Client
	logger *slog.Logger
}

var _ Analyzer = (*HTTPAnalyzer)(nil)

func NewHTTPAnalyzer(cfg HTTPConfig, logger *slog.Logger) *HTTPAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	return &HTTPAnalyzer{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type analyzeRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func (a *HTTPAnalyzer) Analyze(ctx context.Context, title, text string) (Result, error) {
	raw, status, err := a.sendJSON(ctx, analyzeRequest{Title: title, Text: text})
	if err != nil {
		return Result{}, fmt.Errorf("analyzer request (status %d): %w", status, err)
	}
	return ParseResult(raw)
}

// sendJSON posts a JSON body and returns the raw response body.
func (a *HTTPAnalyzer) sendJSON(ctx context.Context, body any) ([]byte, int, error) {
	reqID := uuid.New().String()
	start := time.Now()

	bs, err := json.Marshal(body)
	if err != nil {
		a.logger.Error("analyzer.http.encode_error", "req_id", reqID, "error", err)
		return nil, 0, fmt.Errorf("encode json: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.URL, bytes.NewReader(bs))
	if err != nil {
		a.logger.Error("analyzer.http.build_request_error", "req_id", reqID, "error", err)
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range a.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("analyzer.http.send_error", "req_id", reqID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, 0, err
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			a.logger.Warn("analyzer.http.response_body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		a.logger.Error("analyzer.http.read_error", "req_id", reqID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	a.logger.Info("analyzer.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return raw, resp.StatusCode, fmt.Errorf("non-2xx status: %d", resp.StatusCode)
	}
	return raw, resp.StatusCode, nil
}
