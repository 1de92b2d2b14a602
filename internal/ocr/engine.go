package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/otiai10/gosseract/v2"
)

// Engine is the OCR capability: raster image bytes -> recognized text.
type Engine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// TesseractConfig configures the process-wide Tesseract session.
type TesseractConfig struct {
	Language    string // default "eng"
	TessdataDir string
}

// Tesseract wraps a single gosseract client. The client holds a loaded
// recognition model, so it is created once and reused; calls are serialized
// because the underlying session is not safe for concurrent use.
type Tesseract struct {
	cfg    TesseractConfig
	logger *slog.Logger

	mu     sync.Mutex
	client *gosseract.Client
}

var _ Engine = (*Tesseract)(nil)

func NewTesseract(cfg TesseractConfig, logger *slog.Logger) (*Tesseract, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	client := gosseract.NewClient()
	if err := client.SetLanguage(cfg.Language); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("set ocr language %q: %w", cfg.Language, err)
	}
	if cfg.TessdataDir != "" {
		if err := client.SetTessdataPrefix(cfg.TessdataDir); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("set tessdata dir: %w", err)
		}
	}
	return &Tesseract{cfg: cfg, logger: logger, client: client}, nil
}

func (t *Tesseract) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(image) == 0 {
		return "", fmt.Errorf("empty image")
	}
	return await(ctx, func() (string, error) {
		return t.recognize(image)
	})
}

// recognize is the blocking recognition call; the Tesseract C API offers no
// cancellation hook, so it always runs to completion.
func (t *Tesseract) recognize(image []byte) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	start := time.Now()
	if err := t.client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("tesseract set image: %w", err)
	}
	text, err := t.client.Text()
	dur := time.Since(start)
	if err != nil {
		t.logger.Error("ocr failed", "duration_ms", dur.Milliseconds(), "error", err)
		return "", fmt.Errorf("tesseract: %w", err)
	}
	t.logger.Debug("ocr ok",
		"duration_ms", dur.Milliseconds(),
		"image_bytes", len(image),
		"text_bytes", len(text),
	)
	return text, nil
}

// await runs fn on its own goroutine and abandons it when ctx expires. An
// abandoned call still holds the client mutex until the engine returns, so
// the next Recognize waits for it rather than corrupting the session.
func await(ctx context.Context, fn func() (string, error)) (string, error) {
	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := fn()
		ch <- result{text: text, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.text, r.err
	}
}

func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client.Close()
}
