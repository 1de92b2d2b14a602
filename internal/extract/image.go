package extract

import (
	"context"
)

// extractImage submits the raw image bytes to OCR in one call; the file is
// already a bitmap, so no rendering step is needed.
func (e *Extractor) extractImage(ctx context.Context, data []byte) (Outcome, error) {
	txt, err := e.engine.Recognize(ctx, data)
	if err != nil {
		if ctx.Err() != nil {
			return Outcome{}, ctx.Err()
		}
		e.logger.Warn("image ocr failed", "error", err)
		return Outcome{
			Status:   StatusFailed,
			Reason:   "Could not extract text from image",
			Pages:    1,
			Warnings: []string{err.Error()},
		}, nil
	}
	txt = Normalize(txt)
	if txt == "" {
		return Outcome{
			Status: StatusSkippedEmpty,
			Reason: "No text detected in image",
			Pages:  1,
		}, nil
	}
	return Outcome{
		Status: StatusExtracted,
		Method: MethodOCRImage,
		Text:   txt,
		Pages:  1,
	}, nil
}
