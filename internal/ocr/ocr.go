// Package ocr wraps third-party text recognition engines behind a single
// interface. An engine transduces a bitmap into raw multi-line text and does
// no interpretation of its own; making sense of the text is the parser's job.
package ocr

import (
	"context"
	"errors"
	"image"
)

// ErrEngine tags every failure coming out of a recognition engine, whether a
// missing trained-data path, a corrupt image or an engine crash.
var ErrEngine = errors.New("ocr engine error")

// Engine defines the interface for text recognition. Recognition is the one
// slow, blocking call in the pipeline, so it is context-bound.
type Engine interface {
	// Recognize extracts the raw text from a bitmap, preserving the engine's
	// native line breaks.
	Recognize(ctx context.Context, img image.Image) (string, error)

	// Close closes the engine and releases resources.
	Close() error
}
