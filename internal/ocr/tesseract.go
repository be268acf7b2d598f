package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Tesseract implements the Engine interface using the Tesseract OCR engine
// via gosseract. Tesseract and its trained data must be installed on the
// system; the trained-data directory and language come from configuration,
// not from the engine itself.
type Tesseract struct {
	tessdataPath string
	language     string
}

// NewTesseract creates a new Tesseract Engine instance
func NewTesseract(tessdataPath string, language string) (*Tesseract, error) {
	if tessdataPath == "" {
		return nil, fmt.Errorf("tessdata path is required")
	}
	if language == "" {
		language = "eng"
	}

	return &Tesseract{
		tessdataPath: tessdataPath,
		language:     language,
	}, nil
}

// Recognize runs Tesseract over the bitmap and returns the raw recognized
// text. The context bounds the wait: Tesseract itself cannot be interrupted
// mid-recognition, but a cancelled or expired context returns control to the
// caller instead of hanging on a malformed input.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	// Receipt photos are low-contrast; a grayscale pass helps the engine.
	var buf bytes.Buffer
	if err := png.Encode(&buf, imaging.Grayscale(img)); err != nil {
		return "", fmt.Errorf("%w: encoding bitmap: %v", ErrEngine, err)
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := t.recognize(buf.Bytes())
		done <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrEngine, ctx.Err())
	case r := <-done:
		return r.text, r.err
	}
}

// recognize drives one gosseract client. Clients are not safe for reuse
// across calls, so each recognition gets its own.
func (t *Tesseract) recognize(pngData []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetTessdataPrefix(t.tessdataPath); err != nil {
		return "", fmt.Errorf("%w: setting tessdata path: %v", ErrEngine, err)
	}
	if err := client.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("%w: setting language: %v", ErrEngine, err)
	}
	if err := client.SetImageFromBytes(pngData); err != nil {
		return "", fmt.Errorf("%w: setting image: %v", ErrEngine, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngine, err)
	}
	return text, nil
}

// Close closes the Tesseract engine (clients are per-call, so this is a no-op)
func (t *Tesseract) Close() error {
	return nil
}
