// Package document converts uploaded receipt files into a single bitmap
// ready for text recognition. PDFs are rasterized, images are decoded, and
// everything else is rejected before any OCR work happens.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

// renderDPI is the resolution used when rasterizing PDF pages. Receipt type is
// small; 300 DPI keeps it legible for the OCR engine.
const renderDPI = 300

var (
	// ErrUnsupportedFileType is returned for files that are not PDF, JPG or PNG.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrUnreadableDocument is returned when a PDF cannot be opened or has no pages.
	ErrUnreadableDocument = errors.New("unreadable document")

	// ErrUnreadableImage is returned when an image file cannot be decoded.
	ErrUnreadableImage = errors.New("unreadable image")
)

// Load turns an uploaded file into a bitmap. The file kind is taken from the
// filename extension; only the first page of a PDF is rendered since receipts
// are single page.
func Load(filename string, data []byte) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return renderPDF(data)
	case ".jpg", ".jpeg", ".png":
		return decodeImage(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, filepath.Ext(filename))
	}
}

// renderPDF rasterizes the first page of a PDF at renderDPI.
func renderPDF(data []byte) (image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: opening PDF: %v", ErrUnreadableDocument, err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrUnreadableDocument)
	}

	img, err := doc.ImageDPI(0, renderDPI)
	if err != nil {
		return nil, fmt.Errorf("%w: rendering page: %v", ErrUnreadableDocument, err)
	}

	return img, nil
}

// decodeImage decodes JPEG or PNG bytes. Phone cameras sometimes hand over
// HEIC bytes behind a .jpg name, so the container is sniffed first.
func decodeImage(data []byte) (image.Image, error) {
	if isHEIC(data) {
		img, err := heic.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: decoding HEIC: %v", ErrUnreadableImage, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	return img, nil
}

// isHEIC checks for the ftyp box brands HEIC containers start with.
func isHEIC(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heif", "mif1", "msf1":
		return true
	}
	return false
}
