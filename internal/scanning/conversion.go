package scanning

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

const mimePDF = "application/pdf"

// normalizeMIME lowercases the content type and drops any parameters
func normalizeMIME(contentType string) string {
	mime := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(mime, ';'); i != -1 {
		mime = strings.TrimSpace(mime[:i])
	}
	if mime == "" {
		mime = "image/jpeg"
	}
	return mime
}

// renderPDF rasterizes the first page; receipts are single page in practice
func renderPDF(data []byte) (image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page: %w", err)
	}
	return img, nil
}

func decodeImage(data []byte, mime string) (image.Image, error) {
	if mime == mimePDF {
		return renderPDF(data)
	}

	// The standard library has no HEIC decoder and iPhones upload HEIC by default
	if isHEIC(data, mime) {
		img, err := heic.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC/HEIF image: %w", err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if strings.Contains(err.Error(), "unknown format") {
			return nil, fmt.Errorf("unsupported image format (supported: JPEG, PNG, GIF, HEIC, HEIF, PDF): %w", err)
		}
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// isHEIC checks the ftyp box brand as well as the declared type, since
// browsers often send HEIC uploads as application/octet-stream
func isHEIC(data []byte, mime string) bool {
	if strings.Contains(mime, "heic") || strings.Contains(mime, "heif") {
		return true
	}
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heix", "heif", "mif1", "msf1":
		return true
	}
	return false
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(b)
	draw.Draw(gray, b, img, b.Min, draw.Src)
	return gray
}

// prepareImage converts any supported upload into PNG bytes for an OCR
// backend, optionally reducing it to grayscale first
func prepareImage(data []byte, contentType string, grayscale bool) ([]byte, error) {
	mime := normalizeMIME(contentType)

	// A PNG that needs no processing goes through untouched
	if mime == "image/png" && !grayscale && !isHEIC(data, mime) {
		return data, nil
	}

	img, err := decodeImage(data, mime)
	if err != nil {
		return nil, err
	}
	if grayscale {
		img = toGray(img)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}
