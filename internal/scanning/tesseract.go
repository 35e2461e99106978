package scanning

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Tesseract implements Extractor by running the tesseract CLI
type Tesseract struct {
	binary   string
	language string
}

// NewTesseract checks that the binary is on PATH and returns an Extractor
func NewTesseract(binary, language string) (*Tesseract, error) {
	if binary == "" {
		binary = "tesseract"
	}
	if language == "" {
		language = "eng"
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("finding tesseract binary %q: %w", binary, err)
	}
	return &Tesseract{binary: path, language: language}, nil
}

// ExtractText writes a grayscale PNG to a temp file and reads tesseract's stdout
func (t *Tesseract) ExtractText(ctx context.Context, data []byte, contentType string) (string, error) {
	image, err := prepareImage(data, contentType, true)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "receipt-*.png")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(image); err != nil {
		f.Close()
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.binary, f.Name(), "stdout", "-l", t.language)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	text := strings.TrimSpace(stdout.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// Close is a no-op; each call runs its own process
func (t *Tesseract) Close() error {
	return nil
}
