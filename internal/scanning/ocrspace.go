package scanning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultOCRSpaceURL     = "https://api.ocr.space/parse/image"
	defaultOCRSpaceTimeout = 15 * time.Second
)

// OCRSpaceConfig configures the OCR.space client
type OCRSpaceConfig struct {
	APIKey    string
	Endpoint  string // defaults to the public parse/image endpoint
	Language  string // defaults to "eng"
	Engine    int    // OCR engine 1 or 2, defaults to 2
	Timeout   time.Duration
	Grayscale bool
}

// OCRSpace implements Extractor using the OCR.space REST API
type OCRSpace struct {
	cfg    OCRSpaceConfig
	client *http.Client
}

// NewOCRSpace creates a new OCR.space Extractor
func NewOCRSpace(cfg OCRSpaceConfig) (*OCRSpace, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ocr.space api key is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultOCRSpaceURL
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.Engine == 0 {
		cfg.Engine = 2
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultOCRSpaceTimeout
	}

	return &OCRSpace{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type ocrSpaceResult struct {
	ParsedText        string `json:"ParsedText"`
	FileParseExitCode int    `json:"FileParseExitCode"`
	ErrorMessage      string `json:"ErrorMessage"`
}

type ocrSpaceResponse struct {
	ParsedResults         []ocrSpaceResult `json:"ParsedResults"`
	OCRExitCode           int              `json:"OCRExitCode"`
	IsErroredOnProcessing bool             `json:"IsErroredOnProcessing"`
	// A string or a list of strings depending on the failure
	ErrorMessage json.RawMessage `json:"ErrorMessage"`
}

func (r *ocrSpaceResponse) errorText() string {
	if len(r.ErrorMessage) == 0 {
		return "OCR processing failed"
	}
	var list []string
	if err := json.Unmarshal(r.ErrorMessage, &list); err == nil && len(list) > 0 {
		return strings.Join(list, "; ")
	}
	var single string
	if err := json.Unmarshal(r.ErrorMessage, &single); err == nil && single != "" {
		return single
	}
	return "OCR processing failed"
}

func (o *OCRSpace) buildRequest(ctx context.Context, image []byte) (*http.Request, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := []struct{ key, value string }{
		{"apikey", o.cfg.APIKey},
		{"language", o.cfg.Language},
		{"isOverlayRequired", "false"},
		{"detectOrientation", "true"},
		{"scale", "true"},
		{"isTable", "true"},
		{"filetype", "PNG"},
		{"OCREngine", strconv.Itoa(o.cfg.Engine)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return nil, fmt.Errorf("writing form field %s: %w", f.key, err)
		}
	}

	part, err := w.CreateFormFile("file", "receipt.png")
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("writing form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.Endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}

// ExtractText sends the receipt to OCR.space and returns the parsed text
func (o *OCRSpace) ExtractText(ctx context.Context, data []byte, contentType string) (string, error) {
	image, err := prepareImage(data, contentType, o.cfg.Grayscale)
	if err != nil {
		return "", err
	}

	req, err := o.buildRequest(ctx, image)
	if err != nil {
		return "", err
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling ocr.space API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("ocr.space API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed ocrSpaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if parsed.IsErroredOnProcessing {
		return "", fmt.Errorf("ocr.space processing failed: %s", parsed.errorText())
	}

	var text strings.Builder
	for _, r := range parsed.ParsedResults {
		text.WriteString(r.ParsedText)
	}

	// OCR.space separates lines with CRLF
	out := strings.TrimSpace(strings.ReplaceAll(text.String(), "\r\n", "\n"))
	if out == "" {
		return "", ErrNoText
	}
	return out, nil
}

// Close is a no-op for the HTTP client
func (o *OCRSpace) Close() error {
	return nil
}
