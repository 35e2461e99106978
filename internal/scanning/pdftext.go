package scanning

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// rowTolerance is how far apart, in points, two text runs can sit
// vertically and still be read as one line
const rowTolerance = 2.0

// PDFText reads the embedded text layer of digital PDFs and only falls
// back to OCR for scanned ones
type PDFText struct {
	next Extractor
}

// WithPDFText wraps next so that PDFs with a text layer skip OCR
func WithPDFText(next Extractor) *PDFText {
	return &PDFText{next: next}
}

// ExtractText returns the PDF text layer when present, otherwise defers to the wrapped extractor
func (p *PDFText) ExtractText(ctx context.Context, data []byte, contentType string) (string, error) {
	if normalizeMIME(contentType) == mimePDF {
		text, err := pdfTextLayer(data)
		switch {
		case err != nil:
			slog.Warn("Reading PDF text layer failed, falling back to OCR", "error", err)
		case text != "":
			return text, nil
		default:
			slog.Debug("PDF has no text layer, falling back to OCR")
		}
	}
	return p.next.ExtractText(ctx, data, contentType)
}

// Close closes the wrapped extractor
func (p *PDFText) Close() error {
	return p.next.Close()
}

type textRow struct {
	y    float64
	runs []pdf.Text
}

func pdfTextLayer(data []byte) (text string, err error) {
	// The pdf package panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, row := range groupRows(page.Content().Text) {
			if line := row.String(); line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}

// groupRows buckets text runs into lines by Y and orders them top to
// bottom. PDF coordinates grow upwards.
func groupRows(texts []pdf.Text) []textRow {
	var rows []textRow
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		placed := false
		for i := range rows {
			if math.Abs(rows[i].y-t.Y) < rowTolerance {
				rows[i].runs = append(rows[i].runs, t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, textRow{y: t.Y, runs: []pdf.Text{t}})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })
	return rows
}

// String joins the runs left to right. Many PDFs emit one run per glyph,
// so a space is only inserted where there is a visible gap.
func (r textRow) String() string {
	runs := append([]pdf.Text(nil), r.runs...)
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].X < runs[j].X })

	var b strings.Builder
	for i, t := range runs {
		if i > 0 {
			prev := runs[i-1]
			gap := t.X - (prev.X + prev.W)
			if gap > prev.FontSize*0.2 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
	}
	return strings.TrimSpace(b.String())
}
