package scanning

import "context"

// Extractor turns an uploaded receipt (image or PDF) into raw text
type Extractor interface {
	// ExtractText reads the receipt and returns its text, one printed line per line
	ExtractText(ctx context.Context, data []byte, contentType string) (string, error)
	// Close releases any resources held by the extractor
	Close() error
}

// transcriptionPrompt is shared by the LLM-backed extractors. They are only
// asked to transcribe; item and total extraction happens in the parser.
const transcriptionPrompt = `You are reading a photo or scan of a store receipt. Transcribe every line of printed text exactly as it appears, from top to bottom.

Rules:
- Output one receipt line per output line, keeping the item name and its price on the same line when they are printed on the same line.
- Keep prices, quantities, dates, and totals exactly as printed, including decimal points.
- Do not summarize, translate, correct spelling, or add any commentary.
- Do not use markdown code blocks.
- If the image contains no readable text, return an empty response.`
