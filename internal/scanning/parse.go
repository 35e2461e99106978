package scanning

import (
	"fmt"
	"strings"
)

// cleanTranscript normalizes the text an LLM returns for a receipt. Models
// sometimes wrap the transcription in a markdown fence or add blank lines.
func cleanTranscript(text string) (string, error) {
	text = strings.TrimSpace(text)

	// Strip an opening fence with an optional language tag
	if strings.HasPrefix(text, "```") {
		if nl := strings.IndexByte(text, '\n'); nl != -1 {
			text = text[nl+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return "", fmt.Errorf("%w: empty transcription", ErrNoText)
	}
	return strings.Join(lines, "\n"), nil
}
