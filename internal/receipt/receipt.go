package receipt

import (
	"time"

	"github.com/zombor/pantry-scan/internal/parsing"
)

// Receipt is an uploaded receipt file together with what was read from it
type Receipt struct {
	ID          string                 `json:"id"`
	Filename    string                 `json:"filename"`
	ContentType string                 `json:"content_type"`
	Parsed      *parsing.ParsedReceipt `json:"parsed"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
