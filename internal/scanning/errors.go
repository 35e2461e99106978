package scanning

import "errors"

// ErrNoText is returned when a backend finds no readable text
var ErrNoText = errors.New("no text found in receipt")
