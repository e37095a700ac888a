package translation

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned when the real client is requested without
// a configured credential.
var ErrMissingAPIKey = errors.New("translation API key not configured")

// Detection is the normalized language-detection outcome for one text.
// Confidence is always an integer percentage in [0,100].
type Detection struct {
	Language   string `json:"language"`
	Confidence int    `json:"confidence"`
	Reason     string `json:"reason,omitempty"`
}

// Service wraps the outbound call pair to the text-analysis service.
// Implementations classify their own failures; callers decide what a
// failed question means for the rest of the batch.
type Service interface {
	// DetectLanguage names the source language of text with a confidence
	// score. Unparseable service replies degrade to a fixed fallback
	// rather than an error; only transport/API failures return one.
	DetectLanguage(ctx context.Context, text string) (Detection, error)

	// Translate returns the English translation of text, trimmed but
	// otherwise verbatim. Inline markup is opaque passthrough.
	Translate(ctx context.Context, text string) (string, error)
}
