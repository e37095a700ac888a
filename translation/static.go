package translation

import "context"

// Static is a deterministic Service with no network I/O, selected by
// configuration instead of a conditional inside the real client. It
// backs TEST_MODE and the package tests.
type Static struct{}

func (Static) DetectLanguage(ctx context.Context, text string) (Detection, error) {
	return Detection{Language: "English", Confidence: 95, Reason: "test mode"}, nil
}

func (Static) Translate(ctx context.Context, text string) (string, error) {
	return "[TEST MODE] " + text, nil
}
