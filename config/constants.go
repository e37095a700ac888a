package config

import "time"

// Batch Processing Constants
const (
	// DefaultMaxQuestions limits how many questions a single batch may contain
	DefaultMaxQuestions = 1000

	// ChunkSize is the number of questions handled within one bounded step
	ChunkSize = 3

	// ChunkTimeBudget is the wall-clock budget for a single chunk step,
	// chosen to stay under the ~30s platform request ceiling
	ChunkTimeBudget = 25 * time.Second

	// AutoContinueBudget is the aggregate budget for one auto-continue
	// invocation, amortized across possibly multiple chunks
	AutoContinueBudget = 25 * time.Second

	// ContinueDelay is the pause between chunks during auto-continue, to
	// avoid saturating the translation service
	ContinueDelay = 200 * time.Millisecond

	// JobTTL is how long a finished or stalled batch job stays retrievable
	JobTTL = 30 * time.Minute
)

// Progress Streaming Constants
const (
	// StreamHeartbeat is the minimum emission interval for progress
	// streams, so observers with a dead connection can detect staleness
	StreamHeartbeat = 500 * time.Millisecond

	// StreamMaxAge is the hard cap on a single progress stream before it
	// hands control back to the caller with a terminal timeout snapshot
	StreamMaxAge = 15 * time.Second
)

// Translation Service Constants
const (
	// RequestTimeout is the per-call timeout for each outbound
	// detect/translate request, independent of the chunk budget
	RequestTimeout = 15 * time.Second

	// DefaultBaseURL is the OpenAI-compatible endpoint of the translation
	// service
	DefaultBaseURL = "https://api.deepseek.com/v1"

	// DefaultModel is the chat model used for detection and translation
	DefaultModel = "deepseek-chat"
)

// Upload Constants
const (
	// MaxUploadSize is the maximum accepted workbook size in bytes
	MaxUploadSize = 2 * 1024 * 1024
)
