package types

// Question is a single survey question extracted from the source column.
// Row is the 1-based position in the original workbook, carried from the
// point of extraction so duplicate texts never bind to the wrong row.
type Question struct {
	Row  int    `json:"row"`
	Text string `json:"text"`
}

// Result status values for a processed question.
const (
	// StatusTranslated marks a question with a detection and translation.
	StatusTranslated = "translated"
	// StatusError marks a question whose service calls failed.
	StatusError = "error"
	// StatusPending marks a question deferred because the step's time
	// budget ran out before it could be attempted.
	StatusPending = "pending"
)

// PendingReasonTimeout is the only deferral reason currently produced.
const PendingReasonTimeout = "timeout"

// QuestionResult is the outcome for one question. Status discriminates
// which of the optional fields are populated.
type QuestionResult struct {
	QuestionNumber   int    `json:"question_number"`
	Row              int    `json:"row_number"`
	OriginalQuestion string `json:"original_question"`
	Status           string `json:"status"` // "translated", "error", "pending"

	DetectedLanguage   string `json:"detected_language,omitempty"`
	// Confidence is never elided: 0 is a legitimate score and error
	// results report it explicitly.
	Confidence         int    `json:"confidence"`
	ConfidenceReason   string `json:"confidence_reason,omitempty"`
	EnglishTranslation string `json:"english_translation,omitempty"`

	ErrorMessage  string `json:"error_message,omitempty"`
	PendingReason string `json:"pending_reason,omitempty"`
}

// BatchSummary counts results by outcome once a batch has fully drained.
type BatchSummary struct {
	Processed int `json:"processed"`
	Errored   int `json:"errored"`
	Pending   int `json:"pending"`
}

// Summarize tallies a result list into a BatchSummary.
func Summarize(results []QuestionResult) BatchSummary {
	var s BatchSummary
	for _, r := range results {
		switch r.Status {
		case StatusError:
			s.Errored++
		case StatusPending:
			s.Pending++
		default:
			s.Processed++
		}
	}
	return s
}
