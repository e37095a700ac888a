package types

// ProgressStatus is the lifecycle stage reported to observers.
type ProgressStatus string

const (
	ProgressIdle               ProgressStatus = "idle"
	ProgressReading            ProgressStatus = "reading"
	ProgressProcessingBatch    ProgressStatus = "processing_batch"
	ProgressProcessingQuestion ProgressStatus = "processing_question"
	ProgressBatchCompleted     ProgressStatus = "batch_completed"
	ProgressCompleted          ProgressStatus = "completed"
	ProgressError              ProgressStatus = "error"
	ProgressTimeout            ProgressStatus = "timeout"
)

// Terminal reports whether a status ends a progress stream.
func (s ProgressStatus) Terminal() bool {
	return s == ProgressCompleted || s == ProgressError
}

// ProgressSnapshot is a point-in-time read of the live processing state.
// It is overwritten in place on every sub-step and discarded when a
// batch finishes or a new one begins.
type ProgressSnapshot struct {
	Status           ProgressStatus `json:"status"`
	Message          string         `json:"message"`
	CurrentQuestion  int            `json:"current_question"`
	TotalQuestions   int            `json:"total_questions"`
	CurrentRow       int            `json:"current_row"`
	DetectedLanguage string         `json:"detected_language,omitempty"`
	Confidence       int            `json:"confidence,omitempty"`
	Translation      string         `json:"translation,omitempty"`
}
