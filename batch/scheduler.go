package batch

import (
	"context"
	"fmt"
	"log"
	"time"

	"surveytranslator/config"
	"surveytranslator/progress"
	"surveytranslator/translation"
	"surveytranslator/types"
)

// Outcome is the result of one chunk step (or an auto-continue run).
// Results is a copy of the job's accumulated results taken while the
// job lock was held, safe to read while other steps proceed.
type Outcome struct {
	Complete   bool
	NextCursor int
	Remaining  int
	Appended   int
	Results    []types.QuestionResult
}

// Scheduler owns the resumable cursor over a job's question list. Each
// StepChunk call is one bounded unit of work: the hosting platform kills
// long requests, so the batch is drained across repeated invocations
// rather than in one pass.
type Scheduler struct {
	svc     translation.Service
	tracker *progress.Tracker

	// ChunkSize questions are covered per step; the budget check runs
	// before each question, never mid-call.
	ChunkSize     int
	MaxQuestions  int
	ContinueDelay time.Duration
}

// NewScheduler wires a scheduler with the default chunking parameters.
func NewScheduler(svc translation.Service, tracker *progress.Tracker) *Scheduler {
	return &Scheduler{
		svc:           svc,
		tracker:       tracker,
		ChunkSize:     config.ChunkSize,
		MaxQuestions:  config.MaxQuestions(),
		ContinueDelay: config.ContinueDelay,
	}
}

// Validate rejects a question list the batch must never start on.
func (s *Scheduler) Validate(questions []types.Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	if len(questions) > s.MaxQuestions {
		return fmt.Errorf("%w: maximum %d questions allowed per batch, got %d",
			ErrTooManyQuestions, s.MaxQuestions, len(questions))
	}
	return nil
}

// StepChunk processes questions from the job's cursor up to one chunk
// ahead, stopping the moment the elapsed time exceeds budget. Questions
// the budget could not reach are appended as pending so the cursor still
// advances over the whole window and downstream counts stay consistent.
// A single question's failure never aborts the chunk. Steps on the
// same job are serialized; a step on an already drained job is a no-op
// returning the completed outcome, so repeated continue requests are
// idempotent.
func (s *Scheduler) StepChunk(ctx context.Context, job *Job, budget time.Duration) Outcome {
	job.mu.Lock()
	defer job.mu.Unlock()

	if job.complete() {
		return job.snapshot()
	}

	// The budget clock starts once the lock is held; time spent queued
	// behind another step is not charged to this one.
	start := time.Now()
	total := len(job.Questions)
	end := job.Cursor + s.ChunkSize
	if end > total {
		end = total
	}

	s.tracker.Set(types.ProgressSnapshot{
		Status:          types.ProgressProcessingBatch,
		Message:         fmt.Sprintf("Processing questions %d-%d of %d", job.Cursor+1, end, total),
		CurrentQuestion: job.Cursor + 1,
		TotalQuestions:  total,
	})

	appended := 0
	for i := job.Cursor; i < end; i++ {
		question := job.Questions[i]
		number := i + 1

		// The clock is only consulted between questions; an in-flight
		// service call is allowed to finish even if it overruns.
		if time.Since(start) > budget {
			log.Printf("  [%d/%d] deferred: chunk budget exhausted", number, total)
			job.Results = append(job.Results, types.QuestionResult{
				QuestionNumber:   number,
				Row:              question.Row,
				OriginalQuestion: question.Text,
				Status:           types.StatusPending,
				PendingReason:    types.PendingReasonTimeout,
			})
			appended++
			continue
		}

		s.tracker.Set(types.ProgressSnapshot{
			Status:          types.ProgressProcessingQuestion,
			Message:         fmt.Sprintf("Translating question %d of %d", number, total),
			CurrentQuestion: number,
			TotalQuestions:  total,
			CurrentRow:      question.Row,
		})

		result := s.processQuestion(ctx, question, number)
		job.Results = append(job.Results, result)
		appended++

		s.tracker.Set(types.ProgressSnapshot{
			Status:           types.ProgressProcessingQuestion,
			Message:          fmt.Sprintf("Question %d of %d %s", number, total, result.Status),
			CurrentQuestion:  number,
			TotalQuestions:   total,
			CurrentRow:       question.Row,
			DetectedLanguage: result.DetectedLanguage,
			Confidence:       result.Confidence,
			Translation:      result.EnglishTranslation,
		})
		log.Printf("  [%d/%d] %s", number, total, result.Status)
	}

	job.Cursor = end
	job.UpdatedAt = time.Now()

	out := job.snapshot()
	out.Appended = appended

	if out.Complete {
		job.State = StateComplete
		summary := types.Summarize(job.Results)
		s.tracker.Set(types.ProgressSnapshot{
			Status:          types.ProgressCompleted,
			Message:         fmt.Sprintf("Batch complete: %d translated, %d errored, %d pending", summary.Processed, summary.Errored, summary.Pending),
			CurrentQuestion: total,
			TotalQuestions:  total,
		})
	} else {
		s.tracker.Set(types.ProgressSnapshot{
			Status:          types.ProgressBatchCompleted,
			Message:         fmt.Sprintf("Processed %d of %d questions", job.Cursor, total),
			CurrentQuestion: job.Cursor,
			TotalQuestions:  total,
		})
	}
	return out
}

// AutoContinue drains the job chunk by chunk under one aggregate budget,
// pausing briefly between chunks. It stops stepping once the budget is
// spent rather than paying untouched questions down as pending; a later
// invocation resumes from the cursor.
func (s *Scheduler) AutoContinue(ctx context.Context, job *Job, budget time.Duration) (Outcome, int) {
	start := time.Now()
	batches := 0

	out := job.currentOutcome()
	for !out.Complete {
		remaining := budget - time.Since(start)
		if remaining <= 0 {
			break
		}
		out = s.StepChunk(ctx, job, remaining)
		batches++
		if !out.Complete {
			time.Sleep(s.ContinueDelay)
		}
	}

	if out.Complete {
		summary := job.Summary()
		log.Printf("Batch %s drained in %d chunk(s): %d translated, %d errored, %d pending",
			job.ID, batches, summary.Processed, summary.Errored, summary.Pending)
	}
	return out, batches
}

// processQuestion runs the detect/translate call pair for one question,
// degrading service failures into an error result.
func (s *Scheduler) processQuestion(ctx context.Context, question types.Question, number int) types.QuestionResult {
	result := types.QuestionResult{
		QuestionNumber:   number,
		Row:              question.Row,
		OriginalQuestion: question.Text,
	}

	detection, err := s.svc.DetectLanguage(ctx, question.Text)
	if err != nil {
		log.Printf("  [%d] language detection failed: %v", number, err)
		result.Status = types.StatusError
		result.ErrorMessage = err.Error()
		return result
	}

	translated, err := s.svc.Translate(ctx, question.Text)
	if err != nil {
		log.Printf("  [%d] translation failed: %v", number, err)
		result.Status = types.StatusError
		result.ErrorMessage = err.Error()
		return result
	}

	result.Status = types.StatusTranslated
	result.DetectedLanguage = detection.Language
	result.Confidence = detection.Confidence
	result.ConfidenceReason = detection.Reason
	result.EnglishTranslation = translated
	return result
}
