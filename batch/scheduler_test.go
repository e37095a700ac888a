package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"surveytranslator/progress"
	"surveytranslator/translation"
	"surveytranslator/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService is a scripted translation.Service: selected texts fail,
// and an optional per-call delay simulates slow upstream responses.
type stubService struct {
	failTexts map[string]bool
	delay     time.Duration
}

func (s *stubService) DetectLanguage(ctx context.Context, text string) (translation.Detection, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.failTexts[text] {
		return translation.Detection{}, errors.New("detection unavailable")
	}
	return translation.Detection{Language: "Spanish", Confidence: 92, Reason: "stub"}, nil
}

func (s *stubService) Translate(ctx context.Context, text string) (string, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return "EN: " + text, nil
}

func newTestScheduler(svc translation.Service) *Scheduler {
	s := NewScheduler(svc, progress.NewTracker())
	s.ContinueDelay = time.Millisecond
	return s
}

func questionList(n int) []types.Question {
	questions := make([]types.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, types.Question{Row: i + 1, Text: fmt.Sprintf("q%d", i+1)})
	}
	return questions
}

func newJob(t *testing.T, store *Store, n int) *Job {
	t.Helper()
	job, err := store.Create(questionList(n), false)
	require.NoError(t, err)
	return job
}

func TestValidate(t *testing.T) {
	s := newTestScheduler(&stubService{})

	t.Run("empty list rejected", func(t *testing.T) {
		assert.ErrorIs(t, s.Validate(nil), ErrNoQuestions)
	})

	t.Run("limit enforced", func(t *testing.T) {
		err := s.Validate(questionList(1001))
		assert.ErrorIs(t, err, ErrTooManyQuestions)
	})

	t.Run("limit boundary allowed", func(t *testing.T) {
		assert.NoError(t, s.Validate(questionList(1000)))
	})
}

func TestStepChunkCadence(t *testing.T) {
	// 7 questions with chunk size 3 drain as 3 / 3 / 1, complete only
	// after the third step, with no question duplicated or dropped.
	s := newTestScheduler(&stubService{})
	store := NewStore(time.Minute)
	job := newJob(t, store, 7)
	ctx := context.Background()

	out := s.StepChunk(ctx, job, time.Minute)
	assert.Equal(t, 3, out.Appended)
	assert.False(t, out.Complete)
	assert.Equal(t, 3, out.NextCursor)
	assert.Equal(t, 4, out.Remaining)

	out = s.StepChunk(ctx, job, time.Minute)
	assert.Equal(t, 3, out.Appended)
	assert.False(t, out.Complete)

	out = s.StepChunk(ctx, job, time.Minute)
	assert.Equal(t, 1, out.Appended)
	assert.True(t, out.Complete)
	assert.Equal(t, 0, out.Remaining)

	require.Len(t, job.Results, 7)
	assert.Equal(t, StateComplete, job.State)

	// Row ordering matches the 1-based source positions exactly.
	for i, result := range job.Results {
		assert.Equal(t, i+1, result.Row)
		assert.Equal(t, i+1, result.QuestionNumber)
		assert.Equal(t, types.StatusTranslated, result.Status)
		assert.Equal(t, "EN: "+result.OriginalQuestion, result.EnglishTranslation)
	}
}

func TestStepChunkResultsTrackCursor(t *testing.T) {
	s := newTestScheduler(&stubService{})
	store := NewStore(time.Minute)
	job := newJob(t, store, 5)

	for !job.Complete() {
		s.StepChunk(context.Background(), job, time.Minute)
		assert.Equal(t, job.Cursor, len(job.Results), "len(results) must equal cursor after every step")
	}
	assert.Len(t, job.Results, 5)
}

func TestStepChunkIsolatesFailures(t *testing.T) {
	// A failing question yields an error result; the chunk still covers
	// its whole window and the batch survives.
	svc := &stubService{failTexts: map[string]bool{"q2": true}}
	s := newTestScheduler(svc)
	store := NewStore(time.Minute)
	job := newJob(t, store, 3)

	out := s.StepChunk(context.Background(), job, time.Minute)
	assert.True(t, out.Complete)
	require.Len(t, job.Results, 3)

	assert.Equal(t, types.StatusTranslated, job.Results[0].Status)
	assert.Equal(t, types.StatusError, job.Results[1].Status)
	assert.Contains(t, job.Results[1].ErrorMessage, "detection unavailable")
	assert.Equal(t, types.StatusTranslated, job.Results[2].Status)
}

func TestStepChunkBudgetExhaustion(t *testing.T) {
	// With a budget only one slow question fits into, the remaining
	// window is paid down as pending and the cursor still advances by a
	// full chunk.
	svc := &stubService{delay: 15 * time.Millisecond}
	s := newTestScheduler(svc)
	store := NewStore(time.Minute)
	job := newJob(t, store, 3)

	out := s.StepChunk(context.Background(), job, 20*time.Millisecond)
	assert.True(t, out.Complete)
	assert.Equal(t, 3, job.Cursor)
	require.Len(t, job.Results, 3)

	assert.Equal(t, types.StatusTranslated, job.Results[0].Status)
	for _, result := range job.Results[1:] {
		assert.Equal(t, types.StatusPending, result.Status)
		assert.Equal(t, types.PendingReasonTimeout, result.PendingReason)
	}
}

func TestAutoContinueDrains(t *testing.T) {
	s := newTestScheduler(&stubService{})
	store := NewStore(time.Minute)
	job := newJob(t, store, 7)

	out, batches := s.AutoContinue(context.Background(), job, time.Minute)
	assert.True(t, out.Complete)
	assert.Equal(t, 3, batches)
	assert.Len(t, job.Results, 7)

	summary := job.Summary()
	assert.Equal(t, types.BatchSummary{Processed: 7}, summary)
}

func TestAutoContinueStopsOnBudget(t *testing.T) {
	// Once the aggregate budget is spent the driver stops stepping
	// instead of paying untouched questions down as pending.
	svc := &stubService{delay: 15 * time.Millisecond}
	s := newTestScheduler(svc)
	store := NewStore(time.Minute)
	job := newJob(t, store, 9)

	out, batches := s.AutoContinue(context.Background(), job, 20*time.Millisecond)
	assert.False(t, out.Complete)
	assert.Equal(t, 1, batches)
	assert.Equal(t, 3, job.Cursor)
	assert.Len(t, job.Results, 3)

	// A later invocation resumes from the cursor.
	svc.delay = 0
	out, _ = s.AutoContinue(context.Background(), job, time.Minute)
	assert.True(t, out.Complete)
	assert.Len(t, job.Results, 9)
}

func TestStepChunkSerializesConcurrentCallers(t *testing.T) {
	// Overlapping continue requests step the same job; each step must
	// claim a distinct window so no question is duplicated or dropped
	// and len(results) keeps tracking the cursor.
	s := newTestScheduler(&stubService{})
	store := NewStore(time.Minute)
	job := newJob(t, store, 6)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.StepChunk(context.Background(), job, time.Minute)
		}()
	}
	wg.Wait()

	assert.True(t, job.Complete())
	assert.Equal(t, 6, job.Cursor)
	require.Len(t, job.Results, 6)
	for i, result := range job.Results {
		assert.Equal(t, i+1, result.QuestionNumber)
		assert.Equal(t, i+1, result.Row)
	}
}

func TestStepChunkOnDrainedJobIsIdempotent(t *testing.T) {
	s := newTestScheduler(&stubService{})
	store := NewStore(time.Minute)
	job := newJob(t, store, 2)

	first := s.StepChunk(context.Background(), job, time.Minute)
	assert.True(t, first.Complete)

	again := s.StepChunk(context.Background(), job, time.Minute)
	assert.True(t, again.Complete)
	assert.Equal(t, 0, again.Appended)
	assert.Len(t, again.Results, 2)
	assert.Len(t, job.Results, 2)
}

func TestOutcomeResultsAreACopy(t *testing.T) {
	// Response building reads the outcome while later steps may append;
	// the outcome must hold its own slice.
	s := newTestScheduler(&stubService{})
	store := NewStore(time.Minute)
	job := newJob(t, store, 6)

	out := s.StepChunk(context.Background(), job, time.Minute)
	require.Len(t, out.Results, 3)

	s.StepChunk(context.Background(), job, time.Minute)
	assert.Len(t, out.Results, 3)
	assert.Len(t, job.Results, 6)
}

func TestDuplicateTextsKeepTheirRows(t *testing.T) {
	// The same text occurring twice must bind each result to its own
	// source row.
	s := newTestScheduler(&stubService{})
	store := NewStore(time.Minute)
	questions := []types.Question{
		{Row: 4, Text: "same question"},
		{Row: 9, Text: "same question"},
	}
	job, err := store.Create(questions, false)
	require.NoError(t, err)

	out := s.StepChunk(context.Background(), job, time.Minute)
	assert.True(t, out.Complete)
	require.Len(t, job.Results, 2)
	assert.Equal(t, 4, job.Results[0].Row)
	assert.Equal(t, 9, job.Results[1].Row)
}
