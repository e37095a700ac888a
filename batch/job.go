package batch

import (
	"errors"
	"sync"
	"time"

	"surveytranslator/types"

	"github.com/google/uuid"
)

var (
	// ErrNoBatch is returned when continuation is requested and nothing
	// has been started (or the last job expired).
	ErrNoBatch = errors.New("no batch pending")
	// ErrBatchInProgress is returned when a new batch is started while an
	// unfinished one is live and the caller did not ask for a reset.
	ErrBatchInProgress = errors.New("batch already in progress")
	// ErrJobNotFound is returned for unknown or expired job IDs.
	ErrJobNotFound = errors.New("batch job not found")
	// ErrNoQuestions rejects an empty batch.
	ErrNoQuestions = errors.New("no questions found")
	// ErrTooManyQuestions rejects a batch over the configured limit.
	ErrTooManyQuestions = errors.New("too many questions")
)

// State is the explicit lifecycle of a job, instead of inferring it from
// which fields happen to be populated.
type State string

const (
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
)

// Job is one identifiable batch: the ordered question list, the results
// accumulated so far, and the cursor marking the next unprocessed
// question. len(Results) == Cursor holds after every chunk step; the
// cursor only moves forward. mu serializes chunk steps, so overlapping
// continue requests advance the cursor instead of racing on it;
// ID and Questions are immutable after creation and need no lock.
type Job struct {
	mu sync.Mutex

	ID        string                 `json:"id"`
	Questions []types.Question       `json:"questions"`
	Results   []types.QuestionResult `json:"results"`
	Cursor    int                    `json:"cursor"`
	State     State                  `json:"state"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Complete reports whether every question has a result.
func (j *Job) Complete() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.complete()
}

// Remaining is the number of questions not yet covered by the cursor.
func (j *Job) Remaining() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.remaining()
}

// Summary tallies the accumulated results.
func (j *Job) Summary() types.BatchSummary {
	j.mu.Lock()
	defer j.mu.Unlock()
	return types.Summarize(j.Results)
}

func (j *Job) complete() bool {
	return j.Cursor >= len(j.Questions)
}

func (j *Job) remaining() int {
	return len(j.Questions) - j.Cursor
}

// snapshot describes the job as-is, with a copy of the results so the
// caller can read them after the lock is released. Caller holds mu.
func (j *Job) snapshot() Outcome {
	return Outcome{
		Complete:   j.complete(),
		NextCursor: j.Cursor,
		Remaining:  j.remaining(),
		Results:    append([]types.QuestionResult(nil), j.Results...),
	}
}

// currentOutcome is the locked entry to snapshot.
func (j *Job) currentOutcome() Outcome {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.snapshot()
}

// Store keeps jobs keyed by ID with an expiry, plus the notion of the
// "current" job so continuation endpoints can omit the ID. State is
// process-local; losing it on restart is acceptable.
type Store struct {
	mu        sync.Mutex
	jobs      map[string]*Job
	currentID string
	ttl       time.Duration
}

// NewStore creates a store whose jobs expire ttl after their last update.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

// Create registers a new in-progress job and makes it current. An
// unfinished current job blocks creation unless reset is set, in which
// case it is discarded.
func (s *Store) Create(questions []types.Question, reset bool) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(time.Now())

	if cur, ok := s.jobs[s.currentID]; ok && !cur.Complete() && !reset {
		return nil, ErrBatchInProgress
	}

	now := time.Now()
	job := &Job{
		ID:        uuid.NewString(),
		Questions: questions,
		Results:   make([]types.QuestionResult, 0, len(questions)),
		State:     StateInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.jobs[job.ID] = job
	s.currentID = job.ID
	return job, nil
}

// Get returns a job by ID.
func (s *Store) Get(id string) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(time.Now())

	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// Current returns the live job, or ErrNoBatch when nothing is pending.
func (s *Store) Current() (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(time.Now())

	job, ok := s.jobs[s.currentID]
	if !ok {
		return nil, ErrNoBatch
	}
	return job, nil
}

// sweep drops expired jobs. Caller holds the lock.
func (s *Store) sweep(now time.Time) {
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
			if id == s.currentID {
				s.currentID = ""
			}
		}
	}
}
