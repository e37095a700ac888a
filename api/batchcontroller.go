package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"surveytranslator/batch"
	"surveytranslator/config"
	"surveytranslator/excel"
	"surveytranslator/types"

	"github.com/gin-gonic/gin"
)

// RegisterBatchRoutes registers batch lifecycle endpoints.
func (s *Server) RegisterBatchRoutes(r *gin.Engine) {
	g := r.Group("/api/batch")
	g.POST("/start", s.handleStartBatch)
	g.POST("/continue", s.handleContinueBatch)
	g.POST("/auto-continue", s.handleAutoContinueBatch)
	r.POST("/api/upload", s.handleUpload)
}

// StartBatchRequest carries the raw question texts in source order.
type StartBatchRequest struct {
	Questions []string `json:"questions" binding:"required"`
	// Reset discards an unfinished live batch instead of rejecting.
	Reset bool `json:"reset"`
}

// BatchResponse is the common envelope for start/continue steps.
type BatchResponse struct {
	Success          bool                   `json:"success"`
	JobID            string                 `json:"job_id"`
	Results          []types.QuestionResult `json:"results"`
	TotalQuestions   int                    `json:"total_questions"`
	Complete         bool                   `json:"complete"`
	NextCursor       int                    `json:"next_cursor"`
	Remaining        int                    `json:"remaining"`
	BatchesProcessed int                    `json:"batches_processed,omitempty"`
	Summary          *types.BatchSummary    `json:"summary,omitempty"`
	ProcessedAt      string                 `json:"processed_at"`
}

// handleStartBatch validates the question list, creates the job, and
// runs the first time-bounded chunk before responding.
func (s *Server) handleStartBatch(c *gin.Context) {
	var req StartBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questions := make([]types.Question, 0, len(req.Questions))
	for i, text := range req.Questions {
		questions = append(questions, types.Question{Row: i + 1, Text: text})
	}

	s.startAndStep(c, questions, req.Reset)
}

// handleUpload accepts a workbook, extracts the first-column questions
// and starts a batch over them.
func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if !excel.AllowedExtension(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Please upload an Excel file (.xlsx or .xls)"})
		return
	}
	if fileHeader.Size > config.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large. Maximum size is 2MB."})
		return
	}

	s.tracker.Set(types.ProgressSnapshot{
		Status:  types.ProgressReading,
		Message: fmt.Sprintf("Reading %s", fileHeader.Filename),
	})

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open upload: " + err.Error()})
		return
	}
	defer file.Close()

	questions, err := excel.ReadQuestions(file)
	if err != nil {
		log.Printf("Error processing file %s: %v", fileHeader.Filename, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "File processing error: " + err.Error()})
		return
	}

	s.startAndStep(c, questions, c.PostForm("reset") == "true")
}

// startAndStep is the shared tail of both start paths.
func (s *Server) startAndStep(c *gin.Context, questions []types.Question, reset bool) {
	if err := s.scheduler.Validate(questions); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	job, err := s.store.Create(questions, reset)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	log.Printf("Batch %s started with %d question(s)", job.ID, len(questions))
	outcome := s.scheduler.StepChunk(c.Request.Context(), job, config.ChunkTimeBudget)
	c.JSON(http.StatusOK, stepResponse(job, outcome))
}

// handleContinueBatch advances the live batch by one chunk. An optional
// job_id query parameter addresses a specific job.
func (s *Server) handleContinueBatch(c *gin.Context) {
	job, err := s.resolveJob(c)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	outcome := s.scheduler.StepChunk(c.Request.Context(), job, config.ChunkTimeBudget)
	c.JSON(http.StatusOK, stepResponse(job, outcome))
}

// handleAutoContinueBatch loops chunk steps under one aggregate budget.
func (s *Server) handleAutoContinueBatch(c *gin.Context) {
	job, err := s.resolveJob(c)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	outcome, batches := s.scheduler.AutoContinue(c.Request.Context(), job, config.AutoContinueBudget)

	resp := stepResponse(job, outcome)
	resp.BatchesProcessed = batches
	if outcome.Complete {
		summary := job.Summary()
		resp.Summary = &summary
	}
	c.JSON(http.StatusOK, resp)
}

// resolveJob picks the addressed job, defaulting to the current one.
func (s *Server) resolveJob(c *gin.Context) (*batch.Job, error) {
	if id := c.Query("job_id"); id != "" {
		return s.store.Get(id)
	}
	return s.store.Current()
}

// stepResponse builds the common envelope. Only the immutable job
// fields are read here; results come from the outcome's copy.
func stepResponse(job *batch.Job, outcome batch.Outcome) *BatchResponse {
	return &BatchResponse{
		Success:        true,
		JobID:          job.ID,
		Results:        outcome.Results,
		TotalQuestions: len(job.Questions),
		Complete:       outcome.Complete,
		NextCursor:     outcome.NextCursor,
		Remaining:      outcome.Remaining,
		ProcessedAt:    time.Now().Format(time.RFC3339),
	}
}
