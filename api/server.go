package api

import (
	"errors"
	"net/http"

	"surveytranslator/batch"
	"surveytranslator/config"
	"surveytranslator/progress"

	"github.com/gin-gonic/gin"
)

// Server bundles the scheduling context shared by all controllers: one
// job store, one scheduler, one progress tracker per process.
type Server struct {
	scheduler *batch.Scheduler
	store     *batch.Store
	tracker   *progress.Tracker
}

// NewServer creates the API server around its collaborators.
func NewServer(scheduler *batch.Scheduler, store *batch.Store, tracker *progress.Tracker) *Server {
	return &Server{
		scheduler: scheduler,
		store:     store,
		tracker:   tracker,
	}
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = config.MaxUploadSize

	s.RegisterBatchRoutes(r)
	s.RegisterProgressRoutes(r)
	s.RegisterExportRoutes(r)
	RegisterHealthRoutes(r)
	return r
}

// statusForError maps the batch error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, batch.ErrNoQuestions), errors.Is(err, batch.ErrTooManyQuestions):
		return http.StatusBadRequest
	case errors.Is(err, batch.ErrNoBatch), errors.Is(err, batch.ErrJobNotFound):
		return http.StatusNotFound
	case errors.Is(err, batch.ErrBatchInProgress):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
