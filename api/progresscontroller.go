package api

import (
	"io"
	"net/http"

	"surveytranslator/config"

	"github.com/gin-gonic/gin"
)

// RegisterProgressRoutes registers the pull and push progress endpoints.
func (s *Server) RegisterProgressRoutes(r *gin.Engine) {
	g := r.Group("/api/progress")
	g.GET("", s.handleGetProgress)
	g.GET("/stream", s.handleStreamProgress)
}

// handleGetProgress returns the current snapshot; before any batch has
// started this is the idle snapshot.
func (s *Server) handleGetProgress(c *gin.Context) {
	c.JSON(http.StatusOK, s.tracker.Snapshot())
}

// handleStreamProgress serves progress as server-sent events. The stream
// closes itself on a terminal status and after the hard age cap, so the
// platform never cuts the connection silently; clients reconnect.
func (s *Server) handleStreamProgress(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	updates := s.tracker.Stream(c.Request.Context(), config.StreamHeartbeat, config.StreamMaxAge)

	c.Stream(func(w io.Writer) bool {
		snap, ok := <-updates
		if !ok {
			return false
		}
		c.SSEvent("progress", snap)
		return true
	})
}
