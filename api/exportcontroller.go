package api

import (
	"net/http"
	"time"

	"surveytranslator/excel"
	"surveytranslator/types"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportRequest carries the results to render into a workbook.
type ExportRequest struct {
	Results []types.QuestionResult `json:"results" binding:"required"`
}

// RegisterExportRoutes registers the result download endpoint.
func (s *Server) RegisterExportRoutes(r *gin.Engine) {
	r.POST("/api/export", s.handleExport)
}

// handleExport renders the posted results as a downloadable workbook,
// one data row per result.
func (s *Server) handleExport(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Results) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No results to download"})
		return
	}

	now := time.Now()
	buf, err := excel.WriteResults(req.Results, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate workbook: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+excel.ExportFilename(now)+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
