package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vidqa/api/store"
)

func (s *Server) registerSummaryRoutes(r *gin.RouterGroup) {
	r.POST("/summaries/generate", s.handleGenerateSummary)
}

// GenerateSummaryRequest is the body of POST /summaries/generate
type GenerateSummaryRequest struct {
	VideoID string `json:"video_id"`
}

func (s *Server) handleGenerateSummary(c *gin.Context) {
	var req GenerateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.VideoID == "" {
		abortWithDetail(c, http.StatusBadRequest, "video_id is required")
		return
	}

	v, err := s.store.Video(c.Request.Context(), req.VideoID)
	if errors.Is(err, store.ErrNotFound) {
		abortWithDetail(c, http.StatusNotFound, "Video "+req.VideoID+" not processed")
		return
	}
	if err != nil {
		abortWithDetail(c, http.StatusInternalServerError, "Error generating summary: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, cannedSummary(v))
}
