package api

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vidqa/api/store"
)

// Transcript size model shared with the client's length estimate
const (
	charsPerMinute = 900
	chunkSize      = 600
	chunkOverlap   = 100
)

func (s *Server) registerVideoRoutes(r *gin.RouterGroup) {
	g := r.Group("/videos")
	g.POST("/process", s.handleProcessVideo)
	g.GET("/list", s.handleListVideos)
	g.DELETE("/:id", s.handleDeleteVideo)
}

// ProcessVideoRequest is the body of POST /videos/process
type ProcessVideoRequest struct {
	VideoURL string `json:"video_url" binding:"required"`
}

// ProcessVideoResponse is returned by POST /videos/process
type ProcessVideoResponse struct {
	VideoID          string `json:"video_id"`
	Title            string `json:"title"`
	TranscriptLength int    `json:"transcript_length"`
	ChunksCreated    int    `json:"chunks_created"`
	Status           string `json:"status"`
	Channel          string `json:"channel,omitempty"`
	PublishDate      string `json:"publish_date,omitempty"`
	Duration         string `json:"duration,omitempty"`
}

// ListedVideo is one entry of GET /videos/list
type ListedVideo struct {
	VideoID   string     `json:"video_id"`
	Info      listedInfo `json:"info"`
	Processed bool       `json:"processed"`
}

type listedInfo struct {
	Title            string `json:"title"`
	TranscriptLength int    `json:"transcript_length"`
	ChunksCreated    int    `json:"chunks_created"`
	URL              string `json:"url"`
	Channel          string `json:"channel"`
	PublishDate      string `json:"publish_date"`
	Duration         string `json:"duration,omitempty"`
	Description      string `json:"description,omitempty"`
}

func (s *Server) handleProcessVideo(c *gin.Context) {
	var req ProcessVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := ExtractVideoID(req.VideoURL)
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx := c.Request.Context()

	if existing, err := s.store.Video(ctx, id); err == nil {
		c.JSON(http.StatusOK, processResponse(existing, "already_processed"))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		abortWithDetail(c, http.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}

	md, err := s.metadata.Lookup(ctx, id)
	if err != nil {
		s.log.Warn("metadata lookup failed, using placeholder", "video_id", id, "error", err)
		md, _ = PlaceholderMetadata{}.Lookup(ctx, id)
	}

	length := transcriptLength(id)
	v := store.Video{
		ID:               id,
		URL:              strings.TrimSpace(req.VideoURL),
		Title:            md.Title,
		Channel:          md.Channel,
		PublishDate:      md.PublishDate,
		Duration:         md.Duration,
		Description:      md.Description,
		TranscriptLength: length,
		ChunksCreated:    chunkCount(length),
		ProcessedAt:      s.now(),
	}
	if err := s.store.SaveVideo(ctx, v); err != nil {
		abortWithDetail(c, http.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}

	s.log.Info("processed video", "video_id", id, "title", v.Title)
	c.JSON(http.StatusOK, processResponse(v, "success"))
}

func (s *Server) handleListVideos(c *gin.Context) {
	videos, err := s.store.Videos(c.Request.Context())
	if err != nil {
		abortWithDetail(c, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]ListedVideo, 0, len(videos))
	for _, v := range videos {
		out = append(out, ListedVideo{
			VideoID: v.ID,
			Info: listedInfo{
				Title:            v.Title,
				TranscriptLength: v.TranscriptLength,
				ChunksCreated:    v.ChunksCreated,
				URL:              v.URL,
				Channel:          v.Channel,
				PublishDate:      v.PublishDate,
				Duration:         v.Duration,
				Description:      v.Description,
			},
			Processed: true,
		})
	}
	c.JSON(http.StatusOK, gin.H{"videos": out})
}

func (s *Server) handleDeleteVideo(c *gin.Context) {
	id := c.Param("id")
	err := s.store.DeleteVideo(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		abortWithDetail(c, http.StatusNotFound, "Video not found")
		return
	}
	if err != nil {
		abortWithDetail(c, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info("deleted video", "video_id", id)
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Video %s deleted successfully", id)})
}

func processResponse(v store.Video, status string) ProcessVideoResponse {
	return ProcessVideoResponse{
		VideoID:          v.ID,
		Title:            v.Title,
		TranscriptLength: v.TranscriptLength,
		ChunksCreated:    v.ChunksCreated,
		Status:           status,
		Channel:          v.Channel,
		PublishDate:      v.PublishDate,
		Duration:         v.Duration,
	}
}

// transcriptLength derives a stable pseudo transcript size between 3 and
// 40 minutes of speech
func transcriptLength(videoID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(videoID))
	minutes := 3 + int(h.Sum32()%38)
	return minutes * charsPerMinute
}

func chunkCount(length int) int {
	step := chunkSize - chunkOverlap
	return (length + step - 1) / step
}
