package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vidqa/api/store"
	"vidqa/types"
)

func (s *Server) registerQuestionRoutes(r *gin.RouterGroup) {
	g := r.Group("/questions")
	g.POST("/ask", s.handleAskQuestion)
	g.GET("/conversation/:id", s.handleGetConversation)
	g.DELETE("/conversation/:id", s.handleClearConversation)
}

// AskQuestionRequest is the body of POST /questions/ask
type AskQuestionRequest struct {
	Question            string                      `json:"question"`
	VideoID             string                      `json:"video_id"`
	ConversationHistory []types.ConversationMessage `json:"conversation_history"`
}

func (s *Server) handleAskQuestion(c *gin.Context) {
	var req AskQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		abortWithDetail(c, http.StatusBadRequest, "Question is required")
		return
	}
	if req.VideoID == "" {
		abortWithDetail(c, http.StatusBadRequest, "No video specified")
		return
	}
	ctx := c.Request.Context()

	v, err := s.store.Video(ctx, req.VideoID)
	if errors.Is(err, store.ErrNotFound) {
		abortWithDetail(c, http.StatusBadRequest, fmt.Sprintf("Video %s not processed", req.VideoID))
		return
	}
	if err != nil {
		abortWithDetail(c, http.StatusInternalServerError, "Error generating answer: "+err.Error())
		return
	}

	resp := cannedAnswer(v, req.Question, req.ConversationHistory)
	err = s.store.AppendConversation(ctx, v.ID,
		types.ConversationMessage{Role: types.RoleUser, Content: req.Question},
		types.ConversationMessage{Role: types.RoleAssistant, Content: resp["answer"].(string)},
	)
	if err != nil {
		abortWithDetail(c, http.StatusInternalServerError, "Error generating answer: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetConversation(c *gin.Context) {
	id := c.Param("id")
	msgs, _, err := s.store.Conversation(c.Request.Context(), id)
	if err != nil {
		abortWithDetail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"video_id": id, "conversation": msgs})
}

func (s *Server) handleClearConversation(c *gin.Context) {
	id := c.Param("id")
	err := s.store.ClearConversation(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		abortWithDetail(c, http.StatusNotFound, "No conversation found for this video")
		return
	}
	if err != nil {
		abortWithDetail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Conversation cleared for video %s", id)})
}
