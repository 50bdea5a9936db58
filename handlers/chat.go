package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-healthai/llm"
	"go-healthai/processor"
	"go-healthai/types"
)

// ChatProcessor runs one conversation turn.
type ChatProcessor interface {
	Handle(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error)
}

// Chat handles POST /api/chat. The whole turn, model fallbacks included, must
// finish within timeout.
func Chat(p ChatProcessor, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Bind
		var req types.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message"})
			return
		}

		// 2. Process
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		resp, err := p.Handle(ctx, req)
		switch {
		case errors.Is(err, processor.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message"})
			return
		case errors.Is(err, llm.ErrNoModels):
			log.Printf("Chat: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No language model configured. Please set OPENAI_API_KEY."})
			return
		case err != nil:
			log.Printf("Chat: request %s failed: %v", c.GetString("requestID"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request. Please try again."})
			return
		}

		// 3. Respond
		c.JSON(http.StatusOK, resp)
	}
}
