package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsreddy3/persona-backend/logic"
	"github.com/jsreddy3/persona-backend/middleware"
	"github.com/jsreddy3/persona-backend/models"
)

// MessageController handles HTTP requests
type MessageController struct {
	streamLogic *logic.StreamLogic
}

func NewMessageController(streamLogic *logic.StreamLogic) *MessageController {
	return &MessageController{streamLogic: streamLogic}
}

// AddMessage handles POST /conversations/:id/messages. Same pipeline as the
// streaming endpoint without incremental delivery; returns the user message
// and the assistant reply.
func (c *MessageController) AddMessage(ctx *gin.Context) {
	type Request struct {
		Content string `json:"content" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	convoID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	user := middleware.CurrentUser(ctx)
	userMsg, answer, err := c.streamLogic.SendMessage(ctx.Request.Context(), convoID, user.ID, req.Content)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, []*models.Message{userMsg, answer})
}

// StreamMessage handles GET /conversations/:id/stream. Assistant tokens are
// pushed as Server-Sent Events named "token"; the stream terminates with
// either a "done" or an "error" event.
func (c *MessageController) StreamMessage(ctx *gin.Context) {
	convoID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}
	content := ctx.Query("content")

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	user := middleware.CurrentUser(ctx)
	_, _, err = c.streamLogic.StreamMessage(ctx.Request.Context(), convoID, user.ID, content, func(chunk string) error {
		ctx.SSEvent("token", chunk)
		ctx.Writer.Flush()
		return nil
	})
	if err != nil {
		ctx.SSEvent("error", streamErrorMessage(err))
		ctx.Writer.Flush()
		return
	}

	ctx.SSEvent("done", "")
	ctx.Writer.Flush()
}
