package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hirevox/hirevox/internal/models"
	"github.com/hirevox/hirevox/internal/services"
	"github.com/hirevox/hirevox/internal/utils"
)

type ConversationHandler struct {
	interviews    services.InterviewService
	conversations services.ConversationService
}

func NewConversationHandler(interviews services.InterviewService, conversations services.ConversationService) *ConversationHandler {
	return &ConversationHandler{interviews: interviews, conversations: conversations}
}

type ConversationTurnRequest struct {
	UserInput       string                  `json:"user_input" binding:"required"`
	CurrentQuestion *int                    `json:"current_question" binding:"required"`
	Transcript      []models.TranscriptTurn `json:"transcript"`
}

// Turn runs one conversational exchange. The caller holds the live
// transcript and question index between turns and passes both in.
func (h *ConversationHandler) Turn(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ConversationTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ConversationHandler.Turn", "invalid request body", err))
		return
	}

	iv, err := h.interviews.Get(c.Request.Context(), userID, c.Param("interview_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := h.conversations.Advance(c.Request.Context(), iv, *req.CurrentQuestion, req.UserInput, req.Transcript)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
