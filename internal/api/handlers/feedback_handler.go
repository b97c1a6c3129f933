package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hirevox/hirevox/internal/models"
	"github.com/hirevox/hirevox/internal/services"
	"github.com/hirevox/hirevox/internal/utils"
)

type FeedbackHandler struct {
	svc services.FeedbackService
}

func NewFeedbackHandler(svc services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

type CreateFeedbackRequest struct {
	Transcript []models.TranscriptTurn `json:"transcript" binding:"required"`
}

type CreateFeedbackResponse struct {
	FeedbackID string `json:"feedback_id"`
}

// Create is idempotent: posting the same interview twice returns the
// feedback stored by the first call.
func (h *FeedbackHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "FeedbackHandler.Create", "invalid request body", err))
		return
	}

	fb, err := h.svc.Create(c.Request.Context(), userID, c.Param("interview_id"), req.Transcript)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateFeedbackResponse{FeedbackID: fb.ID})
}

func (h *FeedbackHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fb, err := h.svc.Get(c.Request.Context(), userID, c.Param("interview_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, fb)
}
