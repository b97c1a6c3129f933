package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hirevox/hirevox/internal/services"
	"github.com/hirevox/hirevox/internal/utils"
)

type InterviewHandler struct {
	svc services.InterviewService
}

func NewInterviewHandler(svc services.InterviewService) *InterviewHandler {
	return &InterviewHandler{svc: svc}
}

type GenerateInterviewRequest struct {
	InterviewType   string   `json:"interview_type" binding:"required"`   // technical|behavioral|mixed
	ExperienceLevel string   `json:"experience_level" binding:"required"` // entry|intermediate|senior
	Role            string   `json:"role" binding:"required"`
	TechStack       []string `json:"tech_stack" binding:"required"`
}

type GenerateInterviewResponse struct {
	InterviewID string `json:"interview_id"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

func (h *InterviewHandler) Generate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req GenerateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Generate", "invalid request body", err))
		return
	}

	iv, err := h.svc.Create(c.Request.Context(), userID, req.InterviewType, req.ExperienceLevel, req.Role, req.TechStack)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateInterviewResponse{
		InterviewID: iv.ID,
		Status:      iv.Status,
		CreatedAt:   iv.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (h *InterviewHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	iv, err := h.svc.Get(c.Request.Context(), userID, c.Param("interview_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, iv)
}
