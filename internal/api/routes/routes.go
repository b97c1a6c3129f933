package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hirevox/hirevox/internal/api/handlers"
	"github.com/hirevox/hirevox/internal/api/middleware"
)

type Deps struct {
	Interview    *handlers.InterviewHandler
	Conversation *handlers.ConversationHandler
	Feedback     *handlers.FeedbackHandler
	WS           *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.POST("/interview/generate", d.Interview.Generate)
	auth.GET("/interview/:interview_id", d.Interview.Get)

	auth.POST("/interview/:interview_id/conversation", d.Conversation.Turn)

	auth.POST("/interview/:interview_id/feedback", d.Feedback.Create)
	auth.GET("/interview/:interview_id/feedback", d.Feedback.Get)

	// WebSocket voice-session channel
	auth.GET("/ws/interview/:interview_id", d.WS.SessionWS)
}
