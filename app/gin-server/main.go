package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/hirevox/hirevox/config"
	"github.com/hirevox/hirevox/internal/api/handlers"
	"github.com/hirevox/hirevox/internal/api/middleware"
	"github.com/hirevox/hirevox/internal/api/routes"
	"github.com/hirevox/hirevox/internal/cache"
	"github.com/hirevox/hirevox/internal/logger"
	"github.com/hirevox/hirevox/internal/providers/llm"
	mongorepo "github.com/hirevox/hirevox/internal/repositories/mongo"
	pgrepo "github.com/hirevox/hirevox/internal/repositories/postgres"
	"github.com/hirevox/hirevox/internal/services"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	pg, err := config.InitPostgres()
	if err != nil {
		log.WithError(err).Fatal("PostgreSQL init error")
	}
	log.Info("PostgreSQL connected")

	rdb, err := config.InitRedis(ctx)
	if err != nil {
		log.WithError(err).Fatal("Redis init error")
	}
	log.Info("Redis connected")

	mongoClient, err := config.InitMongo(ctx)
	if err != nil {
		log.WithError(err).Fatal("MongoDB init error")
	}
	mongoDB := config.MongoDatabase(mongoClient)
	if err := config.EnsureMongoIndexes(ctx, mongoDB); err != nil {
		log.WithError(err).Fatal("MongoDB index error")
	}
	log.Info("MongoDB connected")

	// LLM client is constructed once here and injected, never held as
	// ambient global state.
	gemini, err := llm.NewVertexGemini(ctx,
		os.Getenv("VERTEX_PROJECT_ID"),
		os.Getenv("VERTEX_LOCATION"),
		os.Getenv("VERTEX_MODEL"),
		envDuration("LLM_TIMEOUT", 60*time.Second),
	)
	if err != nil {
		log.WithError(err).Fatal("Vertex AI init error")
	}
	defer gemini.Close()

	redisCache := cache.NewRedisCache(rdb)

	interviewRepo := pgrepo.NewInterviewRepo(pg)
	feedbackRepo := pgrepo.NewFeedbackRepo(pg)
	liveSessionRepo := mongorepo.NewLiveSessionRepo(mongoDB)
	transcriptRepo := mongorepo.NewTranscriptRepo(mongoDB)

	questionSvc := services.NewQuestionService(gemini)
	interviewSvc := services.NewInterviewService(questionSvc, interviewRepo, redisCache)
	conversationSvc := services.NewConversationService(gemini, envInt("CONVERSATION_WINDOW", services.DefaultTranscriptWindow))
	feedbackSvc := services.NewFeedbackService(gemini, interviewRepo, feedbackRepo, redisCache)
	liveSvc := services.NewLiveSessionService(liveSessionRepo, transcriptRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Interview:    handlers.NewInterviewHandler(interviewSvc),
		Conversation: handlers.NewConversationHandler(interviewSvc, conversationSvc),
		Feedback:     handlers.NewFeedbackHandler(feedbackSvc),
		WS:           handlers.NewWSHandler(interviewSvc, conversationSvc, feedbackSvc, liveSvc, rdb, log),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return def
}
