package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hirevox/hirevox/internal/cache"
	"github.com/hirevox/hirevox/internal/models"
	pgrepo "github.com/hirevox/hirevox/internal/repositories/postgres"
	"github.com/hirevox/hirevox/internal/utils"
)

const interviewCacheTTL = 10 * time.Minute

type InterviewService interface {
	Create(ctx context.Context, userID, ivType, level, role string, techStack []string) (*models.Interview, error)
	// Get returns the interview only to its owner; foreign rows read as
	// not found.
	Get(ctx context.Context, userID, interviewID string) (*models.Interview, error)
}

type interviewService struct {
	questions  QuestionService
	interviews pgrepo.InterviewRepository
	cache      cache.Cache
}

func NewInterviewService(questions QuestionService, interviews pgrepo.InterviewRepository, c cache.Cache) InterviewService {
	return &interviewService{questions: questions, interviews: interviews, cache: c}
}

func (s *interviewService) Create(ctx context.Context, userID, ivType, level, role string, techStack []string) (*models.Interview, error) {
	const op = "InterviewService.Create"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if !models.ValidInterviewType(ivType) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview_type must be technical, behavioral, or mixed", nil)
	}
	if !models.ValidExperienceLevel(level) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "experience_level must be entry, intermediate, or senior", nil)
	}
	if strings.TrimSpace(role) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "role is required", nil)
	}
	if len(techStack) < 1 || len(techStack) > 5 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "tech_stack must have 1-5 entries", nil)
	}

	qs, err := s.questions.Generate(ctx, ivType, level, role, techStack)
	if err != nil {
		return nil, err
	}

	iv := &models.Interview{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      ivType,
		Level:     level,
		Role:      FormatRole(role),
		TechStack: techStack,
		Questions: qs,
		Status:    models.InterviewPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.interviews.Create(ctx, iv); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create interview", err)
	}

	// best effort
	_ = s.cache.SetJSON(ctx, cache.InterviewKey(iv.ID), iv, interviewCacheTTL)

	return iv, nil
}

func (s *interviewService) Get(ctx context.Context, userID, interviewID string) (*models.Interview, error) {
	const op = "InterviewService.Get"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if interviewID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview_id is required", nil)
	}

	var cached models.Interview
	if hit, _ := s.cache.GetJSON(ctx, cache.InterviewKey(interviewID), &cached); hit {
		if cached.UserID != userID {
			return nil, utils.E(utils.CodeNotFound, op, "interview not found", nil)
		}
		return &cached, nil
	}

	iv, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "interview not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get interview", err)
	}
	if iv.UserID != userID {
		return nil, utils.E(utils.CodeNotFound, op, "interview not found", nil)
	}

	_ = s.cache.SetJSON(ctx, cache.InterviewKey(interviewID), iv, interviewCacheTTL)
	return iv, nil
}
