package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/hirevox/hirevox/internal/cache"
	"github.com/hirevox/hirevox/internal/models"
	"github.com/hirevox/hirevox/internal/providers/llm"
	pgrepo "github.com/hirevox/hirevox/internal/repositories/postgres"
	"github.com/hirevox/hirevox/internal/utils"
)

// FeedbackDraft is the JSON shape the model is asked to produce.
type FeedbackDraft struct {
	TotalScore          int                    `json:"totalScore"`
	CategoryScores      []models.CategoryScore `json:"categoryScores"`
	Strengths           []string               `json:"strengths"`
	AreasForImprovement []string               `json:"areasForImprovement"`
	FinalAssessment     string                 `json:"finalAssessment"`
}

type FeedbackService interface {
	// Create synthesizes and persists feedback for the interview, then marks
	// it completed. At most one feedback exists per interview: repeated or
	// racing calls all converge on the stored record. On failure the
	// interview stays pending and the call is safe to retry.
	Create(ctx context.Context, userID, interviewID string, transcript []models.TranscriptTurn) (*models.Feedback, error)
	Get(ctx context.Context, userID, interviewID string) (*models.Feedback, error)
	// Synthesize runs the evaluation prompt. The draft is always
	// structurally complete; unparseable model output degrades to a fixed
	// default record, only a failed LLM invocation is an error.
	Synthesize(ctx context.Context, iv *models.Interview, transcript []models.TranscriptTurn) (*FeedbackDraft, error)
}

type feedbackService struct {
	llm        llm.Generator
	interviews pgrepo.InterviewRepository
	feedbacks  pgrepo.FeedbackRepository
	cache      cache.Cache
}

func NewFeedbackService(g llm.Generator, interviews pgrepo.InterviewRepository, feedbacks pgrepo.FeedbackRepository, c cache.Cache) FeedbackService {
	return &feedbackService{llm: g, interviews: interviews, feedbacks: feedbacks, cache: c}
}

func (s *feedbackService) Create(ctx context.Context, userID, interviewID string, transcript []models.TranscriptTurn) (*models.Feedback, error) {
	const op = "FeedbackService.Create"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if interviewID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview_id is required", nil)
	}
	if len(transcript) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "transcript is required", nil)
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

	// Cheap path before spending an LLM call. The unique-insert below still
	// closes the race this check leaves open.
	if existing, err := s.feedbacks.GetByInterviewID(ctx, interviewID); err == nil {
		return existing, nil
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check existing feedback", err)
	}

	draft, err := s.Synthesize(ctx, iv, transcript)
	if err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(transcript)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode transcript", err)
	}
	categories, err := json.Marshal(draft.CategoryScores)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode category scores", err)
	}

	fb := &models.Feedback{
		ID:                  uuid.NewString(),
		InterviewID:         interviewID,
		Transcript:          datatypes.JSON(snapshot),
		TotalScore:          draft.TotalScore,
		CategoryScores:      datatypes.JSON(categories),
		Strengths:           draft.Strengths,
		AreasForImprovement: draft.AreasForImprovement,
		FinalAssessment:     draft.FinalAssessment,
		CreatedAt:           time.Now().UTC(),
	}

	stored, err := s.feedbacks.CreateIfAbsent(ctx, fb)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store feedback", err)
	}

	// Completion follows only a winning insert; a racing loser returns the
	// winner's row and leaves status to the winner.
	if stored.ID == fb.ID {
		if err := s.interviews.SetStatus(ctx, interviewID, models.InterviewCompleted); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to complete interview", err)
		}
		_ = s.cache.Del(ctx, cache.InterviewKey(interviewID))
	}

	return stored, nil
}

func (s *feedbackService) Get(ctx context.Context, userID, interviewID string) (*models.Feedback, error) {
	const op = "FeedbackService.Get"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if interviewID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview_id is required", nil)
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

	fb, err := s.feedbacks.GetByInterviewID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "feedback not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get feedback", err)
	}
	return fb, nil
}

func (s *feedbackService) Synthesize(ctx context.Context, iv *models.Interview, transcript []models.TranscriptTurn) (*FeedbackDraft, error) {
	const op = "FeedbackService.Synthesize"

	if iv == nil || len(iv.Questions) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview with questions is required", nil)
	}
	if len(transcript) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "transcript is required", nil)
	}

	prompt := buildFeedbackPrompt(iv, transcript)
	raw, err := s.llm.GenerateText(ctx, prompt, llm.Options{
		Temperature:     0.7,
		MaxOutputTokens: 2048,
		JSONResponse:    true,
	})
	if err != nil {
		return nil, utils.E(utils.CodeFeedbackFailed, op, "failed to generate interview feedback", err)
	}

	return parseFeedback(raw), nil
}

// parseFeedback recovers a feedback draft from the model reply: whole reply
// as JSON, then first balanced object, then the fixed default record. Scores
// are clamped to [0,100] on the way in.
func parseFeedback(raw string) *FeedbackDraft {
	var draft FeedbackDraft
	if err := json.Unmarshal([]byte(raw), &draft); err == nil {
		return clampFeedback(&draft)
	}

	if obj, ok := extractJSONObject(raw); ok {
		draft = FeedbackDraft{}
		if err := json.Unmarshal([]byte(obj), &draft); err == nil {
			return clampFeedback(&draft)
		}
	}

	return defaultFeedback()
}

func clampFeedback(d *FeedbackDraft) *FeedbackDraft {
	d.TotalScore = clampScore(d.TotalScore)
	for i := range d.CategoryScores {
		d.CategoryScores[i].Score = clampScore(d.CategoryScores[i].Score)
	}
	return d
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func defaultFeedback() *FeedbackDraft {
	return &FeedbackDraft{
		TotalScore: 70,
		CategoryScores: []models.CategoryScore{
			{Name: "Technical Knowledge", Score: 70, Comment: "Demonstrated basic understanding of required technologies."},
			{Name: "Communication", Score: 75, Comment: "Communicated ideas with reasonable clarity."},
			{Name: "Problem-Solving", Score: 65, Comment: "Showed some problem-solving capability but could improve."},
		},
		Strengths: []string{
			"Showed enthusiasm for the role",
			"Demonstrated basic technical knowledge",
			"Responded to all questions",
		},
		AreasForImprovement: []string{
			"Could provide more detailed technical explanations",
			"Should practice more complex problem scenarios",
			"May benefit from more concise communication",
		},
		FinalAssessment: "The candidate shows potential but would benefit from additional preparation and practice in technical interviews.",
	}
}
