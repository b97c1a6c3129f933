package services

import (
	"context"
	"strings"

	"github.com/hirevox/hirevox/internal/models"
	"github.com/hirevox/hirevox/internal/providers/llm"
	"github.com/hirevox/hirevox/internal/utils"
)

// Control tokens the model embeds in its reply to steer the session. They
// are stripped before the message reaches the candidate.
const (
	tokenMoveToNext    = "MOVE_TO_NEXT"
	tokenStayOnCurrent = "STAY_ON_CURRENT"
	tokenEndInterview  = "END_INTERVIEW"
)

// Spoken once every prepared question has been covered. No LLM call is made
// for this turn.
const wrapUpMessage = "We have completed all the questions. Let's wrap up the interview. Thank you for your time."

// DefaultTranscriptWindow is how many trailing transcript turns are embedded
// in the per-turn prompt. Older turns are dropped from the prompt only; the
// full transcript itself is unbounded.
const DefaultTranscriptWindow = 10

type AdvanceResult struct {
	Message      string `json:"message"`
	MoveToNext   bool   `json:"move_to_next"`
	EndInterview bool   `json:"end_interview"`
}

type ConversationService interface {
	// Advance runs one conversational turn. The caller owns persistence: it
	// appends the candidate utterance and the returned message to the
	// transcript and bumps the question index when MoveToNext is set. On
	// CONVERSATION_FAILED the same turn may simply be retried.
	Advance(ctx context.Context, iv *models.Interview, questionIndex int, userInput string, transcript []models.TranscriptTurn) (*AdvanceResult, error)
}

type conversationService struct {
	llm    llm.Generator
	window int
}

func NewConversationService(g llm.Generator, transcriptWindow int) ConversationService {
	if transcriptWindow <= 0 {
		transcriptWindow = DefaultTranscriptWindow
	}
	return &conversationService{llm: g, window: transcriptWindow}
}

func (s *conversationService) Advance(ctx context.Context, iv *models.Interview, questionIndex int, userInput string, transcript []models.TranscriptTurn) (*AdvanceResult, error) {
	const op = "ConversationService.Advance"

	if iv == nil || len(iv.Questions) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview with questions is required", nil)
	}
	if questionIndex < 0 || questionIndex > len(iv.Questions) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "current_question is out of range", nil)
	}
	if strings.TrimSpace(userInput) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_input is required", nil)
	}

	// All prepared questions covered: wrap up without consulting the model.
	if questionIndex == len(iv.Questions) {
		return &AdvanceResult{Message: wrapUpMessage, EndInterview: true}, nil
	}

	history := transcript
	if len(history) > s.window {
		history = history[len(history)-s.window:]
	}

	prompt := buildConversationPrompt(iv, iv.Questions[questionIndex], history, userInput)
	raw, err := s.llm.GenerateText(ctx, prompt, llm.Options{})
	if err != nil {
		return nil, utils.E(utils.CodeConversationFailed, op, "failed to generate interview response", err)
	}

	// Absence of any token means stay on the current question.
	res := &AdvanceResult{
		MoveToNext:   strings.Contains(raw, tokenMoveToNext),
		EndInterview: strings.Contains(raw, tokenEndInterview),
	}
	res.Message = stripControlTokens(raw)
	return res, nil
}

func stripControlTokens(s string) string {
	s = strings.ReplaceAll(s, tokenMoveToNext, "")
	s = strings.ReplaceAll(s, tokenStayOnCurrent, "")
	s = strings.ReplaceAll(s, tokenEndInterview, "")
	return strings.TrimSpace(s)
}
