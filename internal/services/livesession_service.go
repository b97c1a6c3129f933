package services

import (
	"context"
	"errors"
	"time"

	"github.com/hirevox/hirevox/internal/models"
	mongorepo "github.com/hirevox/hirevox/internal/repositories/mongo"
	"github.com/hirevox/hirevox/internal/utils"
	"github.com/hirevox/hirevox/internal/voice"
)

// LiveSessionService persists the in-flight voice session: the state
// machine position, the current question index, and the buffered transcript.
// Durable results go to the interview and feedback services.
type LiveSessionService interface {
	// Start registers a fresh session for the interview. Allowed only when
	// no session exists or the previous one is idle or finished.
	Start(ctx context.Context, userID, interviewID string) (*models.LiveSession, error)
	SetState(ctx context.Context, interviewID string, st voice.State) error
	SetQuestionIndex(ctx context.Context, interviewID string, idx int) error
	End(ctx context.Context, interviewID string) error

	AppendTurn(ctx context.Context, interviewID string, seq int64, role, content string) error
	Transcript(ctx context.Context, interviewID string) ([]models.TranscriptTurn, error)
}

type liveSessionService struct {
	sessions    mongorepo.LiveSessionRepository
	transcripts mongorepo.TranscriptRepository
}

func NewLiveSessionService(sessions mongorepo.LiveSessionRepository, transcripts mongorepo.TranscriptRepository) LiveSessionService {
	return &liveSessionService{sessions: sessions, transcripts: transcripts}
}

func (s *liveSessionService) Start(ctx context.Context, userID, interviewID string) (*models.LiveSession, error) {
	const op = "LiveSessionService.Start"

	if userID == "" || interviewID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and interview_id are required", nil)
	}

	existing, err := s.sessions.GetByInterviewID(ctx, interviewID)
	switch {
	case err == nil:
		if !voice.State(existing.Status).CanStart() {
			return nil, utils.E(utils.CodeConflict, op, "a session is already in progress for this interview", nil)
		}
	case errors.Is(err, utils.ErrNotFound):
		// first session for this interview
	default:
		return nil, utils.E(utils.CodeInternal, op, "failed to check existing session", err)
	}

	sess := &models.LiveSession{
		InterviewID:   interviewID,
		UserID:        userID,
		Status:        string(voice.StateConnecting),
		QuestionIndex: 0,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.sessions.Upsert(ctx, sess); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to start session", err)
	}
	return sess, nil
}

func (s *liveSessionService) SetState(ctx context.Context, interviewID string, st voice.State) error {
	const op = "LiveSessionService.SetState"

	if interviewID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "interview_id is required", nil)
	}
	if err := s.sessions.SetStatus(ctx, interviewID, string(st)); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to set session state", err)
	}
	return nil
}

func (s *liveSessionService) SetQuestionIndex(ctx context.Context, interviewID string, idx int) error {
	const op = "LiveSessionService.SetQuestionIndex"

	if interviewID == "" || idx < 0 {
		return utils.E(utils.CodeInvalidArgument, op, "interview_id and a non-negative index are required", nil)
	}
	if err := s.sessions.SetQuestionIndex(ctx, interviewID, idx); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to set question index", err)
	}
	return nil
}

func (s *liveSessionService) End(ctx context.Context, interviewID string) error {
	const op = "LiveSessionService.End"

	if interviewID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "interview_id is required", nil)
	}
	if err := s.sessions.End(ctx, interviewID, time.Now().UTC()); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to end session", err)
	}
	return nil
}

func (s *liveSessionService) AppendTurn(ctx context.Context, interviewID string, seq int64, role, content string) error {
	const op = "LiveSessionService.AppendTurn"

	if interviewID == "" || content == "" {
		return utils.E(utils.CodeInvalidArgument, op, "interview_id and content are required", nil)
	}
	if role != models.RoleInterviewer && role != models.RoleCandidate {
		return utils.E(utils.CodeInvalidArgument, op, "role must be interviewer or candidate", nil)
	}

	entry := &models.TranscriptEntry{
		InterviewID: interviewID,
		Seq:         seq,
		Role:        role,
		Content:     content,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.transcripts.Append(ctx, entry); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to append transcript turn", err)
	}
	return nil
}

func (s *liveSessionService) Transcript(ctx context.Context, interviewID string) ([]models.TranscriptTurn, error) {
	const op = "LiveSessionService.Transcript"

	if interviewID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview_id is required", nil)
	}

	entries, err := s.transcripts.ListByInterview(ctx, interviewID, 0)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list transcript", err)
	}

	turns := make([]models.TranscriptTurn, 0, len(entries))
	for _, e := range entries {
		turns = append(turns, models.TranscriptTurn{Role: e.Role, Content: e.Content})
	}
	return turns, nil
}
