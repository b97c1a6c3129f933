package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hirevox/hirevox/internal/models"
	"github.com/hirevox/hirevox/internal/utils"
)

func testInterview(questions ...string) *models.Interview {
	if len(questions) == 0 {
		questions = []string{"Q1", "Q2", "Q3"}
	}
	return &models.Interview{
		ID:        "iv-1",
		UserID:    "user-1",
		Type:      "technical",
		Level:     "senior",
		Role:      "Backend Developer",
		TechStack: []string{"python", "docker"},
		Questions: questions,
		Status:    models.InterviewPending,
	}
}

func TestAdvance_WrapUpWithoutLLM(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("must not be called")}
	svc := NewConversationService(gen, 0)
	iv := testInterview()

	res, err := svc.Advance(context.Background(), iv, len(iv.Questions), "thanks", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("expected no LLM call, got %d", gen.calls)
	}
	if !res.EndInterview {
		t.Error("expected EndInterview = true")
	}
	if res.MoveToNext {
		t.Error("expected MoveToNext = false")
	}
	if res.Message != wrapUpMessage {
		t.Errorf("got message %q, want the fixed wrap-up text", res.Message)
	}
}

func TestAdvance_TokenHandling(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		wantMove bool
		wantEnd  bool
		wantMsg  string
	}{
		{
			name:     "move to next",
			reply:    "Good answer. MOVE_TO_NEXT Let's continue.",
			wantMove: true,
			wantMsg:  "Good answer.  Let's continue.",
		},
		{
			name:    "stay on current",
			reply:   "Can you elaborate? STAY_ON_CURRENT",
			wantMsg: "Can you elaborate?",
		},
		{
			name:    "end interview",
			reply:   "END_INTERVIEW That covers everything, thank you.",
			wantEnd: true,
			wantMsg: "That covers everything, thank you.",
		},
		{
			name:     "all tokens at once",
			reply:    "MOVE_TO_NEXT STAY_ON_CURRENT END_INTERVIEW Done.",
			wantMove: true,
			wantEnd:  true,
			wantMsg:  "Done.",
		},
		{
			name:     "repeated token",
			reply:    "MOVE_TO_NEXT ok MOVE_TO_NEXT",
			wantMove: true,
			wantMsg:  "ok",
		},
		{
			name:    "no token means stay",
			reply:   "Tell me more about that deployment.",
			wantMsg: "Tell me more about that deployment.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewConversationService(&fakeGenerator{reply: tt.reply}, 0)

			res, err := svc.Advance(context.Background(), testInterview(), 0, "my answer", nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.MoveToNext != tt.wantMove {
				t.Errorf("MoveToNext = %v, want %v", res.MoveToNext, tt.wantMove)
			}
			if res.EndInterview != tt.wantEnd {
				t.Errorf("EndInterview = %v, want %v", res.EndInterview, tt.wantEnd)
			}
			if res.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", res.Message, tt.wantMsg)
			}
			for _, tok := range []string{tokenMoveToNext, tokenStayOnCurrent, tokenEndInterview} {
				if contains(res.Message, tok) {
					t.Errorf("message still contains %s", tok)
				}
			}
		})
	}
}

func TestAdvance_TranscriptWindow(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc := NewConversationService(gen, 0) // default window of 10

	var transcript []models.TranscriptTurn
	for i := 0; i < 15; i++ {
		transcript = append(transcript, models.TranscriptTurn{
			Role:    models.RoleCandidate,
			Content: fmt.Sprintf("turn-%02d", i),
		})
	}

	if _, err := svc.Advance(context.Background(), testInterview(), 0, "answer", transcript); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if contains(gen.lastPrompt, "turn-04") {
		t.Error("prompt contains a turn older than the window")
	}
	if !contains(gen.lastPrompt, "turn-05") || !contains(gen.lastPrompt, "turn-14") {
		t.Error("prompt missing turns inside the window")
	}
}

func TestAdvance_CustomWindow(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc := NewConversationService(gen, 2)

	transcript := []models.TranscriptTurn{
		{Role: models.RoleInterviewer, Content: "first"},
		{Role: models.RoleCandidate, Content: "second"},
		{Role: models.RoleInterviewer, Content: "third"},
	}

	if _, err := svc.Advance(context.Background(), testInterview(), 0, "answer", transcript); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contains(gen.lastPrompt, "first") {
		t.Error("prompt contains a turn outside the window")
	}
	if !contains(gen.lastPrompt, "second") || !contains(gen.lastPrompt, "third") {
		t.Error("prompt missing windowed turns")
	}
}

func TestAdvance_PromptEmbedsCurrentQuestion(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc := NewConversationService(gen, 0)
	iv := testInterview("What is a pointer?", "What is a slice?")

	if _, err := svc.Advance(context.Background(), iv, 1, "answer", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !contains(gen.lastPrompt, "What is a slice?") {
		t.Error("prompt missing the current question")
	}
	if !contains(gen.lastPrompt, "USER: answer") {
		t.Error("prompt missing the new utterance")
	}
}

func TestAdvance_LLMError(t *testing.T) {
	svc := NewConversationService(&fakeGenerator{err: errors.New("deadline exceeded")}, 0)

	_, err := svc.Advance(context.Background(), testInterview(), 0, "answer", nil)
	if !utils.IsCode(err, utils.CodeConversationFailed) {
		t.Errorf("expected CONVERSATION_FAILED, got %v", err)
	}
}

func TestAdvance_Validation(t *testing.T) {
	svc := NewConversationService(&fakeGenerator{reply: "ok"}, 0)
	iv := testInterview()

	if _, err := svc.Advance(context.Background(), iv, -1, "answer", nil); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Errorf("negative index: expected INVALID_ARGUMENT, got %v", err)
	}
	if _, err := svc.Advance(context.Background(), iv, len(iv.Questions)+1, "answer", nil); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Errorf("index past end: expected INVALID_ARGUMENT, got %v", err)
	}
	if _, err := svc.Advance(context.Background(), iv, 0, "  ", nil); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Errorf("blank input: expected INVALID_ARGUMENT, got %v", err)
	}
}
