package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hirevox/hirevox/internal/models"
)

// Full pass over the session pipeline: question generation, the final
// conversational turns, and feedback synthesis, with a scripted model.
func TestInterviewFlow(t *testing.T) {
	ctx := context.Background()

	questions := make([]string, 8)
	for i := range questions {
		questions[i] = "Question " + string(rune('A'+i))
	}
	qJSON, _ := json.Marshal(questions)

	gen := &fakeGenerator{reply: string(qJSON)}
	qsvc := NewQuestionService(gen)

	got, err := qsvc.Generate(ctx, "technical", "senior", "backend-developer", []string{"python", "docker"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(got) < 8 || len(got) > 10 {
		t.Fatalf("expected 8-10 questions, got %d", len(got))
	}

	iv := testInterview(got...)

	transcript := []models.TranscriptTurn{
		{Role: models.RoleInterviewer, Content: got[7]},
		{Role: models.RoleCandidate, Content: "Here is a partial answer."},
		{Role: models.RoleInterviewer, Content: "Could you go deeper?"},
	}

	// full answer to the last question
	gen.reply = "Thorough answer, well done. MOVE_TO_NEXT"
	csvc := NewConversationService(gen, 0)

	res, err := csvc.Advance(ctx, iv, 7, "A complete detailed answer.", transcript)
	if err != nil {
		t.Fatalf("advance at last question: %v", err)
	}
	if !res.MoveToNext {
		t.Fatal("expected MoveToNext at the last question")
	}
	if strings.Contains(res.Message, tokenMoveToNext) {
		t.Error("control token leaked into message")
	}

	transcript = append(transcript,
		models.TranscriptTurn{Role: models.RoleCandidate, Content: "A complete detailed answer."},
		models.TranscriptTurn{Role: models.RoleInterviewer, Content: res.Message},
	)

	// index now past the end: fixed wrap-up without an LLM call
	before := gen.calls
	res, err = csvc.Advance(ctx, iv, 8, "Thank you.", transcript)
	if err != nil {
		t.Fatalf("advance past end: %v", err)
	}
	if !res.EndInterview || res.Message != wrapUpMessage {
		t.Fatalf("expected wrap-up end, got %+v", res)
	}
	if gen.calls != before {
		t.Error("wrap-up turn must not call the LLM")
	}

	transcript = append(transcript, models.TranscriptTurn{Role: models.RoleCandidate, Content: "Thank you."})

	gen.reply = validFeedbackJSON
	fsvc := NewFeedbackService(gen, newFakeInterviewRepo(), newFakeFeedbackRepo(), newFakeCache())

	draft, err := fsvc.Synthesize(ctx, iv, transcript)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if draft.TotalScore < 0 || draft.TotalScore > 100 {
		t.Errorf("total score %d out of range", draft.TotalScore)
	}
	if len(draft.CategoryScores) != 3 {
		t.Errorf("expected exactly 3 category scores, got %d", len(draft.CategoryScores))
	}
}
