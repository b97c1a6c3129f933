package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/hirevox/hirevox/internal/providers/llm"
	"github.com/hirevox/hirevox/internal/utils"
)

// Fallback set when the model reply yields nothing usable.
var defaultQuestions = []string{
	"Tell me about yourself and your experience.",
	"What are your strengths and weaknesses?",
}

type QuestionService interface {
	// Generate asks the LLM for 8-10 questions matching the interview
	// configuration. The result is always non-empty; malformed model output
	// degrades through parse fallbacks, never into an error. Only a failed
	// LLM invocation is an error.
	Generate(ctx context.Context, ivType, level, role string, techStack []string) ([]string, error)
}

type questionService struct {
	llm llm.Generator
}

func NewQuestionService(g llm.Generator) QuestionService {
	return &questionService{llm: g}
}

func (s *questionService) Generate(ctx context.Context, ivType, level, role string, techStack []string) ([]string, error) {
	const op = "QuestionService.Generate"

	if ivType == "" || level == "" || role == "" || len(techStack) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "type, level, role, and tech_stack are required", nil)
	}

	prompt := buildQuestionPrompt(ivType, level, role, techStack)
	raw, err := s.llm.GenerateText(ctx, prompt, llm.Options{})
	if err != nil {
		return nil, utils.E(utils.CodeGenerationFailed, op, "failed to generate interview questions", err)
	}

	return parseQuestions(raw), nil
}

// parseQuestions recovers a question list from a loosely structured model
// reply. Preference order: first balanced JSON array, whole reply as JSON,
// quoted or dash-prefixed lines, fixed default set.
func parseQuestions(raw string) []string {
	if arr, ok := extractJSONArray(raw); ok {
		if qs := decodeQuestionArray(arr); len(qs) > 0 {
			return qs
		}
	}

	if qs := decodeQuestionArray(raw); len(qs) > 0 {
		return qs
	}

	if qs := questionsFromLines(raw); len(qs) > 0 {
		return qs
	}

	out := make([]string, len(defaultQuestions))
	copy(out, defaultQuestions)
	return out
}

func decodeQuestionArray(s string) []string {
	var qs []string
	if err := json.Unmarshal([]byte(s), &qs); err != nil {
		return nil
	}
	out := qs[:0]
	for _, q := range qs {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}

func questionsFromLines(raw string) []string {
	var qs []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, `"`) && !strings.HasPrefix(line, "- ") {
			continue
		}
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, `"`)
		line = strings.TrimSuffix(line, `",`)
		line = strings.TrimSuffix(line, `"`)
		if line = strings.TrimSpace(line); line != "" {
			qs = append(qs, line)
		}
	}
	return qs
}
