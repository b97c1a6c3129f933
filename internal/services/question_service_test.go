package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/hirevox/hirevox/internal/utils"
)

func TestGenerate_JSONArrayWithProse(t *testing.T) {
	gen := &fakeGenerator{reply: "Here are the questions:\n[\"What is a goroutine?\", \"Explain Docker layers.\"]\nGood luck!"}
	svc := NewQuestionService(gen)

	qs, err := svc.Generate(context.Background(), "technical", "senior", "backend-developer", []string{"go", "docker"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"What is a goroutine?", "Explain Docker layers."}
	if !reflect.DeepEqual(qs, want) {
		t.Errorf("got %v, want %v", qs, want)
	}
}

func TestGenerate_CleanJSONArray(t *testing.T) {
	gen := &fakeGenerator{reply: `["Q1", "Q2", "Q3"]`}
	svc := NewQuestionService(gen)

	qs, err := svc.Generate(context.Background(), "mixed", "entry", "frontend-developer", []string{"react"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 3 {
		t.Errorf("expected 3 questions, got %d", len(qs))
	}
}

func TestGenerate_LineFallback(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{
			name:  "dash prefixed",
			reply: "Sure, here you go:\n- What is CI/CD?\n- How does TLS work?\n\nLet me know if you need more.",
			want:  []string{"What is CI/CD?", "How does TLS work?"},
		},
		{
			name:  "quoted lines",
			reply: "\"Describe the CAP theorem.\",\n\"What is eventual consistency?\"",
			want:  []string{"Describe the CAP theorem.", "What is eventual consistency?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseQuestions(tt.reply)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerate_DefaultFallback(t *testing.T) {
	gen := &fakeGenerator{reply: "I cannot help with that right now."}
	svc := NewQuestionService(gen)

	qs, err := svc.Generate(context.Background(), "behavioral", "intermediate", "product-manager", []string{"jira"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(qs, defaultQuestions) {
		t.Errorf("got %v, want default set", qs)
	}
}

func TestGenerate_NeverEmpty(t *testing.T) {
	replies := []string{"", "{}", "[]", "null", "no questions today"}
	for _, reply := range replies {
		if qs := parseQuestions(reply); len(qs) == 0 {
			t.Errorf("parseQuestions(%q) returned empty result", reply)
		}
	}
}

func TestGenerate_LLMError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream 503")}
	svc := NewQuestionService(gen)

	_, err := svc.Generate(context.Background(), "technical", "senior", "backend-developer", []string{"python", "docker"})
	if !utils.IsCode(err, utils.CodeGenerationFailed) {
		t.Errorf("expected GENERATION_FAILED, got %v", err)
	}
}

func TestGenerate_Validation(t *testing.T) {
	svc := NewQuestionService(&fakeGenerator{reply: "[]"})

	if _, err := svc.Generate(context.Background(), "", "senior", "x", []string{"go"}); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Errorf("missing type: expected INVALID_ARGUMENT, got %v", err)
	}
	if _, err := svc.Generate(context.Background(), "technical", "senior", "x", nil); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Errorf("empty stack: expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestGenerate_PromptContents(t *testing.T) {
	gen := &fakeGenerator{reply: `["Q"]`}
	svc := NewQuestionService(gen)

	if _, err := svc.Generate(context.Background(), "technical", "senior", "backend-developer", []string{"python", "docker"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"senior", "Backend Developer", "technical", "python, docker"} {
		if !contains(gen.lastPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestFormatRole(t *testing.T) {
	tests := []struct{ in, want string }{
		{"frontend-developer", "Frontend Developer"},
		{"devops-engineer", "Devops Engineer"},
		{"architect", "Architect"},
	}
	for _, tt := range tests {
		if got := FormatRole(tt.in); got != tt.want {
			t.Errorf("FormatRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
