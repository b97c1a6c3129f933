package services

import (
	"context"
	"strings"
	"time"

	"github.com/hirevox/hirevox/internal/models"
	"github.com/hirevox/hirevox/internal/providers/llm"
	"github.com/hirevox/hirevox/internal/utils"
)

type fakeGenerator struct {
	reply string
	err   error

	calls      int
	lastPrompt string
	lastOpts   llm.Options
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string, opts llm.Options) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastOpts = opts
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeGenerator) Close() error { return nil }

func contains(s, sub string) bool { return strings.Contains(s, sub) }

type fakeInterviewRepo struct {
	rows        map[string]*models.Interview
	statusCalls int
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{rows: map[string]*models.Interview{}}
}

func (r *fakeInterviewRepo) Create(_ context.Context, iv *models.Interview) error {
	cp := *iv
	r.rows[iv.ID] = &cp
	return nil
}

func (r *fakeInterviewRepo) GetByID(_ context.Context, id string) (*models.Interview, error) {
	iv, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *iv
	return &cp, nil
}

func (r *fakeInterviewRepo) SetStatus(_ context.Context, id, status string) error {
	iv, ok := r.rows[id]
	if !ok {
		return utils.ErrNotFound
	}
	iv.Status = status
	r.statusCalls++
	return nil
}

type fakeFeedbackRepo struct {
	byInterview map[string]*models.Feedback
	inserts     int
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{byInterview: map[string]*models.Feedback{}}
}

func (r *fakeFeedbackRepo) CreateIfAbsent(_ context.Context, fb *models.Feedback) (*models.Feedback, error) {
	if existing, ok := r.byInterview[fb.InterviewID]; ok {
		cp := *existing
		return &cp, nil
	}
	cp := *fb
	r.byInterview[fb.InterviewID] = &cp
	r.inserts++
	out := cp
	return &out, nil
}

func (r *fakeFeedbackRepo) GetByInterviewID(_ context.Context, interviewID string) (*models.Feedback, error) {
	fb, ok := r.byInterview[interviewID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *fb
	return &cp, nil
}

type fakeCache struct {
	m    map[string][]byte
	dels []string
}

func newFakeCache() *fakeCache { return &fakeCache{m: map[string][]byte{}} }

func (c *fakeCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	return false, nil
}

func (c *fakeCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	c.m[key] = []byte("set")
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.dels = append(c.dels, keys...)
	return nil
}
