package llm

import (
	"context"
	"strings"
	"time"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/iterator"
)

type VertexGemini struct {
	client    *vertexgenai.Client
	modelName string
	timeout   time.Duration
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string, timeout time.Duration) (*VertexGemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-1.5-pro"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &VertexGemini{client: c, modelName: modelName, timeout: timeout}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

func (v *VertexGemini) GenerateText(ctx context.Context, prompt string, opts Options) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	m := v.client.GenerativeModel(v.modelName)
	if opts.Temperature > 0 {
		m.SetTemperature(opts.Temperature)
	}
	if opts.MaxOutputTokens > 0 {
		m.SetMaxOutputTokens(opts.MaxOutputTokens)
	}
	if opts.JSONResponse {
		m.ResponseMIMEType = "application/json"
	}

	var sb strings.Builder
	it := m.GenerateContentStream(ctx, vertexgenai.Text(prompt))
	for {
		resp, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return "", err
		}

		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if t, ok := part.(vertexgenai.Text); ok && string(t) != "" {
					sb.WriteString(string(t))
				}
			}
		}
	}
	return sb.String(), nil
}
