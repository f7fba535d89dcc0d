package vision

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// Groq invokes a Groq-hosted text model via its OpenAI-compatible
// chat-completions API. The response is streamed and accumulated under a
// deadline so a stalled stream can never block a filter pass forever.
type Groq struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewGroq creates a Groq completer using the GROQ_API_KEY env var.
// A missing key returns nil: callers treat that as filtering disabled.
func NewGroq(model string, timeout time.Duration) *Groq {
	key := os.Getenv("GROQ_API_KEY")
	if key == "" {
		return nil
	}

	cfg := openai.DefaultConfig(key)
	cfg.BaseURL = groqBaseURL

	return &Groq{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

// Complete streams a chat completion and returns the concatenated chunks.
func (g *Groq) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	stream, err := g.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Stream: true,
	})
	if err != nil {
		return "", &InvocationError{Backend: "groq", Err: err}
	}
	defer stream.Close()

	var sb strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", &InvocationError{Backend: "groq", Err: err}
		}
		if len(resp.Choices) > 0 {
			sb.WriteString(resp.Choices[0].Delta.Content)
		}
	}

	return sb.String(), nil
}
