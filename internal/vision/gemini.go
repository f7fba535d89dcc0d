package vision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini invokes a Gemini vision model through the official SDK.
type Gemini struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	name    string
	timeout time.Duration
}

// NewGemini creates a Gemini backend using the GEMINI_API_KEY env var.
func NewGemini(ctx context.Context, modelName string, timeout time.Duration) (*Gemini, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return nil, &ConfigError{Msg: "GEMINI_API_KEY environment variable not set"}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Gemini{
		client:  client,
		model:   client.GenerativeModel(modelName),
		name:    modelName,
		timeout: timeout,
	}, nil
}

// Close releases the underlying SDK client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Invoke sends the prompt and image and returns the concatenated text parts
// of the first candidate.
func (g *Gemini) Invoke(ctx context.Context, prompt string, imagePNG []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	slog.Info("invoking vision model", "backend", "gemini", "model", g.name,
		"prompt_len", len(prompt), "image_bytes", len(imagePNG))

	resp, err := g.model.GenerateContent(ctx,
		genai.Text(prompt),
		genai.Blob{MIMEType: "image/png", Data: imagePNG},
	)
	if err != nil {
		return "", &InvocationError{Backend: "gemini", Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &InvocationError{Backend: "gemini", Err: errors.New("no content returned")}
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	if text == "" {
		return "", &InvocationError{Backend: "gemini", Err: errors.New("response contained no text parts")}
	}

	return text, nil
}
