package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const openRouterAPI = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouter invokes a vision model (e.g. Qwen-VL) through the OpenRouter
// chat-completions API, with the image inlined as a base64 data URL.
type OpenRouter struct {
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// NewOpenRouter creates an OpenRouter backend using the OPENROUTER_API_KEY
// env var.
func NewOpenRouter(model string, timeout time.Duration) (*OpenRouter, error) {
	key := os.Getenv("OPENROUTER_API_KEY")
	if key == "" {
		return nil, &ConfigError{Msg: "OPENROUTER_API_KEY environment variable not set"}
	}
	return &OpenRouter{
		APIKey:     key,
		Model:      model,
		HTTPClient: &http.Client{Timeout: timeout},
	}, nil
}

type orRequest struct {
	Model    string      `json:"model"`
	Messages []orMessage `json:"messages"`
}

type orMessage struct {
	Role    string          `json:"role"`
	Content []orContentPart `json:"content"`
}

type orContentPart struct {
	Type     string      `json:"type"`
	Text     string      `json:"text,omitempty"`
	ImageURL *orImageURL `json:"image_url,omitempty"`
}

type orImageURL struct {
	URL string `json:"url"`
}

type orResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Invoke sends a single chat-completion request and returns the first
// choice's message content.
func (c *OpenRouter) Invoke(ctx context.Context, prompt string, imagePNG []byte) (string, error) {
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(imagePNG)

	reqBody := orRequest{
		Model: c.Model,
		Messages: []orMessage{
			{
				Role: "user",
				Content: []orContentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &orImageURL{URL: dataURL}},
				},
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openRouterAPI, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &InvocationError{Backend: "openrouter", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &InvocationError{Backend: "openrouter", Err: fmt.Errorf("reading response: %w", err)}
	}

	var apiResp orResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", &InvocationError{Backend: "openrouter", Err: fmt.Errorf("parsing response: %w", err)}
	}

	if apiResp.Error != nil {
		return "", &InvocationError{Backend: "openrouter", Err: errors.New(apiResp.Error.Message)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &InvocationError{Backend: "openrouter", Err: fmt.Errorf("status %d: %.200s", resp.StatusCode, string(respBody))}
	}
	if len(apiResp.Choices) == 0 {
		return "", &InvocationError{Backend: "openrouter", Err: errors.New("empty response")}
	}

	return apiResp.Choices[0].Message.Content, nil
}
