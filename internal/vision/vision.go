// Package vision wraps the remote vision and text model endpoints behind
// small interfaces so the analysis pipeline never cares which backend is
// configured.
package vision

import (
	"context"
	"fmt"
)

// Invoker sends a prompt plus one PNG image to a vision-capable model and
// returns the raw text response.
type Invoker interface {
	Invoke(ctx context.Context, prompt string, imagePNG []byte) (string, error)
}

// Completer sends a system instruction plus a user message to a text-only
// model and returns the complete response text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ConfigError means a required API credential is missing. It is reported
// before any network activity happens.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// InvocationError means a model call failed: network error, non-success
// HTTP status, or an SDK-level failure.
type InvocationError struct {
	Backend string
	Err     error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Backend, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }
