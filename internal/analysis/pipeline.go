// Package analysis implements the vision-analysis result pipeline: prompt
// construction, response parsing and validation, and the optional
// second-pass land-use filter.
package analysis

import (
	"context"

	"github.com/Nikhil7960/plotpal-ai/internal/model"
	"github.com/Nikhil7960/plotpal-ai/internal/vision"
)

// Pipeline runs one analysis per call. It is stateless apart from its
// configured backends, so concurrent calls are independent.
type Pipeline struct {
	vision vision.Invoker
	filter vision.Completer
}

// New creates a Pipeline. filter may be nil, which disables the second-pass
// land-use filter without error.
func New(v vision.Invoker, filter vision.Completer) *Pipeline {
	return &Pipeline{vision: v, filter: filter}
}

// Analyze sends the map screenshot to the vision model and returns the
// validated result. It fails only when the vision call itself fails; a
// malformed model response degrades to a best-effort result instead.
func (p *Pipeline) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	prompt := BuildAnalysisPrompt(req.BuildingType, req.LocationLabel, req.MapCenter)

	raw, err := p.vision.Invoke(ctx, prompt, req.ImagePNG)
	if err != nil {
		return nil, err
	}

	return ParseResult(raw, req.MapCenter), nil
}
