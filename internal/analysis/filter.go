package analysis

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Nikhil7960/plotpal-ai/internal/model"
)

// Filter re-submits a parsed result to the text-only filter model, which
// removes candidates on unsuitable land (water, protected areas, and so on).
// Strictly best-effort: any failure anywhere returns the original result
// unchanged, and a nil completer means filtering is disabled entirely.
func (p *Pipeline) Filter(ctx context.Context, result *model.AnalysisResult, bt model.BuildingType, locationLabel string) *model.AnalysisResult {
	if p.filter == nil || result == nil {
		return result
	}

	serialized, err := json.Marshal(result)
	if err != nil {
		return result
	}

	text, err := p.filter.Complete(ctx, FilterSystemInstruction(), buildFilterUserMessage(string(serialized), bt, locationLabel))
	if err != nil {
		slog.Warn("filter pass failed, keeping original result", "error", err)
		return result
	}

	parsed, ok := decodeLooseJSON(text)
	if !ok {
		slog.Warn("filter response was not valid JSON, keeping original result")
		return result
	}

	// A filter response without a candidate list must not destroy a good
	// analysis.
	list, ok := vacantSpacesField(parsed)
	if !ok {
		slog.Warn("filter response missing vacantSpaces, keeping original result")
		return result
	}

	anchor := candidateCentroid(result.VacantSpaces)

	spaces := []model.VacantSpace{}
	for i, item := range list {
		entry, _ := item.(map[string]any)
		spaces = append(spaces, normalizeSpace(entry, i+1, anchor, filterDefaults))
	}

	analysis := result.Analysis
	if s, ok := parsed["analysis"].(string); ok && s != "" {
		analysis = s
	}

	confidence := result.Confidence
	if f, ok := toNumber(parsed["confidence"]); ok {
		confidence = clampScore(f)
	}

	return &model.AnalysisResult{
		VacantSpaces: spaces,
		Analysis:     analysis,
		Confidence:   confidence,
	}
}

// candidateCentroid anchors synthetic coordinates for filtered candidates
// that arrive without any. The filter contract carries no map center, so the
// mean of the original candidates stands in for it.
func candidateCentroid(spaces []model.VacantSpace) model.LatLng {
	if len(spaces) == 0 {
		return model.LatLng{}
	}
	var c model.LatLng
	for _, sp := range spaces {
		c.Lat += sp.Coordinates.Lat
		c.Lng += sp.Coordinates.Lng
	}
	c.Lat /= float64(len(spaces))
	c.Lng /= float64(len(spaces))
	return c
}
