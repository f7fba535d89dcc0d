package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/Nikhil7960/plotpal-ai/internal/model"
)

// Placeholder values used when the model omits or mangles a field.
const (
	defaultReason        = "Identified as a candidate site in the analyzed area"
	defaultConsideration = "Requires on-site verification before development"
	defaultDescription   = "Potential development site identified from the map view."

	// coordJitter is the maximum synthetic offset (degrees, per axis,
	// roughly 500m) applied when the model omits coordinates.
	coordJitter = 0.005
)

// spaceDefaults controls per-candidate defaulting. The filter pass uses a
// stricter suitability default than the primary parse.
type spaceDefaults struct {
	namePrefix  string
	suitability int
}

var (
	primaryDefaults = spaceDefaults{namePrefix: "Potential Site", suitability: 70}
	filterDefaults  = spaceDefaults{namePrefix: "Site", suitability: 0}
)

// ParseResult turns raw vision-model text into a validated AnalysisResult.
// It never fails: unparseable text degrades to an empty candidate list with
// the full raw text preserved in Analysis for user inspection.
func ParseResult(raw string, center model.LatLng) *model.AnalysisResult {
	parsed, ok := decodeLooseJSON(raw)
	if !ok {
		return &model.AnalysisResult{
			VacantSpaces: []model.VacantSpace{},
			Analysis:     raw,
			Confidence:   50,
		}
	}

	spaces := []model.VacantSpace{}
	if list, ok := vacantSpacesField(parsed); ok {
		for i, item := range list {
			entry, _ := item.(map[string]any)
			spaces = append(spaces, normalizeSpace(entry, i+1, center, primaryDefaults))
		}
	}

	analysis := raw
	if s, ok := parsed["analysis"].(string); ok && s != "" {
		analysis = s
	}

	confidence := 70
	if f, ok := toNumber(parsed["confidence"]); ok {
		confidence = clampScore(f)
	}

	return &model.AnalysisResult{
		VacantSpaces: spaces,
		Analysis:     analysis,
		Confidence:   confidence,
	}
}

// decodeLooseJSON extracts and decodes the first JSON object found in
// possibly fence-wrapped, prose-surrounded model output.
func decodeLooseJSON(text string) (map[string]any, bool) {
	jsonStr, ok := extractJSONObject(stripCodeFence(text))
	if !ok {
		return nil, false
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil, false
	}
	return parsed, true
}

// stripCodeFence removes a surrounding ``` fence, with or without a
// language tag.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractJSONObject returns the first balanced {...} substring. A proper
// bracket-depth scan (string- and escape-aware) rather than a greedy
// first-to-last match, so trailing prose containing braces cannot corrupt
// the extraction.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// vacantSpacesField returns the vacantSpaces entry if present and a list.
func vacantSpacesField(parsed map[string]any) ([]any, bool) {
	v, ok := parsed["vacantSpaces"]
	if !ok {
		return nil, false
	}
	list, ok := v.([]any)
	return list, ok
}

// normalizeSpace applies the per-candidate defaulting rules. pos is the
// candidate's 1-based position, used for placeholder naming. A nil entry
// (non-object list element) yields a fully defaulted candidate.
func normalizeSpace(entry map[string]any, pos int, center model.LatLng, d spaceDefaults) model.VacantSpace {
	sp := model.VacantSpace{
		Location:       fmt.Sprintf("%s %d", d.namePrefix, pos),
		Coordinates:    jitterAround(center),
		Suitability:    d.suitability,
		Reasons:        []string{defaultReason},
		Considerations: []string{defaultConsideration},
		Description:    defaultDescription,
	}
	if entry == nil {
		return sp
	}

	if s, ok := entry["location"].(string); ok && s != "" {
		sp.Location = s
	}
	if c, ok := entry["coordinates"].(map[string]any); ok {
		lat, okLat := toNumber(c["lat"])
		lng, okLng := toNumber(c["lng"])
		if okLat && okLng {
			sp.Coordinates = model.LatLng{Lat: lat, Lng: lng}
		}
	}
	if f, ok := toNumber(entry["suitability"]); ok {
		sp.Suitability = clampScore(f)
	}
	if list, ok := stringList(entry["reasons"]); ok {
		sp.Reasons = list
	}
	if list, ok := stringList(entry["considerations"]); ok {
		sp.Considerations = list
	}
	if s, ok := entry["description"].(string); ok && s != "" {
		sp.Description = s
	}

	return sp
}

// jitterAround synthesizes coordinates near the map center, offset
// independently per axis by up to ±coordJitter degrees.
func jitterAround(center model.LatLng) model.LatLng {
	return model.LatLng{
		Lat: center.Lat + (rand.Float64()*2-1)*coordJitter,
		Lng: center.Lng + (rand.Float64()*2-1)*coordJitter,
	}
}

func toNumber(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// clampScore rounds to the nearest integer and clamps into [0,100].
func clampScore(f float64) int {
	n := int(math.Round(f))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// stringList accepts only a JSON array whose elements are all strings.
// Anything else (a bare string, mixed types, a non-array) is rejected so
// the caller falls back to the placeholder list wholesale.
func stringList(v any) ([]string, bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
