package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Nikhil7960/plotpal-ai/internal/model"
)

func sampleResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		VacantSpaces: []model.VacantSpace{
			{
				Location:       "Corner lot on 5th",
				Coordinates:    model.LatLng{Lat: 40.1, Lng: -74.2},
				Suitability:    82,
				Reasons:        []string{"high foot traffic"},
				Considerations: []string{"zoning unclear"},
				Description:    "an empty corner lot",
			},
		},
		Analysis:   "promising area",
		Confidence: 77,
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded model.AnalysisResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.VacantSpaces[0].Location != "Corner lot on 5th" {
		t.Errorf("round trip lost data: %+v", decoded)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleResult(), model.BuildingCafe, "Trenton"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Trenton",
		"coffee shop or cafe",
		"Corner lot on 5th",
		"suitability 82%",
		"+ high foot traffic",
		"- zoning unclear",
		"Confidence:    77%",
		"promising area",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q in:\n%s", want, out)
		}
	}
}

func TestWriteText_NoCandidates(t *testing.T) {
	var buf bytes.Buffer
	result := &model.AnalysisResult{VacantSpaces: []model.VacantSpace{}, Analysis: "nothing", Confidence: 50}
	if err := WriteText(&buf, result, model.BuildingPark, "Nowhere"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if !strings.Contains(buf.String(), "No suitable locations found") {
		t.Errorf("expected no-results message in:\n%s", buf.String())
	}
}
