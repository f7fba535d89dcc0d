package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Nikhil7960/plotpal-ai/internal/geocode"
	"github.com/Nikhil7960/plotpal-ai/internal/model"
	"github.com/Nikhil7960/plotpal-ai/internal/vision"
)

type fakeAnalyzer struct {
	result      *model.AnalysisResult
	err         error
	filtered    *model.AnalysisResult
	filterCalls int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	return f.result, f.err
}

func (f *fakeAnalyzer) Filter(ctx context.Context, result *model.AnalysisResult, bt model.BuildingType, locationLabel string) *model.AnalysisResult {
	f.filterCalls++
	if f.filtered != nil {
		return f.filtered
	}
	return result
}

type fakeGeocoder struct {
	result *geocode.Result
	err    error
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query string) (*geocode.Result, error) {
	return f.result, f.err
}

type fakeFinder struct {
	pois []model.POI
	err  error
}

func (f *fakeFinder) Nearby(ctx context.Context, center model.LatLng, radiusM int) ([]model.POI, error) {
	return f.pois, f.err
}

func sampleResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		VacantSpaces: []model.VacantSpace{{
			Location:    "Empty lot",
			Coordinates: model.LatLng{Lat: 40.1, Lng: -74.2},
			Suitability: 80,
		}},
		Analysis:   "looks good",
		Confidence: 75,
	}
}

func analyzeForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", "map.png")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("fake png bytes"))
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()
	return &body, mw.FormDataContentType()
}

func TestHandleAnalyze(t *testing.T) {
	analyzer := &fakeAnalyzer{result: sampleResult()}
	s := &Server{Analyzer: analyzer}

	body, contentType := analyzeForm(t, map[string]string{
		"building_type": "cafe",
		"location":      "Trenton",
		"lat":           "40.22",
		"lng":           "-74.76",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	s.handleAnalyze(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var resp analyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.VacantSpaces) != 1 || resp.VacantSpaces[0].Location != "Empty lot" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Message != "" {
		t.Errorf("unexpected message for non-empty result: %q", resp.Message)
	}
	if analyzer.filterCalls != 0 {
		t.Error("filter must not run unless requested")
	}
}

func TestHandleAnalyze_FilterRequested(t *testing.T) {
	filtered := &model.AnalysisResult{VacantSpaces: []model.VacantSpace{}, Analysis: "all removed", Confidence: 75}
	analyzer := &fakeAnalyzer{result: sampleResult(), filtered: filtered}
	s := &Server{Analyzer: analyzer}

	body, contentType := analyzeForm(t, map[string]string{
		"building_type": "cafe",
		"lat":           "40.22",
		"lng":           "-74.76",
		"filter":        "true",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	s.handleAnalyze(rec, req)
	if analyzer.filterCalls != 1 {
		t.Fatalf("expected one filter call, got %d", analyzer.filterCalls)
	}

	var resp analyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Message != noResultsMessage {
		t.Errorf("empty result should carry the no-results message, got %q", resp.Message)
	}
}

func TestHandleAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing credential", &vision.ConfigError{Msg: "GEMINI_API_KEY is not set"}, http.StatusInternalServerError},
		{"upstream failure", &vision.InvocationError{Backend: "gemini", Err: errors.New("status 429")}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Server{Analyzer: &fakeAnalyzer{err: tt.err}}

			body, contentType := analyzeForm(t, map[string]string{
				"building_type": "gym",
				"lat":           "40",
				"lng":           "-74",
			})
			req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			s.handleAnalyze(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestHandleAnalyze_BadRequests(t *testing.T) {
	s := &Server{Analyzer: &fakeAnalyzer{result: sampleResult()}}

	t.Run("wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.handleAnalyze(rec, httptest.NewRequest(http.MethodGet, "/api/analyze", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("missing coordinates", func(t *testing.T) {
		body, contentType := analyzeForm(t, map[string]string{"building_type": "cafe"})
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		s.handleAnalyze(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("missing image", func(t *testing.T) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		mw.WriteField("lat", "40")
		mw.WriteField("lng", "-74")
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()

		s.handleAnalyze(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})
}

func TestHandleGeocode(t *testing.T) {
	s := &Server{Geocoder: &fakeGeocoder{result: &geocode.Result{
		Center:      model.LatLng{Lat: 30.26, Lng: -97.74},
		DisplayName: "Austin",
		Provider:    "nominatim",
	}}}

	rec := httptest.NewRecorder()
	s.handleGeocode(rec, httptest.NewRequest(http.MethodGet, "/api/geocode?q=Austin", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var result geocode.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.DisplayName != "Austin" {
		t.Errorf("unexpected result: %+v", result)
	}

	rec = httptest.NewRecorder()
	s.handleGeocode(rec, httptest.NewRequest(http.MethodGet, "/api/geocode", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing query should be a 400, got %d", rec.Code)
	}
}

func TestHandleNearby(t *testing.T) {
	s := &Server{
		POI: &fakeFinder{pois: []model.POI{
			{Name: "Corner Cafe", Category: "food_drink", Distance: 120},
			{Name: "City Clinic", Category: "health", Distance: 340},
		}},
		RadiusM: 1000,
	}

	rec := httptest.NewRecorder()
	s.handleNearby(rec, httptest.NewRequest(http.MethodGet, "/api/nearby?lat=40&lng=-74", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		POIs   []model.POI            `json:"pois"`
		Groups map[string][]model.POI `json:"groups"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.POIs) != 2 || len(resp.Groups) != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}

	rec = httptest.NewRecorder()
	s.handleNearby(rec, httptest.NewRequest(http.MethodGet, "/api/nearby?lat=40&lng=-74&radius=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad radius should be a 400, got %d", rec.Code)
	}
}

func TestHandleExtent(t *testing.T) {
	s := &Server{}

	rec := httptest.NewRecorder()
	s.handleExtent(rec, httptest.NewRequest(http.MethodGet, "/api/extent?lat=0&lng=0&zoom=0&width=256&height=256", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var ext model.Extent
	if err := json.Unmarshal(rec.Body.Bytes(), &ext); err != nil {
		t.Fatal(err)
	}
	if ext.SpatialReference.WKID != 102100 {
		t.Errorf("unexpected spatial reference: %+v", ext.SpatialReference)
	}
	if ext.XMin >= ext.XMax || ext.YMin >= ext.YMax {
		t.Errorf("degenerate extent: %+v", ext)
	}

	rec = httptest.NewRecorder()
	s.handleExtent(rec, httptest.NewRequest(http.MethodGet, "/api/extent?lat=40", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing parameters should be a 400, got %d", rec.Code)
	}
}

func TestHandleExport(t *testing.T) {
	s := &Server{}

	payload := func(format string) *bytes.Reader {
		b, _ := json.Marshal(exportRequest{
			Result:       sampleResult(),
			BuildingType: model.BuildingCafe,
			Location:     "Trenton",
			Format:       format,
		})
		return bytes.NewReader(b)
	}

	t.Run("json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.handleExport(rec, httptest.NewRequest(http.MethodPost, "/api/export", payload("json")))
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, ".json") {
			t.Errorf("unexpected disposition %q", cd)
		}
		var decoded model.AnalysisResult
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("export body is not valid JSON: %v", err)
		}
	})

	t.Run("text", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.handleExport(rec, httptest.NewRequest(http.MethodPost, "/api/export", payload("text")))
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "Empty lot") {
			t.Errorf("report missing candidate:\n%s", rec.Body.String())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.handleExport(rec, httptest.NewRequest(http.MethodPost, "/api/export", payload("csv")))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("missing result", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.handleExport(rec, httptest.NewRequest(http.MethodPost, "/api/export", strings.NewReader(`{"format":"json"}`)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})
}
