package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Nikhil7960/plotpal-ai/internal/export"
	"github.com/Nikhil7960/plotpal-ai/internal/geo"
	"github.com/Nikhil7960/plotpal-ai/internal/model"
	"github.com/Nikhil7960/plotpal-ai/internal/poi"
	"github.com/Nikhil7960/plotpal-ai/internal/vision"
)

const noResultsMessage = "No suitable locations found. Try a different area."

// maxImageBytes caps the uploaded screenshot size (8 MiB).
const maxImageBytes = 8 << 20

type analyzeResponse struct {
	*model.AnalysisResult
	Message string `json:"message,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "missing 'image' file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		http.Error(w, "reading image: "+err.Error(), http.StatusBadRequest)
		return
	}

	lat, errLat := strconv.ParseFloat(r.FormValue("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.FormValue("lng"), 64)
	if errLat != nil || errLng != nil {
		http.Error(w, "invalid 'lat'/'lng' parameters", http.StatusBadRequest)
		return
	}

	req := model.AnalysisRequest{
		ImagePNG:      imageBytes,
		BuildingType:  model.BuildingType(r.FormValue("building_type")),
		LocationLabel: r.FormValue("location"),
		MapCenter:     model.LatLng{Lat: lat, Lng: lng},
	}

	result, err := s.Analyzer.Analyze(r.Context(), req)
	if err != nil {
		var confErr *vision.ConfigError
		if errors.As(err, &confErr) {
			http.Error(w, confErr.Error(), http.StatusInternalServerError)
			return
		}
		// A failed primary call surfaces the underlying message.
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	if v := r.FormValue("filter"); v == "1" || v == "true" {
		result = s.Analyzer.Filter(r.Context(), result, req.BuildingType, req.LocationLabel)
	}

	resp := analyzeResponse{AnalysisResult: result}
	if len(result.VacantSpaces) == 0 {
		resp.Message = noResultsMessage
	}
	writeJSON(w, resp)
}

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "missing 'q' parameter", http.StatusBadRequest)
		return
	}

	result, err := s.Geocoder.Geocode(r.Context(), query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil {
		http.Error(w, "invalid 'lat'/'lng' parameters", http.StatusBadRequest)
		return
	}

	radius := s.RadiusM
	if v := r.URL.Query().Get("radius"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid 'radius' parameter", http.StatusBadRequest)
			return
		}
		radius = n
	}

	pois, err := s.POI.Nearby(r.Context(), model.LatLng{Lat: lat, Lng: lng}, radius)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, map[string]any{
		"pois":   pois,
		"groups": poi.GroupByCategory(pois),
	})
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	if code := r.URL.Query().Get("code"); code != "" {
		city, err := s.Store.LookupCity(code)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if city == nil {
			http.Error(w, "unknown city", http.StatusNotFound)
			return
		}
		plots, err := s.Store.PlotsForCity(city.Code)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"city": city, "plots": plots})
		return
	}

	cities, err := s.Store.ListCities()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, cities)
}

func (s *Server) handleExtent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	zoom, errZoom := strconv.ParseFloat(q.Get("zoom"), 64)
	if errLat != nil || errLng != nil || errZoom != nil {
		http.Error(w, "invalid 'lat'/'lng'/'zoom' parameters", http.StatusBadRequest)
		return
	}

	width, height := 800, 600
	if v := q.Get("width"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			width = n
		}
	}
	if v := q.Get("height"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			height = n
		}
	}

	extent := geo.CenterToExtent(model.LatLng{Lat: lat, Lng: lng}, zoom, width, height)
	writeJSON(w, extent)
}

type exportRequest struct {
	Result       *model.AnalysisResult `json:"result"`
	BuildingType model.BuildingType    `json:"building_type"`
	Location     string                `json:"location"`
	Format       string                `json:"format"` // "json" or "text"
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Result == nil {
		http.Error(w, "missing 'result' field", http.StatusBadRequest)
		return
	}

	switch req.Format {
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="site-analysis.txt"`)
		if err := export.WriteText(w, req.Result, req.BuildingType, req.Location); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="site-analysis.json"`)
		if err := export.WriteJSON(w, req.Result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	default:
		http.Error(w, "unknown format: "+req.Format, http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	// Wildcard CORS: this is a local development tool, not a public API.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if v == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}
