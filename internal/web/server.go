package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/Nikhil7960/plotpal-ai/internal/geocode"
	"github.com/Nikhil7960/plotpal-ai/internal/model"
	"github.com/Nikhil7960/plotpal-ai/internal/store"
)

//go:embed all:static
var staticFS embed.FS

// Analyzer runs the vision-analysis pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error)
	Filter(ctx context.Context, result *model.AnalysisResult, bt model.BuildingType, locationLabel string) *model.AnalysisResult
}

// AmenityFinder looks up nearby points of interest.
type AmenityFinder interface {
	Nearby(ctx context.Context, center model.LatLng, radiusM int) ([]model.POI, error)
}

// Server serves the site-selection web app and API.
type Server struct {
	Analyzer Analyzer
	Geocoder geocode.Geocoder
	POI      AmenityFinder
	Store    *store.Store
	Addr     string
	RadiusM  int
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/geocode", s.handleGeocode)
	mux.HandleFunc("/api/nearby", s.handleNearby)
	mux.HandleFunc("/api/cities", s.handleCities)
	mux.HandleFunc("/api/extent", s.handleExtent)
	mux.HandleFunc("/api/export", s.handleExport)

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return fmt.Errorf("creating sub filesystem: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticSub)))

	slog.Info("serving", "addr", "http://"+s.Addr)
	return http.ListenAndServe(s.Addr, mux)
}
