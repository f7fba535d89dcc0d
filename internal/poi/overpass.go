// Package poi looks up nearby amenities through the Overpass API and groups
// them into display categories.
package poi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	overpass "github.com/serjvanilla/go-overpass"

	"github.com/Nikhil7960/plotpal-ai/internal/geo"
	"github.com/Nikhil7960/plotpal-ai/internal/model"
)

// Finder queries Overpass for points of interest around a coordinate.
type Finder struct {
	client  overpass.Client
	timeout time.Duration
}

// NewFinder creates a Finder against the given Overpass endpoint.
func NewFinder(endpoint string, timeout time.Duration) *Finder {
	httpClient := &http.Client{Timeout: timeout}
	return &Finder{
		client:  overpass.NewWithSettings(endpoint, 1, httpClient),
		timeout: timeout,
	}
}

// Nearby returns named amenity/shop/leisure nodes within radiusM metres of
// center, sorted ascending by distance.
func (f *Finder) Nearby(ctx context.Context, center model.LatLng, radiusM int) ([]model.POI, error) {
	query := fmt.Sprintf(`
		[out:json][timeout:%d];
		(
			node["amenity"](around:%d,%f,%f);
			node["shop"](around:%d,%f,%f);
			node["leisure"](around:%d,%f,%f);
		);
		out body;
	`,
		int(f.timeout.Seconds()),
		radiusM, center.Lat, center.Lng,
		radiusM, center.Lat, center.Lng,
		radiusM, center.Lat, center.Lng)

	result, err := f.client.Query(query)
	if err != nil {
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}

	var pois []model.POI
	for _, node := range result.Nodes {
		if node == nil {
			continue
		}
		name := node.Tags["name"]
		if name == "" {
			continue // unnamed nodes add noise, not signal
		}
		point := model.LatLng{Lat: node.Lat, Lng: node.Lon}
		pois = append(pois, model.POI{
			ID:       node.ID,
			Name:     name,
			Category: Categorize(node.Tags),
			Tag:      primaryTag(node.Tags),
			Lat:      node.Lat,
			Lng:      node.Lon,
			Distance: geo.Haversine(center, point),
		})
	}

	sort.Slice(pois, func(i, j int) bool {
		return pois[i].Distance < pois[j].Distance
	})

	return pois, nil
}

// GroupByCategory buckets POIs by their display category, preserving the
// distance ordering within each bucket.
func GroupByCategory(pois []model.POI) map[string][]model.POI {
	groups := make(map[string][]model.POI)
	for _, p := range pois {
		groups[p.Category] = append(groups[p.Category], p)
	}
	return groups
}
