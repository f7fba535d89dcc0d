// Package geocode resolves free-text place names to coordinates.
package geocode

import (
	"context"

	"github.com/Nikhil7960/plotpal-ai/internal/model"
)

// Result is a resolved place.
type Result struct {
	Center      model.LatLng `json:"center"`
	DisplayName string       `json:"display_name"`
	Provider    string       `json:"provider"`
}

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Result, error)
}

// CityTable is the subset of the store the geocoder consults before going
// to the network, so bundled cities resolve offline.
type CityTable interface {
	LookupCity(name string) (*model.City, error)
}

// WithCityTable wraps a Geocoder with a local city-table lookup that is
// tried first. Table misses and errors fall through to the network.
func WithCityTable(table CityTable, next Geocoder) Geocoder {
	return &tableFirst{table: table, next: next}
}

type tableFirst struct {
	table CityTable
	next  Geocoder
}

func (g *tableFirst) Geocode(ctx context.Context, query string) (*Result, error) {
	if city, err := g.table.LookupCity(query); err == nil && city != nil {
		return &Result{
			Center:      model.LatLng{Lat: city.Lat, Lng: city.Lng},
			DisplayName: city.Name,
			Provider:    "city-table",
		}, nil
	}
	return g.next.Geocode(ctx, query)
}
