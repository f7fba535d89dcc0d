// Package geo holds the coordinate math shared by the POI lookups and the
// mergemap extent sync.
package geo

import (
	"math"

	"github.com/Nikhil7960/plotpal-ai/internal/model"
)

const (
	earthRadiusM = 6371000.0

	// Web Mercator constants (EPSG:3857 / WKID 102100).
	mercatorRadius = 6378137.0
	mercatorWKID   = 102100

	// metres per pixel at zoom 0 with 256px tiles
	baseResolution = 2 * math.Pi * mercatorRadius / 256
)

// Haversine returns the great-circle distance in metres between two points.
func Haversine(a, b model.LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(h))
}

// ToMercator projects a WGS84 point into Web Mercator metres.
func ToMercator(p model.LatLng) (x, y float64) {
	x = p.Lng * math.Pi / 180 * mercatorRadius
	y = math.Log(math.Tan(math.Pi/4+p.Lat*math.Pi/360)) * mercatorRadius
	return x, y
}

// CenterToExtent converts a Leaflet viewport (center, zoom, pixel size) into
// the fixed ArcGIS iframe extent used by the mergemap view.
func CenterToExtent(center model.LatLng, zoom float64, widthPx, heightPx int) model.Extent {
	resolution := baseResolution / math.Pow(2, zoom)
	halfW := float64(widthPx) / 2 * resolution
	halfH := float64(heightPx) / 2 * resolution

	cx, cy := ToMercator(center)

	return model.Extent{
		XMin:             cx - halfW,
		YMin:             cy - halfH,
		XMax:             cx + halfW,
		YMax:             cy + halfH,
		SpatialReference: model.SpatialReference{WKID: mercatorWKID},
	}
}
