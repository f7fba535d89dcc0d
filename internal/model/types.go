package model

// BuildingType classifies the kind of development a user wants to site.
type BuildingType string

const (
	BuildingCafe        BuildingType = "cafe"
	BuildingMall        BuildingType = "mall"
	BuildingPark        BuildingType = "park"
	BuildingResidential BuildingType = "residential"
	BuildingOffice      BuildingType = "office"
	BuildingHospital    BuildingType = "hospital"
	BuildingSchool      BuildingType = "school"
	BuildingGym         BuildingType = "gym"
	BuildingRestaurant  BuildingType = "restaurant"
	BuildingHotel       BuildingType = "hotel"
	BuildingRetail      BuildingType = "retail"
)

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AnalysisRequest carries everything needed for one analysis pass.
// It is built fresh per user action and discarded afterwards.
type AnalysisRequest struct {
	ImagePNG      []byte
	BuildingType  BuildingType
	LocationLabel string
	MapCenter     LatLng
}

// VacantSpace is one model-proposed candidate site. After validation every
// field is populated: no nil coordinates, suitability always in [0,100].
type VacantSpace struct {
	Location       string   `json:"location"`
	Coordinates    LatLng   `json:"coordinates"`
	Suitability    int      `json:"suitability"`
	Reasons        []string `json:"reasons"`
	Considerations []string `json:"considerations"`
	Description    string   `json:"description"`
}

// AnalysisResult is the validated output of the analysis pipeline.
// VacantSpaces is never nil; an empty slice means no suitable locations.
type AnalysisResult struct {
	VacantSpaces []VacantSpace `json:"vacantSpaces"`
	Analysis     string        `json:"analysis"`
	Confidence   int           `json:"confidence"`
}

// POI is a nearby amenity returned by an Overpass lookup.
type POI struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Tag      string  `json:"tag"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Distance float64 `json:"distance"` // metres from the query point
}

// City is one row of the bundled city lookup table.
type City struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Plot is a known vacant plot attached to a city, loaded from the
// reference dataset alongside the city table.
type Plot struct {
	ID       int64   `json:"id"`
	CityCode string  `json:"city_code"`
	AreaSqm  float64 `json:"area_sqm"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Source   string  `json:"source,omitempty"`
}

// Extent is an ArcGIS-style Web Mercator bounding box used to keep the
// mergemap iframe in sync with the Leaflet viewport.
type Extent struct {
	XMin             float64          `json:"xmin"`
	YMin             float64          `json:"ymin"`
	XMax             float64          `json:"xmax"`
	YMax             float64          `json:"ymax"`
	SpatialReference SpatialReference `json:"spatialReference"`
}

// SpatialReference identifies the projection of an Extent.
type SpatialReference struct {
	WKID int `json:"wkid"`
}
