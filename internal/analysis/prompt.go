package analysis

import (
	"fmt"

	"github.com/Nikhil7960/plotpal-ai/internal/model"
)

// buildingDescriptions elaborates each building-type code into the phrasing
// used inside the prompt. Unknown codes pass through verbatim.
var buildingDescriptions = map[model.BuildingType]string{
	model.BuildingCafe:        "a coffee shop or cafe with seating area, kitchen facilities, and customer parking",
	model.BuildingMall:        "a shopping mall or retail complex with multiple stores, food court, and large parking structure",
	model.BuildingPark:        "a public park or green space with walking paths, playgrounds, and recreational facilities",
	model.BuildingResidential: "a residential building or housing complex with apartments or condominiums",
	model.BuildingOffice:      "an office building or business center with workspace, meeting rooms, and employee parking",
	model.BuildingHospital:    "a hospital or medical facility with emergency access, patient rooms, and ambulance routes",
	model.BuildingSchool:      "a school or educational institution with classrooms, playground, and safe pedestrian access",
	model.BuildingGym:         "a fitness center or gym with exercise equipment, changing rooms, and member parking",
	model.BuildingRestaurant:  "a restaurant or dining establishment with dining area, kitchen, and customer parking",
	model.BuildingHotel:       "a hotel or lodging facility with guest rooms, lobby, and visitor parking",
	model.BuildingRetail:      "a retail store or shop with display areas, storage, and customer access",
}

// buildingConsiderations lists the site factors the model is told to weigh
// for each building type.
var buildingConsiderations = map[model.BuildingType]string{
	model.BuildingCafe:        "foot traffic, visibility from the street, proximity to offices and residential areas, morning commuter flow",
	model.BuildingMall:        "large contiguous land area, highway access, regional catchment population, anchor-tenant potential",
	model.BuildingPark:        "existing green cover, neighborhood density, distance to other parks, flood-plain suitability",
	model.BuildingResidential: "school districts, noise levels, commute connections, neighborhood amenities",
	model.BuildingOffice:      "public transit access, parking capacity, nearby lunch options, business district proximity",
	model.BuildingHospital:    "road access from multiple directions, helicopter landing potential, distance from existing hospitals, quiet surroundings",
	model.BuildingSchool:      "traffic safety, walkable residential catchment, distance from industrial zones, outdoor space",
	model.BuildingGym:         "evening accessibility, parking, proximity to residential and office concentrations",
	model.BuildingRestaurant:  "dinner-time foot traffic, visibility, delivery access, complementary businesses nearby",
	model.BuildingHotel:       "proximity to attractions and transit hubs, street appeal, taxi and shuttle access",
	model.BuildingRetail:      "storefront visibility, pedestrian flow, complementary retail clustering, loading access",
}

const defaultConsiderations = "accessibility, visibility, surrounding land use, and compatibility with the neighborhood"

// DescribeBuildingType returns the human-readable elaboration for a code,
// or the code itself when it is not in the table.
func DescribeBuildingType(bt model.BuildingType) string {
	if desc, ok := buildingDescriptions[bt]; ok {
		return desc
	}
	return string(bt)
}

// BuildAnalysisPrompt produces the full instruction string for the vision
// model: the analyst persona, the analysis dimensions, and the exact JSON
// shape the model must return. Pure string construction, no failure modes.
func BuildAnalysisPrompt(bt model.BuildingType, locationLabel string, center model.LatLng) string {
	desc := DescribeBuildingType(bt)
	considerations, ok := buildingConsiderations[bt]
	if !ok {
		considerations = defaultConsiderations
	}

	return fmt.Sprintf(`You are an expert site-selection analyst reviewing a map screenshot of %s (centered at %.6f, %.6f).

The client wants to build %s.

Analyze the map image along these dimensions:
1. Vacancy identification: find empty lots, undeveloped parcels, underused spaces, or demolition sites visible in the image.
2. Accessibility: road connections, public transit, pedestrian access.
3. Demographics and surroundings: the character of adjacent blocks and likely customer or resident base.
4. Regulatory and environmental factors: likely zoning, protected areas, water, terrain.
5. Building-type considerations: %s.
6. Financial viability: rough sense of land value and development cost drivers visible from context.

Respond with ONLY valid JSON in this exact format (no markdown, no explanation):
{
  "vacantSpaces": [
    {
      "location": "short human-readable description of where the site is",
      "coordinates": {"lat": %.4f, "lng": %.4f},
      "suitability": 85,
      "reasons": ["reason grounded in what is visible", "another reason"],
      "considerations": ["risk or caveat", "another caveat"],
      "description": "one or two sentences describing the site"
    }
  ],
  "analysis": "overall narrative of the area's suitability",
  "confidence": 80
}

Rules:
- Identify 2 to 4 candidate sites.
- suitability and confidence are integers from 0 to 99; never use exactly 100.
- Ground every location and description in features actually identifiable in the image.
- If no suitable vacant space is visible, return an empty vacantSpaces array and explain why in analysis.`,
		locationLabel, center.Lat, center.Lng, desc, considerations, center.Lat, center.Lng)
}

// FilterSystemInstruction is the system message for the optional second-pass
// filter that removes candidates on unsuitable land.
func FilterSystemInstruction() string {
	return `You are a land-use reviewer. You receive a JSON site-selection analysis and must remove candidate sites that fall on unsuitable land.

Eliminate candidates on:
- water bodies (rivers, lakes, sea, reservoirs)
- protected natural areas and nature reserves
- active agricultural land
- steep or flood-prone terrain
- existing infrastructure (roads, rail, utilities, occupied buildings)
- cemeteries and religious sites
- military or otherwise restricted zones

Keep candidates on:
- empty or vacant lots
- abandoned or derelict structures
- parking lots that could be repurposed
- brownfield or former industrial sites

Return ONLY valid JSON with the same shape as the input ("vacantSpaces", "analysis", "confidence"), containing only the candidates that survive review. Do not add new candidates. No markdown, no explanation.`
}

// buildFilterUserMessage embeds the serialized prior result in the filter
// pass's user message.
func buildFilterUserMessage(serialized string, bt model.BuildingType, locationLabel string) string {
	return fmt.Sprintf(`The following is a site-selection analysis for building %s in %s.

%s

Review each candidate in vacantSpaces against the elimination rules and return the same JSON shape with unsuitable candidates removed.`,
		DescribeBuildingType(bt), locationLabel, serialized)
}
