package poi

// osmCategories groups raw OSM tag values into the coarse categories shown
// on result cards. Keys are "key=value" pairs from the amenity, shop and
// leisure namespaces; anything unlisted falls into "other".
var osmCategories = map[string]string{
	"amenity=cafe":             "food_drink",
	"amenity=restaurant":       "food_drink",
	"amenity=fast_food":        "food_drink",
	"amenity=bar":              "food_drink",
	"amenity=pub":              "food_drink",
	"amenity=school":           "education",
	"amenity=university":       "education",
	"amenity=college":          "education",
	"amenity=kindergarten":     "education",
	"amenity=library":          "education",
	"amenity=hospital":         "health",
	"amenity=clinic":           "health",
	"amenity=doctors":          "health",
	"amenity=pharmacy":         "health",
	"amenity=dentist":          "health",
	"amenity=bank":             "services",
	"amenity=atm":              "services",
	"amenity=post_office":      "services",
	"amenity=police":           "services",
	"amenity=fire_station":     "services",
	"amenity=bus_station":      "transit",
	"amenity=ferry_terminal":   "transit",
	"amenity=parking":          "transit",
	"amenity=fuel":             "transit",
	"amenity=place_of_worship": "community",
	"amenity=community_centre": "community",
	"amenity=townhall":         "community",
	"amenity=theatre":          "culture",
	"amenity=cinema":           "culture",
	"amenity=arts_centre":      "culture",
	"shop=supermarket":         "shopping",
	"shop=convenience":         "shopping",
	"shop=mall":                "shopping",
	"shop=department_store":    "shopping",
	"shop=bakery":              "food_drink",
	"shop=clothes":             "shopping",
	"shop=electronics":         "shopping",
	"shop=hardware":            "shopping",
	"leisure=park":             "recreation",
	"leisure=playground":       "recreation",
	"leisure=fitness_centre":   "recreation",
	"leisure=sports_centre":    "recreation",
	"leisure=swimming_pool":    "recreation",
	"leisure=garden":           "recreation",
	"leisure=pitch":            "recreation",
}

const categoryOther = "other"

// Categorize maps an element's tags to a display category. The amenity tag
// wins over shop, which wins over leisure, matching how OSM elements are
// usually tagged.
func Categorize(tags map[string]string) string {
	for _, key := range []string{"amenity", "shop", "leisure"} {
		if val, ok := tags[key]; ok {
			if cat, ok := osmCategories[key+"="+val]; ok {
				return cat
			}
			return categoryOther
		}
	}
	return categoryOther
}

// primaryTag returns the element's most specific "key=value" tag for
// display, or "" when none of the known namespaces are present.
func primaryTag(tags map[string]string) string {
	for _, key := range []string{"amenity", "shop", "leisure"} {
		if val, ok := tags[key]; ok {
			return key + "=" + val
		}
	}
	return ""
}
