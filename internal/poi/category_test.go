package poi

import (
	"testing"

	"github.com/Nikhil7960/plotpal-ai/internal/model"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]string
		want string
	}{
		{"cafe", map[string]string{"amenity": "cafe"}, "food_drink"},
		{"hospital", map[string]string{"amenity": "hospital"}, "health"},
		{"supermarket", map[string]string{"shop": "supermarket"}, "shopping"},
		{"park", map[string]string{"leisure": "park"}, "recreation"},
		{"amenity wins over shop", map[string]string{"amenity": "bank", "shop": "mall"}, "services"},
		{"unknown amenity", map[string]string{"amenity": "whatever"}, "other"},
		{"no relevant tags", map[string]string{"name": "thing"}, "other"},
		{"empty", nil, "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.tags); got != tt.want {
				t.Errorf("Categorize(%v) = %q, want %q", tt.tags, got, tt.want)
			}
		})
	}
}

func TestPrimaryTag(t *testing.T) {
	if got := primaryTag(map[string]string{"shop": "bakery"}); got != "shop=bakery" {
		t.Errorf("got %q", got)
	}
	if got := primaryTag(map[string]string{"building": "yes"}); got != "" {
		t.Errorf("expected empty tag, got %q", got)
	}
}

func TestGroupByCategory(t *testing.T) {
	pois := []model.POI{
		{Name: "A", Category: "food_drink", Distance: 10},
		{Name: "B", Category: "health", Distance: 20},
		{Name: "C", Category: "food_drink", Distance: 30},
	}

	groups := GroupByCategory(pois)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	fd := groups["food_drink"]
	if len(fd) != 2 || fd[0].Name != "A" || fd[1].Name != "C" {
		t.Errorf("distance ordering not preserved within group: %+v", fd)
	}
}
