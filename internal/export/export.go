// Package export renders an analysis result as JSON or a plain-text report.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Nikhil7960/plotpal-ai/internal/analysis"
	"github.com/Nikhil7960/plotpal-ai/internal/model"
)

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, result *model.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// WriteText writes a human-readable report of the result.
func WriteText(w io.Writer, result *model.AnalysisResult, bt model.BuildingType, locationLabel string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Site Selection Report\n")
	fmt.Fprintf(&b, "=====================\n")
	fmt.Fprintf(&b, "Location:      %s\n", locationLabel)
	fmt.Fprintf(&b, "Building type: %s\n", analysis.DescribeBuildingType(bt))
	fmt.Fprintf(&b, "Confidence:    %d%%\n\n", result.Confidence)

	if len(result.VacantSpaces) == 0 {
		fmt.Fprintf(&b, "No suitable locations found. Try a different area.\n\n")
	}

	for i, sp := range result.VacantSpaces {
		fmt.Fprintf(&b, "%d. %s (suitability %d%%)\n", i+1, sp.Location, sp.Suitability)
		fmt.Fprintf(&b, "   Coordinates: %.6f, %.6f\n", sp.Coordinates.Lat, sp.Coordinates.Lng)
		fmt.Fprintf(&b, "   %s\n", sp.Description)
		for _, r := range sp.Reasons {
			fmt.Fprintf(&b, "   + %s\n", r)
		}
		for _, c := range sp.Considerations {
			fmt.Fprintf(&b, "   - %s\n", c)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "Analysis\n--------\n%s\n", result.Analysis)

	_, err := io.WriteString(w, b.String())
	return err
}
