package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Nikhil7960/plotpal-ai/internal/analysis"
	"github.com/Nikhil7960/plotpal-ai/internal/export"
	"github.com/Nikhil7960/plotpal-ai/internal/model"
)

var (
	analyzeType     string
	analyzeLocation string
	analyzeLat      float64
	analyzeLng      float64
	analyzeFilter   bool
	analyzeFormat   string
	analyzeOut      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image.png>",
	Short: "Analyze a map screenshot for vacant development sites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imageBytes, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading image: %w", err)
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer cancel()

		invoker, err := newInvoker(ctx)
		if err != nil {
			return err
		}
		if c, ok := invoker.(io.Closer); ok {
			defer c.Close()
		}

		pipeline := analysis.New(invoker, newCompleter())

		req := model.AnalysisRequest{
			ImagePNG:      imageBytes,
			BuildingType:  model.BuildingType(analyzeType),
			LocationLabel: analyzeLocation,
			MapCenter:     model.LatLng{Lat: analyzeLat, Lng: analyzeLng},
		}

		logVerbose("analyzing %s (%d bytes) for %s", args[0], len(imageBytes), analyzeType)

		result, err := pipeline.Analyze(ctx, req)
		if err != nil {
			return err
		}

		if analyzeFilter {
			before := len(result.VacantSpaces)
			result = pipeline.Filter(ctx, result, req.BuildingType, req.LocationLabel)
			logVerbose("filter pass: %d -> %d candidates", before, len(result.VacantSpaces))
		}

		out := os.Stdout
		if analyzeOut != "" {
			f, err := os.Create(analyzeOut)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		switch analyzeFormat {
		case "text":
			if err := export.WriteText(out, result, req.BuildingType, req.LocationLabel); err != nil {
				return err
			}
		case "json":
			if err := export.WriteJSON(out, result); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format %q (want json or text)", analyzeFormat)
		}

		if len(result.VacantSpaces) == 0 {
			fmt.Fprintln(os.Stderr, "No suitable locations found. Try a different area.")
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeType, "type", "cafe", "Building type (cafe, mall, park, residential, office, hospital, school, gym, restaurant, hotel, retail)")
	analyzeCmd.Flags().StringVar(&analyzeLocation, "location", "the captured area", "Place name for prompt context")
	analyzeCmd.Flags().Float64Var(&analyzeLat, "lat", 0, "Map center latitude")
	analyzeCmd.Flags().Float64Var(&analyzeLng, "lng", 0, "Map center longitude")
	analyzeCmd.Flags().BoolVar(&analyzeFilter, "filter", false, "Run the land-use filter pass (requires GROQ_API_KEY)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "Output format: json or text")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "Write output to a file instead of stdout")
	rootCmd.AddCommand(analyzeCmd)
}
