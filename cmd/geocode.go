package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nikhil7960/plotpal-ai/internal/geocode"
	"github.com/Nikhil7960/plotpal-ai/internal/store"
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode <place>",
	Short: "Resolve a place name to coordinates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		nominatim := geocode.NewNominatim(cfg.Geocode.Endpoint, cfg.Geocode.UserAgent, cfg.Geocode.RateLimit)
		g := geocode.WithCityTable(s, nominatim)

		result, err := g.Geocode(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", result.DisplayName)
		fmt.Printf("  lat: %.6f  lng: %.6f  (via %s)\n", result.Center.Lat, result.Center.Lng, result.Provider)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(geocodeCmd)
}
