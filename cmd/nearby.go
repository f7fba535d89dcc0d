package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nikhil7960/plotpal-ai/internal/model"
	"github.com/Nikhil7960/plotpal-ai/internal/poi"
)

var (
	nearbyLat    float64
	nearbyLng    float64
	nearbyRadius int
)

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "List amenities near a coordinate via the Overpass API",
	RunE: func(cmd *cobra.Command, args []string) error {
		radius := nearbyRadius
		if radius == 0 {
			radius = cfg.Overpass.RadiusM
		}

		finder := poi.NewFinder(cfg.Overpass.Endpoint, 30*time.Second)
		center := model.LatLng{Lat: nearbyLat, Lng: nearbyLng}

		logVerbose("querying overpass around %.5f,%.5f r=%dm", nearbyLat, nearbyLng, radius)

		pois, err := finder.Nearby(cmd.Context(), center, radius)
		if err != nil {
			return err
		}

		groups := poi.GroupByCategory(pois)
		var cats []string
		for cat := range groups {
			cats = append(cats, cat)
		}
		sort.Strings(cats)

		fmt.Printf("%d amenities within %dm\n\n", len(pois), radius)
		for _, cat := range cats {
			fmt.Printf("%s:\n", cat)
			for _, p := range groups[cat] {
				fmt.Printf("  %-40s %5.0fm  (%s)\n", p.Name, p.Distance, p.Tag)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	nearbyCmd.Flags().Float64Var(&nearbyLat, "lat", 0, "Latitude")
	nearbyCmd.Flags().Float64Var(&nearbyLng, "lng", 0, "Longitude")
	nearbyCmd.Flags().IntVar(&nearbyRadius, "radius", 0, "Search radius in metres (default from config)")
	nearbyCmd.MarkFlagRequired("lat")
	nearbyCmd.MarkFlagRequired("lng")
	rootCmd.AddCommand(nearbyCmd)
}
