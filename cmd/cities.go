package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nikhil7960/plotpal-ai/internal/model"
	"github.com/Nikhil7960/plotpal-ai/internal/store"
)

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "Manage the city/plot lookup table",
}

// cityFile is the JSON shape accepted by `cities load`.
type cityFile struct {
	Cities []struct {
		model.City
		Plots []model.Plot `json:"plots,omitempty"`
	} `json:"cities"`
}

var citiesLoadCmd = &cobra.Command{
	Use:   "load <cities.json>",
	Short: "Load cities (and optional plots) from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		var file cityFile
		if err := json.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}

		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		var plotTotal int
		for _, entry := range file.Cities {
			if err := s.UpsertCity(entry.City); err != nil {
				return fmt.Errorf("upserting city %s: %w", entry.Code, err)
			}
			if len(entry.Plots) > 0 {
				if err := s.WritePlots(entry.Code, entry.Plots); err != nil {
					return fmt.Errorf("writing plots for %s: %w", entry.Code, err)
				}
				plotTotal += len(entry.Plots)
			}
			logVerbose("loaded %s (%s): %d plots", entry.Name, entry.Code, len(entry.Plots))
		}

		fmt.Printf("Loaded %d cities, %d plots\n", len(file.Cities), plotTotal)
		return nil
	},
}

var citiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cities in the lookup table",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		cities, err := s.ListCities()
		if err != nil {
			return err
		}

		fmt.Printf("City Table\n")
		fmt.Printf("==========\n")
		fmt.Printf("Cities: %d   Plots: %d\n\n", s.CityCount(), s.PlotCount())

		for _, c := range cities {
			plots, _ := s.PlotsForCity(c.Code)
			fmt.Printf("  %-6s %-24s %-12s %9.4f %9.4f  plots: %d\n",
				c.Code, c.Name, c.Country, c.Lat, c.Lng, len(plots))
		}
		return nil
	},
}

func init() {
	citiesCmd.AddCommand(citiesLoadCmd)
	citiesCmd.AddCommand(citiesListCmd)
	rootCmd.AddCommand(citiesCmd)
}
