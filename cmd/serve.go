package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nikhil7960/plotpal-ai/internal/analysis"
	"github.com/Nikhil7960/plotpal-ai/internal/geocode"
	"github.com/Nikhil7960/plotpal-ai/internal/poi"
	"github.com/Nikhil7960/plotpal-ai/internal/store"
	"github.com/Nikhil7960/plotpal-ai/internal/web"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site-selection web app",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("host") {
			serveHost = cfg.Server.Host
		}
		if !cmd.Flags().Changed("port") {
			servePort = cfg.Server.Port
		}

		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		invoker, err := newInvoker(cmd.Context())
		if err != nil {
			return err
		}
		if c, ok := invoker.(io.Closer); ok {
			defer c.Close()
		}

		nominatim := geocode.NewNominatim(cfg.Geocode.Endpoint, cfg.Geocode.UserAgent, cfg.Geocode.RateLimit)

		srv := &web.Server{
			Analyzer: analysis.New(invoker, newCompleter()),
			Geocoder: geocode.WithCityTable(s, nominatim),
			POI:      poi.NewFinder(cfg.Overpass.Endpoint, 30*time.Second),
			Store:    s,
			Addr:     fmt.Sprintf("%s:%d", serveHost, servePort),
			RadiusM:  cfg.Overpass.RadiusM,
		}
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
