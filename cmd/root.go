package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nikhil7960/plotpal-ai/internal/config"
	"github.com/Nikhil7960/plotpal-ai/internal/vision"
)

var (
	dataDir    string
	verbose    bool
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "plotpal-ai",
	Short: "Analyze map screenshots for vacant development sites using vision models",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if !cmd.Flags().Changed("data-dir") {
			dataDir = cfg.Data.Dir
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "Directory for the city/plot database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func Execute() error {
	return rootCmd.Execute()
}

func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// newInvoker builds the configured vision backend.
func newInvoker(ctx context.Context) (vision.Invoker, error) {
	timeout := time.Duration(cfg.Vision.TimeoutSecs) * time.Second
	switch cfg.Vision.Backend {
	case "gemini":
		return vision.NewGemini(ctx, cfg.Vision.Model, timeout)
	case "openrouter":
		return vision.NewOpenRouter(cfg.Vision.Model, timeout)
	default:
		return nil, fmt.Errorf("unknown vision backend %q (want gemini or openrouter)", cfg.Vision.Backend)
	}
}

// newCompleter builds the filter-model client, or nil when no credential is
// configured (filtering silently disabled).
func newCompleter() vision.Completer {
	timeout := time.Duration(cfg.Filter.TimeoutSecs) * time.Second
	if g := vision.NewGroq(cfg.Filter.Model, timeout); g != nil {
		return g
	}
	logVerbose("GROQ_API_KEY not set, land-use filter disabled")
	return nil
}
