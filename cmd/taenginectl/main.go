// Command taenginectl is the operator CLI for the analysis engine,
// adapted from cmd/cli/main.go's cobra root-command-plus-global-flags
// shape: one persistent --format flag (table/json) shared across every
// subcommand, each subcommand owning its own request-specific flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vantage-quant/taengine/internal/config"
	"github.com/vantage-quant/taengine/internal/engine"
	"github.com/vantage-quant/taengine/internal/marketdata"
)

var (
	rootCmd = &cobra.Command{
		Use:   "taenginectl",
		Short: "Operate and query the technical-analysis engine",
		Long:  `taenginectl runs one-shot analysis/watchlist/fundamentals queries against the engine's providers, and can serve the HTTP API directly.`,
	}

	outputFormat string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "output format (table, json)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(watchlistCmd)
	rootCmd.AddCommand(fundamentalsCmd)
	rootCmd.AddCommand(indicatorsCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildEngine wires a registry of live providers against loaded config,
// the same dependency set cmd/server/main.go assembles, minus the HTTP
// server and metrics registry this one-shot CLI has no use for.
func buildEngine() (*engine.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	registry := marketdata.Registry{
		Crypto:  marketdata.NewCryptoProvider(cfg.Providers.CryptoBaseURL),
		General: marketdata.NewGeneralMarketsProvider(cfg.Providers.GeneralBaseURL),
	}
	return engine.New(registry, nil, nil, nil), nil
}
