package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vantage-quant/taengine/internal/params"
)

var (
	watchlistCmd = &cobra.Command{
		Use:   "watchlist [symbols...]",
		Short: "Fetch lightweight last-price/change snapshots for a list of symbols",
		Long:  `watchlist fetches up to 24 symbols (one per argument, with an optional market prefix, e.g. crypto:BTCUSDT) and prints last price, change, and change percent for each.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runWatchlist,
	}

	watchlistMarket   string
	watchlistInterval string
	watchlistLimit    int
)

func init() {
	watchlistCmd.Flags().StringVar(&watchlistMarket, "market", "crypto", "default market for symbols without an explicit market: prefix")
	watchlistCmd.Flags().StringVar(&watchlistInterval, "interval", params.DefaultWatchlistInterval, "candle interval for the snapshot window")
	watchlistCmd.Flags().IntVar(&watchlistLimit, "limit", params.DefaultWatchlistLimit, "number of candles behind each snapshot")
}

func runWatchlist(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine()
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	items := make([]params.WatchlistItem, 0, len(args))
	for _, arg := range args {
		symbol := arg
		market := params.MarketType(watchlistMarket)
		if idx := strings.Index(arg, ":"); idx > 0 {
			market = params.MarketType(arg[:idx])
			symbol = arg[idx+1:]
		}
		items = append(items, params.WatchlistItem{Symbol: symbol, Market: market})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	snapshots, err := eng.FetchWatchlistSnapshots(ctx, params.WatchlistSnapshotRequest{
		Items: items, Interval: watchlistInterval, Limit: watchlistLimit,
	})
	if err != nil {
		return fmt.Errorf("fetch watchlist: %w", err)
	}

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(snapshots)
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintln(w, "SYMBOL\tMARKET\tLAST\tCHANGE\tCHANGE%\tHIGH\tLOW")
		for _, snap := range snapshots {
			fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%.2f%%\t%.4f\t%.4f\n",
				snap.Symbol, snap.Market, snap.LastPrice, snap.Change, snap.ChangePct, snap.High, snap.Low)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json)", outputFormat)
	}
}
