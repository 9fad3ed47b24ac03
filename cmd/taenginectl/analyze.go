package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vantage-quant/taengine/internal/engine"
	"github.com/vantage-quant/taengine/internal/params"
)

var (
	analyzeCmd = &cobra.Command{
		Use:   "analyze [symbol]",
		Short: "Run the full indicator/signal pipeline for one symbol",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	analyzeMarket   string
	analyzeInterval string
	analyzeLimit    int
	analyzeMACD     bool
	analyzeStoch    bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeMarket, "market", "crypto", "market (crypto, forex, usStock, krStock)")
	analyzeCmd.Flags().StringVar(&analyzeInterval, "interval", "1d", "candle interval (e.g. 1h, 4h, 1d)")
	analyzeCmd.Flags().IntVar(&analyzeLimit, "limit", 300, "number of candles to analyze")
	analyzeCmd.Flags().BoolVar(&analyzeMACD, "macd", false, "include MACD")
	analyzeCmd.Flags().BoolVar(&analyzeStoch, "stochastic", false, "include the Stochastic Oscillator")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	symbol := args[0]

	eng, err := buildEngine()
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	req := params.AnalysisRequest{
		Symbol:   symbol,
		Interval: analyzeInterval,
		Market:   params.MarketType(analyzeMarket),
		Limit:    analyzeLimit,
	}
	if analyzeMACD {
		req.MACD = &params.MacdParams{}
	}
	if analyzeStoch {
		req.Stochastic = &params.StochasticParams{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := eng.FetchAnalysis(ctx, req)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", symbol, err)
	}

	return displayAnalysis(resp)
}

func displayAnalysis(resp *engine.AnalysisResponse) error {
	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(resp)
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintf(w, "symbol\t%s\n", resp.Symbol)
		fmt.Fprintf(w, "market\t%s\n", resp.Market)
		fmt.Fprintf(w, "interval\t%s\n", resp.Interval)
		fmt.Fprintf(w, "candles\t%d\n", len(resp.Candles))
		fmt.Fprintf(w, "signals\t%d\n", len(resp.Signals))
		for _, sig := range resp.Signals {
			fmt.Fprintf(w, "  signal\t%s @ %.4f (%s)\n", sig.SignalType, sig.Price, sig.Source)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json)", outputFormat)
	}
}
