package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vantage-quant/taengine/internal/params"
)

var (
	fundamentalsCmd = &cobra.Command{
		Use:   "fundamentals [symbol]",
		Short: "Fetch a fundamentals snapshot for a general-markets symbol",
		Args:  cobra.ExactArgs(1),
		RunE:  runFundamentals,
	}

	fundamentalsMarket string
)

func init() {
	fundamentalsCmd.Flags().StringVar(&fundamentalsMarket, "market", "usStock", "market (forex, usStock, krStock; crypto has no fundamentals)")
}

func runFundamentals(cmd *cobra.Command, args []string) error {
	symbol := args[0]

	eng, err := buildEngine()
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := eng.FetchFundamentals(ctx, params.FundamentalsRequest{
		Symbol: symbol, Market: params.MarketType(fundamentalsMarket),
	})
	if err != nil {
		return fmt.Errorf("fetch fundamentals for %s: %w", symbol, err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}
