package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vantage-quant/taengine/internal/indicators"
)

var indicatorsCmd = &cobra.Command{
	Use:   "indicators",
	Short: "List every indicator kernel the engine implements",
	RunE:  runIndicators,
}

func runIndicators(cmd *cobra.Command, args []string) error {
	catalog := indicators.Catalog()

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(catalog)
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintln(w, "NAME\tTYPE\tDESCRIPTION\tPARAMETERS")
		for _, m := range catalog {
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", m.Name, m.Type, m.Description, m.Parameters)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json)", outputFormat)
	}
}
