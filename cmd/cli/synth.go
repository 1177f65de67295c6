package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grabkey/deal-service/internal/format"
	"github.com/grabkey/deal-service/internal/history"
)

var (
	synthOriginal float64
	synthFloor    float64
	synthSaleProb float64
	synthDepth    float64
	synthTrend    float64
	synthOutput   string
)

// synthCmd represents the synth command
var synthCmd = &cobra.Command{
	Use:   "synth <seed-key>",
	Short: "Synthesize a 52-week price history series",
	Long: `Synthesize a deterministic 52-week price history series for the given
seed key and price band. The same key and band always produce the identical
series, so the output is reproducible across runs and machines.`,
	Example: `  deal-service synth elden-ring --original 59.99 --floor 29.99
  deal-service synth elden-ring --original 59.99 --floor 29.99 --output json
  deal-service synth stardew-valley --original 14.99 --floor 8.99 --sale-prob 0.25`,
	Args: cobra.ExactArgs(1),
	RunE: runSynth,
}

func init() {
	rootCmd.AddCommand(synthCmd)

	defaults := history.DefaultOptions()
	synthCmd.Flags().Float64Var(&synthOriginal, "original", 0, "Original (list) price in dollars (required)")
	synthCmd.Flags().Float64Var(&synthFloor, "floor", 0, "Historical floor price in dollars (required)")
	synthCmd.Flags().Float64Var(&synthSaleProb, "sale-prob", defaults.SaleProbability, "Per-week sale probability")
	synthCmd.Flags().Float64Var(&synthDepth, "sale-depth", defaults.SaleDepth, "Base sale discount fraction")
	synthCmd.Flags().Float64Var(&synthTrend, "trend", defaults.TrendDown, "Weekly downward price erosion in dollars")
	synthCmd.Flags().StringVar(&synthOutput, "output", "table", "Output format: table or json")
	synthCmd.MarkFlagRequired("original")
	synthCmd.MarkFlagRequired("floor")
}

func runSynth(cmd *cobra.Command, args []string) error {
	seedKey := args[0]

	if synthOriginal <= 0 {
		return fmt.Errorf("--original must be positive, got %v", synthOriginal)
	}
	if synthFloor <= 0 || synthFloor > synthOriginal {
		return fmt.Errorf("--floor must be positive and at most the original price")
	}

	opts := history.Options{
		SaleProbability: synthSaleProb,
		SaleDepth:       synthDepth,
		TrendDown:       synthTrend,
	}

	logger.Info().
		Str("seedKey", seedKey).
		Float64("original", synthOriginal).
		Float64("floor", synthFloor).
		Msg("Synthesizing series")

	points := history.GenerateSeries(synthOriginal, synthFloor, seedKey, opts)
	h := history.Build(seedKey, "", points)

	switch strings.ToLower(synthOutput) {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(h)
	case "table":
		fmt.Printf("\nSeries for %s\n", seedKey)
		fmt.Println(strings.Repeat("-", 60))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintf(w, "Week\tDate\tPrice\n")
		fmt.Fprintf(w, "----\t----\t-----\n")
		for i, p := range h.Points {
			fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, p.Date.Format("2006-01-02"), format.Price(p.Price))
		}
		w.Flush()

		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("All-time low: %s  All-time high: %s  Average: %s\n",
			format.Price(h.AllTimeLow), format.Price(h.AllTimeHigh), format.Price(h.AveragePrice))
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (use 'table' or 'json')", synthOutput)
	}
}
