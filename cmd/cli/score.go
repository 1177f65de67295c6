package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grabkey/deal-service/internal/catalog"
	"github.com/grabkey/deal-service/internal/dealscore"
)

var (
	scoreFactors []int
	scoreOutput  string
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute a deal score from its factor breakdown",
	Long: `Compute a deal score from the seven weighted factor scores. Factors are
given in order: historical-low, prediction, store-trust, price-trend, region,
edition, time-sensitivity, each on the 0-100 scale.`,
	Example: `  deal-service score --factors 95,80,98,70,100,100,60
  deal-service score --factors 95,80,98,70,100,100,60 --output json`,
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().IntSliceVar(&scoreFactors, "factors", nil, "Seven factor scores, comma-separated (required)")
	scoreCmd.Flags().StringVar(&scoreOutput, "output", "table", "Output format: table or json")
	scoreCmd.MarkFlagRequired("factors")
}

func runScore(cmd *cobra.Command, args []string) error {
	if len(scoreFactors) != 7 {
		return fmt.Errorf("--factors needs exactly 7 values, got %d", len(scoreFactors))
	}
	for i, f := range scoreFactors {
		if f < 0 || f > 100 {
			return fmt.Errorf("factor %d out of range: %d (expected 0-100)", i+1, f)
		}
	}

	b := catalog.DealScoreBreakdown{
		HistoricalLow:   scoreFactors[0],
		Prediction:      scoreFactors[1],
		StoreTrust:      scoreFactors[2],
		PriceTrend:      scoreFactors[3],
		Region:          scoreFactors[4],
		Edition:         scoreFactors[5],
		TimeSensitivity: scoreFactors[6],
	}

	score := dealscore.Compute(b)
	tier := dealscore.ScoreToTier(score)

	switch strings.ToLower(scoreOutput) {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]any{
			"breakdown": b,
			"score":     score,
			"tier":      tier,
		})
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintf(w, "Factor\tWeight\tScore\n")
		fmt.Fprintf(w, "------\t------\t-----\n")
		fmt.Fprintf(w, "Historical low\t%d%%\t%d\n", dealscore.WeightHistoricalLow, b.HistoricalLow)
		fmt.Fprintf(w, "Prediction\t%d%%\t%d\n", dealscore.WeightPrediction, b.Prediction)
		fmt.Fprintf(w, "Store trust\t%d%%\t%d\n", dealscore.WeightStoreTrust, b.StoreTrust)
		fmt.Fprintf(w, "Price trend\t%d%%\t%d\n", dealscore.WeightPriceTrend, b.PriceTrend)
		fmt.Fprintf(w, "Region\t%d%%\t%d\n", dealscore.WeightRegion, b.Region)
		fmt.Fprintf(w, "Edition\t%d%%\t%d\n", dealscore.WeightEdition, b.Edition)
		fmt.Fprintf(w, "Time sensitivity\t%d%%\t%d\n", dealscore.WeightTimeSensitivity, b.TimeSensitivity)
		w.Flush()

		fmt.Println(strings.Repeat("-", 40))
		fmt.Printf("Deal score: %d (%s)\n", score, tier)
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (use 'table' or 'json')", scoreOutput)
	}
}
