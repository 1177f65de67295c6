package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/grabkey/deal-service/internal/catalog"
	"github.com/grabkey/deal-service/internal/dealscore"
	"github.com/grabkey/deal-service/internal/seed"
)

var exportOut string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog snapshot to a spreadsheet",
	Long: `Export the built-in catalog snapshot to an XLSX workbook with one sheet
per entity: games, stores, prices, and deals.`,
	Example: `  deal-service export --out catalog.xlsx`,
	RunE:    runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "catalog.xlsx", "Output file path")
}

func runExport(cmd *cobra.Command, args []string) error {
	snap := seed.Snapshot()

	f := excelize.NewFile()
	defer f.Close()

	if err := writeGamesSheet(f, snap.Games); err != nil {
		return err
	}
	if err := writeStoresSheet(f, snap.Stores); err != nil {
		return err
	}
	if err := writePricesSheet(f, snap.Prices); err != nil {
		return err
	}
	if err := writeDealsSheet(f, snap.Deals); err != nil {
		return err
	}

	// The default sheet is replaced by the entity sheets.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.SaveAs(exportOut); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}

	logger.Info().
		Str("file", exportOut).
		Int("games", len(snap.Games)).
		Int("stores", len(snap.Stores)).
		Int("prices", len(snap.Prices)).
		Int("deals", len(snap.Deals)).
		Msg("Catalog exported")
	return nil
}

func writeSheet(f *excelize.File, name string, header []any, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %s: %w", name, err)
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("writing header on %s: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("writing row %d on %s: %w", i+2, name, err)
		}
	}
	return nil
}

func writeGamesSheet(f *excelize.File, games []catalog.Game) error {
	header := []any{"ID", "Slug", "Title", "Developer", "Publisher", "Release Date", "Original Price", "Best Price", "Discount %", "Deal Score"}
	rows := make([][]any, 0, len(games))
	for _, g := range games {
		rows = append(rows, []any{
			g.ID, g.Slug, g.Title, g.Developer, g.Publisher,
			g.ReleaseDate.Format("2006-01-02"),
			g.OriginalPrice, g.BestPrice,
			catalog.DiscountPercent(g.OriginalPrice, g.BestPrice),
			g.DealScore,
		})
	}
	return writeSheet(f, "Games", header, rows)
}

func writeStoresSheet(f *excelize.File, list []catalog.Store) error {
	header := []any{"ID", "Name", "Trust Score", "Trust Level", "Official"}
	rows := make([][]any, 0, len(list))
	for _, s := range list {
		rows = append(rows, []any{s.ID, s.Name, s.TrustScore, string(s.TrustLevel), s.IsOfficial})
	}
	return writeSheet(f, "Stores", header, rows)
}

func writePricesSheet(f *excelize.File, prices []catalog.Price) error {
	header := []any{"ID", "Game ID", "Store ID", "Price", "Original Price", "Region", "Edition", "In Stock"}
	rows := make([][]any, 0, len(prices))
	for _, p := range prices {
		rows = append(rows, []any{p.ID, p.GameID, p.StoreID, p.CurrentPrice, p.OriginalPrice, p.Region, p.EditionID, p.InStock})
	}
	return writeSheet(f, "Prices", header, rows)
}

func writeDealsSheet(f *excelize.File, deals []catalog.Deal) error {
	header := []any{"ID", "Game ID", "Store ID", "Deal Score", "Tier", "Expires At"}
	rows := make([][]any, 0, len(deals))
	for _, d := range deals {
		rows = append(rows, []any{
			d.ID, d.GameID, d.StoreID, d.DealScore,
			string(dealscore.ScoreToTier(d.DealScore)),
			d.ExpiresAt.Format(time.RFC3339),
		})
	}
	return writeSheet(f, "Deals", header, rows)
}
