package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vehiclecatalog/internal/browser"
	"vehiclecatalog/internal/config"
	"vehiclecatalog/internal/models"
	"vehiclecatalog/internal/scraper"
)

var (
	categories []string
	visible    bool
	dataDir    string
)

var rootCmd = &cobra.Command{
	Use:   "scrape",
	Short: "scrape collects the ZigWheels car and bike catalog into the data directory.",
	Long: `scrape runs the catalog pipeline one stage at a time:

  models    listing page -> <data>/<category>/models.csv
  variants  models.csv   -> <data>/<category>/variants.csv
  specs     variants.csv -> <data>/<category>/specs.json and <data>/data.json
  merge     every specs.json -> <data>/data.json`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&categories, "category", nil, "vehicle category to scrape (car or bike); repeatable, defaults to all")
	rootCmd.PersistentFlags().BoolVar(&visible, "visible", false, "show the browser window instead of running headless")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for scraped tables (default DATA_DIR or ./data)")
}

// ExecuteContext runs the command tree; ctx cancellation stops a running scrape
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newPipeline applies flags on top of the environment configuration
func newPipeline(cmd *cobra.Command) (*scraper.Pipeline, error) {
	cfg := config.Load()
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("visible") {
		cfg.BrowserVisible = visible
	}

	selected, err := parseCategories(categories)
	if err != nil {
		return nil, err
	}

	open := func() (browser.Page, error) {
		return browser.Acquire(browser.Options{Visible: cfg.BrowserVisible, Bin: cfg.ChromeBin})
	}

	p := scraper.NewPipeline(cfg.DataDir, cfg.SiteBaseURL, open)
	p.Categories = selected
	p.Options.WaitTimeout = cfg.WaitTimeout
	p.Options.NavRatePerSec = cfg.NavRatePerSec
	return p, nil
}

func parseCategories(names []string) ([]models.VehicleType, error) {
	if len(names) == 0 {
		return models.VehicleTypes, nil
	}

	var out []models.VehicleType
	seen := make(map[models.VehicleType]bool)
	for _, name := range names {
		vt, err := models.ParseVehicleType(name)
		if err != nil {
			return nil, err
		}
		if !seen[vt] {
			seen[vt] = true
			out = append(out, vt)
		}
	}
	return out, nil
}
