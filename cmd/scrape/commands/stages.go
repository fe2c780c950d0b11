package commands

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"vehiclecatalog/internal/scraper"
)

func init() {
	rootCmd.AddCommand(
		stageCmd("models", "Collect every brand's models from the listing pages.", (*scraper.Pipeline).ScrapeModels),
		stageCmd("variants", "Collect the variants of every scraped model.", (*scraper.Pipeline).ScrapeVariants),
		stageCmd("specs", "Collect specifications of every variant and write the merged catalog.", (*scraper.Pipeline).ScrapeSpecs),
		mergeCmd,
	)
}

func stageCmd(name, short string, run func(*scraper.Pipeline, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline(cmd)
			if err != nil {
				return err
			}

			start := time.Now()
			if err := run(p, cmd.Context()); err != nil {
				return err
			}
			log.Printf("✅ %s stage finished in %s", name, time.Since(start).Round(time.Second))
			return nil
		},
	}
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge every category's specs.json into data.json without scraping.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline(cmd)
		if err != nil {
			return err
		}
		return p.Merge()
	},
}
