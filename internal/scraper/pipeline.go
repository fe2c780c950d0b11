package scraper

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"vehiclecatalog/internal/browser"
	"vehiclecatalog/internal/models"
	"vehiclecatalog/internal/snapshot"
	"vehiclecatalog/internal/tables"
)

// PageOpener starts a fresh browser session; closing the page ends it
type PageOpener func() (browser.Page, error)

// Pipeline runs the three stages per category, each reading the previous
// stage's file from DataDir. Every stage is a standalone re-runnable job.
type Pipeline struct {
	DataDir     string
	SiteBaseURL string
	Categories  []models.VehicleType
	Open        PageOpener
	Options     Options
	Progress    ProgressFunc

	// Pauses between categories to avoid getting blocked
	CategoryPause      time.Duration
	SpecsCategoryPause time.Duration
}

// NewPipeline returns a pipeline over every vehicle category with live-site pacing
func NewPipeline(dataDir, siteBaseURL string, open PageOpener) *Pipeline {
	return &Pipeline{
		DataDir:            dataDir,
		SiteBaseURL:        siteBaseURL,
		Categories:         models.VehicleTypes,
		Open:               open,
		Options:            DefaultOptions(),
		Progress:           LogProgress,
		CategoryPause:      5 * time.Second,
		SpecsCategoryPause: 10 * time.Second,
	}
}

// ScrapeModels writes <data>/<category>/models.csv for every category
func (p *Pipeline) ScrapeModels(ctx context.Context) error {
	return p.eachCategory(ctx, p.CategoryPause, func(s *Scraper, category models.VehicleType) error {
		log.Printf("🚗 Fetching %s models", category)
		rows, err := s.CollectModels(ctx, ListingURL(p.SiteBaseURL, category))
		if err != nil {
			return err
		}

		path := tables.CategoryPath(p.DataDir, category, tables.ModelsFileName)
		if err := tables.WriteModels(path, rows); err != nil {
			return err
		}
		log.Printf("💾 Saved %d %s models to %s", len(rows), category, path)
		return nil
	})
}

// ScrapeVariants reads models.csv and writes variants.csv for every category
func (p *Pipeline) ScrapeVariants(ctx context.Context) error {
	return p.eachCategory(ctx, p.CategoryPause, func(s *Scraper, category models.VehicleType) error {
		rows, err := tables.ReadModels(tables.CategoryPath(p.DataDir, category, tables.ModelsFileName))
		if err != nil {
			return err
		}
		log.Printf("🚗 Fetching variants for %d %s models", len(rows), category)

		variants, err := s.CollectVariants(ctx, rows)
		if err != nil {
			return err
		}

		path := tables.CategoryPath(p.DataDir, category, tables.VariantsFileName)
		if err := tables.WriteVariants(path, variants); err != nil {
			return err
		}
		log.Printf("💾 Saved %d %s variants to %s", len(variants), category, path)
		return nil
	})
}

// ScrapeSpecs reads variants.csv, writes specs.json per category and then the merged catalog
func (p *Pipeline) ScrapeSpecs(ctx context.Context) error {
	err := p.eachCategory(ctx, p.SpecsCategoryPause, func(s *Scraper, category models.VehicleType) error {
		rows, err := tables.ReadVariants(tables.CategoryPath(p.DataDir, category, tables.VariantsFileName))
		if err != nil {
			return err
		}
		log.Printf("🚗 Starting to fetch specs for %s", category)

		brands, err := s.CollectSpecs(ctx, rows, p.Progress)
		if err != nil {
			return err
		}

		path := tables.CategoryPath(p.DataDir, category, tables.SpecsFileName)
		if err := snapshot.SaveCategory(path, brands); err != nil {
			return err
		}
		log.Printf("🎉 Completed fetching specs. Saved to %s", path)
		return nil
	})
	if err != nil {
		return err
	}
	return p.Merge()
}

// Merge combines every category's specs.json into <data>/data.json.
// All vehicle categories are merged, not just the ones scraped in this run.
func (p *Pipeline) Merge() error {
	_, err := snapshot.Merge(p.DataDir, models.VehicleTypes, filepath.Join(p.DataDir, snapshot.MergedFileName))
	return err
}

// eachCategory opens one browser session per category and pauses between categories
func (p *Pipeline) eachCategory(ctx context.Context, pause time.Duration, run func(*Scraper, models.VehicleType) error) error {
	for i, category := range p.Categories {
		if i > 0 {
			if err := sleep(ctx, pause); err != nil {
				return err
			}
		}

		page, err := p.Open()
		if err != nil {
			return fmt.Errorf("%s: %w", category, err)
		}
		err = run(New(page, p.Options), category)
		if closeErr := page.Close(); closeErr != nil {
			log.Printf("⚠️  Failed to close browser: %v", closeErr)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", category, err)
		}
	}
	return nil
}
