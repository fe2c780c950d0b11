package scraper

import (
	"context"
	"fmt"
	"log"
	"strings"

	"vehiclecatalog/internal/browser"
	"vehiclecatalog/internal/models"
)

type brandLink struct {
	Name string
	URL  string
}

// CollectModels walks the brand dropdown of a category listing page and returns
// every (brand, model) pair. A brand that still fails after all retry attempts
// aborts the whole collection.
func (s *Scraper) CollectModels(ctx context.Context, listingURL string) ([]models.ModelRow, error) {
	if err := s.navigate(ctx, listingURL); err != nil {
		return nil, fmt.Errorf("failed to load listing page: %w", err)
	}

	brands, err := s.readBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read brands: %w", err)
	}
	log.Printf("📊 Found %d brands on %s", len(brands), listingURL)

	var rows []models.ModelRow
	// Option 0 of the brand dropdown is the "All brands" placeholder
	for i := 1; i <= len(brands); i++ {
		brand := brands[i-1]

		var found []models.ModelRow
		err := s.retry.Do(ctx, "brand "+brand.Name, func() error {
			log.Printf("Selecting brand %s", brand.Name)
			var err error
			found, err = s.readBrandModels(ctx, i, brand)
			return err
		})
		if err != nil {
			return nil, err
		}

		log.Printf("✅ Fetched %d models for brand %s", len(found), brand.Name)
		rows = append(rows, found...)
	}

	for i := range rows {
		rows[i].ModelLink = NormalizeModelLink(rows[i].ModelLink)
	}
	return rows, nil
}

func (s *Scraper) readBrands(ctx context.Context) ([]brandLink, error) {
	list, err := browser.WaitOne(ctx, s.page, brandListSelector, s.opts.WaitTimeout)
	if err != nil {
		return nil, err
	}
	anchors, err := list.Elements("a")
	if err != nil {
		return nil, err
	}

	brands := make([]brandLink, 0, len(anchors))
	for _, a := range anchors {
		href, err := a.Property("href")
		if err != nil {
			return nil, err
		}
		name, err := a.Text()
		if err != nil {
			return nil, err
		}
		brands = append(brands, brandLink{Name: strings.ToLower(name), URL: href})
	}
	return brands, nil
}

// readBrandModels selects brand index i and reads the dependent model dropdown
func (s *Scraper) readBrandModels(ctx context.Context, i int, brand brandLink) ([]models.ModelRow, error) {
	makes, err := browser.WaitOne(ctx, s.page, brandSelectSelector, s.opts.WaitTimeout)
	if err != nil {
		return nil, err
	}
	if err := makes.SelectIndex(i); err != nil {
		return nil, fmt.Errorf("select brand index %d: %w", i, err)
	}
	if err := sleep(ctx, s.opts.SelectPause); err != nil {
		return nil, err
	}

	modelSelect, err := browser.WaitOne(ctx, s.page, modelSelectSelector, s.opts.WaitTimeout)
	if err != nil {
		return nil, err
	}
	options, err := modelSelect.Elements("option")
	if err != nil {
		return nil, err
	}

	var rows []models.ModelRow
	// Skip the "Select model" placeholder
	for j := 1; j < len(options); j++ {
		name, err := options[j].Text()
		if err != nil {
			return nil, err
		}
		dataURL, err := options[j].Attribute("data-url")
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.ModelRow{
			Brand:     brand.Name,
			Model:     strings.ToLower(name),
			ModelLink: brand.URL + "/" + dataURL,
		})
	}
	return rows, nil
}
