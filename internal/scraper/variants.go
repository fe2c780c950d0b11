package scraper

import (
	"context"
	"errors"
	"log"

	"vehiclecatalog/internal/browser"
	"vehiclecatalog/internal/models"
)

// CollectVariants visits every model page and lists its variants. A model whose
// variant widget never appears gets one N/A placeholder row; any other failure
// is logged and the model contributes no rows. Only ctx cancellation is returned.
func (s *Scraper) CollectVariants(ctx context.Context, rows []models.ModelRow) ([]models.VariantRow, error) {
	var out []models.VariantRow
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		variants, err := s.collectModelVariants(ctx, row)
		switch {
		case err == nil:
			out = append(out, variants...)
			log.Printf("Added %d variants for %s %s", len(variants), row.Brand, row.Model)
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case errors.Is(err, browser.ErrTimeout):
			log.Printf("There are no variants for %s %s available", row.Brand, row.Model)
			out = append(out, UnavailableRow(row))
		default:
			log.Printf("[ERROR] Error fetching variants for %s! %s", row.Model, errorLine(err))
		}
	}
	return out, nil
}

// UnavailableRow is the placeholder recorded for a model without variants
func UnavailableRow(row models.ModelRow) models.VariantRow {
	return models.VariantRow{
		Brand:       row.Brand,
		Model:       row.Model,
		ModelLink:   row.ModelLink,
		Variant:     models.UnavailableVariant,
		VariantLink: row.ModelLink,
		Available:   0,
	}
}

func (s *Scraper) collectModelVariants(ctx context.Context, row models.ModelRow) ([]models.VariantRow, error) {
	if err := s.navigate(ctx, row.ModelLink); err != nil {
		return nil, err
	}

	widgets, err := browser.WaitFor(ctx, s.page, variantWidgetSelector, s.opts.WaitTimeout, browser.All)
	if err != nil {
		return nil, err
	}

	variants := make([]models.VariantRow, 0, len(widgets))
	for _, w := range widgets {
		label, err := w.Text()
		if err != nil {
			return nil, err
		}
		href, err := w.Property("href")
		if err != nil {
			return nil, err
		}
		variants = append(variants, models.VariantRow{
			Brand:       row.Brand,
			Model:       row.Model,
			ModelLink:   row.ModelLink,
			Variant:     CleanVariantName(label, row.Brand, row.Model),
			VariantLink: href,
			Available:   1,
		})
	}
	return variants, nil
}
