package scraper

import (
	"context"
	"log"
	"strings"

	"vehiclecatalog/internal/browser"
	"vehiclecatalog/internal/models"
)

// Progress is reported after every variant of the spec stage
type Progress struct {
	Brand        string
	Model        string
	Variant      string
	BrandsLeft   int // brands not finished yet, including the current one
	ModelsLeft   int // models of Brand not finished yet, including the current one
	VariantsLeft int // variants of Model still to visit
}

// ProgressFunc receives progress reports
type ProgressFunc func(Progress)

// LogProgress is the default ProgressFunc
func LogProgress(p Progress) {
	log.Printf("Remaining brands: %d, models in %s: %d, variants in %s: %d",
		p.BrandsLeft, p.Brand, p.ModelsLeft, p.Model, p.VariantsLeft)
}

type modelGroup struct {
	name string
	rows []models.VariantRow
}

type brandGroup struct {
	name   string
	models []*modelGroup
}

// groupVariantRows groups rows by brand, then model, both in first-seen order
func groupVariantRows(rows []models.VariantRow) []*brandGroup {
	var brands []*brandGroup
	brandIndex := make(map[string]*brandGroup)
	modelIndex := make(map[[2]string]*modelGroup)

	for _, row := range rows {
		bg, ok := brandIndex[row.Brand]
		if !ok {
			bg = &brandGroup{name: row.Brand}
			brandIndex[row.Brand] = bg
			brands = append(brands, bg)
		}
		key := [2]string{row.Brand, row.Model}
		mg, ok := modelIndex[key]
		if !ok {
			mg = &modelGroup{name: row.Model}
			modelIndex[key] = mg
			bg.models = append(bg.models, mg)
		}
		mg.rows = append(mg.rows, row)
	}
	return brands
}

// CollectSpecs visits every variant page and builds the category's nested specs.
// The tree is assembled bottom-up: variant records into models, models into brands.
// Unreachable variants are skipped; only ctx cancellation is returned.
func (s *Scraper) CollectSpecs(ctx context.Context, rows []models.VariantRow, progress ProgressFunc) (models.CategoryBrands, error) {
	if progress == nil {
		progress = LogProgress
	}

	groups := groupVariantRows(rows)
	brands := make(models.CategoryBrands, len(groups))

	for b, bg := range groups {
		brandModels := make(models.BrandModels, len(bg.models))

		for m, mg := range bg.models {
			variants := make(models.ModelVariants, len(mg.rows))

			for v, row := range mg.rows {
				if err := ctx.Err(); err != nil {
					return nil, err
				}

				log.Printf("Fetching specs for %s %s %s", row.Brand, row.Model, row.Variant)
				if record, ok := s.scrapeVariant(ctx, row); ok {
					variants[row.Variant] = record
					log.Printf("✅ Completed fetching specs for %s %s %s", row.Brand, row.Model, row.Variant)
				}

				progress(Progress{
					Brand:        bg.name,
					Model:        mg.name,
					Variant:      row.Variant,
					BrandsLeft:   len(groups) - b,
					ModelsLeft:   len(bg.models) - m,
					VariantsLeft: len(mg.rows) - v - 1,
				})
			}
			brandModels[mg.name] = variants
		}
		brands[bg.name] = brandModels
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return brands, nil
}

// scrapeVariant reads one variant page. Each field is extracted independently so
// a missing description or price never loses the rest of the record.
func (s *Scraper) scrapeVariant(ctx context.Context, row models.VariantRow) (models.VariantRecord, bool) {
	if err := s.navigate(ctx, row.VariantLink); err != nil {
		log.Printf("[ERROR] Error fetching specs for %s! %s", row.Variant, errorLine(err))
		return models.VariantRecord{}, false
	}

	record := models.VariantRecord{
		Groups:    s.readSpecGroups(ctx, row.Variant),
		URL:       row.VariantLink,
		Available: row.Available == 1,
	}

	if desc, err := s.readText(descriptionSelector); err != nil {
		log.Printf("[ERROR] Description not found for %s! %s", row.Variant, errorLine(err))
	} else {
		record.Description = &desc
	}

	if price, err := s.readText(exShowroomSelector); err != nil {
		log.Printf("[ERROR] Error fetching ex-showroom price for %s! %s", row.Variant, errorLine(err))
	} else {
		record.ExShowroomPrice = &price
	}

	return record, true
}

func (s *Scraper) readText(selector string) (string, error) {
	el, err := browser.Find(s.page, selector)
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *Scraper) readSpecGroups(ctx context.Context, variant string) map[string]models.SpecGroup {
	groups := make(map[string]models.SpecGroup)

	containers, err := browser.WaitFor(ctx, s.page, specGroupSelector, s.opts.WaitTimeout, browser.All)
	if err != nil {
		log.Printf("[ERROR] Specs not found for %s! %s", variant, errorLine(err))
		return groups
	}

	for _, container := range containers {
		name, group, err := s.readSpecGroup(ctx, container, variant)
		if err != nil {
			log.Printf("[ERROR] Error processing spec for %s! %s", variant, errorLine(err))
			continue
		}
		groups[name] = group
	}
	return groups
}

// readSpecGroup pairs the container's td cells as consecutive key/value cells.
// A pair that cannot be read is logged and skipped.
func (s *Scraper) readSpecGroup(ctx context.Context, container browser.Element, variant string) (string, models.SpecGroup, error) {
	cells, err := browser.WaitFor(ctx, container, specCellSelector, s.opts.WaitTimeout, browser.All)
	if err != nil {
		return "", nil, err
	}
	text, err := container.Text()
	if err != nil {
		return "", nil, err
	}
	name := firstLine(text)

	group := make(models.SpecGroup)
	for k := 0; k < len(cells); k += 2 {
		if k+1 >= len(cells) {
			log.Printf("[ERROR] Error fetching key-value pair for %s! unpaired cell in %s", variant, name)
			continue
		}
		key, err := cells[k].Text()
		if err != nil {
			log.Printf("[ERROR] Error fetching key-value pair for %s! %s", variant, errorLine(err))
			continue
		}
		value, err := cells[k+1].Text()
		if err != nil {
			log.Printf("[ERROR] Error fetching key-value pair for %s! %s", variant, errorLine(err))
			continue
		}
		group[strings.TrimSpace(key)] = CleanSpecValue(value)
	}
	return name, group, nil
}
