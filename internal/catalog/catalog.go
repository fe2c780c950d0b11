// Package catalog holds the flattened, read-only vehicle table served by the API.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"vehiclecatalog/internal/models"
)

var (
	// ErrNotFound means no row matched a lookup
	ErrNotFound = errors.New("vehicle not found")
	// ErrUnknownColumn means a query referenced a column the table does not have
	ErrUnknownColumn = errors.New("unknown column")
)

// Column names of the flattened table
const (
	ColumnVehicleType = "Vehicle Type"
	ColumnBrand       = "Brand"
	ColumnModel       = "Model"
	ColumnVariant     = "Variant"
)

// Table is immutable after New, so concurrent readers need no locking
type Table struct {
	rows []models.FlatCatalogRow
}

// Flatten turns the nested document into one row per variant, ordered by key at
// every level, which is the order the key-sorted document has on disk.
func Flatten(doc models.SpecDocument) []models.FlatCatalogRow {
	var rows []models.FlatCatalogRow
	for _, vehicleType := range sortedKeys(doc) {
		brands := doc[vehicleType]
		for _, brand := range sortedKeys(brands) {
			modelsByName := brands[brand]
			for _, model := range sortedKeys(modelsByName) {
				variants := modelsByName[model]
				for _, variant := range sortedKeys(variants) {
					rows = append(rows, models.FlatCatalogRow{
						VehicleType: vehicleType,
						Brand:       brand,
						Model:       model,
						Variant:     variant,
						Specs:       variants[variant],
					})
				}
			}
		}
	}
	return rows
}

// New copies rows into an immutable table
func New(rows []models.FlatCatalogRow) *Table {
	return &Table{rows: append([]models.FlatCatalogRow(nil), rows...)}
}

// FromDocument flattens doc into a table
func FromDocument(doc models.SpecDocument) *Table {
	return &Table{rows: Flatten(doc)}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// VehicleInfo returns the first row matching all four fields, ignoring case and
// surrounding whitespace.
func (t *Table) VehicleInfo(vehicleType, brand, model, variant string) (models.VehicleRecord, error) {
	filters := []filter{
		{ColumnVehicleType, vehicleType},
		{ColumnBrand, brand},
		{ColumnModel, model},
		{ColumnVariant, variant},
	}
	matches, err := t.filter(filters)
	if err != nil {
		return models.VehicleRecord{}, err
	}
	if len(matches) == 0 {
		return models.VehicleRecord{}, fmt.Errorf("%s %s %s %s: %w", vehicleType, brand, model, variant, ErrNotFound)
	}

	row := matches[0]
	return models.VehicleRecord{
		VehicleType: row.VehicleType,
		Brand:       row.Brand,
		Model:       row.Model,
		Variant:     row.Variant,
		Specs:       row.Specs,
	}, nil
}

// VehiclesList narrows by vehicle type, then brand and model when given, and
// returns the unique values of the next level down in first-seen order:
// brands, models of a brand, or variants of a model.
func (t *Table) VehiclesList(vehicleType, brand, model string) ([]string, error) {
	filters := []filter{{ColumnVehicleType, vehicleType}}
	next := ColumnBrand
	if strings.TrimSpace(brand) != "" {
		filters = append(filters, filter{ColumnBrand, brand})
		next = ColumnModel
	}
	if strings.TrimSpace(model) != "" {
		filters = append(filters, filter{ColumnModel, model})
		next = ColumnVariant
	}

	matches, err := t.filter(filters)
	if err != nil {
		return nil, err
	}
	return unique(matches, next)
}

type filter struct {
	column string
	value  string
}

func (t *Table) filter(filters []filter) ([]models.FlatCatalogRow, error) {
	for _, f := range filters {
		if _, err := column(models.FlatCatalogRow{}, f.column); err != nil {
			return nil, err
		}
	}

	var out []models.FlatCatalogRow
	for _, row := range t.rows {
		if matchesAll(row, filters) {
			out = append(out, row)
		}
	}
	return out, nil
}

func matchesAll(row models.FlatCatalogRow, filters []filter) bool {
	for _, f := range filters {
		value, _ := column(row, f.column)
		if !strings.EqualFold(value, strings.TrimSpace(f.value)) {
			return false
		}
	}
	return true
}

func unique(rows []models.FlatCatalogRow, name string) ([]string, error) {
	if _, err := column(models.FlatCatalogRow{}, name); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	out := []string{}
	for _, row := range rows {
		value, _ := column(row, name)
		if !seen[value] {
			seen[value] = true
			out = append(out, value)
		}
	}
	return out, nil
}

func column(row models.FlatCatalogRow, name string) (string, error) {
	switch name {
	case ColumnVehicleType:
		return row.VehicleType, nil
	case ColumnBrand:
		return row.Brand, nil
	case ColumnModel:
		return row.Model, nil
	case ColumnVariant:
		return row.Variant, nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownColumn)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TypeStats counts the contents of one vehicle type
type TypeStats struct {
	VehicleType string `json:"vehicleType"`
	Brands      int    `json:"brands"`
	Models      int    `json:"models"`
	Variants    int    `json:"variants"`
	Unavailable int    `json:"unavailable"`
}

// Stats summarises the table per vehicle type, in table order
func (t *Table) Stats() []TypeStats {
	type seen struct {
		stats  TypeStats
		brands map[string]bool
		models map[string]bool
	}
	var order []string
	byType := make(map[string]*seen)

	for _, row := range t.rows {
		s, ok := byType[row.VehicleType]
		if !ok {
			s = &seen{
				stats:  TypeStats{VehicleType: row.VehicleType},
				brands: make(map[string]bool),
				models: make(map[string]bool),
			}
			byType[row.VehicleType] = s
			order = append(order, row.VehicleType)
		}
		s.brands[row.Brand] = true
		s.models[row.Brand+"\x00"+row.Model] = true
		s.stats.Variants++
		if !row.Specs.Available {
			s.stats.Unavailable++
		}
	}

	out := make([]TypeStats, 0, len(order))
	for _, vt := range order {
		s := byType[vt]
		s.stats.Brands = len(s.brands)
		s.stats.Models = len(s.models)
		out = append(out, s.stats)
	}
	return out
}
