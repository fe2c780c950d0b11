// Package tables persists the intermediate scrape tables as CSV files,
// one directory per vehicle category.
package tables

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"vehiclecatalog/internal/models"
)

const (
	ModelsFileName   = "models.csv"
	VariantsFileName = "variants.csv"
	SpecsFileName    = "specs.json"
)

var (
	modelHeader   = []string{"brand", "model", "model_link"}
	variantHeader = []string{"brand", "model", "model_link", "variant", "variant_link", "available"}
)

// CategoryPath returns <dataDir>/<category>/<name>
func CategoryPath(dataDir string, category models.VehicleType, name string) string {
	return filepath.Join(dataDir, string(category), name)
}

// WriteModels writes the model table, replacing any previous file
func WriteModels(path string, rows []models.ModelRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r.Brand, r.Model, r.ModelLink})
	}
	return writeCSV(path, modelHeader, records)
}

// ReadModels reads a table written by WriteModels
func ReadModels(path string) ([]models.ModelRow, error) {
	records, err := readCSV(path, modelHeader)
	if err != nil {
		return nil, err
	}
	rows := make([]models.ModelRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, models.ModelRow{Brand: rec[0], Model: rec[1], ModelLink: rec[2]})
	}
	return rows, nil
}

// WriteVariants writes the variant table, replacing any previous file
func WriteVariants(path string, rows []models.VariantRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Brand, r.Model, r.ModelLink, r.Variant, r.VariantLink, strconv.Itoa(r.Available),
		})
	}
	return writeCSV(path, variantHeader, records)
}

// ReadVariants reads a table written by WriteVariants
func ReadVariants(path string) ([]models.VariantRow, error) {
	records, err := readCSV(path, variantHeader)
	if err != nil {
		return nil, err
	}
	rows := make([]models.VariantRow, 0, len(records))
	for i, rec := range records {
		available, err := strconv.Atoi(rec[5])
		if err != nil || (available != 0 && available != 1) {
			return nil, fmt.Errorf("%s line %d: available must be 0 or 1, got %q", path, i+2, rec[5])
		}
		rows = append(rows, models.VariantRow{
			Brand:       rec[0],
			Model:       rec[1],
			ModelLink:   rec[2],
			Variant:     rec[3],
			VariantLink: rec[4],
			Available:   available,
		})
	}
	return rows, nil
}

func writeCSV(path string, header []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return f.Close()
}

// readCSV returns the data rows reordered to match want, whatever the file's column order
func readCSV(path string, want []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", path, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	columns := make([]int, len(want))
	for i, name := range want {
		col, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, name)
		}
		columns[i] = col
	}

	var out [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		row := make([]string, len(want))
		for i, col := range columns {
			row[i] = rec[col]
		}
		out = append(out, row)
	}
	return out, nil
}
