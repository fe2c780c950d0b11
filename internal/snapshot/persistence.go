package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"vehiclecatalog/internal/models"
	"vehiclecatalog/internal/tables"
)

// MergedFileName is the canonical catalog consumed by the API
const MergedFileName = "data.json"

// SaveCategory writes one category's nested specs, key-sorted and indented
func SaveCategory(path string, brands models.CategoryBrands) error {
	if brands == nil {
		brands = models.CategoryBrands{}
	}
	return writeJSON(path, brands)
}

// LoadCategory reads a file written by SaveCategory
func LoadCategory(path string) (models.CategoryBrands, error) {
	var brands models.CategoryBrands
	if err := readJSON(path, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// Merge reads each category's specs.json under dataDir and writes the combined
// document, keyed by capitalised category name, to outPath.
func Merge(dataDir string, categories []models.VehicleType, outPath string) (models.SpecDocument, error) {
	doc := make(models.SpecDocument, len(categories))
	for _, category := range categories {
		path := tables.CategoryPath(dataDir, category, tables.SpecsFileName)
		brands, err := LoadCategory(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s specs: %w", category, err)
		}
		doc[category.Title()] = brands
	}

	if err := writeJSON(outPath, doc); err != nil {
		return nil, err
	}
	log.Printf("💾 Merged %d categories into %s", len(doc), outPath)
	return doc, nil
}

// LoadDocument reads the merged catalog
func LoadDocument(path string) (models.SpecDocument, error) {
	var doc models.SpecDocument
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetFileAge returns how long ago the file was written
func GetFileAge(path string) (time.Duration, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return time.Since(info.ModTime()), nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Maps marshal with sorted keys
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	jsonData, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(jsonData, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}
