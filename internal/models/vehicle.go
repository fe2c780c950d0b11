package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Reserved keys of a variant record. Everything else in the record is a spec group.
const (
	KeyURL             = "URL"
	KeyDescription     = "Description"
	KeyExShowroomPrice = "Ex-showroom Price"
	KeyAvailable       = "Available"
)

// UnavailableVariant is the variant name recorded for models without a variant widget
const UnavailableVariant = "N/A"

// VehicleType is a top-level partition of the catalog
type VehicleType string

const (
	Car  VehicleType = "car"
	Bike VehicleType = "bike"
)

// VehicleTypes lists the categories in scrape order
var VehicleTypes = []VehicleType{Car, Bike}

// ParseVehicleType accepts "car"/"bike" in any case
func ParseVehicleType(s string) (VehicleType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Car):
		return Car, nil
	case string(Bike):
		return Bike, nil
	}
	return "", fmt.Errorf("unknown vehicle type %q (want car or bike)", s)
}

// Title returns the capitalised name used as the top-level key of the merged catalog
func (v VehicleType) Title() string {
	if v == "" {
		return ""
	}
	return strings.ToUpper(string(v[:1])) + string(v[1:])
}

// ModelRow is one (brand, model) pair found on a category listing page
type ModelRow struct {
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	ModelLink string `json:"model_link"`
}

// VariantRow is one variant of a model, or the N/A placeholder when none were found
type VariantRow struct {
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	ModelLink   string `json:"model_link"`
	Variant     string `json:"variant"`
	VariantLink string `json:"variant_link"`
	Available   int    `json:"available"` // 0 or 1
}

// SpecGroup maps attribute names to values, e.g. "Max Power" -> "150 bhp"
type SpecGroup map[string]string

// VariantRecord holds everything scraped from a variant detail page.
// It serialises to one flat JSON object: the spec groups by name plus the
// four reserved keys.
type VariantRecord struct {
	Groups          map[string]SpecGroup
	URL             string
	Description     *string
	ExShowroomPrice *string
	Available       bool
}

// MarshalJSON flattens the groups and reserved keys into one object.
// Reserved keys replace a group that happens to share their name.
func (r VariantRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Groups)+4)
	for name, group := range r.Groups {
		if group == nil {
			group = SpecGroup{}
		}
		out[name] = group
	}
	out[KeyURL] = r.URL
	out[KeyDescription] = r.Description
	out[KeyExShowroomPrice] = r.ExShowroomPrice
	out[KeyAvailable] = r.Available

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON is the inverse of MarshalJSON. A null spec group decodes to an
// empty group, the same form MarshalJSON writes for a nil one, so every group
// in a decoded record is non-nil.
func (r *VariantRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rec := VariantRecord{Groups: make(map[string]SpecGroup)}
	for key, value := range raw {
		var err error
		switch key {
		case KeyURL:
			var url *string
			err = json.Unmarshal(value, &url)
			if url != nil {
				rec.URL = *url
			}
		case KeyDescription:
			err = json.Unmarshal(value, &rec.Description)
		case KeyExShowroomPrice:
			err = json.Unmarshal(value, &rec.ExShowroomPrice)
		case KeyAvailable:
			err = json.Unmarshal(value, &rec.Available)
		default:
			var group SpecGroup
			err = json.Unmarshal(value, &group)
			if group == nil {
				group = SpecGroup{}
			}
			rec.Groups[key] = group
		}
		if err != nil {
			return fmt.Errorf("variant record key %q: %w", key, err)
		}
	}

	*r = rec
	return nil
}

// ModelVariants maps variant name to its record
type ModelVariants map[string]VariantRecord

// BrandModels maps model name to its variants
type BrandModels map[string]ModelVariants

// CategoryBrands maps brand name to its models; one per vehicle category
type CategoryBrands map[string]BrandModels

// SpecDocument is the merged catalog keyed by capitalised vehicle type
type SpecDocument map[string]CategoryBrands

// FlatCatalogRow is one leaf of a SpecDocument
type FlatCatalogRow struct {
	VehicleType string        `json:"Vehicle Type"`
	Brand       string        `json:"Brand"`
	Model       string        `json:"Model"`
	Variant     string        `json:"Variant"`
	Specs       VariantRecord `json:"Specs"`
}

// VehicleRecord is the API response for a single vehicle
type VehicleRecord struct {
	VehicleType string        `json:"VehicleType"`
	Brand       string        `json:"Brand"`
	Model       string        `json:"Model"`
	Variant     string        `json:"Variant"`
	Specs       VariantRecord `json:"Specs" swaggertype:"object"`
}

// VehicleList is the API response for hierarchy listings
type VehicleList struct {
	Data []string `json:"Data"`
}
