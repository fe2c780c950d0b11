package catalog

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"vehiclecatalog/internal/models"
)

func camryDocument() models.SpecDocument {
	return models.SpecDocument{
		"Car": {
			"Toyota": {
				"Camry": {
					"Elegance": {
						Groups: map[string]models.SpecGroup{"Engine": {"Power": "150hp"}},
						URL:    "https://www.zigwheels.com/toyota-cars/camry/elegance",
					},
				},
			},
		},
	}
}

func largerDocument() models.SpecDocument {
	rec := func(url string) models.VariantRecord {
		return models.VariantRecord{Groups: map[string]models.SpecGroup{}, URL: url, Available: true}
	}
	return models.SpecDocument{
		"Car": {
			"toyota": {
				"fortuner": {"legender": rec("f1"), "4x2 at": rec("f2")},
				"camry":    {"hybrid": rec("c1")},
			},
			"honda": {
				"city": {"v": rec("h1"), "vx": rec("h2")},
			},
		},
		"Bike": {
			"bajaj": {
				"pulsar": {"n160": rec("b1")},
			},
			"toyota": {
				"camry": {"hybrid": rec("odd")},
			},
		},
	}
}

func TestFlattenOrder(t *testing.T) {
	rows := Flatten(largerDocument())
	require.Len(t, rows, 7)

	var got [][4]string
	for _, r := range rows {
		got = append(got, [4]string{r.VehicleType, r.Brand, r.Model, r.Variant})
	}
	require.Equal(t, [][4]string{
		{"Bike", "bajaj", "pulsar", "n160"},
		{"Bike", "toyota", "camry", "hybrid"},
		{"Car", "honda", "city", "v"},
		{"Car", "honda", "city", "vx"},
		{"Car", "toyota", "camry", "hybrid"},
		{"Car", "toyota", "fortuner", "4x2 at"},
		{"Car", "toyota", "fortuner", "legender"},
	}, got)
}

func TestVehicleInfoScenario(t *testing.T) {
	table := FromDocument(camryDocument())

	rec, err := table.VehicleInfo("Car", "Toyota", "Camry", "Elegance")
	require.NoError(t, err)
	require.Equal(t, "Car", rec.VehicleType)
	require.Equal(t, "Toyota", rec.Brand)
	require.Equal(t, "Camry", rec.Model)
	require.Equal(t, "Elegance", rec.Variant)
	require.Equal(t, models.SpecGroup{"Power": "150hp"}, rec.Specs.Groups["Engine"])

	_, err = table.VehicleInfo("Car", "Toyota", "Camry", "GLX")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVehicleInfoRoundTrip(t *testing.T) {
	doc := largerDocument()
	table := FromDocument(doc)

	for vt, brands := range doc {
		for brand, modelsByName := range brands {
			for model, variants := range modelsByName {
				for variant, want := range variants {
					rec, err := table.VehicleInfo(vt, brand, model, variant)
					require.NoError(t, err)
					if diff := cmp.Diff(want, rec.Specs); diff != "" {
						t.Fatalf("%s/%s/%s/%s specs differ (-want +got):\n%s", vt, brand, model, variant, diff)
					}
				}
			}
		}
	}
}

func TestVehicleInfoIgnoresCaseAndWhitespace(t *testing.T) {
	table := FromDocument(camryDocument())

	a, err := table.VehicleInfo("car", "TOYOTA", "camry", "elegance")
	require.NoError(t, err)
	b, err := table.VehicleInfo("Car", "toyota", " Camry ", "ELEGANCE\t")
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestVehicleInfoFirstMatchWins(t *testing.T) {
	rows := []models.FlatCatalogRow{
		{VehicleType: "Car", Brand: "Toyota", Model: "Camry", Variant: "Elegance", Specs: models.VariantRecord{URL: "first"}},
		{VehicleType: "Car", Brand: "toyota", Model: "camry", Variant: "elegance", Specs: models.VariantRecord{URL: "second"}},
	}
	rec, err := New(rows).VehicleInfo("car", "toyota", "camry", "elegance")
	require.NoError(t, err)
	require.Equal(t, "first", rec.Specs.URL)
}

func TestVehiclesListScenario(t *testing.T) {
	table := FromDocument(camryDocument())

	list, err := table.VehiclesList("Car", "", "")
	require.NoError(t, err)
	require.Equal(t, []string{"Toyota"}, list)

	list, err = table.VehiclesList("Car", "Toyota", "")
	require.NoError(t, err)
	require.Equal(t, []string{"Camry"}, list)

	list, err = table.VehiclesList("Car", "Toyota", "Camry")
	require.NoError(t, err)
	require.Equal(t, []string{"Elegance"}, list)
}

func TestVehiclesListUniqueFirstSeen(t *testing.T) {
	table := FromDocument(largerDocument())

	brands, err := table.VehiclesList("car", "", "")
	require.NoError(t, err)
	require.Equal(t, []string{"honda", "toyota"}, brands)

	modelsOfToyota, err := table.VehiclesList(" CAR ", "Toyota", "")
	require.NoError(t, err)
	require.Equal(t, []string{"camry", "fortuner"}, modelsOfToyota)

	// model without brand narrows across every brand of the type
	variants, err := table.VehiclesList("Bike", "", "camry")
	require.NoError(t, err)
	require.Equal(t, []string{"hybrid"}, variants)

	none, err := table.VehiclesList("Car", "tesla", "")
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestUnknownColumn(t *testing.T) {
	_, err := unique(nil, "Colour")
	require.True(t, errors.Is(err, ErrUnknownColumn))

	_, err = New(nil).filter([]filter{{"Colour", "red"}})
	require.ErrorIs(t, err, ErrUnknownColumn)
}

func TestTableIsACopy(t *testing.T) {
	rows := []models.FlatCatalogRow{{VehicleType: "Car", Brand: "Toyota", Model: "Camry", Variant: "Elegance"}}
	table := New(rows)
	rows[0].Brand = "Honda"

	list, err := table.VehiclesList("Car", "", "")
	require.NoError(t, err)
	require.Equal(t, []string{"Toyota"}, list)
	require.Equal(t, 1, table.Len())
}

func TestStats(t *testing.T) {
	doc := largerDocument()
	doc["Car"]["toyota"]["fortuner"]["N/A"] = models.VariantRecord{URL: "f"}

	require.Equal(t, []TypeStats{
		{VehicleType: "Bike", Brands: 2, Models: 2, Variants: 2},
		{VehicleType: "Car", Brands: 2, Models: 3, Variants: 6, Unavailable: 1},
	}, FromDocument(doc).Stats())

	require.Empty(t, New(nil).Stats())
}
