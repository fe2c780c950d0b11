package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"vehiclecatalog/internal/browser"
	"vehiclecatalog/internal/models"
)

const camryPage = `<html><body>
<a data-track-label="variant-widget" href="https://www.zigwheels.com/toyota-cars/camry/elegance">Toyota Camry Elegance</a>
<a data-track-label="variant-widget" href="https://www.zigwheels.com/toyota-cars/camry/hybrid">Toyota Camry Hybrid</a>
<a data-track-label="other-widget" href="https://www.zigwheels.com/elsewhere">Elsewhere</a>
</body></html>`

const upcomingPage = `<html><body><h1>Coming soon</h1></body></html>`

const elegancePage = `<html><body>
<div class="fnt-14 read-more mx-ht-pg-desc rm"><p>  The Camry is a hybrid sedan. </p></div>
<ul class="pl-15 pr-15 fnt-14 simple-list"><li><span>Rs. 46.17 Lakh</span></li></ul>
<div class="spec-t-ctr"><h3>Engine</h3><table>
<tr><td>Power</td><td>150hp</td></tr>
<tr><td>Safety</td><td>Dual airbags<br>...Read More</td></tr>
</table></div>
<div class="spec-t-ctr"><h3>Dimensions</h3><table>
<tr><td>Length</td><td>4885 mm</td></tr>
<tr><td>Orphan</td></tr>
</table></div>
<div class="spec-t-ctr wide"><h3>Ignored</h3><table><tr><td>a</td><td>b</td></tr></table></div>
</body></html>`

const hybridPage = `<html><body><p>Nothing to see</p></body></html>`

func TestCollectVariants(t *testing.T) {
	page := browser.NewStaticPage(map[string]string{
		"https://www.zigwheels.com/toyota-cars/camry":  camryPage,
		"https://www.zigwheels.com/toyota-cars/glanza": upcomingPage,
	})
	s := New(page, testOptions())

	rows := []models.ModelRow{
		{Brand: "toyota", Model: "camry", ModelLink: "https://www.zigwheels.com/toyota-cars/camry"},
		{Brand: "toyota", Model: "glanza", ModelLink: "https://www.zigwheels.com/toyota-cars/glanza"},
		{Brand: "toyota", Model: "broken", ModelLink: "https://www.zigwheels.com/toyota-cars/broken"},
	}

	got, err := s.CollectVariants(context.Background(), rows)
	require.NoError(t, err)
	require.Equal(t, []models.VariantRow{
		{Brand: "toyota", Model: "camry", ModelLink: rows[0].ModelLink, Variant: "elegance", VariantLink: "https://www.zigwheels.com/toyota-cars/camry/elegance", Available: 1},
		{Brand: "toyota", Model: "camry", ModelLink: rows[0].ModelLink, Variant: "hybrid", VariantLink: "https://www.zigwheels.com/toyota-cars/camry/hybrid", Available: 1},
		{Brand: "toyota", Model: "glanza", ModelLink: rows[1].ModelLink, Variant: "N/A", VariantLink: rows[1].ModelLink, Available: 0},
	}, got)

	for _, row := range got {
		require.Contains(t, []int{0, 1}, row.Available)
		if row.Available == 0 {
			require.Equal(t, models.UnavailableVariant, row.Variant)
			require.Equal(t, row.ModelLink, row.VariantLink)
		}
	}
}

func TestCollectSpecs(t *testing.T) {
	page := browser.NewStaticPage(map[string]string{
		"https://www.zigwheels.com/toyota-cars/camry/elegance": elegancePage,
		"https://www.zigwheels.com/toyota-cars/camry/hybrid":   hybridPage,
		"https://www.zigwheels.com/toyota-cars/glanza":         upcomingPage,
	})
	s := New(page, testOptions())

	rows := []models.VariantRow{
		{Brand: "toyota", Model: "camry", Variant: "elegance", VariantLink: "https://www.zigwheels.com/toyota-cars/camry/elegance", Available: 1},
		{Brand: "toyota", Model: "camry", Variant: "hybrid", VariantLink: "https://www.zigwheels.com/toyota-cars/camry/hybrid", Available: 1},
		{Brand: "toyota", Model: "camry", Variant: "gone", VariantLink: "https://www.zigwheels.com/toyota-cars/camry/gone", Available: 1},
		{Brand: "toyota", Model: "glanza", Variant: "N/A", VariantLink: "https://www.zigwheels.com/toyota-cars/glanza", Available: 0},
		{Brand: "honda", Model: "city", Variant: "v", VariantLink: "https://www.zigwheels.com/honda-cars/city/v", Available: 1},
	}

	var reports []Progress
	brands, err := s.CollectSpecs(context.Background(), rows, func(p Progress) { reports = append(reports, p) })
	require.NoError(t, err)

	elegance := brands["toyota"]["camry"]["elegance"]
	require.Equal(t, "https://www.zigwheels.com/toyota-cars/camry/elegance", elegance.URL)
	require.True(t, elegance.Available)
	require.NotNil(t, elegance.Description)
	require.Equal(t, "The Camry is a hybrid sedan.", *elegance.Description)
	require.NotNil(t, elegance.ExShowroomPrice)
	require.Equal(t, "Rs. 46.17 Lakh", *elegance.ExShowroomPrice)
	require.Equal(t, map[string]models.SpecGroup{
		"Engine":     {"Power": "150hp", "Safety": "Dual airbags"},
		"Dimensions": {"Length": "4885 mm"},
	}, elegance.Groups)

	hybrid := brands["toyota"]["camry"]["hybrid"]
	require.Nil(t, hybrid.Description)
	require.Nil(t, hybrid.ExShowroomPrice)
	require.Empty(t, hybrid.Groups)
	require.True(t, hybrid.Available)

	_, ok := brands["toyota"]["camry"]["gone"]
	require.False(t, ok, "variants whose page cannot be loaded are skipped")

	glanza := brands["toyota"]["glanza"]["N/A"]
	require.False(t, glanza.Available)

	city, ok := brands["honda"]["city"]
	require.True(t, ok, "a model keeps its entry even when every variant failed")
	require.Empty(t, city)

	require.Len(t, reports, len(rows))
	require.Equal(t, Progress{Brand: "toyota", Model: "camry", Variant: "elegance", BrandsLeft: 2, ModelsLeft: 2, VariantsLeft: 2}, reports[0])
	require.Equal(t, Progress{Brand: "toyota", Model: "glanza", Variant: "N/A", BrandsLeft: 2, ModelsLeft: 1, VariantsLeft: 0}, reports[3])
	require.Equal(t, Progress{Brand: "honda", Model: "city", Variant: "v", BrandsLeft: 1, ModelsLeft: 1, VariantsLeft: 0}, reports[4])
}

func TestCollectSpecsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(browser.NewStaticPage(nil), testOptions())

	_, err := s.CollectSpecs(ctx, []models.VariantRow{{Brand: "a", Model: "b", Variant: "c"}}, nil)
	require.ErrorIs(t, err, context.Canceled)
}
