package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vehiclecatalog/internal/browser"
	"vehiclecatalog/internal/models"
)

func TestNormalizationQuirks(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"scooter link", NormalizeModelLink("https://www.zigwheels.com/honda-scooters/activa"), "https://www.zigwheels.com/honda-bikes/activa"},
		{"bike link untouched", NormalizeModelLink("https://www.zigwheels.com/bajaj-bikes/pulsar"), "https://www.zigwheels.com/bajaj-bikes/pulsar"},
		{"variant name", CleanVariantName("Toyota Camry Elegance", "toyota", "camry"), "elegance"},
		{"variant name with spaces", CleanVariantName("  Maruti Swift VXI AMT ", "maruti", "swift"), "vxi amt"},
		{"read more marker", CleanSpecValue("  Dual airbags\n...Read More "), "Dual airbags"},
		{"read more suffix", CleanSpecValue("ABS...Read More"), "ABS"},
		{"plain value", CleanSpecValue(" 150 hp "), "150 hp"},
		{"listing url", ListingURL("https://www.zigwheels.com/", models.Bike), "https://www.zigwheels.com/newbikes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.got)
		})
	}
}

func TestRetryConfig(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3}

	calls := 0
	err := r.Do(context.Background(), "flaky", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)

	calls = 0
	cause := errors.New("still broken")
	err = r.Do(context.Background(), "broken", func() error {
		calls++
		return cause
	})
	require.Equal(t, 3, calls)
	require.ErrorIs(t, err, ErrRetriesExhausted)
	require.ErrorIs(t, err, cause)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r = &RetryConfig{MaxAttempts: 5, Delay: time.Hour}
	err = r.Do(ctx, "cancelled", func() error { return cause })
	require.ErrorIs(t, err, context.Canceled)
}

func newListingSite() *fakeListingSite {
	return &fakeListingSite{
		brands: []fakeBrand{
			{
				name:   "Toyota",
				url:    "https://www.zigwheels.com/toyota-cars",
				models: map[string]string{"Camry": "camry", "Fortuner": "fortuner"},
				order:  []string{"Camry", "Fortuner"},
			},
			{
				name:   "Honda",
				url:    "https://www.zigwheels.com/honda-scooters",
				models: map[string]string{"Activa 6G": "activa-6g"},
				order:  []string{"Activa 6G"},
			},
		},
		failSelects: map[int]int{},
	}
}

func TestCollectModels(t *testing.T) {
	site := newListingSite()
	s := New(site, testOptions())

	rows, err := s.CollectModels(context.Background(), "https://www.zigwheels.com/newcars")
	require.NoError(t, err)
	require.Equal(t, []models.ModelRow{
		{Brand: "toyota", Model: "camry", ModelLink: "https://www.zigwheels.com/toyota-cars/camry"},
		{Brand: "toyota", Model: "fortuner", ModelLink: "https://www.zigwheels.com/toyota-cars/fortuner"},
		{Brand: "honda", Model: "activa 6g", ModelLink: "https://www.zigwheels.com/honda-bikes/activa-6g"},
	}, rows)
	require.Equal(t, []string{"https://www.zigwheels.com/newcars"}, site.visited)
}

func TestCollectModelsRetriesTransientFailures(t *testing.T) {
	site := newListingSite()
	site.failSelects[2] = 4 // succeeds on the fifth and last attempt
	s := New(site, testOptions())

	rows, err := s.CollectModels(context.Background(), "https://www.zigwheels.com/newbikes")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, 1+5, site.selects)
}

func TestCollectModelsFailsAfterRetryBudget(t *testing.T) {
	site := newListingSite()
	site.failSelects[1] = 5
	s := New(site, testOptions())

	rows, err := s.CollectModels(context.Background(), "https://www.zigwheels.com/newcars")
	require.ErrorIs(t, err, ErrRetriesExhausted)
	require.Nil(t, rows)
	require.Equal(t, 5, site.selects, "the second brand must never be attempted")
}

func TestCollectModelsWithoutBrandList(t *testing.T) {
	page := browser.NewStaticPage(map[string]string{"https://x/newcars": "<html><body></body></html>"})
	s := New(page, testOptions())

	_, err := s.CollectModels(context.Background(), "https://x/newcars")
	require.ErrorIs(t, err, browser.ErrTimeout)
}
