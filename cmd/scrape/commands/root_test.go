package commands

import (
	"testing"

	"github.com/stretchr/testify/require"

	"vehiclecatalog/internal/models"
)

func TestParseCategories(t *testing.T) {
	all, err := parseCategories(nil)
	require.NoError(t, err)
	require.Equal(t, models.VehicleTypes, all)

	picked, err := parseCategories([]string{"Bike", "car", "bike"})
	require.NoError(t, err)
	require.Equal(t, []models.VehicleType{models.Bike, models.Car}, picked)

	_, err = parseCategories([]string{"truck"})
	require.Error(t, err)
}

func TestStageCommandsRegistered(t *testing.T) {
	for _, name := range []string{"models", "variants", "specs", "merge"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, cmd.Name())
	}
}
