package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"vehiclecatalog/internal/models"
)

// MaxParamLength bounds every lookup query parameter
const MaxParamLength = 100

// ErrInvalidParam marks request parameters that fail validation
var ErrInvalidParam = errors.New("invalid parameter")

var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// ValidateVehicleType normalizes vtype to "Car" or "Bike", in any case
func ValidateVehicleType(vtype string) (string, error) {
	vt, err := models.ParseVehicleType(vtype)
	if err != nil {
		return "", fmt.Errorf("vtype must be Car or Bike: %w", ErrInvalidParam)
	}
	return vt.Title(), nil
}

// ValidateRequiredParam checks a mandatory lookup parameter and returns it trimmed
func ValidateRequiredParam(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is required: %w", name, ErrInvalidParam)
	}
	return ValidateOptionalParam(name, value)
}

// ValidateOptionalParam checks a lookup parameter that may be empty and returns it trimmed
func ValidateOptionalParam(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if len(value) > MaxParamLength {
		return "", fmt.Errorf("%s must be at most %d characters: %w", name, MaxParamLength, ErrInvalidParam)
	}
	if controlChars.MatchString(value) {
		return "", fmt.Errorf("%s contains invalid characters: %w", name, ErrInvalidParam)
	}
	return value, nil
}
