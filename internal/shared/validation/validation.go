package validation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ValidateLatitude validates a latitude value
func ValidateLatitude(lat float64) error {
	if lat < -90 || lat > 90 {
		return errors.New("latitude must be between -90 and 90")
	}
	return nil
}

// ValidateLongitude validates a longitude value
func ValidateLongitude(lng float64) error {
	if lng < -180 || lng > 180 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateCoordinates validates latitude and longitude together
func ValidateCoordinates(lat, lng float64) error {
	if err := ValidateLatitude(lat); err != nil {
		return err
	}
	return ValidateLongitude(lng)
}

// ValidateUUID validates that a string is a valid UUID
func ValidateUUID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return errors.New("invalid UUID format")
	}
	return nil
}

// ValidatePositiveFloat validates that a float is positive
func ValidatePositiveFloat(value float64, fieldName string) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	return nil
}
