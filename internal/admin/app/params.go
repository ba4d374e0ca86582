package app

import (
	"net/url"
	"strconv"

	"nemt-rides/internal/shared/apperrors"
	"nemt-rides/internal/shared/validation"
)

const defaultRadiusKm = 10

type gpsPoint struct {
	lat float64
	lng float64
}

// parseGPSPoint reads the gps_latitude/gps_longitude pair. Both absent
// means no GPS ranking; exactly one present is a client error.
func parseGPSPoint(params url.Values) (*gpsPoint, error) {
	latStr := params.Get("gps_latitude")
	lngStr := params.Get("gps_longitude")

	if latStr == "" && lngStr == "" {
		return nil, nil
	}
	if latStr == "" {
		return nil, apperrors.Validation("gps_latitude", "required when gps_longitude is provided")
	}
	if lngStr == "" {
		return nil, apperrors.Validation("gps_longitude", "required when gps_latitude is provided")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, apperrors.Validation("gps_latitude", "must be a number")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, apperrors.Validation("gps_longitude", "must be a number")
	}

	if err := validation.ValidateLatitude(lat); err != nil {
		return nil, apperrors.Validation("gps_latitude", err.Error())
	}
	if err := validation.ValidateLongitude(lng); err != nil {
		return nil, apperrors.Validation("gps_longitude", err.Error())
	}

	return &gpsPoint{lat: lat, lng: lng}, nil
}

// requireGPSPoint is parseGPSPoint for endpoints where the pair is
// mandatory.
func requireGPSPoint(params url.Values) (*gpsPoint, error) {
	if params.Get("gps_latitude") == "" && params.Get("gps_longitude") == "" {
		return nil, apperrors.Validation("gps_latitude", "gps_latitude and gps_longitude are required")
	}
	return parseGPSPoint(params)
}

func parseRadius(params url.Values) (float64, error) {
	v := params.Get("radius")
	if v == "" {
		return defaultRadiusKm, nil
	}

	radius, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, apperrors.Validation("radius", "must be a number")
	}
	if err := validation.ValidatePositiveFloat(radius, "radius"); err != nil {
		return 0, apperrors.Validation("radius", "must be positive")
	}

	return radius, nil
}
