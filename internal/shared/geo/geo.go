package geo

import "math"

// earthRadiusKm is the mean Earth radius.
const earthRadiusKm = 6371

// kmPerDegreeLat is the approximate north-south span of one degree of
// latitude, used only for the coarse bounding-box pre-filter.
const kmPerDegreeLat = 111.0

func toRadians(degree float64) float64 {
	return degree * math.Pi / 180
}

// Haversine returns the great-circle distance in kilometers between two
// points on a spherical Earth. Inputs are assumed to be validated
// coordinates; the function itself never rejects them.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	deltaPhi := toRadians(lat2 - lat1)
	deltaLambda := toRadians(lon2 - lon1)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Box is a rectangular coordinate range enclosing a radius around a point.
// It over-selects; the exact haversine cutoff must still be applied.
type Box struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// BoundingBox returns the box enclosing radiusKm around (lat, lng).
// Longitude degrees shrink with cos(lat); near the poles the longitude
// bound degenerates and the box spans the full longitude range.
func BoundingBox(lat, lng, radiusKm float64) Box {
	deltaLat := radiusKm / kmPerDegreeLat

	box := Box{
		MinLat: math.Max(lat-deltaLat, -90),
		MaxLat: math.Min(lat+deltaLat, 90),
		MinLng: -180,
		MaxLng: 180,
	}

	cosLat := math.Cos(toRadians(lat))
	if cosLat > 1e-6 {
		deltaLng := radiusKm / (kmPerDegreeLat * cosLat)
		if deltaLng < 180 {
			box.MinLng = lng - deltaLng
			box.MaxLng = lng + deltaLng
		}
	}

	return box
}

// Contains reports whether the point lies inside the box. Boxes crossing
// the antimeridian are not folded; callers near it rely on the exact
// haversine cutoff instead.
func (b Box) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lng >= b.MinLng && lng <= b.MaxLng
}
