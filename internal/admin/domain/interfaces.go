package domain

import (
	"context"
	"net/url"
	"time"

	"nemt-rides/internal/shared/geo"
	"nemt-rides/internal/shared/query"
)

type AdminRepository interface {
	ListRides(ctx context.Context, params url.Values, pages query.Pages) ([]Ride, int, error)
	RideCandidates(ctx context.Context, params url.Values, box *geo.Box) ([]Ride, error)
	RideStats(ctx context.Context) (*RideStats, error)
	RideExists(ctx context.Context, rideID string) (bool, error)

	ListEvents(ctx context.Context, params url.Values, pages query.Pages) ([]RideEvent, int, error)
	EventsSince(ctx context.Context, since time.Time, pages query.Pages) ([]TodaysEvent, int, error)
	EventsByRide(ctx context.Context, rideID string) ([]RideEvent, error)
	EventTypes(ctx context.Context) ([]string, error)
	EventStats(ctx context.Context) (*EventStats, error)

	ListUsers(ctx context.Context, params url.Values, pages query.Pages) ([]User, int, error)
	ActiveUsersByRole(ctx context.Context, role string) ([]User, error)
	UserStats(ctx context.Context) (*UserStats, error)
}

// AdminQueries is the service surface the HTTP handlers call. Every
// method validates its parameters before touching storage.
type AdminQueries interface {
	ListRides(ctx context.Context, params url.Values) (query.Envelope, error)
	NearbyRides(ctx context.Context, params url.Values) (query.Envelope, error)
	RideStats(ctx context.Context) (*RideStats, error)

	ListEvents(ctx context.Context, params url.Values) (query.Envelope, error)
	TodaysEvents(ctx context.Context, params url.Values) (query.Envelope, error)
	EventsByRide(ctx context.Context, rideID string) ([]RideEvent, error)
	EventTypes(ctx context.Context) ([]string, error)
	EventStats(ctx context.Context) (*EventStats, error)

	ListUsers(ctx context.Context, params url.Values) (query.Envelope, error)
	ActiveDrivers(ctx context.Context) ([]User, error)
	ActiveRiders(ctx context.Context) ([]User, error)
	UserStats(ctx context.Context) (*UserStats, error)
}
