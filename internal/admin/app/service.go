package app

import (
	"context"
	"net/url"
	"sort"
	"time"

	"nemt-rides/internal/admin/domain"
	"nemt-rides/internal/shared/apperrors"
	"nemt-rides/internal/shared/geo"
	"nemt-rides/internal/shared/query"
	"nemt-rides/internal/shared/validation"
)

// AdminService is the query core behind the admin API. It holds no
// mutable state; everything shared lives in the backing store.
type AdminService struct {
	repo  domain.AdminRepository
	pager query.Pager
	now   func() time.Time
}

func NewAdminService(repo domain.AdminRepository, pager query.Pager) *AdminService {
	return &AdminService{
		repo:  repo,
		pager: pager,
		now:   time.Now,
	}
}

// ListRides serves the ride listing. Without GPS parameters filtering
// and paging stay in SQL; with them, the filtered candidates are ranked
// by haversine distance here and paged in memory so that rides lacking
// coordinates still count toward totals, sorted last.
func (s *AdminService) ListRides(ctx context.Context, params url.Values) (query.Envelope, error) {
	pages, err := s.pager.Parse(params)
	if err != nil {
		return query.Envelope{}, err
	}

	point, err := parseGPSPoint(params)
	if err != nil {
		return query.Envelope{}, err
	}

	if point == nil {
		rides, total, err := s.repo.ListRides(ctx, params, pages)
		if err != nil {
			return query.Envelope{}, err
		}
		return pages.Wrap(total, rides), nil
	}

	candidates, err := s.repo.RideCandidates(ctx, params, nil)
	if err != nil {
		return query.Envelope{}, err
	}

	rankByDistance(candidates, point)

	lo, hi := pages.Bounds(len(candidates))
	return pages.Wrap(len(candidates), candidates[lo:hi]), nil
}

// NearbyRides returns rides whose pickup point lies within radius km of
// the query point, closest first. The repo pre-filters with a bounding
// box; the radius cutoff below uses the exact haversine distance.
func (s *AdminService) NearbyRides(ctx context.Context, params url.Values) (query.Envelope, error) {
	pages, err := s.pager.Parse(params)
	if err != nil {
		return query.Envelope{}, err
	}

	point, err := requireGPSPoint(params)
	if err != nil {
		return query.Envelope{}, err
	}

	radius, err := parseRadius(params)
	if err != nil {
		return query.Envelope{}, err
	}

	box := geo.BoundingBox(point.lat, point.lng, radius)
	candidates, err := s.repo.RideCandidates(ctx, params, &box)
	if err != nil {
		return query.Envelope{}, err
	}

	nearby := candidates[:0]
	for i := range candidates {
		ride := candidates[i]
		if !ride.HasPickup() {
			continue
		}
		d := geo.Haversine(point.lat, point.lng, *ride.PickupLat, *ride.PickupLng)
		if d > radius {
			continue
		}
		dist := d
		ride.DistanceKm = &dist
		nearby = append(nearby, ride)
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return *nearby[i].DistanceKm < *nearby[j].DistanceKm
	})

	lo, hi := pages.Bounds(len(nearby))
	return pages.Wrap(len(nearby), nearby[lo:hi]), nil
}

func (s *AdminService) RideStats(ctx context.Context) (*domain.RideStats, error) {
	return s.repo.RideStats(ctx)
}

func (s *AdminService) ListEvents(ctx context.Context, params url.Values) (query.Envelope, error) {
	pages, err := s.pager.Parse(params)
	if err != nil {
		return query.Envelope{}, err
	}

	events, total, err := s.repo.ListEvents(ctx, params, pages)
	if err != nil {
		return query.Envelope{}, err
	}

	return pages.Wrap(total, events), nil
}

// TodaysEvents lists events from the trailing 24 hours, newest first.
// The window is measured from the request moment, not midnight.
func (s *AdminService) TodaysEvents(ctx context.Context, params url.Values) (query.Envelope, error) {
	pages, err := s.pager.Parse(params)
	if err != nil {
		return query.Envelope{}, err
	}

	since := s.now().Add(-24 * time.Hour)
	events, total, err := s.repo.EventsSince(ctx, since, pages)
	if err != nil {
		return query.Envelope{}, err
	}

	return pages.Wrap(total, events), nil
}

func (s *AdminService) EventsByRide(ctx context.Context, rideID string) ([]domain.RideEvent, error) {
	if err := validation.ValidateUUID(rideID); err != nil {
		return nil, apperrors.Validation("ride_id", "must be a valid UUID")
	}

	exists, err := s.repo.RideExists(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("ride", rideID)
	}

	return s.repo.EventsByRide(ctx, rideID)
}

func (s *AdminService) EventTypes(ctx context.Context) ([]string, error) {
	return s.repo.EventTypes(ctx)
}

func (s *AdminService) EventStats(ctx context.Context) (*domain.EventStats, error) {
	return s.repo.EventStats(ctx)
}

func (s *AdminService) ListUsers(ctx context.Context, params url.Values) (query.Envelope, error) {
	pages, err := s.pager.Parse(params)
	if err != nil {
		return query.Envelope{}, err
	}

	users, total, err := s.repo.ListUsers(ctx, params, pages)
	if err != nil {
		return query.Envelope{}, err
	}

	return pages.Wrap(total, users), nil
}

func (s *AdminService) ActiveDrivers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ActiveUsersByRole(ctx, domain.RoleDriver)
}

func (s *AdminService) ActiveRiders(ctx context.Context) ([]domain.User, error) {
	return s.repo.ActiveUsersByRole(ctx, domain.RoleRider)
}

func (s *AdminService) UserStats(ctx context.Context) (*domain.UserStats, error) {
	return s.repo.UserStats(ctx)
}

// rankByDistance annotates coordinate-bearing rides with their distance
// from the point and sorts ascending. Rides without coordinates keep
// their relative order and sink to the end, so they stay countable.
func rankByDistance(rides []domain.Ride, point *gpsPoint) {
	for i := range rides {
		if !rides[i].HasPickup() {
			continue
		}
		d := geo.Haversine(point.lat, point.lng, *rides[i].PickupLat, *rides[i].PickupLng)
		rides[i].DistanceKm = &d
	}

	sort.SliceStable(rides, func(i, j int) bool {
		di, dj := rides[i].DistanceKm, rides[j].DistanceKm
		switch {
		case di != nil && dj != nil:
			return *di < *dj
		case di != nil:
			return true
		default:
			return false
		}
	})
}
