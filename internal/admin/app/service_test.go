package app

import (
	"context"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nemt-rides/internal/admin/domain"
	"nemt-rides/internal/shared/apperrors"
	"nemt-rides/internal/shared/geo"
	"nemt-rides/internal/shared/query"
)

// fakeRepo is an in-memory AdminRepository. It applies the bounding box
// and time window itself so service tests cover the full read path.
type fakeRepo struct {
	rides  []domain.Ride
	events []domain.RideEvent
	users  []domain.User

	rideStats  *domain.RideStats
	eventStats *domain.EventStats
	userStats  *domain.UserStats

	calls   int
	lastBox *geo.Box
}

func (f *fakeRepo) ListRides(ctx context.Context, params url.Values, pages query.Pages) ([]domain.Ride, int, error) {
	f.calls++
	total := len(f.rides)
	if !pages.InRange(total) {
		return []domain.Ride{}, total, nil
	}
	lo, hi := pages.Bounds(total)
	return f.rides[lo:hi], total, nil
}

func (f *fakeRepo) RideCandidates(ctx context.Context, params url.Values, box *geo.Box) ([]domain.Ride, error) {
	f.calls++
	f.lastBox = box
	if box == nil {
		return append([]domain.Ride{}, f.rides...), nil
	}
	out := []domain.Ride{}
	for _, ride := range f.rides {
		if ride.HasPickup() && box.Contains(*ride.PickupLat, *ride.PickupLng) {
			out = append(out, ride)
		}
	}
	return out, nil
}

func (f *fakeRepo) RideStats(ctx context.Context) (*domain.RideStats, error) {
	f.calls++
	return f.rideStats, nil
}

func (f *fakeRepo) RideExists(ctx context.Context, rideID string) (bool, error) {
	f.calls++
	for _, e := range f.events {
		if e.RideID == rideID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ListEvents(ctx context.Context, params url.Values, pages query.Pages) ([]domain.RideEvent, int, error) {
	f.calls++
	total := len(f.events)
	if !pages.InRange(total) {
		return []domain.RideEvent{}, total, nil
	}
	lo, hi := pages.Bounds(total)
	return f.events[lo:hi], total, nil
}

func (f *fakeRepo) EventsSince(ctx context.Context, since time.Time, pages query.Pages) ([]domain.TodaysEvent, int, error) {
	f.calls++
	matched := []domain.TodaysEvent{}
	for _, e := range f.events {
		if !e.CreatedAt.Before(since) {
			matched = append(matched, domain.TodaysEvent{RideEvent: e})
		}
	}
	total := len(matched)
	lo, hi := pages.Bounds(total)
	return matched[lo:hi], total, nil
}

func (f *fakeRepo) EventsByRide(ctx context.Context, rideID string) ([]domain.RideEvent, error) {
	f.calls++
	out := []domain.RideEvent{}
	for _, e := range f.events {
		if e.RideID == rideID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) EventTypes(ctx context.Context) ([]string, error) {
	f.calls++
	return []string{"dropoff", "pickup", "status_change"}, nil
}

func (f *fakeRepo) EventStats(ctx context.Context) (*domain.EventStats, error) {
	f.calls++
	return f.eventStats, nil
}

func (f *fakeRepo) ListUsers(ctx context.Context, params url.Values, pages query.Pages) ([]domain.User, int, error) {
	f.calls++
	total := len(f.users)
	if !pages.InRange(total) {
		return []domain.User{}, total, nil
	}
	lo, hi := pages.Bounds(total)
	return f.users[lo:hi], total, nil
}

func (f *fakeRepo) ActiveUsersByRole(ctx context.Context, role string) ([]domain.User, error) {
	f.calls++
	out := []domain.User{}
	for _, u := range f.users {
		if u.Role == role && u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeRepo) UserStats(ctx context.Context) (*domain.UserStats, error) {
	f.calls++
	return f.userStats, nil
}

var testPager = query.Pager{DefaultPageSize: 20, MaxPageSize: 100}

func newTestService(repo *fakeRepo) *AdminService {
	return NewAdminService(repo, testPager)
}

// queryLat/queryLng is the fixed query point used across the ride tests.
const (
	queryLat = 37.7749
	queryLng = -122.4194
)

// rideAtKm places a pending ride due north of the query point at
// approximately the given distance.
func rideAtKm(km float64) domain.Ride {
	const kmPerDegree = 6371 * 3.14159265358979323846 / 180
	lat := queryLat + km/kmPerDegree
	lng := queryLng
	return domain.Ride{
		ID:        uuid.NewString(),
		Status:    domain.StatusPending,
		RiderID:   uuid.NewString(),
		PickupLat: &lat,
		PickupLng: &lng,
		CreatedAt: time.Now(),
	}
}

func rideNoCoords() domain.Ride {
	return domain.Ride{
		ID:        uuid.NewString(),
		Status:    domain.StatusPending,
		RiderID:   uuid.NewString(),
		CreatedAt: time.Now(),
	}
}

func gpsParams(extra url.Values) url.Values {
	params := url.Values{}
	params.Set("gps_latitude", "37.7749")
	params.Set("gps_longitude", "-122.4194")
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	return params
}

func TestListRidesGPSSortOrdersByDistanceWithCoordlessLast(t *testing.T) {
	near := rideAtKm(2)
	mid := rideAtKm(4.9)
	far := rideAtKm(9)
	blank1 := rideNoCoords()
	blank2 := rideNoCoords()

	repo := &fakeRepo{rides: []domain.Ride{far, blank1, near, blank2, mid}}
	service := newTestService(repo)

	env, err := service.ListRides(context.Background(), gpsParams(nil))
	require.NoError(t, err)

	rides := env.Results.([]domain.Ride)
	require.Len(t, rides, 5)
	assert.Equal(t, 5, env.Count)

	// Closest first, coordinate-less rides at the end.
	assert.Equal(t, near.ID, rides[0].ID)
	assert.Equal(t, mid.ID, rides[1].ID)
	assert.Equal(t, far.ID, rides[2].ID)
	assert.Nil(t, rides[3].DistanceKm)
	assert.Nil(t, rides[4].DistanceKm)

	// Annotated distances are monotonically non-decreasing.
	require.NotNil(t, rides[0].DistanceKm)
	require.NotNil(t, rides[2].DistanceKm)
	assert.LessOrEqual(t, *rides[0].DistanceKm, *rides[1].DistanceKm)
	assert.LessOrEqual(t, *rides[1].DistanceKm, *rides[2].DistanceKm)
	assert.InDelta(t, 2, *rides[0].DistanceKm, 0.01)
}

func TestListRidesOneSidedGPSPairRejected(t *testing.T) {
	repo := &fakeRepo{}
	service := newTestService(repo)

	params := url.Values{}
	params.Set("gps_latitude", "37.7749")

	_, err := service.ListRides(context.Background(), params)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "gps_longitude")
	assert.Zero(t, repo.calls, "validation must precede storage access")
}

func TestListRidesWithoutGPSUsesStorePaging(t *testing.T) {
	rides := make([]domain.Ride, 7)
	for i := range rides {
		rides[i] = rideNoCoords()
	}
	repo := &fakeRepo{rides: rides}
	service := newTestService(repo)

	params := url.Values{}
	params.Set("page_size", "3")
	params.Set("page", "3")

	env, err := service.ListRides(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 7, env.Count)
	assert.Len(t, env.Results.([]domain.Ride), 1)
	assert.Nil(t, env.Next)
	require.NotNil(t, env.Previous)
	assert.Equal(t, 2, *env.Previous)
}

func TestListRidesGPSSortHugePageReturnsEmpty(t *testing.T) {
	repo := &fakeRepo{rides: []domain.Ride{rideAtKm(2), rideAtKm(5), rideNoCoords()}}
	service := newTestService(repo)

	params := gpsParams(nil)
	params.Set("page", strconv.Itoa(1<<62))

	env, err := service.ListRides(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 3, env.Count)
	assert.Empty(t, env.Results.([]domain.Ride))
	assert.Nil(t, env.Next)
}

func TestNearbyRidesRadiusCutoffAndOrder(t *testing.T) {
	near := rideAtKm(2)
	mid := rideAtKm(4.9)
	far := rideAtKm(9)

	repo := &fakeRepo{rides: []domain.Ride{far, near, rideNoCoords(), mid, rideNoCoords()}}
	service := newTestService(repo)

	env, err := service.NearbyRides(context.Background(), gpsParams(url.Values{"radius": {"5"}}))
	require.NoError(t, err)

	rides := env.Results.([]domain.Ride)
	require.Len(t, rides, 2)
	assert.Equal(t, 2, env.Count)
	assert.Equal(t, near.ID, rides[0].ID)
	assert.Equal(t, mid.ID, rides[1].ID)

	for _, ride := range rides {
		require.NotNil(t, ride.DistanceKm)
		assert.LessOrEqual(t, *ride.DistanceKm, 5.0)
	}

	require.NotNil(t, repo.lastBox, "nearby search must pre-filter with a bounding box")
}

func TestNearbyRidesExactRadiusBoundaryIncluded(t *testing.T) {
	ride := rideAtKm(3)
	repo := &fakeRepo{rides: []domain.Ride{ride}}
	service := newTestService(repo)

	// Radius set to the true haversine distance: the cutoff is <=, so
	// the ride on the circle itself is included.
	exact := geo.Haversine(queryLat, queryLng, *ride.PickupLat, *ride.PickupLng)
	params := gpsParams(nil)
	params.Set("radius", formatFloat(exact))

	env, err := service.NearbyRides(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 1, env.Count)
}

func TestNearbyRidesDefaultRadius(t *testing.T) {
	inside := rideAtKm(9)
	outside := rideAtKm(11)
	repo := &fakeRepo{rides: []domain.Ride{inside, outside}}
	service := newTestService(repo)

	env, err := service.NearbyRides(context.Background(), gpsParams(nil))
	require.NoError(t, err)

	rides := env.Results.([]domain.Ride)
	require.Len(t, rides, 1)
	assert.Equal(t, inside.ID, rides[0].ID)
}

func TestNearbyRidesValidation(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
		field  string
	}{
		{"missing pair", url.Values{}, "gps_latitude"},
		{"bad radius", gpsParams(url.Values{"radius": {"abc"}}), "radius"},
		{"zero radius", gpsParams(url.Values{"radius": {"0"}}), "radius"},
		{"negative radius", gpsParams(url.Values{"radius": {"-3"}}), "radius"},
		{"bad latitude", url.Values{"gps_latitude": {"91"}, "gps_longitude": {"0"}}, "gps_latitude"},
		{"bad longitude", url.Values{"gps_latitude": {"0"}, "gps_longitude": {"-200"}}, "gps_longitude"},
		{"non-numeric latitude", url.Values{"gps_latitude": {"north"}, "gps_longitude": {"0"}}, "gps_latitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			service := newTestService(repo)

			_, err := service.NearbyRides(context.Background(), tt.params)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.field)
			assert.Zero(t, repo.calls)
		})
	}
}

func TestTodaysEventsWindowBoundary(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	rideID := uuid.NewString()
	within := domain.RideEvent{ID: uuid.NewString(), RideID: rideID, EventType: "pickup",
		CreatedAt: now.Add(-23*time.Hour - 59*time.Minute)}
	outside := domain.RideEvent{ID: uuid.NewString(), RideID: rideID, EventType: "dropoff",
		CreatedAt: now.Add(-24*time.Hour - 1*time.Minute)}

	repo := &fakeRepo{events: []domain.RideEvent{within, outside}}
	service := newTestService(repo)
	service.now = func() time.Time { return now }

	env, err := service.TodaysEvents(context.Background(), url.Values{})
	require.NoError(t, err)

	events := env.Results.([]domain.TodaysEvent)
	require.Len(t, events, 1)
	assert.Equal(t, within.ID, events[0].ID)
	assert.Equal(t, 1, env.Count)
}

func TestEventsByRideUnknownRide(t *testing.T) {
	repo := &fakeRepo{}
	service := newTestService(repo)

	_, err := service.EventsByRide(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEventsByRideRejectsMalformedID(t *testing.T) {
	repo := &fakeRepo{}
	service := newTestService(repo)

	_, err := service.EventsByRide(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, repo.calls)
}

func TestEventsByRideReturnsOnlyThatRide(t *testing.T) {
	rideID := uuid.NewString()
	otherID := uuid.NewString()
	repo := &fakeRepo{events: []domain.RideEvent{
		{ID: uuid.NewString(), RideID: rideID, EventType: "pickup", CreatedAt: time.Now()},
		{ID: uuid.NewString(), RideID: otherID, EventType: "pickup", CreatedAt: time.Now()},
		{ID: uuid.NewString(), RideID: rideID, EventType: "dropoff", CreatedAt: time.Now()},
	}}
	service := newTestService(repo)

	events, err := service.EventsByRide(context.Background(), rideID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, rideID, e.RideID)
	}
}

func TestRideStatsPassthrough(t *testing.T) {
	repo := &fakeRepo{rideStats: &domain.RideStats{
		Total:    6,
		ByStatus: map[string]int{"pending": 3, "active": 2, "completed": 1},
	}}
	service := newTestService(repo)

	stats, err := service.RideStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 3, stats.ByStatus["pending"])
	assert.Equal(t, 2, stats.ByStatus["active"])
	assert.Equal(t, 1, stats.ByStatus["completed"])
}

func TestActiveDriversFiltersInactive(t *testing.T) {
	repo := &fakeRepo{users: []domain.User{
		{ID: uuid.NewString(), Role: domain.RoleDriver, IsActive: true},
		{ID: uuid.NewString(), Role: domain.RoleDriver, IsActive: false},
		{ID: uuid.NewString(), Role: domain.RoleRider, IsActive: true},
	}}
	service := newTestService(repo)

	drivers, err := service.ActiveDrivers(context.Background())
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	assert.Equal(t, domain.RoleDriver, drivers[0].Role)
	assert.True(t, drivers[0].IsActive)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
