package repo

import (
	"context"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nemt-rides/internal/admin/domain"
	"nemt-rides/internal/shared/geo"
	"nemt-rides/internal/shared/query"
)

type AdminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepo(db *pgxpool.Pool) *AdminRepo {
	return &AdminRepo{db: db}
}

// rideSpec is the static query surface for the rides resource.
var rideSpec = query.Spec{
	Filterable:  map[string]string{"status": "status"},
	UUIDFilter:  map[string]string{"rider_id": "rider_id", "driver_id": "driver_id"},
	DateColumn:  "created_at",
	DefaultSort: "created_at DESC",
}

const rideColumns = `id, status, rider_id, driver_id, pickup_latitude, pickup_longitude, scheduled_at, started_at, created_at`

func (r *AdminRepo) ListRides(ctx context.Context, params url.Values, pages query.Pages) ([]domain.Ride, int, error) {
	c, err := rideSpec.Build(params)
	if err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rides`+c.WhereSQL(), c.Args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	if !pages.InRange(total) {
		return []domain.Ride{}, total, nil
	}

	sql := `SELECT ` + rideColumns + ` FROM rides` + c.WhereSQL() +
		` ORDER BY ` + c.OrderBy + c.LimitOffset(pages.Limit(), pages.Offset())

	rows, err := r.db.Query(ctx, sql, c.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rides, err := scanRides(rows)
	if err != nil {
		return nil, 0, err
	}

	return rides, total, nil
}

// RideCandidates returns every ride matching the filters, unpaginated,
// for in-process distance ranking. With a box, only coordinate-bearing
// rides inside the rectangle come back; the exact radius cutoff is the
// caller's job.
func (r *AdminRepo) RideCandidates(ctx context.Context, params url.Values, box *geo.Box) ([]domain.Ride, error) {
	c, err := rideSpec.Build(params)
	if err != nil {
		return nil, err
	}

	if box != nil {
		c.And("pickup_latitude BETWEEN %s AND %s", box.MinLat, box.MaxLat)
		c.And("pickup_longitude BETWEEN %s AND %s", box.MinLng, box.MaxLng)
	}

	sql := `SELECT ` + rideColumns + ` FROM rides` + c.WhereSQL() + ` ORDER BY ` + c.OrderBy

	rows, err := r.db.Query(ctx, sql, c.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRides(rows)
}

func (r *AdminRepo) RideStats(ctx context.Context) (*domain.RideStats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*)
		FROM rides
		GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &domain.RideStats{ByStatus: make(map[string]int)}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}

	return stats, rows.Err()
}

func (r *AdminRepo) RideExists(ctx context.Context, rideID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM rides WHERE id = $1)
	`, rideID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func scanRides(rows pgx.Rows) ([]domain.Ride, error) {
	rides := []domain.Ride{}
	for rows.Next() {
		var ride domain.Ride
		err := rows.Scan(
			&ride.ID,
			&ride.Status,
			&ride.RiderID,
			&ride.DriverID,
			&ride.PickupLat,
			&ride.PickupLng,
			&ride.ScheduledAt,
			&ride.StartedAt,
			&ride.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}
