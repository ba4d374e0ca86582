package repo

import (
	"context"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"

	"nemt-rides/internal/admin/domain"
	"nemt-rides/internal/shared/query"
)

var eventSpec = query.Spec{
	Filterable:  map[string]string{"event_type": "event_type"},
	UUIDFilter:  map[string]string{"ride_id": "ride_id"},
	Searchable:  []string{"event_type", "description"},
	DateColumn:  "created_at",
	DefaultSort: "created_at DESC",
}

const eventColumns = `id, ride_id, event_type, description, event_data, created_at`

func (r *AdminRepo) ListEvents(ctx context.Context, params url.Values, pages query.Pages) ([]domain.RideEvent, int, error) {
	c, err := eventSpec.Build(params)
	if err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM ride_events`+c.WhereSQL(), c.Args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	if !pages.InRange(total) {
		return []domain.RideEvent{}, total, nil
	}

	sql := `SELECT ` + eventColumns + ` FROM ride_events` + c.WhereSQL() +
		` ORDER BY ` + c.OrderBy + c.LimitOffset(pages.Limit(), pages.Offset())

	rows, err := r.db.Query(ctx, sql, c.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// EventsSince serves the trailing-window listing. Both queries keep the
// window predicate on the indexed created_at column, and the parent-ride
// summary comes from the same joined scan, one query per page.
func (r *AdminRepo) EventsSince(ctx context.Context, since time.Time, pages query.Pages) ([]domain.TodaysEvent, int, error) {
	var total int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM ride_events WHERE created_at >= $1
	`, since).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	if !pages.InRange(total) {
		return []domain.TodaysEvent{}, total, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT
			e.id, e.ride_id, e.event_type, e.description, e.event_data, e.created_at,
			r.status, r.rider_id, r.driver_id
		FROM ride_events e
		JOIN rides r ON r.id = e.ride_id
		WHERE e.created_at >= $1
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`, since, pages.Limit(), pages.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := []domain.TodaysEvent{}
	for rows.Next() {
		var ev domain.TodaysEvent
		err := rows.Scan(
			&ev.ID,
			&ev.RideID,
			&ev.EventType,
			&ev.Description,
			&ev.EventData,
			&ev.CreatedAt,
			&ev.Ride.Status,
			&ev.Ride.RiderID,
			&ev.Ride.DriverID,
		)
		if err != nil {
			return nil, 0, err
		}
		ev.Ride.ID = ev.RideID
		events = append(events, ev)
	}

	return events, total, rows.Err()
}

func (r *AdminRepo) EventsByRide(ctx context.Context, rideID string) ([]domain.RideEvent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+eventColumns+`
		FROM ride_events
		WHERE ride_id = $1
		ORDER BY created_at ASC
	`, rideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *AdminRepo) EventTypes(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT event_type FROM ride_events ORDER BY event_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	return types, rows.Err()
}

func (r *AdminRepo) EventStats(ctx context.Context) (*domain.EventStats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT event_type, COUNT(*)
		FROM ride_events
		GROUP BY event_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &domain.EventStats{ByEventType: make(map[string]int)}
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, err
		}
		stats.ByEventType[eventType] = count
		stats.Total += count
	}

	return stats, rows.Err()
}

func scanEvents(rows pgx.Rows) ([]domain.RideEvent, error) {
	events := []domain.RideEvent{}
	for rows.Next() {
		var ev domain.RideEvent
		err := rows.Scan(
			&ev.ID,
			&ev.RideID,
			&ev.EventType,
			&ev.Description,
			&ev.EventData,
			&ev.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
