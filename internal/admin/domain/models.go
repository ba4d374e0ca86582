package domain

import (
	"encoding/json"
	"time"
)

// User roles. Soft-deleted users keep their row with IsActive=false.
const (
	RoleAdmin      = "admin"
	RoleDriver     = "driver"
	RoleRider      = "rider"
	RoleDispatcher = "dispatcher"
)

// Ride lifecycle: pending -> active -> completed, or cancelled from
// pending/active.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type User struct {
	ID          string    `json:"id"`
	Role        string    `json:"role"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Ride struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	RiderID     string     `json:"rider_id"`
	DriverID    *string    `json:"driver_id"`
	PickupLat   *float64   `json:"pickup_latitude"`
	PickupLng   *float64   `json:"pickup_longitude"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	StartedAt   *time.Time `json:"started_at"`
	CreatedAt   time.Time  `json:"created_at"`

	// DistanceKm is set only when the listing was ranked against a GPS
	// query point and the ride has pickup coordinates.
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// HasPickup reports whether the ride carries pickup coordinates and can
// take part in distance ranking.
func (r *Ride) HasPickup() bool {
	return r.PickupLat != nil && r.PickupLng != nil
}

// RideEvent rows are append-only; the query layer never mutates them.
type RideEvent struct {
	ID          string          `json:"id"`
	RideID      string          `json:"ride_id"`
	EventType   string          `json:"event_type"`
	Description string          `json:"description"`
	EventData   json.RawMessage `json:"event_data,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RideSummary is the parent-ride shape embedded in event listings,
// fetched by join rather than per-event lookups.
type RideSummary struct {
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	RiderID  string  `json:"rider_id"`
	DriverID *string `json:"driver_id"`
}

type TodaysEvent struct {
	RideEvent
	Ride RideSummary `json:"ride"`
}

type RideStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

type EventStats struct {
	Total       int            `json:"total"`
	ByEventType map[string]int `json:"by_event_type"`
}

type UserStats struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	ByRole   map[string]int `json:"by_role"`
}
