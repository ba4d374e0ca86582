package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"nemt-rides/internal/admin/domain"
	"nemt-rides/internal/shared/health"
	sharedjwt "nemt-rides/internal/shared/jwt"
	"nemt-rides/internal/shared/util"
)

// RegisterRoutes builds the service mux. Every query endpoint sits
// behind the admin gate; only /healthz is open.
func (h *Handler) RegisterRoutes(db *pgxpool.Pool) *http.ServeMux {
	mux := http.NewServeMux()

	admin := func(fn http.HandlerFunc) http.Handler {
		return h.AdminAuthMiddleware(h.requireGET(fn))
	}

	mux.Handle("/rides", admin(h.ListRidesHandler))
	mux.Handle("/rides/", admin(h.rideSubtree))

	mux.Handle("/ride-events", admin(h.ListEventsHandler))
	mux.Handle("/ride-events/today", admin(h.TodaysEventsHandler))
	mux.Handle("/ride-events/types", admin(h.EventTypesHandler))
	mux.Handle("/ride-events/stats", admin(h.EventStatsHandler))

	mux.Handle("/users", admin(h.ListUsersHandler))
	mux.Handle("/users/drivers", admin(h.DriversHandler))
	mux.Handle("/users/riders", admin(h.RidersHandler))
	mux.Handle("/users/stats", admin(h.UserStatsHandler))

	mux.Handle("/healthz", health.Handler("admin-service", db))

	return mux
}

// rideSubtree dispatches /rides/nearby, /rides/stats and
// /rides/{id}/events.
func (h *Handler) rideSubtree(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case len(parts) == 2 && parts[1] == "nearby":
		h.NearbyRidesHandler(w, r)
	case len(parts) == 2 && parts[1] == "stats":
		h.RideStatsHandler(w, r)
	case len(parts) == 3 && parts[2] == "events":
		h.RideEventsHandler(w, r, parts[1])
	default:
		util.WriteJSONError(w, "not found", http.StatusNotFound)
	}
}

func (h *Handler) requireGET(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			util.WriteJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	})
}

// AdminAuthMiddleware admits only callers holding a valid token with the
// admin role; the query core behind it never re-checks authorization.
func (h *Handler) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			util.WriteJSONError(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			util.WriteJSONError(w, "invalid Authorization format", http.StatusUnauthorized)
			return
		}

		claims, err := sharedjwt.ParseJWT(parts[1], h.secret)
		if err != nil {
			util.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
			util.WriteJSONError(w, "token expired", http.StatusUnauthorized)
			return
		}

		if claims.Role != domain.RoleAdmin {
			util.WriteJSONError(w, "admin access required", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, roleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type contextKey string

const (
	userIDKey contextKey = "user_id"
	roleKey   contextKey = "role"
)
