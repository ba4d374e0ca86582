package api

import (
	"net/http"
	"time"

	"nemt-rides/internal/admin/domain"
	"nemt-rides/internal/shared/apperrors"
	"nemt-rides/internal/shared/util"
)

type Handler struct {
	service domain.AdminQueries
	secret  []byte
	log     *util.Logger
}

func NewHandler(service domain.AdminQueries, jwtSecret string) *Handler {
	return &Handler{
		service: service,
		secret:  []byte(jwtSecret),
		log:     util.New(),
	}
}

// respondError maps taxonomy errors to their status; anything else is a
// storage failure, logged and masked behind a generic 500 message.
func (h *Handler) respondError(w http.ResponseWriter, instance, fallback string, err error) {
	if apperrors.CheckError(err) >= http.StatusInternalServerError {
		h.log.Error(instance, err)
		util.WriteJSONError(w, fallback, http.StatusInternalServerError)
		return
	}
	util.ErrResponseInJson(w, err)
}

func (h *Handler) ListRidesHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	env, err := h.service.ListRides(r.Context(), r.URL.Query())
	if err != nil {
		h.respondError(w, "ListRidesHandler", "failed to fetch rides", err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, env)
	h.log.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) NearbyRidesHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	env, err := h.service.NearbyRides(r.Context(), r.URL.Query())
	if err != nil {
		h.respondError(w, "NearbyRidesHandler", "failed to fetch nearby rides", err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, env)
	h.log.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) RideStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.RideStats(r.Context())
	if err != nil {
		h.respondError(w, "RideStatsHandler", "failed to fetch ride stats", err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, stats)
}

func (h *Handler) RideEventsHandler(w http.ResponseWriter, r *http.Request, rideID string) {
	events, err := h.service.EventsByRide(r.Context(), rideID)
	if err != nil {
		h.respondError(w, "RideEventsHandler", "failed to fetch ride events", err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]interface{}{
		"ride_id": rideID,
		"events":  events,
	})
}
