package api

import (
	"net/http"
	"time"

	"nemt-rides/internal/shared/util"
)

func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	env, err := h.service.ListUsers(r.Context(), r.URL.Query())
	if err != nil {
		h.respondError(w, "ListUsersHandler", "failed to fetch users", err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, env)
	h.log.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) DriversHandler(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.service.ActiveDrivers(r.Context())
	if err != nil {
		h.respondError(w, "DriversHandler", "failed to fetch drivers", err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]interface{}{"drivers": drivers})
}

func (h *Handler) RidersHandler(w http.ResponseWriter, r *http.Request) {
	riders, err := h.service.ActiveRiders(r.Context())
	if err != nil {
		h.respondError(w, "RidersHandler", "failed to fetch riders", err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]interface{}{"riders": riders})
}

func (h *Handler) UserStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.UserStats(r.Context())
	if err != nil {
		h.respondError(w, "UserStatsHandler", "failed to fetch user stats", err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, stats)
}
