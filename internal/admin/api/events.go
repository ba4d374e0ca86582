package api

import (
	"net/http"
	"time"

	"nemt-rides/internal/shared/util"
)

func (h *Handler) ListEventsHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	env, err := h.service.ListEvents(r.Context(), r.URL.Query())
	if err != nil {
		h.respondError(w, "ListEventsHandler", "failed to fetch ride events", err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, env)
	h.log.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) TodaysEventsHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	env, err := h.service.TodaysEvents(r.Context(), r.URL.Query())
	if err != nil {
		h.respondError(w, "TodaysEventsHandler", "failed to fetch today's events", err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, env)
	h.log.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) EventTypesHandler(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.EventTypes(r.Context())
	if err != nil {
		h.respondError(w, "EventTypesHandler", "failed to fetch event types", err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]interface{}{"event_types": types})
}

func (h *Handler) EventStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.EventStats(r.Context())
	if err != nil {
		h.respondError(w, "EventStatsHandler", "failed to fetch event stats", err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, stats)
}
