package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/milv-tools/rvu-atlas/pkg/adapters"
	"github.com/milv-tools/rvu-atlas/pkg/models/api"
	"github.com/milv-tools/rvu-atlas/pkg/models/domain"
	"github.com/milv-tools/rvu-atlas/pkg/services/dashboard"
)

type Handler struct {
	ctrl dashboard.Controller
}

func NewHandler(ctrl dashboard.Controller) *Handler {
	return &Handler{ctrl: ctrl}
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	respond(w, r, http.StatusOK, adapters.MapSnapshotDomainToApi(snapshot))
}

func (h *Handler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	respond(w, r, http.StatusOK, adapters.MapKPIsDomainToApi(snapshot.KPIs))
}

func (h *Handler) GetModalities(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	respond(w, r, http.StatusOK, adapters.MapModalitiesDomainToApi(snapshot.Modalities))
}

func (h *Handler) GetDailyWorkload(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	respond(w, r, http.StatusOK, adapters.MapDayOfWeekDomainToApi(snapshot.DayOfWeek))
}

func (h *Handler) GetHourlyWorkload(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	respond(w, r, http.StatusOK, adapters.MapHourlyDomainToApi(snapshot.Hourly))
}

func (h *Handler) GetTimeSeries(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}
	respond(w, r, http.StatusOK, adapters.MapSeriesDomainToApi(snapshot.MonthlySeries))
}

// GetPhysicianModalities serves the modality breakdown scoped to one
// physician. An unknown physician yields an empty list, mirroring the
// aggregator's empty-scope contract.
func (h *Handler) GetPhysicianModalities(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	physician := chi.URLParam(r, "physician")
	dist := snapshot.PhysicianModality[physician]
	respond(w, r, http.StatusOK, adapters.MapModalitiesDomainToApi(dist))
}

// Refresh rebuilds the snapshot. On failure the previous snapshot is
// retained and keeps being served by the GET endpoints.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.ctrl.Refresh(r.Context())
	if err != nil {
		respond(w, r, http.StatusBadGateway, api.Error{Error: err.Error()})
		return
	}
	respond(w, r, http.StatusOK, adapters.MapSnapshotDomainToApi(snapshot))
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status := api.Status{State: string(h.ctrl.State())}
	if snapshot, err := h.ctrl.Snapshot(); err == nil {
		status.SnapshotID = snapshot.ID
		refreshedAt := snapshot.GeneratedAt
		status.RefreshedAt = &refreshedAt
	}
	if err := h.ctrl.LastError(); err != nil {
		status.LastError = err.Error()
	}
	respond(w, r, http.StatusOK, status)
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) (*domain.DashboardSnapshot, bool) {
	snapshot, err := h.ctrl.Snapshot()
	if err != nil {
		if errors.Is(err, domain.ErrNoSnapshot) {
			respond(w, r, http.StatusServiceUnavailable, api.Error{Error: err.Error()})
			return nil, false
		}
		respond(w, r, http.StatusInternalServerError, api.Error{Error: err.Error()})
		return nil, false
	}
	return snapshot, true
}

func respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
