package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/milv-tools/rvu-atlas/pkg/models/api"
	"github.com/milv-tools/rvu-atlas/pkg/models/domain"
	"github.com/milv-tools/rvu-atlas/pkg/services/dashboard"
)

type mockController struct {
	mock.Mock
}

func (m *mockController) Refresh(ctx context.Context) (*domain.DashboardSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSnapshot), args.Error(1)
}

func (m *mockController) Snapshot() (*domain.DashboardSnapshot, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSnapshot), args.Error(1)
}

func (m *mockController) State() dashboard.State {
	args := m.Called()
	return args.Get(0).(dashboard.State)
}

func (m *mockController) LastError() error {
	args := m.Called()
	return args.Error(0)
}

func sampleSnapshot() *domain.DashboardSnapshot {
	dayOfWeek := make(map[time.Weekday]domain.TemporalBucket, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		dayOfWeek[day] = domain.TemporalBucket{}
	}
	dayOfWeek[time.Monday] = domain.TemporalBucket{ExamCount: 2, TotalRVU: 5.0}

	hourly := make(map[int]domain.TemporalBucket, 24)
	for hour := 0; hour < 24; hour++ {
		hourly[hour] = domain.TemporalBucket{}
	}
	hourly[9] = domain.TemporalBucket{ExamCount: 2, TotalRVU: 5.0}

	return &domain.DashboardSnapshot{
		ID:          "snap-1",
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Stats:       domain.DatasetStats{Source: "exams.csv", RecordCount: 2},
		KPIs: map[string]domain.PhysicianKPI{
			"A": {Physician: "A", TotalRVU: 5.0, TotalPoints: 2.5, ExamCount: 2, AvgRVU: 2.5},
		},
		Modalities: map[string]domain.ModalityDistribution{
			"CT": {Modality: "CT", ExamCount: 2, Share: 1.0},
		},
		PhysicianModality: map[string]map[string]domain.ModalityDistribution{
			"A": {"CT": {Modality: "CT", ExamCount: 2, Share: 1.0}},
		},
		DayOfWeek: dayOfWeek,
		Hourly:    hourly,
	}
}

func newTestRouter(ctrl *mockController) http.Handler {
	h := NewHandler(ctrl)
	r := chi.NewRouter()
	r.Get("/dashboard", h.GetSnapshot)
	r.Get("/dashboard/kpis", h.GetKPIs)
	r.Post("/dashboard/refresh", h.Refresh)
	r.Get("/physicians/{physician}/modalities", h.GetPhysicianModalities)
	r.Get("/status", h.GetStatus)
	return r
}

func TestHandler_GetSnapshot(t *testing.T) {
	t.Run("serves the full snapshot", func(t *testing.T) {
		ctrl := &mockController{}
		ctrl.On("Snapshot").Return(sampleSnapshot(), nil)

		rec := httptest.NewRecorder()
		newTestRouter(ctrl).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var body api.DashboardSnapshot
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "snap-1", body.ID)
		require.Len(t, body.KPIs, 1)
		assert.Equal(t, "A", body.KPIs[0].Physician)
		assert.Len(t, body.DayOfWeek, 7)
		assert.Len(t, body.Hourly, 24)
		assert.Equal(t, "Monday", body.DayOfWeek[1].Label)
	})

	t.Run("503 while no snapshot exists", func(t *testing.T) {
		ctrl := &mockController{}
		ctrl.On("Snapshot").Return(nil, domain.ErrNoSnapshot)

		rec := httptest.NewRecorder()
		newTestRouter(ctrl).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestHandler_GetKPIs(t *testing.T) {
	ctrl := &mockController{}
	ctrl.On("Snapshot").Return(sampleSnapshot(), nil)

	rec := httptest.NewRecorder()
	newTestRouter(ctrl).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/kpis", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body []api.PhysicianKPI
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, 2.5, body[0].AvgRVU)
}

func TestHandler_GetPhysicianModalities(t *testing.T) {
	tests := []struct {
		name      string
		physician string
		expected  int
	}{
		{name: "known physician", physician: "A", expected: 1},
		{name: "unknown physician yields empty list", physician: "nobody", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := &mockController{}
			ctrl.On("Snapshot").Return(sampleSnapshot(), nil)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/physicians/"+tt.physician+"/modalities", nil)
			newTestRouter(ctrl).ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			var body []api.ModalityShare
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Len(t, body, tt.expected)
		})
	}
}

func TestHandler_Refresh(t *testing.T) {
	t.Run("success returns the new snapshot", func(t *testing.T) {
		ctrl := &mockController{}
		ctrl.On("Refresh", mock.Anything).Return(sampleSnapshot(), nil)

		rec := httptest.NewRecorder()
		newTestRouter(ctrl).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dashboard/refresh", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("failure maps to 502 with the error body", func(t *testing.T) {
		ctrl := &mockController{}
		ctrl.On("Refresh", mock.Anything).Return(nil, errors.New("source unreadable"))

		rec := httptest.NewRecorder()
		newTestRouter(ctrl).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dashboard/refresh", nil))

		require.Equal(t, http.StatusBadGateway, rec.Code)

		var body api.Error
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Contains(t, body.Error, "source unreadable")
	})
}

func TestHandler_GetStatus(t *testing.T) {
	ctrl := &mockController{}
	ctrl.On("State").Return(dashboard.StateReady)
	ctrl.On("Snapshot").Return(sampleSnapshot(), nil)
	ctrl.On("LastError").Return(errors.New("last refresh failed"))

	rec := httptest.NewRecorder()
	newTestRouter(ctrl).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body api.Status
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ready", body.State)
	assert.Equal(t, "snap-1", body.SnapshotID)
	assert.Contains(t, body.LastError, "last refresh failed")
}
