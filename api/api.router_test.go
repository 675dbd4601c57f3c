package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shredderfleet/fleetcommand/api/middleware"
	"github.com/shredderfleet/fleetcommand/api/resources"
	"github.com/shredderfleet/fleetcommand/internal/fleet"
	"github.com/shredderfleet/fleetcommand/internal/fleetservice"
	"github.com/shredderfleet/fleetcommand/internal/models"
	"github.com/shredderfleet/fleetcommand/internal/monitoring"
	"github.com/shredderfleet/fleetcommand/internal/report"
	"github.com/shredderfleet/fleetcommand/internal/repository/memory"
	"github.com/shredderfleet/fleetcommand/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestRouter(t *testing.T) (*Router, *resources.Resources, *monitoring.Service) {
	t.Helper()
	f := fleet.Default()
	sim := telemetry.NewSimulator(f, map[string]models.Reading{
		"Mill 2":     {Amps: 450, Vibration: 12.5, Temperature: 88},
		"Shredder 2": {Amps: 0, Vibration: 2.9, Temperature: 61, JamCount: 4},
	}, 42)
	svc := fleetservice.New(f, sim, memory.NewMaintenanceStore(f.MaintenanceSeeds()...), sim)
	mon := monitoring.NewService(monitoring.Config{})
	svc.Events = mon

	res := resources.NewResources(svc, mon, nil)
	return NewRouter(res, []string{"*"}), res, mon
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

type apiError struct {
	Type      string `json:"type"`
	Code      int    `json:"code"`
	RequestID string `json:"request_id"`
}

func TestHealth(t *testing.T) {
	router, res, _ := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, "ok", body["status"])

	res.AddHealthCheck("redis", func(context.Context) error { return stderrors.New("connection refused") })
	rec = do(t, router, http.MethodGet, "/v1/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	decode(t, rec, &body)
	assert.Equal(t, "degraded", body["status"])
}

func TestRequestIDIsEchoed(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/machines/Nonexistent", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-from-client")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-from-client", rec.Header().Get(middleware.RequestIDHeader))
	var body apiError
	decode(t, rec, &body)
	assert.Equal(t, "req-from-client", body.RequestID)
}

func TestFleetView(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/units/Unit1/machines", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view models.FleetView
	decode(t, rec, &view)
	require.Len(t, view.Machines, 5)
	assert.Equal(t, "Shredder 1", view.Machines[0].ID)
	assert.Equal(t, models.StatusJammed, *view.Machines[1].Status)
	assert.Equal(t, models.StatusCritical, *view.Machines[3].Status)
	assert.Equal(t, models.StatusRunning, *view.Machines[4].Status)

	rec = do(t, router, http.MethodGet, "/v1/units/unit%202/machines", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &view)
	assert.Equal(t, models.Unit2, view.Unit)
	assert.Len(t, view.Machines, 2)

	rec = do(t, router, http.MethodGet, "/v1/units/Unit9/machines", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body apiError
	decode(t, rec, &body)
	assert.Equal(t, "validation", body.Type)
}

func TestDetailView(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/machines/Mill%202", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view models.DetailView
	decode(t, rec, &view)
	assert.Equal(t, "Mill 2", view.Machine.ID)
	assert.Equal(t, models.StatusCritical, *view.Status)
	assert.Equal(t, models.LoadHigh, view.Vitals.Load)
	require.Len(t, view.Alerts, 3)
	assert.Equal(t, "SPARES MISSING — cannot perform Bearing Replacement", view.Alerts[0].Message)
	assert.Equal(t, "ORDER IMMEDIATELY", view.Alerts[1].Message)

	rec = do(t, router, http.MethodGet, "/v1/machines/Nonexistent", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body apiError
	decode(t, rec, &body)
	assert.Equal(t, "unknown_machine", body.Type)
}

func TestTrend(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/machines/Mill%201/trend?points=10&minutes=30", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var points []models.TrendPoint
	decode(t, rec, &points)
	assert.Len(t, points, 10)

	tests := []struct {
		name string
		path string
		code int
	}{
		{"non numeric", "/v1/machines/Mill%201/trend?points=abc", http.StatusBadRequest},
		{"window too large", "/v1/machines/Mill%201/trend?minutes=5000", http.StatusBadRequest},
		{"unknown machine", "/v1/machines/Nonexistent/trend", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, do(t, router, http.MethodGet, tt.path, "").Code)
		})
	}
}

func TestNavigationFlow(t *testing.T) {
	router, _, mon := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/nav", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var active models.ActiveView
	decode(t, rec, &active)
	assert.Equal(t, models.InitialNavState(), active.State)
	require.NotNil(t, active.Fleet)

	rec = do(t, router, http.MethodPost, "/v1/nav/events", `{"type":"select_machine","machineId":"Mill 2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	active = models.ActiveView{}
	decode(t, rec, &active)
	assert.Equal(t, models.ViewDetail, active.State.View)
	require.NotNil(t, active.Detail)
	assert.Equal(t, "Mill 2", active.Detail.Machine.ID)

	rec = do(t, router, http.MethodPost, "/v1/nav/events", `{"type":"select_machine","machineId":"Nonexistent"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/v1/nav/events", `{"type":"back"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	active = models.ActiveView{}
	decode(t, rec, &active)
	assert.Equal(t, models.NavState{View: models.ViewUnit1Overview}, active.State)

	rec = do(t, router, http.MethodPost, "/v1/nav/events", `{"type":"select_unit","unit":"Unit 2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	active = models.ActiveView{}
	decode(t, rec, &active)
	assert.Equal(t, models.ViewUnit2Overview, active.State.View)
	assert.Equal(t, models.Unit2, active.Fleet.Unit)

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/v1/nav/events", `{"type":"select_unit","unit":"Unit 7"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/v1/nav/events", `{"type":"jump"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/v1/nav/events", `not json`).Code)

	session := active.Session
	rec = do(t, router, http.MethodPost, "/v1/nav/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	active = models.ActiveView{}
	decode(t, rec, &active)
	assert.Equal(t, models.InitialNavState(), active.State)
	assert.NotEqual(t, session, active.Session)

	rec = do(t, router, http.MethodGet, "/v1/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap monitoring.Snapshot
	decode(t, rec, &snap)
	assert.Equal(t, int64(2), snap.Counters["navigation_rejected"])
	assert.Equal(t, int64(1), snap.Counters["session_reset"])
	assert.Equal(t, snap.Counters, mon.Snapshot().Counters)
}

func TestMetricsWindow(t *testing.T) {
	router, _, _ := newTestRouter(t)

	require.Equal(t, http.StatusNotFound, do(t, router, http.MethodPost, "/v1/nav/events", `{"type":"select_machine","machineId":"Nonexistent"}`).Code)

	rec := do(t, router, http.MethodGet, "/v1/metrics?event=navigation_rejected&minutes=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var window struct {
		Event   string           `json:"event"`
		Minutes int              `json:"minutes"`
		Counts  map[string]int64 `json:"counts"`
	}
	decode(t, rec, &window)
	assert.Equal(t, "navigation_rejected", window.Event)
	assert.Equal(t, 5, window.Minutes)
	require.Len(t, window.Counts, 1)
	for labels, n := range window.Counts {
		assert.Contains(t, labels, "event=select_machine")
		assert.Equal(t, int64(1), n)
	}

	rec = do(t, router, http.MethodGet, "/v1/metrics?event=session_reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &window)
	assert.Equal(t, 60, window.Minutes)
	assert.Empty(t, window.Counts)

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/v1/metrics?event=x&minutes=abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/v1/metrics?event=x&minutes=-1", "").Code)
}

func TestUnknownRoute(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/shredders", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-unknown")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body apiError
	decode(t, rec, &body)
	assert.Equal(t, "not_found", body.Type)
	assert.Equal(t, "req-unknown", body.RequestID)
}

func TestReportDownload(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/units/Unit1/report.xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Unit1-status-")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.StatusSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Mill 2", rows[4][0])
	assert.Equal(t, "CRITICAL", rows[4][3])
}

func TestSwaggerDocument(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/swagger.json", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		BasePath string                 `json:"basePath"`
		Info     map[string]interface{} `json:"info"`
		Paths    map[string]interface{} `json:"paths"`
	}
	decode(t, rec, &doc)
	assert.Equal(t, "/v1", doc.BasePath)
	assert.Equal(t, "Fleet Command API", doc.Info["title"])
	assert.Contains(t, doc.Paths, "/nav/events")
	assert.Contains(t, doc.Paths, "/machines/{id}/trend")

	metrics, ok := doc.Paths["/metrics"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fmtJSON(t, metrics), `"name":"event"`)
}

func fmtJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
