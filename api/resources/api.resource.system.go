// FilePath: api/resources/api.resource.system.go
package resources

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/monitoring"
	"github.com/swaggo/swag"
	nuts "github.com/vaudience/go-nuts"
)

const healthTimeout = 2 * time.Second

// SystemHandlers serve health, metrics and the API document
type SystemHandlers struct {
	monitoring *monitoring.Service
	checks     map[string]func(context.Context) error
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// @Summary Health check
// @Description Liveness probe with the running version
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *SystemHandlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Version: nuts.GetVersion()}
	code := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if resp.Checks == nil {
			resp.Checks = make(map[string]string, len(names))
		}
		if err := h.checks[name](ctx); err != nil {
			nuts.L.Warnf("[Health] %s check failed: %v", name, err)
			resp.Checks[name] = err.Error()
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	respondWithJSON(w, code, resp)
}

const defaultMetricsWindow = 60

type metricsQuery struct {
	Event   string `schema:"event"`
	Minutes int    `schema:"minutes"`
}

type eventMetrics struct {
	Event   string           `json:"event"`
	Minutes int              `json:"minutes"`
	Counts  map[string]int64 `json:"counts"`
}

// @Summary Monitoring snapshot
// @Description Event counters and the most recent events. With event set, the retained events of that type within the window, counted per label set.
// @Tags system
// @Produce json
// @Param event query string false "Event name"
// @Param minutes query int false "Window in minutes (default 60)"
// @Success 200 {object} monitoring.Snapshot
// @Failure 400 {object} errors.APIError
// @Router /metrics [get]
func (h *SystemHandlers) Metrics(w http.ResponseWriter, r *http.Request) {
	var q metricsQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		respondWithError(w, r, errors.NewValidationError("invalid metrics query", err))
		return
	}
	if q.Event == "" {
		respondWithJSON(w, http.StatusOK, h.monitoring.Snapshot())
		return
	}
	if q.Minutes == 0 {
		q.Minutes = defaultMetricsWindow
	}
	if q.Minutes < 0 {
		respondWithError(w, r, errors.NewValidationError("minutes must be positive", nil))
		return
	}

	counts, err := h.monitoring.GetEventMetrics(q.Event, time.Duration(q.Minutes)*time.Minute)
	if err != nil {
		respondWithError(w, r, errors.NewInternalError("metrics unavailable", err))
		return
	}
	respondWithJSON(w, http.StatusOK, eventMetrics{Event: q.Event, Minutes: q.Minutes, Counts: counts})
}

func (h *SystemHandlers) Swagger(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		respondWithError(w, r, errors.NewInternalError("api document unavailable", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
