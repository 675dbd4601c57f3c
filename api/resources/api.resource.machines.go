// FilePath: api/resources/api.resource.machines.go
package resources

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/fleetservice"
)

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// MachineHandlers serves single-machine views
type MachineHandlers struct {
	fleetservice fleetservice.FleetViews
}

// @Summary Machine detail view
// @Description Reading, status, vitals, maintenance and alerts of one machine
// @Tags machines
// @Produce json
// @Param id path string true "Machine ID"
// @Success 200 {object} models.DetailView
// @Failure 404 {object} errors.APIError
// @Router /machines/{id} [get]
func (h *MachineHandlers) GetDetailView(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	view, err := h.fleetservice.GetDetailView(r.Context(), id)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

// @Summary Machine trend
// @Description Amps and vibration history of one machine
// @Tags machines
// @Produce json
// @Param id path string true "Machine ID"
// @Param minutes query int false "Window in minutes (default 60)"
// @Param points query int false "Number of points (default 60)"
// @Success 200 {array} models.TrendPoint
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Failure 503 {object} errors.APIError
// @Router /machines/{id}/trend [get]
func (h *MachineHandlers) GetTrend(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var q fleetservice.TrendQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		respondWithError(w, r, errors.NewValidationError("invalid trend query", err))
		return
	}

	points, err := h.fleetservice.GetTrend(r.Context(), id, q)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, points)
}
