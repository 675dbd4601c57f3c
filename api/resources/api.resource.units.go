// FilePath: api/resources/api.resource.units.go
package resources

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/fleetservice"
	"github.com/shredderfleet/fleetcommand/internal/models"
	"github.com/shredderfleet/fleetcommand/internal/report"
)

// UnitHandlers serves the per-unit overviews and reports
type UnitHandlers struct {
	fleetservice fleetservice.FleetViews
}

func unitParam(r *http.Request) (models.Unit, error) {
	unit, err := models.ParseUnit(mux.Vars(r)["unit"])
	if err != nil {
		return "", errors.NewValidationError(err.Error(), err)
	}
	return unit, nil
}

// @Summary Fleet overview
// @Description Machines of a unit in process order with their status
// @Tags units
// @Produce json
// @Param unit path string true "Unit (Unit1, Unit2)"
// @Success 200 {object} models.FleetView
// @Failure 400 {object} errors.APIError
// @Router /units/{unit}/machines [get]
func (h *UnitHandlers) GetFleetView(w http.ResponseWriter, r *http.Request) {
	unit, err := unitParam(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	view, err := h.fleetservice.GetFleetView(r.Context(), unit)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

// @Summary Unit status report
// @Description Status and alerts workbook of a unit
// @Tags units
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param unit path string true "Unit (Unit1, Unit2)"
// @Success 200 {file} file
// @Failure 400 {object} errors.APIError
// @Router /units/{unit}/report.xlsx [get]
func (h *UnitHandlers) GetReport(w http.ResponseWriter, r *http.Request) {
	unit, err := unitParam(r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	rep, err := h.fleetservice.UnitReport(r.Context(), unit)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, rep); err != nil {
		respondWithError(w, r, errors.NewInternalError("failed to render report", err))
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(rep)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
