// FilePath: api/resources/api.resource.navigation.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/fleetservice"
	"github.com/shredderfleet/fleetcommand/internal/models"
)

// NavigationHandlers drive the operator session
type NavigationHandlers struct {
	fleetservice fleetservice.FleetViews
}

// eventRequest accepts the unit in any form ParseUnit understands.
type eventRequest struct {
	Type      models.EventType `json:"type"`
	Unit      string           `json:"unit,omitempty"`
	MachineID string           `json:"machineId,omitempty"`
}

func (req eventRequest) event() (models.Event, error) {
	evt := models.Event{Type: req.Type, MachineID: req.MachineID}
	if req.Type == models.EventSelectUnit {
		unit, err := models.ParseUnit(req.Unit)
		if err != nil {
			return evt, errors.NewValidationError(err.Error(), err)
		}
		evt.Unit = unit
	}
	return evt, nil
}

// @Summary Active view
// @Description Navigation state of the session with the data of the active view
// @Tags navigation
// @Produce json
// @Success 200 {object} models.ActiveView
// @Router /nav [get]
func (h *NavigationHandlers) GetActiveView(w http.ResponseWriter, r *http.Request) {
	h.respondActive(w, r)
}

// @Summary Dispatch navigation event
// @Description Apply a select_unit, select_machine or back event
// @Tags navigation
// @Accept json
// @Produce json
// @Param event body models.Event true "Navigation event"
// @Success 200 {object} models.ActiveView
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /nav/events [post]
func (h *NavigationHandlers) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, errors.NewValidationError("invalid request body", err))
		return
	}
	evt, err := req.event()
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	state, err := h.fleetservice.Dispatch(evt)
	if err != nil {
		// InvalidState has already moved the session; the client needs the new state.
		if errors.IsInvalidState(err) {
			respondWithError(w, r, errors.FromError(err).WithDetails(state))
			return
		}
		respondWithError(w, r, err)
		return
	}

	h.respondActive(w, r)
}

// @Summary Reset session
// @Description Start a fresh session on the Unit 1 overview
// @Tags navigation
// @Produce json
// @Success 200 {object} models.ActiveView
// @Router /nav/reset [post]
func (h *NavigationHandlers) Reset(w http.ResponseWriter, r *http.Request) {
	h.fleetservice.ResetSession()
	h.respondActive(w, r)
}

func (h *NavigationHandlers) respondActive(w http.ResponseWriter, r *http.Request) {
	active, err := h.fleetservice.GetActiveView(r.Context())
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, active)
}
