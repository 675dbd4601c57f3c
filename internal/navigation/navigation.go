// Package navigation implements the operator's view state machine: two unit
// overviews and a single-machine detail view.
//
// Transition is a pure function over an explicit NavState. Controller owns
// the one session state of the host and serializes events into it.
package navigation

import (
	"fmt"

	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/models"
)

// Directory resolves machine ids to machines.
type Directory interface {
	Lookup(id string) (*models.Machine, bool)
}

// Transition applies evt to state and returns the next state.
//
// On UnknownMachine and validation errors the returned state equals the
// input. On InvalidState the returned state is the initial overview, which
// the caller should adopt.
func Transition(state models.NavState, evt models.Event, dir Directory) (models.NavState, error) {
	switch evt.Type {
	case models.EventSelectUnit:
		switch evt.Unit {
		case models.Unit1, models.Unit2:
			return models.NavState{View: evt.Unit.Overview()}, nil
		}
		return state, errors.NewValidationError(fmt.Sprintf("unknown unit %q", evt.Unit), nil)

	case models.EventSelectMachine:
		if _, ok := dir.Lookup(evt.MachineID); !ok {
			return state, errors.NewUnknownMachineError(evt.MachineID)
		}
		return models.NavState{View: models.ViewDetail, SelectedMachine: evt.MachineID}, nil

	case models.EventBack:
		if state.View != models.ViewDetail {
			return state, nil
		}
		if state.SelectedMachine == "" {
			return models.InitialNavState(), errors.NewInvalidStateError("detail view without a selected machine")
		}
		m, ok := dir.Lookup(state.SelectedMachine)
		if !ok {
			return models.InitialNavState(), errors.NewInvalidStateError(
				fmt.Sprintf("selected machine %q is not part of the fleet", state.SelectedMachine))
		}
		return models.NavState{View: m.Unit.Overview()}, nil
	}
	return state, errors.NewValidationError(fmt.Sprintf("unknown navigation event %q", evt.Type), nil)
}
