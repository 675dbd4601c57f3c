package navigation

import (
	"testing"

	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/fleet"
	"github.com/shredderfleet/fleetcommand/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detail(id string) models.NavState {
	return models.NavState{View: models.ViewDetail, SelectedMachine: id}
}

func TestTransition(t *testing.T) {
	dir := fleet.Default()
	unit1 := models.NavState{View: models.ViewUnit1Overview}
	unit2 := models.NavState{View: models.ViewUnit2Overview}

	cases := []struct {
		name  string
		from  models.NavState
		event models.Event
		want  models.NavState
	}{
		{"select unit 2 from start", unit1, models.SelectUnit(models.Unit2), unit2},
		{"select unit resets drill-down", detail("Mill 2"), models.SelectUnit(models.Unit2), unit2},
		{"drill into machine", unit1, models.SelectMachine("Mill 2"), detail("Mill 2")},
		{"drill from other unit", unit2, models.SelectMachine("Unit 2 Crusher"), detail("Unit 2 Crusher")},
		{"reselect from detail", detail("Mill 2"), models.SelectMachine("Mill 1"), detail("Mill 1")},
		{"back to unit 1", detail("Mill 2"), models.Back(), unit1},
		{"back to unit 2", detail("Unit 2 Shredder"), models.Back(), unit2},
		{"back from overview is a no-op", unit2, models.Back(), unit2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Transition(tc.from, tc.event, dir)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestTransitionUnknownMachine(t *testing.T) {
	start := models.InitialNavState()
	got, err := Transition(start, models.SelectMachine("Nonexistent"), fleet.Default())
	assert.True(t, errors.IsUnknownMachine(err))
	assert.Equal(t, start, got)
}

func TestTransitionInvalidState(t *testing.T) {
	got, err := Transition(models.NavState{View: models.ViewDetail}, models.Back(), fleet.Default())
	assert.True(t, errors.IsInvalidState(err))
	assert.Equal(t, models.InitialNavState(), got)

	got, err = Transition(detail("Decommissioned"), models.Back(), fleet.Default())
	assert.True(t, errors.IsInvalidState(err))
	assert.Equal(t, models.InitialNavState(), got)
}

func TestTransitionRejectsMalformedEvents(t *testing.T) {
	start := detail("Mill 1")

	got, err := Transition(start, models.Event{Type: "jump"}, fleet.Default())
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, start, got)

	got, err = Transition(start, models.SelectUnit("Unit7"), fleet.Default())
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, start, got)
}

func TestSelectUnitIsIdempotent(t *testing.T) {
	dir := fleet.Default()
	once, err := Transition(detail("Mill 3"), models.SelectUnit(models.Unit1), dir)
	require.NoError(t, err)
	twice, err := Transition(once, models.SelectUnit(models.Unit1), dir)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}
