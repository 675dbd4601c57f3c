// FilePath: internal/models/models.navigation.go
package models

type View string

const (
	ViewUnit1Overview View = "UNIT1_OVERVIEW"
	ViewUnit2Overview View = "UNIT2_OVERVIEW"
	ViewDetail        View = "DETAIL"
)

// NavState is the whole navigation state of the operator session.
// SelectedMachine is empty unless View is ViewDetail.
type NavState struct {
	View            View   `json:"view"`
	SelectedMachine string `json:"selectedMachine,omitempty"`
}

// InitialNavState is the state a new session starts in.
func InitialNavState() NavState {
	return NavState{View: ViewUnit1Overview}
}

// Valid reports whether the detail/selection invariant holds.
func (s NavState) Valid() bool {
	switch s.View {
	case ViewDetail:
		return s.SelectedMachine != ""
	case ViewUnit1Overview, ViewUnit2Overview:
		return s.SelectedMachine == ""
	}
	return false
}

// Unit returns the unit shown by an overview view.
func (v View) Unit() (Unit, bool) {
	switch v {
	case ViewUnit1Overview:
		return Unit1, true
	case ViewUnit2Overview:
		return Unit2, true
	}
	return "", false
}

type EventType string

const (
	EventSelectUnit    EventType = "select_unit"
	EventSelectMachine EventType = "select_machine"
	EventBack          EventType = "back"
)

// Event is an operator selection fed to the navigation state machine.
type Event struct {
	Type      EventType `json:"type"`
	Unit      Unit      `json:"unit,omitempty"`
	MachineID string    `json:"machineId,omitempty"`
}

func SelectUnit(u Unit) Event { return Event{Type: EventSelectUnit, Unit: u} }

func SelectMachine(id string) Event { return Event{Type: EventSelectMachine, MachineID: id} }

func Back() Event { return Event{Type: EventBack} }
