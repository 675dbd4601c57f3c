// FilePath: internal/models/models.machine.go
package models

import (
	"fmt"
	"strings"
	"time"
)

// Unit is one production line of the fleet.
type Unit string

const (
	Unit1 Unit = "Unit1"
	Unit2 Unit = "Unit2"
)

// Units lists the production units in display order.
var Units = []Unit{Unit1, Unit2}

// ParseUnit accepts "Unit1", "unit1", "Unit 1" or "1".
func ParseUnit(s string) (Unit, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	norm = strings.TrimPrefix(norm, "unit")
	switch norm {
	case "1":
		return Unit1, nil
	case "2":
		return Unit2, nil
	}
	return "", fmt.Errorf("unknown unit %q", s)
}

// Overview returns the overview view of the unit.
func (u Unit) Overview() View {
	if u == Unit2 {
		return ViewUnit2Overview
	}
	return ViewUnit1Overview
}

type MachineKind string

const (
	Shredder MachineKind = "shredder"
	Mill     MachineKind = "mill"
	Crusher  MachineKind = "crusher"
)

type Machine struct {
	ID       string      `json:"id" yaml:"id"`
	Unit     Unit        `json:"unit" yaml:"unit"`
	Kind     MachineKind `json:"kind" yaml:"kind"`
	Stage    string      `json:"stage" yaml:"stage"`
	Position int         `json:"position" yaml:"-"`
}

// Reading is an immutable sensor snapshot for one machine.
type Reading struct {
	Amps        float64   `json:"amps" yaml:"amps"`
	Vibration   float64   `json:"vibration" yaml:"vibration"`
	Temperature float64   `json:"temperature" yaml:"temperature"`
	JamCount    int       `json:"jamCount" yaml:"jamCount"`
	ObservedAt  time.Time `json:"observedAt,omitempty" yaml:"-"`
}

// MachineStatus is derived from the latest Reading and never stored.
type MachineStatus string

const (
	StatusRunning  MachineStatus = "RUNNING"
	StatusJammed   MachineStatus = "JAMMED"
	StatusCritical MachineStatus = "CRITICAL"
)
