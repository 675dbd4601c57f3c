// FilePath: internal/models/models.views.go
package models

import "time"

// MachineSummary is one card of a fleet overview. Status is nil when the
// sensor source could not be read.
type MachineSummary struct {
	Machine
	Status   *MachineStatus `json:"status"`
	Reading  *Reading       `json:"reading"`
	Degraded string         `json:"degraded,omitempty"`
}

type FleetView struct {
	Unit     Unit             `json:"unit"`
	Title    string           `json:"title"`
	Flow     string           `json:"flow"`
	Machines []MachineSummary `json:"machines"`
}

type LoadLevel string

const (
	LoadNormal LoadLevel = "Normal"
	LoadHigh   LoadLevel = "High"
)

type VibrationLevel string

const (
	VibrationNormal   VibrationLevel = "Normal"
	VibrationCritical VibrationLevel = "CRITICAL"
)

// Vitals are the informational indicators shown next to the raw reading.
type Vitals struct {
	Load      LoadLevel      `json:"load"`
	Vibration VibrationLevel `json:"vibration"`
}

type DetailView struct {
	Machine          Machine            `json:"machine"`
	Reading          *Reading           `json:"reading"`
	Status           *MachineStatus     `json:"status"`
	Vitals           *Vitals            `json:"vitals"`
	Alerts           []Alert            `json:"alerts"`
	Maintenance      *MaintenanceRecord `json:"maintenance"`
	SensorError      string             `json:"sensorError,omitempty"`
	MaintenanceError string             `json:"maintenanceError,omitempty"`
}

// ActiveView bundles the navigation state with the data of the view it points at.
type ActiveView struct {
	Session string      `json:"session"`
	State   NavState    `json:"state"`
	Fleet   *FleetView  `json:"fleet,omitempty"`
	Detail  *DetailView `json:"detail,omitempty"`
}

type TrendPoint struct {
	Time      time.Time `json:"time"`
	Amps      float64   `json:"amps"`
	Vibration float64   `json:"vibration"`
}

// ReportRow is one machine line of a unit status report.
type ReportRow struct {
	Machine     Machine            `json:"machine"`
	Status      *MachineStatus     `json:"status"`
	Reading     *Reading           `json:"reading"`
	Maintenance *MaintenanceRecord `json:"maintenance"`
	Alerts      []Alert            `json:"alerts"`
	Highest     *Severity          `json:"highest"`
}

type UnitReport struct {
	Unit        Unit        `json:"unit"`
	Title       string      `json:"title"`
	Flow        string      `json:"flow"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Rows        []ReportRow `json:"rows"`
}
