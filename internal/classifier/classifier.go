// Package classifier derives a machine's status from its latest sensor reading.
package classifier

import "github.com/shredderfleet/fleetcommand/internal/models"

const (
	// CriticalVibration is the RMS vibration (mm/s) above which a machine is at
	// risk of mechanical failure.
	CriticalVibration = 8.0
	// HighLoadAmps marks a motor drawing more current than its normal band.
	HighLoadAmps = 440.0
)

// Classify maps a reading to exactly one status. Rules are checked worst
// first so a machine with several anomalies reports the most severe one.
// A stopped motor without recorded jams is a planned stop and stays Running.
// Temperature does not take part.
func Classify(r models.Reading) models.MachineStatus {
	switch {
	case r.Vibration > CriticalVibration:
		return models.StatusCritical
	case r.Amps == 0 && r.JamCount > 0:
		return models.StatusJammed
	default:
		return models.StatusRunning
	}
}

// AssessVitals returns the indicators displayed beside the raw values.
func AssessVitals(r models.Reading) models.Vitals {
	v := models.Vitals{Load: models.LoadNormal, Vibration: models.VibrationNormal}
	if r.Amps > HighLoadAmps {
		v.Load = models.LoadHigh
	}
	if r.Vibration > CriticalVibration {
		v.Vibration = models.VibrationCritical
	}
	return v
}
