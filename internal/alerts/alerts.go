// Package alerts turns a maintenance record into the operator alerts shown
// on a machine's detail view.
package alerts

import (
	"fmt"
	"sort"

	"github.com/shredderfleet/fleetcommand/internal/models"
)

const (
	msgOrderNow     = "ORDER IMMEDIATELY"
	msgStockLow     = "Stock low: re-order suggested"
	msgSparesOK     = "Spares available"
	fmtSparesMissed = "SPARES MISSING — cannot perform %s"
	fmtJobOverdue   = "Job overdue: %s"
	fmtDueIn        = "Due in %s hrs"
)

// DeriveAlerts evaluates every rule against the record and returns the
// alerts ordered by descending severity. Alerts of equal severity keep
// evaluation order. The result always holds one spares alert and one due
// alert, so it is never empty.
func DeriveAlerts(rec models.MaintenanceRecord) []models.Alert {
	out := make([]models.Alert, 0, 4)
	missingEmitted := false

	if rec.DueIn.Overdue && rec.SpareStatus == models.SparesMissing {
		out = append(out,
			critical(fmt.Sprintf(fmtSparesMissed, rec.NextJob)),
			critical(msgOrderNow),
		)
		missingEmitted = true
	}

	switch rec.SpareStatus {
	case models.SparesMissing:
		if !missingEmitted {
			out = append(out, critical(fmt.Sprintf(fmtSparesMissed, rec.NextJob)))
		}
	case models.SparesLow:
		out = append(out, models.Alert{Severity: models.SeverityWarning, Message: msgStockLow})
	default:
		out = append(out, models.Alert{Severity: models.SeverityInfo, Message: msgSparesOK})
	}

	if rec.DueIn.Overdue {
		out = append(out, critical(fmt.Sprintf(fmtJobOverdue, rec.NextJob)))
	} else {
		out = append(out, models.Alert{
			Severity: models.SeverityInfo,
			Message:  fmt.Sprintf(fmtDueIn, models.FormatHours(rec.DueIn.Hours)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity > out[j].Severity
	})
	return out
}

// Highest returns the most severe level in alerts, or Info for none.
func Highest(alerts []models.Alert) models.Severity {
	top := models.SeverityInfo
	for _, a := range alerts {
		if a.Severity > top {
			top = a.Severity
		}
	}
	return top
}

func critical(msg string) models.Alert {
	return models.Alert{Severity: models.SeverityCritical, Message: msg}
}
