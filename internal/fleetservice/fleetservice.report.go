package fleetservice

import (
	"context"
	"time"

	"github.com/shredderfleet/fleetcommand/internal/alerts"
	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/models"
)

// UnitReport collects status and maintenance of every machine of a unit for
// export. Data gaps leave the row's fields empty.
func (s *FleetService) UnitReport(ctx context.Context, unit models.Unit) (*models.UnitReport, error) {
	view, err := s.GetFleetView(ctx, unit)
	if err != nil {
		return nil, err
	}

	report := &models.UnitReport{
		Unit:        unit,
		Title:       view.Title,
		Flow:        view.Flow,
		GeneratedAt: time.Now().UTC(),
		Rows:        make([]models.ReportRow, 0, len(view.Machines)),
	}
	for _, summary := range view.Machines {
		row := models.ReportRow{
			Machine: summary.Machine,
			Status:  summary.Status,
			Reading: summary.Reading,
			Alerts:  []models.Alert{},
		}
		if rec, err := s.Maintenance.GetMaintenanceRecord(ctx, summary.ID); err == nil {
			row.Maintenance = &rec
			row.Alerts = alerts.DeriveAlerts(rec)
			top := alerts.Highest(row.Alerts)
			row.Highest = &top
		} else if !errors.IsRecordNotFound(err) {
			s.degrade("maintenance", summary.ID, err)
		}
		report.Rows = append(report.Rows, row)
	}
	s.record("report_generated", map[string]string{"unit": string(unit)})
	return report, nil
}
