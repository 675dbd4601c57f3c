package fleetservice

import (
	"context"

	"github.com/shredderfleet/fleetcommand/internal/alerts"
	"github.com/shredderfleet/fleetcommand/internal/classifier"
	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/models"
	nuts "github.com/vaudience/go-nuts"
	"golang.org/x/sync/errgroup"
)

// sensorFanout bounds concurrent sensor reads of one overview.
const sensorFanout = 4

// FleetViews prepares the data behind each navigation view
type FleetViews interface {
	GetFleetView(ctx context.Context, unit models.Unit) (*models.FleetView, error)
	GetDetailView(ctx context.Context, machineID string) (*models.DetailView, error)
	GetTrend(ctx context.Context, machineID string, q TrendQuery) ([]models.TrendPoint, error)
	UnitReport(ctx context.Context, unit models.Unit) (*models.UnitReport, error)
	GetActiveView(ctx context.Context) (*models.ActiveView, error)
	Dispatch(evt models.Event) (models.NavState, error)
	ResetSession() models.NavState
}

var _ FleetViews = (*FleetService)(nil)

// GetFleetView lists a unit's machines in process order with their status.
// Machines whose sensors cannot be read are reported without status.
func (s *FleetService) GetFleetView(ctx context.Context, unit models.Unit) (*models.FleetView, error) {
	machines := s.Fleet.Machines(unit)
	if machines == nil {
		return nil, errors.NewValidationError("unknown unit "+string(unit), nil)
	}
	title, flow := s.Fleet.Describe(unit)

	view := &models.FleetView{
		Unit:     unit,
		Title:    title,
		Flow:     flow,
		Machines: make([]models.MachineSummary, len(machines)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sensorFanout)
	for i, m := range machines {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summary := models.MachineSummary{Machine: *m}
			reading, err := s.Sensors.ReadSensors(gctx, m.ID)
			if err != nil {
				summary.Degraded = s.degrade("sensor", m.ID, err)
			} else {
				status := classifier.Classify(reading)
				summary.Status = &status
				summary.Reading = &reading
			}
			view.Machines[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return view, nil
}

// GetDetailView assembles the detail of one machine. Sensor or maintenance
// gaps leave the affected fields empty and fill the matching error string.
func (s *FleetService) GetDetailView(ctx context.Context, machineID string) (*models.DetailView, error) {
	m, ok := s.Fleet.Lookup(machineID)
	if !ok {
		return nil, errors.NewUnknownMachineError(machineID)
	}

	view := &models.DetailView{Machine: *m, Alerts: []models.Alert{}}

	reading, err := s.Sensors.ReadSensors(ctx, machineID)
	if err != nil {
		view.SensorError = s.degrade("sensor", machineID, err)
	} else {
		status := classifier.Classify(reading)
		vitals := classifier.AssessVitals(reading)
		view.Reading = &reading
		view.Status = &status
		view.Vitals = &vitals
	}

	rec, err := s.Maintenance.GetMaintenanceRecord(ctx, machineID)
	if err != nil {
		view.MaintenanceError = s.degrade("maintenance", machineID, err)
	} else {
		view.Maintenance = &rec
		view.Alerts = alerts.DeriveAlerts(rec)
	}

	return view, nil
}

// Dispatch applies a navigation event to the session.
func (s *FleetService) Dispatch(evt models.Event) (models.NavState, error) {
	state, err := s.Nav.Dispatch(evt)
	if err != nil {
		s.record("navigation_rejected", map[string]string{"event": string(evt.Type), "reason": err.Error()})
	}
	return state, err
}

// ResetSession tears the operator session down and starts a fresh one.
func (s *FleetService) ResetSession() models.NavState {
	state := s.Nav.Reset()
	s.record("session_reset", nil)
	return state
}

// GetActiveView returns the session state together with the data of the
// view it points at.
func (s *FleetService) GetActiveView(ctx context.Context) (*models.ActiveView, error) {
	state := s.Nav.State()
	active := &models.ActiveView{Session: s.Nav.SessionID(), State: state}

	if state.View == models.ViewDetail {
		detail, err := s.GetDetailView(ctx, state.SelectedMachine)
		if err != nil {
			return nil, err
		}
		active.Detail = detail
		return active, nil
	}

	unit, _ := state.View.Unit()
	fleetView, err := s.GetFleetView(ctx, unit)
	if err != nil {
		return nil, err
	}
	active.Fleet = fleetView
	return active, nil
}

func (s *FleetService) degrade(source, machineID string, err error) string {
	s.record("view_degraded", map[string]string{"source": source, "machine_id": machineID})
	switch {
	case errors.IsSensorUnavailable(err):
		return "status unknown: sensors unavailable"
	case errors.IsRecordNotFound(err):
		return "no maintenance data"
	}
	nuts.L.Warnf("[FleetService] %s lookup for %s failed: %v", source, machineID, err)
	if source == "sensor" {
		return "status unknown: " + err.Error()
	}
	return "maintenance data unavailable: " + err.Error()
}
