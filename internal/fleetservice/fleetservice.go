package fleetservice

import (
	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/fleet"
	"github.com/shredderfleet/fleetcommand/internal/navigation"
	"github.com/shredderfleet/fleetcommand/internal/repository"
)

// EventRecorder receives service events for monitoring.
type EventRecorder interface {
	RecordEvent(eventName string, labels map[string]string)
}

// FleetService contains the fleet catalogue, the collaborator repositories
// and the navigation session of the operator.
type FleetService struct {
	Fleet       *fleet.Fleet
	Sensors     repository.ReadingSource
	Maintenance repository.MaintenanceRepository
	Trends      repository.TrendRepository
	Nav         *navigation.Controller
	Events      EventRecorder
}

// New creates a new FleetService instance with a fresh navigation session
func New(
	f *fleet.Fleet,
	sensors repository.ReadingSource,
	maintenance repository.MaintenanceRepository,
	trends repository.TrendRepository,
) *FleetService {
	return &FleetService{
		Fleet:       f,
		Sensors:     sensors,
		Maintenance: maintenance,
		Trends:      trends,
		Nav:         navigation.NewController(f),
	}
}

// Validate checks if all required repositories are initialized
func (s *FleetService) Validate() error {
	if s.Fleet == nil {
		return ErrMissingRepository("fleet")
	}
	if s.Sensors == nil {
		return ErrMissingRepository("sensors")
	}
	if s.Maintenance == nil {
		return ErrMissingRepository("maintenance")
	}
	if s.Trends == nil {
		return ErrMissingRepository("trends")
	}
	if s.Nav == nil {
		return ErrMissingRepository("navigation")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}

func (s *FleetService) record(event string, labels map[string]string) {
	if s.Events != nil {
		s.Events.RecordEvent(event, labels)
	}
}
