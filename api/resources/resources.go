// FilePath: api/resources/resources.go
package resources

import (
	"context"
	"net/http"

	"github.com/shredderfleet/fleetcommand/internal/fleetservice"
	"github.com/shredderfleet/fleetcommand/internal/monitoring"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Units      *UnitHandlers
	Machines   *MachineHandlers
	Navigation *NavigationHandlers
	System     *SystemHandlers
	Push       http.Handler
}

// NewResources creates a new Resources instance
func NewResources(svc fleetservice.FleetViews, mon *monitoring.Service, push http.Handler) *Resources {
	return &Resources{
		Units:      &UnitHandlers{fleetservice: svc},
		Machines:   &MachineHandlers{fleetservice: svc},
		Navigation: &NavigationHandlers{fleetservice: svc},
		System:     &SystemHandlers{monitoring: mon, checks: map[string]func(context.Context) error{}},
		Push:       push,
	}
}

// AddHealthCheck registers a dependency probed by the health endpoint
func (r *Resources) AddHealthCheck(name string, check func(ctx context.Context) error) {
	r.System.checks[name] = check
}
