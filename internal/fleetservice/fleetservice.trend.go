package fleetservice

import (
	"context"
	"time"

	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/models"
)

const (
	DefaultTrendMinutes = 60
	DefaultTrendPoints  = 60
	MaxTrendMinutes     = 24 * 60
	MaxTrendPoints      = 1000
)

// TrendQuery selects the history window of a trend request
type TrendQuery struct {
	Minutes int `schema:"minutes"`
	Points  int `schema:"points"`
}

func (q TrendQuery) normalize() (TrendQuery, error) {
	if q.Minutes == 0 {
		q.Minutes = DefaultTrendMinutes
	}
	if q.Points == 0 {
		q.Points = DefaultTrendPoints
	}
	if q.Minutes < 0 || q.Minutes > MaxTrendMinutes {
		return q, errors.NewValidationError("minutes must be between 1 and 1440", nil)
	}
	if q.Points < 0 || q.Points > MaxTrendPoints {
		return q, errors.NewValidationError("points must be between 1 and 1000", nil)
	}
	return q, nil
}

// GetTrend returns the amps and vibration history of a machine
func (s *FleetService) GetTrend(ctx context.Context, machineID string, q TrendQuery) ([]models.TrendPoint, error) {
	if _, ok := s.Fleet.Lookup(machineID); !ok {
		return nil, errors.NewUnknownMachineError(machineID)
	}
	q, err := q.normalize()
	if err != nil {
		return nil, err
	}
	return s.Trends.GetTrend(ctx, machineID, time.Duration(q.Minutes)*time.Minute, q.Points)
}
