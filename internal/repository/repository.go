// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/shredderfleet/fleetcommand/internal/database"
	"github.com/shredderfleet/fleetcommand/internal/models"
)

// ReadingSource returns the latest sensor snapshot of a machine. Failures
// wrap errors.ErrSensorUnavailable.
type ReadingSource interface {
	ReadSensors(ctx context.Context, machineID string) (models.Reading, error)
}

// ReadingSink accepts ingested readings.
type ReadingSink interface {
	StoreReading(ctx context.Context, machineID string, r models.Reading) error
}

// MaintenanceRepository defines the maintenance record store. A miss wraps
// errors.ErrRecordNotFound.
type MaintenanceRepository interface {
	GetMaintenanceRecord(ctx context.Context, machineID string) (models.MaintenanceRecord, error)
	UpsertMaintenanceRecord(ctx context.Context, rec models.MaintenanceRecord) error
	ListMaintenanceRecords(ctx context.Context) ([]models.MaintenanceRecord, error)
}

// SQLMaintenanceRepository is a MaintenanceRepository backed by a SQL database.
type SQLMaintenanceRepository interface {
	database.Repository
	MaintenanceRepository
	SeedMaintenanceRecords(ctx context.Context, recs []models.MaintenanceRecord) error
}

// TrendRepository returns amps and vibration history, oldest first, at most
// points entries from the last window.
type TrendRepository interface {
	GetTrend(ctx context.Context, machineID string, window time.Duration, points int) ([]models.TrendPoint, error)
}

type fanout []ReadingSink

// Fanout stores every reading in all sinks and joins their errors.
func Fanout(sinks ...ReadingSink) ReadingSink {
	out := make(fanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (f fanout) StoreReading(ctx context.Context, machineID string, r models.Reading) error {
	var errs []error
	for _, s := range f {
		if err := s.StoreReading(ctx, machineID, r); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
