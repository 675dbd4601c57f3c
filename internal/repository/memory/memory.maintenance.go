// FilePath: internal/repository/memory/memory.maintenance.go
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/models"
)

// MaintenanceStore keeps maintenance records in a map. Used when no database
// is configured and in tests.
type MaintenanceStore struct {
	mu      sync.RWMutex
	records map[string]models.MaintenanceRecord
}

func NewMaintenanceStore(seeds ...models.MaintenanceRecord) *MaintenanceStore {
	s := &MaintenanceStore{records: make(map[string]models.MaintenanceRecord, len(seeds))}
	for _, rec := range seeds {
		s.records[rec.MachineID] = rec
	}
	return s
}

func (s *MaintenanceStore) GetMaintenanceRecord(_ context.Context, machineID string) (models.MaintenanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[machineID]
	if !ok {
		return models.MaintenanceRecord{}, errors.NewRecordNotFoundError(machineID, nil)
	}
	return rec, nil
}

func (s *MaintenanceStore) UpsertMaintenanceRecord(_ context.Context, rec models.MaintenanceRecord) error {
	if rec.MachineID == "" {
		return errors.NewValidationError("maintenance record needs a machine id", nil)
	}
	s.mu.Lock()
	s.records[rec.MachineID] = rec
	s.mu.Unlock()
	return nil
}

func (s *MaintenanceStore) ListMaintenanceRecords(_ context.Context) ([]models.MaintenanceRecord, error) {
	s.mu.RLock()
	out := make([]models.MaintenanceRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].MachineID < out[j].MachineID })
	return out, nil
}
