package memory

import (
	"context"
	"testing"

	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/fleet"
	"github.com/shredderfleet/fleetcommand/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceStore(t *testing.T) {
	ctx := context.Background()
	store := NewMaintenanceStore(fleet.Default().MaintenanceSeeds()...)

	rec, err := store.GetMaintenanceRecord(ctx, "Unit 2 Shredder")
	require.NoError(t, err)
	assert.Equal(t, "Gear Oil", rec.NextJob)
	assert.Equal(t, models.SparesLow, rec.SpareStatus)

	_, err = store.GetMaintenanceRecord(ctx, "Nonexistent")
	assert.True(t, errors.IsRecordNotFound(err))

	rec.SpareStatus = models.SparesAvailable
	require.NoError(t, store.UpsertMaintenanceRecord(ctx, rec))
	got, err := store.GetMaintenanceRecord(ctx, "Unit 2 Shredder")
	require.NoError(t, err)
	assert.Equal(t, models.SparesAvailable, got.SpareStatus)

	all, err := store.ListMaintenanceRecords(ctx)
	require.NoError(t, err)
	require.Len(t, all, 7)
	assert.Equal(t, "Mill 1", all[0].MachineID)
	assert.Equal(t, "Unit 2 Shredder", all[6].MachineID)

	assert.True(t, errors.IsValidation(store.UpsertMaintenanceRecord(ctx, models.MaintenanceRecord{})))
}
