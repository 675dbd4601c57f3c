// FilePath: internal/repository/postgres/postgres.maintenance.go
package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/shredderfleet/fleetcommand/internal/database"
	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/models"
)

// maintenanceRow is the table form of a MaintenanceRecord. The due state is
// split into a flag and an hour count.
type maintenanceRow struct {
	MachineID   string  `db:"machine_id"`
	NextJob     string  `db:"next_job"`
	Overdue     bool    `db:"overdue"`
	DueInHours  float64 `db:"due_in_hours"`
	SpareStatus string  `db:"spare_status"`
}

func toRow(rec models.MaintenanceRecord) maintenanceRow {
	return maintenanceRow{
		MachineID:   rec.MachineID,
		NextJob:     rec.NextJob,
		Overdue:     rec.DueIn.Overdue,
		DueInHours:  rec.DueIn.Hours,
		SpareStatus: string(rec.SpareStatus),
	}
}

func (row maintenanceRow) record() (models.MaintenanceRecord, error) {
	spares, err := models.ParseSpareStatus(row.SpareStatus)
	if err != nil {
		return models.MaintenanceRecord{}, err
	}
	due := models.DueInHours(row.DueInHours)
	if row.Overdue {
		due = models.Overdue()
	}
	return models.MaintenanceRecord{
		MachineID:   row.MachineID,
		NextJob:     row.NextJob,
		DueIn:       due,
		SpareStatus: spares,
	}, nil
}

const upsertMaintenanceQuery = `
	INSERT INTO maintenance_records (
		machine_id, next_job, overdue, due_in_hours, spare_status, updated_at
	) VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (machine_id) DO UPDATE SET
		next_job = excluded.next_job,
		overdue = excluded.overdue,
		due_in_hours = excluded.due_in_hours,
		spare_status = excluded.spare_status,
		updated_at = excluded.updated_at`

type MaintenanceRepo struct {
	PostgresBaseRepo
}

func NewMaintenanceRepository(db database.DB) (*MaintenanceRepo, error) {
	repo := &MaintenanceRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MaintenanceRepo) initializeSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS maintenance_records (
			machine_id TEXT PRIMARY KEY,
			next_job TEXT NOT NULL,
			overdue BOOLEAN NOT NULL DEFAULT FALSE,
			due_in_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
			spare_status TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`

	if _, err := r.db.GetDB().Exec(query); err != nil {
		return errors.NewDatabaseError("failed to create maintenance_records table", err)
	}
	return nil
}

func (r *MaintenanceRepo) GetMaintenanceRecord(ctx context.Context, machineID string) (models.MaintenanceRecord, error) {
	var row maintenanceRow
	query := `
		SELECT machine_id, next_job, overdue, due_in_hours, spare_status
		FROM maintenance_records WHERE machine_id = ?`

	err := r.getContext(ctx, &row, query, machineID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return models.MaintenanceRecord{}, errors.NewRecordNotFoundError(machineID, err)
		}
		return models.MaintenanceRecord{}, errors.NewDatabaseError("failed to get maintenance record", err)
	}

	rec, err := row.record()
	if err != nil {
		return models.MaintenanceRecord{}, errors.NewDatabaseError("corrupt maintenance record", err)
	}
	return rec, nil
}

func (r *MaintenanceRepo) UpsertMaintenanceRecord(ctx context.Context, rec models.MaintenanceRecord) error {
	if rec.MachineID == "" {
		return errors.NewValidationError("maintenance record needs a machine id", nil)
	}
	row := toRow(rec)
	_, err := r.ExecContext(ctx, upsertMaintenanceQuery,
		row.MachineID, row.NextJob, row.Overdue, row.DueInHours, row.SpareStatus, time.Now().UTC())
	return err
}

func (r *MaintenanceRepo) ListMaintenanceRecords(ctx context.Context) ([]models.MaintenanceRecord, error) {
	rows := []maintenanceRow{}
	query := `
		SELECT machine_id, next_job, overdue, due_in_hours, spare_status
		FROM maintenance_records ORDER BY machine_id`

	if err := r.selectContext(ctx, &rows, query); err != nil {
		return nil, errors.NewDatabaseError("failed to list maintenance records", err)
	}

	recs := make([]models.MaintenanceRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.record()
		if err != nil {
			return nil, errors.NewDatabaseError("corrupt maintenance record", err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// SeedMaintenanceRecords upserts recs in a single transaction.
func (r *MaintenanceRepo) SeedMaintenanceRecords(ctx context.Context, recs []models.MaintenanceRecord) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	now := time.Now().UTC()
	query := r.rebind(upsertMaintenanceQuery)
	for _, rec := range recs {
		row := toRow(rec)
		_, err := tx.ExecContext(ctx, query,
			row.MachineID, row.NextJob, row.Overdue, row.DueInHours, row.SpareStatus, now)
		if err != nil {
			return errors.NewDatabaseError("failed to seed maintenance record "+rec.MachineID, err)
		}
	}
	return r.Commit(tx)
}
