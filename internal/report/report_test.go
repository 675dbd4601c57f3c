package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shredderfleet/fleetcommand/internal/alerts"
	"github.com/shredderfleet/fleetcommand/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *models.UnitReport {
	critical := models.StatusCritical
	mill2 := models.MaintenanceRecord{MachineID: "Mill 2", NextJob: "Bearing Replacement",
		DueIn: models.Overdue(), SpareStatus: models.SparesMissing}
	mill2Alerts := alerts.DeriveAlerts(mill2)
	top := alerts.Highest(mill2Alerts)

	return &models.UnitReport{
		Unit:        models.Unit1,
		Title:       "Unit 1 Overview",
		GeneratedAt: time.Date(2026, 3, 1, 8, 15, 0, 0, time.UTC),
		Rows: []models.ReportRow{
			{
				Machine:     models.Machine{ID: "Mill 2", Unit: models.Unit1, Kind: models.Mill, Stage: "Step 2: Mills"},
				Status:      &critical,
				Reading:     &models.Reading{Amps: 450, Vibration: 12.5, Temperature: 88},
				Maintenance: &mill2,
				Alerts:      mill2Alerts,
				Highest:     &top,
			},
			{
				Machine: models.Machine{ID: "Mill 3", Unit: models.Unit1, Kind: models.Mill, Stage: "Step 2: Mills"},
				Alerts:  []models.Alert{},
			},
		},
	}
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{StatusSheet, AlertsSheet}, f.GetSheetList())

	rows, err := f.GetRows(StatusSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, statusHeaders, rows[0])
	assert.Equal(t, []string{"Mill 2", "mill", "Step 2: Mills", "CRITICAL", "450", "12.5", "88", "0",
		"Bearing Replacement", "OVERDUE", "MISSING", "CRITICAL"}, rows[1])
	assert.Equal(t, "UNKNOWN", rows[2][3])
	assert.Equal(t, "no maintenance data", rows[2][8])

	alertRows, err := f.GetRows(AlertsSheet)
	require.NoError(t, err)
	require.Len(t, alertRows, 4)
	assert.Equal(t, []string{"Mill 2", "CRITICAL", "ORDER IMMEDIATELY"}, alertRows[2])
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Unit1-status-20260301-0815.xlsx", Filename(sampleReport()))
}
