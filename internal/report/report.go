// FilePath: internal/report/report.go
package report

import (
	"fmt"
	"io"

	"github.com/shredderfleet/fleetcommand/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	StatusSheet = "Status"
	AlertsSheet = "Alerts"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	statusHeaders = []string{"Machine", "Kind", "Stage", "Status", "Amps", "Vibration (mm/s)",
		"Temperature (°C)", "Jams", "Next Job", "Due", "Spares", "Highest Alert"}
	alertHeaders = []string{"Machine", "Severity", "Message"}
)

// Filename is the download name of a unit report.
func Filename(rep *models.UnitReport) string {
	return fmt.Sprintf("%s-status-%s.xlsx", rep.Unit, rep.GeneratedAt.Format("20060102-1504"))
}

type styles struct {
	header   int
	critical int
	warning  int
}

// Write renders the unit report as an xlsx workbook with a status sheet and
// an alerts sheet.
func Write(w io.Writer, rep *models.UnitReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", StatusSheet); err != nil {
		return fmt.Errorf("failed to name status sheet: %w", err)
	}
	if _, err := f.NewSheet(AlertsSheet); err != nil {
		return fmt.Errorf("failed to create alerts sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return err
	}
	if err := writeRows(f, StatusSheet, statusHeaders, statusRows(rep), st); err != nil {
		return err
	}
	if err := writeRows(f, AlertsSheet, alertHeaders, alertRows(rep), st); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return st, fmt.Errorf("failed to create header style: %w", err)
	}
	st.critical, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FF4560"}, Pattern: 1},
	})
	if err != nil {
		return st, fmt.Errorf("failed to create critical style: %w", err)
	}
	st.warning, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFD166"}, Pattern: 1},
	})
	if err != nil {
		return st, fmt.Errorf("failed to create warning style: %w", err)
	}
	return st, nil
}

// row is one sheet line plus the severity that colors its first cell.
type row struct {
	cells    []interface{}
	severity *models.Severity
}

func statusRows(rep *models.UnitReport) []row {
	out := make([]row, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		cells := []interface{}{r.Machine.ID, string(r.Machine.Kind), r.Machine.Stage}
		if r.Status != nil {
			cells = append(cells, string(*r.Status))
		} else {
			cells = append(cells, "UNKNOWN")
		}
		if r.Reading != nil {
			cells = append(cells, r.Reading.Amps, r.Reading.Vibration, r.Reading.Temperature, r.Reading.JamCount)
		} else {
			cells = append(cells, "", "", "", "")
		}
		if r.Maintenance != nil {
			cells = append(cells, r.Maintenance.NextJob, r.Maintenance.DueIn.String(), string(r.Maintenance.SpareStatus))
		} else {
			cells = append(cells, "no maintenance data", "", "")
		}
		if r.Highest != nil {
			cells = append(cells, r.Highest.String())
		} else {
			cells = append(cells, "")
		}
		out = append(out, row{cells: cells, severity: r.Highest})
	}
	return out
}

func alertRows(rep *models.UnitReport) []row {
	var out []row
	for _, r := range rep.Rows {
		for _, a := range r.Alerts {
			sev := a.Severity
			out = append(out, row{
				cells:    []interface{}{r.Machine.ID, sev.String(), a.Message},
				severity: &sev,
			})
		}
	}
	return out
}

func writeRows(f *excelize.File, sheet string, headers []string, rows []row, st styles) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, st.header)
	}

	for rowIdx, r := range rows {
		for colIdx, value := range r.cells {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
			}
		}
		if r.severity != nil && *r.severity > models.SeverityInfo {
			style := st.warning
			if *r.severity == models.SeverityCritical {
				style = st.critical
			}
			cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
			f.SetCellStyle(sheet, cell, cell, style)
		}
	}

	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 18)
}
