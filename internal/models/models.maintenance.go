// FilePath: internal/models/models.maintenance.go
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type SpareStatus string

const (
	SparesAvailable SpareStatus = "AVAILABLE"
	SparesLow       SpareStatus = "LOW"
	SparesMissing   SpareStatus = "MISSING"
)

// ParseSpareStatus maps the inventory text forms (OK, AVAILABLE, LOW, MISSING).
func ParseSpareStatus(s string) (SpareStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OK", "AVAILABLE":
		return SparesAvailable, nil
	case "LOW":
		return SparesLow, nil
	case "MISSING":
		return SparesMissing, nil
	}
	return "", fmt.Errorf("unknown spare status %q", s)
}

// DueState is either overdue or due in a number of hours.
type DueState struct {
	Overdue bool
	Hours   float64
}

func Overdue() DueState { return DueState{Overdue: true} }

func DueInHours(n float64) DueState { return DueState{Hours: n} }

// ParseDueState accepts "OVERDUE", "140 hrs" or a bare number of hours.
func ParseDueState(s string) (DueState, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "overdue" {
		return Overdue(), nil
	}
	for _, suffix := range []string{"hrs", "hr", "h"} {
		if strings.HasSuffix(norm, suffix) {
			norm = strings.TrimSpace(strings.TrimSuffix(norm, suffix))
			break
		}
	}
	n, err := strconv.ParseFloat(norm, 64)
	if err != nil {
		return DueState{}, fmt.Errorf("invalid due state %q", s)
	}
	return DueInHours(n), nil
}

// String renders the record-store text form.
func (d DueState) String() string {
	if d.Overdue {
		return "OVERDUE"
	}
	return FormatHours(d.Hours) + " hrs"
}

// FormatHours prints hours in their shortest form (48, 4.5).
func FormatHours(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

type dueStateJSON struct {
	Overdue bool     `json:"overdue"`
	Hours   *float64 `json:"hours,omitempty"`
}

func (d DueState) MarshalJSON() ([]byte, error) {
	out := dueStateJSON{Overdue: d.Overdue}
	if !d.Overdue {
		h := d.Hours
		out.Hours = &h
	}
	return json.Marshal(out)
}

func (d *DueState) UnmarshalJSON(data []byte) error {
	var in dueStateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Overdue {
		*d = Overdue()
		return nil
	}
	if in.Hours == nil {
		return fmt.Errorf("due state needs either overdue or hours")
	}
	*d = DueInHours(*in.Hours)
	return nil
}

// MaintenanceRecord is owned by the maintenance store and read-only here.
type MaintenanceRecord struct {
	MachineID   string      `json:"machineId"`
	NextJob     string      `json:"nextJob"`
	DueIn       DueState    `json:"dueIn"`
	SpareStatus SpareStatus `json:"spareStatus"`
}
