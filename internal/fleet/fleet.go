// FilePath: internal/fleet/fleet.go
package fleet

import (
	"fmt"
	"os"

	"github.com/shredderfleet/fleetcommand/internal/models"
	nuts "github.com/vaudience/go-nuts"
	"gopkg.in/yaml.v3"
)

// File is the on-disk fleet definition.
type File struct {
	Units []UnitSpec `yaml:"units"`
}

type UnitSpec struct {
	Unit     string        `yaml:"unit"`
	Title    string        `yaml:"title"`
	Flow     string        `yaml:"flow"`
	Machines []MachineSpec `yaml:"machines"`
}

type MachineSpec struct {
	ID          string           `yaml:"id"`
	Kind        string           `yaml:"kind"`
	Stage       string           `yaml:"stage"`
	Maintenance *MaintenanceSpec `yaml:"maintenance,omitempty"`
	Scenario    *models.Reading  `yaml:"scenario,omitempty"`
}

// MaintenanceSpec uses the text forms of the inventory sheet ("OVERDUE", "140 hrs", "OK").
type MaintenanceSpec struct {
	Next   string `yaml:"next"`
	Due    string `yaml:"due"`
	Spares string `yaml:"spares"`
}

type unitInfo struct {
	title    string
	flow     string
	machines []*models.Machine
}

// Fleet is the immutable machine catalogue: which machines exist, which unit
// each belongs to and in which order a unit's process flow shows them.
type Fleet struct {
	units     map[models.Unit]*unitInfo
	byID      map[string]*models.Machine
	seeds     map[string]models.MaintenanceRecord
	scenarios map[string]models.Reading
}

// Load reads a fleet file. An empty path yields the default fleet.
func Load(path string) (*Fleet, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading fleet file: %w", err)
	}
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing fleet file %s: %w", path, err)
	}
	f, err := New(file)
	if err != nil {
		return nil, err
	}
	nuts.L.Infof("[Fleet] Loaded %d machines from %s", len(f.byID), path)
	return f, nil
}

// New validates a fleet definition and builds the catalogue.
func New(file File) (*Fleet, error) {
	f := &Fleet{
		units:     make(map[models.Unit]*unitInfo),
		byID:      make(map[string]*models.Machine),
		seeds:     make(map[string]models.MaintenanceRecord),
		scenarios: make(map[string]models.Reading),
	}
	for _, us := range file.Units {
		unit, err := models.ParseUnit(us.Unit)
		if err != nil {
			return nil, err
		}
		if _, dup := f.units[unit]; dup {
			return nil, fmt.Errorf("unit %s defined twice", unit)
		}
		info := &unitInfo{title: us.Title, flow: us.Flow}
		for i, ms := range us.Machines {
			if ms.ID == "" {
				return nil, fmt.Errorf("machine %d of %s has no id", i, unit)
			}
			if _, dup := f.byID[ms.ID]; dup {
				return nil, fmt.Errorf("machine id %q is not unique", ms.ID)
			}
			m := &models.Machine{
				ID:       ms.ID,
				Unit:     unit,
				Kind:     models.MachineKind(ms.Kind),
				Stage:    ms.Stage,
				Position: i,
			}
			info.machines = append(info.machines, m)
			f.byID[m.ID] = m

			if ms.Maintenance != nil {
				rec, err := ms.Maintenance.record(m.ID)
				if err != nil {
					return nil, err
				}
				f.seeds[m.ID] = rec
			}
			if ms.Scenario != nil {
				f.scenarios[m.ID] = *ms.Scenario
			}
		}
		f.units[unit] = info
	}
	for _, u := range models.Units {
		if _, ok := f.units[u]; !ok {
			return nil, fmt.Errorf("fleet has no %s", u)
		}
	}
	return f, nil
}

func (s MaintenanceSpec) record(id string) (models.MaintenanceRecord, error) {
	due, err := models.ParseDueState(s.Due)
	if err != nil {
		return models.MaintenanceRecord{}, fmt.Errorf("machine %q: %w", id, err)
	}
	spares, err := models.ParseSpareStatus(s.Spares)
	if err != nil {
		return models.MaintenanceRecord{}, fmt.Errorf("machine %q: %w", id, err)
	}
	return models.MaintenanceRecord{MachineID: id, NextJob: s.Next, DueIn: due, SpareStatus: spares}, nil
}

// Lookup finds a machine by id.
func (f *Fleet) Lookup(id string) (*models.Machine, bool) {
	m, ok := f.byID[id]
	return m, ok
}

// Machines returns a unit's machines in process-flow order.
func (f *Fleet) Machines(unit models.Unit) []*models.Machine {
	info, ok := f.units[unit]
	if !ok {
		return nil
	}
	out := make([]*models.Machine, len(info.machines))
	copy(out, info.machines)
	return out
}

// All returns every machine, unit by unit.
func (f *Fleet) All() []*models.Machine {
	out := make([]*models.Machine, 0, len(f.byID))
	for _, u := range models.Units {
		out = append(out, f.Machines(u)...)
	}
	return out
}

// Describe returns the title and process-flow caption of a unit.
func (f *Fleet) Describe(unit models.Unit) (title, flow string) {
	if info, ok := f.units[unit]; ok {
		return info.title, info.flow
	}
	return "", ""
}

// MaintenanceSeeds returns the maintenance records declared in the fleet file.
func (f *Fleet) MaintenanceSeeds() []models.MaintenanceRecord {
	out := make([]models.MaintenanceRecord, 0, len(f.seeds))
	for _, m := range f.All() {
		if rec, ok := f.seeds[m.ID]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// Scenarios returns the fixed readings the simulator serves instead of noise.
func (f *Fleet) Scenarios() map[string]models.Reading {
	out := make(map[string]models.Reading, len(f.scenarios))
	for id, r := range f.scenarios {
		out[id] = r
	}
	return out
}
