// FilePath: internal/telemetry/simulator.go
package telemetry

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/models"
)

// Healthy operating ranges the simulator draws from.
const (
	minAmps, maxAmps           = 380, 420
	minVibration, maxVibration = 2.1, 3.5
	minTemp, maxTemp           = 60, 75

	trendAmpsSigma      = 10.0
	trendVibrationSigma = 0.5
)

// Directory resolves machine ids against the fleet.
type Directory interface {
	Lookup(id string) (*models.Machine, bool)
}

// Simulator is a ReadingSource and TrendRepository that invents plausible
// data for every machine of the fleet. Machines with a scenario always report
// the scenario reading.
type Simulator struct {
	mu        sync.Mutex
	rng       *rand.Rand
	dir       Directory
	scenarios map[string]models.Reading
	now       func() time.Time
}

// NewSimulator seeds from the clock when seed is 0.
func NewSimulator(dir Directory, scenarios map[string]models.Reading, seed int64) *Simulator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if scenarios == nil {
		scenarios = map[string]models.Reading{}
	}
	return &Simulator{
		rng:       rand.New(rand.NewSource(seed)),
		dir:       dir,
		scenarios: scenarios,
		now:       time.Now,
	}
}

func (s *Simulator) ReadSensors(ctx context.Context, machineID string) (models.Reading, error) {
	if err := ctx.Err(); err != nil {
		return models.Reading{}, errors.NewSensorUnavailableError(machineID, err)
	}
	if _, ok := s.dir.Lookup(machineID); !ok {
		return models.Reading{}, errors.NewSensorUnavailableError(machineID, fmt.Errorf("no sensor wired"))
	}
	if r, ok := s.scenarios[machineID]; ok {
		r.ObservedAt = s.now()
		return r, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Reading{
		Amps:        float64(minAmps + s.rng.Intn(maxAmps-minAmps)),
		Vibration:   minVibration + s.rng.Float64()*(maxVibration-minVibration),
		Temperature: float64(minTemp + s.rng.Intn(maxTemp-minTemp)),
		JamCount:    0,
		ObservedAt:  s.now(),
	}, nil
}

// GetTrend scatters points samples around the current reading, one per
// window/points step, ending now.
func (s *Simulator) GetTrend(ctx context.Context, machineID string, window time.Duration, points int) ([]models.TrendPoint, error) {
	current, err := s.ReadSensors(ctx, machineID)
	if err != nil {
		return nil, err
	}
	if points <= 0 {
		return []models.TrendPoint{}, nil
	}
	step := window / time.Duration(points)
	end := current.ObservedAt

	s.mu.Lock()
	defer s.mu.Unlock()
	trend := make([]models.TrendPoint, points)
	for i := range trend {
		trend[i] = models.TrendPoint{
			Time:      end.Add(-time.Duration(points-1-i) * step),
			Amps:      current.Amps + s.rng.NormFloat64()*trendAmpsSigma,
			Vibration: current.Vibration + s.rng.NormFloat64()*trendVibrationSigma,
		}
	}
	return trend, nil
}
