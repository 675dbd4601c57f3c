package classifier

import (
	"math/rand"
	"testing"

	"github.com/shredderfleet/fleetcommand/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		reading models.Reading
		want    models.MachineStatus
	}{
		{"healthy", models.Reading{Amps: 400, Vibration: 2.8, Temperature: 68}, models.StatusRunning},
		{"high vibration", models.Reading{Amps: 450, Vibration: 12.5, Temperature: 88}, models.StatusCritical},
		{"vibration exactly at limit", models.Reading{Amps: 400, Vibration: 8.0}, models.StatusRunning},
		{"stalled with jams", models.Reading{Amps: 0, Vibration: 2.9, JamCount: 4}, models.StatusJammed},
		{"planned stop", models.Reading{Amps: 0, Vibration: 0, JamCount: 0}, models.StatusRunning},
		{"jams while motor runs", models.Reading{Amps: 390, Vibration: 3, JamCount: 2}, models.StatusRunning},
		{"vibration beats jam", models.Reading{Amps: 0, Vibration: 9.1, JamCount: 3}, models.StatusCritical},
		{"hot but calm", models.Reading{Amps: 400, Vibration: 3, Temperature: 140}, models.StatusRunning},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.reading))
		})
	}
}

func TestClassifyProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		r := models.Reading{
			Amps:        float64(rng.Intn(3)) * rng.Float64() * 500,
			Vibration:   rng.Float64() * 16,
			Temperature: rng.Float64() * 120,
			JamCount:    rng.Intn(3),
		}
		got := Classify(r)
		switch {
		case r.Vibration > 8.0:
			assert.Equal(t, models.StatusCritical, got, "%+v", r)
		case r.Amps == 0 && r.JamCount > 0:
			assert.Equal(t, models.StatusJammed, got, "%+v", r)
		default:
			assert.Equal(t, models.StatusRunning, got, "%+v", r)
		}
		if r.Amps == 0 && r.JamCount == 0 {
			assert.NotEqual(t, models.StatusJammed, got)
		}
		assert.Equal(t, got, Classify(r), "classification must be deterministic")
	}
}

func TestAssessVitals(t *testing.T) {
	assert.Equal(t, models.Vitals{Load: models.LoadNormal, Vibration: models.VibrationNormal},
		AssessVitals(models.Reading{Amps: 440, Vibration: 8.0}))
	assert.Equal(t, models.Vitals{Load: models.LoadHigh, Vibration: models.VibrationCritical},
		AssessVitals(models.Reading{Amps: 450, Vibration: 12.5}))
}
