// FilePath: internal/repository/cache/cache.reading.go
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shredderfleet/fleetcommand/internal/config"
	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const (
	fieldAmps        = "amps"
	fieldVibration   = "vibration"
	fieldTemperature = "temperature"
	fieldJamCount    = "jamCount"
	fieldObservedAt  = "observedAt"
)

// ReadingStore keeps the latest reading of each machine as a Redis hash.
// It is both the ingest sink and the sensor source of the views.
type ReadingStore struct {
	client     *redis.Client
	prefix     string
	ttl        time.Duration
	staleAfter time.Duration
	now        func() time.Time
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewReadingStore(client *redis.Client, cfg config.RedisConfig, staleAfter time.Duration) *ReadingStore {
	return &ReadingStore{
		client:     client,
		prefix:     cfg.KeyPrefix,
		ttl:        cfg.TTL,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

func (s *ReadingStore) key(machineID string) string {
	return s.prefix + machineID
}

func (s *ReadingStore) StoreReading(ctx context.Context, machineID string, r models.Reading) error {
	if r.ObservedAt.IsZero() {
		r.ObservedAt = s.now()
	}
	key := s.key(machineID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, encodeReading(r))
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return errors.NewDatabaseError("failed to store reading for "+machineID, err)
	}
	return nil
}

func (s *ReadingStore) ReadSensors(ctx context.Context, machineID string) (models.Reading, error) {
	fields, err := s.client.HGetAll(ctx, s.key(machineID)).Result()
	if err != nil {
		return models.Reading{}, errors.NewSensorUnavailableError(machineID, err)
	}
	if len(fields) == 0 {
		return models.Reading{}, errors.NewSensorUnavailableError(machineID, fmt.Errorf("no reading cached"))
	}
	r, err := decodeReading(fields)
	if err != nil {
		nuts.L.Warnf("[ReadingStore] Corrupt reading for %s: %v", machineID, err)
		return models.Reading{}, errors.NewSensorUnavailableError(machineID, err)
	}
	if s.staleAfter > 0 && s.now().Sub(r.ObservedAt) > s.staleAfter {
		return models.Reading{}, errors.NewSensorUnavailableError(machineID,
			fmt.Errorf("last reading at %s is stale", r.ObservedAt.Format(time.RFC3339)))
	}
	return r, nil
}

// Ping reports whether Redis is reachable.
func (s *ReadingStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func encodeReading(r models.Reading) map[string]interface{} {
	return map[string]interface{}{
		fieldAmps:        strconv.FormatFloat(r.Amps, 'f', -1, 64),
		fieldVibration:   strconv.FormatFloat(r.Vibration, 'f', -1, 64),
		fieldTemperature: strconv.FormatFloat(r.Temperature, 'f', -1, 64),
		fieldJamCount:    strconv.Itoa(r.JamCount),
		fieldObservedAt:  r.ObservedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeReading(fields map[string]string) (models.Reading, error) {
	var r models.Reading
	var err error
	floats := []struct {
		name string
		dst  *float64
	}{
		{fieldAmps, &r.Amps},
		{fieldVibration, &r.Vibration},
		{fieldTemperature, &r.Temperature},
	}
	for _, f := range floats {
		raw, ok := fields[f.name]
		if !ok {
			return r, fmt.Errorf("field %s missing", f.name)
		}
		if *f.dst, err = strconv.ParseFloat(raw, 64); err != nil {
			return r, fmt.Errorf("field %s: %w", f.name, err)
		}
	}
	if r.JamCount, err = strconv.Atoi(fields[fieldJamCount]); err != nil {
		return r, fmt.Errorf("field %s: %w", fieldJamCount, err)
	}
	if r.JamCount < 0 {
		return r, fmt.Errorf("negative jam count %d", r.JamCount)
	}
	if raw, ok := fields[fieldObservedAt]; ok {
		if r.ObservedAt, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return r, fmt.Errorf("field %s: %w", fieldObservedAt, err)
		}
	}
	return r, nil
}
