// FilePath: internal/repository/influx/influx.trend.go
package influx

import (
	"context"
	"fmt"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/shredderfleet/fleetcommand/internal/config"
	"github.com/shredderfleet/fleetcommand/internal/errors"
	"github.com/shredderfleet/fleetcommand/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const machineTag = "machineId"

// TrendRepo writes every ingested reading as a point and answers trend
// queries with Flux.
type TrendRepo struct {
	client      influxdb2.Client
	write       api.WriteAPIBlocking
	query       api.QueryAPI
	bucket      string
	measurement string
}

// NewTrendRepository creates the InfluxDB client. Caller should call Close() when done.
func NewTrendRepository(cfg config.InfluxConfig) *TrendRepo {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	nuts.L.Infof("[Influx] Using %s bucket %s", cfg.URL, cfg.Bucket)
	return &TrendRepo{
		client:      client,
		write:       client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		query:       client.QueryAPI(cfg.Org),
		bucket:      cfg.Bucket,
		measurement: cfg.Measurement,
	}
}

// Close releases the InfluxDB client.
func (r *TrendRepo) Close() {
	r.client.Close()
}

// Health checks that InfluxDB is reachable.
func (r *TrendRepo) Health(ctx context.Context) error {
	_, err := r.client.Health(ctx)
	return err
}

func (r *TrendRepo) StoreReading(ctx context.Context, machineID string, reading models.Reading) error {
	at := reading.ObservedAt
	if at.IsZero() {
		at = time.Now()
	}
	p := influxdb2.NewPointWithMeasurement(r.measurement).
		AddTag(machineTag, machineID).
		AddField("amps", reading.Amps).
		AddField("vibration", reading.Vibration).
		AddField("temperature", reading.Temperature).
		AddField("jamCount", reading.JamCount).
		SetTime(at)
	if err := r.write.WritePoint(ctx, p); err != nil {
		return errors.NewDatabaseError("influx write", err)
	}
	return nil
}

func (r *TrendRepo) GetTrend(ctx context.Context, machineID string, window time.Duration, points int) ([]models.TrendPoint, error) {
	result, err := r.query.Query(ctx, trendQuery(r.bucket, r.measurement, machineID, window, points))
	if err != nil {
		return nil, errors.NewUnavailableError("trend history unavailable", err)
	}
	defer result.Close()

	trend := []models.TrendPoint{}
	for result.Next() {
		rec := result.Record()
		trend = append(trend, models.TrendPoint{
			Time:      rec.Time(),
			Amps:      toFloat(rec.ValueByKey("amps")),
			Vibration: toFloat(rec.ValueByKey("vibration")),
		})
	}
	if err := result.Err(); err != nil {
		return nil, errors.NewUnavailableError("trend history unreadable", err)
	}
	return trend, nil
}

// trendQuery pivots amps and vibration into one row per timestamp and keeps
// the newest points rows.
func trendQuery(bucket, measurement, machineID string, window time.Duration, points int) string {
	return fmt.Sprintf(`from(bucket: %s)
  |> range(start: -%ds)
  |> filter(fn: (r) => r._measurement == %s and r.%s == %s)
  |> filter(fn: (r) => r._field == "amps" or r._field == "vibration")
  |> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
  |> group()
  |> sort(columns: ["_time"])
  |> tail(n: %d)`,
		fluxString(bucket), int64(window.Seconds()), fluxString(measurement),
		machineTag, fluxString(machineID), points)
}

var fluxEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `${`, `\${`)

func fluxString(s string) string {
	return `"` + fluxEscaper.Replace(s) + `"`
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return 0
}
