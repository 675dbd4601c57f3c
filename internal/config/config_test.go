package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, SourceSimulator, cfg.Telemetry.Source)
	assert.Equal(t, 30*time.Second, cfg.Telemetry.StaleAfter)
	assert.Equal(t, StoreMemory, cfg.Maintenance.Store)
	assert.True(t, cfg.Maintenance.SeedFromFleet)
	assert.Equal(t, "machine/+/telemetry", cfg.MQTT.Topic)
	assert.Equal(t, byte(1), cfg.MQTT.QoS)
	assert.False(t, cfg.MQTT.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("FLEET_SERVER__PORT", "9191")
	t.Setenv("FLEET_TELEMETRY__SOURCE", "redis")
	t.Setenv("FLEET_TELEMETRY__STALE_AFTER", "2m")
	t.Setenv("FLEET_MAINTENANCE__STORE", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, SourceRedis, cfg.Telemetry.Source)
	assert.Equal(t, 2*time.Minute, cfg.Telemetry.StaleAfter)
	assert.Equal(t, StoreSQLite, cfg.Maintenance.Store)
	assert.Equal(t, "fleet.db", cfg.Database.SQLite.Path)
}

func TestValidateConfig(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:      ServerConfig{Port: 8080},
			Telemetry:   TelemetryConfig{Source: SourceSimulator},
			Maintenance: MaintenanceConfig{Store: StoreMemory},
		}
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "port"},
		{"unknown source", func(c *Config) { c.Telemetry.Source = "modbus" }, "telemetry source"},
		{"unknown store", func(c *Config) { c.Maintenance.Store = "csv" }, "maintenance store"},
		{"postgres without host", func(c *Config) { c.Maintenance.Store = StorePostgres }, "postgres host"},
		{"sqlite without path", func(c *Config) { c.Maintenance.Store = StoreSQLite }, "sqlite path"},
		{"mqtt without broker", func(c *Config) { c.MQTT.Enabled = true }, "mqtt broker"},
		{"mqtt qos", func(c *Config) { c.MQTT.QoS = 3 }, "qos"},
		{"influx without bucket", func(c *Config) { c.Influx = InfluxConfig{Enabled: true, URL: "http://influx:8086"} }, "influx"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := validateConfig(&cfg)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
