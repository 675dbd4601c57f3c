package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	SourceSimulator = "simulator"
	SourceRedis     = "redis"

	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config holds all configuration for the service
type Config struct {
	Server      ServerConfig
	Fleet       FleetConfig
	Telemetry   TelemetryConfig
	Redis       RedisConfig
	MQTT        MQTTConfig
	Influx      InfluxConfig
	Maintenance MaintenanceConfig
	Database    DatabaseConfig
	Monitoring  MonitoringConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// FleetConfig points at the fleet file. An empty path selects the built-in fleet.
type FleetConfig struct {
	File string `mapstructure:"file"`
}

type TelemetryConfig struct {
	Source     string        `mapstructure:"source"`
	StaleAfter time.Duration `mapstructure:"stale_after"`
	Seed       int64         `mapstructure:"seed"`
}

type RedisConfig struct {
	Host      string        `mapstructure:"host"`
	Port      int           `mapstructure:"port"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	TTL       time.Duration `mapstructure:"ttl"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type MQTTConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Broker         string        `mapstructure:"broker"`
	ClientID       string        `mapstructure:"client_id"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	Topic          string        `mapstructure:"topic"`
	QoS            byte          `mapstructure:"qos"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type InfluxConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	URL         string `mapstructure:"url"`
	Token       string `mapstructure:"token"`
	Org         string `mapstructure:"org"`
	Bucket      string `mapstructure:"bucket"`
	Measurement string `mapstructure:"measurement"`
}

type MaintenanceConfig struct {
	Store string `mapstructure:"store"`
	// SeedFromFleet upserts the fleet file's maintenance entries on start.
	SeedFromFleet bool `mapstructure:"seed_from_fleet"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type MonitoringConfig struct {
	EventLog   bool `mapstructure:"event_log"`
	HistoryLen int  `mapstructure:"history_len"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetEnvPrefix("FLEET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")
	viper.SetDefault("server.allowed_origins", []string{"*"})

	viper.SetDefault("fleet.file", "")

	// Telemetry defaults
	viper.SetDefault("telemetry.source", SourceSimulator)
	viper.SetDefault("telemetry.stale_after", "30s")
	viper.SetDefault("telemetry.seed", 0)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.key_prefix", "fleet:reading:")
	viper.SetDefault("redis.ttl", "10m")

	// MQTT defaults
	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("mqtt.client_id", "fleetcommand")
	viper.SetDefault("mqtt.topic", "machine/+/telemetry")
	viper.SetDefault("mqtt.qos", 1)
	viper.SetDefault("mqtt.connect_timeout", "10s")

	// Influx defaults
	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.url", "http://localhost:8086")
	viper.SetDefault("influx.org", "fleet")
	viper.SetDefault("influx.bucket", "telemetry")
	viper.SetDefault("influx.measurement", "machine_reading")

	// Maintenance defaults
	viper.SetDefault("maintenance.store", StoreMemory)
	viper.SetDefault("maintenance.seed_from_fleet", true)

	// Database defaults
	viper.SetDefault("database.postgres.port", 5432)
	viper.SetDefault("database.postgres.sslmode", "disable")
	viper.SetDefault("database.sqlite.path", "fleet.db")

	// Monitoring defaults
	viper.SetDefault("monitoring.event_log", true)
	viper.SetDefault("monitoring.history_len", 100)
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("server port must be positive")
	}
	switch config.Telemetry.Source {
	case SourceSimulator, SourceRedis:
	default:
		return fmt.Errorf("unknown telemetry source %q", config.Telemetry.Source)
	}
	switch config.Maintenance.Store {
	case StoreMemory:
	case StorePostgres:
		if config.Database.Postgres.Host == "" {
			return fmt.Errorf("postgres host is required for the postgres maintenance store")
		}
	case StoreSQLite:
		if config.Database.SQLite.Path == "" {
			return fmt.Errorf("sqlite path is required for the sqlite maintenance store")
		}
	default:
		return fmt.Errorf("unknown maintenance store %q", config.Maintenance.Store)
	}
	if config.MQTT.Enabled && config.MQTT.Broker == "" {
		return fmt.Errorf("mqtt broker is required when mqtt is enabled")
	}
	if config.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt qos must be 0, 1 or 2")
	}
	if config.Influx.Enabled && (config.Influx.URL == "" || config.Influx.Bucket == "") {
		return fmt.Errorf("influx url and bucket are required when influx is enabled")
	}
	return nil
}
