// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shredderfleet/fleetcommand/api"
	"github.com/shredderfleet/fleetcommand/api/resources"
	"github.com/shredderfleet/fleetcommand/internal/classifier"
	"github.com/shredderfleet/fleetcommand/internal/config"
	"github.com/shredderfleet/fleetcommand/internal/database"
	"github.com/shredderfleet/fleetcommand/internal/fleet"
	"github.com/shredderfleet/fleetcommand/internal/fleetservice"
	"github.com/shredderfleet/fleetcommand/internal/models"
	"github.com/shredderfleet/fleetcommand/internal/monitoring"
	"github.com/shredderfleet/fleetcommand/internal/push"
	"github.com/shredderfleet/fleetcommand/internal/repository"
	"github.com/shredderfleet/fleetcommand/internal/repository/cache"
	"github.com/shredderfleet/fleetcommand/internal/repository/influx"
	"github.com/shredderfleet/fleetcommand/internal/repository/memory"
	"github.com/shredderfleet/fleetcommand/internal/repository/postgres"
	"github.com/shredderfleet/fleetcommand/internal/telemetry"
	nuts "github.com/vaudience/go-nuts"
	"golang.org/x/sync/errgroup"
)

const startupTimeout = 10 * time.Second

// Server represents our HTTP server
type Server struct {
	config       *config.Config
	srv          *http.Server
	fleetservice *fleetservice.FleetService
	monitoring   *monitoring.Service
	push         *push.Hub
	ingestor     *telemetry.Ingestor
	checks       map[string]func(context.Context) error
	closers      []func()
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
		checks: make(map[string]func(context.Context) error),
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Start wires the collaborators, serves HTTP and runs telemetry ingestion
// until SIGINT or SIGTERM.
func (s *Server) Start() error {
	defer s.close()
	if err := s.initialize(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})
	if s.ingestor != nil {
		g.Go(func() error {
			return s.ingestor.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) shutdown() error {
	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	s.push.Close()
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	return nil
}

func (s *Server) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// initialize builds the service graph from the configuration
func (s *Server) initialize() error {
	s.monitoring = monitoring.NewService(monitoring.Config{
		EventLog:   s.config.Monitoring.EventLog,
		HistoryLen: s.config.Monitoring.HistoryLen,
	})
	s.push = push.NewHub(s.config.Server.AllowedOrigins)

	f, err := fleet.Load(s.config.Fleet.File)
	if err != nil {
		return fmt.Errorf("error loading fleet: %w", err)
	}

	sim := telemetry.NewSimulator(f, f.Scenarios(), s.config.Telemetry.Seed)
	var (
		sensors repository.ReadingSource   = sim
		trends  repository.TrendRepository = sim
		sinks   []repository.ReadingSink
	)

	if s.config.Telemetry.Source == config.SourceRedis {
		client := cache.NewRedisClient(s.config.Redis)
		s.closers = append(s.closers, func() { client.Close() })
		store := cache.NewReadingStore(client, s.config.Redis, s.config.Telemetry.StaleAfter)
		sensors = store
		sinks = append(sinks, store)
		s.checks["redis"] = store.Ping
		nuts.L.Infof("[Server] Reading sensors from redis %s", s.config.Redis.Addr())
	} else {
		nuts.L.Infof("[Server] Reading sensors from the simulator")
	}

	if s.config.Influx.Enabled {
		repo := influx.NewTrendRepository(s.config.Influx)
		s.closers = append(s.closers, repo.Close)
		trends = repo
		sinks = append(sinks, repo)
		s.checks["influx"] = repo.Health
	}

	maintenance, err := s.initMaintenance(f)
	if err != nil {
		return err
	}

	s.fleetservice = fleetservice.New(f, sensors, maintenance, trends)
	s.fleetservice.Events = s.monitoring
	if err := s.fleetservice.Validate(); err != nil {
		return err
	}
	if err := s.fleetservice.Nav.OnChange("push", s.onNavChanged); err != nil {
		return err
	}

	if s.config.MQTT.Enabled {
		if len(sinks) == 0 {
			nuts.L.Warnf("[Server] MQTT ingestion enabled without redis or influx; readings are only pushed")
		}
		s.ingestor = telemetry.NewIngestor(s.config.MQTT, repository.Fanout(sinks...), f)
		s.ingestor.OnReading = s.onReading
	}

	res := resources.NewResources(s.fleetservice, s.monitoring, s.push)
	for name, check := range s.checks {
		res.AddHealthCheck(name, check)
	}
	s.srv.Handler = api.NewRouter(res, s.config.Server.AllowedOrigins)
	return nil
}

func (s *Server) onNavChanged(session string, state models.NavState) {
	s.push.BroadcastNav(session, state)
	s.monitoring.RecordEvent("nav_changed", map[string]string{
		"view":    string(state.View),
		"machine": state.SelectedMachine,
	})
}

func (s *Server) onReading(machineID string, r models.Reading) {
	status := classifier.Classify(r)
	s.push.BroadcastReading(machineID, status, r)
	s.monitoring.RecordEvent("reading_ingested", map[string]string{
		"machine_id": machineID,
		"status":     string(status),
	})
}

// initMaintenance opens the configured maintenance store and seeds it from
// the fleet file when asked to.
func (s *Server) initMaintenance(f *fleet.Fleet) (repository.MaintenanceRepository, error) {
	seeds := f.MaintenanceSeeds()
	if !s.config.Maintenance.SeedFromFleet {
		seeds = nil
	}

	var db database.DB
	var err error
	switch s.config.Maintenance.Store {
	case config.StoreMemory:
		nuts.L.Infof("[Server] Maintenance records in memory (%d seeded)", len(seeds))
		return memory.NewMaintenanceStore(seeds...), nil
	case config.StorePostgres:
		db, err = database.NewPostgresDB(s.config.Database.Postgres)
	case config.StoreSQLite:
		db, err = database.NewSQLiteDB(s.config.Database.SQLite.Path)
	default:
		return nil, fmt.Errorf("unknown maintenance store %q", s.config.Maintenance.Store)
	}
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, func() { db.Close() })
	s.checks["database"] = db.Ping

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo, err := postgres.NewMaintenanceRepository(db)
	if err != nil {
		return nil, err
	}
	if len(seeds) > 0 {
		if err := repo.SeedMaintenanceRecords(ctx, seeds); err != nil {
			return nil, err
		}
		nuts.L.Infof("[Server] Seeded %d maintenance records", len(seeds))
	}
	return repo, nil
}
