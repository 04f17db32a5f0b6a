// GeoControl Core - Geographical Monitoring Platform
//
// This is the main entry point for the GeoControl Core application.
// GeoControl manages a hierarchy of monitoring networks, field gateways,
// and sensors, and stores the measurements those sensors report. It is
// designed for hydrogeological surveillance deployments where readings
// arrive over unreliable links and outlier detection matters.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/geocontrol/geocontrol-core/migrations"

	"github.com/geocontrol/geocontrol-core/internal/api"
	"github.com/geocontrol/geocontrol-core/internal/audit"
	"github.com/geocontrol/geocontrol-core/internal/auth"
	"github.com/geocontrol/geocontrol-core/internal/infrastructure/config"
	"github.com/geocontrol/geocontrol-core/internal/infrastructure/database"
	"github.com/geocontrol/geocontrol-core/internal/infrastructure/influxdb"
	"github.com/geocontrol/geocontrol-core/internal/infrastructure/logging"
	"github.com/geocontrol/geocontrol-core/internal/infrastructure/mqtt"
	"github.com/geocontrol/geocontrol-core/internal/ingest"
	"github.com/geocontrol/geocontrol-core/internal/inventory"
	"github.com/geocontrol/geocontrol-core/internal/measurement"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting GeoControl Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Repositories
	invRepo := inventory.NewSQLiteRepository(db.DB)
	measRepo := measurement.NewSQLiteRepository(db.DB)
	userRepo := auth.NewUserRepository(db.DB)
	auditRepo := audit.NewSQLiteRepository(db.DB)

	// Seed the first admin account on an empty users table
	seeded, err := auth.SeedAdmin(ctx,
		userRepo,
		cfg.Security.AdminSeed.Username,
		cfg.Security.AdminSeed.Password,
		log.Logger,
	)
	if err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}
	if seeded != "" {
		log.Info("admin account seeded", "username", seeded)
	}

	// Connect to InfluxDB (optional measurement mirror)
	var influxClient *influxdb.Client
	var mirror measurement.Mirror
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		mirror = &influxMirror{client: influxClient}
	} else {
		log.Info("InfluxDB mirroring disabled")
	}

	measSvc := measurement.NewService(invRepo, measRepo, mirror, log)

	// Connect to MQTT broker and start ingestion (optional)
	var mqttClient *mqtt.Client
	if cfg.Ingest.Enabled {
		mqttClient, err = mqtt.Connect(cfg.Ingest)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.Ingest.Broker.Host, cfg.Ingest.Broker.Port),
			"client_id", cfg.Ingest.Broker.ClientID,
		)

		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		ingestSvc := ingest.NewService(cfg.Ingest, mqttClient, measSvc, log)
		if startErr := ingestSvc.Start(); startErr != nil {
			return fmt.Errorf("starting measurement ingestion: %w", startErr)
		}
		defer func() {
			log.Info("stopping measurement ingestion")
			if stopErr := ingestSvc.Stop(); stopErr != nil {
				log.Error("error stopping ingestion", "error", stopErr)
			}
		}()
	} else {
		log.Info("MQTT ingestion disabled")
	}

	// Start the REST API
	server, err := api.New(api.Deps{
		Config:       cfg.API,
		Security:     cfg.Security,
		Logger:       log,
		Inventory:    invRepo,
		Measurements: measSvc,
		Users:        userRepo,
		Audit:        auditRepo,
		DB:           db,
		Version:      version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		log.Info("stopping API server")
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error stopping API server", "error", closeErr)
		}
	}()
	log.Info("API server started",
		"host", cfg.API.Host,
		"port", cfg.API.Port,
	)

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. MQTT ingestion and client (if enabled)
	// 3. InfluxDB (if enabled)
	// 4. Database

	log.Info("GeoControl Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses GEOCONTROL_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("GEOCONTROL_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
// mqttClient and influxClient may be nil when the feature is disabled.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}

// influxMirror adapts the InfluxDB client to the measurement.Mirror
// interface. Writes are batched and asynchronous, so the adapter never
// returns an error; write failures surface through SetOnError.
type influxMirror struct {
	client *influxdb.Client
}

// WriteMeasurement implements measurement.Mirror.
func (m *influxMirror) WriteMeasurement(_ context.Context, networkCode, gatewayMac, sensorMac string, reading measurement.Measurement) error {
	m.client.WriteReading(networkCode, gatewayMac, sensorMac, reading.Value, reading.CreatedAt)
	return nil
}
