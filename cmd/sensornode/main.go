// sensornode - environmental telemetry node
//
// This is the main entry point for the sensor node. The node reads an
// AHT10 (temperature/humidity) and a BH1750 (illuminance) over I2C on a
// fixed period, consolidates the readings into one JSON payload and
// publishes it to an MQTT broker under <device_id>/dados/json.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nerrad567/sensornode/internal/bus"
	"github.com/nerrad567/sensornode/internal/infrastructure/config"
	"github.com/nerrad567/sensornode/internal/infrastructure/logging"
	"github.com/nerrad567/sensornode/internal/infrastructure/mqtt"
	"github.com/nerrad567/sensornode/internal/sensor"
	"github.com/nerrad567/sensornode/internal/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// Initial broker connection wait: up to 20 polls of 500ms, matching the
// node's original boot behaviour. Failure here is not fatal; the
// operational loop keeps retrying.
const (
	initialConnectAttempts = 20
	initialConnectPoll     = 500 * time.Millisecond
)

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
//
// Startup fatality policy: only configuration and I2C controller failures
// abort the process - without a bus the node cannot acquire anything.
// Sensor initialisation failures are reported and the node still enters
// its loop; a sensor that comes back simply starts reading again.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting sensor node",
		"version", version,
		"commit", commit,
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

	// Open the I2C bus
	b, err := bus.Open(cfg.Bus.Name)
	if err != nil {
		return fmt.Errorf("opening I2C bus: %w", err)
	}
	defer func() {
		log.Info("closing I2C bus")
		if closeErr := b.Close(); closeErr != nil {
			log.Error("error closing I2C bus", "error", closeErr)
		}
	}()
	log.Info("I2C bus open", "bus", cfg.Bus.Name)

	// Initialise sensors. Failures are reported, not fatal: the payload
	// stays well-formed with default values until the sensor recovers.
	aht10 := sensor.NewAHT10(b, cfg.Bus.AHT10Address)
	if initErr := aht10.Init(); initErr != nil {
		log.Warn("AHT10 initialisation failed", "error", initErr)
	} else {
		log.Info("AHT10 ready", "address", fmt.Sprintf("%#x", cfg.Bus.AHT10Address))
	}

	bh1750 := sensor.NewBH1750(b, cfg.Bus.BH1750Address)
	if initErr := bh1750.Init(); initErr != nil {
		log.Warn("BH1750 initialisation failed", "error", initErr)
	} else {
		log.Info("BH1750 ready", "address", fmt.Sprintf("%#x", cfg.Bus.BH1750Address))
	}

	// MQTT client: first connect attempt is non-blocking, the loop owns
	// reconnection from here on.
	client := mqtt.New(cfg.MQTT, cfg.Device.ID)
	client.SetLogger(log.With("component", "mqtt"))
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := client.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()

	client.StartConnect()
	waitForBroker(ctx, client, log)

	// Operational cycle
	topic := mqtt.Topics{}.Telemetry(cfg.Device.ID, cfg.Telemetry.TopicSuffix)
	runner, err := telemetry.NewRunner(telemetry.Options{
		Connection: client,
		Climate:    aht10,
		Light:      bh1750,
		Topic:      topic,
		Interval:   cfg.GetInterval(),
		Logger:     log.With("component", "telemetry"),
	})
	if err != nil {
		return fmt.Errorf("creating telemetry runner: %w", err)
	}

	log.Info("entering operational loop",
		"topic", topic,
		"interval", cfg.GetInterval(),
	)

	if runErr := runner.Run(ctx); !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("telemetry loop: %w", runErr)
	}

	log.Info("shutdown signal received, cleaning up")
	return nil
}

// waitForBroker gives the initial connection attempt a bounded window so
// the first cycles publish instead of reconnecting. Not connecting here
// is only a warning.
func waitForBroker(ctx context.Context, client *mqtt.Client, log *logging.Logger) {
	for i := 0; i < initialConnectAttempts && !client.IsConnected(); i++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(initialConnectPoll):
		}
	}

	if client.IsConnected() {
		log.Info("MQTT connection established")
	} else {
		log.Warn("broker not reachable yet, reconnection continues in the operational loop")
	}
}

// getConfigPath returns the configuration file path.
// Uses SENSORNODE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("SENSORNODE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
