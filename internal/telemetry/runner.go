package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/nerrad567/sensornode/internal/sensor"
)

// Connection is the broker surface the runner drives.
//
// IsConnected and StartConnect are non-blocking; PublishTelemetry drops
// silently when its preconditions fail (see internal/infrastructure/mqtt).
type Connection interface {
	IsConnected() bool
	StartConnect()
	PublishTelemetry(topic string, payload []byte)
}

// LightSensor reads illuminance in lux.
type LightSensor interface {
	ReadLux() (float64, error)
}

// ClimateSensor reads temperature and humidity.
type ClimateSensor interface {
	Read() (sensor.Climate, error)
}

// Logger interface for cycle reporting.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Options configures a Runner.
type Options struct {
	Connection Connection
	Climate    ClimateSensor
	Light      LightSensor

	// Topic is the full telemetry topic (e.g. "Sensores/dados/json").
	Topic string

	// Interval is the fixed cycle period. It must comfortably exceed the
	// sum of the sensors' settling delays (~100ms).
	Interval time.Duration

	// Logger is optional.
	Logger Logger
}

// Runner drives the operational cycle at a fixed period.
type Runner struct {
	conn     Connection
	climate  ClimateSensor
	light    LightSensor
	topic    string
	interval time.Duration
	logger   Logger
}

// NewRunner validates the options and creates a Runner.
func NewRunner(opts Options) (*Runner, error) {
	switch {
	case opts.Connection == nil:
		return nil, errors.New("telemetry: connection is required")
	case opts.Climate == nil:
		return nil, errors.New("telemetry: climate sensor is required")
	case opts.Light == nil:
		return nil, errors.New("telemetry: light sensor is required")
	case opts.Topic == "":
		return nil, errors.New("telemetry: topic is required")
	case opts.Interval <= 0:
		return nil, errors.New("telemetry: interval must be positive")
	}

	return &Runner{
		conn:     opts.Connection,
		climate:  opts.Climate,
		light:    opts.Light,
		topic:    opts.Topic,
		interval: opts.Interval,
		logger:   opts.Logger,
	}, nil
}

// Run executes the cycle until ctx is cancelled.
//
// The first tick runs immediately; subsequent ticks follow at the fixed
// interval. There is no cancellation mid-tick: a tick always runs to
// completion before the context is checked again.
//
// Returns:
//   - error: ctx.Err() once cancelled
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		r.tick()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// tick is one iteration of the operational cycle.
func (r *Runner) tick() {
	if !r.conn.IsConnected() {
		if r.logger != nil {
			r.logger.Warn("broker disconnected, reconnecting")
		}
		r.conn.StartConnect()
		return
	}

	temperature, humidity := r.readClimate()
	illuminance := r.readLight()

	payload := Assemble(temperature, humidity, illuminance)
	r.conn.PublishTelemetry(r.topic, payload.Encode())

	if r.logger != nil {
		r.logger.Debug("cycle complete",
			"temperature", payload.Temperature,
			"humidity", payload.Humidity,
			"illuminance", payload.Illuminance,
		)
	}
}

// readClimate reads the AHT10, substituting invalid readings on failure.
func (r *Runner) readClimate() (temperature, humidity sensor.Reading) {
	climate, err := r.climate.Read()
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("climate read failed, using defaults", "error", err)
		}
		return sensor.Invalid(), sensor.Invalid()
	}
	return sensor.Reading{Value: climate.Temperature, Valid: true},
		sensor.Reading{Value: climate.Humidity, Valid: true}
}

// readLight reads the BH1750, substituting an invalid reading on failure.
func (r *Runner) readLight() sensor.Reading {
	lux, err := r.light.ReadLux()
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("light read failed, using default", "error", err)
		}
		return sensor.Invalid()
	}
	return sensor.Reading{Value: lux, Valid: true}
}
