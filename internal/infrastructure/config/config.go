package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the sensor node.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Device    DeviceConfig    `yaml:"device"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	Bus       BusConfig       `yaml:"bus"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DeviceConfig identifies this node. The ID is used as the topic prefix
// and to derive the MQTT client identifier on the wire (<id>_client).
// It is read-only for the lifetime of the process.
type DeviceConfig struct {
	ID string `yaml:"id"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Broker MQTTBrokerConfig `yaml:"broker"`
	Auth   MQTTAuthConfig   `yaml:"auth"`
	QoS    int              `yaml:"qos"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	TLS  bool   `yaml:"tls"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// BusConfig contains I2C bus settings.
//
// Name selects the bus by name or number (e.g. "1" or "/dev/i2c-1");
// an empty string opens the platform's default bus.
type BusConfig struct {
	Name          string `yaml:"name"`
	AHT10Address  uint16 `yaml:"aht10_address"`
	BH1750Address uint16 `yaml:"bh1750_address"`
}

// TelemetryConfig contains the operational cycle settings.
type TelemetryConfig struct {
	// IntervalSeconds is the fixed period of the acquire/publish loop.
	IntervalSeconds int `yaml:"interval_seconds"`

	// TopicSuffix is appended to the device ID to form the publish topic
	// (e.g. "dados/json" -> "<device_id>/dados/json").
	TopicSuffix string `yaml:"topic_suffix"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: SENSORNODE_SECTION_KEY
// For example: SENSORNODE_MQTT_HOST, SENSORNODE_DEVICE_ID
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
//
// The defaults mirror the constants the node shipped with: QoS 1
// publishing, the "dados/json" topic suffix, a 5-second loop and the
// datasheet I2C addresses for both sensors.
func defaultConfig() *Config {
	return &Config{
		Device: DeviceConfig{
			ID: "Sensores",
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host: "localhost",
				Port: 1883,
			},
			QoS: 1,
		},
		Bus: BusConfig{
			Name:          "",
			AHT10Address:  0x38,
			BH1750Address: 0x23,
		},
		Telemetry: TelemetryConfig{
			IntervalSeconds: 5,
			TopicSuffix:     "dados/json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: SENSORNODE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Device
	if v := os.Getenv("SENSORNODE_DEVICE_ID"); v != "" {
		cfg.Device.ID = v
	}

	// MQTT
	if v := os.Getenv("SENSORNODE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("SENSORNODE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("SENSORNODE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// Bus
	if v := os.Getenv("SENSORNODE_BUS_NAME"); v != "" {
		cfg.Bus.Name = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Device validation - the ID forms the topic prefix and client ID,
	// so an empty or slash-containing value would corrupt the topic tree.
	if c.Device.ID == "" {
		errs = append(errs, "device.id is required")
	} else if strings.Contains(c.Device.ID, "/") {
		errs = append(errs, "device.id must not contain '/'")
	}

	// MQTT validation
	if c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required")
	}
	if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
		errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	// Telemetry validation
	if c.Telemetry.IntervalSeconds < 1 {
		errs = append(errs, "telemetry.interval_seconds must be at least 1")
	}
	if c.Telemetry.TopicSuffix == "" {
		errs = append(errs, "telemetry.topic_suffix is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// ClientID returns the MQTT client identifier for this node.
// The wire format is fixed: <device_id>_client.
func (c *Config) ClientID() string {
	return c.Device.ID + "_client"
}

// GetInterval returns the telemetry loop period as a Duration.
func (c *Config) GetInterval() time.Duration {
	return time.Duration(c.Telemetry.IntervalSeconds) * time.Second
}
