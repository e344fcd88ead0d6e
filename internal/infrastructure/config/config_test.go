package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
device:
  id: "greenhouse-01"
mqtt:
  broker:
    host: "192.168.1.104"
    port: 4004
  qos: 1
telemetry:
  interval_seconds: 5
  topic_suffix: "dados/json"
logging:
  level: debug
  format: text
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Device.ID != "greenhouse-01" {
		t.Errorf("Device.ID = %q, want %q", cfg.Device.ID, "greenhouse-01")
	}

	if cfg.MQTT.Broker.Host != "192.168.1.104" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "192.168.1.104")
	}

	if cfg.MQTT.Broker.Port != 4004 {
		t.Errorf("MQTT.Broker.Port = %d, want 4004", cfg.MQTT.Broker.Port)
	}

	if cfg.ClientID() != "greenhouse-01_client" {
		t.Errorf("ClientID() = %q, want %q", cfg.ClientID(), "greenhouse-01_client")
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Minimal file: everything should come from defaults.
	cfg, err := Load(writeConfig(t, "device:\n  id: node\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MQTT.QoS != 1 {
		t.Errorf("MQTT.QoS = %d, want 1", cfg.MQTT.QoS)
	}
	if cfg.Telemetry.TopicSuffix != "dados/json" {
		t.Errorf("Telemetry.TopicSuffix = %q, want %q", cfg.Telemetry.TopicSuffix, "dados/json")
	}
	if cfg.Bus.AHT10Address != 0x38 {
		t.Errorf("Bus.AHT10Address = %#x, want 0x38", cfg.Bus.AHT10Address)
	}
	if cfg.Bus.BH1750Address != 0x23 {
		t.Errorf("Bus.BH1750Address = %#x, want 0x23", cfg.Bus.BH1750Address)
	}
	if cfg.GetInterval() != 5*time.Second {
		t.Errorf("GetInterval() = %v, want 5s", cfg.GetInterval())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SENSORNODE_MQTT_HOST", "broker.example.net")
	t.Setenv("SENSORNODE_DEVICE_ID", "env-node")

	cfg, err := Load(writeConfig(t, "device:\n  id: file-node\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MQTT.Broker.Host != "broker.example.net" {
		t.Errorf("MQTT.Broker.Host = %q, want env override", cfg.MQTT.Broker.Host)
	}
	if cfg.Device.ID != "env-node" {
		t.Errorf("Device.ID = %q, want env override", cfg.Device.ID)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(_ *Config) {},
			wantErr: "",
		},
		{
			name:    "empty device id",
			mutate:  func(c *Config) { c.Device.ID = "" },
			wantErr: "device.id is required",
		},
		{
			name:    "device id with slash",
			mutate:  func(c *Config) { c.Device.ID = "a/b" },
			wantErr: "device.id must not contain '/'",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.MQTT.Broker.Port = 0 },
			wantErr: "mqtt.broker.port",
		},
		{
			name:    "invalid qos",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: "mqtt.qos",
		},
		{
			name:    "zero interval",
			mutate:  func(c *Config) { c.Telemetry.IntervalSeconds = 0 },
			wantErr: "telemetry.interval_seconds",
		},
		{
			name:    "empty topic suffix",
			mutate:  func(c *Config) { c.Telemetry.TopicSuffix = "" },
			wantErr: "telemetry.topic_suffix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
