package mqtt

import (
	"crypto/tls"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/sensornode/internal/infrastructure/config"
)

// Connection constants.
const (
	// defaultConnectTimeout is the maximum time paho spends on a single
	// connect attempt before failing it.
	defaultConnectTimeout = 10 * time.Second

	// defaultPublishTimeout bounds the wait for the graceful offline
	// status on Close.
	defaultPublishTimeout = 5 * time.Second

	// defaultDisconnectQuiesce is the time to wait for pending operations on disconnect.
	defaultDisconnectQuiesce = 1000 // milliseconds

	// defaultKeepAlive is the keepalive interval for the connection.
	defaultKeepAlive = 30 * time.Second

	// defaultPingTimeout is how long to wait for a PINGRESP before
	// declaring the connection lost.
	defaultPingTimeout = 10 * time.Second

	// statusQoS is the QoS for status/LWT messages.
	statusQoS = 1

	// tlsMinVersion is the minimum TLS version for secure connections.
	tlsMinVersion = tls.VersionTLS12
)

// buildClientOptions creates paho MQTT options from node config.
//
// This configures:
//   - Broker URL (tcp:// or ssl:// based on TLS setting)
//   - Client ID (<device_id>_client)
//   - Authentication credentials (if provided)
//   - Clean session mode
//
// Auto-reconnect and connect-retry are deliberately OFF: the telemetry
// loop re-invokes StartConnect on every tick it finds the client
// disconnected, and that loop must remain the single owner of the
// reconnection policy. Note this means reconnect attempts are paced only
// by the loop period, with no backoff.
func buildClientOptions(cfg config.MQTTConfig, clientID string) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()

	// Broker URL
	scheme := "tcp"
	if cfg.Broker.TLS {
		scheme = "ssl"
	}
	brokerURL := fmt.Sprintf("%s://%s:%d", scheme, cfg.Broker.Host, cfg.Broker.Port)
	opts.AddBroker(brokerURL)

	// Client identification
	opts.SetClientID(clientID)

	// Authentication (if credentials provided)
	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}

	// Clean session - start fresh on connect (no persistent session on broker)
	opts.SetCleanSession(true)

	// Reconnection is scheduler-driven, not paho-driven.
	opts.SetAutoReconnect(false)
	opts.SetConnectRetry(false)

	// Connection timeout
	opts.SetConnectTimeout(defaultConnectTimeout)

	// Keepalive - detects dead connections between ticks
	opts.SetKeepAlive(defaultKeepAlive)
	opts.SetPingTimeout(defaultPingTimeout)

	// TLS configuration if enabled
	if cfg.Broker.TLS {
		opts.SetTLSConfig(&tls.Config{
			MinVersion: tlsMinVersion,
		})
	}

	return opts
}

// configureLWT sets up Last Will and Testament on the status topic.
//
// The LWT message is published by the broker if the node disconnects
// unexpectedly (crash, Wi-Fi drop, power loss), so consumers can tell a
// silent node from a dead one.
func configureLWT(opts *pahomqtt.ClientOptions, statusTopic, clientID string) {
	willPayload := fmt.Sprintf(
		`{"status":"offline","client_id":"%s","reason":"unexpected_disconnect"}`,
		clientID,
	)
	opts.SetWill(statusTopic, willPayload, statusQoS, true)
}

// buildOnlinePayload creates the JSON payload for online status messages.
func buildOnlinePayload(clientID string) string {
	return fmt.Sprintf(`{"status":"online","client_id":"%s"}`, clientID)
}

// buildOfflinePayload creates the JSON payload for graceful offline status.
func buildOfflinePayload(clientID string) string {
	return fmt.Sprintf(`{"status":"offline","client_id":"%s","reason":"graceful_shutdown"}`, clientID)
}
