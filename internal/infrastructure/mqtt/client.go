package mqtt

import (
	"sync"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/sensornode/internal/infrastructure/config"
)

// ConnectionState is the broker connection lifecycle state.
//
// It is owned exclusively by the Client; the telemetry loop reads it
// (via IsConnected) and never mutates it.
type ConnectionState int

// Connection lifecycle states.
const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
)

// String returns the state name for logging.
func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Logger interface for optional logging support.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Client wraps paho.mqtt.golang with the node's connection state machine
// and single-in-flight publish gating.
//
// Thread Safety:
//   - All methods are safe for concurrent use. Paho delivers its
//     callbacks on internal goroutines, so shared state (connection
//     state, in-flight token) is mutex-guarded.
type Client struct {
	cfg      config.MQTTConfig
	clientID string
	deviceID string

	mu       sync.RWMutex
	client   pahomqtt.Client
	state    ConnectionState
	inFlight bool

	// newClient builds the underlying paho client.
	// Replaceable in tests to inject a fake transport.
	newClient func(*pahomqtt.ClientOptions) pahomqtt.Client

	logger   Logger
	loggerMu sync.RWMutex
}

// New creates a Client for the given broker configuration.
//
// No connection attempt is made; the client starts Disconnected and
// IsConnected reports false until StartConnect has run and the broker
// has accepted. The client identifier on the wire is <device_id>_client.
//
// Parameters:
//   - cfg: MQTT configuration from config.yaml
//   - deviceID: Device identifier, also the topic prefix
//
// Returns:
//   - *Client: Client ready for StartConnect
func New(cfg config.MQTTConfig, deviceID string) *Client {
	return &Client{
		cfg:       cfg,
		clientID:  deviceID + "_client",
		deviceID:  deviceID,
		state:     StateDisconnected,
		newClient: pahomqtt.NewClient,
	}
}

// StartConnect allocates a fresh paho client and issues a non-blocking
// connect request, transitioning to Connecting.
//
// The call returns immediately; the resulting transition arrives later
// through the connection callbacks (accepted → Connected, anything else
// → Disconnected with the failure reported). Replacing the client also
// clears the in-flight publish token: an acknowledgment for the old
// client context can never arrive.
//
// Paho auto-reconnect is disabled, so a lost connection stays lost until
// the telemetry loop calls StartConnect again on its next tick.
func (c *Client) StartConnect() {
	opts := buildClientOptions(c.cfg, c.clientID)
	configureLWT(opts, Topics{}.Status(c.deviceID), c.clientID)

	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		c.handleConnectionStatus()
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		c.handleConnectionLost(err)
	})

	next := c.newClient(opts)

	c.mu.Lock()
	old := c.client
	c.client = next
	c.state = StateConnecting
	c.inFlight = false
	c.mu.Unlock()

	if old != nil {
		old.Disconnect(0)
	}

	if logger := c.getLogger(); logger != nil {
		logger.Debug("MQTT connect requested",
			"broker", c.cfg.Broker.Host,
			"port", c.cfg.Broker.Port,
			"client_id", c.clientID,
		)
	}

	token := next.Connect()
	go func() {
		<-token.Done()
		if err := token.Error(); err != nil {
			c.handleConnectFailed(err)
		}
		// Success is reported through the OnConnect handler.
	}()
}

// handleConnectionStatus is the "accepted" connection-status callback.
func (c *Client) handleConnectionStatus() {
	c.mu.Lock()
	c.state = StateConnected
	client := c.client
	c.mu.Unlock()

	if logger := c.getLogger(); logger != nil {
		logger.Info("MQTT connected", "client_id", c.clientID)
	}

	// Retained online status so subscribers see the node come up.
	// Fire and forget: this is the status channel, not the telemetry
	// flow, so it does not hold the publish token.
	if client != nil {
		client.Publish(Topics{}.Status(c.deviceID), statusQoS, true, buildOnlinePayload(c.clientID))
	}
}

// handleConnectFailed is the connection-status callback for any
// non-accepted code. The code is reported, never retried here - retry is
// the telemetry loop's responsibility.
func (c *Client) handleConnectFailed(err error) {
	c.mu.Lock()
	// Only demote if this attempt is still the current one; a newer
	// StartConnect may already have replaced the client.
	if c.state == StateConnecting {
		c.state = StateDisconnected
	}
	c.mu.Unlock()

	if logger := c.getLogger(); logger != nil {
		logger.Warn("MQTT connection rejected", "error", err)
	}
}

// handleConnectionLost is invoked when an established connection drops.
func (c *Client) handleConnectionLost(err error) {
	c.mu.Lock()
	c.state = StateDisconnected
	c.mu.Unlock()

	if logger := c.getLogger(); logger != nil {
		logger.Warn("MQTT connection lost", "error", err)
	}
}

// IsConnected returns whether the broker connection is up.
//
// Non-blocking, and safe to call before any StartConnect: with no client
// allocated it simply reports false.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state == StateConnected && c.client != nil && c.client.IsConnected()
}

// State returns the current connection lifecycle state.
func (c *Client) State() ConnectionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Close publishes a graceful offline status and disconnects.
func (c *Client) Close() error {
	c.mu.Lock()
	client := c.client
	connected := c.state == StateConnected
	c.state = StateDisconnected
	c.inFlight = false
	c.mu.Unlock()

	if client == nil {
		return nil
	}

	if connected {
		token := client.Publish(Topics{}.Status(c.deviceID), statusQoS, true, buildOfflinePayload(c.clientID))
		token.WaitTimeout(defaultPublishTimeout)
	}

	client.Disconnect(defaultDisconnectQuiesce)
	return nil
}

// SetLogger sets a logger for connection and delivery reporting.
// If not set, failures are silently ignored.
func (c *Client) SetLogger(logger Logger) {
	c.loggerMu.Lock()
	c.logger = logger
	c.loggerMu.Unlock()
}

// getLogger returns the current logger (may be nil).
func (c *Client) getLogger() Logger {
	c.loggerMu.RLock()
	defer c.loggerMu.RUnlock()
	return c.logger
}
