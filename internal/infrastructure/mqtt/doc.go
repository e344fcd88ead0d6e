// Package mqtt provides broker connectivity for the sensor node.
//
// This package manages:
//   - The connection state machine (Disconnected → Connecting → Connected)
//   - Non-blocking connect requests resolved via paho callbacks
//   - Telemetry publishing under at-most-one-in-flight semantics
//   - Last Will and Testament (LWT) on the node's status topic
//
// # Architecture
//
// The node publishes one telemetry message per operational cycle.
// Connection management is deliberately dumb: StartConnect fires a
// non-blocking attempt and returns; the outcome arrives later through
// the connection callbacks. Reconnection is driven by the telemetry
// loop, which calls StartConnect again on every tick it finds the
// client disconnected. There is no backoff and no retry cap - paho's
// own auto-reconnect is disabled so the loop stays the single owner of
// the reconnection policy.
//
// # Delivery semantics
//
// Telemetry is published at QoS 1 with retain disabled. At most one
// publish is outstanding at any time: while the in-flight token is held,
// further PublishTelemetry calls are dropped silently (back-pressure,
// not queueing). The token is cleared only by the delivery
// acknowledgment, success or failure; a lost message is never requeued -
// the next cycle publishes fresh readings instead.
//
// # Usage
//
//	client := mqtt.New(cfg.MQTT, cfg.Device.ID)
//	client.SetLogger(logger)
//	client.StartConnect()
//
//	if client.IsConnected() {
//	    client.PublishTelemetry(topic, payload)
//	}
package mqtt
