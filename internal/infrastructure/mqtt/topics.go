package mqtt

import "fmt"

// Topic suffixes under the device ID prefix.
//
// All node topics use the scheme: {device_id}/{suffix}. The telemetry
// suffix is configurable (telemetry.topic_suffix) because consumers of
// the original deployment subscribe to the fixed "dados/json" channel.
const (
	// TopicSuffixTelemetry is the default suffix for the consolidated
	// JSON telemetry channel.
	TopicSuffixTelemetry = "dados/json"

	// TopicSuffixStatus is the suffix for the node status/LWT channel.
	TopicSuffixStatus = "status"
)

// Topics provides builders for the node's MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	t := topics.Telemetry("Sensores", "dados/json")
//	// Returns: "Sensores/dados/json"
type Topics struct{}

// Telemetry returns the topic for consolidated JSON telemetry.
//
// Example: Sensores/dados/json
func (Topics) Telemetry(deviceID, suffix string) string {
	if suffix == "" {
		suffix = TopicSuffixTelemetry
	}
	return fmt.Sprintf("%s/%s", deviceID, suffix)
}

// Status returns the topic for node online/offline status and LWT.
//
// Example: Sensores/status
func (Topics) Status(deviceID string) string {
	return fmt.Sprintf("%s/%s", deviceID, TopicSuffixStatus)
}
