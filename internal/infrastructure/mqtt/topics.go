package mqtt

import (
	"fmt"
	"strings"
)

// DefaultTopicRoot is the base segment for all GeoControl topics when the
// configuration does not override it.
const DefaultTopicRoot = "geocontrol"

// Topics provides builders for GeoControl MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
// Measurement topics follow the sensor chain:
//
//	topics := mqtt.Topics{Root: cfg.TopicRoot}
//	t := topics.SensorMeasurements("NET01", "94:3F:BE:4C:4A:79", "71:B1:CE:01:C6:A9")
//	// Returns: "geocontrol/measurements/NET01/94:3F:BE:4C:4A:79/71:B1:CE:01:C6:A9"
type Topics struct {
	// Root overrides the leading topic segment. Empty means DefaultTopicRoot.
	Root string
}

func (t Topics) root() string {
	if t.Root == "" {
		return DefaultTopicRoot
	}
	return t.Root
}

// SensorMeasurements returns the topic a gateway publishes reading batches to
// for one sensor.
//
// Example: geocontrol/measurements/NET01/94:3F:BE:4C:4A:79/71:B1:CE:01:C6:A9
func (t Topics) SensorMeasurements(networkCode, gatewayMac, sensorMac string) string {
	return fmt.Sprintf("%s/measurements/%s/%s/%s", t.root(), networkCode, gatewayMac, sensorMac)
}

// GatewayStatus returns the topic for a gateway's own liveness reports.
//
// Example: geocontrol/gateways/94:3F:BE:4C:4A:79/status
func (t Topics) GatewayStatus(gatewayMac string) string {
	return fmt.Sprintf("%s/gateways/%s/status", t.root(), gatewayMac)
}

// SystemStatus returns Core's own status topic, used for the LWT and for
// online/offline announcements.
//
// Example: geocontrol/system/status
func (t Topics) SystemStatus() string {
	return fmt.Sprintf("%s/system/status", t.root())
}

// AllMeasurements returns a pattern matching every sensor measurement topic.
//
// Pattern: geocontrol/measurements/+/+/+
func (t Topics) AllMeasurements() string {
	return fmt.Sprintf("%s/measurements/+/+/+", t.root())
}

// AllGatewayStatus returns a pattern matching every gateway status topic.
//
// Pattern: geocontrol/gateways/+/status
func (t Topics) AllGatewayStatus() string {
	return fmt.Sprintf("%s/gateways/+/status", t.root())
}

// ParseMeasurementTopic extracts the sensor chain from a measurement topic.
//
// The expected shape is {root}/measurements/{networkCode}/{gatewayMac}/{sensorMac}.
// Topics with a different shape, or with empty chain segments, return
// ErrInvalidTopic.
func (t Topics) ParseMeasurementTopic(topic string) (networkCode, gatewayMac, sensorMac string, err error) {
	prefix := t.root() + "/measurements/"
	rest, ok := strings.CutPrefix(topic, prefix)
	if !ok {
		return "", "", "", fmt.Errorf("%w: %q is not a measurement topic", ErrInvalidTopic, topic)
	}

	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("%w: %q does not name a full sensor chain", ErrInvalidTopic, topic)
	}

	return parts[0], parts[1], parts[2], nil
}
