package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteReading mirrors a single stored sensor reading to InfluxDB.
//
// The write is non-blocking; points are batched and sent asynchronously.
// The full sensor chain is recorded as tags so readings can be grouped by
// network, gateway, or individual sensor.
//
// Example:
//
//	client.WriteReading("NET01", "94:3F:BE:4C:4A:79", "71:B1:CE:01:C6:A9", 1.85, ts)
func (c *Client) WriteReading(networkCode, gatewayMac, sensorMac string, value float64, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"sensor_readings",
		map[string]string{
			"network": networkCode,
			"gateway": gatewayMac,
			"sensor":  sensorMac,
		},
		map[string]interface{}{
			"value": value,
		},
		timestamp,
	)

	c.writeAPI.WritePoint(point)
}

// WriteGatewayStatus records a gateway liveness transition.
//
// Useful for tracking field connectivity over time alongside readings.
func (c *Client) WriteGatewayStatus(gatewayMac string, online bool) {
	if !c.IsConnected() {
		return
	}

	up := 0.0
	if online {
		up = 1.0
	}

	point := write.NewPoint(
		"gateway_status",
		map[string]string{
			"gateway": gatewayMac,
		},
		map[string]interface{}{
			"up": up,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit the helper methods.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
