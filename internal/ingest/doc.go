// Package ingest consumes sensor reading batches published by field
// gateways over MQTT and stores them through the measurement service.
//
// Gateways publish JSON arrays of readings to per-sensor topics:
//
//	geocontrol/measurements/{networkCode}/{gatewayMac}/{sensorMac}
//
// The payload format is identical to the REST ingestion endpoint, so a
// gateway can switch between the two paths without re-encoding:
//
//	[{"createdAt":"2025-02-18T10:00:00Z","value":1.85}, ...]
//
// Batches addressed to an unknown sensor chain are dropped and logged;
// the broker is an untrusted input and a misconfigured gateway must not
// be able to create topology.
package ingest
