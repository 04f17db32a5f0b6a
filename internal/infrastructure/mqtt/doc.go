// Package mqtt provides MQTT client connectivity for GeoControl Core.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// GeoControl uses MQTT as the ingestion path for field gateways. Gateways
// batch sensor readings and publish them to per-sensor topics; Core
// subscribes to the measurement wildcard and persists what arrives.
//
//	Field Gateways → MQTT Broker → GeoControl Core
//
// The REST API remains the authoritative write path; MQTT ingestion is
// optional and disabled by default.
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.Ingest)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	topics := mqtt.Topics{Root: cfg.Ingest.TopicRoot}
//	err = client.Subscribe(topics.AllMeasurements(), 1,
//	    func(topic string, payload []byte) error {
//	        // decode and store the reading batch
//	        return nil
//	    })
package mqtt
