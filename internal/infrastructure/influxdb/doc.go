// Package influxdb provides an optional time-series mirror for GeoControl.
//
// SQLite remains the source of truth for measurements; this package copies
// stored readings into InfluxDB so operators can chart long-term sensor
// behaviour with Influx tooling. Mirror failures never fail the primary
// write path.
//
// This package manages:
//   - Connection to InfluxDB v2 with token authentication
//   - Non-blocking batched writes of sensor readings
//   - Health monitoring via ping
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.WriteReading("NET01", "94:3F:BE:4C:4A:79", "71:B1:CE:01:C6:A9", 1.85, ts)
package influxdb
