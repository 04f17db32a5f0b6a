// Package inventory provides the network, gateway, and sensor hierarchy
// for GeoControl.
//
// It defines the topological model of a monitoring fleet: Networks
// contain Gateways (physical devices addressed by MAC), which contain
// Sensors (measuring instruments, also addressed by MAC). Networks are
// addressed by an operator-chosen code; gateways and sensors share a
// single MAC identity space, a MAC held by a gateway anywhere blocks any
// sensor from taking it and vice versa. The mac_registry table enforces
// this invariant at the database level via triggers; the repository's
// availability checks exist to give friendly conflict errors first.
//
// The package provides a Repository interface with a SQLite
// implementation. Every chain-addressed operation resolves the full
// ownership chain and reports the first missing link, so a sensor lookup
// under a wrong network fails with a network error, not a sensor one.
//
// # Thread Safety
//
// SQLiteRepository is safe for concurrent use from multiple goroutines
// (SQLite WAL mode + connection pooling).
package inventory
