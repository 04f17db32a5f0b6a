package inventory

import "errors"

var (
	// ErrNetworkNotFound is returned when a network code does not exist.
	ErrNetworkNotFound = errors.New("network not found")

	// ErrGatewayNotFound is returned when a gateway MAC does not exist
	// under the resolved network. A MAC that exists under a different
	// network is still not found for that chain.
	ErrGatewayNotFound = errors.New("gateway not found")

	// ErrSensorNotFound is returned when a sensor MAC does not exist
	// under the resolved gateway.
	ErrSensorNotFound = errors.New("sensor not found")

	// ErrNetworkCodeInUse is returned when a create or rename targets a
	// network code that already exists.
	ErrNetworkCodeInUse = errors.New("network code already in use")

	// ErrMacInUse is returned when a create or rename targets a MAC
	// address already held by any gateway or any sensor.
	ErrMacInUse = errors.New("mac address already in use")

	// ErrInvalidCode is returned when a network code is empty.
	ErrInvalidCode = errors.New("network code is required")

	// ErrInvalidMac is returned when a gateway or sensor MAC is empty.
	ErrInvalidMac = errors.New("mac address is required")
)
