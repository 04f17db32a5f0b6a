package inventory

// Network is the top of the entity hierarchy. Its code is the primary
// business key and is globally unique.
type Network struct {
	ID          int64     `json:"-"`
	Code        string    `json:"code"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	Gateways    []Gateway `json:"gateways,omitempty"`
}

// Gateway belongs to exactly one network and owns zero or more sensors.
// Its MAC address is unique across the gateway AND sensor identity spaces.
type Gateway struct {
	ID          int64    `json:"-"`
	NetworkID   int64    `json:"-"`
	MacAddress  string   `json:"macAddress"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Sensors     []Sensor `json:"sensors,omitempty"`
}

// Sensor belongs to exactly one gateway. Like gateways, its MAC address
// lives in the shared MAC identity space.
type Sensor struct {
	ID          int64  `json:"-"`
	GatewayID   int64  `json:"-"`
	GatewayMac  string `json:"-"`
	MacAddress  string `json:"macAddress"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Variable    string `json:"variable,omitempty"`
	Unit        string `json:"unit,omitempty"`
}

// NetworkUpdate carries a partial update for a network.
// Nil fields are left unchanged; a non-nil Code triggers a rename and
// re-runs the code uniqueness guard.
type NetworkUpdate struct {
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// GatewayUpdate carries a partial update for a gateway.
// A non-nil MacAddress triggers a rename and re-runs the MAC guard.
type GatewayUpdate struct {
	MacAddress  *string `json:"macAddress,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// SensorUpdate carries a partial update for a sensor.
type SensorUpdate struct {
	MacAddress  *string `json:"macAddress,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Variable    *string `json:"variable,omitempty"`
	Unit        *string `json:"unit,omitempty"`
}

// MacOwner identifies the current holder of a MAC address in the shared
// registry.
type MacOwner struct {
	MacAddress string
	OwnerType  string // "gateway" or "sensor"
	OwnerID    int64
}
