package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Repository defines the interface for entity hierarchy persistence.
//
// All chain-addressed operations (anything taking a networkCode and MACs)
// resolve the full ownership chain first and fail with the not-found error
// of the first missing link.
type Repository interface {
	ListNetworks(ctx context.Context) ([]Network, error)
	GetNetwork(ctx context.Context, code string) (*Network, error)
	CreateNetwork(ctx context.Context, network *Network) error
	UpdateNetwork(ctx context.Context, code string, upd NetworkUpdate) (*Network, error)
	DeleteNetwork(ctx context.Context, code string) error

	ListGateways(ctx context.Context, networkCode string) ([]Gateway, error)
	GetGateway(ctx context.Context, networkCode, mac string) (*Gateway, error)
	CreateGateway(ctx context.Context, networkCode string, gateway *Gateway) error
	UpdateGateway(ctx context.Context, networkCode, mac string, upd GatewayUpdate) (*Gateway, error)
	DeleteGateway(ctx context.Context, networkCode, mac string) error

	ListSensors(ctx context.Context, networkCode, gatewayMac string) ([]Sensor, error)
	ListNetworkSensors(ctx context.Context, networkCode string) ([]Sensor, error)
	GetSensor(ctx context.Context, networkCode, gatewayMac, sensorMac string) (*Sensor, error)
	CreateSensor(ctx context.Context, networkCode, gatewayMac string, sensor *Sensor) error
	UpdateSensor(ctx context.Context, networkCode, gatewayMac, sensorMac string, upd SensorUpdate) (*Sensor, error)
	DeleteSensor(ctx context.Context, networkCode, gatewayMac, sensorMac string) error

	// Identity guard. The checks give friendly Conflict errors before a
	// write; the mac_registry primary key is the authoritative backstop
	// when two writers race past the check.
	CheckNetworkCodeAvailable(ctx context.Context, code string) error
	CheckMacAvailable(ctx context.Context, mac string) error
	LookupMacOwner(ctx context.Context, mac string) (*MacOwner, error)

	// Chain resolver.
	ResolveNetworkID(ctx context.Context, code string) (int64, error)
	ResolveGatewayID(ctx context.Context, networkCode, mac string) (int64, error)
	ResolveSensorID(ctx context.Context, networkCode, gatewayMac, sensorMac string) (int64, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed inventory repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// isUniqueViolation reports whether err is a SQLite unique or primary key
// constraint failure. Used to translate a lost check-then-write race into
// the same Conflict outcome as the pre-check.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// ListNetworks returns all networks with their gateways and sensors nested.
func (r *SQLiteRepository) ListNetworks(ctx context.Context) ([]Network, error) {
	const query = `SELECT id, code, name, description FROM networks ORDER BY code`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying networks: %w", err)
	}
	defer rows.Close()

	var networks []Network
	for rows.Next() {
		n, err := scanNetworkRow(rows)
		if err != nil {
			return nil, err
		}
		networks = append(networks, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating network rows: %w", err)
	}

	for i := range networks {
		gateways, err := r.gatewaysByNetworkID(ctx, networks[i].ID)
		if err != nil {
			return nil, err
		}
		networks[i].Gateways = gateways
	}
	return networks, nil
}

// GetNetwork returns a single network by code with nested gateways/sensors.
func (r *SQLiteRepository) GetNetwork(ctx context.Context, code string) (*Network, error) {
	const query = `SELECT id, code, name, description FROM networks WHERE code = ?`
	n, err := scanNetwork(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		return nil, err
	}
	n.Gateways, err = r.gatewaysByNetworkID(ctx, n.ID)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// CreateNetwork inserts a new network after checking code availability.
func (r *SQLiteRepository) CreateNetwork(ctx context.Context, network *Network) error {
	if network.Code == "" {
		return ErrInvalidCode
	}
	if err := r.CheckNetworkCodeAvailable(ctx, network.Code); err != nil {
		return err
	}

	const query = `INSERT INTO networks (code, name, description) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		network.Code, nullStr(network.Name), nullStr(network.Description))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrNetworkCodeInUse
		}
		return fmt.Errorf("inserting network %s: %w", network.Code, err)
	}
	network.ID, _ = result.LastInsertId() //nolint:errcheck // SQLite always supports LastInsertId
	return nil
}

// UpdateNetwork applies a partial update. A code change re-runs the
// availability guard against the new value.
func (r *SQLiteRepository) UpdateNetwork(ctx context.Context, code string, upd NetworkUpdate) (*Network, error) {
	network, err := r.GetNetwork(ctx, code)
	if err != nil {
		return nil, err
	}

	if upd.Code != nil && *upd.Code != network.Code {
		if *upd.Code == "" {
			return nil, ErrInvalidCode
		}
		if err := r.CheckNetworkCodeAvailable(ctx, *upd.Code); err != nil {
			return nil, err
		}
		network.Code = *upd.Code
	}
	if upd.Name != nil {
		network.Name = *upd.Name
	}
	if upd.Description != nil {
		network.Description = *upd.Description
	}

	const query = `UPDATE networks SET code = ?, name = ?, description = ?,
		updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		network.Code, nullStr(network.Name), nullStr(network.Description), network.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNetworkCodeInUse
		}
		return nil, fmt.Errorf("updating network %s: %w", code, err)
	}
	return network, nil
}

// DeleteNetwork removes a network by code. Gateways, sensors, and
// measurements go with it via FK cascade; the MAC registry is cleared by
// triggers. A second delete of the same code reports not-found.
func (r *SQLiteRepository) DeleteNetwork(ctx context.Context, code string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM networks WHERE code = ?", code)
	if err != nil {
		return fmt.Errorf("deleting network %s: %w", code, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrNetworkNotFound
	}
	return nil
}

// ListGateways returns the gateways of a network with sensors nested.
func (r *SQLiteRepository) ListGateways(ctx context.Context, networkCode string) ([]Gateway, error) {
	networkID, err := r.ResolveNetworkID(ctx, networkCode)
	if err != nil {
		return nil, err
	}
	return r.gatewaysByNetworkID(ctx, networkID)
}

// GetGateway returns a single gateway addressed by (networkCode, mac).
func (r *SQLiteRepository) GetGateway(ctx context.Context, networkCode, mac string) (*Gateway, error) {
	if _, err := r.ResolveNetworkID(ctx, networkCode); err != nil {
		return nil, err
	}

	const query = `SELECT g.id, g.network_id, g.mac_address, g.name, g.description
		FROM gateways g
		INNER JOIN networks n ON n.id = g.network_id
		WHERE g.mac_address = ? AND n.code = ?`
	gw, err := scanGateway(r.db.QueryRowContext(ctx, query, mac, networkCode))
	if err != nil {
		return nil, err
	}
	gw.Sensors, err = r.sensorsByGatewayID(ctx, gw.ID, gw.MacAddress)
	if err != nil {
		return nil, err
	}
	return gw, nil
}

// CreateGateway inserts a gateway under a network. The MAC must be free in
// the whole shared identity space (no gateway and no sensor may hold it).
func (r *SQLiteRepository) CreateGateway(ctx context.Context, networkCode string, gateway *Gateway) error {
	if gateway.MacAddress == "" {
		return ErrInvalidMac
	}
	networkID, err := r.ResolveNetworkID(ctx, networkCode)
	if err != nil {
		return err
	}
	if err := r.CheckMacAvailable(ctx, gateway.MacAddress); err != nil {
		return err
	}

	const query = `INSERT INTO gateways (network_id, mac_address, name, description)
		VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		networkID, gateway.MacAddress, nullStr(gateway.Name), nullStr(gateway.Description))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrMacInUse
		}
		return fmt.Errorf("inserting gateway %s: %w", gateway.MacAddress, err)
	}
	gateway.ID, _ = result.LastInsertId() //nolint:errcheck // SQLite always supports LastInsertId
	gateway.NetworkID = networkID
	return nil
}

// UpdateGateway applies a partial update. A MAC change re-runs the shared
// identity guard; the registry row moves via trigger in the same statement.
func (r *SQLiteRepository) UpdateGateway(ctx context.Context, networkCode, mac string, upd GatewayUpdate) (*Gateway, error) {
	gateway, err := r.GetGateway(ctx, networkCode, mac)
	if err != nil {
		return nil, err
	}

	if upd.MacAddress != nil && *upd.MacAddress != gateway.MacAddress {
		if *upd.MacAddress == "" {
			return nil, ErrInvalidMac
		}
		if err := r.CheckMacAvailable(ctx, *upd.MacAddress); err != nil {
			return nil, err
		}
		gateway.MacAddress = *upd.MacAddress
	}
	if upd.Name != nil {
		gateway.Name = *upd.Name
	}
	if upd.Description != nil {
		gateway.Description = *upd.Description
	}

	const query = `UPDATE gateways SET mac_address = ?, name = ?, description = ?,
		updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		gateway.MacAddress, nullStr(gateway.Name), nullStr(gateway.Description), gateway.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrMacInUse
		}
		return nil, fmt.Errorf("updating gateway %s: %w", mac, err)
	}
	return gateway, nil
}

// DeleteGateway removes a gateway and, via cascade, its sensors and their
// measurements.
func (r *SQLiteRepository) DeleteGateway(ctx context.Context, networkCode, mac string) error {
	gatewayID, err := r.ResolveGatewayID(ctx, networkCode, mac)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, "DELETE FROM gateways WHERE id = ?", gatewayID)
	if err != nil {
		return fmt.Errorf("deleting gateway %s: %w", mac, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrGatewayNotFound
	}
	return nil
}

// ListSensors returns the sensors of a gateway.
func (r *SQLiteRepository) ListSensors(ctx context.Context, networkCode, gatewayMac string) ([]Sensor, error) {
	gatewayID, err := r.ResolveGatewayID(ctx, networkCode, gatewayMac)
	if err != nil {
		return nil, err
	}
	return r.sensorsByGatewayID(ctx, gatewayID, gatewayMac)
}

// ListNetworkSensors returns every sensor in a network across all its
// gateways, each carrying the owning gateway MAC for chain addressing.
func (r *SQLiteRepository) ListNetworkSensors(ctx context.Context, networkCode string) ([]Sensor, error) {
	networkID, err := r.ResolveNetworkID(ctx, networkCode)
	if err != nil {
		return nil, err
	}

	const query = `SELECT s.id, s.gateway_id, g.mac_address, s.mac_address,
		s.name, s.description, s.variable, s.unit
		FROM sensors s
		INNER JOIN gateways g ON g.id = s.gateway_id
		WHERE g.network_id = ?
		ORDER BY g.id, s.id`
	rows, err := r.db.QueryContext(ctx, query, networkID)
	if err != nil {
		return nil, fmt.Errorf("querying network sensors: %w", err)
	}
	defer rows.Close()

	var sensors []Sensor
	for rows.Next() {
		var s Sensor
		var name, description, variable, unit sql.NullString
		if err := rows.Scan(&s.ID, &s.GatewayID, &s.GatewayMac, &s.MacAddress,
			&name, &description, &variable, &unit); err != nil {
			return nil, fmt.Errorf("scanning network sensor row: %w", err)
		}
		s.Name = name.String
		s.Description = description.String
		s.Variable = variable.String
		s.Unit = unit.String
		sensors = append(sensors, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating network sensor rows: %w", err)
	}
	return sensors, nil
}

// GetSensor returns a single sensor addressed by the full chain.
func (r *SQLiteRepository) GetSensor(ctx context.Context, networkCode, gatewayMac, sensorMac string) (*Sensor, error) {
	if _, err := r.ResolveGatewayID(ctx, networkCode, gatewayMac); err != nil {
		return nil, err
	}

	const query = `SELECT s.id, s.gateway_id, g.mac_address, s.mac_address,
		s.name, s.description, s.variable, s.unit
		FROM sensors s
		INNER JOIN gateways g ON g.id = s.gateway_id
		INNER JOIN networks n ON n.id = g.network_id
		WHERE s.mac_address = ? AND g.mac_address = ? AND n.code = ?`
	return scanSensor(r.db.QueryRowContext(ctx, query, sensorMac, gatewayMac, networkCode))
}

// CreateSensor inserts a sensor under a gateway. Guard order: the global
// gateway and sensor identity spaces first, then the same-gateway duplicate
// check (redundant with the global one but kept as a local defence).
func (r *SQLiteRepository) CreateSensor(ctx context.Context, networkCode, gatewayMac string, sensor *Sensor) error {
	if sensor.MacAddress == "" {
		return ErrInvalidMac
	}
	gatewayID, err := r.ResolveGatewayID(ctx, networkCode, gatewayMac)
	if err != nil {
		return err
	}

	if err := r.CheckMacAvailable(ctx, sensor.MacAddress); err != nil {
		return err
	}

	var localDup int
	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sensors WHERE gateway_id = ? AND mac_address = ?",
		gatewayID, sensor.MacAddress).Scan(&localDup)
	if err != nil {
		return fmt.Errorf("checking local sensor duplicate: %w", err)
	}
	if localDup > 0 {
		return ErrMacInUse
	}

	const query = `INSERT INTO sensors (gateway_id, mac_address, name, description, variable, unit)
		VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		gatewayID, sensor.MacAddress, nullStr(sensor.Name), nullStr(sensor.Description),
		nullStr(sensor.Variable), nullStr(sensor.Unit))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrMacInUse
		}
		return fmt.Errorf("inserting sensor %s: %w", sensor.MacAddress, err)
	}
	sensor.ID, _ = result.LastInsertId() //nolint:errcheck // SQLite always supports LastInsertId
	sensor.GatewayID = gatewayID
	sensor.GatewayMac = gatewayMac
	return nil
}

// UpdateSensor applies a partial update. A MAC change re-runs the shared
// identity guard against the new value.
func (r *SQLiteRepository) UpdateSensor(ctx context.Context, networkCode, gatewayMac, sensorMac string, upd SensorUpdate) (*Sensor, error) {
	sensor, err := r.GetSensor(ctx, networkCode, gatewayMac, sensorMac)
	if err != nil {
		return nil, err
	}

	if upd.MacAddress != nil && *upd.MacAddress != sensor.MacAddress {
		if *upd.MacAddress == "" {
			return nil, ErrInvalidMac
		}
		if err := r.CheckMacAvailable(ctx, *upd.MacAddress); err != nil {
			return nil, err
		}
		sensor.MacAddress = *upd.MacAddress
	}
	if upd.Name != nil {
		sensor.Name = *upd.Name
	}
	if upd.Description != nil {
		sensor.Description = *upd.Description
	}
	if upd.Variable != nil {
		sensor.Variable = *upd.Variable
	}
	if upd.Unit != nil {
		sensor.Unit = *upd.Unit
	}

	const query = `UPDATE sensors SET mac_address = ?, name = ?, description = ?,
		variable = ?, unit = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		sensor.MacAddress, nullStr(sensor.Name), nullStr(sensor.Description),
		nullStr(sensor.Variable), nullStr(sensor.Unit), sensor.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrMacInUse
		}
		return nil, fmt.Errorf("updating sensor %s: %w", sensorMac, err)
	}
	return sensor, nil
}

// DeleteSensor removes a sensor and, via cascade, its measurements.
func (r *SQLiteRepository) DeleteSensor(ctx context.Context, networkCode, gatewayMac, sensorMac string) error {
	sensorID, err := r.ResolveSensorID(ctx, networkCode, gatewayMac, sensorMac)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, "DELETE FROM sensors WHERE id = ?", sensorID)
	if err != nil {
		return fmt.Errorf("deleting sensor %s: %w", sensorMac, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrSensorNotFound
	}
	return nil
}

// CheckNetworkCodeAvailable returns ErrNetworkCodeInUse if any network
// already holds the code.
func (r *SQLiteRepository) CheckNetworkCodeAvailable(ctx context.Context, code string) error {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM networks WHERE code = ?", code).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking network code %s: %w", code, err)
	}
	if count > 0 {
		return ErrNetworkCodeInUse
	}
	return nil
}

// CheckMacAvailable returns ErrMacInUse if the MAC is held by any gateway
// or any sensor anywhere. One registry lookup covers both identity spaces.
func (r *SQLiteRepository) CheckMacAvailable(ctx context.Context, mac string) error {
	owner, err := r.LookupMacOwner(ctx, mac)
	if err != nil {
		return err
	}
	if owner != nil {
		return ErrMacInUse
	}
	return nil
}

// LookupMacOwner returns the current holder of a MAC, or nil if free.
func (r *SQLiteRepository) LookupMacOwner(ctx context.Context, mac string) (*MacOwner, error) {
	const query = `SELECT mac_address, owner_type, owner_id FROM mac_registry WHERE mac_address = ?`
	var owner MacOwner
	err := r.db.QueryRowContext(ctx, query, mac).Scan(&owner.MacAddress, &owner.OwnerType, &owner.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("looking up mac %s: %w", mac, err)
	}
	return &owner, nil
}

// ResolveNetworkID resolves a network code to its row ID.
func (r *SQLiteRepository) ResolveNetworkID(ctx context.Context, code string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM networks WHERE code = ?", code).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNetworkNotFound
		}
		return 0, fmt.Errorf("resolving network %s: %w", code, err)
	}
	return id, nil
}

// ResolveGatewayID resolves (networkCode, mac) to a gateway row ID.
// The MAC existing under a different network is still not found here.
func (r *SQLiteRepository) ResolveGatewayID(ctx context.Context, networkCode, mac string) (int64, error) {
	if _, err := r.ResolveNetworkID(ctx, networkCode); err != nil {
		return 0, err
	}

	var id int64
	const query = `SELECT g.id FROM gateways g
		INNER JOIN networks n ON n.id = g.network_id
		WHERE g.mac_address = ? AND n.code = ?`
	err := r.db.QueryRowContext(ctx, query, mac, networkCode).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrGatewayNotFound
		}
		return 0, fmt.Errorf("resolving gateway %s: %w", mac, err)
	}
	return id, nil
}

// ResolveSensorID resolves the full chain to a sensor row ID.
func (r *SQLiteRepository) ResolveSensorID(ctx context.Context, networkCode, gatewayMac, sensorMac string) (int64, error) {
	if _, err := r.ResolveGatewayID(ctx, networkCode, gatewayMac); err != nil {
		return 0, err
	}

	var id int64
	const query = `SELECT s.id FROM sensors s
		INNER JOIN gateways g ON g.id = s.gateway_id
		INNER JOIN networks n ON n.id = g.network_id
		WHERE s.mac_address = ? AND g.mac_address = ? AND n.code = ?`
	err := r.db.QueryRowContext(ctx, query, sensorMac, gatewayMac, networkCode).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrSensorNotFound
		}
		return 0, fmt.Errorf("resolving sensor %s: %w", sensorMac, err)
	}
	return id, nil
}

func scanNetwork(row *sql.Row) (*Network, error) {
	var n Network
	var name, description sql.NullString
	err := row.Scan(&n.ID, &n.Code, &name, &description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNetworkNotFound
		}
		return nil, fmt.Errorf("scanning network: %w", err)
	}
	n.Name = name.String
	n.Description = description.String
	return &n, nil
}

func scanNetworkRow(rows *sql.Rows) (*Network, error) {
	var n Network
	var name, description sql.NullString
	if err := rows.Scan(&n.ID, &n.Code, &name, &description); err != nil {
		return nil, fmt.Errorf("scanning network row: %w", err)
	}
	n.Name = name.String
	n.Description = description.String
	return &n, nil
}

func scanGateway(row *sql.Row) (*Gateway, error) {
	var gw Gateway
	var name, description sql.NullString
	err := row.Scan(&gw.ID, &gw.NetworkID, &gw.MacAddress, &name, &description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGatewayNotFound
		}
		return nil, fmt.Errorf("scanning gateway: %w", err)
	}
	gw.Name = name.String
	gw.Description = description.String
	return &gw, nil
}

func scanSensor(row *sql.Row) (*Sensor, error) {
	var s Sensor
	var name, description, variable, unit sql.NullString
	err := row.Scan(&s.ID, &s.GatewayID, &s.GatewayMac, &s.MacAddress,
		&name, &description, &variable, &unit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSensorNotFound
		}
		return nil, fmt.Errorf("scanning sensor: %w", err)
	}
	s.Name = name.String
	s.Description = description.String
	s.Variable = variable.String
	s.Unit = unit.String
	return &s, nil
}

// gatewaysByNetworkID loads the gateways of a network with sensors nested.
func (r *SQLiteRepository) gatewaysByNetworkID(ctx context.Context, networkID int64) ([]Gateway, error) {
	const query = `SELECT id, network_id, mac_address, name, description
		FROM gateways WHERE network_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, networkID)
	if err != nil {
		return nil, fmt.Errorf("querying gateways: %w", err)
	}
	defer rows.Close()

	var gateways []Gateway
	for rows.Next() {
		var gw Gateway
		var name, description sql.NullString
		if err := rows.Scan(&gw.ID, &gw.NetworkID, &gw.MacAddress, &name, &description); err != nil {
			return nil, fmt.Errorf("scanning gateway row: %w", err)
		}
		gw.Name = name.String
		gw.Description = description.String
		gateways = append(gateways, gw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating gateway rows: %w", err)
	}

	for i := range gateways {
		sensors, err := r.sensorsByGatewayID(ctx, gateways[i].ID, gateways[i].MacAddress)
		if err != nil {
			return nil, err
		}
		gateways[i].Sensors = sensors
	}
	return gateways, nil
}

// sensorsByGatewayID loads the sensors of a gateway.
func (r *SQLiteRepository) sensorsByGatewayID(ctx context.Context, gatewayID int64, gatewayMac string) ([]Sensor, error) {
	const query = `SELECT id, gateway_id, mac_address, name, description, variable, unit
		FROM sensors WHERE gateway_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, gatewayID)
	if err != nil {
		return nil, fmt.Errorf("querying sensors: %w", err)
	}
	defer rows.Close()

	var sensors []Sensor
	for rows.Next() {
		var s Sensor
		var name, description, variable, unit sql.NullString
		if err := rows.Scan(&s.ID, &s.GatewayID, &s.MacAddress, &name, &description, &variable, &unit); err != nil {
			return nil, fmt.Errorf("scanning sensor row: %w", err)
		}
		s.GatewayMac = gatewayMac
		s.Name = name.String
		s.Description = description.String
		s.Variable = variable.String
		s.Unit = unit.String
		sensors = append(sensors, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sensor rows: %w", err)
	}
	return sensors, nil
}

// nullStr converts an empty string to a NULL column value.
func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
