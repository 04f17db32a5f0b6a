package inventory

import (
	"fmt"
	"strings"
)

// Validation constants.
const (
	maxCodeLength        = 50
	maxMacLength         = 50
	maxNameLength        = 100
	maxDescriptionLength = 500
	maxVariableLength    = 50
	maxUnitLength        = 20
)

// ValidateCode checks a network code. Codes are opaque identifiers chosen
// by operators, so only emptiness, whitespace, and length are enforced.
func ValidateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidCode)
	}
	if code != strings.TrimSpace(code) {
		return fmt.Errorf("%w: code has leading or trailing whitespace", ErrInvalidCode)
	}
	if len(code) > maxCodeLength {
		return fmt.Errorf("%w: code exceeds %d characters", ErrInvalidCode, maxCodeLength)
	}
	return nil
}

// ValidateMac checks a MAC address. MACs are treated as opaque strings,
// the hardware may report them in any vendor format.
func ValidateMac(mac string) error {
	if strings.TrimSpace(mac) == "" {
		return fmt.Errorf("%w: macAddress is required", ErrInvalidMac)
	}
	if mac != strings.TrimSpace(mac) {
		return fmt.Errorf("%w: macAddress has leading or trailing whitespace", ErrInvalidMac)
	}
	if len(mac) > maxMacLength {
		return fmt.Errorf("%w: macAddress exceeds %d characters", ErrInvalidMac, maxMacLength)
	}
	return nil
}

// ValidateNetwork checks a network payload before it reaches the store.
func ValidateNetwork(n *Network) error {
	if n == nil {
		return fmt.Errorf("%w: network payload is required", ErrInvalidCode)
	}
	if err := ValidateCode(n.Code); err != nil {
		return err
	}
	if len(n.Name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidCode, maxNameLength)
	}
	if len(n.Description) > maxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidCode, maxDescriptionLength)
	}
	return nil
}

// ValidateGateway checks a gateway payload before it reaches the store.
func ValidateGateway(g *Gateway) error {
	if g == nil {
		return fmt.Errorf("%w: gateway payload is required", ErrInvalidMac)
	}
	if err := ValidateMac(g.MacAddress); err != nil {
		return err
	}
	if len(g.Name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidMac, maxNameLength)
	}
	if len(g.Description) > maxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidMac, maxDescriptionLength)
	}
	return nil
}

// ValidateSensor checks a sensor payload before it reaches the store.
func ValidateSensor(s *Sensor) error {
	if s == nil {
		return fmt.Errorf("%w: sensor payload is required", ErrInvalidMac)
	}
	if err := ValidateMac(s.MacAddress); err != nil {
		return err
	}
	if len(s.Name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidMac, maxNameLength)
	}
	if len(s.Description) > maxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidMac, maxDescriptionLength)
	}
	if len(s.Variable) > maxVariableLength {
		return fmt.Errorf("%w: variable exceeds %d characters", ErrInvalidMac, maxVariableLength)
	}
	if len(s.Unit) > maxUnitLength {
		return fmt.Errorf("%w: unit exceeds %d characters", ErrInvalidMac, maxUnitLength)
	}
	return nil
}
