// Package units selects display formats and converts values for the
// configured measurement system.
package units

import "strings"

// System is the measurement convention requested from the provider.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
	Standard System = "standard"
)

// ParseSystem normalizes a configured unit setting. Anything that is not
// metric or imperial is treated as standard.
func ParseSystem(s string) System {
	switch System(strings.ToLower(strings.TrimSpace(s))) {
	case Metric:
		return Metric
	case Imperial:
		return Imperial
	default:
		return Standard
	}
}

// String returns the wire value sent as the units query parameter.
func (s System) String() string {
	return string(s)
}
