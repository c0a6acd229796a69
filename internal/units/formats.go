package units

import "weatherdesk/internal/config"

// FormatSet holds the unit label rendered after each measurement.
// An empty label means the token was not configured.
type FormatSet struct {
	Temperature   string `json:"temperature,omitempty"`
	Pressure      string `json:"pressure,omitempty"`
	Humidity      string `json:"humidity,omitempty"`
	WindSpeed     string `json:"wind_speed,omitempty"`
	WindDirection string `json:"wind_direction,omitempty"`
	Visibility    string `json:"visibility,omitempty"`
}

// ResolveFormats picks the configured label for each category. Temperature
// branches three ways; wind speed and visibility only distinguish imperial.
func ResolveFormats(s System, tokens config.FormatConfig) FormatSet {
	fs := FormatSet{
		Pressure:      tokens.Pressure,
		Humidity:      tokens.Humidity,
		WindDirection: tokens.WindDirection,
	}

	switch s {
	case Metric:
		fs.Temperature = tokens.MetricTemperature
	case Imperial:
		fs.Temperature = tokens.ImperialTemperature
	default:
		fs.Temperature = tokens.StandardTemperature
	}

	if s == Imperial {
		fs.WindSpeed = tokens.ImperialWindSpeed
		fs.Visibility = tokens.ImperialVisibility
	} else {
		fs.WindSpeed = tokens.StandardWindSpeed
		fs.Visibility = tokens.StandardVisibility
	}

	return fs
}

// Missing lists the categories that have no label.
func (f FormatSet) Missing() []string {
	var missing []string
	for _, c := range []struct {
		name  string
		label string
	}{
		{"temperature", f.Temperature},
		{"pressure", f.Pressure},
		{"humidity", f.Humidity},
		{"wind_speed", f.WindSpeed},
		{"wind_direction", f.WindDirection},
		{"visibility", f.Visibility},
	} {
		if c.label == "" {
			missing = append(missing, c.name)
		}
	}
	return missing
}
