// Package config defines the process configuration for weatherdesk.
// Configuration is loaded once at startup and is immutable thereafter; every
// component receives the subset it needs as an explicit argument.
//
// Values are resolved via:
//
//	OS Environment (Highest) -> Dotenv File -> struct tag defaults
//
// A missing required value or an invalid format fails startup.
package config

import (
	"time"

	"weatherdesk/internal/types"
)

// SecretString is an alias for types.SecretString.
type SecretString = types.SecretString

// Config is the top-level configuration struct.
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"local" validate:"oneof=local dev staging prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	Server        ServerConfig
	OpenWeather   OpenWeatherConfig
	Formats       FormatConfig
	Observability ObservabilityConfig

	// Injected via ldflags, not Env
	Build BuildInfo
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s" validate:"gt=0"`
}

// OpenWeatherConfig holds the provider endpoints and request parameters.
// The base URLs may already carry query parameters; clients merge theirs in.
type OpenWeatherConfig struct {
	APIKey SecretString `envconfig:"API_KEY" validate:"required"`

	// e.g. https://api.openweathermap.org/geo/1.0/direct
	GeoURL string `envconfig:"OWM_GEO_URL" validate:"required,url"`
	// e.g. https://api.openweathermap.org/data/2.5/weather
	CurrentWeatherURL string `envconfig:"OWM_CUR_WEATHER_URL" validate:"required,url"`
	// e.g. https://api.openweathermap.org/data/2.5/forecast; empty disables the forecast call
	ForecastURL string `envconfig:"OWM_FORECAST_URL" validate:"omitempty,url"`

	GeoLimit  int           `envconfig:"OWM_GEO_LIMIT" default:"1" validate:"min=1,max=5"`
	Timeout   time.Duration `envconfig:"OWM_TIMEOUT" default:"5s" validate:"gt=0"`
	Language  string        `envconfig:"LANGUAGE" default:"en"`
	Units     string        `envconfig:"UNITS_OF_MEASURE" default:"standard"`
	UserAgent string        `envconfig:"USER_AGENT" default:"weatherdesk/1.0"`
}

// FormatConfig holds the display-format tokens for each measurement category.
// None are required: an unset token leaves that category without a unit label,
// which is reported at startup.
type FormatConfig struct {
	MetricTemperature   string `envconfig:"METRIC_TEMPERATURE"`
	ImperialTemperature string `envconfig:"IMPERIAL_TEMPERATURE"`
	StandardTemperature string `envconfig:"STANDARD_TEMPERATURE"`
	Pressure            string `envconfig:"PRESSURE"`
	Humidity            string `envconfig:"HUMIDITY"`
	ImperialWindSpeed   string `envconfig:"IMPERIAL_WIND_SPEED"`
	StandardWindSpeed   string `envconfig:"STANDARD_WIND_SPEED"`
	WindDirection       string `envconfig:"WIND_DIRECTION"`
	ImperialVisibility  string `envconfig:"IMPERIAL_VISIBILITY"`
	StandardVisibility  string `envconfig:"STANDARD_VISIBILITY"`
}

// ObservabilityConfig holds telemetry settings.
type ObservabilityConfig struct {
	MetricsEnabled  bool   `envconfig:"METRICS_ENABLED" default:"false"`
	MetricNamespace string `envconfig:"METRIC_NAMESPACE" default:"WeatherDesk"`
	AWSRegion       string `envconfig:"AWS_REGION" default:"us-east-1"`
	AWSEndpointURL  string `envconfig:"AWS_ENDPOINT_URL" validate:"omitempty,url"` // LocalStack
}

// BuildInfo holds build-time metadata injected via ldflags.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// ConfigErrorType categorizes configuration loading failures.
type ConfigErrorType string

const (
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates an environment value could not be parsed into its
	// target type.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)
