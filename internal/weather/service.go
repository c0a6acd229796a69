// Package weather orchestrates one lookup: geocode the query, then fetch
// current conditions and the forecast for the resolved coordinates.
package weather

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"weatherdesk/internal/dataset"
	"weatherdesk/internal/telemetry"
	"weatherdesk/internal/types"
	"weatherdesk/internal/units"
)

// Upstream call names used in logs and metrics.
const (
	CallGeocode  = "geocode"
	CallCurrent  = "current"
	CallForecast = "forecast"
)

// Provider is the subset of the OpenWeatherMap client the service needs.
type Provider interface {
	Geocode(ctx context.Context, city, state, country string) (*dataset.Location, error)
	CurrentWeather(ctx context.Context, lat, lon float64) (*dataset.CurrentWeather, error)
	Forecast(ctx context.Context, lat, lon float64) (*dataset.Forecast, error)
	ForecastEnabled() bool
}

// UpstreamRecorder records the outcome of each provider call.
type UpstreamRecorder interface {
	RecordUpstream(call, outcome string, duration time.Duration)
}

// Query is the free-text location entered by the user.
type Query struct {
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state,omitempty" validate:"max=100"`
	Country string `json:"country,omitempty" validate:"max=100"`
}

// Normalize trims surrounding whitespace from every component.
func (q Query) Normalize() Query {
	return Query{
		City:    strings.TrimSpace(q.City),
		State:   strings.TrimSpace(q.State),
		Country: strings.TrimSpace(q.Country),
	}
}

// Report is everything the page renders for one query. Any of Location,
// Current and Forecast may be nil when the corresponding call failed.
type Report struct {
	Query    Query                   `json:"query"`
	Location *dataset.Location       `json:"location,omitempty"`
	Current  *dataset.CurrentWeather `json:"current,omitempty"`
	Forecast *dataset.Forecast       `json:"forecast,omitempty"`
	Formats  units.FormatSet         `json:"formats"`
	// Errors lists the error code of every failed call, keyed by call name.
	Errors map[string]types.ErrorCode `json:"errors,omitempty"`
}

// Service fetches weather reports.
type Service struct {
	provider Provider
	formats  units.FormatSet
	metrics  UpstreamRecorder
	logger   *slog.Logger
}

// NewService creates a Service. formats is resolved once at startup and
// copied into every report.
func NewService(provider Provider, formats units.FormatSet, metrics UpstreamRecorder, logger *slog.Logger) *Service {
	if metrics == nil {
		metrics = telemetry.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider: provider,
		formats:  formats,
		metrics:  metrics,
		logger:   logger,
	}
}

// Fetch builds a Report for q. It never fails: every provider failure is
// logged and leaves the matching field of the report nil.
//
// Current weather and forecast depend only on the geocode result and are
// fetched concurrently.
func (s *Service) Fetch(ctx context.Context, q Query) Report {
	q = q.Normalize()
	logger := s.logger.With("request_id", types.GetRequestID(ctx))

	report := Report{Query: q, Formats: s.formats}
	if missing := s.formats.Missing(); len(missing) > 0 {
		logger.Debug("display formats not configured", "categories", missing)
	}

	var loc *dataset.Location
	err := s.call(ctx, logger, CallGeocode, func(ctx context.Context) error {
		var err error
		loc, err = s.provider.Geocode(ctx, q.City, q.State, q.Country)
		return err
	})
	if err != nil {
		report.addError(CallGeocode, err)
		return report
	}
	report.Location = loc

	var (
		current     *dataset.CurrentWeather
		forecast    *dataset.Forecast
		currentErr  error
		forecastErr error
	)

	// Failures are kept per call rather than returned so one failed call
	// does not cancel the other.
	var g errgroup.Group
	g.Go(func() error {
		currentErr = s.call(ctx, logger, CallCurrent, func(ctx context.Context) error {
			var err error
			current, err = s.provider.CurrentWeather(ctx, loc.Lat, loc.Lon)
			return err
		})
		return nil
	})
	if s.provider.ForecastEnabled() {
		g.Go(func() error {
			forecastErr = s.call(ctx, logger, CallForecast, func(ctx context.Context) error {
				var err error
				forecast, err = s.provider.Forecast(ctx, loc.Lat, loc.Lon)
				return err
			})
			return nil
		})
	}
	_ = g.Wait()

	if currentErr != nil {
		report.addError(CallCurrent, currentErr)
	}
	if forecastErr != nil {
		report.addError(CallForecast, forecastErr)
	}
	report.Current = current
	report.Forecast = forecast

	return report
}

// call runs fn, records its outcome and logs any failure.
func (s *Service) call(ctx context.Context, logger *slog.Logger, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	if err != nil {
		s.metrics.RecordUpstream(name, telemetry.OutcomeFailure, duration)
		logger.Error("weather provider call failed",
			"call", name,
			"error", err,
			"duration_ms", duration.Milliseconds(),
		)
		return err
	}

	s.metrics.RecordUpstream(name, telemetry.OutcomeSuccess, duration)
	logger.Debug("weather provider call succeeded",
		"call", name,
		"duration_ms", duration.Milliseconds(),
	)
	return nil
}

func (r *Report) addError(call string, err error) {
	if r.Errors == nil {
		r.Errors = make(map[string]types.ErrorCode)
	}
	code := types.ErrCodeInternalUnexpected
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
	}
	r.Errors[call] = code
}
