package external

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"weatherdesk/internal/config"
	"weatherdesk/internal/dataset"
	"weatherdesk/internal/types"
	"weatherdesk/internal/units"

	"github.com/sony/gobreaker/v2"
)

// maxResponseBytes bounds how much of a provider response is read.
const maxResponseBytes = 4 << 20

// OpenWeatherClient calls the OpenWeatherMap geocoding, current-weather and
// forecast endpoints and decodes their payloads.
type OpenWeatherClient struct {
	base   *BaseClient
	cfg    config.OpenWeatherConfig
	system units.System
}

// NewOpenWeatherClient creates a client with its own circuit breaker. The
// configured timeout applies to every call.
func NewOpenWeatherClient(cfg config.OpenWeatherConfig, logger *slog.Logger) *OpenWeatherClient {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	return NewOpenWeatherClientWithBase(
		NewBaseClient(httpClient, "openweathermap", DefaultBreakerSettings(), cfg.UserAgent, logger),
		cfg,
	)
}

// NewOpenWeatherClientWithBase creates a client around an existing BaseClient.
func NewOpenWeatherClientWithBase(base *BaseClient, cfg config.OpenWeatherConfig) *OpenWeatherClient {
	return &OpenWeatherClient{
		base:   base,
		cfg:    cfg,
		system: units.ParseSystem(cfg.Units),
	}
}

// System is the unit system requested from the provider.
func (c *OpenWeatherClient) System() units.System {
	return c.system
}

// ForecastEnabled reports whether a forecast endpoint is configured.
func (c *OpenWeatherClient) ForecastEnabled() bool {
	return c.cfg.ForecastURL != ""
}

// BreakerState exposes the circuit state for health probes.
func (c *OpenWeatherClient) BreakerState() gobreaker.State {
	return c.base.State()
}

// Geocode resolves free text to the first matching location. Empty state
// or country components are sent as-is.
func (c *OpenWeatherClient) Geocode(ctx context.Context, city, state, country string) (*dataset.Location, error) {
	params := url.Values{}
	params.Set("q", strings.Join([]string{city, state, country}, ","))
	params.Set("limit", strconv.Itoa(c.cfg.GeoLimit))
	params.Set("appid", c.cfg.APIKey.Unmask())

	body, err := c.get(ctx, c.cfg.GeoURL, params)
	if err != nil {
		return nil, err
	}

	arr, err := dataset.ParseArray(body)
	if err != nil {
		return nil, decodeFailure("geocode", err)
	}
	loc, err := dataset.DecodeGeocodeResult(arr)
	if errors.Is(err, dataset.ErrNoResults) {
		return nil, types.NewAppError(types.ErrCodeNotFoundLocation, "no location matches the query", err).
			WithDetails(map[string]any{"query": params.Get("q")})
	}
	if err != nil {
		return nil, decodeFailure("geocode", err)
	}
	return &loc, nil
}

// CurrentWeather fetches current conditions at the coordinates.
func (c *OpenWeatherClient) CurrentWeather(ctx context.Context, lat, lon float64) (*dataset.CurrentWeather, error) {
	body, err := c.get(ctx, c.cfg.CurrentWeatherURL, c.weatherParams(lat, lon))
	if err != nil {
		return nil, err
	}

	obj, err := dataset.ParseObject(body)
	if err != nil {
		return nil, decodeFailure("current weather", err)
	}
	cw, err := dataset.DecodeCurrentWeather(obj, c.system)
	if err != nil {
		return nil, decodeFailure("current weather", err)
	}
	return &cw, nil
}

// Forecast fetches the 5 day / 3 hour forecast at the coordinates.
func (c *OpenWeatherClient) Forecast(ctx context.Context, lat, lon float64) (*dataset.Forecast, error) {
	if !c.ForecastEnabled() {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "forecast endpoint not configured", nil)
	}

	body, err := c.get(ctx, c.cfg.ForecastURL, c.weatherParams(lat, lon))
	if err != nil {
		return nil, err
	}

	obj, err := dataset.ParseObject(body)
	if err != nil {
		return nil, decodeFailure("forecast", err)
	}
	fc, err := dataset.DecodeForecast(obj, c.system)
	if err != nil {
		return nil, decodeFailure("forecast", err)
	}
	return &fc, nil
}

func (c *OpenWeatherClient) weatherParams(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("lang", c.cfg.Language)
	params.Set("appid", c.cfg.APIKey.Unmask())
	params.Set("units", c.system.String())
	return params
}

// get issues a GET to rawURL with params merged into any query the base URL
// already carries, and returns the body of a 2xx response.
func (c *OpenWeatherClient) get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "invalid provider URL", err)
	}
	q := u.Query()
	for k, vs := range params {
		q[k] = vs
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "failed to build provider request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamUnavailable, "failed to read provider response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, types.NewAppError(
			types.ErrCodeUpstreamBadStatus,
			fmt.Sprintf("provider returned %d", resp.StatusCode),
			nil,
		).WithDetails(map[string]any{"status": resp.StatusCode, "path": u.Path})
	}
	return body, nil
}

func decodeFailure(call string, err error) *types.AppError {
	return types.NewAppError(types.ErrCodeInternalDecode, "failed to decode "+call+" response", err)
}
