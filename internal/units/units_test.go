package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"weatherdesk/internal/config"
)

func testTokens() config.FormatConfig {
	return config.FormatConfig{
		MetricTemperature:   "°C",
		ImperialTemperature: "°F",
		StandardTemperature: "K",
		Pressure:            "hPa",
		Humidity:            "%",
		ImperialWindSpeed:   "mph",
		StandardWindSpeed:   "m/s",
		WindDirection:       "°",
		ImperialVisibility:  "mi",
		StandardVisibility:  "km",
	}
}

func TestParseSystem(t *testing.T) {
	tests := []struct {
		in   string
		want System
	}{
		{"metric", Metric},
		{"imperial", Imperial},
		{" Imperial ", Imperial},
		{"METRIC", Metric},
		{"standard", Standard},
		{"kelvin", Standard},
		{"", Standard},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSystem(tt.in))
		})
	}
}

func TestMetersToKM(t *testing.T) {
	assert.Equal(t, 1.0, MetersToKM(1000))
	assert.Equal(t, 12.35, MetersToKM(12345))
	assert.Equal(t, 10.0, MetersToKM(10000))
	assert.Equal(t, 0.0, MetersToKM(0))
	assert.Equal(t, -1.5, MetersToKM(-1500))
}

func TestKMToMiles(t *testing.T) {
	assert.Equal(t, 6.21, KMToMiles(10))
	assert.Equal(t, 0.62, KMToMiles(1))
	assert.Equal(t, 0.0, KMToMiles(0))
}

func TestConvertersPassThroughNonFinite(t *testing.T) {
	assert.True(t, math.IsInf(MetersToKM(math.Inf(1)), 1))
	assert.True(t, math.IsNaN(KMToMiles(math.NaN())))
}

func TestVisibility(t *testing.T) {
	assert.Equal(t, 10.0, Visibility(10000, Metric))
	assert.Equal(t, 10.0, Visibility(10000, Standard))
	assert.Equal(t, 6.21, Visibility(10000, Imperial))
}

func TestResolveFormats(t *testing.T) {
	tokens := testTokens()

	t.Run("imperial", func(t *testing.T) {
		fs := ResolveFormats(Imperial, tokens)
		assert.Equal(t, "°F", fs.Temperature)
		assert.Equal(t, "mph", fs.WindSpeed)
		assert.Equal(t, "mi", fs.Visibility)
		assert.Equal(t, "hPa", fs.Pressure)
		assert.Equal(t, "%", fs.Humidity)
		assert.Equal(t, "°", fs.WindDirection)
	})

	t.Run("metric uses standard wind and visibility", func(t *testing.T) {
		fs := ResolveFormats(Metric, tokens)
		assert.Equal(t, "°C", fs.Temperature)
		assert.Equal(t, "m/s", fs.WindSpeed)
		assert.Equal(t, "km", fs.Visibility)
	})

	t.Run("unknown value equals standard", func(t *testing.T) {
		bogus := ResolveFormats(ParseSystem("bogus"), tokens)
		standard := ResolveFormats(Standard, tokens)
		assert.Equal(t, standard, bogus)
		assert.Equal(t, "K", bogus.Temperature)
	})
}

func TestFormatSetMissing(t *testing.T) {
	assert.Empty(t, ResolveFormats(Metric, testTokens()).Missing())

	tokens := testTokens()
	tokens.MetricTemperature = ""
	tokens.StandardVisibility = ""
	fs := ResolveFormats(Metric, tokens)
	assert.Equal(t, []string{"temperature", "visibility"}, fs.Missing())

	assert.Len(t, FormatSet{}.Missing(), 6)
}
