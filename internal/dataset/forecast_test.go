package dataset

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherdesk/internal/units"
)

func TestDecodeForecast(t *testing.T) {
	fc, err := DecodeForecast(mustObject(t, atlantaForecast), units.Metric)
	require.NoError(t, err)

	assert.Equal(t, 200, fc.Cod)
	assert.Equal(t, 0, fc.Message)
	assert.Equal(t, 2, fc.Cnt)
	require.Len(t, fc.List, fc.Cnt)

	first := fc.List[0]
	assert.Equal(t, int64(1700017200), first.Dt)
	assert.Equal(t, 12.3, first.Main.Temp)
	assert.Equal(t, 1.3, first.Main.TempKf)
	assert.Equal(t, 990, first.Main.GrndLevel)
	assert.Equal(t, "Rain", first.Weather[0].Main)
	assert.Equal(t, 75, first.Clouds.All)
	require.NotNil(t, first.Wind.Gust)
	assert.Equal(t, 4.1, *first.Wind.Gust)
	require.NotNil(t, first.Visibility)
	assert.Equal(t, 10.0, *first.Visibility)
	assert.Equal(t, 0.4, first.Pop)
	require.NotNil(t, first.Rain)
	require.NotNil(t, first.Rain.Amount)
	assert.Equal(t, 0.52, *first.Rain.Amount)
	assert.Equal(t, "3h", first.Rain.Window)
	assert.Equal(t, "n", first.PartOfDay)
	assert.Equal(t, "2023-11-15 03:00:00", first.DtTxt)

	second := fc.List[1]
	assert.Nil(t, second.Visibility)
	assert.Nil(t, second.Rain)
	assert.Nil(t, second.Wind.Gust)

	assert.Equal(t, 4180439, fc.City.ID)
	assert.Equal(t, "Atlanta", fc.City.Name)
	assert.Equal(t, Coord{Lon: -84.388, Lat: 33.749}, fc.City.Coord)
	assert.Equal(t, 420003, fc.City.Population)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), fc.City.Sunset)
}

func TestDecodeForecastImperialVisibility(t *testing.T) {
	fc, err := DecodeForecast(mustObject(t, atlantaForecast), units.Imperial)
	require.NoError(t, err)
	require.NotNil(t, fc.List[0].Visibility)
	assert.Equal(t, 6.21, *fc.List[0].Visibility)
}

func TestDecodeForecastCountMismatch(t *testing.T) {
	for _, cnt := range []string{"1", "3"} {
		t.Run("cnt="+cnt, func(t *testing.T) {
			obj := mustObject(t, atlantaForecast)
			obj["cnt"] = json.Number(cnt)

			fc, err := DecodeForecast(obj, units.Metric)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "cnt", de.Path)
			assert.Nil(t, fc.List)
		})
	}
}

func TestDecodeForecastEntryErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(entry Object)
		path   string
	}{
		{"missing pop", func(e Object) { delete(e, "pop") }, "list[1].pop"},
		{"missing temp_kf", func(e Object) { delete(e["main"].(Object), "temp_kf") }, "list[1].main.temp_kf"},
		{"missing pod", func(e Object) { delete(e["sys"].(Object), "pod") }, "list[1].sys.pod"},
		{"bad visibility", func(e Object) { e["visibility"] = true }, "list[1].visibility"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := mustObject(t, atlantaForecast)
			tt.mutate(obj["list"].([]any)[1].(Object))

			_, err := DecodeForecast(obj, units.Metric)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.path, de.Path)
		})
	}
}

func TestDecodeForecastMissingCity(t *testing.T) {
	_, err := DecodeForecast(without(mustObject(t, atlantaForecast), "city"), units.Metric)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "city", de.Path)
}

func TestForecastDays(t *testing.T) {
	fc, err := DecodeForecast(mustObject(t, atlantaForecast), units.Metric)
	require.NoError(t, err)

	// 03:00 and 06:00 UTC on Nov 15 are 22:00 Nov 14 and 01:00 Nov 15 at UTC-5.
	days := fc.Days()
	require.Len(t, days, 2)
	assert.Equal(t, 14, days[0].Date.Day())
	assert.Equal(t, 15, days[1].Date.Day())
	assert.Len(t, days[0].Entries, 1)
	assert.Len(t, days[1].Entries, 1)
}

func TestForecastDaysEmpty(t *testing.T) {
	assert.Empty(t, Forecast{}.Days())
}
