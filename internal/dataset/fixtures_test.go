package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const atlantaCurrent = `{"coord":{"lon":-84.39,"lat":33.75},"weather":[{"id":800,"main":"Clear","description":"clear sky","icon":"01d"}],"base":"stations","main":{"temp":22.0,"feels_like":21.5,"temp_min":20.0,"temp_max":24.0,"pressure":1015,"humidity":40,"sea_level":1015,"grnd_level":1000},"visibility":10000,"wind":{"speed":3.1,"deg":180},"clouds":{"all":0},"dt":1700000000,"sys":{"type":1,"id":1,"country":"US","sunrise":1699960000,"sunset":1700000000},"timezone":-18000,"id":4180439,"name":"Atlanta","cod":200}`

const atlantaGeocode = `[{"name":"Atlanta","local_names":{"en":"Atlanta","ru":"Атланта","xx":"ignored"},"lat":33.7489924,"lon":-84.3902644,"country":"US","state":"Georgia"}]`

const atlantaForecast = `{
  "cod": "200",
  "message": 0,
  "cnt": 2,
  "list": [
    {
      "dt": 1700017200,
      "main": {"temp": 12.3, "feels_like": 11.1, "temp_min": 11.0, "temp_max": 12.3, "pressure": 1020, "sea_level": 1020, "grnd_level": 990, "humidity": 60, "temp_kf": 1.3},
      "weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10n"}],
      "clouds": {"all": 75},
      "wind": {"speed": 2.5, "deg": 200, "gust": 4.1},
      "visibility": 10000,
      "pop": 0.4,
      "rain": {"3h": 0.52},
      "sys": {"pod": "n"},
      "dt_txt": "2023-11-15 03:00:00"
    },
    {
      "dt": 1700028000,
      "main": {"temp": 10.0, "feels_like": 9.2, "temp_min": 10.0, "temp_max": 10.0, "pressure": 1021, "sea_level": 1021, "grnd_level": 991, "humidity": 70, "temp_kf": 0},
      "weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04n"}],
      "clouds": {"all": 60},
      "wind": {"speed": 1.9, "deg": 190},
      "pop": 0,
      "sys": {"pod": "n"},
      "dt_txt": "2023-11-15 06:00:00"
    }
  ],
  "city": {
    "id": 4180439,
    "name": "Atlanta",
    "coord": {"lat": 33.749, "lon": -84.388},
    "country": "US",
    "population": 420003,
    "timezone": -18000,
    "sunrise": 1699960000,
    "sunset": 1700000000
  }
}`

func mustObject(t *testing.T, raw string) Object {
	t.Helper()
	obj, err := ParseObject([]byte(raw))
	require.NoError(t, err)
	return obj
}

// without returns a copy of obj with key removed from the object at path.
func without(obj Object, key string, path ...string) Object {
	cp := deepCopy(obj).(Object)
	target := cp
	for _, p := range path {
		target = target[p].(Object)
	}
	delete(target, key)
	return cp
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case Object:
		out := make(Object, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}
