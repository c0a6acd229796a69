package dataset

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeWind(t *testing.T) {
	t.Run("gust absent is nil", func(t *testing.T) {
		w, err := decodeWind(newFields(Object{"speed": json.Number("3.1"), "deg": json.Number("180")}, "wind"))
		require.NoError(t, err)
		assert.Equal(t, 3.1, w.Speed)
		assert.Equal(t, 180, w.Deg)
		assert.Nil(t, w.Gust)
	})

	t.Run("gust present", func(t *testing.T) {
		w, err := decodeWind(newFields(Object{"speed": json.Number("3"), "deg": json.Number("90"), "gust": json.Number("7.5")}, "wind"))
		require.NoError(t, err)
		require.NotNil(t, w.Gust)
		assert.Equal(t, 7.5, *w.Gust)
	})

	t.Run("missing speed", func(t *testing.T) {
		w, err := decodeWind(newFields(Object{"deg": json.Number("90")}, "wind"))
		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "wind.speed", de.Path)
		assert.Equal(t, Wind{}, w)
	})
}

func TestDecodeConditionsPreservesOrder(t *testing.T) {
	parent := newFields(Object{"weather": []any{
		Object{"id": json.Number("500"), "main": "Rain", "description": "light rain", "icon": "10d"},
		Object{"id": json.Number("701"), "main": "Mist", "description": "mist", "icon": "50d"},
	}}, "")

	conds, err := decodeConditions(parent, "weather")
	require.NoError(t, err)
	require.Len(t, conds, 2)
	assert.Equal(t, "Rain", conds[0].Main)
	assert.Equal(t, "Mist", conds[1].Main)
}

func TestDecodeConditionsFailsOnBadEntry(t *testing.T) {
	parent := newFields(Object{"weather": []any{
		Object{"id": json.Number("500"), "main": "Rain", "description": "light rain", "icon": "10d"},
		Object{"id": json.Number("701"), "main": "Mist", "icon": "50d"},
	}}, "")

	conds, err := decodeConditions(parent, "weather")
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "weather[1].description", de.Path)
	assert.Nil(t, conds)
}

func TestDecodeOptPrecipitation(t *testing.T) {
	parent := newFields(Object{"rain": Object{"1h": json.Number("0.25")}}, "")

	rain, err := decodeOptPrecipitation(parent, "rain", Window1h)
	require.NoError(t, err)
	require.NotNil(t, rain)
	require.NotNil(t, rain.Amount)
	assert.Equal(t, 0.25, *rain.Amount)
	assert.Equal(t, Window1h, rain.Window)

	snow, err := decodeOptPrecipitation(parent, "snow", Window1h)
	require.NoError(t, err)
	assert.Nil(t, snow)
}

func TestDecodePrecipitationWrongWindow(t *testing.T) {
	p, err := decodePrecipitation(newFields(Object{"1h": json.Number("1.0")}, "rain"), Window3h)
	require.NoError(t, err)
	assert.Nil(t, p.Amount)
	assert.Equal(t, Window3h, p.Window)
}
