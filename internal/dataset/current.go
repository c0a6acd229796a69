package dataset

import (
	"time"

	"weatherdesk/internal/units"
)

// Main holds the temperature and pressure block.
type Main struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
	SeaLevel  int     `json:"sea_level"`
	GrndLevel int     `json:"grnd_level"`
}

// Sys is the current-weather system block.
type Sys struct {
	Type    *int      `json:"type,omitempty"`
	ID      *int      `json:"id,omitempty"`
	Country string    `json:"country"`
	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
}

// CurrentWeather is a decoded current-conditions response. Visibility is in
// kilometers, or miles for the imperial system.
type CurrentWeather struct {
	Coord      Coord          `json:"coord"`
	Weather    []Condition    `json:"weather"`
	Base       string         `json:"base"`
	Main       Main           `json:"main"`
	Visibility float64        `json:"visibility"`
	Wind       Wind           `json:"wind"`
	Rain       *Precipitation `json:"rain,omitempty"`
	Snow       *Precipitation `json:"snow,omitempty"`
	Clouds     Clouds         `json:"clouds"`
	Dt         int64          `json:"dt"`
	Sys        Sys            `json:"sys"`
	Timezone   int            `json:"timezone"`
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Cod        int            `json:"cod"`
}

func decodeMain(f *fields) (Main, error) {
	m := Main{
		Temp:      f.float("temp"),
		FeelsLike: f.float("feels_like"),
		TempMin:   f.float("temp_min"),
		TempMax:   f.float("temp_max"),
		Pressure:  f.int("pressure"),
		Humidity:  f.int("humidity"),
		SeaLevel:  f.int("sea_level"),
		GrndLevel: f.int("grnd_level"),
	}
	if err := f.Err(); err != nil {
		return Main{}, err
	}
	return m, nil
}

func decodeSys(f *fields) (Sys, error) {
	s := Sys{
		Type:    f.optInt("type"),
		ID:      f.optInt("id"),
		Country: f.string("country"),
		Sunrise: f.unix("sunrise"),
		Sunset:  f.unix("sunset"),
	}
	if err := f.Err(); err != nil {
		return Sys{}, err
	}
	return s, nil
}

// DecodeCurrentWeather decodes a current-weather response, converting
// visibility for the given system.
func DecodeCurrentWeather(obj Object, system units.System) (CurrentWeather, error) {
	f := newFields(obj, "")

	coord, err := decodeCoord(f.child("coord"))
	if err != nil {
		return CurrentWeather{}, err
	}
	conditions, err := decodeConditions(f, "weather")
	if err != nil {
		return CurrentWeather{}, err
	}
	main, err := decodeMain(f.child("main"))
	if err != nil {
		return CurrentWeather{}, err
	}
	wind, err := decodeWind(f.child("wind"))
	if err != nil {
		return CurrentWeather{}, err
	}
	rain, err := decodeOptPrecipitation(f, "rain", Window1h)
	if err != nil {
		return CurrentWeather{}, err
	}
	snow, err := decodeOptPrecipitation(f, "snow", Window1h)
	if err != nil {
		return CurrentWeather{}, err
	}
	clouds, err := decodeClouds(f.child("clouds"))
	if err != nil {
		return CurrentWeather{}, err
	}
	sys, err := decodeSys(f.child("sys"))
	if err != nil {
		return CurrentWeather{}, err
	}

	cw := CurrentWeather{
		Coord:      coord,
		Weather:    conditions,
		Base:       f.string("base"),
		Main:       main,
		Visibility: units.Visibility(f.float("visibility"), system),
		Wind:       wind,
		Rain:       rain,
		Snow:       snow,
		Clouds:     clouds,
		Dt:         f.int64("dt"),
		Sys:        sys,
		Timezone:   f.int("timezone"),
		ID:         f.int("id"),
		Name:       f.string("name"),
		Cod:        f.int("cod"),
	}
	if err := f.Err(); err != nil {
		return CurrentWeather{}, err
	}
	return cw, nil
}
