package dataset

import (
	"fmt"
	"time"

	"weatherdesk/internal/units"
)

// ForecastMain extends Main with the provider's internal temperature
// correction.
type ForecastMain struct {
	Main
	TempKf float64 `json:"temp_kf"`
}

// Entry is one 3-hour forecast step.
type Entry struct {
	Dt         int64          `json:"dt"`
	Main       ForecastMain   `json:"main"`
	Weather    []Condition    `json:"weather"`
	Clouds     Clouds         `json:"clouds"`
	Wind       Wind           `json:"wind"`
	Visibility *float64       `json:"visibility,omitempty"`
	Pop        float64        `json:"pop"`
	Rain       *Precipitation `json:"rain,omitempty"`
	Snow       *Precipitation `json:"snow,omitempty"`
	PartOfDay  string         `json:"pod"`
	DtTxt      string         `json:"dt_txt"`
}

// Time returns the entry timestamp in UTC.
func (e Entry) Time() time.Time {
	return time.Unix(e.Dt, 0).UTC()
}

// City describes the forecast location.
type City struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Coord      Coord     `json:"coord"`
	Country    string    `json:"country"`
	Population int       `json:"population"`
	Timezone   int       `json:"timezone"`
	Sunrise    time.Time `json:"sunrise"`
	Sunset     time.Time `json:"sunset"`
}

// Forecast is a decoded 5 day / 3 hour forecast response.
type Forecast struct {
	Cod     int     `json:"cod"`
	Message int     `json:"message"`
	Cnt     int     `json:"cnt"`
	List    []Entry `json:"list"`
	City    City    `json:"city"`
}

// Day groups the entries that fall on one local calendar date.
type Day struct {
	Date    time.Time
	Entries []Entry
}

// Days groups entries by calendar date in the city's UTC offset, preserving
// order.
func (fc Forecast) Days() []Day {
	zone := time.FixedZone(fc.City.Name, fc.City.Timezone)

	var days []Day
	for _, e := range fc.List {
		local := e.Time().In(zone)
		date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, zone)
		if n := len(days); n > 0 && days[n-1].Date.Equal(date) {
			days[n-1].Entries = append(days[n-1].Entries, e)
			continue
		}
		days = append(days, Day{Date: date, Entries: []Entry{e}})
	}
	return days
}

func decodeForecastMain(f *fields) (ForecastMain, error) {
	tempKf := f.float("temp_kf")
	if err := f.Err(); err != nil {
		return ForecastMain{}, err
	}
	m, err := decodeMain(f)
	if err != nil {
		return ForecastMain{}, err
	}
	return ForecastMain{Main: m, TempKf: tempKf}, nil
}

func decodeEntry(f *fields, system units.System) (Entry, error) {
	main, err := decodeForecastMain(f.child("main"))
	if err != nil {
		return Entry{}, err
	}
	conditions, err := decodeConditions(f, "weather")
	if err != nil {
		return Entry{}, err
	}
	clouds, err := decodeClouds(f.child("clouds"))
	if err != nil {
		return Entry{}, err
	}
	wind, err := decodeWind(f.child("wind"))
	if err != nil {
		return Entry{}, err
	}
	rain, err := decodeOptPrecipitation(f, "rain", Window3h)
	if err != nil {
		return Entry{}, err
	}
	snow, err := decodeOptPrecipitation(f, "snow", Window3h)
	if err != nil {
		return Entry{}, err
	}

	sys := f.child("sys")
	pod := sys.string("pod")
	if err := sys.Err(); err != nil {
		return Entry{}, err
	}

	var visibility *float64
	if meters := f.optFloat("visibility"); meters != nil {
		v := units.Visibility(*meters, system)
		visibility = &v
	}

	e := Entry{
		Dt:         f.int64("dt"),
		Main:       main,
		Weather:    conditions,
		Clouds:     clouds,
		Wind:       wind,
		Visibility: visibility,
		Pop:        f.float("pop"),
		Rain:       rain,
		Snow:       snow,
		PartOfDay:  pod,
		DtTxt:      f.string("dt_txt"),
	}
	if err := f.Err(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func decodeCity(f *fields) (City, error) {
	coord, err := decodeCoord(f.child("coord"))
	if err != nil {
		return City{}, err
	}
	c := City{
		ID:         f.int("id"),
		Name:       f.string("name"),
		Coord:      coord,
		Country:    f.string("country"),
		Population: f.int("population"),
		Timezone:   f.int("timezone"),
		Sunrise:    f.unix("sunrise"),
		Sunset:     f.unix("sunset"),
	}
	if err := f.Err(); err != nil {
		return City{}, err
	}
	return c, nil
}

// DecodeForecast decodes a forecast response. The number of list entries
// must equal cnt.
func DecodeForecast(obj Object, system units.System) (Forecast, error) {
	f := newFields(obj, "")

	fc := Forecast{
		Cod:     f.int("cod"),
		Message: f.int("message"),
		Cnt:     f.int("cnt"),
	}
	entries := f.objects("list")
	if err := f.Err(); err != nil {
		return Forecast{}, err
	}

	fc.List = make([]Entry, 0, len(entries))
	for _, ef := range entries {
		e, err := decodeEntry(ef, system)
		if err != nil {
			return Forecast{}, err
		}
		fc.List = append(fc.List, e)
	}

	if len(fc.List) != fc.Cnt {
		return Forecast{}, &DecodeError{
			Path:   "cnt",
			Reason: fmt.Sprintf("list has %d entries, cnt is %d", len(fc.List), fc.Cnt),
		}
	}

	city, err := decodeCity(f.child("city"))
	if err != nil {
		return Forecast{}, err
	}
	fc.City = city

	return fc, nil
}
