package dataset

// Precipitation windows used by the provider.
const (
	Window1h = "1h"
	Window3h = "3h"
)

// Coord is a latitude/longitude pair.
type Coord struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Clouds is cloud cover in percent.
type Clouds struct {
	All int `json:"all"`
}

// Condition is one entry of the weather array.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Wind is the wind vector. Gust is nil when the provider omits it.
type Wind struct {
	Speed float64  `json:"speed"`
	Deg   int      `json:"deg"`
	Gust  *float64 `json:"gust,omitempty"`
}

// Precipitation is a rain or snow volume over Window.
type Precipitation struct {
	Amount *float64 `json:"amount,omitempty"`
	Window string   `json:"window"`
}

func decodeCoord(f *fields) (Coord, error) {
	c := Coord{
		Lon: f.float("lon"),
		Lat: f.float("lat"),
	}
	if err := f.Err(); err != nil {
		return Coord{}, err
	}
	return c, nil
}

func decodeClouds(f *fields) (Clouds, error) {
	c := Clouds{All: f.int("all")}
	if err := f.Err(); err != nil {
		return Clouds{}, err
	}
	return c, nil
}

func decodeCondition(f *fields) (Condition, error) {
	c := Condition{
		ID:          f.int("id"),
		Main:        f.string("main"),
		Description: f.string("description"),
		Icon:        f.string("icon"),
	}
	if err := f.Err(); err != nil {
		return Condition{}, err
	}
	return c, nil
}

// decodeConditions decodes every entry in order. One bad entry fails all.
func decodeConditions(parent *fields, key string) ([]Condition, error) {
	entries := parent.objects(key)
	if err := parent.Err(); err != nil {
		return nil, err
	}

	out := make([]Condition, 0, len(entries))
	for _, e := range entries {
		c, err := decodeCondition(e)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeWind(f *fields) (Wind, error) {
	w := Wind{
		Speed: f.float("speed"),
		Deg:   f.int("deg"),
		Gust:  f.optFloat("gust"),
	}
	if err := f.Err(); err != nil {
		return Wind{}, err
	}
	return w, nil
}

func decodePrecipitation(f *fields, window string) (Precipitation, error) {
	p := Precipitation{
		Amount: f.optFloat(window),
		Window: window,
	}
	if err := f.Err(); err != nil {
		return Precipitation{}, err
	}
	return p, nil
}

// decodeOptPrecipitation returns nil when key is absent from parent.
func decodeOptPrecipitation(parent *fields, key, window string) (*Precipitation, error) {
	child := parent.optChild(key)
	if child == nil {
		return nil, parent.Err()
	}
	p, err := decodePrecipitation(child, window)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
