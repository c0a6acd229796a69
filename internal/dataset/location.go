package dataset

// localNameCodes are the language codes the geocoding API returns city
// names for. Other keys in local_names are ignored.
var localNameCodes = []string{
	"my", "uk", "yi", "la", "th", "os", "ta", "lt", "bg", "zh", "hy", "gu",
	"kw", "ml", "te", "ja", "ko", "sr", "ur", "he", "ru", "el", "ht", "oc",
	"ar", "eo", "fa", "bo", "ka", "mr", "be", "mk", "pl", "ce", "en", "kn",
}

// LocalNames maps a language code to the localized city name.
type LocalNames map[string]string

// Name returns the localized name for lang, if present.
func (n LocalNames) Name(lang string) (string, bool) {
	name, ok := n[lang]
	return name, ok
}

// Location is one geocoding result.
type Location struct {
	Name       string     `json:"name"`
	LocalNames LocalNames `json:"local_names,omitempty"`
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	Country    string     `json:"country"`
	State      *string    `json:"state,omitempty"`
}

// DisplayName prefers the localized name for lang and falls back to Name.
func (l Location) DisplayName(lang string) string {
	if name, ok := l.LocalNames.Name(lang); ok && name != "" {
		return name
	}
	return l.Name
}

// DecodeLocation decodes a single geocoding result.
func DecodeLocation(obj Object) (Location, error) {
	return decodeLocation(newFields(obj, ""))
}

func decodeLocation(f *fields) (Location, error) {
	loc := Location{
		Name:    f.string("name"),
		Lat:     f.float("lat"),
		Lon:     f.float("lon"),
		Country: f.string("country"),
		State:   f.optString("state"),
	}

	if names := f.optChild("local_names"); names != nil {
		loc.LocalNames = decodeLocalNames(names)
		if err := names.Err(); err != nil {
			return Location{}, err
		}
	}

	if err := f.Err(); err != nil {
		return Location{}, err
	}
	return loc, nil
}

func decodeLocalNames(f *fields) LocalNames {
	names := make(LocalNames)
	for _, code := range localNameCodes {
		if name := f.optString(code); name != nil {
			names[code] = *name
		}
	}
	return names
}

// DecodeGeocodeResult decodes the first element of a geocoding response.
func DecodeGeocodeResult(arr []any) (Location, error) {
	if len(arr) == 0 {
		return Location{}, ErrNoResults
	}
	obj, ok := arr[0].(Object)
	if !ok {
		return Location{}, &DecodeError{Path: "[0]", Reason: "expected object, got " + kindOf(arr[0])}
	}
	return decodeLocation(newFields(obj, "[0]"))
}
