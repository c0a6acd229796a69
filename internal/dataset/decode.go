// Package dataset decodes OpenWeatherMap JSON payloads into typed records.
//
// Payloads are parsed into generic objects with numbers kept as json.Number,
// then read field by field. Every decoder returns either a fully populated
// record or a *DecodeError naming the offending JSON path; partial records
// are never returned.
package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// ErrNoResults is returned when the geocoding array is empty.
var ErrNoResults = errors.New("dataset: geocoding returned no results")

// Object is a parsed JSON object.
type Object = map[string]any

// DecodeError reports the first field that could not be decoded.
type DecodeError struct {
	Path   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("dataset: decode %s: %s", e.Path, e.Reason)
}

// ParseObject parses a JSON document whose top level must be an object.
func ParseObject(data []byte) (Object, error) {
	v, err := parse(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, &DecodeError{Path: "$", Reason: "expected object, got " + kindOf(v)}
	}
	return obj, nil
}

// ParseArray parses a JSON document whose top level must be an array.
func ParseArray(data []byte) ([]any, error) {
	v, err := parse(data)
	if err != nil {
		return nil, err
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, &DecodeError{Path: "$", Reason: "expected array, got " + kindOf(v)}
	}
	return arr, nil
}

func parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &DecodeError{Path: "$", Reason: err.Error()}
	}
	return v, nil
}

// fields reads typed values out of one JSON object. The first failure is
// kept and every later read becomes a no-op returning the zero value, so a
// decoder can read all of its fields and check Err once.
type fields struct {
	obj  Object
	path string
	err  error
}

func newFields(obj Object, path string) *fields {
	return &fields{obj: obj, path: path}
}

func (f *fields) Err() error {
	return f.err
}

func (f *fields) at(key string) string {
	if f.path == "" {
		return key
	}
	return f.path + "." + key
}

func (f *fields) fail(key, reason string) {
	if f.err == nil {
		f.err = &DecodeError{Path: f.at(key), Reason: reason}
	}
}

// lookup returns the raw value for key. Missing and null are both reported
// as absent.
func (f *fields) lookup(key string) (any, bool) {
	if f.err != nil {
		return nil, false
	}
	v, ok := f.obj[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (f *fields) required(key string) (any, bool) {
	v, ok := f.lookup(key)
	if !ok && f.err == nil {
		f.fail(key, "required field missing")
	}
	return v, ok
}

func (f *fields) float(key string) float64 {
	v, ok := f.required(key)
	if !ok {
		return 0
	}
	n, err := toFloat(v)
	if err != nil {
		f.fail(key, err.Error())
	}
	return n
}

func (f *fields) optFloat(key string) *float64 {
	v, ok := f.lookup(key)
	if !ok {
		return nil
	}
	n, err := toFloat(v)
	if err != nil {
		f.fail(key, err.Error())
		return nil
	}
	return &n
}

func (f *fields) int64(key string) int64 {
	v, ok := f.required(key)
	if !ok {
		return 0
	}
	n, err := toInt(v)
	if err != nil {
		f.fail(key, err.Error())
	}
	return n
}

func (f *fields) int(key string) int {
	return int(f.int64(key))
}

func (f *fields) optInt(key string) *int {
	v, ok := f.lookup(key)
	if !ok {
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		f.fail(key, err.Error())
		return nil
	}
	i := int(n)
	return &i
}

func (f *fields) string(key string) string {
	v, ok := f.required(key)
	if !ok {
		return ""
	}
	s, err := toString(v)
	if err != nil {
		f.fail(key, err.Error())
	}
	return s
}

func (f *fields) optString(key string) *string {
	v, ok := f.lookup(key)
	if !ok {
		return nil
	}
	s, err := toString(v)
	if err != nil {
		f.fail(key, err.Error())
		return nil
	}
	return &s
}

// unix reads epoch seconds as a UTC time.
func (f *fields) unix(key string) time.Time {
	sec := f.int64(key)
	if f.err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// child returns a reader for a required nested object. On failure the
// returned reader carries the error.
func (f *fields) child(key string) *fields {
	c := &fields{path: f.at(key)}
	v, ok := f.required(key)
	if !ok {
		c.err = f.err
		return c
	}
	obj, isObj := v.(Object)
	if !isObj {
		f.fail(key, "expected object, got "+kindOf(v))
		c.err = f.err
		return c
	}
	c.obj = obj
	return c
}

// optChild returns nil when the nested object is missing or null.
func (f *fields) optChild(key string) *fields {
	if _, ok := f.lookup(key); !ok {
		return nil
	}
	return f.child(key)
}

// objects returns one reader per element of a required array of objects.
func (f *fields) objects(key string) []*fields {
	v, ok := f.required(key)
	if !ok {
		return nil
	}
	arr, isArr := v.([]any)
	if !isArr {
		f.fail(key, "expected array, got "+kindOf(v))
		return nil
	}

	out := make([]*fields, 0, len(arr))
	for i, el := range arr {
		elemPath := fmt.Sprintf("%s[%d]", f.at(key), i)
		obj, isObj := el.(Object)
		if !isObj {
			f.err = &DecodeError{Path: elemPath, Reason: "expected object, got " + kindOf(el)}
			return nil
		}
		out = append(out, &fields{obj: obj, path: elemPath})
	}
	return out
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return strconv.ParseFloat(string(n), 64)
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected number, got %s", kindOf(v))
	}
}

func toInt(v any) (int64, error) {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	}
	if s, ok := v.(string); ok {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
	}

	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("integer out of range: %v", f)
	}
	return int64(f), nil
}

func toString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	default:
		return "", fmt.Errorf("expected string, got %s", kindOf(v))
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case []any:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
