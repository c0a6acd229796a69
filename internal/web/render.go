package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"weatherdesk/internal/dataset"
	"weatherdesk/internal/weather"
)

//go:embed templates/*.html
var templateFS embed.FS

// page is the data bound to the home template. Report is nil on a plain GET.
type page struct {
	Query    weather.Query
	Report   *weather.Report
	Message  string
	Language string
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("home.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the home page with status. The page is rendered to a buffer
// first so a template failure never produces a half-written response.
func (rd *Renderer) Render(w http.ResponseWriter, status int, data page) error {
	var buf bytes.Buffer
	if err := rd.tmpl.ExecuteTemplate(&buf, "home.html", data); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}

var templateFuncs = template.FuncMap{
	"num":      formatNumber,
	"optnum":   formatOptional,
	"clock":    clock,
	"dayname":  func(t time.Time) string { return t.Format("Mon Jan 2") },
	"iconURL":  iconURL,
	"percent":  func(p float64) string { return strconv.Itoa(int(p*100+0.5)) + "%" },
	"localize": func(loc *dataset.Location, lang string) string { return loc.DisplayName(lang) },
	"deref":    func(s *string) string { return derefString(s) },
}

// formatNumber renders v with at most two decimals and no trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return formatNumber(*v)
}

// clock formats t as wall time at the given UTC offset in seconds.
func clock(t time.Time, offset int) string {
	return t.In(time.FixedZone("", offset)).Format("15:04")
}

func iconURL(code string) string {
	return "https://openweathermap.org/img/wn/" + code + "@2x.png"
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
