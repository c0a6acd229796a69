// Package web serves the weather lookup page and its JSON counterpart.
//
// Both surfaces take the same query (city, optional state and country),
// validate it, and delegate to the weather service. The HTML page always
// renders, showing placeholders for whatever the provider could not supply;
// the JSON endpoint reports a failed location lookup as an error envelope.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"weatherdesk/internal/core"
	"weatherdesk/internal/types"
	"weatherdesk/internal/weather"
)

// Form field names posted by the lookup page.
const (
	fieldCity    = "cityName"
	fieldState   = "stateName"
	fieldCountry = "countryName"
)

// maxFormBytes bounds the lookup form body.
const maxFormBytes = 8 << 10

// Fetcher is the service contract for the handler. weather.Service
// satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, q weather.Query) weather.Report
}

// Handler maps lookup requests to the weather service.
type Handler struct {
	service   Fetcher
	validator *core.Validator
	renderer  *Renderer
	language  string
	logger    *slog.Logger
}

// NewHandler creates a Handler. language selects the localized city name
// shown on the page.
func NewHandler(
	svc Fetcher,
	val *core.Validator,
	renderer *Renderer,
	language string,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service:   svc,
		validator: val,
		renderer:  renderer,
		language:  language,
		logger:    logger,
	}
}

// RegisterRoutes mounts the page and the JSON endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleHome)
	r.Post("/", h.HandleLookup)
	r.Get("/v1/weather", h.HandleGetWeather)
}

// HandleHome handles GET /: the empty lookup form.
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, page{})
}

// HandleLookup handles POST /. An invalid form re-renders the page with the
// submitted values and a message; otherwise the report is rendered, partial
// or not.
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, page{Message: "The form could not be read."})
		return
	}

	q := weather.Query{
		City:    r.PostForm.Get(fieldCity),
		State:   r.PostForm.Get(fieldState),
		Country: r.PostForm.Get(fieldCountry),
	}.Normalize()

	if err := h.validator.ValidateStruct(q); err != nil {
		h.render(w, r, http.StatusBadRequest, page{Query: q, Message: formMessage(err)})
		return
	}

	report := h.service.Fetch(r.Context(), q)
	h.render(w, r, http.StatusOK, page{Query: q, Report: &report, Message: reportMessage(report)})
}

// HandleGetWeather handles GET /v1/weather?city=&state=&country=.
func (h *Handler) HandleGetWeather(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := weather.Query{
		City:    params.Get("city"),
		State:   params.Get("state"),
		Country: params.Get("country"),
	}.Normalize()

	if err := h.validator.ValidateStruct(q); err != nil {
		core.Error(w, r, err)
		return
	}

	report := h.service.Fetch(r.Context(), q)
	if report.Location == nil {
		code, ok := report.Errors[weather.CallGeocode]
		if !ok {
			code = types.ErrCodeInternalUnexpected
		}
		core.Error(w, r, types.NewAppError(code, "location lookup failed", nil))
		return
	}

	w.Header().Set("Cache-Control", "private, max-age=60")
	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: report})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data page) {
	if data.Language == "" {
		data.Language = h.language
	}
	if err := h.renderer.Render(w, status, data); err != nil {
		h.logger.Error("rendering page failed",
			"request_id", types.GetRequestID(r.Context()),
			"error", err,
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// formMessage turns a validation failure into a sentence for the page.
func formMessage(err error) string {
	var appErr *types.AppError
	if errors.As(err, &appErr) && appErr.Code == types.ErrCodeValidationMissingField {
		return "Please enter a city name."
	}
	return "Each field must be at most 100 characters."
}

// reportMessage summarizes the failed calls of a report, if any.
func reportMessage(report weather.Report) string {
	if report.Location == nil {
		if report.Errors[weather.CallGeocode] == types.ErrCodeNotFoundLocation {
			return "No matching location was found."
		}
		return "The weather provider is unavailable. Please try again later."
	}
	if len(report.Errors) > 0 {
		return "Some weather data could not be loaded."
	}
	return ""
}
