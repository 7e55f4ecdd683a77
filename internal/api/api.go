// Package api implements the HTTP handlers of the BMI service.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/Gobd/querycheck"
	"github.com/Gobd/querycheck/bmi"
	"github.com/Gobd/querycheck/dispatch"
	"github.com/Gobd/querycheck/internal/metrics"
	"github.com/rs/zerolog/hlog"
)

// Paths served by the public listener.
const (
	PathBMI    = "/"
	PathHealth = "/healthz"
)

// HealthBody is the fixed body of the liveness endpoint.
const HealthBody = "OK"

// ErrorPrefix starts the body of every 422 response.
const ErrorPrefix = "Error Description:"

// NewBMIValidator declares the query of the BMI endpoint. A fresh Validator
// is built for every request since Rules are mutable builders.
func NewBMIValidator() *querycheck.Validator {
	v := querycheck.New().RequireCount(2)
	v.RequireQuery("height").
		IsFloat().
		GreaterThan(50).
		LessThan(300).
		Describe("Height in centimetres.").
		Example(170)
	v.RequireQuery("weight").
		IsFloat().
		GreaterThan(20).
		LessThan(300).
		Describe("Weight in kilograms.").
		Example(70)
	return v
}

// Handler groups the public handlers.
type Handler struct {
	metrics *metrics.Metrics
}

// New returns a Handler recording into m, which may be nil.
func New(m *metrics.Metrics) *Handler {
	return &Handler{metrics: m}
}

// Routes implements dispatch.RouteProvider.
func (h *Handler) Routes() []dispatch.Route {
	return []dispatch.Route{
		{Path: PathBMI, Handler: http.HandlerFunc(h.BMI)},
		{Path: PathHealth, Handler: http.HandlerFunc(h.Health)},
	}
}

// BMI validates height and weight from the query and answers with the
// rounded BMI and its category.
func (h *Handler) BMI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	v := NewBMIValidator()
	src := querycheck.QuerySource(r.URL)
	res := v.Validate(src)
	if !res.Passed {
		hlog.FromRequest(r).Info().
			Strs("codes", res.Codes()).
			Strs("unknown", v.UnknownKeys(r.URL.Query())).
			Str("errors", res.ErrorMessage()).
			Msg("rejected bmi query")
		h.metrics.Rejected(res.Codes())
		writeText(w, http.StatusUnprocessableEntity, ErrorPrefix+"\n"+res.ErrorMessage())
		return
	}

	out, err := compute(src)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("compute bmi")
		writeText(w, http.StatusUnprocessableEntity, ErrorPrefix+"\n"+err.Error())
		return
	}

	h.metrics.Computed(string(out.Label))
	writeJSON(w, http.StatusOK, out)
}

func compute(src querycheck.Source) (bmi.Result, error) {
	height, err := querycheck.Float(src, "height")
	if err != nil {
		return bmi.Result{}, err
	}
	weight, err := querycheck.Float(src, "weight")
	if err != nil {
		return bmi.Result{}, err
	}
	return bmi.Compute(height, weight)
}

// Health always answers 200 with HealthBody.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeText(w, http.StatusOK, HealthBody)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
