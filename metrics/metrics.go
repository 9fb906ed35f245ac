// Package metrics provides Prometheus instrumentation for signature validation
// and key set retrieval.
package metrics

import (
	"errors"
	"time"

	"github.com/axent-pl/jwksverify/common"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace is the Prometheus namespace for all metrics of this module.
	Namespace = "jwksverify"

	LabelResult = "result"
	LabelStatus = "status"

	StatusSuccess     = "success"
	StatusError       = "error"
	StatusThrottled   = "throttled"
	StatusNotModified = "not_modified"
)

// Recorder holds the collectors. A nil *Recorder is valid and records nothing.
type Recorder struct {
	validations *prometheus.CounterVec
	duration    prometheus.Histogram
	refreshes   *prometheus.CounterVec
	fetches     *prometheus.CounterVec
}

// NewRecorder creates the collectors and registers them with reg when reg is not nil.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "validations_total",
				Help:      "Total number of signature validations by result",
			},
			[]string{LabelResult},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "validation_duration_seconds",
				Help:      "Duration of signature validations in seconds, including key set refresh",
				Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
		refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "key_refreshes_total",
				Help:      "Total number of on-demand key set refreshes triggered by validation",
			},
			[]string{LabelStatus},
		),
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "jwks",
				Name:      "fetches_total",
				Help:      "Total number of JWKS document fetches by status",
			},
			[]string{LabelStatus},
		),
	}
	if reg != nil {
		reg.MustRegister(r.validations, r.duration, r.refreshes, r.fetches)
	}
	return r
}

// ObserveValidation records the outcome of one validation.
func (r *Recorder) ObserveValidation(err error, d time.Duration) {
	if r == nil {
		return
	}
	r.validations.WithLabelValues(Result(err)).Inc()
	r.duration.Observe(d.Seconds())
}

func (r *Recorder) ObserveRefresh(status string) {
	if r == nil {
		return
	}
	r.refreshes.WithLabelValues(status).Inc()
}

func (r *Recorder) ObserveFetch(status string) {
	if r == nil {
		return
	}
	r.fetches.WithLabelValues(status).Inc()
}

// Result maps a validation error onto a bounded label value.
func Result(err error) string {
	switch {
	case err == nil:
		return "valid"
	case errors.Is(err, common.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, common.ErrMissingParameter):
		return "missing_parameter"
	case errors.Is(err, common.ErrMissingAlgorithm):
		return "missing_algorithm"
	case errors.Is(err, common.ErrUnsupportedAlgorithmFamily):
		return "unsupported_algorithm_family"
	case errors.Is(err, common.ErrUnknownAlgorithm):
		return "unknown_algorithm"
	case errors.Is(err, common.ErrAmbiguousKey):
		return "ambiguous_key"
	case errors.Is(err, common.ErrNoMatchingKey):
		return "no_matching_key"
	case errors.Is(err, common.ErrKeyNotFoundForKid):
		return "key_not_found_for_kid"
	case errors.Is(err, common.ErrKeySetRefresh):
		return "refresh_failed"
	case errors.Is(err, common.ErrKeyImport):
		return "key_import"
	case errors.Is(err, common.ErrCryptoBackend):
		return "crypto_backend"
	default:
		return "error"
	}
}
