// Package metrics exposes Prometheus counters for uploads and row outcomes.
//
// Metrics doubles as a core.Diagnostics sink: it is safe to share across
// concurrent uploads because every collector is.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CalKK/campaignmessaging/internal/core"
)

const namespace = "contactlinks"

// Metrics holds the registered collectors.
type Metrics struct {
	registry *prometheus.Registry

	uploads        *prometheus.CounterVec
	uploadDuration *prometheus.HistogramVec
	rowsAccepted   prometheus.Counter
	rowsRejected   *prometheus.CounterVec
	rowsSkipped    prometheus.Counter
	rowsTruncated  prometheus.Counter
	headers        prometheus.Counter
	countryCodes   prometheus.Counter
}

var _ core.Diagnostics = (*Metrics)(nil)

func registerCollector(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return nil
		}
		return fmt.Errorf("register collector: %w", err)
	}
	return nil
}

// New registers all collectors, plus the Go and process collectors, on reg.
// A nil reg gets a fresh registry.
//
// Metrics registered:
//   - contactlinks_uploads_total{op, code}
//   - contactlinks_upload_duration_seconds{op}
//   - contactlinks_rows_accepted_total
//   - contactlinks_rows_rejected_total{kind}
//   - contactlinks_rows_skipped_total
//   - contactlinks_rows_truncated_total
//   - contactlinks_header_rows_total
//   - contactlinks_country_code_added_total
func New(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: reg,
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Uploads by operation and result code",
		}, []string{"op", "code"}),
		uploadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_duration_seconds",
			Help:      "Time spent decoding and validating an upload",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"op"}),
		rowsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_accepted_total",
			Help:      "Rows that produced a contact",
		}),
		rowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_rejected_total",
			Help:      "Rows rejected by validation, by reason",
		}, []string{"kind"}),
		rowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Empty rows dropped during normalization",
		}),
		rowsTruncated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_truncated_total",
			Help:      "Rows cut down to two columns",
		}),
		headers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "header_rows_total",
			Help:      "Uploads whose first row was treated as a header",
		}),
		countryCodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "country_code_added_total",
			Help:      "Local numbers completed with the default country code",
		}),
	}

	for _, c := range []prometheus.Collector{
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.uploads, m.uploadDuration,
		m.rowsAccepted, m.rowsRejected, m.rowsSkipped, m.rowsTruncated,
		m.headers, m.countryCodes,
	} {
		if err := registerCollector(reg, c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveUpload records one finished request. code is "OK" on success and
// the support code from core.MapError otherwise.
func (m *Metrics) ObserveUpload(op, code string, d time.Duration) {
	m.uploads.WithLabelValues(op, code).Inc()
	m.uploadDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) RowSkipped(int)                       { m.rowsSkipped.Inc() }
func (m *Metrics) RowTruncated(int, int)                { m.rowsTruncated.Inc() }
func (m *Metrics) HeaderDetected(core.NormalizedRow)    { m.headers.Inc() }
func (m *Metrics) CountryCodeAdded(int, string, string) { m.countryCodes.Inc() }
func (m *Metrics) RowAccepted(int, core.Contact)        { m.rowsAccepted.Inc() }

func (m *Metrics) RowRejected(err core.ValidationError) {
	m.rowsRejected.WithLabelValues(err.Kind.String()).Inc()
}
