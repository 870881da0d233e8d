package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalKK/campaignmessaging/internal/core"
)

func TestMetrics_CountsValidatorEvents(t *testing.T) {
	m, err := New(nil)
	require.NoError(t, err)

	norm := core.NewNormalizer(m).Normalize([]core.RawRow{
		{"Name", "Phone"},
		{nil, ""},
		{"Bob", int64(712345678), "extra"},
		{"", "254712345678"},
		{"Ann", "0712345678"},
	})
	res := core.NewValidator(core.DefaultCountryCodeRule, m).Validate(norm)
	require.Len(t, res.Contacts, 1)
	require.Equal(t, 3, res.Found())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.rowsSkipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rowsTruncated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.headers))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.countryCodes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rowsAccepted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rowsRejected.WithLabelValues("missing_name")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rowsRejected.WithLabelValues("leading_zero")))
}

func TestMetrics_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.NoError(t, err, "re-registering on the same registry is tolerated")
}

func TestMetrics_Handler(t *testing.T) {
	m, err := New(nil)
	require.NoError(t, err)
	m.ObserveUpload("process", "OK", 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `contactlinks_uploads_total{code="OK",op="process"} 1`)
}
