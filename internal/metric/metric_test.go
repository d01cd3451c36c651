package metric

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnrobert/envportal/internal/flow"
)

func TestObserverCounts(t *testing.T) {
	m := New()
	m.FieldEdited("login", "username")
	m.FieldEdited("login", "password")
	m.SignalIgnored("login", flow.SignalKey)
	m.Resolved("login", flow.SignalActivate, flow.Failure("no"))
	m.Resolved("login", flow.SignalActivate, flow.Success("yes"))
	m.Resolved("login", flow.SignalKey, flow.Success("yes"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FieldEdits.WithLabelValues("login")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IgnoredSignals.WithLabelValues("login", "key")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("login", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Submissions.WithLabelValues("login", "success")))
}

func TestActiveGauge(t *testing.T) {
	m := New()
	h := m.SessionHooks()
	h.Mounted("signup")
	h.Mounted("signup")
	h.Discarded("signup")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Active.WithLabelValues("signup")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.Resolved("signup", flow.SignalActivate, flow.Success("ok"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `envportal_submissions_total{flow="signup",outcome="success"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
