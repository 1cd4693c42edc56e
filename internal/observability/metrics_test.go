package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics()

	m.ObserveRequest(http.MethodPost, "/api/ai/chat", 200, 120*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/api/ai/chat", 200, 80*time.Millisecond)
	m.ObserveReply("fallback")
	m.ActiveSessions.Set(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/api/ai/chat", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReplyOutcomes.WithLabelValues("fallback")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ActiveSessions))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.ObserveReply("ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `career_reply_outcomes_total{outcome="ok"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestMetrics_Independent(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.ObserveReply("ok")

	assert.Equal(t, 0.0, testutil.ToFloat64(b.ReplyOutcomes.WithLabelValues("ok")))
}
