package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Counters(t *testing.T) {
	m := NewManager(WithRegistry(prometheus.NewRegistry()))

	m.ObserveQuery("game", 20*time.Millisecond, 12)
	m.ObserveQuery("coin", 10*time.Millisecond, 3)
	m.ObserveQuery("game", 5*time.Millisecond, 1)
	m.ObserveRanking(30*time.Millisecond, 7)
	m.IncExport()
	m.IncRefreshCancelled()
	m.IncRefreshCancelled()

	assert.Equal(t, 13.0, testutil.ToFloat64(m.eventsFetched.WithLabelValues("game")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.eventsFetched.WithLabelValues("coin")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rankingRuns))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.rankingStudents))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.refreshCancelled))
}

func TestManager_Handler(t *testing.T) {
	m := NewManager(WithNamespace("test"))
	m.IncExport()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "test_export_workbooks_total 1"))
}
