package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRequestCountsByLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest("GET", "/api/medications/", 200, 15*time.Millisecond)
	c.RecordRequest("GET", "/api/medications/", 200, 20*time.Millisecond)
	c.RecordRequest("GET", "/api/medications/", 404, time.Millisecond)

	if got := testutil.ToFloat64(c.requests.WithLabelValues("GET", "/api/medications/", "200")); got != 2 {
		t.Errorf("requests{status=200} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.requests.WithLabelValues("GET", "/api/medications/", "404")); got != 1 {
		t.Errorf("requests{status=404} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(c.latency); got != 1 {
		t.Errorf("latency series = %d, want 1", got)
	}
}

func TestRecordJournalWriteAndAuthEvent(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordJournalWrite("seizure_episode", "create")
	c.RecordAuthEvent("login", "failure")
	c.RecordAuthEvent("login", "failure")

	if got := testutil.ToFloat64(c.journalWrites.WithLabelValues("seizure_episode", "create")); got != 1 {
		t.Errorf("journal writes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.authEvents.WithLabelValues("login", "failure")); got != 2 {
		t.Errorf("auth events = %v, want 2", got)
	}
}

func TestHandlerExposesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordJournalWrite("medication", "stop")

	recorder := httptest.NewRecorder()
	Handler(reg).ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(recorder.Result().Body)
	if err != nil {
		t.Fatalf("read metrics body: %v", err)
	}
	if !strings.Contains(string(body), `ictus_journal_writes_total{entity="medication",operation="stop"} 1`) {
		t.Fatalf("expected journal write series in output, got:\n%s", body)
	}
}
