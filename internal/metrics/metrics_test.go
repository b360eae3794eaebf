package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRecorder()

	r.RecordHTTPRequest("GET", "/", 200, 5*time.Millisecond)
	r.RecordHTTPRequest("GET", "/", 200, 3*time.Millisecond)
	r.RecordHTTPRequest("POST", "/_dash-update", 400, time.Millisecond)

	if got := testutil.ToFloat64(r.requests.WithLabelValues("GET", "/", "200")); got != 2 {
		t.Errorf("GET / 200 = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.requests.WithLabelValues("POST", "/_dash-update", "400")); got != 1 {
		t.Errorf("POST update 400 = %v, want 1", got)
	}
}

func TestRecordDispatch(t *testing.T) {
	r := NewRecorder()

	r.RecordDispatch("year-dropdown", time.Millisecond, nil)
	r.RecordDispatch("year-dropdown", time.Millisecond, errors.New("no final"))
	r.RecordDispatch("year-dropdown", time.Millisecond, nil)

	if got := testutil.ToFloat64(r.dispatches.WithLabelValues("year-dropdown", "ok")); got != 2 {
		t.Errorf("ok dispatches = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.dispatches.WithLabelValues("year-dropdown", "error")); got != 1 {
		t.Errorf("error dispatches = %v, want 1", got)
	}
}

func TestSetDatasetSize(t *testing.T) {
	r := NewRecorder()
	r.SetDatasetSize(22, 8)

	if got := testutil.ToFloat64(r.finals); got != 22 {
		t.Errorf("finals gauge = %v, want 22", got)
	}
	if got := testutil.ToFloat64(r.countries); got != 8 {
		t.Errorf("countries gauge = %v, want 8", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	r.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
	r.RecordDispatch("x", time.Millisecond, nil)
	r.SetDatasetSize(1, 1)
}

func TestHandler(t *testing.T) {
	r := NewRecorder()
	r.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)

	server := httptest.NewServer(r.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), "wc_dashboard_http_requests_total") {
		t.Errorf("exposition missing request counter:\n%s", body)
	}
}
