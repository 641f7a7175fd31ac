package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ObserveRPC("/dropin.v1.SessionService/AddParticipant", "ok")
	m.ObserveRPC("/dropin.v1.SessionService/AddParticipant", "ok")
	m.ObserveRPC("/dropin.v1.SessionService/AddParticipant", "invalid_argument")
	m.PersistFailure("remote")
	m.OCRResult("ok")
	m.GamePromoted()

	if got := testutil.ToFloat64(m.rpcRequests.WithLabelValues("/dropin.v1.SessionService/AddParticipant", "ok")); got != 2 {
		t.Errorf("rpc ok count = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(m.rpcRequests); got != 2 {
		t.Errorf("rpc series = %d, want 2", got)
	}
	if got := testutil.ToFloat64(m.persistFailures.WithLabelValues("remote")); got != 1 {
		t.Errorf("persist failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ocrRequests.WithLabelValues("ok")); got != 1 {
		t.Errorf("ocr ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.gamesPromoted); got != 1 {
		t.Errorf("games promoted = %v, want 1", got)
	}
}

func TestGauges(t *testing.T) {
	m := New()
	m.SetRoster(10, 4)
	m.SetCourtsInUse(2)

	expected := `
# HELP dropin_participants_paid Participants with a recorded payment.
# TYPE dropin_participants_paid gauge
dropin_participants_paid 4
`
	if err := testutil.CollectAndCompare(m.participantsPaid, strings.NewReader(expected)); err != nil {
		t.Error(err)
	}
	if got := testutil.ToFloat64(m.participants); got != 10 {
		t.Errorf("participants = %v, want 10", got)
	}
	if got := testutil.ToFloat64(m.courtsInUse); got != 2 {
		t.Errorf("courts in use = %v, want 2", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveRPC("p", "ok")
	m.PersistFailure("local")
	m.OCRResult("error")
	m.GamePromoted()
	m.SetCourtsInUse(1)
	m.SetRoster(1, 1)
}

func TestHandler(t *testing.T) {
	m := New()
	m.SetRoster(3, 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	for _, want := range []string{"dropin_participants 3", "go_goroutines"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
