package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("render", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("render", ResultSuccess)
	pr.IncBuildOutcome(BuildSuccess)
	pr.IncBuildOutcome(BuildSuccess)
	pr.IncPreviewRequest("/", 200)
	pr.SetLiveReloadClients(3)
	pr.IncLiveReloadBroadcast()

	if got := testutil.ToFloat64(pr.buildOutcome.WithLabelValues("success")); got != 2 {
		t.Fatalf("expected 2 successful builds, got %v", got)
	}
	if got := testutil.ToFloat64(pr.lrClients); got != 3 {
		t.Fatalf("expected 3 clients, got %v", got)
	}
	if got := testutil.ToFloat64(pr.previewRequests.WithLabelValues("/", "200")); got != 1 {
		t.Fatalf("expected 1 preview request, got %v", got)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncBuildOutcome(BuildFailed)

	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `pagebuilder_build_outcomes_total{outcome="failed"} 1`) {
		t.Fatalf("metric missing from exposition:\n%s", body)
	}
}
