package metrics

import (
	"testing"
	"time"
)

// Compile-time interface checks.
var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("load", time.Millisecond)
	r.ObserveBuildDuration(time.Millisecond)
	r.IncStageResult("load", ResultSuccess)
	r.IncBuildOutcome(BuildSuccess)
	r.IncPreviewRequest("/", 200)
	r.SetLiveReloadClients(2)
	r.IncLiveReloadBroadcast()
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var p *PrometheusRecorder
	p.ObserveStageDuration("load", time.Millisecond)
	p.IncBuildOutcome(BuildFailed)
	p.SetLiveReloadClients(1)
}
