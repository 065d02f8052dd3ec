package preview

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagebuilder/internal/metrics"
)

func connect(t *testing.T, url string) (*bufio.Reader, func()) {
	t.Helper()
	ctx, cancel := context.WithTimeout(t.Context(), 2*time.Second)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		t.Fatalf("connect: %v", err)
	}
	return bufio.NewReader(resp.Body), func() {
		_ = resp.Body.Close()
		cancel()
	}
}

func readUntil(r *bufio.Reader, needle string, timeout time.Duration) bool {
	found := make(chan bool, 1)
	go func() {
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				found <- false
				return
			}
			if strings.Contains(line, needle) {
				found <- true
				return
			}
		}
	}()
	select {
	case ok := <-found:
		return ok
	case <-time.After(timeout):
		return false
	}
}

func TestLiveReload_InitialConnectReceivesCurrentFingerprint(t *testing.T) {
	hub := NewLiveReloadHub(nil, nil)
	defer hub.Shutdown()
	hub.Broadcast("abc123")

	server := httptest.NewServer(hub)
	defer server.Close()

	r, closeFn := connect(t, server.URL)
	defer closeFn()

	if !readUntil(r, `data: {"fingerprint":"abc123"}`, time.Second) {
		t.Fatalf("did not find initial fingerprint event")
	}
}

func TestLiveReload_BroadcastSendsEvent(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	hub := NewLiveReloadHub(rec, nil)
	defer hub.Shutdown()

	server := httptest.NewServer(hub)
	defer server.Close()

	r, closeFn := connect(t, server.URL)
	defer closeFn()
	require.True(t, readUntil(r, ": connected", time.Second))
	waitFor(t, time.Second, func() bool { return hub.Clients() == 1 })

	hub.Broadcast("newhash")
	if !readUntil(r, "newhash", time.Second) {
		t.Fatalf("did not receive broadcast")
	}
	text := gatherText(t, reg)
	assert.Contains(t, text, "pagebuilder_livereload_broadcasts_total 1")
	assert.Contains(t, text, "pagebuilder_livereload_clients 1")
}

func TestLiveReload_SuppressesDuplicates(t *testing.T) {
	reg := prometheus.NewRegistry()
	hub := NewLiveReloadHub(metrics.NewPrometheusRecorder(reg), nil)
	defer hub.Shutdown()

	hub.Broadcast("a")
	hub.Broadcast("a")
	hub.Broadcast("")
	hub.Broadcast("b")

	assert.Equal(t, "b", hub.Fingerprint())
	n, err := testutil.GatherAndCount(reg, "pagebuilder_livereload_broadcasts_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, gatherText(t, reg), "pagebuilder_livereload_broadcasts_total 2")
}

func TestLiveReload_ShutdownRejectsClients(t *testing.T) {
	hub := NewLiveReloadHub(nil, nil)
	hub.Shutdown()
	hub.Shutdown()

	rec := httptest.NewRecorder()
	hub.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, RouteLiveReload, nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	hub.Broadcast("ignored")
	assert.Empty(t, hub.Fingerprint())
}

func gatherText(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, RouteMetrics, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}
