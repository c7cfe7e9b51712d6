package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mirrorsync/internal/daemon"
)

func TestRequestStopAgainstDaemon(t *testing.T) {
	srv := daemon.NewServer(daemon.NewState("/src", "/dst"), nil, 0)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	status, err := requestStop(ts.URL + "/stop")
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if status != "stopping" {
		t.Fatalf("status = %q", status)
	}

	select {
	case <-srv.StopCh():
	default:
		t.Fatal("stop request did not reach the daemon")
	}
}

func TestRequestStopRejectsNonOK(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	_, err := requestStop(ts.URL + "/stop")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected 404 error, got %v", err)
	}
}

func TestRequestStopRejectsForeignBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer ts.Close()

	if _, err := requestStop(ts.URL + "/stop"); err == nil {
		t.Fatal("expected error for unexpected status body")
	}
}

func TestRequestStopNoDaemon(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL + "/stop"
	ts.Close()

	if _, err := requestStop(url); err == nil || !strings.Contains(err.Error(), "daemon not running") {
		t.Fatalf("expected connection error, got %v", err)
	}
}
