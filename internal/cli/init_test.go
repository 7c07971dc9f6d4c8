package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	applog "fintrack/internal/log"
)

type fakeServer struct {
	listenErr error
	stop      chan struct{}
	shutdowns int
}

func newFakeServer(listenErr error) *fakeServer {
	return &fakeServer{listenErr: listenErr, stop: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdowns++
	if f.listenErr == nil {
		close(f.stop)
	}
	return nil
}

func quietLogger() *applog.Logger {
	return applog.New(applog.Config{Level: slog.LevelError, Output: &bytes.Buffer{}})
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := newFakeServer(nil)

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, quietLogger(), srv, time.Second) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if srv.shutdowns != 1 {
		t.Fatalf("expected one shutdown, got %d", srv.shutdowns)
	}
}

func TestServeReturnsListenError(t *testing.T) {
	boom := errors.New("address in use")
	err := Serve(context.Background(), quietLogger(), newFakeServer(boom), time.Second)
	if !errors.Is(err, boom) {
		t.Fatalf("expected listen error, got %v", err)
	}
}

func TestSetupLoggerFallsBackToInfo(t *testing.T) {
	l := SetupLogger("nonsense")
	if !l.Enabled(context.Background(), slog.LevelInfo) || l.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected info level logger")
	}
	if !SetupLogger("debug").Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug level logger")
	}
}
