package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/stashboard/internal/logging"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewHTTPServer("127.0.0.1:0", http.NotFoundHandler(), logging.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewHTTPServer("127.0.0.1:99999", http.NotFoundHandler(), logging.NewNopLogger())
	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}

// brokenListener fails every Accept.
type brokenListener struct{ net.Listener }

func (brokenListener) Accept() (net.Conn, error) {
	return nil, errors.New("accept: too many open files")
}

func TestServe_ReturnsAndStopsOnServeError(t *testing.T) {
	t.Parallel()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer lis.Close()

	srv := NewHTTPServer("unused", http.NotFoundHandler(), logging.NewNopLogger())

	done := make(chan error, 1)
	go func() {
		// parent context is never cancelled
		done <- srv.serve(context.Background(), brokenListener{lis})
	}()

	select {
	case err := <-done:
		if err == nil || err.Error() != "accept: too many open files" {
			t.Fatalf("want accept error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return after Serve failed")
	}
}
