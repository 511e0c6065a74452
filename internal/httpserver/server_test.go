package httpserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/TunnelFront/server/internal/config"
	"github.com/TunnelFront/server/internal/metrics"
)

func TestShutdownWaitsForInFlightRequests(t *testing.T) {
	pinEnv(t)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	srv := New(cfg, metrics.New(prometheus.NewRegistry()), zerolog.Nop())

	entered := make(chan struct{})
	release := make(chan struct{})
	srv.httpServer.Handler.(chi.Router).Get("/slow", func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Write([]byte("done"))
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() {
		_ = srv.httpServer.Serve(ln)
	}()

	bodyCh := make(chan string, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/slow")
		if err != nil {
			bodyCh <- "request error: " + err.Error()
			return
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		bodyCh <- string(b)
	}()

	<-entered

	shutdownDone := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownDone <- srv.Shutdown(ctx)
	}()

	// Shutdown must block while the handler is still running.
	select {
	case <-shutdownDone:
		t.Fatal("Shutdown returned with a request still in flight")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)

	if err := <-shutdownDone; err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if got := <-bodyCh; got != "done" {
		t.Errorf("in-flight response body = %q, want the full handler output", got)
	}
}

func TestShutdownReturnsAfterListenerStops(t *testing.T) {
	pinEnv(t)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	srv := New(cfg, metrics.New(prometheus.NewRegistry()), zerolog.Nop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.httpServer.Serve(ln)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	select {
	case err := <-serveErr:
		if err != http.ErrServerClosed {
			t.Errorf("Serve() error = %v, want http.ErrServerClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Shutdown")
	}
}
