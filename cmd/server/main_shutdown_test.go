package main

import (
	"net/http"
	"os"
	osSignal "os/signal"
	"syscall"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestShutdownSignals(t *testing.T) {
	defer goleak.VerifyNone(t)
	t.Cleanup(func() {
		signalNotify = osSignal.Notify
	})

	for _, sig := range []syscall.Signal{syscall.SIGTERM, syscall.SIGINT} {
		t.Run(sig.String(), func(t *testing.T) {
			signalNotify = func(ch chan<- os.Signal, _ ...os.Signal) {
				go func() {
					ch <- sig
				}()
			}

			server := &http.Server{}
			called := make(chan struct{}, 1)
			server.RegisterOnShutdown(func() {
				called <- struct{}{}
			})

			core, logs := observer.New(zap.InfoLevel)
			shutdown(server, 250*time.Millisecond, zap.New(core))

			select {
			case <-called:
			case <-time.After(time.Second):
				t.Fatalf("expected server shutdown callback to execute")
			}

			entries := logs.FilterMessage("shutting down server").AllUntimed()
			if len(entries) != 1 {
				t.Fatalf("expected one shutdown log entry, got %d", len(entries))
			}
			fields := entries[0].ContextMap()
			if fields["signal"] != sig.String() {
				t.Fatalf("expected signal %q to be logged, got %v", sig.String(), fields["signal"])
			}
			if fields["grace_period"] != 250*time.Millisecond {
				t.Fatalf("expected the grace period to be logged, got %v", fields["grace_period"])
			}
		})
	}
}
