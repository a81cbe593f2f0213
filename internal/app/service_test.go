package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/trendsight-boutique/internal/session"
)

type fakeService struct {
	name    string
	startFn func(ctx context.Context) error
	stopped atomic.Bool
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Start(ctx context.Context) error {
	return f.startFn(ctx)
}

func (f *fakeService) Stop(context.Context) error {
	f.stopped.Store(true)
	return nil
}

func blockUntilDone(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func TestRunnerStopsAllOnCancel(t *testing.T) {
	a := &fakeService{name: "a", startFn: blockUntilDone}
	b := &fakeService{name: "b", startFn: blockUntilDone}
	runner := NewRunner(a, b)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := runner.Run(ctx, time.Second, nil); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("unexpected run error: %v", err)
	}
	if !a.stopped.Load() || !b.stopped.Load() {
		t.Fatalf("all services must be stopped")
	}
}

func TestRunnerPropagatesServiceError(t *testing.T) {
	boom := errors.New("boom")
	failing := &fakeService{name: "failing", startFn: func(context.Context) error { return boom }}
	other := &fakeService{name: "other", startFn: blockUntilDone}

	err := NewRunner(failing, other).Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	if !other.stopped.Load() {
		t.Fatalf("remaining services must be stopped")
	}
}

func TestRunnerWithSessionSweeper(t *testing.T) {
	sweeper := session.NewSweeper(session.NewStore(), time.Minute, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(30*time.Millisecond, cancel)
	if err := NewRunner(sweeper).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("sweeper must exit cleanly on cancel: %v", err)
	}
}

func TestNormalizeOptions(t *testing.T) {
	opts := normalizeOptions(Options{Mode: " API "})
	if opts.Mode != ModeAPI {
		t.Fatalf("mode must be normalized, got %q", opts.Mode)
	}
	if opts.ShutdownTimeout != 10*time.Second || opts.Logger == nil {
		t.Fatalf("defaults not applied: %+v", opts)
	}
	if normalizeOptions(Options{}).Mode != ModeAll {
		t.Fatalf("empty mode must default to all")
	}
}

func TestBuildRunnerRejectsBadInput(t *testing.T) {
	if _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("nil config must be rejected")
	}
	if validMode("cron") {
		t.Fatalf("unknown mode must be rejected")
	}
}

func TestHTTPServiceReportsListenError(t *testing.T) {
	svc := NewHTTPService("256.0.0.1:bad", nil)
	if err := svc.Start(context.Background()); err == nil {
		t.Fatalf("invalid address must fail to listen")
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop on never-started server: %v", err)
	}
}
