package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	s := newSpinner("Building plan...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	// A plain Stop is not a cancellation; Cancelled only reflects the
	// context, so the value is not asserted here.
	_ = s.Cancelled()
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Checking rules...")
	s.Start()

	cancel()

	// Give the goroutine time to notice the cancellation.
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancellation, want true")
	}
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Building plan...")
	s.Start()

	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Cancelled() = false after context timeout, want true")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Saving plan...")
	s.Start()

	// Repeated Stop must not panic.
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	s := newSpinner("Building plan...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Plan built")
}

func TestSpinnerStopWithError(t *testing.T) {
	s := newSpinner("Building plan...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Build failed")
}

func TestNewSpinnerWithContextNilParent(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Loading")
	s.Start()
	s.Stop()
}
