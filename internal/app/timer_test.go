package app_test

import (
	"testing"

	"brainblitz-service/internal/app"
)

func TestTimerExpiresExactlyOnce(t *testing.T) {
	timer := app.NewTimer(3)

	if timer.Tick() || timer.Tick() {
		t.Fatalf("expired before budget was spent")
	}
	if !timer.Tick() {
		t.Fatalf("expected expiry on the final tick")
	}
	if timer.Tick() {
		t.Fatalf("expiry signaled twice")
	}
	if timer.Remaining() != 0 || !timer.Expired() {
		t.Fatalf("expected inert zero timer, got remaining=%d expired=%v", timer.Remaining(), timer.Expired())
	}
}

func TestTimerPauseFreezesRemaining(t *testing.T) {
	timer := app.NewTimer(5)
	timer.Tick()
	timer.Pause()

	for i := 0; i < 10; i++ {
		if timer.Tick() {
			t.Fatalf("paused timer expired")
		}
	}
	if timer.Remaining() != 4 {
		t.Fatalf("expected remaining frozen at 4, got %d", timer.Remaining())
	}
}

func TestTimerResetRearms(t *testing.T) {
	timer := app.NewTimer(2)
	timer.Tick()
	timer.Tick()
	if !timer.Expired() {
		t.Fatalf("expected expiry")
	}

	timer.Reset()
	if timer.Remaining() != 2 || timer.Expired() {
		t.Fatalf("reset did not rearm: remaining=%d expired=%v", timer.Remaining(), timer.Expired())
	}
	timer.Tick()
	timer.Tick()
	if !timer.Expired() {
		t.Fatalf("expected expiry after reset cycle")
	}
}
