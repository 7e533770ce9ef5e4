package utils

import (
	"context"
	"testing"
	"time"
)

func TestWaitForReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	block := make(chan struct{})
	defer close(block)

	err := WaitForFunc(ctx, time.Hour, func(time.Duration) { <-block })
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestWaitForSkipsNonPositiveDuration(t *testing.T) {
	called := false
	if err := WaitForFunc(context.Background(), 0, func(time.Duration) { called = true }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatal("sleep must not be called for zero duration")
	}
}

func TestWaitForCompletes(t *testing.T) {
	var slept time.Duration
	if err := WaitForFunc(context.Background(), 3*time.Second, func(d time.Duration) { slept = d }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slept != 3*time.Second {
		t.Fatalf("expected 3s sleep, got %v", slept)
	}
}
