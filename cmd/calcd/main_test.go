package main

import (
	"context"
	"testing"
	"time"

	"github.com/danielpatrickdp/sigma-calc/internal/config"
)

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := config.Config{Addr: "127.0.0.1:0", DBPath: ":memory:", HistoryLimit: 5, MaxSamples: 10}

	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestServe_BadAddress(t *testing.T) {
	cfg := config.Config{Addr: "not-an-address", DBPath: ":memory:"}
	if err := serve(context.Background(), cfg); err == nil {
		t.Fatal("expected listen error")
	}
}
