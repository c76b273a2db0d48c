package main

import (
	"testing"

	"github.com/shoplite/shoplite-backend/pkg/config"
)

func TestListenAddr(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Port: "8080"}}

	t.Setenv("PORT", "")
	if got := listenAddr(cfg); got != ":8080" {
		t.Fatalf("expected configured port, got %q", got)
	}

	t.Setenv("PORT", "9999")
	if got := listenAddr(cfg); got != ":9999" {
		t.Fatalf("expected PORT override, got %q", got)
	}
}
