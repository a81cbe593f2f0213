package main

import (
	"strings"
	"testing"

	"github.com/trendsight-boutique/internal/config"
)

func TestIsWeakSecret(t *testing.T) {
	cases := map[string]bool{
		"short":                                true,
		strings.Repeat("a", 31):                true,
		"please-change-me-0123456789abcdefgh":  true,
		"YOUR-SECRET-KEY-0123456789abcdefghij": true,
		"8f2b1c9e4d7a6035b1e2f9c8d7a60b3e":     false,
	}
	for secret, want := range cases {
		if got := isWeakSecret(secret); got != want {
			t.Fatalf("isWeakSecret(%q) = %v, want %v", secret, got, want)
		}
	}
}

func TestCheckSecrets(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = "release"
	cfg.JWT.SecretKey = "change-me"
	if err := checkSecrets(cfg); err == nil {
		t.Fatalf("weak secret must block release startup")
	}
	cfg.Server.Mode = "debug"
	if err := checkSecrets(cfg); err != nil {
		t.Fatalf("weak secret must only warn in debug: %v", err)
	}
	cfg.Server.Mode = "release"
	cfg.JWT.SecretKey = "8f2b1c9e4d7a6035b1e2f9c8d7a60b3e"
	if err := checkSecrets(cfg); err == nil {
		t.Fatalf("missing customer secret must block release startup")
	}
	cfg.UserJWT.SecretKey = cfg.JWT.SecretKey
	if err := checkSecrets(cfg); err == nil {
		t.Fatalf("shared admin and customer secret must block release startup")
	}
	cfg.UserJWT.SecretKey = "0c4e7a19b2d85f36e1a07c94b3d62f58"
	if err := checkSecrets(cfg); err != nil {
		t.Fatalf("strong secrets rejected: %v", err)
	}
}
