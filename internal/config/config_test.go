package config

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_URL", "postgres://localhost/shortlinks")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RABBITMQ_URL", "amqp://localhost")
}

func TestLoadRequiresSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without SESSION_SECRET")
	}
}

func TestLoadRejectsBadSecret(t *testing.T) {
	setRequired(t)

	t.Setenv("SESSION_SECRET", "not base64!!!")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-base64 secret")
	}

	t.Setenv("SESSION_SECRET", base64.StdEncoding.EncodeToString([]byte("short")))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for wrong key length")
	}
}

func TestLoadDecodesSecret(t *testing.T) {
	setRequired(t)
	key := bytes.Repeat([]byte{0xAB}, 32)
	t.Setenv("SESSION_SECRET", base64.StdEncoding.EncodeToString(key))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(cfg.SessionSecret, key) {
		t.Error("decoded secret mismatch")
	}
	if cfg.EventQueue != "link_events" {
		t.Errorf("EventQueue = %q, want default", cfg.EventQueue)
	}
}
