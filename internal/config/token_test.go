package config_test

import (
	"dominaria/internal/config"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSignSessionBadSecret(t *testing.T) {
	c := config.Config{CookieSecret: ""}
	if _, err := c.SignSession(time.Duration(0)); err == nil {
		t.Error("expected error on empty HMAC key")
	}
}

func TestSignSession(t *testing.T) {
	c := config.Config{CookieSecret: "00000000000000000000000000000000"}
	str, err := c.SignSession(1 * time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.CheckSession(str); err != nil {
		t.Fatal(err)
	}
}

func TestSignSessionExpired(t *testing.T) {
	c := config.Config{CookieSecret: "00000000000000000000000000000000"}
	str, err := c.SignSession(-1 * time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.CheckSession(str); !errors.Is(err, config.ErrTokenExpired) {
		t.Fatalf("expected expired token, got %v", err)
	}
}

func TestSignSessionBadToken(t *testing.T) {
	c := config.Config{CookieSecret: "00000000000000000000000000000000"}
	str, err := c.SignSession(1 * time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	str = strings.SplitN(str, ".", 2)[0] + ".invalid"

	if err := c.CheckSession(str); err == nil {
		t.Fatal("expected bad token")
	}

	if err := c.CheckSession("garbage"); err == nil {
		t.Fatal("expected malformed token")
	}
}
