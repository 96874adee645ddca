package config

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrTokenExpired means the token is valid, but expired.
var ErrTokenExpired = errors.New("token expired")

// SignSession creates a session token valid for the given duration, to be
// handed out as a cookie after a successful login.
func (c *Config) SignSession(d time.Duration) (string, error) {
	expiry := strconv.FormatInt(time.Now().Add(d).Unix(), 10)

	token, err := c.sign([]byte(expiry))
	if err != nil {
		return "", err
	}

	return expiry + "." + token, nil
}

// CheckSession ensures the given session token is properly signed and not
// expired.
func (c *Config) CheckSession(str string) error {
	parts := strings.SplitN(str, ".", 2)
	if len(parts) != 2 {
		return errors.New("malformed token")
	}

	expiry, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return fmt.Errorf("malformed token expiry: %w", err)
	}

	token, err := c.sign([]byte(parts[0]))
	if err != nil {
		return err
	}

	if !hmac.Equal([]byte(token), []byte(parts[1])) {
		return errors.New("invalid token")
	}

	// Keep this last, this error must be returned _only_ if the token is valid.
	if time.Unix(expiry, 0).Before(time.Now()) {
		return ErrTokenExpired
	}

	return nil
}

func (c *Config) sign(b []byte) (string, error) {
	if len(c.CookieSecret) < 32 {
		return "", errors.New("cookie secret must be ≥ 32 chars")
	}

	mac := hmac.New(sha256.New, []byte(c.CookieSecret))
	if _, err := mac.Write(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(mac.Sum(nil)), nil
}
