package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type Config struct {
	// Password is the shared admin password of the web frontend.
	Password string

	// CookieSecret signs the session cookies handed out after a successful
	// login, it must be at least 32 chars long.
	CookieSecret string

	// Listen is the address the HTTP API binds to.
	Listen string

	// DBPath is the path of the SQLite database file.
	DBPath string

	// DiscordListenIDs is a list of channel ID where the bot will listen and
	// accept commands. PMs are always listened to.
	DiscordListenIDs []string

	// Who is allowed to use admin commands.
	DiscordAdminUserIDs []string

	// AnnounceDiscordChannelID is where recorded games are announced.
	AnnounceDiscordChannelID string

	DiscordToken string
}

func NewFromUserConfigDir() (*Config, error) {
	c := &Config{}
	if err := c.ReloadFromUserConfigDir(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) expandFromEnv() {
	vars := []struct {
		src string
		dst *string
	}{
		{"DOMINARIA_PASSWORD", &c.Password},
		{"DOMINARIA_COOKIE_SECRET", &c.CookieSecret},
		{"DOMINARIA_DISCORD_TOKEN", &c.DiscordToken},
		{"DOMINARIA_LISTEN", &c.Listen},
		{"DOMINARIA_DB", &c.DBPath},
	}

	for _, v := range vars {
		if str := os.Getenv(v.src); str != "" {
			*v.dst = str
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:3001"
	}

	if c.DBPath == "" {
		c.DBPath = "./dominaria.db"
	}
}

func (c *Config) ReloadFromUserConfigDir() error {
	defer c.applyDefaults()
	defer c.expandFromEnv()

	path, err := getOrCreateUserConfigPath()
	if err != nil {
		return err
	}
	log.Printf("debug: reading conf from %s", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		*c = Config{}
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(c)
}

// IsDiscordIDAdmin returns true if the given user is allowed to run admin
// commands.
func (c *Config) IsDiscordIDAdmin(discordID string) bool {
	for _, v := range c.DiscordAdminUserIDs {
		if v == discordID {
			return true
		}
	}

	return false
}

func getOrCreateUserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, "dominaria")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.json"), nil
}

func (c *Config) Write() error {
	path, err := getOrCreateUserConfigPath()
	if err != nil {
		return err
	}
	log.Printf("debug: writing conf to %s", path)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o700)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(c); err != nil {
		if err2 := f.Close(); err2 != nil {
			return fmt.Errorf("unable to close file (%s) after error: %w", err2, err)
		}

		return err
	}

	return f.Close()
}
