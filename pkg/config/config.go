/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads dupereport settings from a .env file and the
// process environment. Environment variables override file values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	keySubdomain    = "WATCHMAN_SUBDOMAIN"
	keyAPIKey       = "WATCHMAN_API_KEY"
	keySMTPServer   = "SMTP_SERVER"
	keySMTPPort     = "SMTP_PORT"
	keySMTPUsername = "SMTP_USERNAME"
	keySMTPPassword = "SMTP_PASSWORD"
	keyEmailFrom    = "EMAIL_FROM"
	keyEmailTo      = "EMAIL_TO"
	keySMTPUseTLS   = "SMTP_USE_TLS"
)

const defaultSMTPPort = 587

var errCredentialsRequired = errors.New("watchman subdomain and API key are required")

// SMTP holds optional email delivery settings.
type SMTP struct {
	Server   string
	Port     int
	Username string
	Password string
	From     string
	To       string
	UseTLS   bool
}

// Config holds the full tool configuration.
type Config struct {
	Subdomain string
	APIKey    string
	SMTP      SMTP
}

// EmailConfigured reports whether SMTP delivery settings are present.
func (c *Config) EmailConfigured() bool {
	return c.SMTP.Server != ""
}

// Validate checks that the required Watchman credentials are set.
func (c *Config) Validate() error {
	if c.Subdomain == "" || c.APIKey == "" {
		return errCredentialsRequired
	}

	return nil
}

// Load reads configuration from the .env file at path, if it exists,
// then applies process environment overrides. A missing file is not an
// error; Validate tells the caller whether setup is still needed.
func Load(path string) (*Config, error) {
	values := map[string]string{}

	if _, err := os.Stat(path); err == nil {
		values, err = godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat env file %s: %w", path, err)
	}

	get := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return strings.TrimSpace(v)
		}

		return strings.TrimSpace(values[key])
	}

	cfg := &Config{
		Subdomain: get(keySubdomain),
		APIKey:    get(keyAPIKey),
		SMTP: SMTP{
			Server:   get(keySMTPServer),
			Port:     defaultSMTPPort,
			Username: get(keySMTPUsername),
			Password: get(keySMTPPassword),
			From:     get(keyEmailFrom),
			To:       get(keyEmailTo),
			UseTLS:   true,
		},
	}

	if raw := get(keySMTPPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", keySMTPPort, raw, err)
		}

		cfg.SMTP.Port = port
	}

	if raw := get(keySMTPUseTLS); raw != "" {
		cfg.SMTP.UseTLS = parseBool(raw)
	}

	return cfg, nil
}

// Save writes the configuration to a .env file at path.
func Save(cfg *Config, path string) error {
	values := map[string]string{
		keySubdomain: cfg.Subdomain,
		keyAPIKey:    cfg.APIKey,
	}

	if cfg.EmailConfigured() {
		values[keySMTPServer] = cfg.SMTP.Server
		values[keySMTPPort] = strconv.Itoa(cfg.SMTP.Port)
		values[keySMTPUsername] = cfg.SMTP.Username
		values[keySMTPPassword] = cfg.SMTP.Password
		values[keyEmailFrom] = cfg.SMTP.From
		values[keyEmailTo] = cfg.SMTP.To
		values[keySMTPUseTLS] = strconv.FormatBool(cfg.SMTP.UseTLS)
	}

	if err := godotenv.Write(values, path); err != nil {
		return fmt.Errorf("write env file %s: %w", path, err)
	}

	return nil
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on", "y":
		return true
	default:
		return false
	}
}
