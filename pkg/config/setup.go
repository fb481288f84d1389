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

package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Setup interactively collects credentials and writes them to the .env
// file at path. The reader and writer are injected so tests can drive
// the prompts.
func Setup(path string, in io.Reader, out io.Writer) (*Config, error) {
	scanner := bufio.NewScanner(in)

	prompt := func(label string) string {
		fmt.Fprintf(out, "%s: ", label)

		if !scanner.Scan() {
			return ""
		}

		return strings.TrimSpace(scanner.Text())
	}

	fmt.Fprintln(out, "Watchman credentials are required.")
	fmt.Fprintln(out, "The subdomain is the part before .monitoringclient.com in your dashboard URL.")
	fmt.Fprintln(out, "The API key is under Settings > API in the dashboard.")

	cfg := &Config{
		Subdomain: prompt("Subdomain"),
		APIKey:    prompt("API key"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "Email settings are optional; reports can also be exported to CSV.")

	if answer := prompt("Configure email sending? (y/n)"); parseBool(answer) {
		cfg.SMTP = SMTP{
			Server:   prompt("SMTP server (e.g. smtp.gmail.com)"),
			Port:     defaultSMTPPort,
			Username: prompt("SMTP username"),
			Password: prompt("SMTP password"),
			UseTLS:   true,
		}

		if raw := prompt("SMTP port (default 587)"); raw != "" {
			if port, err := strconv.Atoi(raw); err == nil {
				cfg.SMTP.Port = port
			} else {
				fmt.Fprintf(out, "Ignoring invalid port %q, using %d\n", raw, defaultSMTPPort)
			}
		}

		cfg.SMTP.From = prompt("From address")
		cfg.SMTP.To = prompt("To address")

		if cfg.SMTP.From == "" {
			cfg.SMTP.From = cfg.SMTP.Username
		}

		if cfg.SMTP.To == "" {
			cfg.SMTP.To = cfg.SMTP.Username
		}

		if raw := prompt("Use STARTTLS? (y/n)"); raw != "" {
			cfg.SMTP.UseTLS = parseBool(raw)
		}

		// Incomplete email settings are dropped rather than saved broken.
		if cfg.SMTP.Server == "" || cfg.SMTP.Username == "" || cfg.SMTP.Password == "" {
			fmt.Fprintln(out, "Incomplete email settings, skipping email configuration.")
			cfg.SMTP = SMTP{Port: defaultSMTPPort, UseTLS: true}
		}
	}

	if err := Save(cfg, path); err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Configuration written to %s. Keep this file secure, it contains your API key.\n", path)

	return cfg, nil
}
