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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmdFlags(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{
		"verbose", "subdomain", "api-key", "env-file", "reset-env",
		"export-csv", "csv-filename", "no-email", "email-only",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}

	assert.Equal(t, "dupereport", cmd.Use)
}

func TestResolveConfigFlagsWin(t *testing.T) {
	cmd := NewRootCmd()
	opts := &options{subdomain: "flagco", apiKey: "flagkey"}

	cfg, err := resolveConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "flagco", cfg.Subdomain)
	assert.Equal(t, "flagkey", cfg.APIKey)
}

func TestResolveConfigFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path,
		[]byte("WATCHMAN_SUBDOMAIN=fileco\nWATCHMAN_API_KEY=filekey\n"), 0o600))

	cmd := NewRootCmd()
	opts := &options{envFile: path}

	cfg, err := resolveConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "fileco", cfg.Subdomain)
	assert.Equal(t, "filekey", cfg.APIKey)
}

func TestResolveConfigPartialFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path,
		[]byte("WATCHMAN_SUBDOMAIN=fileco\nWATCHMAN_API_KEY=filekey\n"), 0o600))

	cmd := NewRootCmd()
	opts := &options{envFile: path, subdomain: "flagco"}

	cfg, err := resolveConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "flagco", cfg.Subdomain)
	assert.Equal(t, "filekey", cfg.APIKey)
}

func TestResolveConfigUnattendedWithoutCredentials(t *testing.T) {
	cmd := NewRootCmd()
	opts := &options{
		envFile:   filepath.Join(t.TempDir(), ".env"),
		emailOnly: true,
	}

	_, err := resolveConfig(cmd, opts)
	assert.Error(t, err)
}

func TestResolveConfigRunsSetupWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	cmd := NewRootCmd()
	cmd.SetIn(bytes.NewBufferString("promptco\npromptkey\nn\n"))
	cmd.SetOut(&bytes.Buffer{})

	opts := &options{envFile: path}

	cfg, err := resolveConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "promptco", cfg.Subdomain)
	assert.Equal(t, "promptkey", cfg.APIKey)

	// Setup persisted the credentials for the next run.
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}
