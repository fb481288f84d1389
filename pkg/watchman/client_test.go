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

package watchman

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/dupereport/pkg/logger"
	"github.com/carverauto/dupereport/pkg/models"
)

func testClient(t *testing.T, baseURL string, pageSize int) *Client {
	t.Helper()

	client, err := NewClient(Config{
		APIKey:   "test-key",
		BaseURL:  baseURL,
		PageSize: pageSize,
	}, logger.NewTestLogger())
	require.NoError(t, err)

	return client
}

func makeComputers(n, offset int) []models.DeviceRecord {
	records := make([]models.DeviceRecord, n)
	for i := range records {
		records[i] = models.DeviceRecord{
			ComputerName: fmt.Sprintf("computer-%d", offset+i),
			ClientID:     fmt.Sprintf("client-%d", offset+i),
		}
	}

	return records
}

func TestComputersPaginates(t *testing.T) {
	const pageSize = 3

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/computers", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, strconv.Itoa(pageSize), r.URL.Query().Get("per_page"))
		assert.Equal(t, "last_reported_desc", r.URL.Query().Get("order"))

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		require.NoError(t, err)

		// Two full pages then a short final page.
		switch page {
		case 1, 2:
			_ = json.NewEncoder(w).Encode(makeComputers(pageSize, (page-1)*pageSize))
		default:
			_ = json.NewEncoder(w).Encode(makeComputers(1, (page-1)*pageSize))
		}
	}))
	defer server.Close()

	client := testClient(t, server.URL, pageSize)

	computers, err := client.Computers(context.Background())
	require.NoError(t, err)
	require.Len(t, computers, 2*pageSize+1)
	assert.Equal(t, "computer-0", computers[0].ComputerName)
	assert.Equal(t, "computer-6", computers[len(computers)-1].ComputerName)
}

func TestComputersEmptyInventory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := testClient(t, server.URL, 100)

	computers, err := client.Computers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, computers)
}

func TestComputersRetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}

		_ = json.NewEncoder(w).Encode(makeComputers(2, 0))
	}))
	defer server.Close()

	client := testClient(t, server.URL, 100)
	// Keep the retry fast in tests.
	client.retryInitialInterval = time.Millisecond
	client.retryMaxInterval = 5 * time.Millisecond

	computers, err := client.Computers(context.Background())
	require.NoError(t, err)
	assert.Len(t, computers, 2)
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestComputersPermanentErrorOnServerFailure(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient(t, server.URL, 100)

	_, err := client.Computers(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errUnexpectedStatusCode)
	assert.Equal(t, int32(1), calls.Load(), "server errors must not be retried")
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{}, logger.NewTestLogger())
	assert.ErrorIs(t, err, errMissingCredentials)
}
