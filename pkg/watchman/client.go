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

// Package watchman provides a client for the Watchman Monitoring API.
package watchman

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/carverauto/dupereport/pkg/logger"
	"github.com/carverauto/dupereport/pkg/models"
)

const (
	// defaultPageSize is the maximum page size the API allows.
	defaultPageSize = 100

	defaultRequestTimeout = 30 * time.Second

	// Watchman rate-limits at 400 requests/minute; back off and retry
	// rather than failing the run.
	rateLimitInitialBackoff = 2 * time.Second
	rateLimitMaxBackoff     = 60 * time.Second
	rateLimitMaxElapsed     = 5 * time.Minute
)

// Config holds the Watchman API connection settings.
type Config struct {
	Subdomain string
	APIKey    string

	// BaseURL overrides the URL derived from Subdomain. Used in tests.
	BaseURL  string
	PageSize int
	Timeout  time.Duration
}

// Client fetches the computer inventory from a Watchman Monitoring
// tenant at https://<subdomain>.monitoringclient.com/v2.5.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
	logger     logger.Logger

	retryInitialInterval time.Duration
	retryMaxInterval     time.Duration
	retryMaxElapsed      time.Duration
}

func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		if cfg.Subdomain == "" || cfg.APIKey == "" {
			return nil, errMissingCredentials
		}

		baseURL = fmt.Sprintf("https://%s.monitoringclient.com/v2.5", cfg.Subdomain)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,

		retryInitialInterval: rateLimitInitialBackoff,
		retryMaxInterval:     rateLimitMaxBackoff,
		retryMaxElapsed:      rateLimitMaxElapsed,
	}, nil
}

// Computers fetches the full computer inventory, paging until the API
// returns a short page. Records come back in the API's
// last_reported_desc order.
func (c *Client) Computers(ctx context.Context) ([]models.DeviceRecord, error) {
	var computers []models.DeviceRecord

	page := 1

	for {
		records, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetch computers page %d: %w", page, err)
		}

		computers = append(computers, records...)

		c.logger.Debug().
			Int("page", page).
			Int("page_count", len(records)).
			Int("total", len(computers)).
			Msg("Fetched computers page")

		if len(records) < c.pageSize {
			break
		}

		page++
	}

	c.logger.Info().Int("total", len(computers)).Msg("Fetched all computers from Watchman")

	return computers, nil
}

// fetchPage requests a single page, retrying with exponential backoff
// while the API reports rate limiting. All other failures are permanent.
func (c *Client) fetchPage(ctx context.Context, page int) ([]models.DeviceRecord, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInitialInterval
	bo.MaxInterval = c.retryMaxInterval

	operation := func() ([]models.DeviceRecord, error) {
		records, err := c.doPage(ctx, page)
		if err != nil {
			if errors.Is(err, errRateLimited) {
				c.logger.Warn().Int("page", page).Msg("Rate limit hit, backing off")
				return nil, err
			}

			return nil, backoff.Permanent(err)
		}

		return records, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxElapsedTime(c.retryMaxElapsed))
}

func (c *Client) doPage(ctx context.Context, page int) ([]models.DeviceRecord, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(c.pageSize))
	query.Set("order", "last_reported_desc")
	query.Set("api_key", c.apiKey)

	reqURL := c.baseURL + "/computers?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: %d, response: %s", errUnexpectedStatusCode,
			resp.StatusCode, string(bodyBytes))
	}

	var records []models.DeviceRecord

	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode computers response: %w", err)
	}

	return records, nil
}
