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

package dedupe

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/dupereport/pkg/models"
)

const isoLayout = "2006-01-02 15:04:05"

// offsetWindow is how far from the end of a cleaned timestamp an offset
// sign is still treated as a timezone suffix.
const offsetWindow = 6

// ParseReportTime converts a decoded last_report value into an absolute
// instant. The zero time means the report time is unknown and always
// loses recency comparisons. A non-nil error carries the parse failure
// for the caller to log; it never aborts a run.
func ParseReportTime(rt models.ReportTime) (time.Time, error) {
	switch rt.Kind {
	case models.ReportTimeEpoch:
		return time.Unix(rt.Epoch, 0), nil
	case models.ReportTimeEpochString:
		return parseEpochString(rt.Value)
	case models.ReportTimeISO:
		return parseISONaive(rt.Value)
	default:
		return time.Time{}, nil
	}
}

func parseEpochString(raw string) (time.Time, error) {
	secs, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse epoch seconds %q: %w", raw, err)
	}

	sec, frac := math.Modf(secs)

	return time.Unix(int64(sec), int64(frac*float64(time.Second))), nil
}

// parseISONaive parses an ISO-8601-like timestamp the way the upstream
// report always has: fractional seconds are dropped and a trailing
// timezone offset is discarded rather than applied, so the result is a
// naive local-time instant. Changing this would reorder keep/remove
// decisions for fleets reporting across timezones.
func parseISONaive(raw string) (time.Time, error) {
	cleaned := raw
	if i := strings.Index(cleaned, "."); i >= 0 {
		cleaned = cleaned[:i]
	}

	cleaned = strings.ReplaceAll(cleaned, "T", " ")

	start := len(cleaned) - offsetWindow
	if start < 0 {
		start = 0
	}

	if i := strings.IndexAny(cleaned[start:], "+-"); i >= 0 {
		cleaned = cleaned[:start+i]
	}

	t, err := time.ParseInLocation(isoLayout, cleaned, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}

	return t, nil
}
