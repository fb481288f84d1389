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

package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ReportTimeKind identifies which wire shape a last_report value arrived in.
// Watchman emits the field as null, integer epoch seconds, a fractional
// epoch string, or an ISO-8601-like string depending on the client version.
type ReportTimeKind int

const (
	// ReportTimeAbsent means the field was null, missing, or empty.
	ReportTimeAbsent ReportTimeKind = iota
	// ReportTimeEpoch is integer epoch seconds.
	ReportTimeEpoch
	// ReportTimeEpochString is epoch seconds carried as a string,
	// possibly with a fractional part.
	ReportTimeEpochString
	// ReportTimeISO is an ISO-8601-like timestamp string.
	ReportTimeISO
)

// ReportTime is a tagged decoding of the last_report field. The shape is
// fixed at JSON-decode time so downstream parsing can switch on the tag
// instead of probing the raw value.
type ReportTime struct {
	Kind  ReportTimeKind
	Epoch int64  // set for ReportTimeEpoch
	Value string // set for ReportTimeEpochString and ReportTimeISO
}

// UnmarshalJSON decodes null, number, and string shapes. Unexpected JSON
// types (arrays, objects) decode as absent rather than failing the
// surrounding record.
func (rt *ReportTime) UnmarshalJSON(data []byte) error {
	*rt = ReportTime{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}

		if strings.Contains(s, "T") {
			rt.Kind = ReportTimeISO
		} else {
			rt.Kind = ReportTimeEpochString
		}

		rt.Value = s

		return nil
	}

	if data[0] == '{' || data[0] == '[' {
		return nil
	}

	literal := string(data)
	if n, err := strconv.ParseInt(literal, 10, 64); err == nil {
		rt.Kind = ReportTimeEpoch
		rt.Epoch = n

		return nil
	}

	// Fractional or exponent-form numbers are treated the same as a
	// numeric string on the wire.
	rt.Kind = ReportTimeEpochString
	rt.Value = literal

	return nil
}

// MarshalJSON re-emits the value in the shape it arrived in.
func (rt ReportTime) MarshalJSON() ([]byte, error) {
	switch rt.Kind {
	case ReportTimeEpoch:
		return []byte(strconv.FormatInt(rt.Epoch, 10)), nil
	case ReportTimeEpochString, ReportTimeISO:
		return json.Marshal(rt.Value)
	default:
		return []byte("null"), nil
	}
}

// IsAbsent reports whether no value was present on the wire.
func (rt ReportTime) IsAbsent() bool {
	return rt.Kind == ReportTimeAbsent
}

// String returns the raw wire value for display, or the empty string
// when absent.
func (rt ReportTime) String() string {
	switch rt.Kind {
	case ReportTimeEpoch:
		return strconv.FormatInt(rt.Epoch, 10)
	case ReportTimeEpochString, ReportTimeISO:
		return rt.Value
	default:
		return ""
	}
}
