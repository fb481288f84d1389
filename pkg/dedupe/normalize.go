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

// Package dedupe finds duplicate device records sharing a System MAC
// Address and decides which record to keep.
package dedupe

import "strings"

// macLength is the canonical length of a normalized MAC address.
const macLength = 12

// NormalizeMAC canonicalizes a raw hardware address into the lowercase
// 12-character form used as the grouping key. The boolean is false when
// the input does not reduce to a usable address; such records are
// excluded from grouping rather than treated as errors.
//
// Character content beyond length is deliberately not validated. The
// upstream service stores whatever agents report, and rejecting non-hex
// strings would hide records the operator can still see in the dashboard.
func NormalizeMAC(raw string) (string, bool) {
	mac := strings.TrimSpace(raw)
	if mac == "" {
		return "", false
	}

	mac = strings.ReplaceAll(mac, ":", "")
	mac = strings.ReplaceAll(mac, "-", "")
	mac = strings.ToLower(mac)

	if len(mac) != macLength {
		return "", false
	}

	return mac, true
}
