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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMAC(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{
			name:  "colon separated uppercase",
			raw:   "AA:BB:CC:DD:EE:FF",
			want:  "aabbccddeeff",
			valid: true,
		},
		{
			name:  "hyphen separated",
			raw:   "aa-bb-cc-dd-ee-ff",
			want:  "aabbccddeeff",
			valid: true,
		},
		{
			name:  "already normalized",
			raw:   "aabbccddeeff",
			want:  "aabbccddeeff",
			valid: true,
		},
		{
			name:  "surrounding whitespace",
			raw:   "  AA:BB:CC:DD:EE:FF  ",
			want:  "aabbccddeeff",
			valid: true,
		},
		{
			name:  "mixed separators",
			raw:   "AA:BB-CC:DD-EE:FF",
			want:  "aabbccddeeff",
			valid: true,
		},
		{
			name:  "too short",
			raw:   "12:34",
			valid: false,
		},
		{
			name:  "too long",
			raw:   "aa:bb:cc:dd:ee:ff:00",
			valid: false,
		},
		{
			name:  "empty",
			raw:   "",
			valid: false,
		},
		{
			name:  "whitespace only",
			raw:   "   ",
			valid: false,
		},
		{
			name:  "non-hex characters of the right length are accepted",
			raw:   "zz:bb:cc:dd:ee:ff",
			want:  "zzbbccddeeff",
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeMAC(tt.raw)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeMACIdempotent(t *testing.T) {
	normalized, ok := NormalizeMAC("AA:BB:CC:DD:EE:FF")
	assert.True(t, ok)

	again, ok := NormalizeMAC(normalized)
	assert.True(t, ok)
	assert.Equal(t, normalized, again)
}
