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
	"sort"
	"time"

	"github.com/carverauto/dupereport/pkg/logger"
	"github.com/carverauto/dupereport/pkg/models"
)

// Member pairs a device record with its parsed report time. A zero
// ReportedAt means the time is unknown.
type Member struct {
	Record     models.DeviceRecord
	ReportedAt time.Time
}

// Removal is a duplicate flagged for manual removal, with the reason.
type Removal struct {
	Member
	Reason string
}

// Resolution is the keep/remove classification for one duplicate group.
type Resolution struct {
	MAC    string
	Keep   Member
	Remove []Removal
}

// Detector groups device records by normalized MAC and classifies the
// members of each duplicate group. It holds no state between runs; each
// classification is a pure function of the input snapshot.
type Detector struct {
	logger logger.Logger
}

func NewDetector(log logger.Logger) *Detector {
	return &Detector{logger: log}
}

// FindDuplicates partitions records by normalized MAC, preserving input
// order within each bucket. Records without a usable MAC are dropped
// silently. Only buckets with two or more members are returned.
func (d *Detector) FindDuplicates(records []models.DeviceRecord) map[string][]models.DeviceRecord {
	buckets := make(map[string][]models.DeviceRecord)

	for _, record := range records {
		mac, ok := NormalizeMAC(record.SystemMACAddress)
		if !ok {
			continue
		}

		buckets[mac] = append(buckets[mac], record)
	}

	for mac, group := range buckets {
		if len(group) < 2 {
			delete(buckets, mac)
		}
	}

	return buckets
}

// Resolve orders a duplicate group by recency and elects the keeper.
// The sort is stable and descending, with unknown report times last, so
// ties fall back to the input order and the outcome is deterministic.
// The group must have at least one member; FindDuplicates guarantees two.
func (d *Detector) Resolve(mac string, group []models.DeviceRecord) Resolution {
	members := make([]Member, 0, len(group))

	for _, record := range group {
		members = append(members, Member{
			Record:     record,
			ReportedAt: d.reportTime(record),
		})
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].ReportedAt.After(members[j].ReportedAt)
	})

	resolution := Resolution{
		MAC:  mac,
		Keep: members[0],
	}

	reason := fmt.Sprintf("Duplicate identity %s, older report date", mac)

	for _, member := range members[1:] {
		resolution.Remove = append(resolution.Remove, Removal{
			Member: member,
			Reason: reason,
		})
	}

	return resolution
}

// Run classifies the full record snapshot. Resolutions are ordered by
// MAC so repeated runs over the same input produce identical output.
func (d *Detector) Run(records []models.DeviceRecord) []Resolution {
	groups := d.FindDuplicates(records)

	macs := make([]string, 0, len(groups))
	for mac := range groups {
		macs = append(macs, mac)
	}

	sort.Strings(macs)

	resolutions := make([]Resolution, 0, len(macs))
	for _, mac := range macs {
		resolutions = append(resolutions, d.Resolve(mac, groups[mac]))
	}

	return resolutions
}

func (d *Detector) reportTime(record models.DeviceRecord) time.Time {
	ts, err := ParseReportTime(record.LastReport)
	if err != nil {
		d.logger.Warn().
			Err(err).
			Str("computer_name", record.ComputerName).
			Str("client_id", record.ClientID).
			Str("last_report", record.LastReport.String()).
			Msg("Could not parse last report time, treating as unknown")
	}

	return ts
}
