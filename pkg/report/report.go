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

// Package report renders duplicate-device classifications as console
// output, CSV, and email.
package report

import (
	"time"

	"github.com/carverauto/dupereport/pkg/dedupe"
)

const (
	// unknownValue is the display placeholder for missing fields.
	unknownValue = "Unknown"

	keepReason = "Most recent report date"

	parsedTimeLayout = "2006-01-02T15:04:05"
)

// Device is the presentation view of one classified device record.
type Device struct {
	MACAddress       string
	ComputerName     string
	ClientID         string
	UID              string
	LastReportRaw    string
	LastReportParsed string
	SerialNumber     string
	OSVersion        string
	Group            string
	ComputerURL      string
	Reason           string
}

// GroupDetail describes one duplicate group, keeper first.
type GroupDetail struct {
	MACAddress   string
	TotalDevices int
	Keep         Device
	Remove       []Device
}

// Report is the assembled duplicate-device report.
type Report struct {
	GeneratedAt     time.Time
	Subdomain       string
	TotalAnalyzed   int
	TotalGroups     int
	TotalDuplicates int
	Keep            []Device
	Remove          []Device
	Groups          []GroupDetail
}

// HasDuplicates reports whether any duplicate group was found.
func (r *Report) HasDuplicates() bool {
	return r.TotalGroups > 0
}

// Assemble turns resolutions into a renderable report. An empty
// resolution list produces a valid empty report.
func Assemble(resolutions []dedupe.Resolution, totalAnalyzed int, subdomain string) *Report {
	r := &Report{
		GeneratedAt:   time.Now(),
		Subdomain:     subdomain,
		TotalAnalyzed: totalAnalyzed,
		TotalGroups:   len(resolutions),
	}

	for _, resolution := range resolutions {
		detail := GroupDetail{
			MACAddress:   resolution.MAC,
			TotalDevices: 1 + len(resolution.Remove),
			Keep:         deviceView(resolution.MAC, resolution.Keep, keepReason),
		}

		for _, removal := range resolution.Remove {
			detail.Remove = append(detail.Remove, deviceView(resolution.MAC, removal.Member, removal.Reason))
		}

		r.TotalDuplicates += detail.TotalDevices
		r.Keep = append(r.Keep, detail.Keep)
		r.Remove = append(r.Remove, detail.Remove...)
		r.Groups = append(r.Groups, detail)
	}

	return r
}

func deviceView(mac string, member dedupe.Member, reason string) Device {
	parsed := unknownValue
	if !member.ReportedAt.IsZero() {
		parsed = member.ReportedAt.Format(parsedTimeLayout)
	}

	record := member.Record

	return Device{
		MACAddress:       mac,
		ComputerName:     orUnknown(record.ComputerName),
		ClientID:         orUnknown(record.ClientID),
		UID:              orUnknown(record.UID),
		LastReportRaw:    record.LastReport.String(),
		LastReportParsed: parsed,
		SerialNumber:     orUnknown(record.SerialNumber),
		OSVersion:        orUnknown(record.OSVersion),
		Group:            orUnknown(record.Group),
		ComputerURL:      record.ComputerURL,
		Reason:           reason,
	}
}

func orUnknown(s string) string {
	if s == "" {
		return unknownValue
	}

	return s
}
