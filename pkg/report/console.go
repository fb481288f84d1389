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

package report

import (
	"fmt"
	"io"
	"strings"
)

// WriteSummary writes a human-readable report to w for interactive runs.
func WriteSummary(w io.Writer, r *Report) {
	if !r.HasDuplicates() {
		fmt.Fprintln(w, "No duplicate devices found based on System MAC Address.")
		return
	}

	fmt.Fprintln(w, "DUPLICATE DEVICES REPORT")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Computers analyzed:     %d\n", r.TotalAnalyzed)
	fmt.Fprintf(w, "Duplicate groups found: %d\n", r.TotalGroups)
	fmt.Fprintf(w, "Duplicate devices:      %d\n", r.TotalDuplicates)
	fmt.Fprintf(w, "Devices to remove:      %d\n", len(r.Remove))
	fmt.Fprintln(w)

	for _, group := range r.Groups {
		fmt.Fprintf(w, "MAC Address: %s (%d devices)\n", group.MACAddress, group.TotalDevices)
		fmt.Fprintln(w, strings.Repeat("-", 40))

		writeDevice(w, "KEEP", group.Keep)

		for _, device := range group.Remove {
			writeDevice(w, "REMOVE", device)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "The Watchman API does not support deletion; remove the devices")
	fmt.Fprintln(w, "marked REMOVE manually through the web interface using the URLs above.")
}

func writeDevice(w io.Writer, status string, device Device) {
	fmt.Fprintf(w, "  %s: %s (%s)\n", status, device.ComputerName, device.ClientID)
	fmt.Fprintf(w, "     Last Report: %s\n", device.LastReportParsed)
	fmt.Fprintf(w, "     Serial: %s\n", device.SerialNumber)
	fmt.Fprintf(w, "     OS: %s\n", device.OSVersion)

	if device.ComputerURL != "" {
		fmt.Fprintf(w, "     URL: %s\n", device.ComputerURL)
	}

	if status == "REMOVE" {
		fmt.Fprintf(w, "     Reason: %s\n", device.Reason)
	}
}
