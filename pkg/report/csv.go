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
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

//nolint:gochecknoglobals // fixed export schema
var csvHeader = []string{
	"Status", "MAC_Address", "Computer_Name", "Client_ID", "UID",
	"Last_Report", "Serial_Number", "OS_Version", "Group",
	"Computer_URL", "Reason",
}

// WriteCSV writes the report as CSV: header, KEEP rows, then REMOVE rows.
func WriteCSV(w io.Writer, r *Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, device := range r.Keep {
		if err := writer.Write(csvRow("KEEP", device)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	for _, device := range r.Remove {
		if err := writer.Write(csvRow("REMOVE", device)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()

	return writer.Error()
}

// ExportCSV writes the report to a CSV file at path.
func ExportCSV(path string, r *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file %s: %w", path, err)
	}

	if err := WriteCSV(f, r); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func csvRow(status string, device Device) []string {
	return []string{
		status,
		device.MACAddress,
		device.ComputerName,
		device.ClientID,
		device.UID,
		device.LastReportParsed,
		device.SerialNumber,
		device.OSVersion,
		device.Group,
		device.ComputerURL,
		device.Reason,
	}
}
