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

// Package models defines the wire types shared across the dupereport pipeline.
package models

// DeviceRecord represents a computer as returned by the Watchman
// Monitoring API. Only the fields the report consumes are decoded;
// everything else in the payload is ignored.
type DeviceRecord struct {
	ComputerName     string     `json:"computer_name"`
	ClientID         string     `json:"client_id"`
	UID              string     `json:"uid"`
	SerialNumber     string     `json:"serial_number"`
	OSVersion        string     `json:"os_version"`
	Group            string     `json:"group"`
	ComputerURL      string     `json:"computer_url"`
	SystemMACAddress string     `json:"system_mac_address"`
	LastReport       ReportTime `json:"last_report"`
}
