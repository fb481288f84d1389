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
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

const textBody = `WATCHMAN DUPLICATE DEVICES REPORT
=================================

Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}
Subdomain: {{.Subdomain}}

SUMMARY
-------
Computers analyzed:     {{.TotalAnalyzed}}
Duplicate groups found: {{.TotalGroups}}
Duplicate devices:      {{.TotalDuplicates}}
Devices to keep:        {{len .Keep}}
Devices to remove:      {{len .Remove}}
{{range .Groups}}
MAC Address: {{.MACAddress}} ({{.TotalDevices}} devices)
--------------------------------------------------
KEEP: {{.Keep.ComputerName}} ({{.Keep.ClientID}})
   Last Report: {{.Keep.LastReportParsed}}
   Serial: {{.Keep.SerialNumber}}
   OS: {{.Keep.OSVersion}}
   URL: {{.Keep.ComputerURL}}
{{range .Remove}}REMOVE: {{.ComputerName}} ({{.ClientID}})
   Last Report: {{.LastReportParsed}}
   Serial: {{.SerialNumber}}
   OS: {{.OSVersion}}
   URL: {{.ComputerURL}}
   Reason: {{.Reason}}
{{end}}{{end}}
NEXT STEPS
----------
1. Review the devices marked REMOVE above.
2. Open each device URL and remove it through the Watchman web interface.
3. Keep the devices marked KEEP; they have the most recent report dates.

Note: the Watchman API does not support automatic device removal, so
manual removal through the web interface is required.
`

const htmlBody = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Arial, sans-serif; margin: 20px; }
  .summary { background-color: #e9ecef; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
  .group { margin-bottom: 25px; border: 1px solid #dee2e6; border-radius: 5px; padding: 15px; }
  .group-header { background-color: #007bff; color: white; padding: 10px; margin: -15px -15px 15px -15px; }
  .device { margin: 10px 0; padding: 10px; }
  .keep { background-color: #d4edda; border-left: 4px solid #28a745; }
  .remove { background-color: #f8d7da; border-left: 4px solid #dc3545; }
</style>
</head>
<body>
<h1>Watchman Duplicate Devices Report</h1>
<p><strong>Generated:</strong> {{.GeneratedAt.Format "2006-01-02 15:04:05"}}<br>
<strong>Subdomain:</strong> {{.Subdomain}}</p>

<div class="summary">
<ul>
  <li><strong>Computers analyzed:</strong> {{.TotalAnalyzed}}</li>
  <li><strong>Duplicate groups found:</strong> {{.TotalGroups}}</li>
  <li><strong>Duplicate devices:</strong> {{.TotalDuplicates}}</li>
  <li><strong>Devices to keep:</strong> {{len .Keep}}</li>
  <li><strong>Devices to remove:</strong> {{len .Remove}}</li>
</ul>
</div>

{{range .Groups}}
<div class="group">
  <div class="group-header"><strong>MAC Address:</strong> {{.MACAddress}} ({{.TotalDevices}} devices)</div>
  <div class="device keep">
    <strong>KEEP:</strong> {{.Keep.ComputerName}} ({{.Keep.ClientID}})<br>
    Last Report: {{.Keep.LastReportParsed}}<br>
    Serial: {{.Keep.SerialNumber}} &middot; OS: {{.Keep.OSVersion}}<br>
    <a href="{{.Keep.ComputerURL}}">View in Watchman</a>
  </div>
  {{range .Remove}}
  <div class="device remove">
    <strong>REMOVE:</strong> {{.ComputerName}} ({{.ClientID}})<br>
    Last Report: {{.LastReportParsed}}<br>
    Serial: {{.SerialNumber}} &middot; OS: {{.OSVersion}}<br>
    Reason: {{.Reason}}<br>
    <a href="{{.ComputerURL}}">Remove in Watchman</a>
  </div>
  {{end}}
</div>
{{end}}

<div class="summary">
<h3>Next steps</h3>
<ol>
  <li>Review the devices marked REMOVE above.</li>
  <li>Open each device link and remove it through the Watchman web interface.</li>
  <li>Keep the devices marked KEEP; they have the most recent report dates.</li>
</ol>
<p><em>The Watchman API does not support automatic device removal, so
manual removal through the web interface is required.</em></p>
</div>
</body>
</html>
`

//nolint:gochecknoglobals // parsed once at startup
var (
	textTmpl = texttemplate.Must(texttemplate.New("text").Parse(textBody))
	htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Parse(htmlBody))
)

// RenderText renders the plain-text email body.
func RenderText(r *Report) (string, error) {
	var sb strings.Builder

	if err := textTmpl.Execute(&sb, r); err != nil {
		return "", fmt.Errorf("render text report: %w", err)
	}

	return sb.String(), nil
}

// RenderHTML renders the HTML email body.
func RenderHTML(r *Report) (string, error) {
	var sb strings.Builder

	if err := htmlTmpl.Execute(&sb, r); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}

	return sb.String(), nil
}
