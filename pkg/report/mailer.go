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
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/carverauto/dupereport/pkg/config"
	"github.com/carverauto/dupereport/pkg/logger"
)

// Mailer delivers the report over SMTP as a multipart text+HTML message
// with an optional CSV attachment.
type Mailer struct {
	cfg    config.SMTP
	logger logger.Logger
}

func NewMailer(cfg config.SMTP, log logger.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: log}
}

// Send renders and delivers the report. csvPath attaches the exported
// CSV when non-empty.
func (m *Mailer) Send(ctx context.Context, r *Report, csvPath string) error {
	msg := mail.NewMsg()

	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("set from address %q: %w", m.cfg.From, err)
	}

	if err := msg.To(m.cfg.To); err != nil {
		return fmt.Errorf("set to address %q: %w", m.cfg.To, err)
	}

	msg.Subject(fmt.Sprintf("Watchman Duplicate Devices Report - %s",
		r.GeneratedAt.Format("2006-01-02 15:04")))

	text, err := RenderText(r)
	if err != nil {
		return err
	}

	html, err := RenderHTML(r)
	if err != nil {
		return err
	}

	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, html)

	if csvPath != "" {
		msg.AttachFile(csvPath)
	}

	tlsPolicy := mail.TLSOpportunistic
	if m.cfg.UseTLS {
		tlsPolicy = mail.TLSMandatory
	}

	client, err := mail.NewClient(m.cfg.Server,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPortPolicy(tlsPolicy),
	)
	if err != nil {
		return fmt.Errorf("create smtp client for %s: %w", m.cfg.Server, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send report email to %s: %w", m.cfg.To, err)
	}

	m.logger.Info().Str("to", m.cfg.To).Msg("Report email sent")

	return nil
}
