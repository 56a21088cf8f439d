// Copyright (c) 2025-2026 Sandeep Gupta
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mail sends contact submission notifications over SMTP.
package mail

import (
	"context"
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"github.com/Sandeep-Gupta-legend/personal-portfolio/internal/model"
)

// Config holds SMTP settings for outbound notifications.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

// SMTPNotifier delivers submission notifications through an SMTP relay.
type SMTPNotifier struct {
	cfg Config
	// send is swappable in tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier creates a notifier for the given SMTP configuration.
func NewSMTPNotifier(cfg Config) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail}
}

// NotifySubmission composes and sends an email summarizing the submission.
func (n *SMTPNotifier) NotifySubmission(ctx context.Context, sub model.ContactSubmission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from := n.cfg.From
	if from == "" {
		from = n.cfg.User
	}

	var auth smtp.Auth
	if n.cfg.User != "" {
		auth = smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	msg := buildMessage(from, n.cfg.To, sub)

	if err := n.send(addr, auth, from, []string{n.cfg.To}, msg); err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	return nil
}

// buildMessage renders the notification as an HTML email.
func buildMessage(from, to string, sub model.ContactSubmission) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: New Contact Form Submission: %s\r\n", sanitizeHeader(sub.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")

	b.WriteString("<h2>New Contact Form Submission</h2>")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", html.EscapeString(sub.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(sub.Email))
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>", html.EscapeString(sub.Subject))
	b.WriteString("<p><strong>Message:</strong></p>")
	fmt.Fprintf(&b, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(sub.Message), "\n", "<br>"))
	b.WriteString("<hr>")
	fmt.Fprintf(&b, "<p><small>Submitted at: %s</small></p>", sub.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	return []byte(b.String())
}

// sanitizeHeader strips CR/LF to prevent header injection through the subject.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
