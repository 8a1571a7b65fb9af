// Package email renders the transactional messages sent to users and to the
// support inbox. Delivery lives in the ses and noop subpackages.
package email

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"invoicegen/internal/port"
)

// Rendered is a ready-to-send message body.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

var (
	resetHTML = htmltemplate.Must(htmltemplate.New("reset.html").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Helvetica, Arial, sans-serif; max-width: 560px; margin: 0 auto; padding: 24px; color: #1e293b;">
  <h2 style="color: #2563eb;">Reset your password</h2>
  <p>{{.Greeting}}</p>
  <p>Someone asked to reset the password of your invoice generator account. Use the button below to choose a new one.</p>
  <p style="text-align: center; margin: 28px 0;">
    <a href="{{.Link}}" style="background: #2563eb; color: #fff; padding: 12px 22px; border-radius: 6px; text-decoration: none;">Choose a new password</a>
  </p>
  <p style="word-break: break-all; color: #64748b;">{{.Link}}</p>
  <p style="color: #94a3b8; font-size: 12px;">The link works once and expires in {{.Expiry}}. If you did not ask for it, ignore this email.</p>
</body>
</html>`))

	resetText = texttemplate.Must(texttemplate.New("reset.txt").Parse(`{{.Greeting}}

Someone asked to reset the password of your invoice generator account.
Open this link to choose a new one:

{{.Link}}

The link works once and expires in {{.Expiry}}. If you did not ask for it, ignore this email.
`))

	contactHTML = htmltemplate.Must(htmltemplate.New("contact.html").Parse(
		`<p><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>` +
			`<p><strong>Subject:</strong> {{.Subject}}</p>` +
			`<p style="white-space: pre-wrap;">{{.Message}}</p>`))

	contactText = texttemplate.Must(texttemplate.New("contact.txt").Parse(
		"From: {{.Name}} <{{.Email}}>\nSubject: {{.Subject}}\n\n{{.Message}}\n"))
)

// PasswordResetMessage renders the reset notice.
func PasswordResetMessage(msg port.PasswordReset) (Rendered, error) {
	greeting := "Hi there,"
	if name := strings.TrimSpace(msg.Name); name != "" {
		greeting = "Hi " + name + ","
	}
	data := struct {
		Greeting, Link, Expiry string
	}{greeting, msg.Link, HumanDuration(msg.ExpiresIn)}

	return render("Reset your invoice generator password", data, resetHTML, resetText)
}

// ContactMessage renders a contact form submission for the support inbox.
func ContactMessage(msg port.ContactMessage) (Rendered, error) {
	return render("[Contact] "+msg.Subject, msg, contactHTML, contactText)
}

func render(subject string, data any, h *htmltemplate.Template, t *texttemplate.Template) (Rendered, error) {
	var hb, tb strings.Builder
	if err := h.Execute(&hb, data); err != nil {
		return Rendered{}, fmt.Errorf("rendering %s: %w", h.Name(), err)
	}
	if err := t.Execute(&tb, data); err != nil {
		return Rendered{}, fmt.Errorf("rendering %s: %w", t.Name(), err)
	}
	return Rendered{Subject: subject, HTML: hb.String(), Text: tb.String()}, nil
}

// HumanDuration formats d in whole hours or minutes, e.g. "1 hour", "30 minutes".
func HumanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute:
		return plural(int(d/time.Minute), "minute")
	}
	return plural(int(d/time.Second), "second")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
