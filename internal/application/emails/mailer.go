package emails

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Message is one outbound email.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
	ReplyTo string
}

// Transport delivers a fully rendered message.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// Sender is what the auth service depends on. Nil = no-op.
type Sender interface {
	SendRegistrationNotification(ctx context.Context, r Registration) error
	SendPasswordReset(ctx context.Context, toEmail, resetToken string) error
}

// Registration is the data included in the admin notification.
type Registration struct {
	Email     string
	FirstName string
	LastName  string
	Phone     *string
	Country   *string
	City      *string
	State     *string
}

// Options selects a transport: Brevo when an API key is set, SMTP when fully configured,
// otherwise the log transport.
type Options struct {
	BrevoAPIKey string
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	SMTPSecure  bool
	FromEmail   string
	AdminEmail  string
	FrontendURL string
}

const (
	fromName          = "Go For Glory Stable"
	defaultAdminEmail = "info@goforglorystable.com"
)

type Mailer struct {
	Transport   Transport
	AdminEmail  string
	FrontendURL string
	Now         func() time.Time
}

func New(opts Options) *Mailer {
	var t Transport
	switch {
	case opts.BrevoAPIKey != "":
		t = &BrevoClient{APIKey: opts.BrevoAPIKey, MailFrom: opts.FromEmail, FromName: fromName}
	case opts.SMTPHost != "" && opts.SMTPPort > 0 && opts.SMTPUser != "" && opts.SMTPPass != "":
		from := opts.FromEmail
		if from == "" {
			from = opts.SMTPUser
		}
		t = &SMTPClient{
			Host:     opts.SMTPHost,
			Port:     opts.SMTPPort,
			Username: opts.SMTPUser,
			Password: opts.SMTPPass,
			Secure:   opts.SMTPSecure,
			MailFrom: from,
			FromName: fromName,
		}
	default:
		t = &LogTransport{MailFrom: opts.FromEmail}
	}
	admin := opts.AdminEmail
	if admin == "" {
		admin = defaultAdminEmail
	}
	return &Mailer{Transport: t, AdminEmail: admin, FrontendURL: strings.TrimRight(opts.FrontendURL, "/")}
}

func (m *Mailer) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *Mailer) SendRegistrationNotification(ctx context.Context, r Registration) error {
	phone := "Not provided"
	if r.Phone != nil && *r.Phone != "" {
		phone = *r.Phone
	}
	location := joinLocation(r.City, r.State, r.Country)
	when := m.now().Format("Jan 2, 2006 15:04 MST")
	name := r.FirstName + " " + r.LastName

	text := fmt.Sprintf(`New User Registration

A new user has registered on Go For Glory Stable:

Name: %s
Email: %s
Phone: %s
Location: %s

Registration Date: %s

Please review this registration in the admin panel.`, name, r.Email, phone, location, when)

	rows := [][2]string{
		{"Name", name},
		{"Email", r.Email},
		{"Phone", phone},
		{"Location", location},
		{"Registration Date", when},
	}
	var table strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&table, `<tr><td style="padding: 8px; border-bottom: 1px solid #ddd;"><strong>%s:</strong></td><td style="padding: 8px; border-bottom: 1px solid #ddd;">%s</td></tr>`,
			row[0], EscapeHTML(row[1]))
	}
	html := EmailLayout(fmt.Sprintf(`
    <h2>New User Registration</h2>
    <p>A new user has registered on Go For Glory Stable:</p>
    <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">%s</table>
    <p>Please review this registration in the admin panel.</p>
`, table.String()))

	return m.Transport.Send(ctx, Message{
		To:      []string{m.AdminEmail},
		Subject: "New User Registration - Go For Glory Stable",
		Text:    text,
		HTML:    html,
	})
}

// ResetLink is the frontend page that consumes a reset token.
func (m *Mailer) ResetLink(token string) string {
	return m.FrontendURL + "/reset-password?token=" + url.QueryEscape(token)
}

func (m *Mailer) SendPasswordReset(ctx context.Context, toEmail, resetToken string) error {
	link := m.ResetLink(resetToken)
	text := fmt.Sprintf(`Password Reset Request

You have requested to reset your password for your Go For Glory Stable account.

Click the link below to reset your password:
%s

This link will expire in 1 hour.

If you did not request this password reset, please ignore this email.

Best regards,
Go For Glory Stable Team`, link)

	html := EmailLayout(fmt.Sprintf(`
    <h2>Password Reset Request</h2>
    <p>You have requested to reset your password for your Go For Glory Stable account.</p>
    <center><a href="%s" class="gfg-button">Reset Password</a></center>
    <p>This link will expire in 1 hour.</p>
    <p style="color: #666; font-size: 12px;">If you did not request this password reset, please ignore this email.</p>
    <p>Best regards,<br>Go For Glory Stable Team</p>
`, link))

	return m.Transport.Send(ctx, Message{
		To:      []string{toEmail},
		Subject: "Reset Your Password - Go For Glory Stable",
		Text:    text,
		HTML:    html,
	})
}

func joinLocation(parts ...*string) string {
	var out []string
	for _, p := range parts {
		if p != nil && strings.TrimSpace(*p) != "" {
			out = append(out, *p)
		}
	}
	if len(out) == 0 {
		return "Not provided"
	}
	return strings.Join(out, ", ")
}
