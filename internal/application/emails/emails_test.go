package emails

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureTransport struct {
	sent []Message
}

func (c *captureTransport) Send(_ context.Context, msg Message) error {
	c.sent = append(c.sent, msg)
	return nil
}

func TestNew_PicksTransport(t *testing.T) {
	m := New(Options{BrevoAPIKey: "k", SMTPHost: "smtp"})
	assert.IsType(t, &BrevoClient{}, m.Transport)

	m = New(Options{SMTPHost: "smtp.example.com", SMTPPort: 587, SMTPUser: "u", SMTPPass: "p"})
	smtpT, ok := m.Transport.(*SMTPClient)
	require.True(t, ok)
	assert.Equal(t, "u", smtpT.MailFrom)

	m = New(Options{SMTPHost: "smtp.example.com"})
	assert.IsType(t, &LogTransport{}, m.Transport)
	assert.Equal(t, defaultAdminEmail, m.AdminEmail)
}

func TestSendRegistrationNotification(t *testing.T) {
	ct := &captureTransport{}
	city, country := "Lexington", "US"
	m := &Mailer{Transport: ct, AdminEmail: "admin@stable.test", Now: func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}}
	require.NoError(t, m.SendRegistrationNotification(context.Background(), Registration{
		Email: "new@member.test", FirstName: "Ann", LastName: "<Lee>", City: &city, Country: &country,
	}))
	require.Len(t, ct.sent, 1)
	msg := ct.sent[0]
	assert.Equal(t, []string{"admin@stable.test"}, msg.To)
	assert.Contains(t, msg.Text, "Location: Lexington, US")
	assert.Contains(t, msg.Text, "Phone: Not provided")
	assert.Contains(t, msg.HTML, "&lt;Lee&gt;")
}

func TestSendPasswordReset_Link(t *testing.T) {
	ct := &captureTransport{}
	m := &Mailer{Transport: ct, FrontendURL: "https://app.test"}
	require.NoError(t, m.SendPasswordReset(context.Background(), "a@b.test", "abc123"))
	require.Len(t, ct.sent, 1)
	assert.Contains(t, ct.sent[0].Text, "https://app.test/reset-password?token=abc123")
	assert.Equal(t, "Reset Your Password - Go For Glory Stable", ct.sent[0].Subject)
}

func TestBrevoClient_Send(t *testing.T) {
	var got BrevoSendRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := &BrevoClient{APIKey: "key", MailFrom: "from@test", FromName: fromName, BaseURL: srv.URL}
	require.NoError(t, c.Send(context.Background(), Message{To: []string{"x@test"}, Subject: "S", HTML: "<p>h</p>"}))
	assert.Equal(t, "key", apiKey)
	assert.Equal(t, "S", got.Subject)
	require.Len(t, got.To, 1)
	assert.Equal(t, "x@test", got.To[0].Email)
}

func TestBrevoClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()
	c := &BrevoClient{APIKey: "key", BaseURL: srv.URL}
	err := c.Send(context.Background(), Message{To: []string{"x@test"}})
	assert.Error(t, err)
}

func TestBuildMIME(t *testing.T) {
	raw := string(buildMIME(fromName, "from@test", Message{To: []string{"a@test", "b@test"}, Subject: "Hi", Text: "t", HTML: "<b>h</b>"}))
	assert.True(t, strings.HasPrefix(raw, "From: "))
	assert.Contains(t, raw, "To: a@test, b@test\r\n")
	assert.Contains(t, raw, "text/html")
	assert.True(t, strings.HasSuffix(raw, "--"+mimeBoundary+"--\r\n"))
}

func TestLogTransport(t *testing.T) {
	assert.NoError(t, (&LogTransport{}).Send(context.Background(), Message{To: []string{"a@test"}}))
}
