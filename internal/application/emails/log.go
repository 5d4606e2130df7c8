package emails

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// LogTransport writes messages to the log instead of delivering them.
// Used when neither Brevo nor SMTP is configured.
type LogTransport struct {
	MailFrom string
}

func (t *LogTransport) Send(_ context.Context, msg Message) error {
	log.Warn().Msg("Email delivery not configured; logging message instead of sending")
	log.Info().
		Str("from", t.MailFrom).
		Str("to", strings.Join(msg.To, ", ")).
		Str("subject", msg.Subject).
		Str("body", msg.Text).
		Msg("Email would be sent")
	return nil
}
