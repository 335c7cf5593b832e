package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	rendered, err := Render(msg)
	if err != nil {
		return err
	}
	m.log.Info().
		Str("kind", string(msg.Kind)).
		Str("to", msg.To).
		Str("subject", rendered.Subject).
		Str("url", msg.URL).
		Msg("mail not sent, log driver")
	return nil
}
