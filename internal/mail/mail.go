// Package mail delivers account emails. Drivers: SMTP (direct), AMQP
// (queued for the worker) and log (development).
package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"ethraa/internal/config"
)

type Kind string

const (
	KindPasswordReset       Kind = "password_reset"
	KindAccountVerification Kind = "account_verification"
)

type Message struct {
	Kind Kind   `json:"kind"`
	To   string `json:"to"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Closer is implemented by drivers holding a connection.
type Closer interface {
	Close()
}

// New builds the driver selected by cfg.Driver.
func New(cfg config.MailConfig, log zerolog.Logger) (Mailer, error) {
	switch cfg.Driver {
	case "smtp":
		return NewSMTPMailer(cfg), nil
	case "amqp":
		p, err := NewPublisher(cfg.AMQPURL, cfg.Queue)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "log":
		return NewLogMailer(log), nil
	}
	return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
}
