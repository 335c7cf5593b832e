package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"ethraa/internal/config"
)

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rendered, err := Render(msg)
	if err != nil {
		return err
	}

	out := gomail.NewMessage()
	out.SetHeader("From", m.from)
	out.SetAddressHeader("To", msg.To, msg.Name)
	out.SetHeader("Subject", rendered.Subject)
	out.SetBody("text/plain", rendered.Text)
	out.AddAlternative("text/html", rendered.HTML)

	if err := m.dialer.DialAndSend(out); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
