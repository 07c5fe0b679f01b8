package notify

import (
	"context"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"tailoringStorefront/internal/config"
)

// Message is an outgoing HTML e-mail.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers messages to customers.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SMTPSender sends mail through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	if from == "" {
		from = user
	}
	return &SMTPSender{dialer: gomail.NewDialer(host, port, user, password), from: from}
}

func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.HTML)
	return s.dialer.DialAndSend(msg)
}

// LogSender only logs messages. It stands in when SMTP is not configured.
type LogSender struct {
	Log *zap.Logger
}

func (s LogSender) Send(_ context.Context, m Message) error {
	s.Log.Info("email sending disabled; message logged only", zap.String("to", m.To), zap.String("subject", m.Subject))
	return nil
}

// NewSender returns an SMTP sender when credentials are configured and a LogSender otherwise.
func NewSender(cfg config.SMTPConfig, log *zap.Logger) Sender {
	if cfg.User == "" || cfg.Password == "" {
		log.Warn("SMTP credentials not set; confirmation e-mails will only be logged")
		return LogSender{Log: log}
	}
	return NewSMTPSender(cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.From)
}
