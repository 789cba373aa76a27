package delivery

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPConfig holds mail transport configuration
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	To         string
	SenderName string
}

// MailSender dispatches a message with an attachment to the back-office
// address. Abstracted so tests can swap the SMTP round trip out.
type MailSender interface {
	Send(ctx context.Context, subject, body, attachmentName string, attachment []byte) error
}

// Sender sends submission bundles over SMTP.
type Sender struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

// NewSender creates a new SMTP sender
func NewSender(cfg SMTPConfig, logger *zap.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

// Send dispatches one message with the bundle attached. The context only
// bounds the call site; SMTP dial/write timeouts come from the dialer.
func (s *Sender) Send(ctx context.Context, subject, body, attachmentName string, attachment []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	if s.cfg.SenderName != "" {
		m.SetAddressHeader("From", s.cfg.From, s.cfg.SenderName)
	} else {
		m.SetHeader("From", s.cfg.From)
	}
	m.SetHeader("To", s.cfg.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(attachment))
		return err
	}))

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("Failed to send mail",
			zap.String("to", s.cfg.To),
			zap.String("subject", subject),
			zap.Error(err))
		return fmt.Errorf("failed to send mail: %w", err)
	}

	s.logger.Info("Mail sent",
		zap.String("to", s.cfg.To),
		zap.String("subject", subject),
		zap.Int("attachment_bytes", len(attachment)))

	return nil
}
