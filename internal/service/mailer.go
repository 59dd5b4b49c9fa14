package service

import (
	"context"
	"fmt"

	"smilematch-api/config"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mail is one outgoing HTML message
type Mail struct {
	To       string
	ReplyTo  string
	Subject  string
	HTMLBody string
}

type Mailer interface {
	// Send delivers the mail and returns its Message-ID
	Send(ctx context.Context, mail Mail) (string, error)
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	log    *logrus.Logger
}

// logMailer only logs messages. It is used when no SMTP host is configured.
type logMailer struct {
	from string
	log  *logrus.Logger
}

func NewMailer(cfg config.MailConfig, log *logrus.Logger) Mailer {
	if cfg.Host == "" {
		log.Info("SMTP host not configured, e-mails will be logged only")
		return &logMailer{from: cfg.From, log: log}
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

func newMessageID() string {
	return fmt.Sprintf("<%s@smilematch>", uuid.New().String())
}

func buildMessage(from string, mail Mail, messageID string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", from, "SmileMatch")
	m.SetHeader("To", mail.To)
	if mail.ReplyTo != "" {
		m.SetHeader("Reply-To", mail.ReplyTo)
	}
	m.SetHeader("Subject", mail.Subject)
	m.SetHeader("Message-ID", messageID)
	m.SetBody("text/html", mail.HTMLBody)
	return m
}

func (s *smtpMailer) Send(ctx context.Context, mail Mail) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	messageID := newMessageID()
	if err := s.dialer.DialAndSend(buildMessage(s.from, mail, messageID)); err != nil {
		s.log.Warnf("Failed to send e-mail to %s: %+v", mail.To, err)
		return "", err
	}

	s.log.WithFields(logrus.Fields{"to": mail.To, "message_id": messageID}).Info("E-mail sent")
	return messageID, nil
}

func (s *logMailer) Send(ctx context.Context, mail Mail) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	messageID := newMessageID()
	s.log.WithFields(logrus.Fields{
		"from":       s.from,
		"to":         mail.To,
		"reply_to":   mail.ReplyTo,
		"subject":    mail.Subject,
		"message_id": messageID,
	}).Info("E-mail not sent, SMTP disabled")
	return messageID, nil
}
