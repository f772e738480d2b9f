package services

import (
	"fmt"
	"net/smtp"
	"resultsd/internal/providers"
	"resultsd/internal/structures"
	"strconv"
	"strings"
)

type MailerInterface interface {
	SendOTP(to, otp string) error
}

// SMTPMailer delivers one-time passwords over SMTP with PLAIN auth.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(conf *structures.Config, logger providers.Logger) MailerInterface {
	if !conf.Mail.Enabled {
		logger.Infof(providers.TypeApp, "Mail disabled, OTPs are only logged")
		return &logMailer{logger: logger}
	}
	var auth smtp.Auth
	if conf.Mail.Username != "" {
		auth = smtp.PlainAuth("", conf.Mail.Username, conf.Mail.Password, conf.Mail.Host)
	}
	from := conf.Mail.From
	if from == "" {
		from = conf.Mail.Username
	}
	return &SMTPMailer{
		addr: conf.Mail.Host + ":" + strconv.Itoa(conf.Mail.Port),
		from: from,
		auth: auth,
		send: smtp.SendMail,
	}
}

func (m *SMTPMailer) SendOTP(to, otp string) error {
	if strings.ContainsAny(to, "\r\n") {
		return fmt.Errorf("invalid recipient %q", to)
	}
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: Your OTP Code",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		"Your OTP for registration is: " + otp,
		"It will expire soon.",
	}, "\r\n")
	if err := m.send(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}
	return nil
}

type logMailer struct {
	logger providers.Logger
}

func (m *logMailer) SendOTP(to, _ string) error {
	m.logger.Infof(providers.TypeAuth, "OTP generated for %s (mail disabled)", to)
	return nil
}
