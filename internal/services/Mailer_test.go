package services

import (
	"errors"
	"net/smtp"
	"resultsd/internal/structures"
	"resultsd/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailer_SendOTP(t *testing.T) {
	conf := &structures.Config{Mail: structures.MailConfig{
		Enabled: true, Host: "smtp.example.com", Port: 587, Username: "bot@example.com", Password: "pw",
	}}
	m := NewMailer(conf, &testutil.MockLogger{}).(*SMTPMailer)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		assert.NotNil(t, a)
		return nil
	}

	require.NoError(t, m.SendOTP("user@example.com", "123456"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "bot@example.com", gotFrom)
	assert.Equal(t, []string{"user@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Your OTP for registration is: 123456")
}

func TestSMTPMailer_Errors(t *testing.T) {
	m := &SMTPMailer{addr: "x:25", from: "a@b.c", send: func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("relay denied")
	}}

	assert.ErrorContains(t, m.SendOTP("user@example.com", "1"), "relay denied")
	assert.Error(t, m.SendOTP("user@example.com\r\nBcc: x@y.z", "1"))
}

func TestNewMailer_DisabledLogsOnly(t *testing.T) {
	logger := &testutil.MockLogger{}
	m := NewMailer(&structures.Config{}, logger)

	_, isSMTP := m.(*SMTPMailer)
	assert.False(t, isSMTP)
	assert.NoError(t, m.SendOTP("user@example.com", "123456"))
	assert.Equal(t, 2, logger.Count("info"))
}
