package utils

import (
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.Generate("u1", "jane@example.com", "admin")
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenRejectsOtherSecretAndExpiry(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.Generate("u1", "jane@example.com", "customer")
	require.NoError(t, err)

	_, err = NewTokenIssuer("other", time.Hour).Parse(token)
	assert.Error(t, err)

	later := NewTokenIssuer("secret", time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.Parse(token)
	assert.Error(t, err)

	_, err = issuer.Parse("not-a-token")
	assert.Error(t, err)
}

func TestTokenRequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour).Generate("u1", "a@b.c", "customer")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, ComparePasswords(hash, "hunter22"))
	assert.False(t, ComparePasswords(hash, "hunter23"))
}

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func TestSendContact(t *testing.T) {
	m := NewMailer(MailConfig{Host: "smtp.example.com", Username: "shop@example.com", Password: "pw", StoreName: "Nova"})
	var sent []sentMail
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}

	err := m.SendContact(EmailData{Name: "Jane", Email: "jane@example.com", Subject: "Hi", Message: "line one\nline two"})
	require.NoError(t, err)
	require.Len(t, sent, 2)

	assert.Equal(t, "smtp.example.com:587", sent[0].addr)
	assert.Equal(t, []string{"shop@example.com"}, sent[0].to)
	assert.Contains(t, sent[0].msg, "Subject: New Contact Form Submission: Hi")
	assert.Contains(t, sent[0].msg, "Reply-To: jane@example.com")
	assert.Contains(t, sent[0].msg, "line one<br>line two")

	assert.Equal(t, []string{"jane@example.com"}, sent[1].to)
	assert.Contains(t, sent[1].msg, "The Nova Team")
	assert.False(t, strings.Contains(sent[1].msg, "Reply-To"))
}

func TestSendEmailNotConfigured(t *testing.T) {
	err := NewMailer(MailConfig{}).SendContact(EmailData{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrMailNotConfigured)
}
