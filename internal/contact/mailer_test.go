package contact

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var cfg = Config{Host: "smtp.example.com", Port: "587", User: "me@example.com", Pass: "secret", To: "inbox@example.com"}

func TestSend(t *testing.T) {
	m := NewMailer(cfg, zap.NewNop())
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := m.Send(Message{Name: "Ada", Email: "ada@example.com", Message: "Hello"})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "me@example.com", gotFrom)
	assert.Equal(t, []string{"inbox@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Portfolio Contact: Ada\r\n")
	assert.Contains(t, string(gotMsg), "Reply-To: ada@example.com\r\n")
	assert.Contains(t, string(gotMsg), "Message:\nHello")
}

func TestSend_NotConfigured(t *testing.T) {
	m := NewMailer(Config{Host: "h", Port: "25"}, zap.NewNop())
	assert.ErrorIs(t, m.Send(Message{Name: "a", Email: "a@b.c", Message: "x"}), ErrNotConfigured)
}

func TestSend_InvalidForm(t *testing.T) {
	m := NewMailer(cfg, zap.NewNop())
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send should not be called")
		return nil
	}

	assert.Error(t, m.Send(Message{Name: "", Email: "a@b.c", Message: "x"}))
	assert.Error(t, m.Send(Message{Name: "a", Email: "not-an-address", Message: "x"}))
	assert.Error(t, m.Send(Message{Name: "a", Email: "a@b.c", Message: "  "}))
}

func TestSend_TransportError(t *testing.T) {
	m := NewMailer(cfg, zap.NewNop())
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("refused") }

	err := m.Send(Message{Name: "a", Email: "a@b.c", Message: "x"})
	assert.ErrorContains(t, err, "refused")
}

func TestCompose_StripsHeaderInjection(t *testing.T) {
	msg := compose(cfg, Message{Name: "Eve\r\nBcc: victim@example.com", Email: "e@x.io", Message: "hi"})
	headers := strings.SplitN(string(msg), "\r\n\r\n", 2)[0]

	assert.NotContains(t, headers, "\r\nBcc:")
	assert.Contains(t, headers, "Subject: Portfolio Contact: Eve  Bcc: victim@example.com")
}
