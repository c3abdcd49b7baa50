package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectsclub/collab-api/internal/config"
)

func TestPasswordReset(t *testing.T) {
	link := "http://localhost:5173/#/reset-password?token=abc123"
	msg, err := PasswordReset("a@x.com", link)
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", msg.To)
	assert.Contains(t, msg.Subject, "Reset Your Password")
	assert.Contains(t, msg.TextBody, link)
	assert.Contains(t, msg.HTMLBody, "token=abc123")
	assert.Contains(t, msg.TextBody, "15 minutes")
}

func TestWelcome_EscapesHTML(t *testing.T) {
	msg, err := Welcome("<b>evil</b>@x.com")
	require.NoError(t, err)

	assert.NotContains(t, msg.HTMLBody, "<b>evil</b>")
	assert.Contains(t, msg.TextBody, "<b>evil</b>@x.com")
}

func TestNew_DisabledWithoutCredentials(t *testing.T) {
	m := New(config.MailConfig{Host: "smtp.example.com"})

	err := m.Send(context.Background(), Message{To: "a@x.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
