package mailer

import (
	"context"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectsclub/collab-api/internal/config"
)

// silentSMTP accepts connections and never sends a greeting.
func silentSMTP(t *testing.T) (string, int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var mu sync.Mutex
	var conns []net.Conn
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()

	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	return host, p
}

func TestSMTPMailer_SendHonorsContextDeadline(t *testing.T) {
	host, port := silentSMTP(t)
	m := New(config.MailConfig{
		Host:      host,
		Port:      port,
		User:      "mailer@example.com",
		Password:  "app-password",
		FromEmail: "mailer@example.com",
	})
	require.IsType(t, &SMTPMailer{}, m)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	started := time.Now()
	err := m.Send(ctx, Message{To: "a@x.com", Subject: "Hi", TextBody: "hello"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(started), 5*time.Second)
}

func TestSMTPMailer_SendCanceledContext(t *testing.T) {
	m := New(config.MailConfig{Host: "127.0.0.1", Port: 1, User: "u", Password: "p"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Send(ctx, Message{To: "a@x.com"})
	assert.ErrorIs(t, err, context.Canceled)
}
