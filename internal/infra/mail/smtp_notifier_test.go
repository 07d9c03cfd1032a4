package mail

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passage/config"
)

// silentSMTPServer accepts one connection and holds it open without ever
// sending the SMTP greeting, so only the connection deadline can unblock the
// client.
func silentSMTPServer(t *testing.T) (host string, port int) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	go func() {
		conn, acceptErr := listener.Accept()
		if acceptErr != nil {
			return
		}
		defer conn.Close()
		time.Sleep(5 * time.Second)
	}()

	host, portStr, err := net.SplitHostPort(listener.Addr().String())
	require.NoError(t, err)
	port, err = strconv.Atoi(portStr)
	require.NoError(t, err)

	return host, port
}

func TestSMTPNotifier_SendRespectsContextDeadline(t *testing.T) {
	host, port := silentSMTPServer(t)

	notifier, err := NewSMTPNotifier(&config.SMTPConfig{
		Host: host,
		Port: port,
		From: "noreply@example.com",
	}, "passage", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = notifier.SendVerificationEmail(ctx, "alice@example.com", "Alice",
		"https://app.example.com/auth/verify-email?token=abc")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}
