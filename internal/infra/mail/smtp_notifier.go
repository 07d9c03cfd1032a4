// Package mail implements the Notifier collaborator over SMTP.
package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"

	"passage/config"
	"passage/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultSendTimeout = 30 * time.Second

// smtpNotifier sends verification emails through an SMTP relay using STARTTLS.
type smtpNotifier struct {
	cfg       *config.SMTPConfig
	appName   string
	templates *template.Template
	qr        service.QRCodeService
	logger    *slog.Logger
}

// NewSMTPNotifier builds a Notifier backed by the configured SMTP relay.
func NewSMTPNotifier(cfg *config.SMTPConfig, appName string, qr service.QRCodeService, logger *slog.Logger) (service.Notifier, error) {
	tmpl, err := template.New("emails").Parse(emailTemplates)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse email templates")
	}

	return &smtpNotifier{
		cfg:       cfg,
		appName:   appName,
		templates: tmpl,
		qr:        qr,
		logger:    logger,
	}, nil
}

// SendVerificationEmail renders the verification template and ships it to the
// user's address. The QR image is optional: rendering failures downgrade to a
// link-only email rather than failing the send.
func (n *smtpNotifier) SendVerificationEmail(ctx context.Context, email, name, link string) error {
	data := verificationData{
		Name:    name,
		Link:    link,
		AppName: n.appName,
	}

	if n.qr != nil {
		if png, err := n.qr.GenerateLinkQR(link); err == nil {
			data.QRImage = base64.StdEncoding.EncodeToString(png)
		} else {
			n.logger.Warn("Failed to render verification QR code", slog.Any("error", err))
		}
	}

	var body bytes.Buffer
	if err := n.templates.ExecuteTemplate(&body, "verification", data); err != nil {
		return errors.Wrap(err, "failed to render verification template")
	}

	return n.send(ctx, email, "Verify your email address", body.String())
}

// send assembles the MIME message and submits it over STARTTLS.
func (n *smtpNotifier) send(ctx context.Context, to, subject, body string) error {
	from := n.cfg.From
	if n.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", n.cfg.FromName, n.cfg.From)
	}

	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	timeout := n.cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	addr := net.JoinHostPort(n.cfg.Host, fmt.Sprintf("%d", n.cfg.Port))
	dialer := &net.Dialer{Timeout: timeout}

	netConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "failed to dial SMTP server %s", addr)
	}
	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok {
		deadline = ctxDeadline
	}
	if err := netConn.SetDeadline(deadline); err != nil {
		netConn.Close()

		return errors.Wrap(err, "failed to set SMTP connection deadline")
	}

	client, err := smtp.NewClient(netConn, n.cfg.Host)
	if err != nil {
		netConn.Close()

		return errors.Wrap(err, "failed to create SMTP client")
	}
	defer client.Close()

	if err := client.Hello("localhost"); err != nil {
		return errors.Wrap(err, "failed to send HELO")
	}

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: n.cfg.Host}
		if err := client.StartTLS(tlsCfg); err != nil {
			return errors.Wrap(err, "failed to start TLS")
		}
	}

	if n.cfg.Username != "" {
		auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return errors.Wrap(err, "SMTP authentication failed")
		}
	}

	if err := client.Mail(n.cfg.From); err != nil {
		return errors.Wrap(err, "MAIL FROM rejected")
	}
	if err := client.Rcpt(to); err != nil {
		return errors.Wrap(err, "RCPT TO rejected")
	}

	writer, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "DATA command failed")
	}
	if _, err := writer.Write([]byte(msg.String())); err != nil {
		return errors.Wrap(err, "failed to write message body")
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "failed to finish message body")
	}

	return errors.Wrap(client.Quit(), "failed to close SMTP session")
}
