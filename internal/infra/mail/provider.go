package mail

import (
	"context"
	"log/slog"

	"passage/config"
	"passage/internal/domain/service"

	"go.uber.org/fx"
)

// noopNotifier logs instead of sending when SMTP is not configured.
type noopNotifier struct {
	logger *slog.Logger
}

func (n *noopNotifier) SendVerificationEmail(_ context.Context, email, _, link string) error {
	n.logger.Info("[NoopMail] SMTP not configured, skipping verification email",
		slog.String("email", email),
		slog.String("link", link),
	)

	return nil
}

// NotifierParams holds dependencies for the Notifier, injected by Fx.
type NotifierParams struct {
	fx.In

	Config *config.Config
	QR     service.QRCodeService
	Logger *slog.Logger
}

// NewNotifier creates a Notifier based on configuration: an SMTP mailer when
// SMTP settings are present, otherwise a logging no-op.
func NewNotifier(params NotifierParams) (service.Notifier, error) {
	if params.Config.SMTP == nil {
		params.Logger.Info("SMTP not configured, using no-op notifier")

		return &noopNotifier{logger: params.Logger}, nil
	}

	return NewSMTPNotifier(params.Config.SMTP, params.Config.Env.ServiceName, params.QR, params.Logger)
}
