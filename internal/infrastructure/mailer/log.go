package mailer

import (
	"context"

	"jobboard/internal/domain/mail"
	"jobboard/internal/logger"

	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of delivering them. Used when
// SMTP_HOST is not configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg mail.Message) error {
	logger.Info("Email delivery skipped, SMTP not configured",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("event", "email_logged"),
	)
	logger.Debug("Email body",
		zap.String("to", msg.To),
		zap.String("body", msg.TextBody),
	)
	return nil
}
