package mailer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/superstudio/showcase-api/pkg/config"
)

// Mailer delivers login links by email. Delivery failures are absorbed: when
// the transport is disabled, unconfigured, slow, or failing, the link is
// logged for operator visibility and the caller proceeds as if it was sent.
// The magic-link request flow must never stall on a mail server.
type Mailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// New constructs a Mailer from SMTP configuration.
func New(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{cfg: cfg, logger: logger}
}

// Enabled reports whether a transport is configured.
func (m *Mailer) Enabled() bool {
	return m != nil && !m.cfg.Disabled && m.cfg.Host != ""
}

// SendLoginLink attempts delivery of a magic-link email to the recipient.
func (m *Mailer) SendLoginLink(ctx context.Context, to, loginURL string) {
	if !m.Enabled() {
		m.logger.Info("mail transport disabled, logging login link",
			zap.String("email", to),
			zap.String("login_url", loginURL))
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your Superstudio login link")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Follow this link to edit your submission:\n\n%s\n\nThe link expires shortly. If you did not request it, ignore this email.", loginURL))
	msg.AddAlternative("text/html", fmt.Sprintf(
		`<p>Follow this link to edit your submission:</p><p><a href="%s">%s</a></p><p>The link expires shortly. If you did not request it, ignore this email.</p>`,
		loginURL, loginURL))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)

	timeout := m.cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			m.logger.Warn("login link delivery failed, logging link instead",
				zap.String("email", to),
				zap.String("login_url", loginURL),
				zap.Error(err))
			return
		}
		m.logger.Info("login link sent", zap.String("email", to))
	case <-ctx.Done():
		m.logger.Warn("login link delivery timed out, logging link instead",
			zap.String("email", to),
			zap.String("login_url", loginURL))
	}
}
