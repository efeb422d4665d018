package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"github.com/mrz1836/buildwatch/internal/config"
	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/ctxutil"
	"github.com/mrz1836/buildwatch/internal/errors"
)

// SMTPTransport delivers messages through an SMTP server.
type SMTPTransport struct {
	cfg    config.SMTPConfig
	logger zerolog.Logger
}

// NewSMTPTransport creates an SMTP transport. The host must be set.
func NewSMTPTransport(cfg config.SMTPConfig, logger zerolog.Logger) (*SMTPTransport, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errors.Wrap(errors.ErrConfigInvalidSMTP, "smtp.host must not be empty when transport is smtp")
	}
	if cfg.Port == 0 {
		cfg.Port = constants.DefaultSMTPPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.DefaultSMTPTimeout
	}
	return &SMTPTransport{
		cfg:    cfg,
		logger: logger.With().Str("component", "notify.smtp").Str("host", cfg.Host).Logger(),
	}, nil
}

// Send dials the server and delivers msg to every recipient in one transaction.
func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	m, err := buildMailMessage(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(t.cfg.Host, t.clientOptions()...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send via %s:%d: %w", t.cfg.Host, t.cfg.Port, err)
	}

	t.logger.Debug().
		Str("notification_id", msg.ID).
		Int("recipients", len(msg.To)).
		Msg("message delivered")
	return nil
}

// clientOptions maps the configuration onto go-mail client options.
func (t *SMTPTransport) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(t.cfg.Port),
		mail.WithTimeout(t.cfg.Timeout),
		mail.WithTLSPolicy(tlsPolicy(t.cfg.TLSPolicy)),
	}
	if t.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(t.cfg.Username),
			mail.WithPassword(t.cfg.Password),
		)
	}
	return opts
}

func tlsPolicy(policy string) mail.TLSPolicy {
	switch policy {
	case constants.TLSPolicyOpportunistic:
		return mail.TLSOpportunistic
	case constants.TLSPolicyNone:
		return mail.NoTLS
	default:
		return mail.TLSMandatory
	}
}

// buildMailMessage converts msg into a go-mail message without touching the network.
func buildMailMessage(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", msg.From, err)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient list: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to address %q: %w", msg.ReplyTo, err)
		}
	}
	if msg.ID != "" {
		m.SetMessageIDWithValue(msg.ID)
	}
	m.Subject(msg.Subject)
	bodyType := mail.TypeTextHTML
	if msg.ContentType == ContentTypePlain {
		bodyType = mail.TypeTextPlain
	}
	m.SetBodyString(bodyType, msg.Body)
	return m, nil
}

var _ Transport = (*SMTPTransport)(nil)
