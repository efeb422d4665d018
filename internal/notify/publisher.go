package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/buildwatch/internal/config"
	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/ctxutil"
	"github.com/mrz1836/buildwatch/internal/errors"
	"github.com/mrz1836/buildwatch/internal/integration"
)

// Settings holds the publisher's message settings.
type Settings struct {
	// FromAddress is the sender, and the fallback recipient for failed or excepted
	// attempts that resolve to nobody.
	FromAddress string

	// ReplyTo is copied into every message when set.
	ReplyTo string

	// IncludeDetails selects the HTML report over the plain-text summary.
	IncludeDetails bool

	// Concurrency bounds PublishAll. Values below 1 mean one at a time.
	Concurrency int
}

// SettingsFromConfig extracts publisher settings from the notification configuration.
func SettingsFromConfig(cfg *config.NotificationConfig) Settings {
	if cfg == nil {
		return Settings{Concurrency: constants.DefaultNotifyConcurrency}
	}
	return Settings{
		FromAddress:    cfg.FromAddress,
		ReplyTo:        cfg.ReplyTo,
		IncludeDetails: cfg.IncludeDetails,
		Concurrency:    cfg.Concurrency,
	}
}

// Publisher resolves recipients for completed attempts, renders messages and
// hands them to a transport.
type Publisher struct {
	settings  Settings
	registry  *Registry
	transport Transport
	builder   MessageBuilder
	logger    zerolog.Logger
	newID     func() string
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithMessageBuilder replaces the default builder. Messages are sent as HTML
// unless b reports another content type through a ContentType method.
func WithMessageBuilder(b MessageBuilder) Option {
	return func(p *Publisher) {
		if b != nil {
			p.builder = b
		}
	}
}

// WithLogger sets the publisher's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger.With().Str("component", "notify").Logger()
	}
}

// WithIDGenerator replaces the notification ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(p *Publisher) {
		if fn != nil {
			p.newID = fn
		}
	}
}

// NewPublisher creates a publisher. transport may be nil for publishers that
// only resolve and render.
func NewPublisher(settings Settings, registry *Registry, transport Transport, opts ...Option) *Publisher {
	p := &Publisher{
		settings:  settings,
		registry:  registry,
		transport: transport,
		builder:   defaultBuilder(settings.IncludeDetails),
		logger:    zerolog.Nop(),
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ResolveRecipients returns the addresses that should hear about snap, in
// configuration order with duplicates removed. Users whose group is not
// configured are skipped. When nobody qualifies and the attempt failed or
// raised a fault, the from address is used. Attempts still in the unknown
// status never fall back.
func (p *Publisher) ResolveRecipients(snap integration.Snapshot) []string {
	if snap == nil {
		return nil
	}

	seen := make(map[string]bool)
	var recipients []string
	for _, user := range p.registry.Users() {
		group, ok := p.registry.Group(user.Group)
		if !ok {
			p.logger.Debug().
				Str("user", user.Name).
				Str("group", user.Group).
				Msg("skipping user with unknown group")
			continue
		}
		if !ShouldNotify(group.Policy, snap) {
			continue
		}
		if seen[user.Address] {
			continue
		}
		seen[user.Address] = true
		recipients = append(recipients, user.Address)
	}

	if len(recipients) == 0 && integration.IsBrokenStatus(snap.Status()) && p.settings.FromAddress != "" {
		recipients = []string{p.settings.FromAddress}
	}
	return recipients
}

// CreateMessage renders the body for snap. When the builder fails or panics,
// the error text becomes the whole body so recipients still learn something.
func (p *Publisher) CreateMessage(snap integration.Snapshot) (body string) {
	defer func() {
		if r := recover(); r != nil {
			body = panicText(r)
			p.logger.Error().
				Str("project", snap.ProjectName()).
				Str("panic", body).
				Msg("message builder panicked")
		}
	}()

	out, err := p.builder.Build(snap)
	if err != nil {
		p.logger.Warn().Err(err).
			Str("project", snap.ProjectName()).
			Msg("message builder failed, sending error text")
		return err.Error()
	}
	return out
}

func panicText(r any) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(r)
}

func defaultBuilder(includeDetails bool) MessageBuilder {
	if includeDetails {
		return HTMLMessageBuilder{IncludeDetails: true}
	}
	return TextMessageBuilder{}
}

// NewMessage assembles the message for snap addressed to recipients.
func (p *Publisher) NewMessage(snap integration.Snapshot, recipients []string) Message {
	contentType := ContentTypeHTML
	if ct, ok := p.builder.(interface{ ContentType() string }); ok {
		contentType = ct.ContentType()
	}
	return Message{
		ID:          p.newID(),
		From:        p.settings.FromAddress,
		To:          append([]string(nil), recipients...),
		ReplyTo:     p.settings.ReplyTo,
		Subject:     Subject(snap),
		Body:        p.CreateMessage(snap),
		ContentType: contentType,
	}
}

// ResolveAndNotify resolves the recipients of snap and, if there are any,
// sends one message to all of them. It reports whether a message was sent.
// A transport error is returned wrapped in ErrTransportFailed; nothing is retried.
func (p *Publisher) ResolveAndNotify(ctx context.Context, snap integration.Snapshot) (bool, error) {
	if snap == nil {
		return false, errors.ErrNilSnapshot
	}
	if err := ctxutil.Canceled(ctx); err != nil {
		return false, err
	}

	log := p.logger.With().
		Str("project", snap.ProjectName()).
		Str("label", snap.Label()).
		Str("status", snap.Status().String()).
		Logger()

	recipients := p.ResolveRecipients(snap)
	if len(recipients) == 0 {
		log.Debug().Msg("no recipients, nothing to send")
		return false, nil
	}
	if p.transport == nil {
		return false, fmt.Errorf("%w: no transport configured", errors.ErrTransportFailed)
	}

	msg := p.NewMessage(snap, recipients)
	log = log.With().Str("notification_id", msg.ID).Logger()

	if err := p.transport.Send(ctx, msg); err != nil {
		log.Error().Err(err).Int("recipients", len(recipients)).Msg("notification failed")
		return false, fmt.Errorf("%w: %w", errors.ErrTransportFailed, err)
	}

	log.Info().Int("recipients", len(recipients)).Msg("notification sent")
	return true, nil
}

// PublishResult is the result of notifying one attempt.
type PublishResult struct {
	Project string
	Label   string
	Sent    bool
	Err     error
}

// PublishAll notifies independent attempts concurrently, at most
// Settings.Concurrency at a time. Results are returned in input order;
// one attempt's failure does not stop the others.
func (p *Publisher) PublishAll(ctx context.Context, snaps []integration.Snapshot) []PublishResult {
	outcomes := make([]PublishResult, len(snaps))

	limit := p.settings.Concurrency
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, snap := range snaps {
		if snap != nil {
			outcomes[i].Project = snap.ProjectName()
			outcomes[i].Label = snap.Label()
		}
		g.Go(func() error {
			sent, err := p.ResolveAndNotify(ctx, snap)
			outcomes[i].Sent = sent
			outcomes[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
