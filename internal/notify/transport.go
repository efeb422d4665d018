package notify

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/buildwatch/internal/ctxutil"
)

// Message is one rendered notification ready for delivery.
type Message struct {
	// ID uniquely identifies the notification. SMTP uses it as Message-ID.
	ID      string
	From    string
	To      []string
	ReplyTo string
	Subject string
	Body    string

	// ContentType is ContentTypeHTML or ContentTypePlain. Empty means HTML.
	ContentType string
}

// Body content types.
const (
	ContentTypeHTML  = "text/html"
	ContentTypePlain = "text/plain"
)

// Transport delivers messages. Send is called at most once per attempt with
// the full recipient list; it must not retry on its own.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// LogTransport writes message metadata to a logger instead of delivering it.
// It backs the "log" transport and dry runs.
type LogTransport struct {
	logger zerolog.Logger
}

// NewLogTransport creates a LogTransport writing to logger.
func NewLogTransport(logger zerolog.Logger) *LogTransport {
	return &LogTransport{logger: logger.With().Str("component", "notify.log_transport").Logger()}
}

// Send logs msg.
func (t *LogTransport) Send(ctx context.Context, msg Message) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	t.logger.Info().
		Str("notification_id", msg.ID).
		Str("from", msg.From).
		Str("to", strings.Join(msg.To, ", ")).
		Str("subject", msg.Subject).
		Str("content_type", msg.ContentType).
		Int("body_bytes", len(msg.Body)).
		Msg("notification not delivered (log transport)")
	return nil
}

var _ Transport = (*LogTransport)(nil)
