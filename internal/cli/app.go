package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/mrz1836/buildwatch/internal/config"
	"github.com/mrz1836/buildwatch/internal/constants"
	"github.com/mrz1836/buildwatch/internal/history"
	"github.com/mrz1836/buildwatch/internal/integration"
	"github.com/mrz1836/buildwatch/internal/notify"
	"github.com/mrz1836/buildwatch/internal/tui"
)

// stdinManifest is the manifest argument that reads from standard input.
const stdinManifest = "-"

// app bundles the collaborators shared by the notification commands.
type app struct {
	cfg    *config.Config
	store  history.Store
	logger zerolog.Logger
	stdin  io.Reader

	// interactive reports whether confirmation prompts can be shown.
	interactive func() bool
}

// newApp loads the configuration and opens the history store.
func newApp(ctx context.Context, logger zerolog.Logger) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return newAppWithConfig(cfg, logger)
}

func newAppWithConfig(cfg *config.Config, logger zerolog.Logger) (*app, error) {
	store, err := history.New(&cfg.History)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	return &app{
		cfg:         cfg,
		store:       store,
		logger:      logger,
		stdin:       os.Stdin,
		interactive: tui.IsInteractive,
	}, nil
}

// close releases the history store when it holds a connection.
func (a *app) close() {
	if c, ok := a.store.(io.Closer); ok {
		_ = c.Close()
	}
}

// transport builds the configured transport. dryRun forces the log transport.
func (a *app) transport(dryRun bool) (notify.Transport, error) {
	logger := a.logger.With().Str("component", "transport").Logger()
	if dryRun || a.cfg.Transport == constants.TransportLog {
		return notify.NewLogTransport(logger), nil
	}
	t, err := notify.NewSMTPTransport(a.cfg.SMTP, logger)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// publisher builds a publisher over transport, which may be nil for
// commands that never send.
func (a *app) publisher(transport notify.Transport) *notify.Publisher {
	return notify.NewPublisher(
		notify.SettingsFromConfig(&a.cfg.Notification),
		notify.NewRegistryFromConfig(&a.cfg.Notification),
		transport,
		notify.WithLogger(a.logger.With().Str("component", "publisher").Logger()),
	)
}

// attempt is one manifest replayed into a result.
type attempt struct {
	Source string
	Result *integration.Result
}

// loadAttempt reads the manifest at path and seeds it with the project's
// previous status from history.
func (a *app) loadAttempt(ctx context.Context, path string) (*attempt, error) {
	m, err := a.readManifest(path)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	prev, err := history.Previous(ctx, a.store, m.Project)
	if err != nil {
		return nil, fmt.Errorf("previous attempt of %s: %w", m.Project, err)
	}

	a.logger.Debug().
		Str("manifest", path).
		Str("project", m.Project).
		Str("previous_status", prev.Status.String()).
		Str("last_successful_label", prev.Label).
		Msg("attempt loaded")

	return &attempt{Source: path, Result: m.Build(prev)}, nil
}

// loadAttempts loads every manifest, stopping at the first error.
func (a *app) loadAttempts(ctx context.Context, paths []string) ([]*attempt, error) {
	attempts := make([]*attempt, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		at, err := a.loadAttempt(ctx, path)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, at)
	}
	return attempts, nil
}

func (a *app) readManifest(path string) (*integration.Manifest, error) {
	if path == stdinManifest {
		return integration.LoadManifest(a.stdin)
	}

	f, err := os.Open(path) //#nosec G304 -- manifest path is supplied by the user
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return integration.LoadManifest(f)
}
