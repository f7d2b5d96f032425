// Package cmd provides the transcript commands of the zoomchat CLI.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/otherjamesbrown/zoomchat/config"
	"github.com/otherjamesbrown/zoomchat/pkg/events"
	"github.com/otherjamesbrown/zoomchat/pkg/logging"
	"github.com/otherjamesbrown/zoomchat/pkg/transcript"
)

// ScanPublisher announces scan outcomes.
type ScanPublisher interface {
	PublishScanned(ctx context.Context, session *transcript.Session, elapsed time.Duration) error
	PublishFailed(ctx context.Context, root string, scanErr error) error
	Close() error
}

// CommandDeps holds the dependencies for transcript commands.
type CommandDeps struct {
	Config *config.CLIConfig
	Logger logging.Logger

	Stdin  io.Reader
	Stdout io.Writer

	LoadConfig func() (*config.CLIConfig, error)
	// Interactive reports whether stdin is a terminal a prompt can be shown on.
	Interactive func() bool
	// ColorOutput reports whether stdout accepts ANSI colours.
	ColorOutput  func() bool
	NewPublisher func(ctx context.Context, cfg *config.CLIConfig, logger logging.Logger) (ScanPublisher, error)
}

// DefaultDeps returns the default dependencies for production use.
func DefaultDeps() *CommandDeps {
	return &CommandDeps{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		LoadConfig:  config.LoadConfig,
		Interactive: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		ColorOutput: func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
		NewPublisher: func(ctx context.Context, cfg *config.CLIConfig, logger logging.Logger) (ScanPublisher, error) {
			return events.NewPublisherFromConfig(ctx, events.PublisherConfig{
				Address:  cfg.Events.Address,
				Password: cfg.Events.Password,
				DB:       cfg.Events.DB,
				Channel:  cfg.Events.Channel,
			}, logger)
		},
	}
}

// config returns the loaded configuration, loading it on first use.
func (d *CommandDeps) config() (*config.CLIConfig, error) {
	if d.Config != nil {
		return d.Config, nil
	}
	cfg, err := d.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	d.Config = cfg
	return cfg, nil
}

func (d *CommandDeps) logger() logging.Logger {
	if d.Logger == nil {
		return logging.NewNopLogger()
	}
	return d.Logger
}

func (d *CommandDeps) interactive() bool {
	return d.Interactive != nil && d.Interactive()
}

func (d *CommandDeps) colorOutput() bool {
	return d.ColorOutput != nil && d.ColorOutput()
}
