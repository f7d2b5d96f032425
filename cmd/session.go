package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/otherjamesbrown/zoomchat/config"
	"github.com/otherjamesbrown/zoomchat/pkg/buildinfo"
	pferrors "github.com/otherjamesbrown/zoomchat/pkg/errors"
	"github.com/otherjamesbrown/zoomchat/pkg/logging"
	"github.com/otherjamesbrown/zoomchat/pkg/transcript"
)

// newScanner builds a transcript scanner from the configuration.
func newScanner(cfg *config.CLIConfig, logger logging.Logger, metrics *transcript.Metrics) *transcript.Scanner {
	return transcript.NewScanner(transcript.ScannerConfig{
		Indent:      transcript.Indent(cfg.Transcript.Indent),
		CounterMode: transcript.CounterMode(cfg.Transcript.CounterMode),
		Logger:      logger,
		Metrics:     metrics,
	})
}

// scanFolder scans root and runs the configured side outputs: the metrics
// textfile and the scan event. Side output failures are logged, never
// returned; the scan result is what the user asked for.
func scanFolder(ctx context.Context, deps *CommandDeps, root string) (*transcript.Session, error) {
	cfg, err := deps.config()
	if err != nil {
		return nil, err
	}
	logger := deps.logger()

	metrics := transcript.NewMetrics()
	metrics.Registry().MustRegister(buildinfo.Collector())

	start := time.Now()
	session, scanErr := newScanner(cfg, logger, metrics).Scan(ctx, root)
	elapsed := time.Since(start)

	writeMetrics(cfg, logger, metrics)
	publishOutcome(ctx, deps, cfg, root, session, elapsed, scanErr)

	if scanErr != nil {
		return nil, scanErr
	}
	return session, nil
}

func writeMetrics(cfg *config.CLIConfig, logger logging.Logger, metrics *transcript.Metrics) {
	path, err := cfg.MetricsPath()
	if err != nil {
		logger.Warn("Invalid metrics textfile path", logging.Err(err))
		return
	}
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		logger.Warn("Failed to write metrics textfile", logging.Err(err), logging.F("path", path))
		return
	}
	logger.Debug("Metrics written", logging.F("path", path))
}

func publishOutcome(ctx context.Context, deps *CommandDeps, cfg *config.CLIConfig, root string,
	session *transcript.Session, elapsed time.Duration, scanErr error) {
	if !cfg.Events.Enabled || deps.NewPublisher == nil {
		return
	}
	logger := deps.logger()

	publisher, err := deps.NewPublisher(ctx, cfg, logger)
	if err != nil {
		logger.Warn("Event publishing unavailable", logging.Err(err))
		return
	}
	defer publisher.Close()

	if scanErr != nil {
		err = publisher.PublishFailed(ctx, root, scanErr)
	} else {
		err = publisher.PublishScanned(ctx, session, elapsed)
	}
	if err != nil {
		logger.Warn("Failed to publish scan event", logging.Err(err))
	}
}

// viewState is the browsing state of one command invocation: the session
// being shown plus the participant and filter the user picked. It only
// reads the session.
type viewState struct {
	session  *transcript.Session
	selected string
	filter   string
}

func newViewState(session *transcript.Session) *viewState {
	return &viewState{session: session}
}

// selectParticipant picks the participant whose messages are shown.
func (v *viewState) selectParticipant(name string) (transcript.Participant, error) {
	p, ok := v.session.Participant(name)
	if !ok {
		return transcript.Participant{}, fmt.Errorf("%w: %q", pferrors.ErrParticipantNotFound, name)
	}
	v.selected = name
	return p, nil
}

// messages returns the selected participant's messages that match the filter.
func (v *viewState) messages() []transcript.Message {
	p, ok := v.session.Participant(v.selected)
	if !ok {
		return nil
	}
	return transcript.FilterMessages(p.Messages, v.filter)
}
