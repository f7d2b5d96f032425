package transcript

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	pferrors "github.com/otherjamesbrown/zoomchat/pkg/errors"
	"github.com/otherjamesbrown/zoomchat/pkg/logging"
)

// Aggregator parses transcripts into the Session it owns.
type Aggregator struct {
	session *Session
	indent  Indent
	logger  logging.Logger
	metrics *Metrics
	tracer  *Tracer
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithIndent pins the continuation indent variant.
func WithIndent(indent Indent) AggregatorOption {
	return func(a *Aggregator) {
		if indent.IsValid() {
			a.indent = indent
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) AggregatorOption {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics records parse counters into m.
func WithMetrics(m *Metrics) AggregatorOption {
	return func(a *Aggregator) {
		a.metrics = m
	}
}

// NewAggregator creates an Aggregator writing into session.
func NewAggregator(session *Session, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		session: session,
		indent:  IndentAuto,
		logger:  logging.NewNopLogger(),
		tracer:  NewTracer(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Session returns the session being built.
func (a *Aggregator) Session() *Session {
	return a.session
}

// ParseFile parses the transcript of room and records its contribution.
// A transcript that cannot be opened fails the whole scan.
func (a *Aggregator) ParseFile(ctx context.Context, room Room) (*RoomResult, error) {
	_, span := a.tracer.StartParseSpan(ctx, room)
	defer span.End()

	f, err := os.Open(room.TranscriptPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return nil, fmt.Errorf("%w: %s: %v", pferrors.ErrTranscriptOpen, room.TranscriptPath, err)
	}
	defer f.Close()

	result, err := a.parse(f, room)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return nil, fmt.Errorf("%w: %s: %v", pferrors.ErrTranscriptRead, room.TranscriptPath, err)
	}

	span.SetAttributes(
		attribute.Int(AttrMessages, result.MessageCount),
		attribute.Int(AttrDroppedLines, result.DroppedLines),
	)
	return result, nil
}

// Parse reads a transcript from r, attributing its lines to participants
// other than moderator.
func (a *Aggregator) Parse(r io.Reader, moderator string) (*RoomResult, error) {
	return a.parse(r, Room{Moderator: moderator})
}

func (a *Aggregator) parse(r io.Reader, room Room) (*RoomResult, error) {
	if a.session.CounterMode == CounterFile {
		a.session.TotalMessageCount = 0
	}

	result := RoomResult{Room: room}
	log := a.logger.With(logging.F("moderator", room.Moderator))

	decoded := transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	reader := bufio.NewReader(decoded)

	var speaker, timestamp string

	for {
		raw, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if raw == "" && err == io.EOF {
			break
		}
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")

		switch {
		case !utf8.ValidString(line):
			result.SkippedLines++
		case !a.indent.IsContinuation(line):
			speaker = ExtractSpeaker(line, room.Moderator)
			if ts, ok := HeaderTimestamp(line); ok {
				timestamp = ts
			}
			if speaker == "" {
				log.Debug("Header without participant", logging.F("line", line))
			}
		case speaker == "":
			result.DroppedLines++
		default:
			a.session.append(speaker, Message{
				Text:      strings.TrimSpace(line),
				Timestamp: timestamp,
			})
			a.session.TotalMessageCount++
			result.MessageCount++
		}

		if err == io.EOF {
			break
		}
	}

	a.session.Rooms = append(a.session.Rooms, result)
	a.metrics.observeRoom(result)

	log.Info("Transcript parsed",
		logging.F("path", room.TranscriptPath),
		logging.F("messages", result.MessageCount),
		logging.F("dropped_lines", result.DroppedLines),
		logging.F("skipped_lines", result.SkippedLines))

	return &result, nil
}
