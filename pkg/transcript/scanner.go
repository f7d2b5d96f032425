package transcript

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/otherjamesbrown/zoomchat/pkg/logging"
)

// ScannerConfig configures a Scanner.
type ScannerConfig struct {
	Indent      Indent
	CounterMode CounterMode
	Logger      logging.Logger
	Metrics     *Metrics
}

// Scanner locates the rooms under a folder and parses each transcript.
// A Scanner runs one scan at a time; callers must not start a second scan
// while the first is in flight.
type Scanner struct {
	cfg    ScannerConfig
	logger logging.Logger
	tracer *Tracer
}

// NewScanner creates a Scanner.
func NewScanner(cfg ScannerConfig) *Scanner {
	if !cfg.Indent.IsValid() {
		cfg.Indent = IndentAuto
	}
	if !cfg.CounterMode.IsValid() {
		cfg.CounterMode = CounterScan
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Scanner{
		cfg:    cfg,
		logger: logger.With(logging.F("component", "transcript_scanner")),
		tracer: NewTracer(),
	}
}

// Locate lists the rooms under root without parsing them.
func (s *Scanner) Locate(root string) ([]Room, error) {
	return Locate(root)
}

// Scan builds a new Session from every room under root. Any error leaves no
// usable session: the scan is all-or-nothing.
func (s *Scanner) Scan(ctx context.Context, root string) (*Session, error) {
	ctx, span := s.tracer.StartScanSpan(ctx, root)
	defer span.End()

	start := time.Now()
	session := NewSession(s.cfg.CounterMode)
	session.Root = root
	ctx = context.WithValue(ctx, logging.SessionIDKey, session.ID.String())
	if sc := span.SpanContext(); sc.HasTraceID() {
		ctx = context.WithValue(ctx, logging.TraceIDKey, sc.TraceID().String())
	}
	log := s.logger.WithContext(ctx).With(logging.F("root", root))

	rooms, err := Locate(root)
	if err != nil {
		s.cfg.Metrics.observeScanFailure()
		span.RecordError(err)
		span.SetStatus(codes.Error, "locate failed")
		log.Error("Scan failed", logging.Err(err))
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	session.State = StateScanned
	log.Debug("Rooms located", logging.F("rooms", len(rooms)))

	agg := NewAggregator(session,
		WithIndent(s.cfg.Indent),
		WithLogger(log),
		WithMetrics(s.cfg.Metrics),
	)
	agg.tracer = s.tracer

	for _, room := range rooms {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
		if _, err := agg.ParseFile(ctx, room); err != nil {
			s.cfg.Metrics.observeScanFailure()
			span.RecordError(err)
			span.SetStatus(codes.Error, "parse failed")
			log.Error("Scan failed", logging.Err(err), logging.F("room", room.Dir))
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
	}

	elapsed := time.Since(start)
	s.cfg.Metrics.observeScan(session, elapsed)
	span.SetAttributes(
		attribute.Int(AttrRooms, len(rooms)),
		attribute.Int(AttrParticipants, session.Len()),
		attribute.Int(AttrMessages, session.TotalMessageCount),
	)

	log.Info("Scan complete",
		logging.F("rooms", len(rooms)),
		logging.F("participants", session.Len()),
		logging.F("messages", session.TotalMessageCount),
		logging.F("duration", elapsed))

	return session, nil
}
