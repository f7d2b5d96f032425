package transcript

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the name of the tracer for transcript operations.
const TracerName = "zoomchat/transcript"

// Span attribute keys
const (
	AttrRoot         = "root"
	AttrRoomDir      = "room_dir"
	AttrModerator    = "moderator"
	AttrRooms        = "rooms"
	AttrParticipants = "participants"
	AttrMessages     = "messages"
	AttrDroppedLines = "dropped_lines"
)

// Span names
const (
	SpanScan      = "transcript.scan"
	SpanParseFile = "transcript.parse_file"
)

// Tracer wraps the otel tracer used by the scanner. Spans are no-ops until
// the host installs a TracerProvider.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a transcript tracer from the global provider.
func NewTracer() *Tracer {
	return &Tracer{tracer: otel.Tracer(TracerName)}
}

// StartScanSpan starts the root span of a folder scan.
func (t *Tracer) StartScanSpan(ctx context.Context, root string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanScan,
		trace.WithAttributes(attribute.String(AttrRoot, root)),
	)
}

// StartParseSpan starts a span for one transcript.
func (t *Tracer) StartParseSpan(ctx context.Context, room Room) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanParseFile,
		trace.WithAttributes(
			attribute.String(AttrRoomDir, room.Dir),
			attribute.String(AttrModerator, room.Moderator),
		),
	)
}
