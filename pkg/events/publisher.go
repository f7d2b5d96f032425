// Package events publishes scan results to Redis so other tools can react
// to a folder of chat transcripts being processed.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	pferrors "github.com/otherjamesbrown/zoomchat/pkg/errors"
	"github.com/otherjamesbrown/zoomchat/pkg/logging"
	"github.com/otherjamesbrown/zoomchat/pkg/transcript"
)

// Default Redis channels.
const (
	ChannelTranscriptScanned = "events.transcript.scanned"
	ChannelTranscriptFailed  = "events.transcript.failed"
)

// BaseEvent contains common fields for all events.
type BaseEvent struct {
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// NewBaseEvent creates a BaseEvent with sensible defaults.
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Source:    "zoomchat",
		Version:   "1.0",
	}
}

// TranscriptScannedEvent is published when a folder scan completes.
type TranscriptScannedEvent struct {
	BaseEvent

	SessionID   string `json:"session_id"`
	Root        string `json:"root"`
	CounterMode string `json:"counter_mode"`

	Rooms        int      `json:"rooms"`
	Moderators   []string `json:"moderators"`
	Participants int      `json:"participants"`
	TotalCount   int      `json:"total_message_count"`
	DroppedLines int      `json:"dropped_lines"`
	SkippedLines int      `json:"skipped_lines"`

	DurationSeconds float64 `json:"duration_seconds"`
}

// NewTranscriptScannedEvent summarises session for publishing.
func NewTranscriptScannedEvent(session *transcript.Session, elapsed time.Duration) TranscriptScannedEvent {
	return TranscriptScannedEvent{
		BaseEvent:   NewBaseEvent("transcript.scanned"),
		SessionID:   session.ID.String(),
		Root:        session.Root,
		CounterMode: string(session.CounterMode),
		Rooms:       len(session.Rooms),
		Moderators: lo.Uniq(lo.Map(session.Rooms, func(r transcript.RoomResult, _ int) string {
			return r.Moderator
		})),
		Participants: session.Len(),
		TotalCount:   session.TotalMessageCount,
		DroppedLines: lo.SumBy(session.Rooms, func(r transcript.RoomResult) int { return r.DroppedLines }),
		SkippedLines: lo.SumBy(session.Rooms, func(r transcript.RoomResult) int { return r.SkippedLines }),

		DurationSeconds: elapsed.Seconds(),
	}
}

// TranscriptFailedEvent is published when a folder scan is abandoned.
type TranscriptFailedEvent struct {
	BaseEvent

	Root      string `json:"root"`
	ErrorCode string `json:"error_code"`
	Error     string `json:"error"`
}

// NewTranscriptFailedEvent describes a failed scan of root.
func NewTranscriptFailedEvent(root string, scanErr error) TranscriptFailedEvent {
	return TranscriptFailedEvent{
		BaseEvent: NewBaseEvent("transcript.failed"),
		Root:      root,
		ErrorCode: string(pferrors.Classify(scanErr)),
		Error:     scanErr.Error(),
	}
}

// redisClient is the part of *redis.Client the publisher uses.
type redisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

// Publisher publishes scan events to Redis.
type Publisher struct {
	client        redisClient
	logger        logging.Logger
	channel       string
	failedChannel string
}

// PublisherConfig holds Redis connection configuration.
type PublisherConfig struct {
	Address  string
	Password string
	DB       int
	// Channel overrides ChannelTranscriptScanned.
	Channel string
}

// NewPublisher creates a new event publisher.
func NewPublisher(client *redis.Client, channel string, logger logging.Logger) *Publisher {
	return newPublisher(client, channel, logger)
}

func newPublisher(client redisClient, channel string, logger logging.Logger) *Publisher {
	if channel == "" {
		channel = ChannelTranscriptScanned
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Publisher{
		client:        client,
		logger:        logger.With(logging.F("component", "event_publisher")),
		channel:       channel,
		failedChannel: ChannelTranscriptFailed,
	}
}

// NewPublisherFromConfig creates a publisher with a new Redis connection.
func NewPublisherFromConfig(ctx context.Context, cfg PublisherConfig, logger logging.Logger) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	return NewPublisher(client, cfg.Channel, logger), nil
}

// Channel returns the channel scan events are published on.
func (p *Publisher) Channel() string {
	return p.channel
}

// PublishScanned publishes a transcript.scanned event for session.
func (p *Publisher) PublishScanned(ctx context.Context, session *transcript.Session, elapsed time.Duration) error {
	return p.publish(ctx, p.channel, NewTranscriptScannedEvent(session, elapsed))
}

// PublishFailed publishes a transcript.failed event for a scan of root.
func (p *Publisher) PublishFailed(ctx context.Context, root string, scanErr error) error {
	return p.publish(ctx, p.failedChannel, NewTranscriptFailedEvent(root, scanErr))
}

// publish serializes and publishes an event to Redis.
func (p *Publisher) publish(ctx context.Context, channel string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		p.logger.Error("Failed to publish event",
			logging.Err(err),
			logging.F("channel", channel))
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}

	p.logger.Debug("Event published",
		logging.F("channel", channel),
		logging.F("payload_size", len(data)))

	return nil
}

// Close closes the Redis connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}
