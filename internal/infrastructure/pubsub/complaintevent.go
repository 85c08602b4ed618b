package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/fixora-app/fixora/internal/application/complaint/usecases"
	"github.com/fixora-app/fixora/internal/domain/complaint"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	uservo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/shared/constants"
	"github.com/fixora-app/fixora/internal/shared/goroutine"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

const defaultComplaintEventChannel = constants.RedisChannelComplaints

// ComplaintEventMessage is the wire form of complaint.ChangeEvent.
type ComplaintEventMessage struct {
	Type        string `json:"type"`
	SID         string `json:"sid"`
	SubmitterID uint   `json:"submitter_id"`
	Visibility  string `json:"visibility"`
	HostelType  string `json:"hostel_type"`
	Status      string `json:"status"`
	Votes       int    `json:"votes"`
	OccurredAt  int64  `json:"occurred_at"`
	InstanceID  string `json:"instance_id,omitempty"`
}

func toMessage(event complaint.ChangeEvent, instanceID string) ComplaintEventMessage {
	return ComplaintEventMessage{
		Type:        string(event.Type),
		SID:         event.SID,
		SubmitterID: event.Scope.SubmitterID,
		Visibility:  event.Scope.Visibility.String(),
		HostelType:  event.Scope.HostelType.String(),
		Status:      event.Status.String(),
		Votes:       event.Votes,
		OccurredAt:  event.OccurredAt.UnixMilli(),
		InstanceID:  instanceID,
	}
}

func (m ComplaintEventMessage) toEvent() (complaint.ChangeEvent, error) {
	visibility, err := vo.NewVisibility(m.Visibility)
	if err != nil {
		return complaint.ChangeEvent{}, err
	}
	status, err := vo.NewStatus(m.Status)
	if err != nil {
		return complaint.ChangeEvent{}, err
	}
	wing, err := uservo.NewWing(m.HostelType)
	if err != nil {
		return complaint.ChangeEvent{}, err
	}
	return complaint.ChangeEvent{
		Type: complaint.ChangeType(m.Type),
		SID:  m.SID,
		Scope: complaint.Scope{
			SubmitterID: m.SubmitterID,
			Visibility:  visibility,
			HostelType:  wing,
		},
		Status:     status,
		Votes:      m.Votes,
		OccurredAt: time.UnixMilli(m.OccurredAt).UTC(),
	}, nil
}

var _ usecases.ComplaintEventPublisher = (*RedisComplaintEventBus)(nil)

// RedisComplaintEventBus relays complaint changes between instances. Every
// instance, the publisher included, receives each event once.
type RedisComplaintEventBus struct {
	client     *redis.Client
	channel    string
	logger     logger.Interface
	instanceID string
}

// NewRedisComplaintEventBus uses the default channel when channel is empty.
func NewRedisComplaintEventBus(client *redis.Client, channel string, logger logger.Interface) *RedisComplaintEventBus {
	if channel == "" {
		channel = defaultComplaintEventChannel
	}
	return &RedisComplaintEventBus{
		client:     client,
		channel:    channel,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

func (b *RedisComplaintEventBus) Publish(ctx context.Context, event complaint.ChangeEvent) error {
	data, err := json.Marshal(toMessage(event, b.instanceID))
	if err != nil {
		return fmt.Errorf("failed to marshal complaint event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish complaint event",
			"event_type", event.Type,
			"sid", event.SID,
			"instance_id", b.instanceID,
			"error", err,
		)
		return fmt.Errorf("failed to publish complaint event: %w", err)
	}

	b.logger.Debugw("complaint event published",
		"event_type", event.Type,
		"sid", event.SID,
	)
	return nil
}

// Subscribe blocks until ctx is done, reconnecting with backoff.
func (b *RedisComplaintEventBus) Subscribe(ctx context.Context, handler func(event complaint.ChangeEvent)) error {
	return b.subscribeWithReconnect(ctx, b.channel, func(payload string) {
		var msg ComplaintEventMessage
		if err := json.Unmarshal([]byte(payload), &msg); err != nil {
			b.logger.Warnw("failed to unmarshal complaint event", "payload", payload, "error", err)
			return
		}
		event, err := msg.toEvent()
		if err != nil {
			b.logger.Warnw("dropping malformed complaint event", "sid", msg.SID, "error", err)
			return
		}
		handler(event)
	})
}

func (b *RedisComplaintEventBus) subscribeWithReconnect(ctx context.Context, channel string, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, channel, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("complaint event subscription disconnected, reconnecting",
			"channel", channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisComplaintEventBus) subscribe(ctx context.Context, channel string, handler func(payload string)) error {
	sub := b.client.Subscribe(ctx, channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	b.logger.Infow("subscribed to complaint events", "channel", channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("complaint event channel closed", "channel", channel)
				return nil
			}
			// Inline so events for one complaint reach the hub in publish order.
			goroutine.Run(b.logger, "complaint-event-handler", func() {
				handler(msg.Payload)
			})
		}
	}
}
