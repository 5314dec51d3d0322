package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"collabex_backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

// Broker fans envelopes out to every node running a Hub.
type Broker interface {
	Publish(ctx context.Context, env Envelope) error
	// Run delivers incoming envelopes to deliver until ctx is done.
	Run(ctx context.Context, deliver func(Envelope)) error
	Close() error
}

// =======================
// In-memory (single node)
// =======================

type MemoryBroker struct {
	queue chan Envelope
}

func NewMemoryBroker(buffer int) *MemoryBroker {
	if buffer <= 0 {
		buffer = 1024
	}
	return &MemoryBroker{queue: make(chan Envelope, buffer)}
}

// Publish enqueues without blocking; a full queue drops the envelope.
func (b *MemoryBroker) Publish(ctx context.Context, env Envelope) error {
	select {
	case b.queue <- env:
		return nil
	default:
		logger.CtxWarn(ctx, "realtime queue full, event dropped", "user_id", env.UserID, "type", env.Event.Type)
		return nil
	}
}

func (b *MemoryBroker) Run(ctx context.Context, deliver func(Envelope)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case env := <-b.queue:
			deliver(env)
		}
	}
}

func (b *MemoryBroker) Close() error { return nil }

// =======================
// Redis pub/sub (multi node)
// =======================

type RedisBroker struct {
	client  *redis.Client
	channel string
}

func NewRedisBroker(client *redis.Client, channel string) *RedisBroker {
	if channel == "" {
		channel = "collabex:realtime"
	}
	return &RedisBroker{client: client, channel: channel}
}

func (b *RedisBroker) Publish(ctx context.Context, env Envelope) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

func (b *RedisBroker) Run(ctx context.Context, deliver func(Envelope)) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	// Wait for the subscription to be confirmed so no publish is missed.
	if _, err := sub.Receive(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("redis subscribe: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var env Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				logger.Warn("malformed realtime envelope", "error", err)
				continue
			}
			deliver(env)
		}
	}
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}
