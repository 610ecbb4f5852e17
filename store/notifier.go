// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the Redis channel used for change notifications
const DefaultChannel = "garkas:events:changed"

// Notifier tells other instances sharing the database that the collection changed
type Notifier interface {
	Notify(ctx context.Context) error
	// Listen blocks, calling onChange for every change made by another instance
	Listen(ctx context.Context, onChange func()) error
}

// NopNotifier is used when a single instance owns the database
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context) error { return nil }

func (NopNotifier) Listen(ctx context.Context, onChange func()) error {
	<-ctx.Done()
	return nil
}

// RedisNotifier publishes change notifications over Redis pub/sub
type RedisNotifier struct {
	client  *redis.Client
	channel string
	origin  string // tags our own messages so they can be skipped
}

func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{
		client:  client,
		channel: channel,
		origin:  uuid.NewString(),
	}
}

// NewRedisClient parses a redis:// URL, falling back to a plain address
func NewRedisClient(url string) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		opts = &redis.Options{Addr: url}
	}
	opts.MaxRetries = 3
	return redis.NewClient(opts)
}

func (n *RedisNotifier) Notify(ctx context.Context) error {
	if err := n.client.Publish(ctx, n.channel, n.origin).Err(); err != nil {
		return fmt.Errorf("failed to publish change: %w", err)
	}
	return nil
}

func (n *RedisNotifier) Listen(ctx context.Context, onChange func()) error {
	pubsub := n.client.Subscribe(ctx, n.channel)
	defer pubsub.Close()

	// Wait for the subscription to be confirmed
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", n.channel, err)
	}
	slog.Info("listening for remote changes", "channel", n.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if msg.Payload == n.origin {
				continue
			}
			onChange()
		}
	}
}
