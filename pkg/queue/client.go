// Package queue implements the at-least-once dispatch queue between the
// review API and the review worker, backed by a Redis list.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Client is the dispatch queue contract. Delivery is at-least-once:
// consumers must tolerate redelivered messages, and failed deliveries are
// handed back via Requeue.
type Client interface {
	// Enqueue appends a review job to the queue (LPUSH).
	Enqueue(ctx context.Context, job Job) error

	// Receive drains up to max available messages without blocking,
	// moving each into a processing list so a consumer crash never loses
	// them. Returns an empty slice when the queue is empty.
	Receive(ctx context.Context, max int) ([]Message, error)

	// Ack removes successfully processed messages from the processing
	// list.
	Ack(ctx context.Context, msgs []Message) error

	// Requeue puts failed deliveries back for redelivery, keeping their
	// original message ids.
	Requeue(ctx context.Context, msgs []Message) error

	// Reclaim moves messages left in the processing list by a previous
	// consumer back onto the queue. Meant to be called once at startup.
	Reclaim(ctx context.Context) (int, error)

	// Close closes the Redis connection.
	Close() error
}

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string

	// Key is the Redis list holding queued jobs.
	Key string

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

const defaultKey = "reviews:dispatch"

type RedisClient struct {
	client     *redis.Client
	key        string
	processing string
}

// NewRedisClient connects to Redis and verifies the connection. The client
// is meant to be created once per process and shared.
func NewRedisClient(opts RedisOptions) (*RedisClient, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.Key == "" {
		opts.Key = defaultKey
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client:     client,
		key:        opts.Key,
		processing: opts.Key + ":processing",
	}, nil
}

func (c *RedisClient) Enqueue(ctx context.Context, job Job) error {
	if err := job.IsValid(); err != nil {
		return fmt.Errorf("invalid job: %w", err)
	}

	msg := Message{
		MessageID: uuid.New().String(),
		Job:       job,
		Attributes: map[string]string{
			"reviewId": job.ReviewID,
		},
		EnqueuedAt: time.Now().UnixMilli(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := c.client.LPush(ctx, c.key, data).Err(); err != nil {
		return fmt.Errorf("failed to push to queue %s: %w", c.key, err)
	}

	return nil
}

func (c *RedisClient) Receive(ctx context.Context, max int) ([]Message, error) {
	if max <= 0 {
		max = 1
	}

	msgs := make([]Message, 0, max)
	for len(msgs) < max {
		// LMOVE keeps the entry in a processing list until it is acked
		// or requeued, so a consumer crash leaves it reclaimable.
		data, err := c.client.LMove(ctx, c.key, c.processing, "RIGHT", "LEFT").Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to pop from queue %s: %w", c.key, err)
		}

		var msg Message
		if err := json.Unmarshal([]byte(data), &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		msg.raw = data
		msgs = append(msgs, msg)
	}

	return msgs, nil
}

func (c *RedisClient) Ack(ctx context.Context, msgs []Message) error {
	for _, msg := range msgs {
		entry, err := c.entry(msg)
		if err != nil {
			return err
		}
		if err := c.client.LRem(ctx, c.processing, 1, entry).Err(); err != nil {
			return fmt.Errorf("failed to ack message %s: %w", msg.MessageID, err)
		}
	}
	return nil
}

func (c *RedisClient) Requeue(ctx context.Context, msgs []Message) error {
	for _, msg := range msgs {
		entry, err := c.entry(msg)
		if err != nil {
			return err
		}
		if err := c.client.LRem(ctx, c.processing, 1, entry).Err(); err != nil {
			return fmt.Errorf("failed to requeue message %s: %w", msg.MessageID, err)
		}
		// RPUSH so redelivered messages come back before newer work.
		if err := c.client.RPush(ctx, c.key, entry).Err(); err != nil {
			return fmt.Errorf("failed to requeue message %s: %w", msg.MessageID, err)
		}
	}
	return nil
}

func (c *RedisClient) Reclaim(ctx context.Context) (int, error) {
	count := 0
	for {
		// LEFT holds the most recently received entry; moving from there
		// to the queue tail preserves the original delivery order.
		err := c.client.LMove(ctx, c.processing, c.key, "LEFT", "RIGHT").Err()
		if errors.Is(err, redis.Nil) {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("failed to reclaim from %s: %w", c.processing, err)
		}
		count++
	}
}

func (c *RedisClient) entry(msg Message) (string, error) {
	if msg.raw != "" {
		return msg.raw, nil
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal message %s: %w", msg.MessageID, err)
	}
	return string(data), nil
}

func (c *RedisClient) Close() error {
	return c.client.Close()
}
