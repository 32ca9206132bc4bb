package redisclient

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client wraps a Redis client with OpenTelemetry tracing
type Client struct {
	cmdable redis.Cmdable
}

// NewClient creates a new traced Redis client for single Redis instance
func NewClient(client *redis.Client) *Client {
	return &Client{cmdable: client}
}

// Get wraps Redis Get with tracing
func (c *Client) Get(ctx context.Context, key string) *redis.StringCmd {
	ctx, span := c.startSpan(ctx, "redis.get", key)
	defer span.End()

	cmd := c.cmdable.Get(ctx, key)
	c.finishSpan(span, cmd.Err())
	return cmd
}

// Set wraps Redis Set with tracing
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	ctx, span := c.startSpan(ctx, "redis.set", key,
		attribute.String("redis.expiration", expiration.String()))
	defer span.End()

	cmd := c.cmdable.Set(ctx, key, value, expiration)
	c.finishSpan(span, cmd.Err())
	return cmd
}

// Ping wraps Redis Ping with tracing
func (c *Client) Ping(ctx context.Context) *redis.StatusCmd {
	ctx, span := c.startSpan(ctx, "redis.ping", "")
	defer span.End()

	cmd := c.cmdable.Ping(ctx)
	c.finishSpan(span, cmd.Err())
	return cmd
}

func (c *Client) startSpan(ctx context.Context, operation, key string, extra ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("redis.operation", operation),
		attribute.String("redis.client", "catalog-api"),
	}
	if key != "" {
		attrs = append(attrs, attribute.String("redis.key", key))
	}
	attrs = append(attrs, extra...)

	return otel.Tracer("redis").Start(ctx, operation, trace.WithAttributes(attrs...))
}

func (c *Client) finishSpan(span trace.Span, err error) {
	if err != nil && err != redis.Nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "success")
}
