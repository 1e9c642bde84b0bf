package orderid

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Generator produces the public order identifier.
type Generator interface {
	Next(ctx context.Context) (string, error)
}

// Format renders ORD-YYYYMM-NNNNNN.
func Format(month string, n int64) string {
	return fmt.Sprintf("ORD-%s-%06d", month, n)
}

// Incrementer is the atomic counter behind id generation.
type Incrementer interface {
	Incr(ctx context.Context, key string) (int64, error)
}

type redisIncrementer struct {
	rdb *redis.Client
}

func (r redisIncrementer) Incr(ctx context.Context, key string) (int64, error) {
	return r.rdb.Incr(ctx, key).Result()
}

// CounterGenerator increments an atomic counter scoped by environment
// and month, so ids are unique and strictly increasing within a scope.
// The increment is issued exactly once per order: a failed reply is a
// failed id, never a second INCR.
type CounterGenerator struct {
	counter Incrementer
	env     string
	now     func() time.Time
}

func NewCounterGenerator(rdb *redis.Client, env string) *CounterGenerator {
	return &CounterGenerator{counter: redisIncrementer{rdb: rdb}, env: env, now: time.Now}
}

func (g *CounterGenerator) Next(ctx context.Context) (string, error) {
	month := g.now().UTC().Format("200601")
	key := fmt.Sprintf("orders:counter:%s:%s", g.env, month)

	n, err := g.counter.Incr(ctx, key)
	if err != nil {
		return "", fmt.Errorf("increment order counter: %w", err)
	}
	return Format(month, n), nil
}

// TimestampGenerator is the non-production placeholder. Two requests in
// the same millisecond collide; gated out of production by config.
type TimestampGenerator struct {
	now func() time.Time
}

func NewTimestampGenerator() *TimestampGenerator {
	return &TimestampGenerator{now: time.Now}
}

func (g *TimestampGenerator) Next(context.Context) (string, error) {
	return fmt.Sprintf("ORD-%d", g.now().UnixMilli()), nil
}
