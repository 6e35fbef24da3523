package idempotency

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"jaac-backend/internal/infra"
	"jaac-backend/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "jaac:confirmation:"

var ErrEmptyKey = errors.New("idempotency key is empty")

const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

// RedisGuard marks a confirmation key with SET NX so that only one process
// sends that email. The random token returned by Acquire is the proof of
// ownership Release needs.
type RedisGuard struct {
	client *redis.Client
	script *redis.Script
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisGuard(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisGuard {
	return &RedisGuard{
		client: client,
		script: redis.NewScript(releaseScript),
		ttl:    ttl,
		logger: logger,
	}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, keyPrefix+key, token, g.ttl).Result()
	if err != nil {
		return "", false, infra.WrapGatewayErr(g.logger, infra.KindUnavailable, "failed to acquire confirmation guard", err,
			slog.String("key", key))
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release deletes the mark only while it still holds token.
func (g *RedisGuard) Release(ctx context.Context, key, token string) error {
	if token == "" {
		return nil
	}
	if err := g.script.Run(ctx, g.client, []string{keyPrefix + key}, token).Err(); err != nil {
		return infra.WrapGatewayErr(g.logger, infra.KindUnavailable, "failed to release confirmation guard", err,
			slog.String("key", key))
	}
	return nil
}

type memoryEntry struct {
	token   string
	expires time.Time
}

// MemoryGuard is the single-process guard used when no Redis is configured.
type MemoryGuard struct {
	clock clock.Clock
	ttl   time.Duration

	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryGuard(clk clock.Clock, ttl time.Duration) *MemoryGuard {
	return &MemoryGuard{clock: clk, ttl: ttl, entries: make(map[string]memoryEntry)}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	now := g.clock.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	g.evictExpired(now)
	if _, taken := g.entries[key]; taken {
		return "", false, nil
	}
	token := uuid.NewString()
	g.entries[key] = memoryEntry{token: token, expires: now.Add(g.ttl)}
	return token, true, nil
}

func (g *MemoryGuard) Release(_ context.Context, key, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if e, ok := g.entries[key]; ok && e.token == token {
		delete(g.entries, key)
	}
	return nil
}

func (g *MemoryGuard) evictExpired(now time.Time) {
	for k, e := range g.entries {
		if !now.Before(e.expires) {
			delete(g.entries, k)
		}
	}
}
