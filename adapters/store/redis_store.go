package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chainscore/walletauth/core"
)

// consumeScript deletes the key only if it still holds the expected value.
// GET followed by DEL would let two racing callers both observe a match;
// running the pair inside one script keeps the consume-once contract across
// instances.
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore is a Redis implementation of the NonceStore interface for
// multi-instance deployments. Nonce expiry rides on key TTLs, so expired
// entries vanish without a sweep.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a nonce store on an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "walletauth:nonce:",
	}
}

func (s *RedisStore) key(address string) string {
	return s.prefix + address
}

// Store generates a fresh nonce and writes it with the TTL, replacing any
// pending one.
func (s *RedisStore) Store(ctx context.Context, address string, ttl time.Duration) (string, time.Time, error) {
	canonical, err := core.ValidateAddress(address)
	if err != nil {
		return "", time.Time{}, err
	}

	value, err := core.NewNonceValue()
	if err != nil {
		return "", time.Time{}, err
	}

	expiresAt := time.Now().Add(ttl)
	if err := s.client.Set(ctx, s.key(canonical), value, ttl).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store nonce: %w", err)
	}

	return value, expiresAt, nil
}

// VerifyAndConsume atomically checks and deletes the pending nonce.
func (s *RedisStore) VerifyAndConsume(ctx context.Context, address, value string) (bool, error) {
	canonical, err := core.ValidateAddress(address)
	if err != nil {
		return false, err
	}

	deleted, err := consumeScript.Run(ctx, s.client, []string{s.key(canonical)}, value).Int()
	if err != nil {
		return false, fmt.Errorf("failed to consume nonce: %w", err)
	}
	return deleted == 1, nil
}

// Delete removes any pending nonce for the address.
func (s *RedisStore) Delete(ctx context.Context, address string) (bool, error) {
	canonical, err := core.ValidateAddress(address)
	if err != nil {
		return false, err
	}

	deleted, err := s.client.Del(ctx, s.key(canonical)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete nonce: %w", err)
	}
	return deleted > 0, nil
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
